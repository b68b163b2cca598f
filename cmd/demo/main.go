// Command demo runs the RAGE sample game: a menu scene and a small
// paddle game, switched through the scene manager.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/younwookim/rage/internal/application/app"
	"github.com/younwookim/rage/internal/application/replay"
	"github.com/younwookim/rage/internal/application/scene"
	"github.com/younwookim/rage/internal/application/scene/menu"
	"github.com/younwookim/rage/internal/application/scene/playing"
	"github.com/younwookim/rage/internal/graphics"
	"github.com/younwookim/rage/internal/infrastructure/assets"
	"github.com/younwookim/rage/internal/infrastructure/config"
	"github.com/younwookim/rage/internal/infrastructure/logging"
	"github.com/younwookim/rage/internal/infrastructure/platform"
	"golang.org/x/image/font/basicfont"
)

func main() {
	os.Exit(run())
}

func run() int {
	configDir := flag.String("config", "", "Directory containing app.toml (default: embedded config)")
	recordFile := flag.String("record", "", "Record events to file (e.g., -record replay.json, or 'auto' for timestamped name)")
	replayFile := flag.String("replay", "", "Play back events from a recorded file")
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, logCloser, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	var opts []app.Option
	opts = append(opts, app.WithLogger(logger))

	var (
		source     app.EventSource = platform.NewSource()
		replayData *replay.ReplayData
	)
	if *replayFile != "" {
		replayData, err = replay.LoadReplay(*replayFile)
		if err != nil {
			logger.Error("failed to load replay", "file", *replayFile, "err", err)
			return 1
		}
		if replayData.FirstScene != "" {
			cfg.Scenes.First = replayData.FirstScene
		}
		source = replay.NewReplayer(*replayData)
		logger.Info("replaying", "file", *replayFile, "frames", replayData.FrameCount, "recorded_session", replayData.Session)
	}
	opts = append(opts, app.WithEventSource(source))

	var recorder *replay.Recorder
	if *recordFile != "" {
		path := *recordFile
		if path == "auto" {
			path = replay.GenerateFilename()
		}
		recorder = replay.NewRecorder("", cfg.Scenes.First)
		recorder.SetDT(fixedStep(cfg, replayData))
		opts = append(opts, app.WithRecorder(recorder, path))
		logger.Info("recording", "file", path)
	}

	am := assets.New(cfg.Assets.Dir, assets.WithLogger(logger.WithPrefix("assets")))
	if cfg.Assets.Watch {
		if err := am.Watch(); err != nil {
			logger.Warn("asset watching disabled", "dir", cfg.Assets.Dir, "err", err)
		}
	}
	opts = append(opts, app.WithAssets(am))

	a, err := app.New(*cfg, opts...)
	if err != nil {
		logger.Error("failed to create app", "err", err)
		_ = am.Close()
		return 1
	}
	if recorder != nil {
		recorder.SetSession(a.Session())
	}
	// Recorded events are replayed per frame, so both runs must advance by
	// the same step.
	if recorder != nil || replayData != nil {
		a.SetDT(fixedStep(cfg, replayData))
	}

	if err := setupScenes(a, cfg, loadFont(am, cfg.Assets.Font, a.Logger())); err != nil {
		a.Logger().Error("failed to set up scenes", "err", err)
		_ = a.Cleanup()
		return 1
	}

	if err := a.Run(); err != nil {
		a.Logger().Error("game exited with error", "err", err)
		return 1
	}
	return a.ExitCode()
}

// loadConfig reads app.toml from dir, or from the embedded configs when dir is empty.
func loadConfig(dir string) (*config.AppConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadApp()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded configs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadApp()
}

// fixedStep returns the dt used while recording or replaying: the step
// stored in the replay, else one tick at the configured TPS.
func fixedStep(cfg *config.AppConfig, data *replay.ReplayData) float64 {
	if data != nil && data.DT > 0 {
		return data.DT
	}
	tps := cfg.Window.TPS
	if tps <= 0 {
		tps = config.DefaultTPS
	}
	return 1 / float64(tps)
}

// loadFont returns the configured font, falling back to the built-in face.
func loadFont(am *assets.Manager, name string, logger *log.Logger) graphics.Font {
	fallback := graphics.NewFaceFont(basicfont.Face7x13)
	if name == "" {
		return fallback
	}

	var (
		f   graphics.Font
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".fnt") {
		f, err = am.BitmapFont(name)
	} else {
		f, err = am.Font(name)
	}
	if err != nil {
		logger.Warn("using built-in font", "font", name, "err", err)
		return fallback
	}
	return f
}

// setupScenes registers the demo scenes and requests the first one.
func setupScenes(a *app.App, cfg *config.AppConfig, font graphics.Font) error {
	w, h := cfg.Window.Width, cfg.Window.Height
	sm := a.Scenes()

	m := menu.New(sm, a, font, w, h, playing.Name, menu.WithLogger(a.Logger().WithPrefix("menu")))
	p := playing.New(sm, font, w, h, menu.Name, playing.WithLogger(a.Logger().WithPrefix("game")))

	for _, s := range []scene.Scene{m, p} {
		if err := sm.AddScene(s); err != nil {
			return err
		}
	}

	first := cfg.Scenes.First
	if first == "" {
		first = menu.Name
	}
	if !sm.Has(first) {
		return fmt.Errorf("first scene %q: %w", first, scene.ErrUnknownScene)
	}
	sm.SetActiveScene(first)
	return nil
}
