// Package app provides the application object: it owns the scene manager and
// drives the frame loop as an ebiten.Game.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/application/scene"
	"github.com/younwookim/rage/internal/application/state"
	"github.com/younwookim/rage/internal/domain/event"
	"github.com/younwookim/rage/internal/infrastructure/config"
)

// EventSource delivers the system events of one frame.
type EventSource interface {
	// PollEvents appends pending events to dst and returns it.
	PollEvents(dst []event.Event) []event.Event
}

// Recorder receives the events delivered each frame.
type Recorder interface {
	RecordFrame(events []event.Event)
	Save(filename string) error
}

// Assets is a resource cache whose invalidations are applied at the frame
// boundary.
type Assets interface {
	Sync() int
	Close() error
}

// App implements ebiten.Game on top of a scene.Manager.
type App struct {
	cfg        config.AppConfig
	scenes     *scene.Manager
	logger     *log.Logger
	source     EventSource
	recorder   Recorder
	recordPath string
	assets     Assets
	clock      *Clock
	now        func() time.Time

	session    string
	title      string
	background color.RGBA
	state      state.AppState
	exitCode   int
	fixedDT    float64
	frame      int
	events     []event.Event
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. The session id is attached to every line.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEventSource sets where events come from (platform input or a replay).
func WithEventSource(src EventSource) Option {
	return func(a *App) {
		if src != nil {
			a.source = src
		}
	}
}

// WithRecorder records every frame's events and saves them to path on Cleanup.
func WithRecorder(r Recorder, path string) Option {
	return func(a *App) {
		a.recorder = r
		a.recordPath = path
	}
}

// WithAssets sets the asset cache synced at every frame boundary.
func WithAssets(as Assets) Option {
	return func(a *App) {
		a.assets = as
	}
}

// WithClock sets the time source used to compute dt.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New creates an App from cfg. Zero window dimensions fall back to the
// default video mode.
func New(cfg config.AppConfig, opts ...Option) (*App, error) {
	if cfg.Window.Width == 0 && cfg.Window.Height == 0 {
		cfg.Window.Width = config.DefaultWidth
		cfg.Window.Height = config.DefaultHeight
	}
	if cfg.Window.Scale == 0 {
		cfg.Window.Scale = 1
	}
	if cfg.Window.TPS == 0 {
		cfg.Window.TPS = config.DefaultTPS
	}
	if cfg.Window.Background == "" {
		cfg.Window.Background = "#000000"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}

	a := &App{
		cfg:        cfg,
		logger:     log.New(io.Discard),
		source:     nopSource{},
		session:    uuid.NewString(),
		title:      cfg.Window.Title,
		background: cfg.BackgroundColor(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With("session", a.session)
	a.clock = NewClock(a.now, 1.0/float64(cfg.Window.TPS))
	a.scenes = scene.NewManager(
		scene.WithLogger(a.logger.WithPrefix("scene")),
		scene.WithStrict(cfg.Scenes.Strict),
	)
	a.state = state.StateInitializing

	a.logger.Info("app created",
		"size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height),
		"tps", cfg.Window.TPS)
	return a, nil
}

// Scenes returns the scene manager owned by the app.
func (a *App) Scenes() *scene.Manager {
	return a.scenes
}

// Logger returns the app logger.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// Session returns the id of this run.
func (a *App) Session() string {
	return a.session
}

// ExecutableDir returns the directory of the running binary, or "." if it
// cannot be determined.
func (a *App) ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		a.logger.Warn("executable path unavailable", "err", err)
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Title returns the window title.
func (a *App) Title() string {
	return a.title
}

// SetTitle changes the window title.
func (a *App) SetTitle(title string) {
	a.title = title
	if a.state == state.StateRunning {
		ebiten.SetWindowTitle(title)
	}
}

// SetFirstScene registers s and requests it as the active scene. It becomes
// active at the first frame boundary.
func (a *App) SetFirstScene(s scene.Scene) error {
	if err := a.scenes.AddScene(s); err != nil {
		return err
	}
	a.scenes.SetActiveScene(s.Name())
	return nil
}

// SetDT fixes the delta time passed to scenes. Zero restores measured time.
func (a *App) SetDT(dt float64) {
	a.fixedDT = dt
}

// Quit stops the loop after the current frame with the given exit code.
func (a *App) Quit(code int) {
	if !a.state.IsRunning() {
		return
	}
	a.exitCode = code
	a.state = state.StateQuitting
	a.logger.Info("quit requested", "code", code, "frame", a.frame)
}

// IsRunning reports whether the loop keeps going.
func (a *App) IsRunning() bool {
	return a.state.IsRunning()
}

// State returns the run state.
func (a *App) State() state.AppState {
	return a.state
}

// ExitCode returns the code passed to Quit.
func (a *App) ExitCode() int {
	return a.exitCode
}

// Frame returns the number of completed updates.
func (a *App) Frame() int {
	return a.frame
}

// Update runs one frame. Implements ebiten.Game.
//
// Pending scene switches and asset invalidations are applied first, before
// this frame's events reach any scene. ebiten may run several Updates
// between two Draws, so a switch is not guaranteed to follow a Draw.
func (a *App) Update() error {
	if !a.state.IsRunning() {
		return ebiten.Termination
	}
	if a.state == state.StateInitializing {
		a.state = state.StateRunning
	}

	// Errors are logged by the manager; the active scene keeps running.
	_ = a.scenes.ChangeScene()
	if a.assets != nil {
		if n := a.assets.Sync(); n > 0 {
			a.logger.Debug("assets invalidated", "count", n)
		}
	}

	a.events = a.source.PollEvents(a.events[:0])
	for _, ev := range a.events {
		if ev.Kind == event.KindClosed {
			a.Quit(0)
		}
		a.scenes.EventScene(ev)
	}
	if a.recorder != nil {
		a.recorder.RecordFrame(a.events)
	}
	if !a.state.IsRunning() {
		return ebiten.Termination
	}

	dt := a.clock.Tick()
	if a.fixedDT > 0 {
		dt = a.fixedDT
	}
	if err := a.scenes.UpdateScene(dt); err != nil {
		a.logger.Error("scene update failed", "scene", a.scenes.ActiveName(), "err", err)
		a.exitCode = 1
		a.state = state.StateQuitting
		return err
	}

	a.frame++
	return nil
}

// Draw clears the screen and draws the active scene. Implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.scenes.DrawScene(screen)
}

// Layout returns the logical screen size. Implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Run opens the window, runs the loop until Quit or a scene error and then
// releases everything.
func (a *App) Run() error {
	w := a.cfg.Window
	ebiten.SetWindowSize(w.Width*w.Scale, w.Height*w.Scale)
	ebiten.SetWindowTitle(a.title)
	ebiten.SetTPS(w.TPS)
	ebiten.SetWindowClosingHandled(true)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	a.logger.Info("running", "title", a.title, "first", a.cfg.Scenes.First)
	err := ebiten.RunGame(a)
	if err != nil {
		a.logger.Error("loop stopped", "err", err)
	}
	return errors.Join(err, a.Cleanup())
}

// Cleanup releases scenes, saves the recording and closes assets. It is
// safe to call more than once.
func (a *App) Cleanup() error {
	if a.state == state.StateStopped {
		return nil
	}
	a.state = state.StateStopped
	a.scenes.Release()

	var errs []error
	if a.recorder != nil && a.recordPath != "" {
		if err := a.recorder.Save(a.recordPath); err != nil {
			errs = append(errs, fmt.Errorf("failed to save replay: %w", err))
		} else {
			a.logger.Info("replay saved", "path", a.recordPath)
		}
	}
	if a.assets != nil {
		if err := a.assets.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close assets: %w", err))
		}
	}

	a.logger.Info("stopped", "frames", a.frame, "code", a.exitCode)
	return errors.Join(errs...)
}

type nopSource struct{}

func (nopSource) PollEvents(dst []event.Event) []event.Event { return dst }
