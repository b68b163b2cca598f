// Package scene defines the Scene interface for game screens and the Manager
// that owns them.
//
// Each game screen (title, menu, playing, settings, etc.) implements
// the Scene interface. Scenes are registered with a Manager by name; the
// application loop forwards events, updates and draws to the active scene
// and applies requested switches once per frame through Manager.ChangeScene.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/domain/event"
)

// Scene represents a game screen (title, menu, playing, settings, etc.)
//
// The Manager guarantees the call order
//
//	Init → {Resume → [Event|Update|Draw]* → Pause}* → Cleanup
//
// with exactly one Init and one Cleanup, and Resume never before Init.
// The first activation receives Init instead of Resume.
type Scene interface {
	// Name returns the unique key the scene is registered under.
	Name() string

	// Init is called once, the first time the scene becomes active.
	Init()

	// Cleanup is called once, right before the Manager drops the scene.
	// It is called even if the scene was never initialized.
	Cleanup()

	// Pause is called when the scene stops being active but is retained.
	Pause()

	// Resume is called on every reactivation after the first.
	Resume()

	// Event receives a system event while the scene is active.
	Event(ev event.Event)

	// Update updates the scene state.
	// dt is the delta time in seconds (typically 1/60).
	// Returns an error to terminate the game.
	Update(dt float64) error

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)
}

// Switcher is the part of the Manager that scenes use to request a switch.
type Switcher interface {
	SetActiveScene(name string)
}

// Base provides the scene name and no-op lifecycle hooks.
// Concrete scenes embed it and override what they need.
type Base struct {
	name string
}

// NewBase creates a Base with the given scene name.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the scene name.
func (b *Base) Name() string { return b.name }

func (b *Base) Init() {}
func (b *Base) Cleanup() {}
func (b *Base) Pause() {}
func (b *Base) Resume() {}
func (b *Base) Event(event.Event) {}
func (b *Base) Update(float64) error { return nil }
func (b *Base) Draw(*ebiten.Image) {}
