package scene

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/domain/event"
)

// entry is a scene owned by the Manager together with its init flag.
type entry struct {
	scene       Scene
	initialized bool
}

// Manager owns a set of named scenes, one of which may be active.
//
// Switches requested with SetActiveScene are only recorded; they are applied
// by ChangeScene, which the application loop calls once per frame between the
// previous Draw and the next Event/Update. A Manager is meant to be used from
// the loop goroutine only and is created once per application run.
type Manager struct {
	inactive   map[string]*entry
	active     *entry
	pending    string
	hasPending bool
	released   bool

	strict bool
	logger *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report scene errors and transitions.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStrict makes RemoveScene panic when asked to remove the active scene.
// Intended for debug builds and tests.
func WithStrict(strict bool) Option {
	return func(m *Manager) {
		m.strict = strict
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		inactive: make(map[string]*entry),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddScene stores s in the inactive pool under s.Name().
// The scene is not initialized until it first becomes active.
func (m *Manager) AddScene(s Scene) error {
	if s == nil {
		m.logger.Error("add scene rejected", "err", ErrInvalidScene)
		return fmt.Errorf("%w: nil scene", ErrInvalidScene)
	}
	name := s.Name()
	if name == "" {
		m.logger.Error("add scene rejected", "err", ErrInvalidScene)
		return fmt.Errorf("%w: empty name", ErrInvalidScene)
	}
	if m.Has(name) {
		m.logger.Error("add scene rejected", "scene", name, "err", ErrDuplicateName)
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	m.inactive[name] = &entry{scene: s}
	m.logger.Debug("scene added", "scene", name)
	return nil
}

// SetActiveScene requests name to become the active scene at the next
// ChangeScene. A later request before that point replaces this one.
func (m *Manager) SetActiveScene(name string) {
	if m.hasPending && m.pending != name {
		m.logger.Debug("pending scene replaced", "from", m.pending, "to", name)
	}
	m.pending = name
	m.hasPending = true
}

// ChangeScene applies the pending switch, if any.
//
// Switching to the already active scene is a no-op. If the target is not
// registered the request is dropped, the active scene is left untouched and
// ErrUnknownScene is returned.
func (m *Manager) ChangeScene() error {
	if !m.hasPending {
		return nil
	}
	name := m.pending
	m.pending = ""
	m.hasPending = false

	if m.active != nil && m.active.scene.Name() == name {
		return nil
	}

	target, ok := m.inactive[name]
	if !ok {
		m.logger.Error("scene switch aborted", "scene", name, "err", ErrUnknownScene)
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	if prev := m.active; prev != nil {
		prev.scene.Pause()
		m.inactive[prev.scene.Name()] = prev
		m.active = nil
		m.logger.Debug("scene paused", "scene", prev.scene.Name())
	}

	delete(m.inactive, name)
	m.active = target

	if !target.initialized {
		target.initialized = true
		target.scene.Init()
		m.logger.Debug("scene initialized", "scene", name)
	} else {
		target.scene.Resume()
		m.logger.Debug("scene resumed", "scene", name)
	}
	return nil
}

// RemoveScene cleans up and drops an inactive scene.
// Removing the active scene is a programming error: it returns
// ErrInvalidOperation (or panics in strict mode) and changes nothing.
func (m *Manager) RemoveScene(name string) error {
	if m.active != nil && m.active.scene.Name() == name {
		err := fmt.Errorf("%w: cannot remove active scene %q", ErrInvalidOperation, name)
		m.logger.Error("remove scene rejected", "scene", name, "err", err)
		if m.strict {
			panic(err)
		}
		return err
	}

	e, ok := m.inactive[name]
	if !ok {
		m.logger.Warn("remove scene: not found", "scene", name)
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	delete(m.inactive, name)
	e.scene.Cleanup()
	m.logger.Debug("scene removed", "scene", name)
	return nil
}

// RemoveAllInactiveScenes cleans up and drops every inactive scene in name
// order. The active scene is untouched.
func (m *Manager) RemoveAllInactiveScenes() {
	for _, name := range m.inactiveNames() {
		e := m.inactive[name]
		delete(m.inactive, name)
		e.scene.Cleanup()
		m.logger.Debug("scene removed", "scene", name)
	}
}

// RemoveAllScenes cleans up and drops every scene, the active one last, and
// forgets any pending switch.
func (m *Manager) RemoveAllScenes() {
	m.RemoveAllInactiveScenes()
	if m.active != nil {
		e := m.active
		m.active = nil
		e.scene.Cleanup()
		m.logger.Debug("scene removed", "scene", e.scene.Name())
	}
	m.pending = ""
	m.hasPending = false
}

// Release tears the manager down. It is safe to call more than once.
func (m *Manager) Release() {
	if m.released {
		return
	}
	m.released = true
	m.RemoveAllScenes()
}

// EventScene forwards ev to the active scene.
func (m *Manager) EventScene(ev event.Event) {
	if m.active != nil {
		m.active.scene.Event(ev)
	}
}

// UpdateScene updates the active scene.
func (m *Manager) UpdateScene(dt float64) error {
	if m.active == nil {
		return nil
	}
	return m.active.scene.Update(dt)
}

// DrawScene draws the active scene.
func (m *Manager) DrawScene(screen *ebiten.Image) {
	if m.active != nil {
		m.active.scene.Draw(screen)
	}
}

// Active returns the active scene, or nil.
func (m *Manager) Active() Scene {
	if m.active == nil {
		return nil
	}
	return m.active.scene
}

// ActiveName returns the name of the active scene, or "".
func (m *Manager) ActiveName() string {
	if m.active == nil {
		return ""
	}
	return m.active.scene.Name()
}

// Pending returns the requested scene name and whether a switch is pending.
func (m *Manager) Pending() (string, bool) {
	return m.pending, m.hasPending
}

// Has reports whether name is registered, active or inactive.
func (m *Manager) Has(name string) bool {
	return m.IsActive(name) || m.IsInactive(name)
}

// IsActive reports whether name is the active scene.
func (m *Manager) IsActive(name string) bool {
	return m.active != nil && m.active.scene.Name() == name
}

// IsInactive reports whether name is in the inactive pool.
func (m *Manager) IsInactive(name string) bool {
	_, ok := m.inactive[name]
	return ok
}

// IsInitialized reports whether the named scene has been initialized.
func (m *Manager) IsInitialized(name string) bool {
	if m.IsActive(name) {
		return m.active.initialized
	}
	if e, ok := m.inactive[name]; ok {
		return e.initialized
	}
	return false
}

// Names returns every registered scene name, sorted.
func (m *Manager) Names() []string {
	names := m.inactiveNames()
	if m.active != nil {
		names = append(names, m.active.scene.Name())
		slices.Sort(names)
	}
	return names
}

// Len returns the number of registered scenes.
func (m *Manager) Len() int {
	n := len(m.inactive)
	if m.active != nil {
		n++
	}
	return n
}

func (m *Manager) inactiveNames() []string {
	names := make([]string, 0, len(m.inactive))
	for name := range m.inactive {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
