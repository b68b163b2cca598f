package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/rage/internal/application/scene"
	"github.com/younwookim/rage/internal/application/state"
	"github.com/younwookim/rage/internal/domain/event"
	"github.com/younwookim/rage/internal/infrastructure/config"
)

// mockScene is a test double for the Scene interface that appends every call
// to a shared log.
type mockScene struct {
	scene.Base
	calls     *[]string
	events    []event.Event
	dts       []float64
	updateErr error
	onUpdate  func()
}

func newMockScene(name string, calls *[]string) *mockScene {
	return &mockScene{Base: scene.NewBase(name), calls: calls}
}

func (m *mockScene) record(call string) {
	*m.calls = append(*m.calls, m.Name()+"."+call)
}

func (m *mockScene) Init()    { m.record("Init") }
func (m *mockScene) Cleanup() { m.record("Cleanup") }
func (m *mockScene) Pause()   { m.record("Pause") }
func (m *mockScene) Resume()  { m.record("Resume") }

func (m *mockScene) Event(ev event.Event) {
	m.events = append(m.events, ev)
	m.record("Event")
}

func (m *mockScene) Update(dt float64) error {
	m.dts = append(m.dts, dt)
	m.record("Update")
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.updateErr
}

func (m *mockScene) Draw(*ebiten.Image) { m.record("Draw") }

// scriptedSource returns one scripted batch per frame.
type scriptedSource struct {
	frames [][]event.Event
	polled int
}

func (s *scriptedSource) PollEvents(dst []event.Event) []event.Event {
	if s.polled < len(s.frames) {
		dst = append(dst, s.frames[s.polled]...)
	}
	s.polled++
	return dst
}

type mockRecorder struct {
	frames  [][]event.Event
	saved   string
	saveErr error
}

func (r *mockRecorder) RecordFrame(events []event.Event) {
	r.frames = append(r.frames, append([]event.Event(nil), events...))
}

func (r *mockRecorder) Save(filename string) error {
	r.saved = filename
	return r.saveErr
}

type mockAssets struct {
	syncCalled  int
	closeCalled int
	calls       *[]string
}

func (m *mockAssets) Sync() int {
	m.syncCalled++
	if m.calls != nil {
		*m.calls = append(*m.calls, "assets.Sync")
	}
	return 0
}

func (m *mockAssets) Close() error {
	m.closeCalled++
	return nil
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	a, err := New(config.Default(), opts...)
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	a := newTestApp(t)

	assert.NotNil(t, a.Scenes())
	assert.Equal(t, state.StateInitializing, a.State())
	assert.True(t, a.IsRunning())
	assert.NotEmpty(t, a.Session())
	assert.Equal(t, "RAGE", a.Title())
}

func TestNew_DefaultVideoMode(t *testing.T) {
	a, err := New(config.AppConfig{})
	require.NoError(t, err)

	w, h := a.Layout(1920, 1080)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Width = -1
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_SessionsDiffer(t *testing.T) {
	a := newTestApp(t)
	b := newTestApp(t)
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestApp_FirstSceneActivatesAtFirstBoundary(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	a := newTestApp(t)

	require.NoError(t, a.SetFirstScene(menu))
	assert.Empty(t, a.Scenes().ActiveName(), "activation must wait for the boundary")

	require.NoError(t, a.Update())
	assert.Equal(t, "Menu", a.Scenes().ActiveName())
	assert.Equal(t, []string{"Menu.Init", "Menu.Update"}, calls)
}

func TestApp_SetFirstScene_Duplicate(t *testing.T) {
	var calls []string
	a := newTestApp(t)
	require.NoError(t, a.SetFirstScene(newMockScene("Menu", &calls)))

	err := a.SetFirstScene(newMockScene("Menu", &calls))
	assert.ErrorIs(t, err, scene.ErrDuplicateName)
}

func TestApp_FrameOrdering(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	game := newMockScene("Game", &calls)
	assets := &mockAssets{calls: &calls}
	src := &scriptedSource{frames: [][]event.Event{
		nil,
		{event.KeyPressed(1)},
		{event.KeyPressed(2)},
	}}
	a := newTestApp(t, WithEventSource(src), WithAssets(assets))
	require.NoError(t, a.Scenes().AddScene(game))
	require.NoError(t, a.SetFirstScene(menu))

	screen := ebiten.NewImage(16, 16)

	// Frame 1: Menu activated.
	require.NoError(t, a.Update())
	a.Draw(screen)

	// Frame 2: Menu requests Game during Update; the rest of the frame stays on Menu.
	menu.onUpdate = func() { a.Scenes().SetActiveScene("Game") }
	require.NoError(t, a.Update())
	a.Draw(screen)
	menu.onUpdate = nil

	// Frame 3: the switch happens before any event reaches a scene.
	calls = calls[:0]
	require.NoError(t, a.Update())
	a.Draw(screen)

	assert.Equal(t, []string{
		"Menu.Pause",
		"Game.Init",
		"assets.Sync",
		"Game.Event",
		"Game.Update",
		"Game.Draw",
	}, calls)
	assert.Len(t, menu.events, 1)
	assert.Equal(t, []event.Event{event.KeyPressed(2)}, game.events)
	assert.Equal(t, 3, assets.syncCalled)
}

func TestApp_UnknownSceneKeepsActive(t *testing.T) {
	var calls []string
	var buf bytes.Buffer
	menu := newMockScene("Menu", &calls)
	a := newTestApp(t, WithLogger(log.New(&buf)))
	require.NoError(t, a.SetFirstScene(menu))
	require.NoError(t, a.Update())

	a.Scenes().SetActiveScene("Missing")
	require.NoError(t, a.Update())

	assert.Equal(t, "Menu", a.Scenes().ActiveName())
	assert.Contains(t, buf.String(), "Missing")
	assert.NotContains(t, calls, "Menu.Pause")
}

func TestApp_ClosedEventQuits(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	src := &scriptedSource{frames: [][]event.Event{
		nil,
		{event.Closed()},
	}}
	a := newTestApp(t, WithEventSource(src))
	require.NoError(t, a.SetFirstScene(menu))

	require.NoError(t, a.Update())
	err := a.Update()

	assert.ErrorIs(t, err, ebiten.Termination)
	assert.False(t, a.IsRunning())
	assert.Equal(t, 0, a.ExitCode())
	assert.Equal(t, []event.Event{event.Closed()}, menu.events, "scene still sees the close event")
	assert.Len(t, menu.dts, 1, "no update after close")

	assert.ErrorIs(t, a.Update(), ebiten.Termination)
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t)
	a.Quit(3)

	assert.False(t, a.IsRunning())
	assert.Equal(t, 3, a.ExitCode())
	assert.Equal(t, state.StateQuitting, a.State())
	assert.ErrorIs(t, a.Update(), ebiten.Termination)

	a.Quit(5)
	assert.Equal(t, 3, a.ExitCode(), "second quit is ignored")
}

func TestApp_SceneErrorTerminates(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	menu.updateErr = errors.New("boom")
	a := newTestApp(t)
	require.NoError(t, a.SetFirstScene(menu))

	err := a.Update()
	assert.EqualError(t, err, "boom")
	assert.False(t, a.IsRunning())
	assert.Equal(t, 1, a.ExitCode())
}

func TestApp_DeltaTime(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	base := time.Unix(0, 0)
	ticks := []time.Duration{0, 20 * time.Millisecond, 5 * time.Second}
	i := 0
	now := func() time.Time {
		ts := base.Add(ticks[i])
		i++
		return ts
	}
	a := newTestApp(t, WithClock(now))
	require.NoError(t, a.SetFirstScene(menu))

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Update())
	}

	require.Len(t, menu.dts, 3)
	assert.InDelta(t, 1.0/60.0, menu.dts[0], 1e-9, "first frame uses nominal step")
	assert.InDelta(t, 0.02, menu.dts[1], 1e-9)
	assert.InDelta(t, maxDT, menu.dts[2], 1e-9, "stalls are capped")
}

func TestApp_SetDT(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	a := newTestApp(t)
	a.SetDT(0.5)
	require.NoError(t, a.SetFirstScene(menu))

	require.NoError(t, a.Update())
	assert.Equal(t, []float64{0.5}, menu.dts)
}

func TestApp_RecorderGetsEveryFrame(t *testing.T) {
	rec := &mockRecorder{}
	src := &scriptedSource{frames: [][]event.Event{
		{event.TextEntered('a')},
		nil,
	}}
	a := newTestApp(t, WithEventSource(src), WithRecorder(rec, "out.json"))

	require.NoError(t, a.Update())
	require.NoError(t, a.Update())

	require.Len(t, rec.frames, 2)
	assert.Equal(t, []event.Event{event.TextEntered('a')}, rec.frames[0])
	assert.Empty(t, rec.frames[1])
	assert.Equal(t, 2, a.Frame())
}

func TestApp_Cleanup(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	other := newMockScene("Other", &calls)
	rec := &mockRecorder{}
	assets := &mockAssets{}
	a := newTestApp(t, WithRecorder(rec, "out.json"), WithAssets(assets))
	require.NoError(t, a.Scenes().AddScene(other))
	require.NoError(t, a.SetFirstScene(menu))
	require.NoError(t, a.Update())

	require.NoError(t, a.Cleanup())
	require.NoError(t, a.Cleanup())

	assert.Equal(t, 0, a.Scenes().Len())
	assert.Contains(t, calls, "Menu.Cleanup")
	assert.Contains(t, calls, "Other.Cleanup")
	assert.Equal(t, "out.json", rec.saved)
	assert.Equal(t, 1, assets.closeCalled)
	assert.Equal(t, state.StateStopped, a.State())
}

func TestApp_CleanupReportsSaveError(t *testing.T) {
	rec := &mockRecorder{saveErr: errors.New("disk full")}
	a := newTestApp(t, WithRecorder(rec, "out.json"))

	err := a.Cleanup()
	assert.ErrorContains(t, err, "disk full")
}

func TestApp_Draw_DelegatesToActiveScene(t *testing.T) {
	var calls []string
	menu := newMockScene("Menu", &calls)
	a := newTestApp(t)
	require.NoError(t, a.SetFirstScene(menu))

	img := ebiten.NewImage(32, 32)
	a.Draw(img)
	assert.Empty(t, calls, "nothing is active before the first boundary")

	require.NoError(t, a.Update())
	a.Draw(img)
	assert.Equal(t, "Menu.Draw", calls[len(calls)-1])
}

func TestApp_SetTitle(t *testing.T) {
	a := newTestApp(t)
	a.SetTitle("Other")
	assert.Equal(t, "Other", a.Title())
}

func TestApp_ExecutableDir(t *testing.T) {
	a := newTestApp(t)
	assert.NotEmpty(t, a.ExecutableDir())
}

func TestClock(t *testing.T) {
	base := time.Unix(100, 0)
	cur := base
	c := NewClock(func() time.Time { return cur }, 0.1)

	assert.Equal(t, 0.1, c.Tick())
	cur = cur.Add(30 * time.Millisecond)
	assert.InDelta(t, 0.03, c.Tick(), 1e-9)
	cur = cur.Add(-time.Second)
	assert.Equal(t, 0.0, c.Tick(), "time going backwards yields zero")

	c.Reset()
	assert.Equal(t, 0.1, c.Tick())
}
