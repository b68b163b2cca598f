package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/rage/internal/domain/event"
)

func TestFrameEvents_JSONShape(t *testing.T) {
	fe := FrameEvents{F: 3, Events: []event.Event{event.KeyPressed(42)}}

	data, err := json.Marshal(fe)
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3,"events":[{"k":5,"key":42}]}`, string(data))
}

func TestRecorder_SkipsEmptyFrames(t *testing.T) {
	r := NewRecorder("session-1", "Menu")

	r.RecordFrame(nil)
	r.RecordFrame([]event.Event{event.KeyPressed(1)})
	r.RecordFrame(nil)

	assert.Equal(t, 3, r.FrameCount())
	data := r.Data()
	require.Len(t, data.Frames, 1)
	assert.Equal(t, 1, data.Frames[0].F)
	assert.Equal(t, 3, data.FrameCount)
	assert.Equal(t, "session-1", data.Session)
	assert.Equal(t, "Menu", data.FirstScene)
}

func TestRecorder_SetSession(t *testing.T) {
	r := NewRecorder("", "Menu")
	r.SetSession("late")

	assert.Equal(t, "late", r.Data().Session)
}

func TestRecorder_CopiesEvents(t *testing.T) {
	r := NewRecorder("s", "")
	buf := []event.Event{event.KeyPressed(1)}

	r.RecordFrame(buf)
	buf[0] = event.KeyPressed(2)

	assert.Equal(t, 1, r.Data().Frames[0].Events[0].Key)
}

func TestRecorder_Stop(t *testing.T) {
	r := NewRecorder("s", "")
	r.RecordFrame(nil)
	r.Stop()
	r.RecordFrame([]event.Event{event.Closed()})

	assert.False(t, r.IsRecording())
	assert.Equal(t, 1, r.FrameCount())
	assert.Empty(t, r.Data().Frames)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("s", "")
	err := r.Save(filepath.Join(t.TempDir(), "x.json"))
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	r := NewRecorder("abc", "Menu")
	r.SetDT(1.0 / 30)
	r.RecordFrame([]event.Event{event.TextEntered('x')})
	r.RecordFrame(nil)
	r.RecordFrame([]event.Event{event.MouseMoved(10, 20), event.KeyReleased(7)})

	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, r.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, r.Data().Frames, loaded.Frames)
	assert.Equal(t, 3, loaded.FrameCount)
	assert.Equal(t, "abc", loaded.Session)
	assert.Equal(t, 1.0/30, loaded.DT)
	assert.Equal(t, 1.0/30, NewReplayer(*loaded).DT())
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadReplay(bad)
	assert.Error(t, err)

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1"}`), 0o644))
	_, err = LoadReplay(old)
	assert.Error(t, err)
}

func TestReplayer_PlaysFramesInOrder(t *testing.T) {
	data := CreateTestReplayData(5, 2, 9)
	r := NewReplayer(data)

	var got [][]event.Event
	for !r.Done() {
		got = append(got, r.PollEvents(nil))
	}

	require.Len(t, got, 5)
	assert.Equal(t, []event.Event{event.KeyPressed(9)}, got[0])
	assert.Empty(t, got[1])
	assert.Equal(t, []event.Event{event.KeyPressed(9)}, got[2])
	assert.Empty(t, got[3])
	assert.Equal(t, []event.Event{event.KeyPressed(9)}, got[4])
}

func TestReplayer_ClosesWhenExhausted(t *testing.T) {
	r := NewReplayer(CreateTestReplayData(1, 0, 0))

	assert.Empty(t, r.PollEvents(nil))
	assert.True(t, r.Done())
	assert.Equal(t, []event.Event{event.Closed()}, r.PollEvents(nil))
	assert.Empty(t, r.PollEvents(nil))
}

func TestReplayer_AppendsToDst(t *testing.T) {
	r := NewReplayer(CreateTestReplayData(1, 1, 3))
	dst := []event.Event{event.Resized(1, 1)}

	dst = r.PollEvents(dst)
	assert.Len(t, dst, 2)
}

func TestReplayer_Reset(t *testing.T) {
	r := NewReplayer(CreateTestReplayData(3, 1, 1))
	r.PollEvents(nil)
	r.PollEvents(nil)
	assert.Equal(t, 2, r.CurrentFrame())

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	assert.Len(t, r.PollEvents(nil), 1)
	assert.Equal(t, 3, r.TotalFrames())
	assert.Equal(t, "test", r.Session())
}
