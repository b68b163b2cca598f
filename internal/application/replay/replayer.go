package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/rage/internal/domain/event"
)

// Replayer plays recorded events back, one frame per PollEvents call
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index into data.Frames
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// PollEvents appends the events recorded for the current frame to dst and
// advances to the next frame. Once the recording is exhausted a single
// Closed event is emitted and every later call returns dst unchanged.
func (r *Replayer) PollEvents(dst []event.Event) []event.Event {
	frame := r.frame
	r.frame++

	if frame == r.data.FrameCount {
		return append(dst, event.Closed())
	}
	if frame > r.data.FrameCount {
		return dst
	}

	for r.next < len(r.data.Frames) && r.data.Frames[r.next].F < frame {
		r.next++
	}
	if r.next < len(r.data.Frames) && r.data.Frames[r.next].F == frame {
		dst = append(dst, r.data.Frames[r.next].Events...)
		r.next++
	}
	return dst
}

// Done reports whether every recorded frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= r.data.FrameCount
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.data.FrameCount
}

// Session returns the session id of the recording
func (r *Replayer) Session() string {
	return r.data.Session
}

// FirstScene returns the scene that was first activated when recording
func (r *Replayer) FirstScene() string {
	return r.data.FirstScene
}

// DT returns the fixed step of the recording, or 0 if none was stored
func (r *Replayer) DT() float64 {
	return r.data.DT
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}

// CreateTestReplayData creates replay data for testing: one key press on
// every keyEvery-th frame.
func CreateTestReplayData(frames int, keyEvery int, key int) ReplayData {
	data := ReplayData{
		Version:    Version,
		Session:    "test",
		StartTime:  time.Now().Format(time.RFC3339),
		FrameCount: frames,
	}

	if keyEvery <= 0 {
		return data
	}
	for i := 0; i < frames; i += keyEvery {
		data.Frames = append(data.Frames, FrameEvents{
			F:      i,
			Events: []event.Event{event.KeyPressed(key)},
		})
	}

	return data
}
