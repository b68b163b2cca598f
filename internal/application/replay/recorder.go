package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/younwookim/rage/internal/domain/event"
)

// ErrNoFrames is returned by Save when nothing was recorded.
var ErrNoFrames = errors.New("no frames to save")

// Recorder handles event recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for the given session
func NewRecorder(session, firstScene string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:    Version,
			Session:    session,
			FirstScene: firstScene,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]FrameEvents, 0, 256),
		},
		recording: true,
	}
}

// SetSession sets the session id stored with the recording
func (r *Recorder) SetSession(session string) {
	r.data.Session = session
}

// SetDT stores the fixed step the recording runs at
func (r *Recorder) SetDT(dt float64) {
	r.data.DT = dt
}

// RecordFrame records the events of one frame and advances the frame counter
func (r *Recorder) RecordFrame(events []event.Event) {
	if !r.recording {
		return
	}

	if len(events) > 0 {
		r.data.Frames = append(r.data.Frames, FrameEvents{
			F:      r.frame,
			Events: slices.Clone(events),
		})
	}
	r.frame++
	r.data.FrameCount = r.frame
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if r.frame == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames, including empty ones
func (r *Recorder) FrameCount() int {
	return r.frame
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
