// Package replay records the events delivered to the scene manager each frame
// and plays them back in place of the platform event source.
package replay

import "github.com/younwookim/rage/internal/domain/event"

// Version is written to every replay file.
const Version = "1.0"

// FrameEvents records the events delivered in a single frame.
// Frames without events are not stored.
type FrameEvents struct {
	F      int           `json:"f"` // Frame number
	Events []event.Event `json:"events"`
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version    string        `json:"version"`
	Session    string        `json:"session"`
	FirstScene string        `json:"firstScene,omitempty"`
	StartTime  string        `json:"startTime"`
	DT         float64       `json:"dt,omitempty"` // Fixed step used while recording, seconds
	FrameCount int           `json:"frameCount"`
	Frames     []FrameEvents `json:"frames"`
}
