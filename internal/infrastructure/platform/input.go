// Package platform turns ebiten's polled input state into system events.
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/rage/internal/domain/event"
)

// InputState is everything read from ebiten in one frame.
type InputState struct {
	PressedKeys     []ebiten.Key
	ReleasedKeys    []ebiten.Key
	Chars           []rune
	MouseX          int
	MouseY          int
	PressedButtons  []ebiten.MouseButton
	ReleasedButtons []ebiten.MouseButton
	WheelX          float64
	WheelY          float64
	CloseRequested  bool
	Focused         bool
	Width           int
	Height          int
}

// Source is an event source backed by ebiten's input state. PollEvents must
// be called from Update.
type Source struct {
	prev    InputState
	started bool
	state   InputState
}

// NewSource creates a Source.
func NewSource() *Source {
	return &Source{}
}

// PollEvents appends the events of the current frame to dst.
func (s *Source) PollEvents(dst []event.Event) []event.Event {
	s.capture(&s.state)
	return s.Translate(s.state, dst)
}

// capture reads the current frame's input into st, reusing its slices.
func (s *Source) capture(st *InputState) {
	st.PressedKeys = inpututil.AppendJustPressedKeys(st.PressedKeys[:0])
	st.ReleasedKeys = inpututil.AppendJustReleasedKeys(st.ReleasedKeys[:0])
	st.Chars = ebiten.AppendInputChars(st.Chars[:0])
	st.MouseX, st.MouseY = ebiten.CursorPosition()

	st.PressedButtons = st.PressedButtons[:0]
	st.ReleasedButtons = st.ReleasedButtons[:0]
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			st.PressedButtons = append(st.PressedButtons, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			st.ReleasedButtons = append(st.ReleasedButtons, b)
		}
	}

	st.WheelX, st.WheelY = ebiten.Wheel()
	st.CloseRequested = ebiten.IsWindowBeingClosed()
	st.Focused = ebiten.IsFocused()
	st.Width, st.Height = ebiten.WindowSize()
}

// Translate appends the events implied by cur, compared to the state of the
// previous call, to dst. The first call only establishes the baseline for
// cursor, focus and size.
func (s *Source) Translate(cur InputState, dst []event.Event) []event.Event {
	if cur.CloseRequested {
		dst = append(dst, event.Closed())
	}

	if s.started {
		if cur.Width != s.prev.Width || cur.Height != s.prev.Height {
			dst = append(dst, event.Resized(cur.Width, cur.Height))
		}
		if cur.Focused != s.prev.Focused {
			if cur.Focused {
				dst = append(dst, event.Event{Kind: event.KindFocusGained})
			} else {
				dst = append(dst, event.Event{Kind: event.KindFocusLost})
			}
		}
	}

	for _, k := range cur.PressedKeys {
		dst = append(dst, event.KeyPressed(int(k)))
	}
	for _, k := range cur.ReleasedKeys {
		dst = append(dst, event.KeyReleased(int(k)))
	}
	for _, r := range cur.Chars {
		dst = append(dst, event.TextEntered(r))
	}

	if s.started && (cur.MouseX != s.prev.MouseX || cur.MouseY != s.prev.MouseY) {
		dst = append(dst, event.MouseMoved(cur.MouseX, cur.MouseY))
	}
	for _, b := range cur.PressedButtons {
		dst = append(dst, event.Event{Kind: event.KindMouseButtonPressed, Button: int(b), X: cur.MouseX, Y: cur.MouseY})
	}
	for _, b := range cur.ReleasedButtons {
		dst = append(dst, event.Event{Kind: event.KindMouseButtonReleased, Button: int(b), X: cur.MouseX, Y: cur.MouseY})
	}
	if cur.WheelX != 0 || cur.WheelY != 0 {
		dst = append(dst, event.Event{Kind: event.KindMouseWheelScrolled, WheelX: cur.WheelX, WheelY: cur.WheelY, X: cur.MouseX, Y: cur.MouseY})
	}

	s.prev.MouseX, s.prev.MouseY = cur.MouseX, cur.MouseY
	s.prev.Focused = cur.Focused
	s.prev.Width, s.prev.Height = cur.Width, cur.Height
	s.started = true
	return dst
}
