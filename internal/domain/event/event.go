// Package event defines the platform-independent system events delivered to scenes.
//
// Events are plain data so that they can be recorded and replayed; the
// platform layer translates ebiten input state into this form once per frame.
package event

// Kind identifies the type of a system event.
type Kind int

const (
	KindUnknown Kind = iota
	KindClosed
	KindResized
	KindFocusLost
	KindFocusGained
	KindKeyPressed
	KindKeyReleased
	KindTextEntered
	KindMouseMoved
	KindMouseButtonPressed
	KindMouseButtonReleased
	KindMouseWheelScrolled
)

// String returns the string representation of the event kind
func (k Kind) String() string {
	switch k {
	case KindClosed:
		return "Closed"
	case KindResized:
		return "Resized"
	case KindFocusLost:
		return "FocusLost"
	case KindFocusGained:
		return "FocusGained"
	case KindKeyPressed:
		return "KeyPressed"
	case KindKeyReleased:
		return "KeyReleased"
	case KindTextEntered:
		return "TextEntered"
	case KindMouseMoved:
		return "MouseMoved"
	case KindMouseButtonPressed:
		return "MouseButtonPressed"
	case KindMouseButtonReleased:
		return "MouseButtonReleased"
	case KindMouseWheelScrolled:
		return "MouseWheelScrolled"
	default:
		return "Unknown"
	}
}

// Event is a single system event.
//
// Only the fields relevant to Kind are set:
//   - Key events: Key
//   - TextEntered: Rune
//   - Mouse moves and buttons: X, Y (and Button)
//   - MouseWheelScrolled: WheelX, WheelY
//   - Resized: Width, Height
type Event struct {
	Kind   Kind    `json:"k"`
	Key    int     `json:"key,omitempty"` // ebiten.Key value
	Button int     `json:"btn,omitempty"` // ebiten.MouseButton value
	Rune   rune    `json:"r,omitempty"`   // TextEntered
	X      int     `json:"x,omitempty"`   // Cursor X
	Y      int     `json:"y,omitempty"`   // Cursor Y
	Width  int     `json:"w,omitempty"`   // Resized
	Height int     `json:"h,omitempty"`   // Resized
	WheelX float64 `json:"wx,omitempty"`  // Wheel delta X
	WheelY float64 `json:"wy,omitempty"`  // Wheel delta Y
}

// Closed returns a window close request event.
func Closed() Event {
	return Event{Kind: KindClosed}
}

// KeyPressed returns a key press event for the given ebiten key code.
func KeyPressed(key int) Event {
	return Event{Kind: KindKeyPressed, Key: key}
}

// KeyReleased returns a key release event for the given ebiten key code.
func KeyReleased(key int) Event {
	return Event{Kind: KindKeyReleased, Key: key}
}

// TextEntered returns a text input event.
func TextEntered(r rune) Event {
	return Event{Kind: KindTextEntered, Rune: r}
}

// MouseMoved returns a cursor move event.
func MouseMoved(x, y int) Event {
	return Event{Kind: KindMouseMoved, X: x, Y: y}
}

// Resized returns a window resize event.
func Resized(w, h int) Event {
	return Event{Kind: KindResized, Width: w, Height: h}
}
