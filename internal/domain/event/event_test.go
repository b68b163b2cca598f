package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindClosed, "Closed"},
		{KindResized, "Resized"},
		{KindKeyPressed, "KeyPressed"},
		{KindKeyReleased, "KeyReleased"},
		{KindTextEntered, "TextEntered"},
		{KindMouseMoved, "MouseMoved"},
		{KindMouseWheelScrolled, "MouseWheelScrolled"},
		{KindUnknown, "Unknown"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, KindClosed, Closed().Kind)

	ev := KeyPressed(42)
	assert.Equal(t, KindKeyPressed, ev.Kind)
	assert.Equal(t, 42, ev.Key)

	ev = MouseMoved(10, 20)
	assert.Equal(t, 10, ev.X)
	assert.Equal(t, 20, ev.Y)

	ev = Resized(640, 480)
	assert.Equal(t, 640, ev.Width)
	assert.Equal(t, 480, ev.Height)

	assert.Equal(t, 'x', TextEntered('x').Rune)
}
