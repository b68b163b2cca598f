package scene

import "errors"

var (
	// ErrInvalidScene is returned when adding a nil scene or a scene without a name.
	ErrInvalidScene = errors.New("invalid scene")
	// ErrDuplicateName is returned when a scene name is already registered.
	ErrDuplicateName = errors.New("duplicate scene name")
	// ErrUnknownScene is returned when a name is neither inactive nor active.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidOperation is returned when removing the active scene.
	ErrInvalidOperation = errors.New("invalid scene operation")
)
