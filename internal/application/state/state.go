package state

// AppState represents the run state of the application
type AppState int

const (
	StateUninitialized AppState = iota
	StateInitializing
	StateRunning
	StateQuitting
	StateStopped
)

// String returns the string representation of the application state
func (s AppState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateRunning:
		return "Running"
	case StateQuitting:
		return "Quitting"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// IsRunning reports whether the game loop should keep iterating
func (s AppState) IsRunning() bool {
	return s == StateInitializing || s == StateRunning
}
