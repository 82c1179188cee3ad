package monitor

import "time"

// TurnEvent describes one completed agent turn for operator visibility.
type TurnEvent struct {
	Timestamp   time.Time
	RequestID   string
	Provider    string
	Messages    int // conversation length in the request
	Tasks       int // tasks in the merged workspace
	Automations int
	Decisions   int
	Duration    time.Duration
	Err         error // nil for a successful turn
}

// Monitor receives turn events. Implementations must be safe for concurrent
// use; the handler reports from request goroutines.
type Monitor interface {
	OnTurn(ev TurnEvent)
}
