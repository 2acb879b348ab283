package engine

import "time"

// EventKind identifies a session side effect for the host.
type EventKind int

const (
	EventHit EventKind = iota
	EventMiss
	EventLifeLost
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventLifeLost:
		return "life-lost"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is emitted after the state change it describes has been applied.
type Event struct {
	Kind  EventKind
	At    time.Time
	Count int
	Lives int
}

// Listener receives fire-and-forget notifications such as hit and miss sounds.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
