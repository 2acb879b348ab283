package tui

import (
	"io"

	"github.com/verte-zerg/tuiaim/internal/engine"
)

// NewBellListener returns a listener that rings the terminal bell on hits and
// misses. Write errors are dropped.
func NewBellListener(w io.Writer) engine.Listener {
	return engine.ListenerFunc(func(e engine.Event) {
		switch e.Kind {
		case engine.EventHit, engine.EventMiss:
			_, _ = io.WriteString(w, "\a")
		}
	})
}
