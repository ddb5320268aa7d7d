package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	PhaseFailed
)

// PhaseEvent describes a phase boundary of one compilation.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile. It may be
// called from several goroutines when files are compiled in parallel.
type PhaseObserver func(PhaseEvent)
