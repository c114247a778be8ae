package render

// StageState is the lifecycle of one pipeline stage. Synchronous
// stages only move between Clean and Dirty. The syntax stage also
// uses Running while a worker computes it; whether a finished worker
// result may still be applied is decided by token identity, not by
// this state, so a stale completion is a no-op by construction.
type StageState uint8

const (
	// StageClean means the stage's output is current.
	StageClean StageState = iota

	// StageDirty means the stage must run before its output is used.
	StageDirty

	// StageRunning means an asynchronous computation is in flight.
	StageRunning
)

// String returns the state name.
func (s StageState) String() string {
	switch s {
	case StageClean:
		return "clean"
	case StageDirty:
		return "dirty"
	case StageRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Stages is a snapshot of all four stage states, exposed for
// diagnostics and tests.
type Stages struct {
	Text       StageState
	Attributes StageState
	Syntax     StageState
	Layout     StageState
}

// Runner executes syntax-highlighting work off the caller's
// goroutine.
type Runner interface {
	Go(fn func())
}

// AsyncRunner runs each function on its own goroutine. It is the
// default runner.
type AsyncRunner struct{}

// Go implements Runner.
func (AsyncRunner) Go(fn func()) {
	go fn()
}

// SyncRunner runs functions inline. It makes PrepareForDisplay fully
// synchronous, which some hosts and most tests want.
type SyncRunner struct{}

// Go implements Runner.
func (SyncRunner) Go(fn func()) {
	fn()
}
