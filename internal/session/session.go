// Package session tracks per-task mediation state: the consecutive-block
// counter that powers loop prevention, and the key of the last audited
// action used to deduplicate repeated block events.
//
// A State belongs to exactly one in-flight task. It is plain counter state,
// not designed for concurrent mutation; tasks that run in parallel must each
// own their own State.
package session

// AbortCeiling is the number of consecutive blocked decisions after which
// the orchestrator must abort the task to prevent an infinite retry loop.
const AbortCeiling = 5

// State is explicit, caller-owned session state threaded through every
// mediation step.
type State struct {
	// ConsecutiveBlocks counts blocked decisions since the last non-blocked
	// one.
	ConsecutiveBlocks int

	// LastLoggedActionKey identifies the most recently audited action so
	// repeated identical blocks are not logged twice in a row.
	LastLoggedActionKey string
}

// New returns a fresh state for the start of a task.
func New() *State {
	return &State{}
}

// Reset clears all counters, for reuse at the start of a new task.
func (s *State) Reset() {
	s.ConsecutiveBlocks = 0
	s.LastLoggedActionKey = ""
}

// ObserveBlock records a blocked decision.
func (s *State) ObserveBlock() {
	s.ConsecutiveBlocks++
}

// ObservePass records any non-blocked decision, which resets the streak.
func (s *State) ObservePass() {
	s.ConsecutiveBlocks = 0
}

// ShouldAbort reports whether the block streak has reached the ceiling.
// The recommendation is advisory: acting on it is the orchestrator's job.
func (s *State) ShouldAbort() bool {
	return s.ConsecutiveBlocks >= AbortCeiling
}
