package employee

import "fmt"

// Phase is the state of a GraphBuilder run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCreating
	PhaseLinking
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCreating:
		return "creating"
	case PhaseLinking:
		return "linking"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var transitions = map[Phase][]Phase{
	PhaseIdle:     {PhaseCreating},
	PhaseCreating: {PhaseLinking, PhaseFailed},
	PhaseLinking:  {PhaseDone, PhaseFailed},
	PhaseDone:     {PhaseCreating},
	PhaseFailed:   {PhaseCreating},
}

// CanTransition reports whether a run may move from p to next.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
