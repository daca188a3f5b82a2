package locomotion

type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionLanded
	TransitionLeftGround
)

// ClassifyTransition diffs two consecutive grounded samples.
func ClassifyTransition(prev, cur bool) Transition {
	switch {
	case !prev && cur:
		return TransitionLanded
	case prev && !cur:
		return TransitionLeftGround
	default:
		return TransitionNone
	}
}

func (t Transition) String() string {
	switch t {
	case TransitionLanded:
		return "landed"
	case TransitionLeftGround:
		return "left_ground"
	default:
		return "none"
	}
}

// applyTransition performs the state resets owed to a grounded edge.
func applyTransition(s *State, t Transition, cfg JumpConfig) {
	switch t {
	case TransitionLanded:
		s.GroundJumpAvailable = true
	case TransitionLeftGround:
		s.Timing.ResetCoyote(cfg)
	}
}
