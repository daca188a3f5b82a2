package locomotion

import "github.com/go-gl/mathgl/mgl32"

type JumpExecutor struct {
	cfg JumpConfig
}

func NewJumpExecutor(cfg JumpConfig) JumpExecutor {
	return JumpExecutor{cfg: cfg}
}

// CanJump reports whether a buffered jump would be honored on this tick.
func CanJump(s State) bool {
	return s.GroundJumpAvailable &&
		s.Timing.HasBufferedJump() &&
		(s.Grounded || s.Timing.IsCoyoteActive())
}

// Execute consumes the buffered jump if it is legal: the vertical velocity is
// overwritten with the jump force and the ground jump is spent until the next
// landing. On failure neither s nor velocity is touched.
func (j JumpExecutor) Execute(s *State, velocity *mgl32.Vec3) bool {
	if s == nil || velocity == nil || !CanJump(*s) {
		return false
	}
	velocity[1] = j.cfg.JumpForce
	s.GroundJumpAvailable = false
	s.Timing.ClearBuffer()
	return true
}
