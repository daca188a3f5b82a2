package locomotion

// State is the per-character mutable locomotion state. It is owned by a
// Controller and only mutated by its frame and fixed callbacks.
type State struct {
	Grounded            bool
	WasGrounded         bool
	Timing              JumpTiming
	GroundJumpAvailable bool

	// Yaw is unbounded; Pitch stays within the configured look range.
	Yaw   float32
	Pitch float32
}

func NewState() State {
	return State{GroundJumpAvailable: true}
}

// JumpTiming holds the coyote and jump-buffer countdowns in seconds.
type JumpTiming struct {
	Coyote float32
	Buffer float32
}

// Tick decays both timers by dt. The coyote timer only runs while airborne.
func (t *JumpTiming) Tick(dt float32, grounded bool) {
	if !grounded {
		t.Coyote = countDown(t.Coyote, dt)
	}
	t.Buffer = countDown(t.Buffer, dt)
}

// Latch arms the jump buffer. Called on the rising edge of jump input.
func (t *JumpTiming) Latch(cfg JumpConfig) {
	t.Buffer = cfg.JumpBufferTime
}

func (t *JumpTiming) ResetCoyote(cfg JumpConfig) {
	t.Coyote = cfg.CoyoteTime
}

func (t *JumpTiming) ClearBuffer() {
	t.Buffer = 0
}

func (t JumpTiming) IsCoyoteActive() bool {
	return t.Coyote > 0
}

func (t JumpTiming) HasBufferedJump() bool {
	return t.Buffer > 0
}

func countDown(v, dt float32) float32 {
	if v <= 0 {
		return 0
	}
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}
