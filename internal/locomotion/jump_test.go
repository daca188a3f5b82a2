package locomotion

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestJumpExecutor_LegalityTable(t *testing.T) {
	cfg := JumpConfig{JumpForce: 6, CoyoteTime: 0.2, JumpBufferTime: 0.15}
	exec := NewJumpExecutor(cfg)

	for mask := 0; mask < 16; mask++ {
		available := mask&1 != 0
		buffered := mask&2 != 0
		grounded := mask&4 != 0
		coyote := mask&8 != 0

		t.Run(fmt.Sprintf("avail=%t buf=%t ground=%t coyote=%t", available, buffered, grounded, coyote), func(t *testing.T) {
			s := NewState()
			s.GroundJumpAvailable = available
			s.Grounded = grounded
			if buffered {
				s.Timing.Buffer = 0.1
			}
			if coyote {
				s.Timing.Coyote = 0.1
			}
			before := s
			vel := mgl32.Vec3{1, -3, 2}

			want := available && buffered && (grounded || coyote)
			if CanJump(s) != want {
				t.Fatalf("CanJump = %t, want %t", CanJump(s), want)
			}
			got := exec.Execute(&s, &vel)
			if got != want {
				t.Fatalf("Execute = %t, want %t", got, want)
			}

			if !want {
				if s != before {
					t.Fatalf("failed jump mutated state: %+v -> %+v", before, s)
				}
				if vel != (mgl32.Vec3{1, -3, 2}) {
					t.Fatalf("failed jump mutated velocity: %v", vel)
				}
				return
			}

			if vel != (mgl32.Vec3{1, 6, 2}) {
				t.Fatalf("velocity = %v, want vertical overwrite to 6", vel)
			}
			if s.GroundJumpAvailable {
				t.Fatalf("GroundJumpAvailable still true after jump")
			}
			if s.Timing.Buffer != 0 {
				t.Fatalf("buffer = %.4f after jump, want 0", s.Timing.Buffer)
			}
			if s.Timing.Coyote != before.Timing.Coyote {
				t.Fatalf("jump touched coyote timer")
			}
		})
	}
}

func TestJumpExecutor_OverwritesRatherThanAdds(t *testing.T) {
	exec := NewJumpExecutor(JumpConfig{JumpForce: 6})
	s := NewState()
	s.Grounded = true
	s.Timing.Buffer = 0.1
	vel := mgl32.Vec3{0, 4, 0}

	if !exec.Execute(&s, &vel) {
		t.Fatalf("Execute = false, want true")
	}
	if vel.Y() != 6 {
		t.Fatalf("velocity.y = %.3f, want 6", vel.Y())
	}
}

func TestJumpExecutor_NilArguments(t *testing.T) {
	exec := NewJumpExecutor(DefaultJumpConfig())
	s := NewState()
	vel := mgl32.Vec3{}
	if exec.Execute(nil, &vel) {
		t.Fatalf("Execute(nil state) = true")
	}
	if exec.Execute(&s, nil) {
		t.Fatalf("Execute(nil velocity) = true")
	}
}
