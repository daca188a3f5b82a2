package locomotion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const fixedStep = float32(0.02)

func approxEqual(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

// approxVec compares component-wise with an absolute tolerance. mgl32's
// ApproxEqualThreshold is relative and rejects tiny residues around zero.
func approxVec(t *testing.T, got, want mgl32.Vec3, tol float32, field string) {
	t.Helper()
	for i := range want {
		if math32.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s = %v, want %v (tol=%g)", field, got, want, tol)
		}
	}
}

func hzSpeed(v mgl32.Vec3) float32 {
	return math32.Sqrt(v[0]*v[0] + v[2]*v[2])
}

func TestMovementSolver_GroundAcceleratesAtRate(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{WalkSpeed: 4, SprintSpeed: 6, Acceleration: 30, Deceleration: 40})
	ident := mgl32.QuatIdent()

	vel := solver.Solve(mgl32.Vec3{}, ident, mgl32.Vec2{1, 0}, true, false, fixedStep)
	approxEqual(t, vel.X(), 0.6, 1e-5, "velocity.x after one step")
	approxEqual(t, vel.Z(), 0, 1e-6, "velocity.z")

	steps := 1
	for vel.X() != 4 && steps < 20 {
		vel = solver.Solve(vel, ident, mgl32.Vec2{1, 0}, true, false, fixedStep)
		steps++
		if vel.X() > 4 {
			t.Fatalf("step %d overshot target: %.6f", steps, vel.X())
		}
	}
	if steps != 7 {
		t.Fatalf("converged in %d steps, want 7", steps)
	}
}

func TestMovementSolver_GroundNeverOvershoots(t *testing.T) {
	tests := []struct {
		name   string
		cfg    MoveConfig
		sprint bool
		target float32
	}{
		{"walk", MoveConfig{WalkSpeed: 4, SprintSpeed: 6, Acceleration: 30}, false, 4},
		{"sprint", MoveConfig{WalkSpeed: 4, SprintSpeed: 6, Acceleration: 30}, true, 6},
		{"rate equals target", MoveConfig{WalkSpeed: 2, Acceleration: 100}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver := NewMovementSolver(tt.cfg)
			vel := mgl32.Vec3{}
			for i := 0; i < 50; i++ {
				vel = solver.Solve(vel, mgl32.QuatIdent(), mgl32.Vec2{0, 1}, true, tt.sprint, fixedStep)
				if vel.Z() > tt.target+1e-5 {
					t.Fatalf("step %d: velocity.z = %.6f exceeds target %.3f", i, vel.Z(), tt.target)
				}
			}
			approxEqual(t, vel.Z(), tt.target, 1e-5, "velocity.z")
		})
	}
}

func TestMovementSolver_GroundDeceleratesWithoutInput(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{WalkSpeed: 4, Acceleration: 30, Deceleration: 40})

	vel := solver.Solve(mgl32.Vec3{3, 0, -2}, mgl32.QuatIdent(), mgl32.Vec2{}, true, false, fixedStep)
	approxEqual(t, vel.X(), 2.2, 1e-5, "velocity.x")
	approxEqual(t, vel.Z(), -1.2, 1e-5, "velocity.z")

	for i := 0; i < 10; i++ {
		vel = solver.Solve(vel, mgl32.QuatIdent(), mgl32.Vec2{}, true, false, fixedStep)
	}
	if vel.X() != 0 || vel.Z() != 0 {
		t.Fatalf("velocity = %v, want horizontal stop", vel)
	}
}

func TestMovementSolver_GroundLeavesVerticalUntouched(t *testing.T) {
	solver := NewMovementSolver(DefaultMoveConfig())
	vel := solver.Solve(mgl32.Vec3{0, -7.5, 0}, mgl32.QuatIdent(), mgl32.Vec2{1, 1}, true, true, fixedStep)
	if vel.Y() != -7.5 {
		t.Fatalf("velocity.y = %.3f, want -7.5", vel.Y())
	}
}

func TestMovementSolver_GroundFollowsYaw(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{WalkSpeed: 4, Acceleration: 1000})
	facingEast := yawRotation(90)

	vel := solver.Solve(mgl32.Vec3{}, facingEast, mgl32.Vec2{0, 1}, true, false, fixedStep)
	approxEqual(t, vel.X(), 4, 1e-4, "velocity.x")
	approxEqual(t, vel.Z(), 0, 1e-4, "velocity.z")
}

func TestMovementSolver_GroundNormalizesDiagonalInput(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{WalkSpeed: 4, Acceleration: 1000})

	vel := solver.Solve(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec2{1, 1}, true, false, fixedStep)
	approxEqual(t, hzSpeed(vel), 4, 1e-4, "horizontal speed")
}

func TestMovementSolver_AirWithoutInputKeepsVelocity(t *testing.T) {
	solver := NewMovementSolver(DefaultMoveConfig())
	in := mgl32.Vec3{3, 2, -1}
	got := solver.Solve(in, mgl32.QuatIdent(), mgl32.Vec2{}, false, false, fixedStep)
	if got != in {
		t.Fatalf("velocity = %v, want %v", got, in)
	}
}

func TestMovementSolver_AirStartFromStandstill(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{AirStartSpeed: 1.5})

	got := solver.Solve(mgl32.Vec3{0.05, 3, 0}, mgl32.QuatIdent(), mgl32.Vec2{0, 1}, false, false, fixedStep)
	approxEqual(t, got.X(), 0, 1e-6, "velocity.x")
	approxEqual(t, got.Z(), 1.5, 1e-6, "velocity.z")
	approxEqual(t, got.Y(), 3, 0, "velocity.y")
}

func TestMovementSolver_AirSteeringPreservesSpeed(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{AirControl: 2})
	vel := mgl32.Vec3{0, 1, 5}

	for i := 0; i < 150; i++ {
		prevDir := horizontal(vel).Normalize()
		next := solver.Solve(vel, mgl32.QuatIdent(), mgl32.Vec2{1, 1}, false, false, fixedStep)
		approxEqual(t, hzSpeed(next), 5, 1e-4, "horizontal speed")
		approxEqual(t, next.Y(), 1, 0, "velocity.y")
		nextDir := horizontal(next).Normalize()
		target := mgl32.Vec3{1, 0, 1}.Normalize()
		if nextDir.Dot(target) < prevDir.Dot(target)-1e-6 {
			t.Fatalf("step %d: heading moved away from input", i)
		}
		vel = next
	}

	dir := horizontal(vel).Normalize()
	want := mgl32.Vec3{1, 0, 1}.Normalize()
	if dir.Dot(want) < 0.999 {
		t.Fatalf("heading %v did not converge toward %v", dir, want)
	}
}

func TestMovementSolver_AirBrakingNeverReverses(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{AirBrake: 8})
	vel := mgl32.Vec3{0, 0, 5}

	next := solver.Solve(vel, mgl32.QuatIdent(), mgl32.Vec2{0, -1}, false, false, fixedStep)
	approxEqual(t, next.Z(), 4.84, 1e-5, "velocity.z")
	approxEqual(t, next.X(), 0, 1e-6, "velocity.x")

	prev := hzSpeed(next)
	vel = next
	for i := 0; i < 100 && prev >= airStationarySpeed; i++ {
		vel = solver.Solve(vel, mgl32.QuatIdent(), mgl32.Vec2{0, -1}, false, false, fixedStep)
		speed := hzSpeed(vel)
		if speed >= prev {
			t.Fatalf("step %d: speed %.4f did not decrease from %.4f", i, speed, prev)
		}
		if vel.Z() < 0 {
			t.Fatalf("step %d: braking reversed direction: %v", i, vel)
		}
		prev = speed
	}
}

func TestMovementSolver_AirPerpendicularInputBrakes(t *testing.T) {
	solver := NewMovementSolver(MoveConfig{AirBrake: 8, AirControl: 2})

	got := solver.Solve(mgl32.Vec3{0, 0, 5}, mgl32.QuatIdent(), mgl32.Vec2{1, 0}, false, false, fixedStep)
	approxEqual(t, got.Z(), 4.84, 1e-5, "velocity.z")
	approxEqual(t, got.X(), 0, 1e-6, "velocity.x")
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		current, target, delta, want float32
	}{
		{0, 4, 0.6, 0.6},
		{3.8, 4, 0.6, 4},
		{0, -4, 1, -1},
		{-0.5, 0, 1, 0},
		{2, 2, 0, 2},
	}
	for _, tt := range tests {
		got := moveTowards(tt.current, tt.target, tt.delta)
		if math32.Abs(got-tt.want) > 1e-6 {
			t.Errorf("moveTowards(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.delta, got, tt.want)
		}
	}
}

func TestSlerpDirection(t *testing.T) {
	from := mgl32.Vec3{0, 0, 1}
	to := mgl32.Vec3{1, 0, 0}

	half := slerpDirection(from, to, 0.5)
	approxEqual(t, half.Len(), 1, 1e-5, "length")
	approxEqual(t, half.X(), math32.Sqrt(0.5), 1e-5, "x")
	approxEqual(t, half.Z(), math32.Sqrt(0.5), 1e-5, "z")

	if got := slerpDirection(from, to, 2); got != to {
		t.Fatalf("t>1 = %v, want clamped to %v", got, to)
	}
	if got := slerpDirection(from, to, 1); got != to {
		t.Fatalf("t=1 = %v, want exactly %v", got, to)
	}
	approxVec(t, slerpDirection(from, to, 0), from, 1e-6, "t=0")

	nearly := mgl32.Vec3{1e-4, 0, 1}.Normalize()
	if got := slerpDirection(from, nearly, 0); got != nearly {
		t.Fatalf("aligned t=0 = %v, want snapped to %v", got, nearly)
	}
	if got := slerpDirection(from, from, 0.3); got != from {
		t.Fatalf("parallel = %v, want %v", got, from)
	}
}
