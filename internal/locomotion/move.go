package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// airStationarySpeed is the horizontal speed below which an airborne body is
// treated as standing still and receives the air start push.
const airStationarySpeed = 0.1

type MovementSolver struct {
	cfg MoveConfig
}

func NewMovementSolver(cfg MoveConfig) MovementSolver {
	return MovementSolver{cfg: cfg}
}

// Solve returns the next velocity for one fixed step. Only the horizontal
// components are changed; the vertical component is returned as given.
func (m MovementSolver) Solve(velocity mgl32.Vec3, orientation mgl32.Quat, move mgl32.Vec2, grounded, sprint bool, dt float32) mgl32.Vec3 {
	if grounded {
		return m.onGround(velocity, orientation, move, sprint, dt)
	}
	return m.inAir(velocity, orientation, move, dt)
}

func (m MovementSolver) onGround(velocity mgl32.Vec3, orientation mgl32.Quat, move mgl32.Vec2, sprint bool, dt float32) mgl32.Vec3 {
	dir := moveDirection(orientation, move)

	speed := m.cfg.WalkSpeed
	if sprint {
		speed = m.cfg.SprintSpeed
	}
	target := dir.Mul(speed)

	rate := m.cfg.Deceleration
	if move.LenSqr() > 0 {
		rate = m.cfg.Acceleration
	}
	step := rate * dt

	velocity[0] = moveTowards(velocity[0], target[0], step)
	velocity[2] = moveTowards(velocity[2], target[2], step)
	return velocity
}

func (m MovementSolver) inAir(velocity mgl32.Vec3, orientation mgl32.Quat, move mgl32.Vec2, dt float32) mgl32.Vec3 {
	if move.LenSqr() <= 0 {
		return velocity
	}

	inputDir := moveDirection(orientation, move)
	hz := horizontal(velocity)
	speed := hz.Len()

	if speed < airStationarySpeed {
		hz = inputDir.Mul(m.cfg.AirStartSpeed)
	} else {
		currentDir := hz.Mul(1 / speed)
		if currentDir.Dot(inputDir) > 0 {
			hz = slerpDirection(currentDir, inputDir, m.cfg.AirControl*dt).Mul(speed)
		} else {
			speed = moveTowards(speed, 0, m.cfg.AirBrake*dt)
			hz = currentDir.Mul(math32.Max(speed, 0))
		}
	}

	velocity[0] = hz[0]
	velocity[2] = hz[2]
	return velocity
}

// moveDirection projects 2-axis input onto the body's horizontal axes.
// Input y drives forward, x drives right.
func moveDirection(orientation mgl32.Quat, move mgl32.Vec2) mgl32.Vec3 {
	forward, right := basis(orientation)
	return normalizeOrZero(forward.Mul(move.Y()).Add(right.Mul(move.X())))
}
