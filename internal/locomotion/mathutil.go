package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const directionEpsilon = 1e-6

var (
	axisUp      = mgl32.Vec3{0, 1, 0}
	axisRight   = mgl32.Vec3{1, 0, 0}
	axisForward = mgl32.Vec3{0, 0, 1}
)

// moveTowards steps current toward target by at most maxDelta without
// overshooting.
func moveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// normalizeOrZero avoids the NaN mgl32 produces for zero-length vectors.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() < directionEpsilon*directionEpsilon {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}

// slerpDirection rotates unit vector from toward unit vector to by the
// fraction t of the angle between them. The result is unit length.
func slerpDirection(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	if t >= 1 {
		return to
	}
	dot := mgl32.Clamp(from.Dot(to), -1, 1)
	// Already aligned: snap to the target whatever t is.
	if 1-dot < directionEpsilon {
		return to
	}
	theta := math32.Acos(dot) * t
	ortho := normalizeOrZero(to.Sub(from.Mul(dot)))
	return from.Mul(math32.Cos(theta)).Add(ortho.Mul(math32.Sin(theta)))
}

// basis returns the horizontal forward and right axes of a yaw orientation.
func basis(orientation mgl32.Quat) (forward, right mgl32.Vec3) {
	forward = normalizeOrZero(horizontal(orientation.Rotate(axisForward)))
	right = normalizeOrZero(horizontal(orientation.Rotate(axisRight)))
	return forward, right
}

func yawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), axisUp)
}

func pitchRotation(pitch float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(pitch), axisRight)
}
