package event

import "github.com/go-gl/mathgl/mgl32"

const (
	EventLanded     = "locomotion.landed"
	EventLeftGround = "locomotion.left_ground"
	EventJumped     = "locomotion.jumped"
	EventInteracted = "interact.triggered"
)

type GroundEvent struct {
	Velocity mgl32.Vec3
}

type JumpEvent struct {
	Force      float32
	FromCoyote bool
}

type InteractEvent struct {
	Target string
}
