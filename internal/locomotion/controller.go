package locomotion

import (
	"github.com/Versifine/stride/internal/event"
	"github.com/go-gl/mathgl/mgl32"
)

type Body interface {
	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
	Rotation() mgl32.Quat
	SetRotation(q mgl32.Quat)
}

type GroundSensor interface {
	IsGrounded() bool
}

type CameraRig interface {
	SetLocalRotation(q mgl32.Quat)
}

type Notifier interface {
	Publish(eventName string, evt any)
}

// FrameInput is the input sampled once per rendered frame.
type FrameInput struct {
	Move        mgl32.Vec2
	Look        mgl32.Vec2
	Sprint      bool
	JumpPressed bool
	Analog      bool
}

type TickReport struct {
	Grounded   bool
	Transition Transition
	Jumped     bool
	Velocity   mgl32.Vec3
}

// Controller runs the frame and fixed callbacks for one character. It is not
// safe for concurrent use.
type Controller struct {
	body   Body
	sensor GroundSensor
	camera CameraRig

	mover  MovementSolver
	jumper JumpExecutor
	looker LookController
	jump   JumpConfig

	state  State
	move   mgl32.Vec2
	sprint bool

	notifier Notifier
}

func NewController(body Body, sensor GroundSensor, camera CameraRig, cfg Config) *Controller {
	return &Controller{
		body:   body,
		sensor: sensor,
		camera: camera,
		mover:  NewMovementSolver(cfg.Move),
		jumper: NewJumpExecutor(cfg.Jump),
		looker: NewLookController(cfg.Look),
		jump:   cfg.Jump,
		state:  NewState(),
	}
}

func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// FrameTick samples input, integrates look and latches the jump buffer on a
// press edge.
func (c *Controller) FrameTick(in FrameInput, dt float32) {
	c.move = in.Move
	c.sprint = in.Sprint

	kind := DevicePointer
	if in.Analog {
		kind = DeviceAnalog
	}
	bodyRot, camRot := c.looker.Integrate(&c.state, LookSample{Delta: in.Look, Kind: kind}, dt)
	if c.body != nil {
		c.body.SetRotation(bodyRot)
	}
	if c.camera != nil {
		c.camera.SetLocalRotation(camRot)
	}

	if in.JumpPressed {
		c.state.Timing.Latch(c.jump)
	}
}

// FixedTick runs one physics step: ground sensing, timer decay, transition
// handling, movement and jump. Velocity is written back once.
func (c *Controller) FixedTick(dt float32) TickReport {
	s := &c.state

	s.WasGrounded = s.Grounded
	if c.sensor != nil {
		s.Grounded = c.sensor.IsGrounded()
	}

	s.Timing.Tick(dt, s.Grounded)

	transition := ClassifyTransition(s.WasGrounded, s.Grounded)
	applyTransition(s, transition, c.jump)

	report := TickReport{Grounded: s.Grounded, Transition: transition}
	if c.body != nil {
		velocity := c.mover.Solve(c.body.Velocity(), c.body.Rotation(), c.move, s.Grounded, c.sprint, dt)
		report.Jumped = c.jumper.Execute(s, &velocity)
		c.body.SetVelocity(velocity)
		report.Velocity = velocity
	}

	c.notify(report, !s.Grounded)
	return report
}

func (c *Controller) notify(r TickReport, fromCoyote bool) {
	if c.notifier == nil {
		return
	}
	switch r.Transition {
	case TransitionLanded:
		c.notifier.Publish(event.EventLanded, event.GroundEvent{Velocity: r.Velocity})
	case TransitionLeftGround:
		c.notifier.Publish(event.EventLeftGround, event.GroundEvent{Velocity: r.Velocity})
	}
	if r.Jumped {
		c.notifier.Publish(event.EventJumped, event.JumpEvent{
			Force:      r.Velocity.Y(),
			FromCoyote: fromCoyote,
		})
	}
}

func (c *Controller) JustLanded() bool {
	return !c.state.WasGrounded && c.state.Grounded
}

func (c *Controller) JustLeftGround() bool {
	return c.state.WasGrounded && !c.state.Grounded
}

// State returns a copy of the current locomotion state.
func (c *Controller) State() State {
	return c.state
}
