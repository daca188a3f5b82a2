package interact

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Switch toggles a light.
type Switch struct {
	name string
	on   bool
}

func NewSwitch(name string, on bool) *Switch {
	return &Switch{name: name, on: on}
}

func (s *Switch) Interact()    { s.on = !s.on }
func (s *Switch) On() bool     { return s.on }
func (s *Switch) Name() string { return s.name }

// Breakable is destroyed by its first interaction.
type Breakable struct {
	name   string
	broken bool
}

func NewBreakable(name string) *Breakable {
	return &Breakable{name: name}
}

func (b *Breakable) Interact() {
	b.broken = true
}

func (b *Breakable) Removed() bool { return b.broken }
func (b *Breakable) Name() string  { return b.name }

type Impulser interface {
	ApplyImpulse(j mgl32.Vec3)
}

// DirectionSource provides the world-space forward the ball is kicked along.
type DirectionSource interface {
	Forward() mgl32.Vec3
}

// Ball is kicked along the flattened aim direction plus an upward component.
type Ball struct {
	name         string
	body         Impulser
	aim          DirectionSource
	ForwardForce float32
	UpForce      float32
}

func NewBall(name string, body Impulser, aim DirectionSource, forwardForce, upForce float32) *Ball {
	return &Ball{name: name, body: body, aim: aim, ForwardForce: forwardForce, UpForce: upForce}
}

func (b *Ball) Name() string { return b.name }

func (b *Ball) Interact() {
	if b.body == nil {
		return
	}
	b.body.ApplyImpulse(b.Impulse())
}

// Impulse is the kick the next Interact would apply.
func (b *Ball) Impulse() mgl32.Vec3 {
	var forward mgl32.Vec3
	if b.aim != nil {
		f := b.aim.Forward()
		if l := math32.Hypot(f.X(), f.Z()); l > 1e-6 {
			forward = mgl32.Vec3{f.X() / l, 0, f.Z() / l}
		}
	}
	return forward.Mul(b.ForwardForce).Add(mgl32.Vec3{0, b.UpForce, 0})
}
