package sim

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// GroundProbeDistance is how far above a platform top the feet may be and
	// still count as standing on it.
	GroundProbeDistance = 0.01
	DefaultEyeHeight    = 1.6
)

// Platform is a horizontal walkable surface: an XZ rectangle at height Top.
type Platform struct {
	Name string     `yaml:"name"`
	Min  mgl32.Vec2 `yaml:"min"`
	Max  mgl32.Vec2 `yaml:"max"`
	Top  float32    `yaml:"top"`
}

func (p Platform) Contains(x, z float32) bool {
	return x >= p.Min.X() && x <= p.Max.X() && z >= p.Min.Y() && z <= p.Max.Y()
}

// Body is a point mass under gravity that lands on platform tops. Position is
// the feet. It implements locomotion.Body and locomotion.GroundSensor.
type Body struct {
	position  mgl32.Vec3
	velocity  mgl32.Vec3
	rotation  mgl32.Quat
	mass      float32
	gravity   float32
	platforms []Platform
}

func NewBody(spawn mgl32.Vec3, gravity float32, platforms []Platform) *Body {
	return &Body{
		position:  spawn,
		rotation:  mgl32.QuatIdent(),
		mass:      1,
		gravity:   gravity,
		platforms: platforms,
	}
}

func (b *Body) Position() mgl32.Vec3 { return b.position }

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(pos mgl32.Vec3) {
	b.position = pos
	b.velocity = mgl32.Vec3{}
}

func (b *Body) Velocity() mgl32.Vec3     { return b.velocity }
func (b *Body) SetVelocity(v mgl32.Vec3) { b.velocity = v }
func (b *Body) Rotation() mgl32.Quat     { return b.rotation }
func (b *Body) SetRotation(q mgl32.Quat) { b.rotation = q }

func (b *Body) SetMass(m float32) {
	if m > 0 {
		b.mass = m
	}
}

// ApplyImpulse changes velocity by j/mass.
func (b *Body) ApplyImpulse(j mgl32.Vec3) {
	b.velocity = b.velocity.Add(j.Mul(1 / b.mass))
}

func (b *Body) IsGrounded() bool {
	_, ok := b.Support()
	return ok
}

// Support returns the platform the body is standing on, if any.
func (b *Body) Support() (Platform, bool) {
	var (
		best  Platform
		found bool
	)
	for _, p := range b.platforms {
		if !p.Contains(b.position.X(), b.position.Z()) {
			continue
		}
		dy := b.position.Y() - p.Top
		if dy < -GroundProbeDistance || dy > GroundProbeDistance {
			continue
		}
		if !found || p.Top > best.Top {
			best, found = p, true
		}
	}
	return best, found
}

// Step integrates gravity and position over dt. A body moving down through a
// platform top is snapped onto it and its vertical velocity zeroed.
func (b *Body) Step(dt float32) {
	if dt <= 0 {
		return
	}
	b.velocity[1] -= b.gravity * dt
	next := b.position.Add(b.velocity.Mul(dt))

	if b.velocity.Y() <= 0 {
		if top, ok := b.landingTop(b.position.Y(), next); ok {
			next[1] = top
			b.velocity[1] = 0
		}
	}
	b.position = next
}

func (b *Body) landingTop(fromY float32, to mgl32.Vec3) (float32, bool) {
	var (
		best  float32
		found bool
	)
	for _, p := range b.platforms {
		if !p.Contains(to.X(), to.Z()) {
			continue
		}
		if fromY < p.Top-GroundProbeDistance || to.Y() > p.Top {
			continue
		}
		if !found || p.Top > best {
			best, found = p.Top, true
		}
	}
	return best, found
}

// Camera is the eye mounted on a body. Its world orientation is the body
// rotation followed by the local pitch rotation.
type Camera struct {
	body      *Body
	local     mgl32.Quat
	EyeHeight float32
}

func NewCamera(body *Body) *Camera {
	return &Camera{body: body, local: mgl32.QuatIdent(), EyeHeight: DefaultEyeHeight}
}

func (c *Camera) SetLocalRotation(q mgl32.Quat) { c.local = q }
func (c *Camera) LocalRotation() mgl32.Quat     { return c.local }

func (c *Camera) Origin() mgl32.Vec3 {
	return c.body.Position().Add(mgl32.Vec3{0, c.EyeHeight, 0})
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.body.Rotation().Mul(c.local).Rotate(mgl32.Vec3{0, 0, 1})
}
