package sim

import (
	"github.com/Versifine/stride/internal/interact"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Target is an interactable occupying a sphere. When Body is set the sphere
// rests on the body's position and moves with it.
type Target struct {
	Center mgl32.Vec3
	Radius float32
	Item   interact.Interactable
	Body   *Body
}

func (t Target) Position() mgl32.Vec3 {
	if t.Body != nil {
		return t.Body.Position().Add(mgl32.Vec3{0, t.Radius, 0})
	}
	return t.Center
}

// Eye is the ray origin used for targeting.
type Eye interface {
	Origin() mgl32.Vec3
	Forward() mgl32.Vec3
}

// RayTargets picks the nearest target hit by the eye ray within MaxDistance.
type RayTargets struct {
	eye         Eye
	MaxDistance float32
	targets     []Target
}

func NewRayTargets(eye Eye, maxDistance float32, targets ...Target) *RayTargets {
	return &RayTargets{eye: eye, MaxDistance: maxDistance, targets: targets}
}

func (r *RayTargets) Add(t Target) {
	r.targets = append(r.targets, t)
}

func (r *RayTargets) Targets() []Target {
	return r.targets
}

func (r *RayTargets) TryGetTarget() (interact.Interactable, bool) {
	if r.eye == nil {
		return nil, false
	}
	origin := r.eye.Origin()
	dir := r.eye.Forward()
	if dir.LenSqr() < 1e-12 {
		return nil, false
	}
	dir = dir.Normalize()

	var (
		hit  interact.Interactable
		best = r.MaxDistance
	)
	for _, t := range r.targets {
		if t.Item == nil {
			continue
		}
		if rm, ok := t.Item.(interact.Removable); ok && rm.Removed() {
			continue
		}
		dist, ok := raySphere(origin, dir, t.Position(), t.Radius)
		if !ok || dist > best {
			continue
		}
		hit, best = t.Item, dist
	}
	return hit, hit != nil
}

// raySphere returns the distance along the unit ray dir to the first
// intersection with the sphere. A ray starting inside hits at its exit.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	root := math32.Sqrt(disc)
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
