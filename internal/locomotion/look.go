package locomotion

import "github.com/go-gl/mathgl/mgl32"

type DeviceKind uint8

const (
	DevicePointer DeviceKind = iota
	DeviceAnalog
)

func (k DeviceKind) String() string {
	if k == DeviceAnalog {
		return "analog"
	}
	return "pointer"
}

// LookSample is one frame of look input tagged with the device it came from.
// Pointer deltas are per-frame displacements; analog deltas are rates.
type LookSample struct {
	Delta mgl32.Vec2
	Kind  DeviceKind
}

type LookController struct {
	cfg LookConfig
}

func NewLookController(cfg LookConfig) LookController {
	return LookController{cfg: cfg}
}

func (l LookController) multiplier(kind DeviceKind, dt float32) float32 {
	if kind == DeviceAnalog {
		return l.cfg.AnalogSensitivity * dt
	}
	return l.cfg.PointerSensitivity
}

// Integrate accumulates the sample into s.Yaw and s.Pitch and returns the pure
// yaw rotation for the body and the pure pitch rotation for the camera.
func (l LookController) Integrate(s *State, sample LookSample, dt float32) (body, camera mgl32.Quat) {
	m := l.multiplier(sample.Kind, dt)

	s.Yaw += sample.Delta.X() * m
	s.Pitch -= sample.Delta.Y() * m
	s.Pitch = mgl32.Clamp(s.Pitch, l.cfg.MinLookDown, l.cfg.MaxLookUp)

	return yawRotation(s.Yaw), pitchRotation(s.Pitch)
}
