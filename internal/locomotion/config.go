package locomotion

// MoveConfig holds ground and air movement tuning. All rates are expected to be
// non-negative; the solver does not clamp them.
type MoveConfig struct {
	WalkSpeed     float32 `yaml:"walk_speed"`
	SprintSpeed   float32 `yaml:"sprint_speed"`
	Acceleration  float32 `yaml:"acceleration"`
	Deceleration  float32 `yaml:"deceleration"`
	AirStartSpeed float32 `yaml:"air_start_speed"`
	AirBrake      float32 `yaml:"air_brake"`
	AirControl    float32 `yaml:"air_control"`
}

// JumpConfig holds the jump impulse and the two grace windows, in seconds.
type JumpConfig struct {
	JumpForce      float32 `yaml:"jump_force"`
	CoyoteTime     float32 `yaml:"coyote_time"`
	JumpBufferTime float32 `yaml:"jump_buffer_time"`
}

// LookConfig holds look sensitivities and the pitch range in degrees.
// MinLookDown must not exceed MaxLookUp.
type LookConfig struct {
	PointerSensitivity float32 `yaml:"pointer_sensitivity"`
	AnalogSensitivity  float32 `yaml:"analog_sensitivity"`
	MaxLookUp          float32 `yaml:"max_look_up"`
	MinLookDown        float32 `yaml:"min_look_down"`
}

type Config struct {
	Move MoveConfig `yaml:"move"`
	Jump JumpConfig `yaml:"jump"`
	Look LookConfig `yaml:"look"`
}

func DefaultMoveConfig() MoveConfig {
	return MoveConfig{
		WalkSpeed:     4,
		SprintSpeed:   6,
		Acceleration:  30,
		Deceleration:  40,
		AirStartSpeed: 1,
		AirBrake:      8,
		AirControl:    2,
	}
}

func DefaultJumpConfig() JumpConfig {
	return JumpConfig{
		JumpForce:      6,
		CoyoteTime:     0.2,
		JumpBufferTime: 0.15,
	}
}

func DefaultLookConfig() LookConfig {
	return LookConfig{
		PointerSensitivity: 0.279,
		AnalogSensitivity:  120,
		MaxLookUp:          80,
		MinLookDown:        -80,
	}
}

func DefaultConfig() Config {
	return Config{
		Move: DefaultMoveConfig(),
		Jump: DefaultJumpConfig(),
		Look: DefaultLookConfig(),
	}
}
