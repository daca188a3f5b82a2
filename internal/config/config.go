package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	ModeScenario = "scenario"
	ModeConsole  = "console"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Mode       string                `yaml:"mode"`
	Scenario   string                `yaml:"scenario"`
	Logging    LoggingConfig         `yaml:"logging"`
	Simulation SimulationConfig      `yaml:"simulation"`
	Move       locomotion.MoveConfig `yaml:"move"`
	Jump       locomotion.JumpConfig `yaml:"jump"`
	Look       locomotion.LookConfig `yaml:"look"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type SimulationConfig struct {
	FixedStep float32    `yaml:"fixed_step"`
	FrameRate int        `yaml:"frame_rate"`
	Gravity   float32    `yaml:"gravity"`
	Spawn     mgl32.Vec3 `yaml:"spawn"`
}

func (s SimulationConfig) FrameStep() float32 {
	if s.FrameRate <= 0 {
		return 0
	}
	return 1 / float32(s.FrameRate)
}

func Default() *Config {
	loco := locomotion.DefaultConfig()
	return &Config{
		Mode:     ModeScenario,
		Scenario: "configs/scenarios/coyote.yaml",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Simulation: SimulationConfig{
			FixedStep: 0.02,
			FrameRate: 60,
			Gravity:   9.81,
			Spawn:     mgl32.Vec3{0, 0, 0},
		},
		Move: loco.Move,
		Jump: loco.Jump,
		Look: loco.Look,
	}
}

// Load reads a YAML config on top of Default. File system errors are returned
// as is; validation failures wrap ErrInvalid.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeScenario, ModeConsole:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}
	if c.Mode == ModeScenario && c.Scenario == "" {
		return fmt.Errorf("%w: scenario path is empty", ErrInvalid)
	}
	if c.Simulation.FixedStep <= 0 {
		return fmt.Errorf("%w: simulation.fixed_step must be positive", ErrInvalid)
	}
	if c.Simulation.FrameRate <= 0 {
		return fmt.Errorf("%w: simulation.frame_rate must be positive", ErrInvalid)
	}
	if c.Simulation.Gravity < 0 {
		return fmt.Errorf("%w: simulation.gravity must not be negative", ErrInvalid)
	}

	nonNegative := []struct {
		key string
		val float32
	}{
		{"move.walk_speed", c.Move.WalkSpeed},
		{"move.sprint_speed", c.Move.SprintSpeed},
		{"move.acceleration", c.Move.Acceleration},
		{"move.deceleration", c.Move.Deceleration},
		{"move.air_start_speed", c.Move.AirStartSpeed},
		{"move.air_brake", c.Move.AirBrake},
		{"move.air_control", c.Move.AirControl},
		{"jump.coyote_time", c.Jump.CoyoteTime},
		{"jump.jump_buffer_time", c.Jump.JumpBufferTime},
		{"look.pointer_sensitivity", c.Look.PointerSensitivity},
		{"look.analog_sensitivity", c.Look.AnalogSensitivity},
	}
	for _, f := range nonNegative {
		if f.val < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %v)", ErrInvalid, f.key, f.val)
		}
	}
	if c.Look.MinLookDown > c.Look.MaxLookUp {
		return fmt.Errorf("%w: look.min_look_down (%v) exceeds look.max_look_up (%v)", ErrInvalid, c.Look.MinLookDown, c.Look.MaxLookUp)
	}
	return nil
}

func (c *Config) Locomotion() locomotion.Config {
	return locomotion.Config{Move: c.Move, Jump: c.Jump, Look: c.Look}
}
