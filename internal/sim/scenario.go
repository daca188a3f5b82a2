package sim

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	TargetSwitch    = "switch"
	TargetBreakable = "breakable"
	TargetBall      = "ball"
)

// Scenario is a scripted run: a level made of platforms and targets, and a
// list of input steps fed to the runner frame by frame.
type Scenario struct {
	Name        string       `yaml:"name"`
	FrameRate   int          `yaml:"frame_rate"`
	Spawn       *mgl32.Vec3  `yaml:"spawn"`
	MaxDistance float32      `yaml:"max_distance"`
	Platforms   []Platform   `yaml:"platforms"`
	Targets     []TargetSpec `yaml:"targets"`
	Steps       []Step       `yaml:"steps"`
	Expect      Expectation  `yaml:"expect"`
}

// TargetSpec describes one interactable. For balls Center is the resting
// point under the ball.
type TargetSpec struct {
	Name         string     `yaml:"name"`
	Kind         string     `yaml:"kind"`
	Center       mgl32.Vec3 `yaml:"center"`
	Radius       float32    `yaml:"radius"`
	On           bool       `yaml:"on"`
	ForwardForce float32    `yaml:"forward_force"`
	UpForce      float32    `yaml:"up_force"`
	Mass         float32    `yaml:"mass"`
}

// Step holds one input state for Frames consecutive frames. Jump and
// Interact are presses and fire on the first frame of the step only.
type Step struct {
	Label    string     `yaml:"label"`
	Frames   int        `yaml:"frames"`
	Move     mgl32.Vec2 `yaml:"move"`
	Look     mgl32.Vec2 `yaml:"look"`
	Analog   bool       `yaml:"analog"`
	Sprint   bool       `yaml:"sprint"`
	Jump     bool       `yaml:"jump"`
	Interact bool       `yaml:"interact"`
}

// Expectation lists optional totals checked after the run.
type Expectation struct {
	Jumps        *int  `yaml:"jumps"`
	CoyoteJumps  *int  `yaml:"coyote_jumps"`
	Landings     *int  `yaml:"landings"`
	Interactions *int  `yaml:"interactions"`
	Grounded     *bool `yaml:"grounded"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (s *Scenario) Validate() error {
	if s.FrameRate < 0 {
		return fmt.Errorf("frame_rate must not be negative")
	}
	if s.MaxDistance < 0 {
		return fmt.Errorf("max_distance must not be negative")
	}
	for i, p := range s.Platforms {
		if p.Min.X() > p.Max.X() || p.Min.Y() > p.Max.Y() {
			return fmt.Errorf("platform %d (%s): min exceeds max", i, p.Name)
		}
	}
	for i, t := range s.Targets {
		switch t.Kind {
		case TargetSwitch, TargetBreakable, TargetBall:
		default:
			return fmt.Errorf("target %d (%s): unknown kind %q", i, t.Name, t.Kind)
		}
		if t.Radius <= 0 {
			return fmt.Errorf("target %d (%s): radius must be positive", i, t.Name)
		}
	}
	for i, st := range s.Steps {
		if st.Frames <= 0 {
			return fmt.Errorf("step %d (%s): frames must be positive", i, st.Label)
		}
	}
	return nil
}

// Check compares a run summary against the scenario's expectations.
func (s *Scenario) Check(sum Summary) error {
	e := s.Expect
	if e.Jumps != nil && *e.Jumps != sum.Jumps {
		return fmt.Errorf("jumps = %d, want %d", sum.Jumps, *e.Jumps)
	}
	if e.CoyoteJumps != nil && *e.CoyoteJumps != sum.CoyoteJumps {
		return fmt.Errorf("coyote jumps = %d, want %d", sum.CoyoteJumps, *e.CoyoteJumps)
	}
	if e.Landings != nil && *e.Landings != sum.Landings {
		return fmt.Errorf("landings = %d, want %d", sum.Landings, *e.Landings)
	}
	if e.Interactions != nil && *e.Interactions != sum.Interactions {
		return fmt.Errorf("interactions = %d, want %d", sum.Interactions, *e.Interactions)
	}
	if e.Grounded != nil && *e.Grounded != sum.Grounded {
		return fmt.Errorf("grounded = %t, want %t", sum.Grounded, *e.Grounded)
	}
	return nil
}

// DefaultScenario is the open level used by the interactive console.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "sandbox",
		MaxDistance: 3,
		Platforms: []Platform{
			{Name: "floor", Min: mgl32.Vec2{-10, -10}, Max: mgl32.Vec2{10, 10}, Top: 0},
			{Name: "ledge", Min: mgl32.Vec2{-2, 12}, Max: mgl32.Vec2{2, 16}, Top: 1},
		},
		Targets: []TargetSpec{
			{Name: "lamp", Kind: TargetSwitch, Center: mgl32.Vec3{2, 1.6, 4}, Radius: 0.4},
			{Name: "crate", Kind: TargetBreakable, Center: mgl32.Vec3{-2, 0.5, 4}, Radius: 0.5},
			{Name: "ball", Kind: TargetBall, Center: mgl32.Vec3{0, 0, 6}, Radius: 0.3, ForwardForce: 10, UpForce: 3},
		},
	}
}
