package sim

import (
	"context"
	"log/slog"

	"github.com/Versifine/stride/internal/interact"
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/go-gl/mathgl/mgl32"
)

// Bodies below killY are returned to the spawn point.
const killY = -50

type Notifier interface {
	Publish(eventName string, evt any)
}

type Options struct {
	Locomotion locomotion.Config
	FixedStep  float32
	Gravity    float32
	Spawn      mgl32.Vec3
	Notifier   Notifier
	Panel      interact.Panel
	Trace      bool
}

// Command is everything sampled for one rendered frame.
type Command struct {
	locomotion.FrameInput
	Interact bool
}

type FrameResult struct {
	FixedTicks int
	Interacted bool
}

// TracePoint is the state after one fixed tick.
type TracePoint struct {
	Tick       int
	Time       float32
	Position   mgl32.Vec3
	Velocity   mgl32.Vec3
	Grounded   bool
	Transition locomotion.Transition
	Jumped     bool
	Coyote     float32
	Buffer     float32
}

// Summary tallies a run. Landings includes the first tick of a body spawned
// on a platform, since the controller starts out airborne.
type Summary struct {
	Frames       int
	Ticks        int
	Jumps        int
	CoyoteJumps  int
	Landings     int
	LeftGround   int
	Interactions int
	Respawns     int
	Grounded     bool
	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
}

// Runner drives one character through a level. Each Frame runs the fixed
// ticks owed by the accumulator first, then the frame callback, the same
// order a game engine uses. Runner is not safe for concurrent use.
type Runner struct {
	ctrl    *locomotion.Controller
	body    *Body
	camera  *Camera
	targets *RayTargets
	handler *interact.Handler
	props   []*Body

	spawn mgl32.Vec3
	step  float32
	acc   float32

	sum   Summary
	trace []TracePoint
	keep  bool
}

func NewRunner(sc *Scenario, opts Options) *Runner {
	if sc == nil {
		sc = DefaultScenario()
	}
	spawn := opts.Spawn
	if sc.Spawn != nil {
		spawn = *sc.Spawn
	}

	body := NewBody(spawn, opts.Gravity, sc.Platforms)
	camera := NewCamera(body)
	ctrl := locomotion.NewController(body, body, camera, opts.Locomotion)
	if opts.Notifier != nil {
		ctrl.SetNotifier(opts.Notifier)
	}

	r := &Runner{
		ctrl:    ctrl,
		body:    body,
		camera:  camera,
		targets: NewRayTargets(camera, sc.MaxDistance),
		spawn:   spawn,
		step:    opts.FixedStep,
		keep:    opts.Trace,
	}
	for _, ts := range sc.Targets {
		r.targets.Add(r.buildTarget(ts, opts.Gravity, sc.Platforms))
	}

	r.handler = interact.NewHandler(r.targets, opts.Panel)
	if opts.Notifier != nil {
		r.handler.SetNotifier(opts.Notifier)
	}
	return r
}

func (r *Runner) buildTarget(ts TargetSpec, gravity float32, platforms []Platform) Target {
	t := Target{Center: ts.Center, Radius: ts.Radius}
	switch ts.Kind {
	case TargetSwitch:
		t.Item = interact.NewSwitch(ts.Name, ts.On)
	case TargetBreakable:
		t.Item = interact.NewBreakable(ts.Name)
	case TargetBall:
		ball := NewBody(ts.Center, gravity, platforms)
		ball.SetMass(ts.Mass)
		r.props = append(r.props, ball)
		t.Body = ball
		t.Item = interact.NewBall(ts.Name, ball, r.camera, ts.ForwardForce, ts.UpForce)
	}
	return t
}

// Frame advances the simulation by one rendered frame of length dt.
func (r *Runner) Frame(cmd Command, dt float32) FrameResult {
	var res FrameResult
	if dt < 0 {
		dt = 0
	}

	if r.step > 0 {
		r.acc += dt
		for r.acc >= r.step {
			r.fixedTick()
			r.acc -= r.step
			res.FixedTicks++
		}
	}

	r.ctrl.FrameTick(cmd.FrameInput, dt)
	res.Interacted = r.handler.Update(cmd.Analog, cmd.Interact)
	if res.Interacted {
		r.sum.Interactions++
	}
	r.sum.Frames++
	return res
}

func (r *Runner) fixedTick() {
	report := r.ctrl.FixedTick(r.step)
	r.body.Step(r.step)
	for _, p := range r.props {
		// Props only fall and land; horizontal motion carries on
		// unopposed.
		p.Step(r.step)
	}
	r.sum.Ticks++

	pos := r.body.Position()
	switch report.Transition {
	case locomotion.TransitionLanded:
		r.sum.Landings++
		slog.Debug("Landed", "tick", r.sum.Ticks, "pos", pos)
	case locomotion.TransitionLeftGround:
		r.sum.LeftGround++
		slog.Debug("Left ground", "tick", r.sum.Ticks, "pos", pos)
	}
	if report.Jumped {
		r.sum.Jumps++
		if !report.Grounded {
			r.sum.CoyoteJumps++
		}
		slog.Debug("Jumped", "tick", r.sum.Ticks, "coyote", !report.Grounded, "vel", report.Velocity)
	}

	if pos.Y() < killY {
		slog.Warn("Fell out of the level, respawning", "pos", pos, "spawn", r.spawn)
		r.body.Teleport(r.spawn)
		r.sum.Respawns++
	}

	if r.keep {
		st := r.ctrl.State()
		r.trace = append(r.trace, TracePoint{
			Tick:       r.sum.Ticks,
			Time:       float32(r.sum.Ticks) * r.step,
			Position:   r.body.Position(),
			Velocity:   r.body.Velocity(),
			Grounded:   report.Grounded,
			Transition: report.Transition,
			Jumped:     report.Jumped,
			Coyote:     st.Timing.Coyote,
			Buffer:     st.Timing.Buffer,
		})
	}
}

// Run feeds the steps to Frame at a constant frame time. It stops early when
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context, steps []Step, frameDt float32) (Summary, error) {
	for i, st := range steps {
		if err := ctx.Err(); err != nil {
			return r.Summary(), err
		}
		slog.Debug("Scenario step", "index", i, "label", st.Label, "frames", st.Frames)
		for f := 0; f < st.Frames; f++ {
			r.Frame(Command{
				FrameInput: locomotion.FrameInput{
					Move:        st.Move,
					Look:        st.Look,
					Sprint:      st.Sprint,
					Analog:      st.Analog,
					JumpPressed: st.Jump && f == 0,
				},
				Interact: st.Interact && f == 0,
			}, frameDt)
		}
	}
	return r.Summary(), nil
}

func (r *Runner) Summary() Summary {
	s := r.sum
	s.Grounded = r.ctrl.State().Grounded
	s.Position = r.body.Position()
	s.Velocity = r.body.Velocity()
	return s
}

// State is the controller's locomotion state.
func (r *Runner) State() locomotion.State {
	return r.ctrl.State()
}

func (r *Runner) Teleport(pos mgl32.Vec3) {
	r.body.Teleport(pos)
}

func (r *Runner) Body() *Body                        { return r.body }
func (r *Runner) Camera() *Camera                    { return r.camera }
func (r *Runner) Controller() *locomotion.Controller { return r.ctrl }
func (r *Runner) Targets() *RayTargets               { return r.targets }
func (r *Runner) PanelVisible() bool                 { return r.handler.PanelVisible() }
func (r *Runner) Trace() []TracePoint                { return r.trace }
