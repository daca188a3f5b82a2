package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Versifine/stride/internal/config"
	"github.com/Versifine/stride/internal/debug"
	"github.com/Versifine/stride/internal/event"
	"github.com/Versifine/stride/internal/logger"
	"github.com/Versifine/stride/internal/sim"
)

func main() {

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		cfg.Mode = config.ModeScenario
		cfg.Scenario = os.Args[1]
	}

	out, closeLog, err := logOutput(cfg)
	if err != nil {
		slog.Error("Failed to open log file", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus()
	logEvents(bus)

	switch cfg.Mode {
	case config.ModeConsole:
		err = runConsole(ctx, cfg, bus)
	default:
		err = runScenario(ctx, cfg, bus)
	}
	if err != nil {
		slog.Error("Run failed", "mode", cfg.Mode, "error", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

// logOutput picks the log destination. The console owns the terminal, so its
// logs go to a file, or are dropped when none is configured.
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Logging.File == "" {
		if cfg.Mode == config.ModeConsole {
			return io.Discard, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func runnerOptions(cfg *config.Config, bus *event.Bus) sim.Options {
	return sim.Options{
		Locomotion: cfg.Locomotion(),
		FixedStep:  cfg.Simulation.FixedStep,
		Gravity:    cfg.Simulation.Gravity,
		Spawn:      cfg.Simulation.Spawn,
		Notifier:   bus,
	}
}

func runScenario(ctx context.Context, cfg *config.Config, bus *event.Bus) error {
	sc, err := sim.LoadScenario(cfg.Scenario)
	if err != nil {
		return err
	}
	rate := sc.FrameRate
	if rate == 0 {
		rate = cfg.Simulation.FrameRate
	}

	slog.Info("Running scenario", "name", sc.Name, "steps", len(sc.Steps), "frame_rate", rate, "fixed_step", cfg.Simulation.FixedStep)
	runner := sim.NewRunner(sc, runnerOptions(cfg, bus))
	sum, err := runner.Run(ctx, sc.Steps, 1/float32(rate))
	if err != nil {
		return err
	}

	slog.Info("Scenario finished",
		"name", sc.Name,
		"frames", sum.Frames,
		"ticks", sum.Ticks,
		"jumps", sum.Jumps,
		"coyote_jumps", sum.CoyoteJumps,
		"landings", sum.Landings,
		"interactions", sum.Interactions,
		"pos", sum.Position,
		"grounded", sum.Grounded,
	)
	if err := sc.Check(sum); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return nil
}

func runConsole(ctx context.Context, cfg *config.Config, bus *event.Bus) error {
	runner := sim.NewRunner(sim.DefaultScenario(), runnerOptions(cfg, bus))
	console := debug.NewConsole(runner)
	console.SetFrameInterval(time.Duration(float64(cfg.Simulation.FrameStep()) * float64(time.Second)))
	return console.Start(ctx)
}

func logEvents(bus *event.Bus) {
	bus.Subscribe(event.EventLanded, func(raw any) {
		evt, ok := raw.(event.GroundEvent)
		if !ok {
			return
		}
		slog.Info("Landed", "vel", evt.Velocity)
	})
	bus.Subscribe(event.EventLeftGround, func(raw any) {
		evt, ok := raw.(event.GroundEvent)
		if !ok {
			return
		}
		slog.Info("Left ground", "vel", evt.Velocity)
	})
	bus.Subscribe(event.EventJumped, func(raw any) {
		evt, ok := raw.(event.JumpEvent)
		if !ok {
			return
		}
		slog.Info("Jumped", "force", evt.Force, "coyote", evt.FromCoyote)
	})
	bus.Subscribe(event.EventInteracted, func(raw any) {
		evt, ok := raw.(event.InteractEvent)
		if !ok {
			return
		}
		slog.Info("Interacted", "target", evt.Target)
	})
}
