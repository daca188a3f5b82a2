package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/sim"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/term"
)

const (
	defaultFrameInterval = 20 * time.Millisecond
	defaultMovePulse     = 180 * time.Millisecond
	// lookStep is the pointer delta sent per arrow press. In analog mode an
	// arrow holds the stick fully over for one move pulse instead.
	lookStep = float32(20.0)
)

// Simulation is the part of sim.Runner the console drives.
type Simulation interface {
	Frame(cmd sim.Command, dt float32) sim.FrameResult
	Summary() sim.Summary
	State() locomotion.State
	Teleport(pos mgl32.Vec3)
	PanelVisible() bool
}

type Console struct {
	sim           Simulation
	out           io.Writer
	frameInterval time.Duration
	movePulse     time.Duration

	mu            sync.Mutex
	sprint        bool
	analog        bool
	jumpPending   bool
	interactPend  bool
	pointerDelta  mgl32.Vec2
	stick         mgl32.Vec2
	stickUntil    time.Time
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	lastFrame     time.Time
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(s Simulation) *Console {
	return &Console{
		sim:           s,
		out:           os.Stdout,
		frameInterval: defaultFrameInterval,
		movePulse:     defaultMovePulse,
	}
}

// SetFrameInterval sets the wall-clock frame period. Non-positive values are
// ignored.
func (c *Console) SetFrameInterval(d time.Duration) {
	if d > 0 {
		c.frameInterval = d
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.sim == nil {
		return fmt.Errorf("console simulation is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	fmt.Fprint(c.out, "[debug] console started (W/A/S/D pulse, Space jump, E interact, arrows look, ] sprint, C analog, :help)\r\n")
	c.renderStatusLine()

	go c.frameLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if b == 3 { // Ctrl+C is not delivered as a signal in raw mode
			return nil
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) frameLoop(ctx context.Context) {
	ticker := time.NewTicker(c.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.frame(now)
			c.renderStatusLine()
		}
	}
}

// frame runs one simulation frame with the input gathered since the last
// one. dt is the wall-clock time since the previous frame.
func (c *Console) frame(now time.Time) sim.FrameResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	dt := float32(c.frameInterval.Seconds())
	if !c.lastFrame.IsZero() {
		dt = float32(now.Sub(c.lastFrame).Seconds())
	}
	c.lastFrame = now

	cmd := c.commandLocked(now)
	res := c.sim.Frame(cmd, dt)
	if cmd.JumpPressed {
		slog.Debug("debug jump pressed", "grounded", c.sim.State().Grounded)
	}
	return res
}

// commandLocked builds the frame command and consumes one-shot presses.
func (c *Console) commandLocked(now time.Time) sim.Command {
	c.applyPulsesLocked(now)

	var move mgl32.Vec2
	if !c.forwardUntil.IsZero() {
		move[1]++
	}
	if !c.backwardUntil.IsZero() {
		move[1]--
	}
	if !c.rightUntil.IsZero() {
		move[0]++
	}
	if !c.leftUntil.IsZero() {
		move[0]--
	}

	look := c.pointerDelta
	if c.analog {
		look = c.stick
	}

	cmd := sim.Command{
		FrameInput: locomotion.FrameInput{
			Move:        move,
			Look:        look,
			Sprint:      c.sprint,
			JumpPressed: c.jumpPending,
			Analog:      c.analog,
		},
		Interact: c.interactPend,
	}
	c.jumpPending = false
	c.interactPend = false
	c.pointerDelta = mgl32.Vec2{}
	return cmd
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ' ':
		c.press(&c.jumpPending)
	case 'e', 'E':
		c.press(&c.interactPend)
	case ']':
		c.toggleSprint()
	case 'c', 'C':
		c.toggleAnalog()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.look(mgl32.Vec2{-1, 0})
		case 'C': // right
			c.look(mgl32.Vec2{1, 0})
		case 'A': // up
			c.look(mgl32.Vec2{0, 1})
		case 'B': // down
			c.look(mgl32.Vec2{0, -1})
		}
	}
	c.renderStatusLine()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s ", buf)
		fmt.Fprintf(c.out, "\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		c.mu.Lock()
		sum := c.sim.Summary()
		st := c.sim.State()
		c.mu.Unlock()
		fmt.Fprintf(c.out, "[debug] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) ground=%t\r\n",
			sum.Position.X(), sum.Position.Y(), sum.Position.Z(),
			sum.Velocity.X(), sum.Velocity.Y(), sum.Velocity.Z(),
			st.Grounded,
		)
		fmt.Fprintf(c.out, "[debug] coyote=%.3f buffer=%.3f ground_jump=%t yaw=%.1f pitch=%.1f\r\n",
			st.Timing.Coyote, st.Timing.Buffer, st.GroundJumpAvailable, st.Yaw, st.Pitch,
		)
		fmt.Fprintf(c.out, "[debug] ticks=%d jumps=%d coyote_jumps=%d landings=%d interactions=%d\r\n",
			sum.Ticks, sum.Jumps, sum.CoyoteJumps, sum.Landings, sum.Interactions,
		)
	case "tp":
		if len(parts) != 4 {
			fmt.Fprintf(c.out, "[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 32)
		y, err2 := strconv.ParseFloat(parts[2], 32)
		z, err3 := strconv.ParseFloat(parts[3], 32)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Fprintf(c.out, "[debug] invalid tp args\r\n")
			return
		}
		c.mu.Lock()
		c.sim.Teleport(mgl32.Vec3{float32(x), float32(y), float32(z)})
		c.mu.Unlock()
		fmt.Fprintf(c.out, "[debug] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	default:
		fmt.Fprintf(c.out, "[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[debug] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  Space: jump\r\n")
	fmt.Fprint(c.out, "  E: interact\r\n")
	fmt.Fprint(c.out, "  ]: toggle sprint\r\n")
	fmt.Fprint(c.out, "  C: toggle analog look\r\n")
	fmt.Fprint(c.out, "  Arrows: look\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[debug] commands:\r\n")
	fmt.Fprint(c.out, "  :tp <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	sprint, analog := c.sprint, c.analog
	width := c.statusWidth
	sum := c.sim.Summary()
	st := c.sim.State()
	panel := c.sim.PanelVisible()
	c.mu.Unlock()

	device := "pointer"
	if analog {
		device = "analog"
	}
	line := fmt.Sprintf(
		"[SPR:%s %s | YAW:%.1f PIT:%.1f | X:%.2f Y:%.2f Z:%.2f ground:%t coyote:%.2f buf:%.2f | %s]",
		boolLabel(sprint),
		device,
		st.Yaw,
		st.Pitch,
		sum.Position.X(),
		sum.Position.Y(),
		sum.Position.Z(),
		st.Grounded,
		st.Timing.Coyote,
		st.Timing.Buffer,
		targetLabel(panel),
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) pulse(until, opposite *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = time.Now().Add(c.movePulse)
	*opposite = time.Time{}
}

func (c *Console) press(flag *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*flag = true
}

func (c *Console) look(dir mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.analog {
		c.stick = dir
		c.stickUntil = time.Now().Add(c.movePulse)
		return
	}
	c.pointerDelta = c.pointerDelta.Add(dir.Mul(lookStep))
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func targetLabel(panel bool) string {
	if panel {
		return "E to interact"
	}
	return "-"
}

func (c *Console) applyPulsesLocked(now time.Time) {
	for _, until := range []*time.Time{&c.forwardUntil, &c.backwardUntil, &c.leftUntil, &c.rightUntil} {
		if !until.IsZero() && !now.Before(*until) {
			*until = time.Time{}
		}
	}
	if !c.stickUntil.IsZero() && !now.Before(c.stickUntil) {
		c.stick = mgl32.Vec2{}
		c.stickUntil = time.Time{}
	}
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	c.sprint = !c.sprint
	enabled := c.sprint
	c.mu.Unlock()
	slog.Debug("debug sprint toggled", "enabled", enabled)
}

func (c *Console) toggleAnalog() {
	c.mu.Lock()
	c.analog = !c.analog
	c.stick = mgl32.Vec2{}
	c.stickUntil = time.Time{}
	c.pointerDelta = mgl32.Vec2{}
	enabled := c.analog
	c.mu.Unlock()
	slog.Debug("debug analog look toggled", "enabled", enabled)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.sprint = false
	c.jumpPending = false
	c.interactPend = false
	c.pointerDelta = mgl32.Vec2{}
	c.stick = mgl32.Vec2{}
	c.stickUntil = time.Time{}
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.mu.Unlock()
}
