// Package interactive provides the interactive command-line interface
// for ardrone-shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ardrone-protocol/ardrone-go/pkg/client"
)

// Console handles interactive mode for ardrone-shell.
type Console struct {
	sess *client.Session
	rl   *readline.Instance
}

// New creates a new interactive console for the session.
func New(sess *client.Session) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "drone> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{sess: sess, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp(c.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if quit := c.execute(c.rl.Stdout(), cmd, args); quit {
			cancel()
			return
		}
	}
}

// execute runs one console command. It returns true when the loop
// should exit.
func (c *Console) execute(w io.Writer, cmd string, args []string) bool {
	switch cmd {
	case "help", "?":
		c.printHelp(w)

	case "takeoff", "t":
		c.report(w, "takeoff", c.sess.TakeOff())

	case "land", "l":
		c.report(w, "land", c.sess.Land())

	case "emergency", "panic":
		c.report(w, "emergency", c.sess.Emergency())

	case "hover", "h":
		c.report(w, "hover", c.sess.Hover())

	case "forward", "f":
		c.report(w, "forward", c.sess.MoveForward())

	case "back", "b":
		c.report(w, "back", c.sess.MoveBackward())

	case "left":
		c.report(w, "left", c.sess.MoveLeft())

	case "right":
		c.report(w, "right", c.sess.MoveRight())

	case "up":
		c.report(w, "up", c.sess.MoveUp())

	case "down":
		c.report(w, "down", c.sess.MoveDown())

	case "turnleft", "tl":
		c.report(w, "turnleft", c.sess.TurnLeft())

	case "turnright", "tr":
		c.report(w, "turnright", c.sess.TurnRight())

	case "move", "m":
		c.cmdMove(w, args)

	case "speed":
		c.cmdSpeed(w, args)

	case "trim":
		c.report(w, "trim", c.sess.FlatTrim())

	case "anim":
		c.cmdAnim(w, args)

	case "zap", "cam":
		c.cmdZap(w, args)

	case "config":
		c.cmdConfig(w, args)

	case "status", "s":
		c.cmdStatus(w)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

// report prints the command outcome.
func (c *Console) report(w io.Writer, name string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}
	fmt.Fprintf(w, "%s: ok\n", name)
}

func (c *Console) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
AR.Drone Commands:
  Flight:
    takeoff, t                - Take off
    land, l                   - Land
    emergency                 - Emergency cutout (motors off)
    hover, h                  - Hover in place
    trim                      - Calibrate level (flat surface, landed)

  Movement (at the current speed):
    forward, f / back, b      - Pitch forward / backward
    left / right              - Roll left / right
    up / down                 - Climb / descend
    turnleft, tl / turnright, tr - Rotate

  Control:
    move <roll> <pitch> <gaz> <yaw> - Raw progressive command [-1, 1]
    speed [value]             - Show or set movement speed [0, 1]
    anim <id> <seconds>       - Run a flight animation
    zap <stream>, cam         - Select video stream / camera
    config <key> <value>      - Set a firmware parameter

  General:
    status, s                 - Show session and telemetry status
    help, ?                   - Show this help
    quit, q                   - Land and exit`)
}

// cmdMove handles the raw progressive move command.
func (c *Console) cmdMove(w io.Writer, args []string) {
	if len(args) != 4 {
		fmt.Fprintln(w, "Usage: move <roll> <pitch> <gaz> <yaw>")
		return
	}
	values := make([]float32, 4)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			fmt.Fprintf(w, "Invalid value %q: %v\n", arg, err)
			return
		}
		values[i] = float32(v)
	}
	c.report(w, "move", c.sess.Move(values[0], values[1], values[2], values[3]))
}

// cmdSpeed shows or sets the movement speed.
func (c *Console) cmdSpeed(w io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(w, "Speed: %.2f\n", c.sess.Speed())
		return
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid speed %q: %v\n", args[0], err)
		return
	}
	if err := c.sess.SetSpeed(float32(v)); err != nil {
		fmt.Fprintf(w, "speed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Speed set to %.2f\n", v)
}

// cmdAnim handles the flight animation command.
func (c *Console) cmdAnim(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: anim <id> <seconds>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid animation id %q\n", args[0])
		return
	}
	seconds, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid duration %q\n", args[1])
		return
	}
	c.report(w, "anim", c.sess.Animate(int32(id), int32(seconds)))
}

// cmdZap handles video stream selection.
func (c *Console) cmdZap(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "Usage: zap <stream>")
		return
	}
	stream, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(w, "Invalid stream %q\n", args[0])
		return
	}
	c.report(w, "zap", c.sess.SelectVideoStream(int32(stream)))
}

// cmdConfig handles firmware parameter writes.
func (c *Console) cmdConfig(w io.Writer, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(w, "Usage: config <key> <value>")
		return
	}
	c.report(w, "config", c.sess.SetConfig(args[0], args[1]))
}

// cmdStatus prints the session state and the latest telemetry.
func (c *Console) cmdStatus(w io.Writer) {
	fmt.Fprintf(w, "Session: %s\n", shortenID(c.sess.ID()))
	fmt.Fprintf(w, "State:   %s\n", c.sess.State())
	fmt.Fprintf(w, "Speed:   %.2f\n", c.sess.Speed())

	nav, ok := c.sess.Navdata()
	if !ok {
		fmt.Fprintln(w, "Navdata: (none received)")
		return
	}

	fmt.Fprintf(w, "Navdata: seq %d\n", nav.Seq)
	fmt.Fprintf(w, "  Flying: %t  Emergency: %t  ComWatchdog: %t\n",
		nav.State.Flying, nav.State.Emergency, nav.State.ComWatchdog)
	if nav.Demo != nil {
		fmt.Fprintf(w, "  Battery: %d%%  Altitude: %dmm\n", nav.Demo.Battery, nav.Demo.Altitude)
		fmt.Fprintf(w, "  Attitude: theta %.1f  phi %.1f  psi %.1f\n",
			nav.Demo.Theta, nav.Demo.Phi, nav.Demo.Psi)
		fmt.Fprintf(w, "  Velocity: vx %.0f  vy %.0f  vz %.0f mm/s\n",
			nav.Demo.VX, nav.Demo.VY, nav.Demo.VZ)
	}
	if nav.State.BatteryLow {
		fmt.Fprintln(w, "  WARNING: battery low")
	}
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
