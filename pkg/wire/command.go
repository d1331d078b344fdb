package wire

import (
	"errors"
	"fmt"
)

// ErrNotImplemented reports a catalog entry whose wire format is not
// established upstream. The entry exists so callers fail explicitly
// instead of emitting a malformed line.
var ErrNotImplemented = errors.New("wire format not implemented")

// Reference command flag word. The firmware expects a fixed base bit
// pattern with the control bits ORed in; the base pattern carries the
// always-one bits 18, 20, 22, 24 and 28.
const (
	// RefBase is the fixed base pattern of every REF flag word.
	RefBase uint32 = 0b10001010101000000000000000000

	// RefTakeoff requests takeoff while set, landing while clear.
	RefTakeoff uint32 = 1 << 9

	// RefEmergency toggles the emergency state (cuts the motors, or
	// resets the emergency flag if already set).
	RefEmergency uint32 = 1 << 8
)

// Command is a catalog entry resolved to its name and argument list.
// It carries no sequence number; the dispatcher supplies one at send
// time via Encode.
type Command struct {
	Name   string
	Params []Param
}

// Line renders the command with the given sequence number.
func (c Command) Line(seq uint32) string {
	return Encode(c.Name, seq, c.Params...)
}

// Ref builds the reference/mode command (AT*REF) controlling takeoff,
// landing and the emergency state.
func Ref(takeoff, emergency bool) Command {
	flags := RefBase
	if takeoff {
		flags |= RefTakeoff
	}
	if emergency {
		flags |= RefEmergency
	}
	return Command{Name: "REF", Params: []Param{Int(int32(flags))}}
}

// Pcmd builds the progressive movement command (AT*PCMD). With
// progressive set the four axis values command continuous movement:
// roll (left/right), pitch (forward/backward), gaz (vertical) and yaw
// (angular), each in [-1, 1]. With progressive clear the drone enters
// hover mode; the axis values are conventionally zero in that call.
func Pcmd(progressive bool, roll, pitch, gaz, yaw float32) Command {
	flag := int32(0)
	if progressive {
		flag = 1
	}
	return Command{Name: "PCMD", Params: []Param{
		Int(flag), Float(roll), Float(pitch), Float(gaz), Float(yaw),
	}}
}

// FlatTrim builds the flat trim command (AT*FTRIM), telling the drone
// it is lying on a horizontal surface.
func FlatTrim() Command {
	return Command{Name: "FTRIM"}
}

// Zap builds the video stream select command (AT*ZAP).
func Zap(stream int32) Command {
	return Command{Name: "ZAP", Params: []Param{Int(stream)}}
}

// ConfigSet builds the configuration command (AT*CONFIG) setting one
// firmware option. Both arguments travel as quoted strings.
func ConfigSet(option, value string) Command {
	return Command{Name: "CONFIG", Params: []Param{Str(option), Str(value)}}
}

// WatchdogReset builds the keep-alive command (AT*COMWDG).
//
// The firmware documentation is ambiguous on whether COMWDG carries a
// sequence number at all. We encode it with one, like every other
// command; the choice is isolated here so it can change without
// touching the dispatcher.
func WatchdogReset() Command {
	return Command{Name: "COMWDG"}
}

// Anim builds the flight animation command (AT*ANIM) selecting a
// preprogrammed movement and its duration in seconds.
func Anim(id, seconds int32) Command {
	return Command{Name: "ANIM", Params: []Param{Int(id), Int(seconds)}}
}

// Pwm is the direct motor override entry (AT*PWM). Its argument
// encoding is not established upstream, so it always fails.
func Pwm(m1, m2, m3, m4 int32) (Command, error) {
	return Command{}, fmt.Errorf("AT*PWM: %w", ErrNotImplemented)
}

// Led is the LED pattern entry (AT*LED). Its argument encoding is not
// established upstream, so it always fails.
func Led(pattern int32, frequency float32, seconds int32) (Command, error) {
	return Command{}, fmt.Errorf("AT*LED: %w", ErrNotImplemented)
}
