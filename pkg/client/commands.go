package client

import "github.com/ardrone-protocol/ardrone-go/pkg/wire"

// TakeOff commands the drone to take off. The session does not wait
// for (or verify) lift-off; callers watch telemetry for that.
func (s *Session) TakeOff() error {
	return s.send(wire.Ref(true, false))
}

// Land commands the drone to land.
func (s *Session) Land() error {
	return s.send(wire.Ref(false, false))
}

// Emergency toggles the emergency state: it cuts the motors, or resets
// the emergency flag when the drone is already in emergency mode.
func (s *Session) Emergency() error {
	return s.send(wire.Ref(false, true))
}

// Hover commands the drone to stop moving and hold position.
func (s *Session) Hover() error {
	return s.send(wire.Pcmd(false, 0, 0, 0, 0))
}

// Move commands continuous movement on all four axes at once. Each
// value is in [-1, 1]: roll tilts left/right, pitch forward/backward,
// gaz climbs/descends, yaw rotates.
func (s *Session) Move(roll, pitch, gaz, yaw float32) error {
	return s.send(wire.Pcmd(true, roll, pitch, gaz, yaw))
}

// MoveLeft commands a left bank at the session speed.
func (s *Session) MoveLeft() error {
	return s.Move(-s.Speed(), 0, 0, 0)
}

// MoveRight commands a right bank at the session speed.
func (s *Session) MoveRight() error {
	return s.Move(s.Speed(), 0, 0, 0)
}

// MoveForward commands forward pitch at the session speed.
func (s *Session) MoveForward() error {
	return s.Move(0, -s.Speed(), 0, 0)
}

// MoveBackward commands backward pitch at the session speed.
func (s *Session) MoveBackward() error {
	return s.Move(0, s.Speed(), 0, 0)
}

// MoveUp commands a climb at the session speed.
func (s *Session) MoveUp() error {
	return s.Move(0, 0, s.Speed(), 0)
}

// MoveDown commands a descent at the session speed.
func (s *Session) MoveDown() error {
	return s.Move(0, 0, -s.Speed(), 0)
}

// TurnLeft commands counterclockwise rotation at the session speed.
func (s *Session) TurnLeft() error {
	return s.Move(0, 0, 0, -s.Speed())
}

// TurnRight commands clockwise rotation at the session speed.
func (s *Session) TurnRight() error {
	return s.Move(0, 0, 0, s.Speed())
}

// FlatTrim tells the drone it is sitting level on the ground. Call
// before takeoff, never in flight.
func (s *Session) FlatTrim() error {
	return s.send(wire.FlatTrim())
}

// SelectVideoStream switches the active video stream (camera select).
func (s *Session) SelectVideoStream(stream int32) error {
	return s.send(wire.Zap(stream))
}

// SetConfig sets one firmware configuration option.
func (s *Session) SetConfig(option, value string) error {
	return s.send(wire.ConfigSet(option, value))
}

// Animate runs a preprogrammed flight animation for the given number
// of seconds.
func (s *Session) Animate(id, seconds int32) error {
	return s.send(wire.Anim(id, seconds))
}

// MotorOverride would drive the motors directly. Its wire format is
// not established upstream; the call fails with wire.ErrNotImplemented
// before any transport I/O.
func (s *Session) MotorOverride(m1, m2, m3, m4 int32) error {
	cmd, err := wire.Pwm(m1, m2, m3, m4)
	if err != nil {
		return err
	}
	return s.send(cmd)
}

// SetLED would run an LED animation. Its wire format is not
// established upstream; the call fails with wire.ErrNotImplemented
// before any transport I/O.
func (s *Session) SetLED(pattern int32, frequency float32, seconds int32) error {
	cmd, err := wire.Led(pattern, frequency, seconds)
	if err != nil {
		return err
	}
	return s.send(cmd)
}
