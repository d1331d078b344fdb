package navdata

import (
	"encoding/binary"
	"fmt"
	"math"
)

// headerSize is the fixed navdata preamble: magic, state word, sequence
// number and vision flag, each 32 bits.
const headerSize = 16

// optionDemo is the option id of the demo block.
const optionDemo = 0

// demoPayloadSize is the payload size of the demo option.
const demoPayloadSize = 40

// State is the drone's 32-bit status word, one named field per bit the
// firmware defines.
type State struct {
	Flying              bool // bit 0: landed (0) or flying (1)
	VideoEnabled        bool // bit 1
	VisionEnabled       bool // bit 2
	AngularSpeedControl bool // bit 3: euler angles (0) or angular speed (1) control
	AltitudeControl     bool // bit 4
	UserFeedbackStart   bool // bit 5: start button state
	CommandAck          bool // bit 6: control command acknowledged
	FirmwareFileOK      bool // bit 7
	FirmwareVerNewer    bool // bit 8
	FirmwareUpgrading   bool // bit 9
	NavdataDemoOnly     bool // bit 10: demo option only (1) or all options (0)
	NavdataBootstrap    bool // bit 11: no options sent yet
	MotorProblem        bool // bit 12
	ComLost             bool // bit 13
	BatteryLow          bool // bit 15
	UserEmergency       bool // bit 16
	TimerElapsed        bool // bit 17
	AnglesOutOfRange    bool // bit 19
	UltrasoundDeaf      bool // bit 21
	CutoutDetected      bool // bit 22
	PICVersionOK        bool // bit 23
	ATCodecThreadOn     bool // bit 24
	NavdataThreadOn     bool // bit 25
	VideoThreadOn       bool // bit 26
	AcquisitionThreadOn bool // bit 27
	CtrlWatchdogDelayed bool // bit 28: control loop behind schedule
	ADCWatchdogDelayed  bool // bit 29
	ComWatchdog         bool // bit 30: communication watchdog tripped
	Emergency           bool // bit 31: emergency landing active
}

// decodeState expands the raw status word into named bits.
func decodeState(w uint32) State {
	bit := func(n uint) bool { return w>>n&1 == 1 }
	return State{
		Flying:              bit(0),
		VideoEnabled:        bit(1),
		VisionEnabled:       bit(2),
		AngularSpeedControl: bit(3),
		AltitudeControl:     bit(4),
		UserFeedbackStart:   bit(5),
		CommandAck:          bit(6),
		FirmwareFileOK:      bit(7),
		FirmwareVerNewer:    bit(8),
		FirmwareUpgrading:   bit(9),
		NavdataDemoOnly:     bit(10),
		NavdataBootstrap:    bit(11),
		MotorProblem:        bit(12),
		ComLost:             bit(13),
		BatteryLow:          bit(15),
		UserEmergency:       bit(16),
		TimerElapsed:        bit(17),
		AnglesOutOfRange:    bit(19),
		UltrasoundDeaf:      bit(21),
		CutoutDetected:      bit(22),
		PICVersionOK:        bit(23),
		ATCodecThreadOn:     bit(24),
		NavdataThreadOn:     bit(25),
		VideoThreadOn:       bit(26),
		AcquisitionThreadOn: bit(27),
		CtrlWatchdogDelayed: bit(28),
		ADCWatchdogDelayed:  bit(29),
		ComWatchdog:         bit(30),
		Emergency:           bit(31),
	}
}

// Demo is the decoded demo option: the subset of telemetry the firmware
// sends in demo mode.
type Demo struct {
	// ControlState is the firmware's flight state machine value.
	ControlState uint32

	// Battery is the charge percentage.
	Battery uint32

	// Theta, Phi, Psi are pitch, roll and yaw in degrees. The wire
	// carries millidegrees; they are scaled here.
	Theta float32
	Phi   float32
	Psi   float32

	// Altitude is the estimated altitude in millimeters.
	Altitude uint32

	// VX, VY, VZ are linear velocities in mm/s.
	VX float32
	VY float32
	VZ float32

	// Frames is the number of video frames processed.
	Frames uint32
}

// Navdata is one decoded telemetry packet.
type Navdata struct {
	// Header is the packet magic.
	Header uint32

	// RawState is the undecoded status word; State is its named view.
	RawState uint32
	State    State

	// Seq is the drone's own navdata sequence number.
	Seq uint32

	// VisionFlag is the vision detection flag.
	VisionFlag uint32

	// Demo is the decoded demo option, if the packet carried one.
	Demo *Demo
}

// Decode parses one navdata datagram. Option blocks it does not know
// are skipped by their declared size; a truncated trailing block ends
// the packet, matching the firmware's loose framing.
func Decode(packet []byte) (*Navdata, error) {
	if len(packet) < headerSize {
		return nil, fmt.Errorf("navdata packet too short: %d bytes", len(packet))
	}

	raw := binary.LittleEndian.Uint32(packet[4:])
	nd := &Navdata{
		Header:     binary.LittleEndian.Uint32(packet[0:]),
		RawState:   raw,
		State:      decodeState(raw),
		Seq:        binary.LittleEndian.Uint32(packet[8:]),
		VisionFlag: binary.LittleEndian.Uint32(packet[12:]),
	}

	rest := packet[headerSize:]
	for len(rest) >= 4 {
		id := binary.LittleEndian.Uint16(rest[0:])
		size := int(binary.LittleEndian.Uint16(rest[2:]))
		if size < 4 || size > len(rest) {
			break
		}
		payload := rest[4:size]
		if id == optionDemo && len(payload) >= demoPayloadSize {
			nd.Demo = decodeDemo(payload)
		}
		rest = rest[size:]
	}

	return nd, nil
}

// decodeDemo parses the demo option payload. Attitude arrives in
// millidegrees and is converted to degrees.
func decodeDemo(p []byte) *Demo {
	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(p[off:]))
	}
	return &Demo{
		ControlState: binary.LittleEndian.Uint32(p[0:]),
		Battery:      binary.LittleEndian.Uint32(p[4:]),
		Theta:        f32(8) / 1000,
		Phi:          f32(12) / 1000,
		Psi:          f32(16) / 1000,
		Altitude:     binary.LittleEndian.Uint32(p[20:]),
		VX:           f32(24),
		VY:           f32(28),
		VZ:           f32(32),
		Frames:       binary.LittleEndian.Uint32(p[36:]),
	}
}
