package wire

import (
	"errors"
	"testing"
)

func TestRefFlagWord(t *testing.T) {
	tests := []struct {
		name      string
		takeoff   bool
		emergency bool
		want      uint32
	}{
		{name: "neutral", want: RefBase},
		{name: "takeoff", takeoff: true, want: RefBase + 512},
		{name: "emergency", emergency: true, want: RefBase + 256},
		{name: "takeoff and emergency", takeoff: true, emergency: true, want: RefBase + 512 + 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Ref(tt.takeoff, tt.emergency)
			if cmd.Name != "REF" {
				t.Fatalf("Name = %q, want REF", cmd.Name)
			}
			if len(cmd.Params) != 1 {
				t.Fatalf("param count = %d, want 1", len(cmd.Params))
			}
			if got := uint32(cmd.Params[0].i); got != tt.want {
				t.Errorf("flag word = %#b, want %#b", got, tt.want)
			}
		})
	}
}

func TestRefBaseBits(t *testing.T) {
	if RefBase != 0b10001010101000000000000000000 {
		t.Errorf("RefBase = %#b", RefBase)
	}
	if RefTakeoff != 512 {
		t.Errorf("RefTakeoff = %d, want 512 (bit 9)", RefTakeoff)
	}
	if RefEmergency != 256 {
		t.Errorf("RefEmergency = %d, want 256 (bit 8)", RefEmergency)
	}
}

func TestPcmd(t *testing.T) {
	cmd := Pcmd(true, 0.1, -0.2, 0.3, -0.4)
	if cmd.Name != "PCMD" {
		t.Fatalf("Name = %q, want PCMD", cmd.Name)
	}
	want := "AT*PCMD=5,1,1036831949,-1102263091,1050253722,-1093874483\r"
	if got := cmd.Line(5); got != want {
		t.Errorf("Line(5) = %q, want %q", got, want)
	}
}

func TestPcmdHover(t *testing.T) {
	cmd := Pcmd(false, 0, 0, 0, 0)
	want := "AT*PCMD=1,0,0,0,0,0\r"
	if got := cmd.Line(1); got != want {
		t.Errorf("hover Line(1) = %q, want %q", got, want)
	}
}

func TestCatalogShapes(t *testing.T) {
	tests := []struct {
		name      string
		cmd       Command
		wantName  string
		wantCount int
	}{
		{name: "flat trim", cmd: FlatTrim(), wantName: "FTRIM", wantCount: 0},
		{name: "watchdog reset", cmd: WatchdogReset(), wantName: "COMWDG", wantCount: 0},
		{name: "zap", cmd: Zap(2), wantName: "ZAP", wantCount: 1},
		{name: "config", cmd: ConfigSet("control:altitude_max", "3000"), wantName: "CONFIG", wantCount: 2},
		{name: "anim", cmd: Anim(18, 2), wantName: "ANIM", wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tt.cmd.Name, tt.wantName)
			}
			if len(tt.cmd.Params) != tt.wantCount {
				t.Errorf("param count = %d, want %d", len(tt.cmd.Params), tt.wantCount)
			}
		})
	}
}

func TestWatchdogResetCarriesSequence(t *testing.T) {
	// COMWDG consumes a sequence number like every other command.
	if got := WatchdogReset().Line(77); got != "AT*COMWDG=77\r" {
		t.Errorf("Line(77) = %q, want AT*COMWDG=77\\r", got)
	}
}

func TestUnimplementedEntries(t *testing.T) {
	if _, err := Pwm(1, 2, 3, 4); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Pwm error = %v, want ErrNotImplemented", err)
	}
	if _, err := Led(1, 2.0, 3); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Led error = %v, want ErrNotImplemented", err)
	}
}
