package model

import "github.com/gtu-nova/nova-companion/raw"

// A gvar or rotary encoder value above GVarLinkBase is not a value but a
// link to another flight mode: mode (value-GVarLinkBase-1) with the
// current mode's own index skipped.
const (
	GVarMaxValue = 1024
	GVarLinkBase = GVarMaxValue
)

type FlightModeData struct {
	TrimMode       [NumTrims]int          `yaml:"trimMode"`
	TrimRef        [NumTrims]int          `yaml:"trimRef"`
	Trim           [NumTrims]int          `yaml:"trim"`
	Swtch          raw.Switch             `yaml:"swtch"`
	Name           string                 `yaml:"name"`
	FadeIn         int                    `yaml:"fadeIn"`
	FadeOut        int                    `yaml:"fadeOut"`
	RotaryEncoders [MaxRotaryEncoders]int `yaml:"rotaryEncoders"`
	GVars          [MaxGvars]int          `yaml:"gvars"`
}

// Clear resets the flight mode. Modes other than FM0 inherit their trims,
// gvars and rotary encoders from FM0.
func (f *FlightModeData) Clear(phase int) {
	*f = FlightModeData{}
	if phase == 0 {
		return
	}
	for i := range f.GVars {
		f.GVars[i] = LinkTo(phase, 0)
	}
	for i := range f.RotaryEncoders {
		f.RotaryEncoders[i] = LinkTo(phase, 0)
	}
}

// LinkTo encodes, for a gvar of flight mode phase, a link to flight mode
// target.
func LinkTo(phase, target int) int {
	if target > phase {
		target--
	}
	return GVarLinkBase + 1 + target
}

// linkTarget decodes a link stored in flight mode phase.
func linkTarget(phase, value int) int {
	next := value - GVarLinkBase - 1
	if next >= phase {
		next++
	}
	return next
}

type TimerData struct {
	Mode          raw.Switch `yaml:"mode"`
	Val           int        `yaml:"val"`
	Persistent    int        `yaml:"persistent"`
	MinuteBeep    bool       `yaml:"minuteBeep"`
	CountdownBeep int        `yaml:"countdownBeep"`
	Name          string     `yaml:"name"`
}

func (t *TimerData) Clear() {
	*t = TimerData{Mode: raw.NewSwitch(raw.SwitchTimerMode, 0)}
}

func (t *TimerData) IsEmpty() bool {
	return t.Mode == raw.NewSwitch(raw.SwitchTimerMode, 0) && t.Val == 0 && t.Name == ""
}

type SwashRingData struct {
	Type             int        `yaml:"type"`
	Value            int        `yaml:"value"`
	CollectiveSource raw.Source `yaml:"collectiveSource"`
	AileronSource    raw.Source `yaml:"aileronSource"`
	ElevatorSource   raw.Source `yaml:"elevatorSource"`
	CollectiveWeight int        `yaml:"collectiveWeight"`
	AileronWeight    int        `yaml:"aileronWeight"`
	ElevatorWeight   int        `yaml:"elevatorWeight"`
	InvertELE        bool       `yaml:"invertELE"`
	InvertAIL        bool       `yaml:"invertAIL"`
	InvertCOL        bool       `yaml:"invertCOL"`
}

func (s *SwashRingData) Clear() {
	*s = SwashRingData{}
}

type Protocol int

const (
	ProtocolOff Protocol = iota
	ProtocolPPM
	ProtocolSilverA
	ProtocolSilverB
	ProtocolSilverC
	ProtocolCTP1009
	ProtocolLP45
	ProtocolDSM2
	ProtocolDSMX
	ProtocolPPM16
	ProtocolPPMSim
	ProtocolPXXXJTX16
	ProtocolPXXXJTD8
	ProtocolPXXXJTLR12
	ProtocolPXXDJT
	ProtocolMultiModule
)

var protocolNames = [...]string{
	ProtocolOff:         "OFF",
	ProtocolPPM:         "PPM",
	ProtocolSilverA:     "Silverlit A",
	ProtocolSilverB:     "Silverlit B",
	ProtocolSilverC:     "Silverlit C",
	ProtocolCTP1009:     "CTP-1009",
	ProtocolLP45:        "LP45",
	ProtocolDSM2:        "DSM2",
	ProtocolDSMX:        "DSMX",
	ProtocolPPM16:       "PPM16",
	ProtocolPPMSim:      "PPMsim",
	ProtocolPXXXJTX16:   "XJT D16",
	ProtocolPXXXJTD8:    "XJT D8",
	ProtocolPXXXJTLR12:  "XJT LR12",
	ProtocolPXXDJT:      "DJT",
	ProtocolMultiModule: "Multi",
}

func (p Protocol) String() string {
	if p < 0 || int(p) >= len(protocolNames) {
		return "???"
	}
	return protocolNames[p]
}

type FailsafeMode int

const (
	FailsafeNotSet FailsafeMode = iota
	FailsafeHold
	FailsafeCustom
	FailsafeNoPulses
	FailsafeReceiver
)

// ModuleData configures one RF module. Index 2 of ModelData.ModuleData is
// the trainer port.
type ModuleData struct {
	Protocol       Protocol         `yaml:"protocol"`
	SubType        int              `yaml:"subType"`
	ChannelsStart  int              `yaml:"channelsStart"`
	ChannelsCount  int              `yaml:"channelsCount"`
	PPMDelay       int              `yaml:"ppmDelay"`
	PPMFrameLength int              `yaml:"ppmFrameLength"`
	PPMPulsePol    bool             `yaml:"ppmPulsePol"`
	ModelID        int              `yaml:"modelId"`
	FailsafeMode   FailsafeMode     `yaml:"failsafeMode"`
	Failsafe       [NumChannels]int `yaml:"failsafe"`
}
