package raw

import (
	"fmt"

	"github.com/gtu-nova/nova-companion/firmware"
)

type SourceType int

const (
	SourceNone SourceType = iota
	SourceStick
	SourceTrim
	SourceRotaryEncoder
	SourceSwitch
	SourceCustomSwitch
	SourceCyc
	SourcePPM
	SourceCh
	SourceSpecial
	SourceTelemetry
	SourceGvar
	SourceVirtualInput
	SourceLuaOutput
	SourceMax

	sourceTypeCount
)

// Source references something that produces a value: a stick, a
// channel output, a telemetry sensor... Index is relative to Type.
type Source struct {
	Type  SourceType `yaml:"type"`
	Index int        `yaml:"index"`
}

func NewSource(t SourceType, index int) Source {
	return Source{Type: t, Index: index}
}

// SourceFromValue decodes the signed integer form used to store a
// source in a single numeric field.
func SourceFromValue(value int) Source {
	if value < 0 {
		v := -value
		return Source{Type: SourceType(v / 65536), Index: -(v % 65536)}
	}
	return Source{Type: SourceType(value / 65536), Index: value % 65536}
}

func (s Source) Value() int {
	if s.Index >= 0 {
		return int(s.Type)*65536 + s.Index
	}
	return -(int(s.Type)*65536 - s.Index)
}

func (s Source) IsNone() bool {
	return s.Type == SourceNone
}

var (
	stickLabels        = []string{"Rud", "Ele", "Thr", "Ail"}
	pots9xLabels       = []string{"P1", "P2", "P3"}
	potsTaranisLabels  = []string{"S1", "S2", "S3", "LS", "RS"}
	potsX9ELabels      = []string{"F1", "F2", "F3", "F4", "S1", "S2", "LS", "RS"}
	trimLabels         = []string{"TrmR", "TrmE", "TrmT", "TrmA"}
	rotaryLabels       = []string{"REa", "REb"}
	specialLabels      = []string{"Batt", "Time", "Timer1", "Timer2", "Timer3"}
	switchSrc9xLabels  = []string{"3POS", "THR", "RUD", "ELE", "AIL", "GEA", "TRN"}
	switchSrcX9DLabels = []string{"SA", "SB", "SC", "SD", "SE", "SF", "SG", "SH", "SI", "SJ", "SK", "SL", "SM", "SN", "SO", "SP", "SQ", "SR"}
)

// AnalogLabel names a stick, pot or slider by its index in the analog
// inputs: sticks first, then pots, then sliders.
func AnalogLabel(fw Firmware, index int) string {
	if index < NumSticks {
		return inTable(stickLabels, index)
	}
	if index >= NumSticks+fw.Capability(firmware.Pots)+fw.Capability(firmware.Sliders) {
		return unknownLabel
	}
	board := fw.Board()
	switch {
	case board.IsTaranisX9E():
		return inTable(potsX9ELabels, index-NumSticks)
	case board.IsTaranis():
		return inTable(potsTaranisLabels, index-NumSticks)
	default:
		return inTable(pots9xLabels, index-NumSticks)
	}
}

type sourceLabeler func(s Source, fw Firmware, m Model) string

var sourceLabelers = [sourceTypeCount]sourceLabeler{
	SourceNone: func(Source, Firmware, Model) string {
		return noneLabel
	},
	SourceStick: func(s Source, fw Firmware, _ Model) string {
		return AnalogLabel(fw, s.Index)
	},
	SourceTrim: func(s Source, _ Firmware, _ Model) string {
		return inTable(trimLabels, s.Index)
	},
	SourceRotaryEncoder: func(s Source, _ Firmware, _ Model) string {
		return inTable(rotaryLabels, s.Index)
	},
	SourceSwitch: func(s Source, fw Firmware, _ Model) string {
		if s.Index >= fw.Capability(firmware.Switches) {
			return unknownLabel
		}
		if fw.Board().IsTaranis() {
			return inTable(switchSrcX9DLabels, s.Index)
		}
		return inTable(switchSrc9xLabels, s.Index)
	},
	SourceCustomSwitch: func(s Source, _ Firmware, _ Model) string {
		return logicalSwitchLabel(s.Index)
	},
	SourceCyc: func(s Source, _ Firmware, _ Model) string {
		return fmt.Sprintf("CYC%d", s.Index+1)
	},
	SourcePPM: func(s Source, _ Firmware, _ Model) string {
		return fmt.Sprintf("TR%d", s.Index+1)
	},
	SourceCh: func(s Source, _ Firmware, _ Model) string {
		return fmt.Sprintf("CH%d", s.Index+1)
	},
	SourceSpecial: func(s Source, _ Firmware, _ Model) string {
		return inTable(specialLabels, s.Index)
	},
	SourceTelemetry: telemetryLabel,
	SourceGvar: func(s Source, _ Firmware, _ Model) string {
		return fmt.Sprintf("GV%d", s.Index+1)
	},
	SourceVirtualInput: func(s Source, _ Firmware, m Model) string {
		label := fmt.Sprintf("[I%d]", s.Index+1)
		if m != nil {
			label += m.InputName(s.Index)
		}
		return label
	},
	SourceLuaOutput: func(s Source, _ Firmware, _ Model) string {
		return fmt.Sprintf("LUA%d%c", s.Index/16+1, 'a'+rune(s.Index%16))
	},
	SourceMax: func(Source, Firmware, Model) string {
		return "MAX"
	},
}

func telemetryLabel(s Source, fw Firmware, m Model) string {
	if !fw.Board().IsArm() {
		return inTable(telemetryLabels, s.Index)
	}
	if s.Index >= SensorIndices*fw.Capability(firmware.TelemetrySensors) {
		return unknownLabel
	}
	slot, sub := s.Index/SensorIndices, s.Index%SensorIndices
	var label string
	if m != nil {
		label = m.SensorLabel(slot)
	} else {
		label = fmt.Sprintf("[T%d]", slot+1)
	}
	switch sub {
	case SensorMin:
		label += "-"
	case SensorMax:
		label += "+"
	}
	return label
}

func logicalSwitchLabel(index int) string {
	if index < 0 || index >= maxLogicalSwitches {
		return unknownLabel
	}
	return fmt.Sprintf("L%d", index+1)
}

// Label returns the short display name of the source. It never fails:
// references the firmware cannot represent come back as "----" or "???".
func (s Source) Label(fw Firmware, m Model) string {
	if s.Index < 0 || s.Type < 0 || s.Type >= sourceTypeCount {
		return noneLabel
	}
	return sourceLabelers[s.Type](s, fw, m)
}

func (s Source) IsStick() bool {
	return s.Type == SourceStick && s.Index >= 0 && s.Index < NumSticks
}

func (s Source) IsPot(fw Firmware) bool {
	return s.Type == SourceStick &&
		s.Index >= NumSticks &&
		s.Index < NumSticks+fw.Capability(firmware.Pots)
}

func (s Source) IsSlider(fw Firmware) bool {
	pots := fw.Capability(firmware.Pots)
	return s.Type == SourceStick &&
		s.Index >= NumSticks+pots &&
		s.Index < NumSticks+pots+fw.Capability(firmware.Sliders)
}

// IsTimeBased reports whether the source yields a time of day or a
// timer value.
func (s Source) IsTimeBased(fw Firmware) bool {
	if fw.Board().IsArm() {
		return s.Type == SourceSpecial && s.Index > 0
	}
	return s.Type == SourceTelemetry &&
		(s.Index == TelemetryTxTime || s.Index == TelemetryTimer1 ||
			s.Index == TelemetryTimer2 || s.Index == TelemetryTimer3)
}
