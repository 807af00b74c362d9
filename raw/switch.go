package raw

import (
	"fmt"

	"github.com/gtu-nova/nova-companion/firmware"
)

type SwitchType int

const (
	SwitchNone SwitchType = iota
	SwitchSwitch
	SwitchVirtual
	SwitchMultiposPot
	SwitchTrim
	SwitchRotaryEncoder
	SwitchOn
	SwitchOff
	SwitchOne
	SwitchFlightMode
	SwitchTimerMode

	switchTypeCount
)

// Switch references a boolean condition. A negative Index means the
// condition is inverted.
type Switch struct {
	Type  SwitchType `yaml:"type"`
	Index int        `yaml:"index"`
}

func NewSwitch(t SwitchType, index int) Switch {
	return Switch{Type: t, Index: index}
}

func SwitchFromValue(value int) Switch {
	if value < 0 {
		v := -value
		return Switch{Type: SwitchType(v / 256), Index: -(v % 256)}
	}
	return Switch{Type: SwitchType(value / 256), Index: value % 256}
}

func (s Switch) Value() int {
	if s.Index >= 0 {
		return int(s.Type)*256 + s.Index
	}
	return -(int(s.Type)*256 - s.Index)
}

// CanNegate reports whether an inverted form of the switch is meaningful.
func (s Switch) CanNegate() bool {
	switch s.Type {
	case SwitchNone, SwitchOn, SwitchOff, SwitchOne, SwitchTimerMode:
		return false
	}
	return s.Type >= 0 && s.Type < switchTypeCount
}

// Inverted returns the negated switch, or s unchanged when it cannot be
// negated.
func (s Switch) Inverted() Switch {
	if !s.CanNegate() {
		return s
	}
	return Switch{Type: s.Type, Index: -s.Index}
}

var (
	switches9xLabels = []string{
		"THR", "RUD", "ELE",
		"ID0", "ID1", "ID2",
		"AIL", "GEA", "TRN",
	}
	multiposPotLabels = []string{
		"S11", "S12", "S13", "S14", "S15", "S16",
		"S21", "S22", "S23", "S24", "S25", "S26",
		"S31", "S32", "S33", "S34", "S35", "S36",
	}
	trimSwitchLabels = []string{
		"RudTrim Left", "RudTrim Right",
		"EleTrim Down", "EleTrim Up",
		"ThrTrim Down", "ThrTrim Up",
		"AilTrim Left", "AilTrim Right",
	}
	timerModeLabels = []string{"OFF", "ON", "THs", "TH%", "THt"}

	switchesX9DLabels = taranisSwitchPositions()
)

// taranisSwitchPositions builds "SA↑", "SA-", "SA↓", ... "SR↓".
func taranisSwitchPositions() []string {
	labels := make([]string, 0, len(switchSrcX9DLabels)*3)
	for _, sw := range switchSrcX9DLabels {
		labels = append(labels, sw+"↑", sw+"-", sw+"↓")
	}
	return labels
}

type switchLabeler func(s Switch, fw Firmware) string

var switchLabelers = [switchTypeCount]switchLabeler{
	SwitchNone: func(Switch, Firmware) string {
		return noneLabel
	},
	SwitchSwitch: func(s Switch, fw Firmware) string {
		if s.Index > fw.Capability(firmware.SwitchesPositions) {
			return unknownLabel
		}
		if fw.Board().IsTaranis() {
			return inTable(switchesX9DLabels, s.Index-1)
		}
		return inTable(switches9xLabels, s.Index-1)
	},
	SwitchVirtual: func(s Switch, _ Firmware) string {
		return logicalSwitchLabel(s.Index - 1)
	},
	SwitchMultiposPot: func(s Switch, _ Firmware) string {
		return inTable(multiposPotLabels, s.Index-1)
	},
	SwitchTrim: func(s Switch, _ Firmware) string {
		return inTable(trimSwitchLabels, s.Index-1)
	},
	SwitchRotaryEncoder: func(s Switch, _ Firmware) string {
		return inTable(rotaryLabels, s.Index-1)
	},
	SwitchOn: func(Switch, Firmware) string {
		return "ON"
	},
	SwitchOff: func(Switch, Firmware) string {
		return "OFF"
	},
	SwitchOne: func(Switch, Firmware) string {
		return "One"
	},
	SwitchFlightMode: func(s Switch, _ Firmware) string {
		if s.Index < 1 || s.Index > maxFlightModes {
			return unknownLabel
		}
		return fmt.Sprintf("FM%d", s.Index-1)
	},
	SwitchTimerMode: func(s Switch, _ Firmware) string {
		return inTable(timerModeLabels, s.Index)
	},
}

func (s Switch) Label(fw Firmware) string {
	if s.Index < 0 {
		if -s.Index < 0 {
			return "!" + unknownLabel
		}
		return "!" + Switch{Type: s.Type, Index: -s.Index}.Label(fw)
	}
	if s.Type < 0 || s.Type >= switchTypeCount {
		return unknownLabel
	}
	return switchLabelers[s.Type](s, fw)
}
