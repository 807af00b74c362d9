package model

import (
	"fmt"
	"strconv"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/raw"
)

type LogicalSwitchFunc int

const (
	LsFnOff LogicalSwitchFunc = iota
	LsFnVPos
	LsFnVNeg
	LsFnAPos
	LsFnANeg
	LsFnAnd
	LsFnOr
	LsFnXor
	LsFnEqual
	LsFnNEqual
	LsFnGreater
	LsFnLess
	LsFnEGreater
	LsFnELess
	LsFnDPos
	LsFnDAPos
	LsFnVEqual
	LsFnVAlmostEqual
	LsFnTimer
	LsFnSticky
	LsFnEdge

	lsFnCount
)

type LogicalSwitchFamily int

const (
	LsFamilyVOfs LogicalSwitchFamily = iota
	LsFamilyVBool
	LsFamilyVComp
	LsFamilyTimer
	LsFamilySticky
	LsFamilyEdge
)

var lsFuncStrings = [lsFnCount]string{
	LsFnOff:          "---",
	LsFnVPos:         "a>x",
	LsFnVNeg:         "a<x",
	LsFnAPos:         "|a|>x",
	LsFnANeg:         "|a|<x",
	LsFnAnd:          "AND",
	LsFnOr:           "OR",
	LsFnXor:          "XOR",
	LsFnEqual:        "a=b",
	LsFnNEqual:       "a!=b",
	LsFnGreater:      "a>b",
	LsFnLess:         "a<b",
	LsFnEGreater:     "a>=b",
	LsFnELess:        "a<=b",
	LsFnDPos:         "d>=x",
	LsFnDAPos:        "|d|>=x",
	LsFnVEqual:       "a=x",
	LsFnVAlmostEqual: "a~x",
	LsFnTimer:        "Timer",
	LsFnSticky:       "Sticky",
	LsFnEdge:         "Edge",
}

// LogicalSwitchData is one logical switch. The meaning of Val1..Val3
// depends on the function family: raw sources, raw switches or
// constants.
type LogicalSwitchData struct {
	Func     LogicalSwitchFunc `yaml:"func"`
	Val1     int               `yaml:"val1"`
	Val2     int               `yaml:"val2"`
	Val3     int               `yaml:"val3"`
	Delay    int               `yaml:"delay"`
	Duration int               `yaml:"duration"`
	AndSw    int               `yaml:"andsw"`
}

func (l *LogicalSwitchData) Clear() {
	*l = LogicalSwitchData{}
}

func (l *LogicalSwitchData) IsEmpty() bool {
	return l.Func == LsFnOff
}

func (l *LogicalSwitchData) FunctionFamily() LogicalSwitchFamily {
	switch {
	case l.Func == LsFnEdge:
		return LsFamilyEdge
	case l.Func == LsFnTimer:
		return LsFamilyTimer
	case l.Func == LsFnSticky:
		return LsFamilySticky
	case l.Func < LsFnAnd || l.Func > LsFnELess:
		return LsFamilyVOfs
	case l.Func < LsFnEqual:
		return LsFamilyVBool
	default:
		return LsFamilyVComp
	}
}

// RangeFlags returns the flags to resolve the range of Val1 with.
func (l *LogicalSwitchData) RangeFlags() raw.RangeFlags {
	switch l.Func {
	case LsFnDPos:
		return raw.RangeDeltaFunction
	case LsFnDAPos:
		return raw.RangeDeltaAbsFunction
	}
	return 0
}

func (l *LogicalSwitchData) FuncString() string {
	if l.Func < 0 || l.Func >= lsFnCount {
		return "Unknown"
	}
	return lsFuncStrings[l.Func]
}

type AssignFunc int

const (
	FuncOverrideCH1  AssignFunc = 0
	FuncOverrideCH32 AssignFunc = FuncOverrideCH1 + 31
)

const (
	FuncTrainer AssignFunc = FuncOverrideCH32 + 1 + iota
	FuncTrainerRUD
	FuncTrainerELE
	FuncTrainerTHR
	FuncTrainerAIL
	FuncInstantTrim
	FuncPlaySound
	FuncPlayHaptic
	FuncReset
	FuncSetTimer1
	FuncSetTimer2
	FuncSetTimer3
	FuncVario
	FuncPlayPrompt
	FuncPlayBoth
	FuncPlayValue
	FuncPlayScript
	FuncLogs
	FuncVolume
	FuncBacklight
	FuncScreenshot
	FuncBackgroundMusic
	FuncBackgroundMusicPause
	FuncAdjustGV1
	FuncAdjustGVLast = FuncAdjustGV1 + MaxGvars - 1
	FuncCount        = FuncAdjustGVLast + 1
)

var simpleFuncStrings = map[AssignFunc]string{
	FuncTrainer:              "Trainer",
	FuncTrainerRUD:           "Trainer RUD",
	FuncTrainerELE:           "Trainer ELE",
	FuncTrainerTHR:           "Trainer THR",
	FuncTrainerAIL:           "Trainer AIL",
	FuncInstantTrim:          "Instant Trim",
	FuncPlaySound:            "Play Sound",
	FuncPlayHaptic:           "Haptic",
	FuncReset:                "Reset",
	FuncVario:                "Vario",
	FuncPlayPrompt:           "Play Track",
	FuncPlayBoth:             "Play Both",
	FuncPlayValue:            "Play Value",
	FuncPlayScript:           "Play Script",
	FuncLogs:                 "Start Logs",
	FuncVolume:               "Volume",
	FuncBacklight:            "Backlight",
	FuncScreenshot:           "Screenshot",
	FuncBackgroundMusic:      "Background Music",
	FuncBackgroundMusicPause: "Background Music Pause",
}

var (
	playSoundParams = []string{
		"Beep 1", "Beep 2", "Beep 3", "Warn1", "Warn2", "Cheep", "Ratata", "Tick", "Siren", "Ring",
		"SciFi", "Robot", "Chirp", "Tada", "Crickt", "AlmClk",
	}
	hapticParams = []string{"0", "1", "2", "3"}
)

const inconsistentParam = "Inconsistent parameter"

type AdjustMode int

const (
	AdjustValue AdjustMode = iota
	AdjustSource
	AdjustGvar
	AdjustIncDec
)

// CustomFunctionData is one special function line.
type CustomFunctionData struct {
	Swtch       raw.Switch `yaml:"swtch"`
	Func        AssignFunc `yaml:"func"`
	Param       int        `yaml:"param"`
	ParamArm    string     `yaml:"paramArm"`
	Enabled     bool       `yaml:"enabled"`
	AdjustMode  AdjustMode `yaml:"adjustMode"`
	RepeatParam int        `yaml:"repeatParam"`
}

// Clear resets the line. Firmwares without the safety channel function
// default to the trainer function instead.
func (c *CustomFunctionData) Clear(fw raw.Firmware) {
	*c = CustomFunctionData{}
	if fw.Capability(firmware.SafetyChannelCustomFunction) == 0 {
		c.Func = FuncTrainer
	}
}

func (c *CustomFunctionData) IsEmpty() bool {
	return c.Swtch.Type == raw.SwitchNone
}

func (c *CustomFunctionData) FuncString(fw raw.Firmware) string {
	switch {
	case c.Func >= FuncOverrideCH1 && c.Func <= FuncOverrideCH32:
		return "Override " + raw.NewSource(raw.SourceCh, int(c.Func)).Label(fw, nil)
	case c.Func >= FuncSetTimer1 && c.Func <= FuncSetTimer3:
		return fmt.Sprintf("Set Timer %d", c.Func-FuncSetTimer1+1)
	case c.Func >= FuncAdjustGV1 && c.Func <= FuncAdjustGVLast:
		return fmt.Sprintf("Adjust GV%d", c.Func-FuncAdjustGV1+1)
	}
	if s, ok := simpleFuncStrings[c.Func]; ok {
		return s
	}
	return "???"
}

type ResetParam struct {
	Label string
	Value int
}

// ResetParams lists what a Reset function can target on this firmware:
// timers, flight, telemetry, rotary encoders, then the model's sensors.
func ResetParams(fw raw.Firmware, m *ModelData) []ResetParam {
	var params []ResetParam
	add := func(label string) {
		params = append(params, ResetParam{Label: label, Value: len(params)})
	}
	arm := fw.Board().IsArm()

	add("Timer1")
	add("Timer2")
	if arm {
		add("Timer3")
	}
	add("Flight")
	add("Telemetry")
	switch fw.Capability(firmware.RotaryEncoders) {
	case 1:
		add("Rotary Encoder")
	case 2:
		add("REa")
		add("REb")
	}

	if m != nil && arm {
		base := len(params)
		for i := range m.SensorData {
			if m.SensorData[i].IsAvailable() {
				label := raw.SensorSource(i, raw.SensorValue).Label(fw, m)
				params = append(params, ResetParam{Label: label, Value: base + i})
			}
		}
	}
	return params
}

// ParamString renders the parameter of the function. m may be nil.
func (c *CustomFunctionData) ParamString(fw raw.Firmware, m *ModelData) string {
	var model raw.Model
	if m != nil {
		model = m
	}

	switch {
	case c.Func <= FuncInstantTrim:
		return strconv.Itoa(c.Param)
	case c.Func == FuncLogs:
		return strconv.FormatFloat(float64(c.Param)/10, 'g', -1, 64) + "s"
	case c.Func == FuncPlaySound:
		return paramFromList(playSoundParams, c.Param)
	case c.Func == FuncPlayHaptic:
		return paramFromList(hapticParams, c.Param)
	case c.Func == FuncReset:
		for _, p := range ResetParams(fw, m) {
			if p.Value == c.Param {
				return p.Label
			}
		}
		return inconsistentParam
	case c.Func == FuncVolume || c.Func == FuncPlayValue:
		return raw.SourceFromValue(c.Param).Label(fw, model)
	case c.Func == FuncPlayPrompt || c.Func == FuncPlayBoth:
		if fw.Capability(firmware.VoicesAsNumbers) != 0 {
			return strconv.Itoa(c.Param)
		}
		return c.ParamArm
	case c.Func >= FuncAdjustGV1 && c.Func < FuncCount:
		switch c.AdjustMode {
		case AdjustValue:
			return "Value " + strconv.Itoa(c.Param)
		case AdjustSource, AdjustGvar:
			return raw.SourceFromValue(c.Param).Label(fw, model)
		case AdjustIncDec:
			if c.Param == 0 {
				return "Decr: -1"
			}
			return "Incr: +1"
		}
	}
	return ""
}

func paramFromList(list []string, param int) string {
	if param >= 0 && param < len(list) {
		return list[param]
	}
	return inconsistentParam
}

func (c *CustomFunctionData) RepeatString(fw raw.Firmware) string {
	if c.RepeatParam == 0 {
		return ""
	}
	step := 10
	if fw.Board().IsArm() {
		step = 1
	}
	return fmt.Sprintf("repeat(%ds)", step*c.RepeatParam)
}

// EnabledString flags lines of functions that can be disabled.
func (c *CustomFunctionData) EnabledString() string {
	canDisable := (c.Func >= FuncOverrideCH1 && c.Func <= FuncOverrideCH32) ||
		(c.Func >= FuncAdjustGV1 && c.Func <= FuncAdjustGVLast) ||
		c.Func == FuncReset ||
		(c.Func >= FuncSetTimer1 && c.Func <= FuncSetTimer2) ||
		c.Func == FuncVolume ||
		c.Func <= FuncInstantTrim
	if canDisable && !c.Enabled {
		return "DISABLED"
	}
	return ""
}
