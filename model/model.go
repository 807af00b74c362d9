// Package model holds the radio and model records a firmware codec reads
// and writes. Records are plain values: assignment copies them and ==
// compares them.
package model

import (
	"fmt"
	"strings"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/raw"
)

const (
	NumSticks          = raw.NumSticks
	NumTrims           = 4
	NumPots            = 8
	NumSliders         = 4
	NumSwitches        = 18
	NumChannels        = 32
	NumModules         = 3
	MaxMixers          = 64
	MaxExpos           = 64
	MaxInputs          = 32
	MaxCurves          = 32
	NumLogicalSwitches = 32
	MaxCustomFunctions = 64
	MaxFlightModes     = 9
	MaxTimers          = 3
	MaxSensors         = 32
	MaxGvars           = 9
	MaxRotaryEncoders  = 2

	defaultCurvePoints = 5
	trimMax            = 500
)

type ModelData struct {
	Used                   bool   `yaml:"used"`
	Name                   string `yaml:"name"`
	Bitmap                 string `yaml:"bitmap"`
	ExtendedLimits         bool   `yaml:"extendedLimits"`
	ExtendedTrims          bool   `yaml:"extendedTrims"`
	ThrottleTrace          int    `yaml:"thrTrace"`
	ThrottleTrim           bool   `yaml:"thrTrim"`
	ThrottleReversed       bool   `yaml:"throttleReversed"`
	TrimInc                int    `yaml:"trimInc"`
	DisableThrottleWarning bool   `yaml:"disableThrottleWarning"`
	BeepANACenter          uint   `yaml:"beepANACenter"`
	TrainerMode            int    `yaml:"trainerMode"`

	Timers         [MaxTimers]TimerData                   `yaml:"timers"`
	FlightModeData [MaxFlightModes]FlightModeData         `yaml:"flightModes"`
	MixData        [MaxMixers]MixData                     `yaml:"mixData"`
	MixCount       int                                    `yaml:"mixCount"`
	LimitData      [NumChannels]LimitData                 `yaml:"limitData"`
	InputNames     [MaxInputs]string                      `yaml:"inputNames"`
	ExpoData       [MaxExpos]ExpoData                     `yaml:"expoData"`
	ExpoCount      int                                    `yaml:"expoCount"`
	Curves         [MaxCurves]CurveData                   `yaml:"curves"`
	LogicalSw      [NumLogicalSwitches]LogicalSwitchData  `yaml:"logicalSw"`
	CustomFn       [MaxCustomFunctions]CustomFunctionData `yaml:"customFn"`
	SwashRingData  SwashRingData                          `yaml:"swashRing"`
	FrSky          FrSkyData                              `yaml:"frsky"`
	SensorData     [MaxSensors]SensorData                 `yaml:"sensorData"`
	ModuleData     [NumModules]ModuleData                 `yaml:"moduleData"`
}

// New returns a cleared model for the firmware.
func New(fw raw.Firmware) ModelData {
	var m ModelData
	m.Clear(fw)
	return m
}

// Clear resets the model to the defaults of the firmware's board.
func (m *ModelData) Clear(fw raw.Firmware) {
	*m = ModelData{}

	m.ModuleData[0].ChannelsCount = 8
	m.ModuleData[1].ChannelsStart = 0
	m.ModuleData[1].ChannelsCount = 8
	for i := range m.ModuleData {
		m.ModuleData[i].PPMDelay = 300
	}
	if fw.Board().IsTaranis() {
		m.ModuleData[0].Protocol = ProtocolPXXXJTX16
	} else {
		m.ModuleData[0].Protocol = ProtocolPPM
	}
	m.ModuleData[1].Protocol = ProtocolOff

	for i := range m.FlightModeData {
		m.FlightModeData[i].Clear(i)
	}
	m.ClearInputs(fw)
	m.ClearMixes()
	for i := range m.LimitData {
		m.LimitData[i].Clear()
	}
	for i := range m.LogicalSw {
		m.LogicalSw[i].Clear()
	}
	for i := range m.CustomFn {
		m.CustomFn[i].Clear(fw)
	}
	for i := range m.Curves {
		m.Curves[i].Clear(defaultCurvePoints)
	}
	for i := range m.Timers {
		m.Timers[i].Clear()
	}
	m.SwashRingData.Clear()
	m.FrSky.Clear(fw)
	for i := range m.SensorData {
		m.SensorData[i].Clear()
	}
}

func (m *ModelData) IsEmpty() bool {
	return !m.Used
}

// Inputs returns the used input lines, in order.
func (m *ModelData) Inputs() []ExpoData {
	return m.ExpoData[:clampCount(m.ExpoCount, MaxExpos)]
}

// Mixes returns the used mixer lines, in order.
func (m *ModelData) Mixes() []MixData {
	return m.MixData[:clampCount(m.MixCount, MaxMixers)]
}

func clampCount(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}

// InsertInput opens a cleared line at idx, shifting the following lines
// down. The last line is dropped when the table is full. It returns nil
// when idx is outside the used lines.
func (m *ModelData) InsertInput(idx int) *ExpoData {
	count := clampCount(m.ExpoCount, MaxExpos)
	if idx < 0 || idx > count || idx >= MaxExpos {
		return nil
	}
	copy(m.ExpoData[idx+1:], m.ExpoData[idx:MaxExpos-1])
	m.ExpoData[idx].Clear()
	if count < MaxExpos {
		count++
	}
	m.ExpoCount = count
	return &m.ExpoData[idx]
}

// RemoveInput deletes the line at idx. The input's name is cleared with
// its last line.
func (m *ModelData) RemoveInput(idx int) {
	count := clampCount(m.ExpoCount, MaxExpos)
	if idx < 0 || idx >= count {
		return
	}
	chn := m.ExpoData[idx].Chn

	copy(m.ExpoData[idx:], m.ExpoData[idx+1:])
	m.ExpoData[MaxExpos-1].Clear()
	m.ExpoCount = count - 1

	if !m.IsInputValid(chn) && chn >= 0 && chn < MaxInputs {
		m.InputNames[chn] = ""
	}
}

// IsInputValid reports whether any line feeds input chn.
func (m *ModelData) IsInputValid(chn int) bool {
	for _, e := range m.Inputs() {
		if e.Chn == chn {
			return true
		}
	}
	return false
}

func (m *ModelData) ClearInputs(fw raw.Firmware) {
	for i := range m.ExpoData {
		m.ExpoData[i].Clear()
	}
	m.ExpoCount = 0
	if fw.Capability(firmware.VirtualInputs) != 0 {
		for i := range m.InputNames {
			m.InputNames[i] = ""
		}
	}
}

func (m *ModelData) InsertMix(idx int) *MixData {
	count := clampCount(m.MixCount, MaxMixers)
	if idx < 0 || idx > count || idx >= MaxMixers {
		return nil
	}
	copy(m.MixData[idx+1:], m.MixData[idx:MaxMixers-1])
	m.MixData[idx].Clear()
	if count < MaxMixers {
		count++
	}
	m.MixCount = count
	return &m.MixData[idx]
}

func (m *ModelData) RemoveMix(idx int) {
	count := clampCount(m.MixCount, MaxMixers)
	if idx < 0 || idx >= count {
		return
	}
	copy(m.MixData[idx:], m.MixData[idx+1:])
	m.MixData[MaxMixers-1].Clear()
	m.MixCount = count - 1
}

func (m *ModelData) ClearMixes() {
	for i := range m.MixData {
		m.MixData[i].Clear()
	}
	m.MixCount = 0
}

// SetDefaultInputs creates one input per stick, in the channel order of
// the settings. Only boards with virtual inputs have them.
func (m *ModelData) SetDefaultInputs(fw raw.Firmware, settings *GeneralSettings) {
	if fw.Capability(firmware.VirtualInputs) == 0 {
		return
	}
	for i := 0; i < NumSticks; i++ {
		e := &m.ExpoData[i]
		e.Chn = i
		e.Mode = InputModeBoth
		e.SrcRaw = settings.DefaultSource(i)
		e.Weight = 100
		m.InputNames[i] = removeAccents(e.SrcRaw.Label(fw, m))
	}
	if m.ExpoCount < NumSticks {
		m.ExpoCount = NumSticks
	}
}

func (m *ModelData) SetDefaultMixes(fw raw.Firmware, settings *GeneralSettings) {
	virtualInputs := fw.Capability(firmware.VirtualInputs) != 0
	if virtualInputs {
		m.SetDefaultInputs(fw, settings)
	}
	for i := 0; i < NumSticks; i++ {
		mix := &m.MixData[i]
		mix.DestCh = i + 1
		mix.Weight = 100
		if virtualInputs {
			mix.SrcRaw = raw.NewSource(raw.SourceVirtualInput, i)
		} else {
			mix.SrcRaw = raw.NewSource(raw.SourceStick, i)
		}
	}
	if m.MixCount < NumSticks {
		m.MixCount = NumSticks
	}
}

// SetDefaultValues turns the slot id into a fresh, used model.
func (m *ModelData) SetDefaultValues(fw raw.Firmware, id int, settings *GeneralSettings) {
	m.Clear(fw)
	m.Used = true
	m.Name = fmt.Sprintf("MODEL%02d", id+1)
	for i := range m.ModuleData {
		m.ModuleData[i].ModelID = id + 1
	}
	m.SetDefaultMixes(fw, settings)
}

var accents = strings.NewReplacer(
	"á", "a", "â", "a", "ã", "a", "à", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ě", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"ý", "y",
	"š", "s",
	"ř", "r",
)

func removeAccents(s string) string {
	return accents.Replace(s)
}

func validPhase(phase int) bool {
	return phase >= 0 && phase < MaxFlightModes
}

// TrimValue resolves the trim of a flight mode, following the trim
// inheritance chain. Malformed chains resolve to 0.
func (m *ModelData) TrimValue(phase, trim int) int {
	if trim < 0 || trim >= NumTrims {
		return 0
	}
	result := 0
	for i := 0; i < MaxFlightModes; i++ {
		if !validPhase(phase) {
			return 0
		}
		fm := &m.FlightModeData[phase]
		if fm.TrimMode[trim] < 0 {
			return 0
		}
		if fm.TrimRef[trim] == phase || phase == 0 {
			return result + fm.Trim[trim]
		}
		phase = fm.TrimRef[trim]
		if fm.TrimMode[trim] == 0 {
			result = 0
		} else {
			result += fm.Trim[trim]
		}
	}
	return 0
}

// SetTrimValue stores value as the resolved trim of a flight mode. An
// aliased mode writes through to its owner; a delta mode stores the
// difference to its reference, clamped to ±500.
func (m *ModelData) SetTrimValue(phase, trim, value int) {
	if trim < 0 || trim >= NumTrims {
		return
	}
	for i := 0; i < MaxFlightModes; i++ {
		if !validPhase(phase) {
			return
		}
		fm := &m.FlightModeData[phase]
		mode := fm.TrimMode[trim]
		ref := fm.TrimRef[trim]
		if mode < 0 {
			return
		}
		if ref == phase || phase == 0 {
			fm.Trim[trim] = value
			return
		}
		if mode == 0 {
			phase = ref
			continue
		}
		delta := value - m.TrimValue(ref, trim)
		if delta < -trimMax {
			delta = -trimMax
		}
		if delta > trimMax {
			delta = trimMax
		}
		fm.Trim[trim] = delta
		return
	}
}

func (m *ModelData) IsGVarLinked(phase, gvar int) bool {
	if !validPhase(phase) || gvar < 0 || gvar >= MaxGvars {
		return false
	}
	return m.FlightModeData[phase].GVars[gvar] > GVarLinkBase
}

// GVarValue resolves the value of a gvar in a flight mode, following
// links. Broken or cyclic links resolve to 0.
func (m *ModelData) GVarValue(phase, gvar int) int {
	if gvar < 0 || gvar >= MaxGvars {
		return 0
	}
	return m.resolveLinked(phase, func(fm *FlightModeData) int { return fm.GVars[gvar] })
}

func (m *ModelData) IsRotaryEncoderLinked(phase, idx int) bool {
	if !validPhase(phase) || idx < 0 || idx >= MaxRotaryEncoders {
		return false
	}
	return m.FlightModeData[phase].RotaryEncoders[idx] > GVarLinkBase
}

func (m *ModelData) RotaryEncoderValue(phase, idx int) int {
	if idx < 0 || idx >= MaxRotaryEncoders {
		return 0
	}
	return m.resolveLinked(phase, func(fm *FlightModeData) int { return fm.RotaryEncoders[idx] })
}

func (m *ModelData) resolveLinked(phase int, field func(*FlightModeData) int) int {
	if !validPhase(phase) {
		return 0
	}
	value := field(&m.FlightModeData[phase])
	for i := 0; value > GVarLinkBase && i < MaxFlightModes; i++ {
		phase = linkTarget(phase, value)
		if !validPhase(phase) {
			return 0
		}
		value = field(&m.FlightModeData[phase])
	}
	if value > GVarLinkBase {
		return 0
	}
	return value
}

// Mixer and input percentages between ±126 and ±130 reference gvars 1..5
// on firmwares that store them in a byte.
const (
	gvarRefFirst = 126
	gvarRefLast  = 130
)

// RemoveGlobalVar replaces a gvar reference by the FM0 value of the gvar.
func (m *ModelData) RemoveGlobalVar(v *int) {
	switch {
	case *v >= gvarRefFirst && *v <= gvarRefLast:
		*v = m.FlightModeData[0].GVars[*v-gvarRefFirst]
	case *v <= -gvarRefFirst && *v >= -gvarRefLast:
		*v = -m.FlightModeData[0].GVars[-gvarRefFirst-*v]
	}
}

// WithoutGlobalVars returns a copy of the model where mixer and input
// gvar references are replaced by their FM0 values.
func (m *ModelData) WithoutGlobalVars() ModelData {
	result := *m
	for i := range result.MixData {
		mix := &result.MixData[i]
		result.RemoveGlobalVar(&mix.Weight)
		result.RemoveGlobalVar(&mix.Curve.Value)
		result.RemoveGlobalVar(&mix.SOffset)
	}
	for i := range result.ExpoData {
		expo := &result.ExpoData[i]
		result.RemoveGlobalVar(&expo.Weight)
		result.RemoveGlobalVar(&expo.Curve.Value)
	}
	return result
}

// ChannelsMax returns the output limit in percent: 100, or the extended
// limit of the board when the model or the caller asks for it.
func (m *ModelData) ChannelsMax(fw raw.Firmware, forceExtendedLimits bool) int {
	if forceExtendedLimits || m.ExtendedLimits {
		if fw.Board().IsTaranis() {
			return 150
		}
		return 125
	}
	return 100
}

func (m *ModelData) SensorLabel(slot int) string {
	if slot < 0 || slot >= MaxSensors {
		return ""
	}
	return m.SensorData[slot].Label
}

func (m *ModelData) SensorUnit(slot int) string {
	if slot < 0 || slot >= MaxSensors {
		return ""
	}
	return m.SensorData[slot].UnitString()
}

func (m *ModelData) SensorPrecision(slot int) int {
	if slot < 0 || slot >= MaxSensors {
		return 0
	}
	return m.SensorData[slot].Prec
}

func (m *ModelData) InputName(idx int) string {
	if idx < 0 || idx >= MaxInputs {
		return ""
	}
	return m.InputNames[idx]
}

func (m *ModelData) AnalogRange(channel int) raw.Range {
	if channel < 0 || channel >= NumAnalogChannels {
		return raw.NewRange()
	}
	return m.FrSky.Channels[channel].Range()
}

var _ raw.Model = (*ModelData)(nil)
