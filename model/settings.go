package model

import (
	"strconv"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/raw"
)

type SwitchConfig int

const (
	SwitchConfigNone SwitchConfig = iota
	SwitchConfigToggle
	SwitchConfig2Pos
	SwitchConfig3Pos
)

type PotConfig int

const (
	PotNone PotConfig = iota
	PotWithDetent
	PotMultipos
	PotWithoutDetent
)

type SliderConfig int

const (
	SliderNone SliderConfig = iota
	SliderWithDetent
)

type BeeperMode int

const (
	BeeperQuiet BeeperMode = iota - 2
	BeeperAlarmsOnly
	BeeperNoKeys
	BeeperAll
)

const NumCalibrated = NumSticks + NumPots

type TrainerMix struct {
	Src    int `yaml:"src"`
	Weight int `yaml:"weight"`
	Mode   int `yaml:"mode"`
}

type TrainerData struct {
	Calib [NumSticks]int        `yaml:"calib"`
	Mix   [NumSticks]TrainerMix `yaml:"mix"`
}

// GeneralSettings holds the radio wide settings.
type GeneralSettings struct {
	Version       int                       `yaml:"version"`
	Variant       int                       `yaml:"variant"`
	CalibMid      [NumCalibrated]int        `yaml:"calibMid"`
	CalibSpanNeg  [NumCalibrated]int        `yaml:"calibSpanNeg"`
	CalibSpanPos  [NumCalibrated]int        `yaml:"calibSpanPos"`
	CurrentCalib  int                       `yaml:"currentCalib"`
	Contrast      int                       `yaml:"contrast"`
	VBatWarn      int                       `yaml:"vBatWarn"`
	VBatCalib     int                       `yaml:"vBatCalib"`
	BacklightMode int                       `yaml:"backlightMode"`
	Trainer       TrainerData               `yaml:"trainer"`
	StickMode     int                       `yaml:"stickMode"`
	TemplateSetup int                       `yaml:"templateSetup"`
	PPMMultiplier int                       `yaml:"ppmMultiplier"`
	OptrexDisplay bool                      `yaml:"optrexDisplay"`
	Imperial      int                       `yaml:"imperial"`
	CountryCode   int                       `yaml:"countryCode"`
	TTSLanguage   string                    `yaml:"ttsLanguage"`
	BluetoothName string                    `yaml:"bluetoothName"`
	SwitchConfig  [NumSwitches]SwitchConfig `yaml:"switchConfig"`
	PotConfig     [NumPots]PotConfig        `yaml:"potConfig"`
	SliderConfig  [NumSliders]SliderConfig  `yaml:"sliderConfig"`

	BacklightBright int        `yaml:"backlightBright"`
	BeeperMode      BeeperMode `yaml:"beeperMode"`
	BeeperLength    int        `yaml:"beeperLength"`
	HapticMode      BeeperMode `yaml:"hapticMode"`
	HapticStrength  int        `yaml:"hapticStrength"`
	HapticLength    int        `yaml:"hapticLength"`
	SpeakerMode     int        `yaml:"speakerMode"`
	SpeakerPitch    int        `yaml:"speakerPitch"`
	SpeakerVolume   int        `yaml:"speakerVolume"`
}

// Profile carries the user's radio preferences. Calibration and sound
// settings are hex strings as the radio prints them; malformed strings
// are ignored.
type Profile struct {
	Name          string `yaml:"name"`
	ChannelOrder  int    `yaml:"channelOrder"`
	DefaultMode   int    `yaml:"defaultMode"`
	StickPotCalib string `yaml:"stickPotCalib"`
	TrainerCalib  string `yaml:"trainerCalib"`
	VBatCalib     int    `yaml:"vBatCalib"`
	CurrentCalib  int    `yaml:"currentCalib"`
	PPMMultiplier int    `yaml:"ppmMultiplier"`
	StickMode     int    `yaml:"stickMode"`
	VBatWarn      int    `yaml:"vBatWarn"`
	Display       string `yaml:"display"`
	Beeper        string `yaml:"beeper"`
	Haptic        string `yaml:"haptic"`
	Speaker       string `yaml:"speaker"`
	CountryCode   string `yaml:"countryCode"`
}

// NewGeneralSettings returns the defaults of the firmware's board with
// the profile applied over them. profile may be nil.
func NewGeneralSettings(fw raw.Firmware, profile *Profile) GeneralSettings {
	s := GeneralSettings{
		Contrast: 25,
		VBatWarn: 90,
	}
	for i := 0; i < NumCalibrated; i++ {
		s.CalibMid[i] = 0x200
		s.CalibSpanNeg[i] = 0x180
		s.CalibSpanPos[i] = 0x180
	}

	board := fw.Board()
	if board.IsTaranis() {
		s.PotConfig[0] = PotWithDetent
		s.PotConfig[1] = PotWithDetent
		s.SliderConfig[0] = SliderWithDetent
		s.SliderConfig[1] = SliderWithDetent
		s.SwitchConfig = [NumSwitches]SwitchConfig{
			SwitchConfig3Pos, SwitchConfig3Pos, SwitchConfig3Pos, SwitchConfig3Pos,
			SwitchConfig3Pos, SwitchConfig2Pos, SwitchConfig3Pos, SwitchConfigToggle,
		}
	} else {
		for i := 0; i < 3; i++ {
			s.PotConfig[i] = PotWithoutDetent
		}
	}
	if board.IsArm() {
		s.SpeakerVolume = 12
	}
	if board.IsTaranisX9E() {
		s.BluetoothName = "Taranis"
	}

	if profile != nil {
		s.applyProfile(fw, profile)
	}
	return s
}

func (s *GeneralSettings) applyProfile(fw raw.Firmware, p *Profile) {
	s.TemplateSetup = p.ChannelOrder
	s.StickMode = p.DefaultMode
	if p.StickPotCalib == "" {
		return
	}

	calibrated := NumSticks + fw.Capability(firmware.Pots)
	if calibrated > NumCalibrated {
		calibrated = NumCalibrated
	}
	if len(p.StickPotCalib) == calibrated*12 && len(p.TrainerCalib) == 16 {
		for i := 0; i < calibrated; i++ {
			setHex16(&s.CalibMid[i], p.StickPotCalib[i*12:i*12+4])
			setHex16(&s.CalibSpanNeg[i], p.StickPotCalib[i*12+4:i*12+8])
			setHex16(&s.CalibSpanPos[i], p.StickPotCalib[i*12+8:i*12+12])
		}
		for i := range s.Trainer.Calib {
			setHex16(&s.Trainer.Calib[i], p.TrainerCalib[i*4:i*4+4])
		}
		s.CurrentCalib = int(int8(p.CurrentCalib))
		s.VBatCalib = int(int8(p.VBatCalib))
		s.VBatWarn = int(uint8(p.VBatWarn))
		s.PPMMultiplier = int(int8(p.PPMMultiplier))
		s.StickMode = int(uint8(p.StickMode))
	}

	if len(p.Display) != 6 || len(p.Beeper) != 4 || len(p.Haptic) != 6 || len(p.Speaker) != 6 {
		return
	}
	var optrex int
	if setHex8(&optrex, p.Display[0:2]) {
		s.OptrexDisplay = optrex == 1
	}
	setHexU8(&s.Contrast, p.Display[2:4])
	setHexU8(&s.BacklightBright, p.Display[4:6])

	var mode int
	if setHex8(&mode, p.Beeper[0:2]) {
		s.BeeperMode = BeeperMode(mode)
	}
	setHex8(&s.BeeperLength, p.Beeper[2:4])
	if setHex8(&mode, p.Haptic[0:2]) {
		s.HapticMode = BeeperMode(mode)
	}
	setHex8(&s.HapticStrength, p.Haptic[2:4])
	setHex8(&s.HapticLength, p.Haptic[4:6])

	setHexU8(&s.SpeakerMode, p.Speaker[0:2])
	setHexU8(&s.SpeakerPitch, p.Speaker[2:4])
	setHexU8(&s.SpeakerVolume, p.Speaker[4:6])

	if len(p.CountryCode) == 6 {
		setHexU8(&s.CountryCode, p.CountryCode[0:2])
		setHexU8(&s.Imperial, p.CountryCode[2:4])
		s.TTSLanguage = p.CountryCode[4:6]
	}
}

func setHex16(dst *int, s string) bool {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return false
	}
	*dst = int(int16(v))
	return true
}

func setHex8(dst *int, s string) bool {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return false
	}
	*dst = int(int8(v))
	return true
}

func setHexU8(dst *int, s string) bool {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return false
	}
	*dst = int(v)
	return true
}

func (s *GeneralSettings) UsesImperial() bool {
	return s.Imperial != 0
}

// SwitchInfo locates a Taranis switch position: Index is the physical
// switch, Position 0..2 its up/middle/down position.
type SwitchInfo struct {
	Index    int
	Position int
}

// SwitchInfoFromTaranisPosition decodes a one based switch position index.
func SwitchInfoFromTaranisPosition(index int) SwitchInfo {
	return SwitchInfo{Index: (index - 1) / 3, Position: (index - 1) % 3}
}

// SwitchPositionAllowedTaranis reports whether a switch position, possibly
// negated, exists with the configured switch hardware.
func (s *GeneralSettings) SwitchPositionAllowedTaranis(index int) bool {
	if index == 0 {
		return true
	}
	abs := index
	if abs < 0 {
		abs = -abs
	}
	info := SwitchInfoFromTaranisPosition(abs)
	if info.Index >= NumSwitches {
		return false
	}
	cfg := s.SwitchConfig[info.Index]
	switch {
	case index < 0 && cfg != SwitchConfig3Pos:
		return false
	case info.Position == 1:
		return cfg == SwitchConfig3Pos
	default:
		return cfg != SwitchConfigNone
	}
}

func (s *GeneralSettings) SwitchSourceAllowedTaranis(index int) bool {
	if index < 0 || index >= NumSwitches {
		return false
	}
	return s.SwitchConfig[index] != SwitchConfigNone
}

func (s *GeneralSettings) IsPotAvailable(fw raw.Firmware, index int) bool {
	if index < 0 || index >= fw.Capability(firmware.Pots) || index >= NumPots {
		return false
	}
	return s.PotConfig[index] != PotNone
}

func (s *GeneralSettings) IsSliderAvailable(fw raw.Firmware, index int) bool {
	if index < 0 || index >= fw.Capability(firmware.Sliders) || index >= NumSliders {
		return false
	}
	return s.SliderConfig[index] != SliderNone
}

// channelOrders lists, for each of the 24 channel order templates, the
// one based stick driving channels 1..4.
var channelOrders = [24][NumSticks]int{
	{1, 2, 3, 4}, {1, 2, 4, 3}, {1, 3, 2, 4}, {1, 3, 4, 2}, {1, 4, 2, 3}, {1, 4, 3, 2},
	{2, 1, 3, 4}, {2, 1, 4, 3}, {2, 3, 1, 4}, {2, 3, 4, 1}, {2, 4, 1, 3}, {2, 4, 3, 1},
	{3, 1, 2, 4}, {3, 1, 4, 2}, {3, 2, 1, 4}, {3, 2, 4, 1}, {3, 4, 1, 2}, {3, 4, 2, 1},
	{4, 1, 2, 3}, {4, 1, 3, 2}, {4, 2, 1, 3}, {4, 2, 3, 1}, {4, 3, 1, 2}, {4, 3, 2, 1},
}

// DefaultStick returns the stick driving channel, or -1.
func (s *GeneralSettings) DefaultStick(channel int) int {
	if channel < 0 || channel >= NumSticks || s.TemplateSetup < 0 || s.TemplateSetup >= len(channelOrders) {
		return -1
	}
	return channelOrders[s.TemplateSetup][channel] - 1
}

func (s *GeneralSettings) DefaultSource(channel int) raw.Source {
	stick := s.DefaultStick(channel)
	if stick < 0 {
		return raw.Source{}
	}
	return raw.NewSource(raw.SourceStick, stick)
}

// DefaultChannel returns the channel driven by stick, or -1.
func (s *GeneralSettings) DefaultChannel(stick int) int {
	for i := 0; i < NumSticks; i++ {
		if s.DefaultStick(i) == stick {
			return i
		}
	}
	return -1
}

var _ raw.Settings = (*GeneralSettings)(nil)
