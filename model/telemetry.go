package model

import "github.com/gtu-nova/nova-companion/raw"

type SensorType int

const (
	SensorRaw SensorType = iota
	SensorCalculated
)

type SensorFormula int

const (
	FormulaAdd SensorFormula = iota
	FormulaAverage
	FormulaMin
	FormulaMax
	FormulaMultiply
	FormulaTotalize
	FormulaCell
	FormulaConsumption
	FormulaDist
)

type Unit int

const (
	UnitRaw Unit = iota
	UnitVolts
	UnitAmps
	UnitMilliamps
	UnitKts
	UnitMetersPerSecond
	UnitFeetPerSecond
	UnitKmh
	UnitMph
	UnitMeters
	UnitFeet
	UnitCelsius
	UnitFahrenheit
	UnitPercent
	UnitMah
	UnitWatts
	UnitDB
	UnitRpms
	UnitG
	UnitDegree
	UnitHours
	UnitMinutes
	UnitSeconds
	// units past this point are computed by the radio, not scaled
	UnitCells
	UnitDateTime
	UnitGPS

	UnitFirstVirtual = UnitCells
)

var unitStrings = map[Unit]string{
	UnitVolts:           "V",
	UnitAmps:            "A",
	UnitMilliamps:       "mA",
	UnitKts:             "kts",
	UnitMetersPerSecond: "m/s",
	UnitFeetPerSecond:   "f/s",
	UnitKmh:             "km/h",
	UnitMph:             "mph",
	UnitMeters:          "m",
	UnitFeet:            "f",
	UnitCelsius:         "°C",
	UnitFahrenheit:      "°F",
	UnitPercent:         "%",
	UnitMah:             "mAh",
	UnitWatts:           "W",
	UnitDB:              "dB",
	UnitRpms:            "rpms",
	UnitG:               "g",
	UnitDegree:          "°",
	UnitHours:           "hours",
	UnitMinutes:         "minutes",
	UnitSeconds:         "seconds",
	UnitCells:           "V",
}

func (u Unit) String() string {
	return unitStrings[u]
}

const (
	CellIndexLowest  = 0
	CellIndexHighest = 7
	CellIndexDelta   = 8
)

// SensorData is one telemetry sensor slot of an ARM board model.
type SensorData struct {
	Type         SensorType    `yaml:"type"`
	ID           int           `yaml:"id"`
	Instance     int           `yaml:"instance"`
	Formula      SensorFormula `yaml:"formula"`
	Label        string        `yaml:"label"`
	Unit         Unit          `yaml:"unit"`
	Prec         int           `yaml:"prec"`
	AutoOffset   bool          `yaml:"autoOffset"`
	Filter       bool          `yaml:"filter"`
	Logs         bool          `yaml:"logs"`
	Persistent   bool          `yaml:"persistent"`
	OnlyPositive bool          `yaml:"onlyPositive"`
	Ratio        int           `yaml:"ratio"`
	Offset       int           `yaml:"offset"`
	GPS          int           `yaml:"gps"`
	Alt          int           `yaml:"alt"`
	Amps         int           `yaml:"amps"`
	Source       int           `yaml:"source"`
	Index        int           `yaml:"index"`
	Sources      [4]int        `yaml:"sources"`
}

func (s *SensorData) Clear() {
	*s = SensorData{}
}

// UpdateUnit forces the units a calculated formula implies.
func (s *SensorData) UpdateUnit() {
	if s.Type == SensorCalculated && s.Formula == FormulaConsumption {
		s.Unit = UnitMah
	}
}

func (s *SensorData) UnitString() string {
	return s.Unit.String()
}

func (s *SensorData) IsAvailable() bool {
	return s.Label != ""
}

// IsConfigurable reports whether ratio, offset and precision apply.
func (s *SensorData) IsConfigurable() bool {
	if s.Type == SensorCalculated {
		return s.Formula < FormulaCell
	}
	return s.Unit < UnitFirstVirtual
}

// FrSkyChannelData configures one of the A1..A4 analog telemetry
// channels. Ratio is stored shifted right by Multiplier to fit a byte.
type FrSkyChannelData struct {
	Ratio      uint          `yaml:"ratio"`
	Type       int           `yaml:"type"`
	Multiplier uint          `yaml:"multiplier"`
	Offset     int           `yaml:"offset"`
	Alarms     [2]FrSkyAlarm `yaml:"alarms"`
}

type FrSkyAlarm struct {
	Level   int `yaml:"level"`
	Greater int `yaml:"greater"`
	Value   int `yaml:"value"`
}

// voltage type channels store their ratio in tenths
func (c *FrSkyChannelData) isVoltage() bool {
	return c.Type == 0 || c.Type == 1 || c.Type == 2
}

// RatioValue returns the physical full scale value of the channel.
func (c *FrSkyChannelData) RatioValue() float64 {
	v := float64(c.Ratio << c.Multiplier)
	if c.isVoltage() {
		return v / 10
	}
	return v
}

// SetRatioValue stores a physical ratio using the current multiplier.
func (c *FrSkyChannelData) SetRatioValue(ratio float64) {
	if c.isVoltage() {
		ratio *= 10
	}
	if ratio < 0 {
		ratio = 0
	}
	c.Ratio = uint(ratio+float64(uint(1)<<c.Multiplier)/2) >> c.Multiplier
}

func (c *FrSkyChannelData) Range() raw.Range {
	ratio := c.RatioValue()
	result := raw.NewRange()
	if c.isVoltage() {
		result.Decimals = 2
	}
	result.Step = ratio / 255
	result.Min = float64(c.Offset) * result.Step
	result.Max = ratio + result.Min
	result.Unit = "V"
	return result
}

type RSSIAlarm struct {
	Level int `yaml:"level"`
	Value int `yaml:"value"`
}

func (a *RSSIAlarm) Clear(level, value int) {
	a.Level = level
	a.Value = value
}

type ScreenType int

const (
	ScreenNone ScreenType = iota
	ScreenNumbers
	ScreenBars
	ScreenScript
)

type FrSkyScreenData struct {
	Type   ScreenType     `yaml:"type"`
	Fields [12]raw.Source `yaml:"fields"`
}

func (s *FrSkyScreenData) Clear(fw raw.Firmware) {
	*s = FrSkyScreenData{}
	if !fw.Board().IsArm() {
		s.Type = ScreenNumbers
	}
}

const (
	NumAnalogChannels   = 4
	NumTelemetryScreens = 4
)

type FrSkyData struct {
	Channels       [NumAnalogChannels]FrSkyChannelData  `yaml:"channels"`
	UsrProto       int                                  `yaml:"usrProto"`
	Blades         int                                  `yaml:"blades"`
	VoltsSource    int                                  `yaml:"voltsSource"`
	AltitudeSource int                                  `yaml:"altitudeSource"`
	CurrentSource  int                                  `yaml:"currentSource"`
	VarioSource    int                                  `yaml:"varioSource"`
	VarioMin       int                                  `yaml:"varioMin"`
	VarioCenterMin int                                  `yaml:"varioCenterMin"`
	VarioCenterMax int                                  `yaml:"varioCenterMax"`
	VarioMax       int                                  `yaml:"varioMax"`
	MAhPersistent  bool                                 `yaml:"mAhPersistent"`
	StoredMah      int                                  `yaml:"storedMah"`
	FasOffset      int                                  `yaml:"fasOffset"`
	RSSIAlarms     [2]RSSIAlarm                         `yaml:"rssiAlarms"`
	Screens        [NumTelemetryScreens]FrSkyScreenData `yaml:"screens"`
}

const varioSourceVario = 2

func (d *FrSkyData) Clear(fw raw.Firmware) {
	*d = FrSkyData{}
	d.RSSIAlarms[0].Clear(2, 45)
	d.RSSIAlarms[1].Clear(3, 42)
	for i := range d.Screens {
		d.Screens[i].Clear(fw)
	}
	d.VarioSource = varioSourceVario
	d.Blades = 2
}

