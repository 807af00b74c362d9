package model

import (
	"fmt"
	"strconv"

	"github.com/gtu-nova/nova-companion/raw"
)

type InputMode int

const (
	InputModeNone InputMode = iota
	InputModeNeg
	InputModePos
	InputModeBoth
)

// ExpoData is one line of an input (expo/dual rate on older firmwares).
// Mode InputModeNone marks an unused line.
type ExpoData struct {
	Mode        InputMode    `yaml:"mode"`
	Chn         int          `yaml:"chn"`
	SrcRaw      raw.Source   `yaml:"srcRaw"`
	Scale       int          `yaml:"scale"`
	Carry       int          `yaml:"carry"`
	Weight      int          `yaml:"weight"`
	Offset      int          `yaml:"offset"`
	Curve       raw.CurveRef `yaml:"curve"`
	FlightModes uint32       `yaml:"flightModes"`
	Swtch       raw.Switch   `yaml:"swtch"`
	Name        string       `yaml:"name"`
}

func (e *ExpoData) Clear() {
	*e = ExpoData{}
}

type MltPx int

const (
	MltPxAdd MltPx = iota
	MltPxMul
	MltPxRep
)

// MixData is one mixer line. DestCh is one based; 0 marks an unused
// line.
type MixData struct {
	DestCh      int          `yaml:"destCh"`
	SrcRaw      raw.Source   `yaml:"srcRaw"`
	Weight      int          `yaml:"weight"`
	Swtch       raw.Switch   `yaml:"swtch"`
	Curve       raw.CurveRef `yaml:"curve"`
	DelayUp     int          `yaml:"delayUp"`
	DelayDown   int          `yaml:"delayDown"`
	SpeedUp     int          `yaml:"speedUp"`
	SpeedDown   int          `yaml:"speedDown"`
	CarryTrim   int          `yaml:"carryTrim"`
	NoExpo      bool         `yaml:"noExpo"`
	MltPx       MltPx        `yaml:"mltpx"`
	MixWarn     int          `yaml:"mixWarn"`
	FlightModes uint32       `yaml:"flightModes"`
	SOffset     int          `yaml:"sOffset"`
	Name        string       `yaml:"name"`
}

func (m *MixData) Clear() {
	*m = MixData{}
}

// LimitData holds the output settings of one channel, in tenths of a
// percent.
type LimitData struct {
	Min        int    `yaml:"min"`
	Max        int    `yaml:"max"`
	Revert     bool   `yaml:"revert"`
	Offset     int    `yaml:"offset"`
	PPMCenter  int    `yaml:"ppmCenter"`
	Symetrical bool   `yaml:"symetrical"`
	Name       string `yaml:"name"`
}

func (l *LimitData) Clear() {
	*l = LimitData{Min: -1000, Max: 1000}
}

func (l *LimitData) MinString() string {
	return strconv.FormatFloat(float64(l.Min)/10, 'g', -1, 64)
}

func (l *LimitData) MaxString() string {
	return strconv.FormatFloat(float64(l.Max)/10, 'g', -1, 64)
}

func (l *LimitData) OffsetString() string {
	return fmt.Sprintf("%.1f", float64(l.Offset)/10)
}

type CurveType int

const (
	CurveStandard CurveType = iota
	CurveCustom
)

const MaxCurvePoints = 17

type CurvePoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type CurveData struct {
	Type   CurveType                  `yaml:"type"`
	Smooth bool                       `yaml:"smooth"`
	Count  int                        `yaml:"count"`
	Points [MaxCurvePoints]CurvePoint `yaml:"points"`
	Name   string                     `yaml:"name"`
}

// Clear resets the curve to a straight standard curve of count points.
func (c *CurveData) Clear(count int) {
	*c = CurveData{Count: count}
}

// IsEmpty reports whether the curve is still the default straight line.
func (c *CurveData) IsEmpty() bool {
	if c.Name != "" || c.Type != CurveStandard {
		return false
	}
	for i := 0; i < c.Count && i < MaxCurvePoints; i++ {
		if c.Points[i].Y != 0 {
			return false
		}
	}
	return true
}
