package raw

import "fmt"

type CurveRefType int

const (
	CurveRefDiff CurveRefType = iota
	CurveRefExpo
	CurveRefFunc
	CurveRefCurve
)

// CurveRef selects how an input or mixer line shapes its source. Value
// is a percentage, a gvar reference, a function number or a curve
// number depending on Type. A negative curve number inverts the curve.
type CurveRef struct {
	Type  CurveRefType `yaml:"type"`
	Value int          `yaml:"value"`
}

const curveFunctions = "x>0" + "x<0" + "|x|" + "f>0" + "f<0" + "|f|"

// GVarOffset marks a percentage field that holds a gvar reference:
// values beyond ±GVarOffset name gvar (|value|-GVarOffset).
const GVarOffset = 10000

// GVarString renders a value that is either a percentage or a gvar
// reference.
func GVarString(value int, sign bool) string {
	if value >= -GVarOffset && value <= GVarOffset {
		if sign && value > 0 {
			return fmt.Sprintf("+%d%%", value)
		}
		return fmt.Sprintf("%d%%", value)
	}
	if value < 0 {
		return fmt.Sprintf("-GV%d", -value-GVarOffset)
	}
	return fmt.Sprintf("GV%d", value-GVarOffset)
}

func (c CurveRef) String() string {
	if c.Value == 0 {
		return noneLabel
	}
	switch c.Type {
	case CurveRefDiff:
		return fmt.Sprintf("Diff(%s)", GVarString(c.Value, false))
	case CurveRefExpo:
		return fmt.Sprintf("Expo(%s)", GVarString(c.Value, false))
	case CurveRefFunc:
		if c.Value < 1 || 3*c.Value > len(curveFunctions) {
			return unknownLabel
		}
		return fmt.Sprintf("Function(%s)", curveFunctions[3*(c.Value-1):3*c.Value])
	default:
		if c.Value > 0 {
			return fmt.Sprintf("Curve(%d)", c.Value)
		}
		return fmt.Sprintf("!Curve(%d)", -c.Value)
	}
}
