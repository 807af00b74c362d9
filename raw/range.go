package raw

import "github.com/gtu-nova/nova-companion/firmware"

type RangeFlags uint

const (
	// RangeDeltaFunction centers the range on zero, for "delta" logical
	// switch comparisons.
	RangeDeltaFunction RangeFlags = 1 << iota
	// RangeDeltaAbsFunction is RangeDeltaFunction with the lower bound
	// clamped to zero.
	RangeDeltaAbsFunction
	// RangeSinglePrecision asks for the one byte encoding even on boards
	// storing the value wider.
	RangeSinglePrecision
)

// Range describes how a source's stored value maps to a physical one.
type Range struct {
	Min      float64
	Max      float64
	Step     float64
	Offset   float64
	Decimals int
	Unit     string
}

func NewRange() Range {
	return Range{Step: 1}
}

// Value converts a stored value into physical units.
func (r Range) Value(fw Firmware, value int) float64 {
	if fw.Board().IsArm() {
		return float64(value) * r.Step
	}
	return r.Min + float64(value)*r.Step
}

const (
	knotsToKmh = 1.852
	knotsToMph = 1.150779
)

// Range resolves the value domain of the source for the given firmware
// and model. model and settings may be nil.
func (s Source) Range(fw Firmware, model Model, settings Settings, flags RangeFlags) Range {
	result := NewRange()
	if s.Index < 0 {
		return result
	}

	arm := fw.Board().IsArm()
	singlePrec := flags&RangeSinglePrecision != 0 || !arm

	switch s.Type {
	case SourceTelemetry:
		if arm {
			result = sensorRange(s.Index/SensorIndices, model)
		} else {
			result = telemetryRange(s.Index, fw, model, settings, singlePrec, flags)
		}

	case SourceGvar:
		result.Max = 1024
		result.Min = -result.Max

	case SourceSpecial:
		switch s.Index {
		case 0:
			result.Step = 0.1
			result.Decimals = 1
			result.Max = 25.5
			result.Unit = "V"
		case 1:
			result.Step = 1
			result.Max = 24*60 - 1
			result.Unit = "h:m"
		default:
			if singlePrec {
				result.Step = 5
				result.Max = 255 * 5
				result.Unit = "m:s"
			} else {
				result.Step = 1
				result.Max = 60 * 60
				result.Unit = "h:m:s"
			}
		}

	default:
		if model != nil {
			result.Max = float64(model.ChannelsMax(fw, true))
			result.Min = -result.Max
		}
	}

	if flags&RangeDeltaAbsFunction != 0 {
		result.Min = 0
	}
	return result
}

func sensorRange(slot int, model Model) Range {
	result := NewRange()
	prec := 0
	if model != nil {
		prec = model.SensorPrecision(slot)
		result.Unit = model.SensorUnit(slot)
	}
	switch prec {
	case 2:
		result.Step = 0.01
	case 1:
		result.Step = 0.1
	default:
		result.Step = 1
	}
	result.Min = -30000 * result.Step
	result.Max = 30000 * result.Step
	result.Decimals = prec
	return result
}

func useImperial(fw Firmware, settings Settings) bool {
	return fw.Capability(firmware.Imperial) != 0 || (settings != nil && settings.UsesImperial())
}

// telemetryRange covers boards with the fixed telemetry table. With
// single precision the value lives in one byte: step and max shrink and
// an offset shifts the byte domain onto the physical range.
func telemetryRange(index int, fw Firmware, model Model, settings Settings, singlePrec bool, flags RangeFlags) Range {
	result := NewRange()
	offsetSet := false

	pick := func(single, wide float64) float64 {
		if singlePrec {
			return single
		}
		return wide
	}

	switch index {
	case TelemetryTxBatt:
		result.Step = 0.1
		result.Decimals = 1
		result.Max = 25.5
		result.Unit = "V"
	case TelemetryTxTime:
		result.Step = 1
		result.Max = 24*60 - 1
	case TelemetryTimer1, TelemetryTimer2, TelemetryTimer3:
		result.Step = pick(5, 1)
		result.Max = pick(255*5, 60*60)
		result.Unit = "s"
	case TelemetryRSSITx, TelemetryRSSIRx:
		result.Max = 100
		if singlePrec {
			result.Offset = 128
			offsetSet = true
		}
	case TelemetryA1Min, TelemetryA2Min, TelemetryA3Min, TelemetryA4Min:
		if model != nil {
			result = model.AnalogRange(index - TelemetryA1Min)
			offsetSet = true
		}
	case TelemetryA1, TelemetryA2, TelemetryA3, TelemetryA4:
		if model != nil {
			result = model.AnalogRange(index - TelemetryA1)
			offsetSet = true
		}
	case TelemetryAlt, TelemetryAltMin, TelemetryAltMax, TelemetryGPSAlt:
		result.Step = pick(8, 1)
		result.Min = -500
		result.Max = pick(1540, 3000)
		if useImperial(fw, settings) {
			result.Step = result.Step * 105 / 32
			result.Min = result.Min * 105 / 32
			result.Max = result.Max * 105 / 32
			result.Unit = "ft"
		} else {
			result.Unit = "m"
		}
	case TelemetryT1, TelemetryT1Max, TelemetryT2, TelemetryT2Max:
		result.Min = -30
		result.Max = 225
		result.Unit = "°C"
	case TelemetryHdg:
		result.Step = pick(2, 1)
		result.Max = 360
		if singlePrec {
			result.Offset = 256
			offsetSet = true
		}
		result.Unit = "°"
	case TelemetryRPM, TelemetryRPMMax:
		result.Step = pick(50, 1)
		result.Max = pick(12750, 30000)
	case TelemetryFuel:
		result.Max = 100
		result.Unit = "%"
	case TelemetryASpeed, TelemetryASpeedMax:
		result.Decimals = 1
		result.Step = pick(2.0, 0.1)
		result.Max = pick(2*255, 2000)
		convertSpeed(&result, fw, settings)
	case TelemetrySpeed, TelemetrySpeedMax:
		result.Step = pick(2, 1)
		result.Max = pick(2*255, 2000)
		convertSpeed(&result, fw, settings)
	case TelemetryVerticalSpeed:
		result.Step = 0.1
		result.Min = pick(-12.5, -300.0)
		result.Max = pick(13.0, 300.0)
		result.Decimals = 1
		result.Unit = "m/s"
	case TelemetryDTE:
		result.Max = 30000
	case TelemetryDist, TelemetryDistMax:
		result.Step = pick(8, 1)
		result.Max = pick(2040, 10000)
		result.Unit = "m"
	case TelemetryCell, TelemetryCellMin:
		result.Step = pick(0.02, 0.01)
		result.Max = 5.1
		result.Decimals = 2
		result.Unit = "V"
	case TelemetryCellsSum, TelemetryCellsMin, TelemetryVFAS, TelemetryVFASMin:
		result.Step = 0.1
		result.Max = pick(25.5, 100.0)
		result.Decimals = 1
		result.Unit = "V"
	case TelemetryCurrent, TelemetryCurrentMax:
		result.Step = pick(0.5, 0.1)
		result.Max = pick(127.5, 200.0)
		result.Decimals = 1
		result.Unit = "A"
	case TelemetryConsumption:
		result.Step = pick(100, 1)
		result.Max = pick(25500, 30000)
		result.Unit = "mAh"
	case TelemetryPower, TelemetryPowerMax:
		result.Step = pick(5, 1)
		result.Max = pick(1275, 2000)
		result.Unit = "W"
	case TelemetryAccX, TelemetryAccY, TelemetryAccZ:
		result.Step = 0.01
		result.Decimals = 2
		result.Max = pick(2.55, 10.00)
		result.Min = pick(0, -10.00)
		result.Unit = "g"
	default:
		result.Max = 125
	}

	if singlePrec && !offsetSet {
		result.Offset = result.Max - 127*result.Step
	}

	if flags&(RangeDeltaFunction|RangeDeltaAbsFunction) != 0 {
		if singlePrec {
			result.Offset = 0
			result.Min = result.Step * -127
			result.Max = result.Step * 127
		} else {
			result.Min = -result.Max
		}
	}
	return result
}

func convertSpeed(r *Range, fw Firmware, settings Settings) {
	if useImperial(fw, settings) {
		r.Step *= knotsToMph
		r.Max *= knotsToMph
		r.Unit = "mph"
	} else {
		r.Step *= knotsToKmh
		r.Max *= knotsToKmh
		r.Unit = "km/h"
	}
}
