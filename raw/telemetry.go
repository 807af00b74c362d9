package raw

// Fixed telemetry table used by boards without generic sensor slots.
const (
	TelemetryTxBatt = iota
	TelemetryTxTime
	TelemetryTimer1
	TelemetryTimer2
	TelemetryTimer3
	TelemetrySWR
	TelemetryRSSITx
	TelemetryRSSIRx
	TelemetryA1
	TelemetryA2
	TelemetryA3
	TelemetryA4
	TelemetryAlt
	TelemetryRPM
	TelemetryFuel
	TelemetryT1
	TelemetryT2
	TelemetrySpeed
	TelemetryDist
	TelemetryGPSAlt
	TelemetryCell
	TelemetryCellsSum
	TelemetryVFAS
	TelemetryCurrent
	TelemetryConsumption
	TelemetryPower
	TelemetryAccX
	TelemetryAccY
	TelemetryAccZ
	TelemetryHdg
	TelemetryVerticalSpeed
	TelemetryASpeed
	TelemetryDTE
	TelemetryA1Min
	TelemetryA2Min
	TelemetryA3Min
	TelemetryA4Min
	TelemetryAltMin
	TelemetryAltMax
	TelemetryRPMMax
	TelemetryT1Max
	TelemetryT2Max
	TelemetrySpeedMax
	TelemetryDistMax
	TelemetryASpeedMax
	TelemetryCellMin
	TelemetryCellsMin
	TelemetryVFASMin
	TelemetryCurrentMax
	TelemetryPowerMax
	TelemetryAcc
	TelemetryGPSTime

	TelemetryCount
)

var telemetryLabels = []string{
	"Batt", "Time", "Timer1", "Timer2", "Timer3",
	"SWR", "RSSI Tx", "RSSI Rx",
	"A1", "A2", "A3", "A4",
	"Alt", "Rpm", "Fuel", "T1", "T2",
	"Speed", "Dist", "GPS Alt",
	"Cell", "Cells", "Vfas", "Curr", "Cnsp", "Powr",
	"AccX", "AccY", "AccZ",
	"Hdg ", "VSpd", "AirSpeed", "dTE",
	"A1-", "A2-", "A3-", "A4-",
	"Alt-", "Alt+", "Rpm+", "T1+", "T2+", "Speed+", "Dist+", "AirSpeed+",
	"Cell-", "Cells-", "Vfas-", "Curr+", "Powr+",
	"ACC", "GPS Time",
}

// Each generic sensor occupies three telemetry indices.
const (
	SensorValue = iota
	SensorMin
	SensorMax

	SensorIndices
)

// SensorSource returns the telemetry source for a sensor slot and one
// of SensorValue, SensorMin or SensorMax.
func SensorSource(slot, sub int) Source {
	return Source{Type: SourceTelemetry, Index: slot*SensorIndices + sub}
}
