package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeTxBattClassic(t *testing.T) {
	r := NewSource(SourceTelemetry, TelemetryTxBatt).Range(fw("opentx-9x"), nil, nil, 0)

	assert.InDelta(t, 0.1, r.Step, 1e-9)
	assert.InDelta(t, 25.5, r.Max, 1e-9)
	assert.Equal(t, "V", r.Unit)
	assert.Equal(t, 1, r.Decimals)
	assert.InDelta(t, 25.5-12.7, r.Offset, 1e-9)
}

func TestRangeNegativeIndexIsDefault(t *testing.T) {
	for _, f := range registry.Firmwares() {
		for typ := SourceNone; typ <= SourceMax; typ++ {
			r := Source{Type: typ, Index: -1}.Range(f, &fakeModel{channelsMax: 150}, nil, RangeDeltaAbsFunction)
			assert.Equal(t, NewRange(), r, "%s %d", f.ID(), typ)
		}
	}
}

func TestRangeArmSensor(t *testing.T) {
	x9d := fw("opentx-taranis")
	m := &fakeModel{sensors: map[int]fakeSensor{
		0: {label: "RxBt", unit: "V", prec: 1},
		1: {label: "Curr", unit: "A", prec: 2},
		2: {label: "RPM", unit: "rpms", prec: 0},
	}}

	r := SensorSource(0, SensorValue).Range(x9d, m, nil, 0)
	assert.InDelta(t, 0.1, r.Step, 1e-9)
	assert.InDelta(t, -3000, r.Min, 1e-6)
	assert.InDelta(t, 3000, r.Max, 1e-6)
	assert.Equal(t, 1, r.Decimals)
	assert.Equal(t, "V", r.Unit)

	r = SensorSource(1, SensorMax).Range(x9d, m, nil, 0)
	assert.InDelta(t, 0.01, r.Step, 1e-9)
	assert.InDelta(t, 300, r.Max, 1e-6)
	assert.Equal(t, "A", r.Unit)

	r = SensorSource(2, SensorMin).Range(x9d, m, nil, 0)
	assert.Equal(t, 1.0, r.Step)
	assert.Equal(t, 30000.0, r.Max)
	assert.Equal(t, 0.0, r.Offset)
}

func TestRangeSinglePrecisionOffset(t *testing.T) {
	stock := fw("opentx-9x")

	r := NewSource(SourceTelemetry, TelemetryTimer1).Range(stock, nil, nil, 0)
	assert.Equal(t, 5.0, r.Step)
	assert.Equal(t, 1275.0, r.Max)
	assert.Equal(t, 1275.0-127*5, r.Offset)

	r = NewSource(SourceTelemetry, TelemetryRSSIRx).Range(stock, nil, nil, 0)
	assert.Equal(t, 128.0, r.Offset)

	r = NewSource(SourceTelemetry, TelemetryHdg).Range(stock, nil, nil, 0)
	assert.Equal(t, 256.0, r.Offset)
	assert.Equal(t, 2.0, r.Step)

	// ARM boards only use the byte encoding on request
	sky := fw("opentx-sky9x")
	r = NewSource(SourceSpecial, 2).Range(sky, nil, nil, 0)
	assert.Equal(t, 1.0, r.Step)
	assert.Equal(t, "h:m:s", r.Unit)
	r = NewSource(SourceSpecial, 2).Range(sky, nil, nil, RangeSinglePrecision)
	assert.Equal(t, 5.0, r.Step)
	assert.Equal(t, "m:s", r.Unit)
}

func TestRangeAnalogChannelsUseModel(t *testing.T) {
	stock := fw("opentx-9x")
	chRange := Range{Min: 1, Max: 14, Step: 13.0 / 255, Decimals: 2, Unit: "V"}
	m := &fakeModel{analogs: map[int]Range{1: chRange}}

	r := NewSource(SourceTelemetry, TelemetryA2).Range(stock, m, nil, 0)
	assert.Equal(t, chRange, r)

	r = NewSource(SourceTelemetry, TelemetryA2Min).Range(stock, m, nil, 0)
	assert.Equal(t, chRange, r)

	// without a model the offset falls back to the byte domain
	r = NewSource(SourceTelemetry, TelemetryA2).Range(stock, nil, nil, 0)
	assert.Equal(t, -127.0, r.Offset)
}

func TestRangeImperialConversion(t *testing.T) {
	stock := fw("opentx-9x")
	imperial := fw("opentx-9x-imperial")

	metric := NewSource(SourceTelemetry, TelemetrySpeed).Range(stock, nil, imperialSettings(false), 0)
	assert.Equal(t, "km/h", metric.Unit)
	assert.InDelta(t, 2*1.852, metric.Step, 1e-9)
	assert.InDelta(t, 510*1.852, metric.Max, 1e-9)

	mph := NewSource(SourceTelemetry, TelemetrySpeed).Range(imperial, nil, nil, 0)
	assert.Equal(t, "mph", mph.Unit)
	assert.InDelta(t, 510*1.150779, mph.Max, 1e-9)

	mph = NewSource(SourceTelemetry, TelemetryASpeed).Range(stock, nil, imperialSettings(true), 0)
	assert.Equal(t, "mph", mph.Unit)
	assert.Equal(t, 1, mph.Decimals)

	alt := NewSource(SourceTelemetry, TelemetryAlt).Range(stock, nil, imperialSettings(true), 0)
	assert.Equal(t, "ft", alt.Unit)
	assert.InDelta(t, -500.0*105/32, alt.Min, 1e-9)
	assert.InDelta(t, 8.0*105/32, alt.Step, 1e-9)

	alt = NewSource(SourceTelemetry, TelemetryAlt).Range(stock, nil, nil, 0)
	assert.Equal(t, "m", alt.Unit)
}

func TestRangeDeltaFunctions(t *testing.T) {
	stock := fw("opentx-9x")

	r := NewSource(SourceTelemetry, TelemetryCurrent).Range(stock, nil, nil, RangeDeltaFunction)
	assert.Equal(t, 0.0, r.Offset)
	assert.InDelta(t, -127*0.5, r.Min, 1e-9)
	assert.InDelta(t, 127*0.5, r.Max, 1e-9)

	r = NewSource(SourceTelemetry, TelemetryCurrent).Range(stock, nil, nil, RangeDeltaAbsFunction)
	assert.Equal(t, 0.0, r.Min)
	assert.InDelta(t, 127*0.5, r.Max, 1e-9)
}

func TestRangeGvarAndChannels(t *testing.T) {
	x9d := fw("opentx-taranis")

	r := NewSource(SourceGvar, 2).Range(x9d, nil, nil, 0)
	assert.Equal(t, -1024.0, r.Min)
	assert.Equal(t, 1024.0, r.Max)

	r = NewSource(SourceCh, 0).Range(x9d, &fakeModel{channelsMax: 150}, nil, 0)
	assert.Equal(t, -150.0, r.Min)
	assert.Equal(t, 150.0, r.Max)

	r = NewSource(SourceCh, 0).Range(x9d, nil, nil, 0)
	assert.Equal(t, NewRange(), r)

	r = NewSource(SourceStick, 0).Range(x9d, &fakeModel{channelsMax: 125}, nil, RangeDeltaAbsFunction)
	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 125.0, r.Max)
}

func TestRangeValue(t *testing.T) {
	r := Range{Min: -500, Step: 8}
	assert.Equal(t, -500.0+80, r.Value(fw("opentx-9x"), 10))
	assert.Equal(t, 80.0, r.Value(fw("opentx-taranis"), 10))
}
