package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gtu-nova/nova-companion/raw"
)

func TestLogicalSwitchFamilies(t *testing.T) {
	cases := map[LogicalSwitchFunc]LogicalSwitchFamily{
		LsFnOff:          LsFamilyVOfs,
		LsFnVPos:         LsFamilyVOfs,
		LsFnAnd:          LsFamilyVBool,
		LsFnXor:          LsFamilyVBool,
		LsFnEqual:        LsFamilyVComp,
		LsFnELess:        LsFamilyVComp,
		LsFnDPos:         LsFamilyVOfs,
		LsFnVAlmostEqual: LsFamilyVOfs,
		LsFnTimer:        LsFamilyTimer,
		LsFnSticky:       LsFamilySticky,
		LsFnEdge:         LsFamilyEdge,
	}
	for fn, family := range cases {
		ls := LogicalSwitchData{Func: fn}
		assert.Equal(t, family, ls.FunctionFamily(), ls.FuncString())
	}

	ls := LogicalSwitchData{Func: LsFnDAPos}
	assert.Equal(t, raw.RangeDeltaAbsFunction, ls.RangeFlags())
	assert.Equal(t, "|d|>=x", ls.FuncString())
	assert.Equal(t, "Unknown", (&LogicalSwitchData{Func: 99}).FuncString())
}

func TestCustomFunctionStrings(t *testing.T) {
	f := fw(t, "opentx-taranis")

	cf := CustomFunctionData{Func: FuncOverrideCH1 + 2}
	assert.Equal(t, "Override CH3", cf.FuncString(f))
	assert.Equal(t, "DISABLED", cf.EnabledString())
	cf.Enabled = true
	assert.Equal(t, "", cf.EnabledString())

	assert.Equal(t, "Adjust GV4", (&CustomFunctionData{Func: FuncAdjustGV1 + 3}).FuncString(f))
	assert.Equal(t, "Set Timer 2", (&CustomFunctionData{Func: FuncSetTimer2}).FuncString(f))
	assert.Equal(t, "Play Sound", (&CustomFunctionData{Func: FuncPlaySound}).FuncString(f))
	assert.Equal(t, "???", (&CustomFunctionData{Func: FuncCount}).FuncString(f))
	assert.Equal(t, "", (&CustomFunctionData{Func: FuncPlaySound}).EnabledString())
}

func TestCustomFunctionParams(t *testing.T) {
	taranis := fw(t, "opentx-taranis")
	stock := fw(t, "opentx-9x")

	assert.Equal(t, "Beep 3", (&CustomFunctionData{Func: FuncPlaySound, Param: 2}).ParamString(taranis, nil))
	assert.Equal(t, inconsistentParam, (&CustomFunctionData{Func: FuncPlaySound, Param: 40}).ParamString(taranis, nil))
	assert.Equal(t, "2", (&CustomFunctionData{Func: FuncPlayHaptic, Param: 2}).ParamString(taranis, nil))
	assert.Equal(t, "1.5s", (&CustomFunctionData{Func: FuncLogs, Param: 15}).ParamString(taranis, nil))
	assert.Equal(t, "-40", (&CustomFunctionData{Func: FuncOverrideCH1, Param: -40}).ParamString(taranis, nil))

	prompt := CustomFunctionData{Func: FuncPlayPrompt, Param: 7, ParamArm: "hello"}
	assert.Equal(t, "hello", prompt.ParamString(taranis, nil))
	assert.Equal(t, "7", prompt.ParamString(stock, nil))

	volume := CustomFunctionData{Func: FuncVolume, Param: raw.NewSource(raw.SourceStick, 1).Value()}
	assert.Equal(t, "Ele", volume.ParamString(taranis, nil))

	gv := CustomFunctionData{Func: FuncAdjustGV1, AdjustMode: AdjustIncDec, Param: 1}
	assert.Equal(t, "Incr: +1", gv.ParamString(taranis, nil))
	gv.Param = 0
	assert.Equal(t, "Decr: -1", gv.ParamString(taranis, nil))
	gv.AdjustMode = AdjustValue
	gv.Param = 12
	assert.Equal(t, "Value 12", gv.ParamString(taranis, nil))

	assert.Equal(t, "repeat(3s)", (&CustomFunctionData{RepeatParam: 3}).RepeatString(taranis))
	assert.Equal(t, "repeat(30s)", (&CustomFunctionData{RepeatParam: 3}).RepeatString(stock))
	assert.Equal(t, "", (&CustomFunctionData{}).RepeatString(stock))
}

func TestResetParams(t *testing.T) {
	taranis := fw(t, "opentx-taranis")
	m := New(taranis)
	m.SensorData[2].Label = "RPM"

	params := ResetParams(taranis, &m)
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"Timer1", "Timer2", "Timer3", "Flight", "Telemetry", "RPM"}, labels)
	assert.Equal(t, 7, params[5].Value)

	reset := CustomFunctionData{Func: FuncReset, Param: 7}
	assert.Equal(t, "RPM", reset.ParamString(taranis, &m))
	reset.Param = 5
	assert.Equal(t, inconsistentParam, reset.ParamString(taranis, &m))

	gruvin := fw(t, "opentx-gruvin9x")
	params = ResetParams(gruvin, nil)
	require.Len(t, params, 6)
	assert.Equal(t, "Flight", params[2].Label)
	assert.Equal(t, "REb", params[5].Label)
}

func TestFrSkyRatioRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := FrSkyChannelData{
			Type:       rapid.IntRange(0, 3).Draw(t, "type"),
			Multiplier: uint(rapid.IntRange(0, 3).Draw(t, "multiplier")),
			Ratio:      uint(rapid.IntRange(0, 255).Draw(t, "ratio")),
		}
		want := c.RatioValue()
		stored := c.Ratio

		c.SetRatioValue(want)
		assert.Equal(t, stored, c.Ratio)
		assert.InDelta(t, want, c.RatioValue(), 1e-9)
	})
}

func TestFrSkyChannelRange(t *testing.T) {
	c := FrSkyChannelData{Type: 0, Ratio: 132, Offset: 10}
	r := c.Range()
	assert.InDelta(t, 13.2/255, r.Step, 1e-9)
	assert.InDelta(t, 10*13.2/255, r.Min, 1e-9)
	assert.InDelta(t, 13.2+r.Min, r.Max, 1e-9)
	assert.Equal(t, 2, r.Decimals)
	assert.Equal(t, "V", r.Unit)

	c = FrSkyChannelData{Type: 3, Ratio: 100, Multiplier: 1}
	assert.Equal(t, 200.0, c.RatioValue())
	assert.Equal(t, 0, c.Range().Decimals)
}

func TestSensorData(t *testing.T) {
	s := SensorData{Type: SensorCalculated, Formula: FormulaConsumption, Unit: UnitVolts}
	s.UpdateUnit()
	assert.Equal(t, UnitMah, s.Unit)
	assert.Equal(t, "mAh", s.UnitString())
	assert.False(t, s.IsConfigurable())
	assert.False(t, s.IsAvailable())

	s = SensorData{Type: SensorRaw, Unit: UnitCelsius, Label: "Tmp1"}
	s.UpdateUnit()
	assert.Equal(t, UnitCelsius, s.Unit)
	assert.True(t, s.IsConfigurable())
	assert.True(t, s.IsAvailable())

	s.Unit = UnitGPS
	assert.False(t, s.IsConfigurable())
	assert.Equal(t, "", s.UnitString())

	s.Clear()
	assert.Equal(t, SensorData{}, s)
}

func TestFrSkyDataClear(t *testing.T) {
	var d FrSkyData
	d.Clear(fw(t, "opentx-9x"))
	assert.Equal(t, RSSIAlarm{Level: 2, Value: 45}, d.RSSIAlarms[0])
	assert.Equal(t, RSSIAlarm{Level: 3, Value: 42}, d.RSSIAlarms[1])
	assert.Equal(t, 2, d.Blades)
	assert.Equal(t, ScreenNumbers, d.Screens[0].Type)

	d.Clear(fw(t, "opentx-taranis"))
	assert.Equal(t, ScreenNone, d.Screens[3].Type)
}

func TestLimitStrings(t *testing.T) {
	var l LimitData
	l.Clear()
	l.Offset = -15
	assert.Equal(t, "-100", l.MinString())
	assert.Equal(t, "100", l.MaxString())
	assert.Equal(t, "-1.5", l.OffsetString())

	l.Max = 875
	assert.Equal(t, "87.5", l.MaxString())
}

func TestCurveDataEmpty(t *testing.T) {
	var c CurveData
	c.Clear(5)
	assert.True(t, c.IsEmpty())
	c.Points[4].Y = 10
	assert.False(t, c.IsEmpty())
	c.Clear(3)
	c.Name = "pitch"
	assert.False(t, c.IsEmpty())
}
