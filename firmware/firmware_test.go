package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBoardPredicates(t *testing.T) {
	assert.False(t, BoardStock.IsArm())
	assert.False(t, BoardGruvin9x.IsArm())
	assert.True(t, BoardSky9x.IsArm())
	assert.True(t, Board9XRPro.IsArm())
	assert.True(t, BoardTaranis.IsArm())
	assert.True(t, BoardTaranisX9E.IsTaranis())
	assert.False(t, BoardSky9x.IsTaranis())
	assert.Equal(t, FamilyArm9x, BoardSky9x.Family())
	assert.Equal(t, FamilyTaranis, BoardTaranisPlus.Family())
	assert.Equal(t, "9XR-PRO", Board9XRPro.Name())
	assert.Equal(t, "Unknown", BoardUnknown.Name())
}

func TestBoardFromID(t *testing.T) {
	assert.Equal(t, BoardTaranisPlus, BoardFromID("X9D+"))
	assert.Equal(t, BoardTaranis, BoardFromID("x9d"))
	assert.Equal(t, BoardUnknown, BoardFromID("ABCD"))
	assert.Equal(t, BoardUnknown, BoardFromID(""))
	for _, b := range Boards {
		assert.Equal(t, b, BoardFromID(b.ID()), "board %s", b)
	}
}

func TestCapabilityNeverNegative(t *testing.T) {
	reg := DefaultRegistry()
	rapid.Check(t, func(t *rapid.T) {
		fws := reg.Firmwares()
		f := fws[rapid.IntRange(0, len(fws)-1).Draw(t, "firmware")]
		id := Capability(rapid.IntRange(-10, int(capabilityCount)+10).Draw(t, "id"))
		assert.GreaterOrEqual(t, f.Capability(id), 0)
	})
}

func TestCapabilityUnknownID(t *testing.T) {
	f := DefaultRegistry().Lookup("opentx-taranis")
	assert.Equal(t, 0, f.Capability(Capability(-1)))
	assert.Equal(t, 0, f.Capability(capabilityCount+3))

	var nilFw *Firmware
	assert.Equal(t, 0, nilFw.Capability(Outputs))
}

func TestCountsMonotonicPerFamily(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range Capabilities() {
		if !id.IsCount() {
			continue
		}
		last := map[Family]int{}
		for _, b := range Boards {
			fws := reg.ForBoard(b)
			require.NotEmpty(t, fws)
			var opentx *Firmware
			for _, f := range fws {
				if f.Family() == "opentx" {
					opentx = f
				}
			}
			require.NotNil(t, opentx, "no opentx for %s", b)

			v := opentx.Capability(id)
			prev, seen := last[b.Family()]
			if seen {
				assert.GreaterOrEqual(t, v, prev, "%s decreased on %s", id, b)
			}
			last[b.Family()] = v
		}
	}
}

func TestTaranisCapabilities(t *testing.T) {
	reg := DefaultRegistry()
	x9d := reg.Lookup("opentx-taranis")
	x9e := reg.Lookup("opentx-taranisx9e")
	stock := reg.Lookup("opentx-9x")

	assert.Equal(t, 3, x9d.Capability(Pots))
	assert.Equal(t, 2, x9d.Capability(Sliders))
	assert.Equal(t, 4, x9e.Capability(Pots))
	assert.Equal(t, 18, x9e.Capability(Switches))
	assert.Equal(t, 1, x9d.Capability(VirtualInputs))
	assert.Equal(t, 0, stock.Capability(VirtualInputs))
	assert.Equal(t, 0, stock.Capability(TelemetrySensors))
	assert.Equal(t, 32, x9d.Capability(TelemetrySensors))
	assert.Equal(t, 5, stock.Capability(FlightModes))
}

func TestVariantOptions(t *testing.T) {
	reg := DefaultRegistry()

	f, ok := reg.Find("opentx-9x-heli-gvars-en")
	require.True(t, ok)
	assert.Equal(t, "opentx-9x-heli-gvars-en", f.ID())
	assert.Equal(t, VariantHeli|VariantGvars, f.VariantNumber())
	assert.Equal(t, "opentx-9x", f.Base().ID())
	assert.Equal(t, 1, f.Capability(Heli))
	assert.Equal(t, 5, f.Capability(Gvars))
	assert.Equal(t, 0, f.Capability(Imperial))

	base := reg.Lookup("opentx-9x")
	assert.Equal(t, 0, base.Capability(Gvars))
	assert.Equal(t, 0, base.Capability(Heli))

	f = reg.Lookup("opentx-taranis-imperial-nofp")
	assert.Equal(t, 1, f.Capability(Imperial))
	assert.Equal(t, 0, f.Capability(FlightModes))
	assert.Equal(t, BoardTaranis, f.Board())
}

func TestLookupFallsBackToDefault(t *testing.T) {
	reg := DefaultRegistry()

	_, ok := reg.Find("opentx-9x-bogus")
	assert.False(t, ok)
	assert.Same(t, reg.Default(), reg.Lookup("opentx-9x-bogus"))
	assert.Same(t, reg.Default(), reg.Lookup("nothing"))
	assert.Equal(t, "opentx-9x", reg.Default().ID())

	// a board suffix must not be mistaken for an option
	f, ok := reg.Find("opentx-taranisplus")
	require.True(t, ok)
	assert.Equal(t, BoardTaranisPlus, f.Board())
}

func TestVariantsAreIndependent(t *testing.T) {
	reg := DefaultRegistry()
	a := reg.Lookup("opentx-sky9x-imperial")
	b := reg.Lookup("opentx-sky9x")
	assert.Equal(t, 1, a.Capability(Imperial))
	assert.Equal(t, 0, b.Capability(Imperial))
	assert.NotSame(t, a, b)
}

func TestCapabilityNames(t *testing.T) {
	for _, id := range Capabilities() {
		assert.NotEqual(t, "", id.String())
		assert.NotEqual(t, "Unknown", id.String())
	}
	assert.Equal(t, "Unknown", Capability(-4).String())
}
