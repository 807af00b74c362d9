// Package raw holds the firmware independent references a model stores
// (sources, switches, curve references) and resolves them into labels
// and value ranges for a given firmware.
package raw

import "github.com/gtu-nova/nova-companion/firmware"

// Firmware is the part of a firmware description the resolvers need.
// *firmware.Firmware satisfies it.
type Firmware interface {
	Board() firmware.Board
	Capability(id firmware.Capability) int
}

// Model exposes the per-model state labels and ranges depend on. A nil
// Model is allowed everywhere one is accepted.
type Model interface {
	SensorLabel(slot int) string
	SensorUnit(slot int) string
	SensorPrecision(slot int) int
	InputName(idx int) string
	AnalogRange(channel int) Range
	ChannelsMax(fw Firmware, forceExtendedLimits bool) int
}

// Settings exposes the radio wide preferences ranges depend on.
type Settings interface {
	UsesImperial() bool
}

const (
	NumSticks = 4

	maxLogicalSwitches = 32
	maxFlightModes     = 9
)

const unknownLabel = "???"
const noneLabel = "----"

func inTable(table []string, idx int) string {
	if idx < 0 || idx >= len(table) {
		return unknownLabel
	}
	return table[idx]
}
