package firmware

type Capability int

const (
	Outputs Capability = iota
	Pots
	Sliders
	Switches
	SwitchesPositions
	MultiposPots
	MultiposPotsPositions
	RotaryEncoders
	Mixes
	Timers
	FlightModes
	FlightModesHaveFades
	Gvars
	GvarsFlightModes
	LogicalSwitches
	LogicalSwitchesExt
	CustomFunctions
	SafetyChannelCustomFunction
	NumCurves
	MaxCurvePoints
	TelemetryCustomScreens
	TelemetrySensors
	TelemetryAnalogs
	Imperial
	VirtualInputs
	MaxInputs
	HasChNames
	HasExpoNames
	HasMixerNames
	HasNoExpo
	SlowScale
	VoicesAsNumbers
	Heli
	LuaScripts
	LuaInputs
	LuaOutputs
	NumModules
	ExtendedTrims

	capabilityCount
)

var capabilityNames = [...]string{
	Outputs:                     "Outputs",
	Pots:                        "Pots",
	Sliders:                     "Sliders",
	Switches:                    "Switches",
	SwitchesPositions:           "SwitchesPositions",
	MultiposPots:                "MultiposPots",
	MultiposPotsPositions:       "MultiposPotsPositions",
	RotaryEncoders:              "RotaryEncoders",
	Mixes:                       "Mixes",
	Timers:                      "Timers",
	FlightModes:                 "FlightModes",
	FlightModesHaveFades:        "FlightModesHaveFades",
	Gvars:                       "Gvars",
	GvarsFlightModes:            "GvarsFlightModes",
	LogicalSwitches:             "LogicalSwitches",
	LogicalSwitchesExt:          "LogicalSwitchesExt",
	CustomFunctions:             "CustomFunctions",
	SafetyChannelCustomFunction: "SafetyChannelCustomFunction",
	NumCurves:                   "NumCurves",
	MaxCurvePoints:              "MaxCurvePoints",
	TelemetryCustomScreens:      "TelemetryCustomScreens",
	TelemetrySensors:            "TelemetrySensors",
	TelemetryAnalogs:            "TelemetryAnalogs",
	Imperial:                    "Imperial",
	VirtualInputs:               "VirtualInputs",
	MaxInputs:                   "MaxInputs",
	HasChNames:                  "HasChNames",
	HasExpoNames:                "HasExpoNames",
	HasMixerNames:               "HasMixerNames",
	HasNoExpo:                   "HasNoExpo",
	SlowScale:                   "SlowScale",
	VoicesAsNumbers:             "VoicesAsNumbers",
	Heli:                        "Heli",
	LuaScripts:                  "LuaScripts",
	LuaInputs:                   "LuaInputs",
	LuaOutputs:                  "LuaOutputs",
	NumModules:                  "NumModules",
	ExtendedTrims:               "ExtendedTrims",
}

// Capabilities lists every known id, in declaration order.
func Capabilities() []Capability {
	ids := make([]Capability, 0, capabilityCount)
	for id := Capability(0); id < capabilityCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

func (c Capability) String() string {
	if c < 0 || c >= capabilityCount {
		return "Unknown"
	}
	return capabilityNames[c]
}

// IsCount reports whether the capability is a count rather than a flag
// or a scale factor.
func (c Capability) IsCount() bool {
	switch c {
	case Outputs, Pots, Sliders, Switches, SwitchesPositions, MultiposPots,
		RotaryEncoders, Mixes, Timers, FlightModes, Gvars, LogicalSwitches,
		CustomFunctions, NumCurves, TelemetryCustomScreens, TelemetrySensors,
		TelemetryAnalogs, MaxInputs, LuaScripts, LuaInputs, LuaOutputs, NumModules:
		return true
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CapabilityFunc answers a capability query for one firmware family.
// Implementations must return 0 for ids they do not know.
type CapabilityFunc func(f *Firmware, id Capability) int

func openTxCapability(f *Firmware, id Capability) int {
	board := f.board
	arm := board.IsArm()
	taranis := board.IsTaranis()
	x9e := board.IsTaranisX9E()
	avr128 := board == BoardGruvin9x || board == BoardMega2560

	switch id {
	case Outputs:
		if arm {
			return 32
		}
		return 16
	case Pots:
		if x9e {
			return 4
		}
		return 3
	case Sliders:
		if x9e {
			return 4
		}
		if taranis {
			return 2
		}
		return 0
	case Switches:
		if x9e {
			return 18
		}
		if taranis {
			return 8
		}
		return 7
	case SwitchesPositions:
		if x9e {
			return 18 * 3
		}
		if taranis {
			return 8 * 3
		}
		return 9
	case MultiposPots:
		if taranis {
			return 3
		}
		return 0
	case MultiposPotsPositions:
		if taranis {
			return 6
		}
		return 0
	case RotaryEncoders:
		switch {
		case avr128:
			return 2
		case board == BoardSky9x || board == Board9XRPro:
			return 1
		}
		return 0
	case Mixes:
		if arm || avr128 {
			return 64
		}
		return 32
	case Timers:
		if arm {
			return 3
		}
		return 2
	case FlightModes:
		if f.HasOption("nofp") {
			return 0
		}
		if arm {
			return 9
		}
		return 5
	case FlightModesHaveFades:
		return 1
	case Gvars, GvarsFlightModes:
		if arm {
			return 9
		}
		if f.HasOption("gvars") {
			return 5
		}
		return 0
	case LogicalSwitches:
		switch {
		case arm:
			return 32
		case avr128:
			return 15
		}
		return 12
	case LogicalSwitchesExt:
		return b2i(arm)
	case CustomFunctions:
		switch {
		case arm:
			return 64
		case avr128:
			return 24
		}
		return 16
	case SafetyChannelCustomFunction:
		return 1
	case NumCurves:
		if f.HasOption("nocurves") {
			return 0
		}
		if arm {
			return 32
		}
		return 8
	case MaxCurvePoints:
		if arm {
			return 17
		}
		return 9
	case TelemetryCustomScreens:
		if arm {
			return 4
		}
		return 2
	case TelemetrySensors:
		if arm {
			return 32
		}
		return 0
	case TelemetryAnalogs:
		if arm {
			return 4
		}
		return 2
	case Imperial:
		return b2i(f.HasOption("imperial"))
	case VirtualInputs, HasChNames:
		return b2i(taranis)
	case MaxInputs:
		if taranis {
			return 32
		}
		return 0
	case HasExpoNames, HasMixerNames:
		return b2i(arm)
	case HasNoExpo:
		return b2i(!taranis)
	case SlowScale:
		if arm {
			return 10
		}
		return 2
	case VoicesAsNumbers:
		return b2i(!arm)
	case Heli:
		return b2i(f.HasOption("heli"))
	case LuaScripts:
		if taranis {
			return 7
		}
		return 0
	case LuaInputs, LuaOutputs:
		if taranis {
			return 6
		}
		return 0
	case NumModules:
		if taranis {
			return 2
		}
		return 1
	case ExtendedTrims:
		return 1
	}
	return 0
}

// classicCapability answers for the older AVR forks (er9x, th9x,
// gruvin9x). They share the stock 9x hardware layout.
func classicCapability(f *Firmware, id Capability) int {
	switch id {
	case Outputs:
		return 16
	case Pots:
		return 3
	case Switches:
		return 7
	case SwitchesPositions:
		return 9
	case Mixes:
		return 32
	case Timers:
		return 2
	case LogicalSwitches:
		return 12
	case CustomFunctions:
		if f.family == "th9x" {
			return 0
		}
		return 12
	case NumCurves:
		return 8
	case MaxCurvePoints:
		return 9
	case TelemetryAnalogs:
		return 2
	case TelemetryCustomScreens:
		if f.family == "er9x" {
			return 2
		}
		return 0
	case FlightModes:
		if f.family == "gruvin9x" {
			return 5
		}
		return 0
	case FlightModesHaveFades:
		return b2i(f.family == "gruvin9x")
	case Gvars:
		if f.family == "er9x" {
			return 7
		}
		return 0
	case RotaryEncoders:
		if f.board == BoardGruvin9x {
			return 2
		}
		return 0
	case HasNoExpo, VoicesAsNumbers:
		return 1
	case SlowScale:
		return 2
	case Imperial:
		return b2i(f.HasOption("imperial"))
	case Heli:
		return b2i(f.family != "th9x")
	case NumModules:
		return 1
	}
	return 0
}

func ersky9xCapability(f *Firmware, id Capability) int {
	switch id {
	case Outputs:
		return 24
	case Pots:
		return 3
	case Switches:
		return 7
	case SwitchesPositions:
		return 9
	case RotaryEncoders:
		return 1
	case Mixes:
		return 48
	case Timers:
		return 2
	case FlightModes:
		return 6
	case FlightModesHaveFades:
		return 1
	case Gvars:
		return 7
	case LogicalSwitches:
		return 24
	case CustomFunctions:
		return 24
	case NumCurves:
		return 16
	case MaxCurvePoints:
		return 9
	case TelemetryCustomScreens:
		return 2
	case TelemetryAnalogs:
		return 2
	case HasNoExpo, HasChNames:
		return 1
	case SlowScale:
		return 2
	case Imperial:
		return b2i(f.HasOption("imperial"))
	case Heli:
		return 1
	case NumModules:
		return 1
	case ExtendedTrims:
		return 1
	}
	return 0
}
