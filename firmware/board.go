package firmware

import "strings"

type Board int

// Boards are ordered by hardware generation.
const (
	BoardUnknown Board = iota - 1
	BoardStock
	BoardM128
	BoardMega2560
	BoardGruvin9x
	BoardSky9x
	Board9XRPro
	BoardTaranis
	BoardTaranisPlus
	BoardTaranisX9E
)

type Family int

const (
	FamilyClassic Family = iota
	FamilyArm9x
	FamilyTaranis
)

var Boards = []Board{
	BoardStock,
	BoardM128,
	BoardMega2560,
	BoardGruvin9x,
	BoardSky9x,
	Board9XRPro,
	BoardTaranis,
	BoardTaranisPlus,
	BoardTaranisX9E,
}

func (b Board) IsArm() bool {
	return b == BoardSky9x || b == Board9XRPro || b.IsTaranis()
}

func (b Board) IsTaranis() bool {
	return b == BoardTaranis || b == BoardTaranisPlus || b == BoardTaranisX9E
}

func (b Board) IsTaranisPlus() bool {
	return b == BoardTaranisPlus
}

func (b Board) IsTaranisX9E() bool {
	return b == BoardTaranisX9E
}

func (b Board) Family() Family {
	switch {
	case b.IsTaranis():
		return FamilyTaranis
	case b.IsArm():
		return FamilyArm9x
	default:
		return FamilyClassic
	}
}

func (b Board) Name() string {
	switch b {
	case BoardStock:
		return "9X"
	case BoardM128:
		return "9X128"
	case BoardGruvin9x:
		return "Gruvin9x"
	case BoardMega2560:
		return "MEGA2560"
	case BoardSky9x:
		return "Sky9x"
	case Board9XRPro:
		return "9XR-PRO"
	case BoardTaranis:
		return "Taranis"
	case BoardTaranisPlus:
		return "Taranis Plus"
	case BoardTaranisX9E:
		return "Taranis X9E"
	default:
		return "Unknown"
	}
}

func (b Board) String() string {
	return b.Name()
}

// boardIDs maps the 4 character identifier a radio reports in its board
// info frame.
var boardIDs = map[string]Board{
	"9X  ": BoardStock,
	"9X12": BoardM128,
	"M256": BoardMega2560,
	"GRV9": BoardGruvin9x,
	"SKY9": BoardSky9x,
	"9XRP": Board9XRPro,
	"X9D ": BoardTaranis,
	"X9D+": BoardTaranisPlus,
	"X9E ": BoardTaranisX9E,
}

func BoardFromID(id string) Board {
	if len(id) < 4 {
		id += strings.Repeat(" ", 4-len(id))
	}
	if b, ok := boardIDs[strings.ToUpper(id[:4])]; ok {
		return b
	}
	return BoardUnknown
}

// ID returns the 4 character identifier of the board, the inverse of
// BoardFromID.
func (b Board) ID() string {
	for id, board := range boardIDs {
		if board == b {
			return id
		}
	}
	return "????"
}
