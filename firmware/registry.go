package firmware

import "fmt"

const (
	VariantHeli uint32 = 1 << iota
	VariantGvars
	VariantImperial
	VariantNoFlightModes
	VariantNoCurves
)

// Registry enumerates the supported board and firmware combinations.
// It is plain data: resolve a firmware once per document and pass it to
// every consumer.
type Registry struct {
	firmwares []*Firmware
	def       *Firmware
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a base firmware. The first one registered becomes the
// default.
func (r *Registry) Register(f *Firmware) {
	if r.def == nil {
		r.def = f
	}
	r.firmwares = append(r.firmwares, f)
}

func (r *Registry) SetDefault(f *Firmware) {
	r.def = f
}

func (r *Registry) Default() *Firmware {
	return r.def
}

func (r *Registry) Firmwares() []*Firmware {
	out := make([]*Firmware, len(r.firmwares))
	copy(out, r.firmwares)
	return out
}

// Lookup returns the firmware variant for id, or the default firmware
// when no registered firmware knows it.
func (r *Registry) Lookup(id string) *Firmware {
	if f, ok := r.Find(id); ok {
		return f
	}
	return r.def
}

func (r *Registry) Find(id string) (*Firmware, bool) {
	for _, f := range r.firmwares {
		if v := f.Variant(id); v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r *Registry) ForBoard(board Board) []*Firmware {
	var out []*Firmware
	for _, f := range r.firmwares {
		if f.board == board {
			out = append(out, f)
		}
	}
	return out
}

var openTxBoards = []struct {
	board Board
	id    string
}{
	{BoardStock, "9x"},
	{BoardM128, "9x128"},
	{BoardGruvin9x, "gruvin9x"},
	{BoardMega2560, "mega2560"},
	{BoardSky9x, "sky9x"},
	{Board9XRPro, "9xrpro"},
	{BoardTaranis, "taranis"},
	{BoardTaranisPlus, "taranisplus"},
	{BoardTaranisX9E, "taranisx9e"},
}

var uiLanguages = []string{"en", "cz", "de", "es", "fr", "it", "pt", "se", "pl"}

func newOpenTx(board Board, suffix string) *Firmware {
	f := New("opentx-"+suffix, fmt.Sprintf("OpenTX for %s", board.Name()), "opentx", board, openTxCapability)
	f.AddOption("heli", "Enable HELI menu and cyclic mix support", VariantHeli)
	if !board.IsArm() {
		f.AddOption("gvars", "Global variables", VariantGvars)
	}
	f.AddOption("imperial", "Imperial units", VariantImperial)
	f.AddOption("nofp", "No flight modes", VariantNoFlightModes)
	f.AddOption("nocurves", "Disable curves menus", VariantNoCurves)
	for _, l := range uiLanguages {
		f.AddLanguage(l)
		f.AddTTSLanguage(l)
	}
	return f
}

// DefaultRegistry returns a registry holding every supported firmware.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range openTxBoards {
		r.Register(newOpenTx(b.board, b.id))
	}

	er9x := New("er9x", "er9x", "er9x", BoardStock, classicCapability)
	er9x.AddOption("imperial", "Imperial units", VariantImperial)
	er9x.AddLanguage("en")
	r.Register(er9x)

	r.Register(New("th9x", "th9x", "th9x", BoardStock, classicCapability))

	g := New("gruvin9x-stock", "gruvin9x for stock board", "gruvin9x", BoardStock, classicCapability)
	g.AddLanguage("en")
	r.Register(g)
	g = New("gruvin9x-v4", "gruvin9x for v4 board", "gruvin9x", BoardGruvin9x, classicCapability)
	g.AddLanguage("en")
	r.Register(g)

	sky := New("ersky9x", "ersky9x", "ersky9x", BoardSky9x, ersky9xCapability)
	sky.AddOption("imperial", "Imperial units", VariantImperial)
	sky.AddLanguage("en")
	r.Register(sky)

	return r
}
