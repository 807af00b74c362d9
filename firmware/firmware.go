package firmware

import "strings"

type Option struct {
	Name    string
	Tooltip string
	Variant uint32
}

// Firmware describes one firmware family built for one board, plus the
// variant options it was built with. A base firmware has no options
// selected; Variant derives the firmware for an id such as
// "opentx-taranis-heli-imperial".
type Firmware struct {
	id           string
	name         string
	family       string
	board        Board
	variant      uint32
	base         *Firmware
	opts         [][]Option
	languages    []string
	ttsLanguages []string
	capability   CapabilityFunc
}

func New(id, name, family string, board Board, fn CapabilityFunc) *Firmware {
	return &Firmware{
		id:         id,
		name:       name,
		family:     family,
		board:      board,
		capability: fn,
	}
}

func (f *Firmware) ID() string {
	return f.id
}

func (f *Firmware) Name() string {
	return f.name
}

func (f *Firmware) Family() string {
	return f.family
}

func (f *Firmware) Board() Board {
	return f.board
}

func (f *Firmware) VariantNumber() uint32 {
	return f.variant
}

// Base returns the firmware this variant was derived from, or f itself.
func (f *Firmware) Base() *Firmware {
	if f.base != nil {
		return f.base
	}
	return f
}

func (f *Firmware) Options() [][]Option {
	return f.Base().opts
}

func (f *Firmware) Languages() []string {
	return f.Base().languages
}

func (f *Firmware) TTSLanguages() []string {
	return f.Base().ttsLanguages
}

func (f *Firmware) AddOption(name, tooltip string, variant uint32) {
	f.AddOptions([]Option{{Name: name, Tooltip: tooltip, Variant: variant}})
}

// AddOptions adds a group of mutually exclusive options.
func (f *Firmware) AddOptions(opts []Option) {
	group := make([]Option, len(opts))
	copy(group, opts)
	f.opts = append(f.opts, group)
}

func (f *Firmware) AddLanguage(lang string) {
	f.languages = append(f.languages, lang)
}

func (f *Firmware) AddTTSLanguage(lang string) {
	f.ttsLanguages = append(f.ttsLanguages, lang)
}

func (f *Firmware) findOption(name string) (Option, bool) {
	for _, group := range f.Base().opts {
		for _, opt := range group {
			if opt.Name == name {
				return opt, true
			}
		}
	}
	return Option{}, false
}

// HasOption reports whether the variant was built with the named option.
func (f *Firmware) HasOption(name string) bool {
	opt, ok := f.findOption(name)
	return ok && f.variant&opt.Variant != 0
}

// Variant returns the firmware variant identified by id, or nil when id
// does not belong to this firmware. Language codes are accepted as
// options and do not change the variant number.
func (f *Firmware) Variant(id string) *Firmware {
	base := f.Base()
	if id == base.id {
		return base
	}
	if !strings.HasPrefix(id, base.id+"-") {
		return nil
	}

	var variant uint32
	for _, name := range strings.Split(id[len(base.id)+1:], "-") {
		if name == "" {
			continue
		}
		if opt, ok := base.findOption(name); ok {
			variant |= opt.Variant
			continue
		}
		if base.isLanguage(name) {
			continue
		}
		return nil
	}

	v := *base
	v.id = id
	v.variant = variant
	v.base = base
	return &v
}

func (f *Firmware) isLanguage(name string) bool {
	for _, l := range f.languages {
		if l == name {
			return true
		}
	}
	return false
}

// Capability returns the value of a capability for this firmware and
// board. Unknown ids return 0.
func (f *Firmware) Capability(id Capability) int {
	if f == nil || f.capability == nil {
		return 0
	}
	if v := f.capability(f, id); v > 0 {
		return v
	}
	return 0
}
