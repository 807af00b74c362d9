// Package api serves the firmware registry and a radio document over
// HTTP as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/model"
	"github.com/gtu-nova/nova-companion/raw"
	"github.com/gtu-nova/nova-companion/store"
)

type Server struct {
	registry *firmware.Registry
	doc      *store.Document
	fw       *firmware.Firmware
	logger   *logrus.Logger
}

// New returns a server for doc, whose firmware must be known to reg.
func New(reg *firmware.Registry, doc *store.Document, logger *logrus.Logger) (*Server, error) {
	fw, err := doc.ResolveFirmware(reg)
	if err != nil {
		return nil, err
	}
	return &Server{registry: reg, doc: doc, fw: fw, logger: logger}, nil
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.rootHandler).Methods("GET")
	r.HandleFunc("/api/firmwares", s.firmwaresHandler).Methods("GET")
	r.HandleFunc("/api/firmwares/{id}/capabilities", s.capabilitiesHandler).Methods("GET")
	r.HandleFunc("/api/models", s.modelsHandler).Methods("GET")
	r.HandleFunc("/api/models/{slot:[0-9]+}", s.modelHandler).Methods("GET")
	r.HandleFunc("/api/models/{slot:[0-9]+}/sources/{value:-?[0-9]+}", s.sourceHandler).Methods("GET")
	r.Use(s.logRequests)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnf("writing response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) rootHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"service":  "nova-companion",
		"firmware": s.fw.ID(),
	})
}

type FirmwareInfo struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Family  string   `json:"family"`
	Board   string   `json:"board"`
	Options []string `json:"options"`
}

func (s *Server) firmwaresHandler(w http.ResponseWriter, _ *http.Request) {
	list := []FirmwareInfo{}
	for _, fw := range s.registry.Firmwares() {
		info := FirmwareInfo{ID: fw.ID(), Name: fw.Name(), Family: fw.Family(), Board: fw.Board().Name(), Options: []string{}}
		for _, group := range fw.Options() {
			for _, o := range group {
				info.Options = append(info.Options, o.Name)
			}
		}
		list = append(list, info)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"firmwares": list})
}

func (s *Server) capabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	fw, ok := s.registry.Find(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "firmware not found")
		return
	}
	caps := make(map[string]int)
	for _, c := range firmware.Capabilities() {
		caps[c.String()] = fw.Capability(c)
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"firmware": fw.ID(), "capabilities": caps})
}

type ModelSummary struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

func (s *Server) modelsHandler(w http.ResponseWriter, _ *http.Request) {
	list := []ModelSummary{}
	for _, i := range s.doc.UsedModels() {
		list = append(list, ModelSummary{Slot: i, Name: s.doc.Models[i].Name})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"models": list})
}

type Line struct {
	Destination string `json:"destination"`
	Source      string `json:"source"`
	Weight      string `json:"weight"`
	Curve       string `json:"curve"`
	Switch      string `json:"switch,omitempty"`
}

type ModelDetail struct {
	ModelSummary
	Inputs []Line `json:"inputs"`
	Mixes  []Line `json:"mixes"`
}

// model returns the used model for the slot route variable, writing the
// error response itself when there is none.
func (s *Server) model(w http.ResponseWriter, r *http.Request) (int, *model.ModelData, bool) {
	slot, err := strconv.Atoi(mux.Vars(r)["slot"])
	if err != nil || slot >= len(s.doc.Models) || s.doc.Models[slot].IsEmpty() {
		s.writeError(w, http.StatusNotFound, "model not found")
		return 0, nil, false
	}
	return slot, &s.doc.Models[slot], true
}

func (s *Server) switchLabel(sw raw.Switch) string {
	if sw.Type == raw.SwitchNone {
		return ""
	}
	return sw.Label(s.fw)
}

func (s *Server) modelHandler(w http.ResponseWriter, r *http.Request) {
	slot, m, ok := s.model(w, r)
	if !ok {
		return
	}
	detail := ModelDetail{
		ModelSummary: ModelSummary{Slot: slot, Name: m.Name},
		Inputs:       []Line{},
		Mixes:        []Line{},
	}
	for _, e := range m.Inputs() {
		detail.Inputs = append(detail.Inputs, Line{
			Destination: raw.NewSource(raw.SourceVirtualInput, e.Chn).Label(s.fw, m),
			Source:      e.SrcRaw.Label(s.fw, m),
			Weight:      raw.GVarString(e.Weight, false),
			Curve:       e.Curve.String(),
			Switch:      s.switchLabel(e.Swtch),
		})
	}
	for _, mix := range m.Mixes() {
		detail.Mixes = append(detail.Mixes, Line{
			Destination: raw.NewSource(raw.SourceCh, mix.DestCh-1).Label(s.fw, m),
			Source:      mix.SrcRaw.Label(s.fw, m),
			Weight:      raw.GVarString(mix.Weight, false),
			Curve:       mix.Curve.String(),
			Switch:      s.switchLabel(mix.Swtch),
		})
	}
	s.writeJSON(w, http.StatusOK, detail)
}

type SourceRange struct {
	Label    string  `json:"label"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Step     float64 `json:"step"`
	Offset   float64 `json:"offset"`
	Decimals int     `json:"decimals"`
	Unit     string  `json:"unit"`
}

// sourceHandler resolves a stored source value against the model. The
// delta and single query parameters select the logical switch range
// variants.
func (s *Server) sourceHandler(w http.ResponseWriter, r *http.Request) {
	_, m, ok := s.model(w, r)
	if !ok {
		return
	}
	value, err := strconv.Atoi(mux.Vars(r)["value"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid source value")
		return
	}
	var flags raw.RangeFlags
	q := r.URL.Query()
	switch q.Get("delta") {
	case "":
	case "abs":
		flags |= raw.RangeDeltaAbsFunction
	default:
		flags |= raw.RangeDeltaFunction
	}
	if q.Get("single") != "" {
		flags |= raw.RangeSinglePrecision
	}

	src := raw.SourceFromValue(value)
	rng := src.Range(s.fw, m, &s.doc.Settings, flags)
	s.writeJSON(w, http.StatusOK, SourceRange{
		Label:    src.Label(s.fw, m),
		Min:      rng.Min,
		Max:      rng.Max,
		Step:     rng.Step,
		Offset:   rng.Offset,
		Decimals: rng.Decimals,
		Unit:     rng.Unit,
	})
}
