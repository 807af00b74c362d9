// Package store keeps radio documents and the tool configuration in YAML
// files.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/yaml.v3"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/model"
)

// Document is everything stored for one radio: the firmware it runs,
// its settings and its model slots.
type Document struct {
	Firmware string                `yaml:"firmware"`
	Settings model.GeneralSettings `yaml:"settings"`
	Models   []model.ModelData     `yaml:"models"`
}

// NewDocument returns a document for fw with slots empty models and the
// first one set up with default mixes.
func NewDocument(fw *firmware.Firmware, profile *model.Profile, slots int) *Document {
	doc := &Document{
		Firmware: fw.ID(),
		Settings: model.NewGeneralSettings(fw, profile),
		Models:   make([]model.ModelData, slots),
	}
	for i := range doc.Models {
		doc.Models[i].Clear(fw)
	}
	if slots > 0 {
		doc.Models[0].SetDefaultValues(fw, 0, &doc.Settings)
	}
	return doc
}

// ResolveFirmware returns the document's firmware, or an error when the
// registry does not know it.
func (d *Document) ResolveFirmware(reg *firmware.Registry) (*firmware.Firmware, error) {
	fw, ok := reg.Find(d.Firmware)
	if !ok {
		return nil, fmt.Errorf("unknown firmware %q", d.Firmware)
	}
	return fw, nil
}

// UsedModels returns the indices of the used model slots.
func (d *Document) UsedModels() []int {
	var used []int
	for i := range d.Models {
		if !d.Models[i].IsEmpty() {
			used = append(used, i)
		}
	}
	return used
}

func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}

func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return enc.Close()
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document through a temporary file so a failed write
// leaves the previous file intact.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultBackupFormat is the strftime pattern inserted into backup file
// names.
const DefaultBackupFormat = "%Y%m%d-%H%M%S"

// Backup copies the file at path next to it, with t formatted by format
// inserted before the extension, and returns the backup's path. A
// missing file is not an error and yields an empty path.
func Backup(path, format string, t time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if format == "" {
		format = DefaultBackupFormat
	}
	stamp, err := strftime.Format(format, t)
	if err != nil {
		return "", fmt.Errorf("backup name: %w", err)
	}
	ext := filepath.Ext(path)
	backup := strings.TrimSuffix(path, ext) + "-" + stamp + ext
	if err := writeFileAtomic(backup, data); err != nil {
		return "", err
	}
	return backup, nil
}

// Config is the tool configuration. Command line flags override it.
type Config struct {
	Firmware string        `yaml:"firmware,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
	Port     string        `yaml:"port,omitempty"`
	Baud     int           `yaml:"baud,omitempty"`
	Slots    int           `yaml:"slots,omitempty"`
	Backup   string        `yaml:"backup_format,omitempty"`
	Profile  model.Profile `yaml:"profile,omitempty"`
}

const defaultSlots = 16

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Baud:     115200,
		Slots:    defaultSlots,
		Backup:   DefaultBackupFormat,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
