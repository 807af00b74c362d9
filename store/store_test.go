package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/model"
	"github.com/gtu-nova/nova-companion/raw"
)

var registry = firmware.DefaultRegistry()

func taranis(t *testing.T) *firmware.Firmware {
	f, ok := registry.Find("opentx-taranis")
	require.True(t, ok)
	return f
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(taranis(t), nil, 4)
	assert.Equal(t, "opentx-taranis", doc.Firmware)
	require.Len(t, doc.Models, 4)
	assert.Equal(t, []int{0}, doc.UsedModels())
	assert.Equal(t, "MODEL01", doc.Models[0].Name)
	assert.Equal(t, model.ProtocolPXXXJTX16, doc.Models[3].ModuleData[0].Protocol)

	fw, err := doc.ResolveFirmware(registry)
	require.NoError(t, err)
	assert.Equal(t, taranis(t), fw)

	doc.Firmware = "opentx-nope"
	_, err = doc.ResolveFirmware(registry)
	assert.Error(t, err)

	assert.Empty(t, NewDocument(taranis(t), nil, 0).Models)
}

func TestDocumentRoundTrip(t *testing.T) {
	f := taranis(t)
	doc := NewDocument(f, &model.Profile{ChannelOrder: 3}, 2)

	m := &doc.Models[1]
	m.SetDefaultValues(f, 1, &doc.Settings)
	m.Name = "Glider °"
	m.FlightModeData[2].GVars[1] = 99
	m.FlightModeData[3].TrimMode[0] = -1
	m.SensorData[0] = model.SensorData{Label: "Alt", Unit: model.UnitMeters, Prec: 1}
	m.LogicalSw[0] = model.LogicalSwitchData{Func: model.LsFnVPos, Val1: raw.SensorSource(0, raw.SensorValue).Value()}
	m.CustomFn[0].Swtch = raw.NewSwitch(raw.SwitchSwitch, -3)
	m.FrSky.Channels[1].SetRatioValue(13.2)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("firmware: opentx-9x\nbogus: 1\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("firmware: [\n"))
	assert.Error(t, err)

	doc, err := Decode(strings.NewReader("firmware: opentx-9x\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Models)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio.yaml")
	doc := NewDocument(taranis(t), nil, 1)
	require.NoError(t, doc.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, back)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("firmware: opentx-taranis\nport: /dev/ttyACM0\nprofile:\n  channelOrder: 2\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "opentx-taranis", cfg.Firmware)
	assert.Equal(t, "/dev/ttyACM0", cfg.Port)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Profile.ChannelOrder)

	cfg.Baud = 57600
	require.NoError(t, SaveConfig(path, cfg))
	back, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	require.NoError(t, os.WriteFile(path, []byte("baud: fast\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radio.yaml")

	name, err := Backup(path, "", time.Now())
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, os.WriteFile(path, []byte("firmware: er9x\n"), 0o644))
	when := time.Date(2026, time.March, 7, 9, 5, 1, 0, time.UTC)
	name, err = Backup(path, "", when)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "radio-20260307-090501.yaml"), name)
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "firmware: er9x\n", string(data))

	name, err = Backup(path, "%d.%m", when)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "radio-07.03.yaml"), name)
}
