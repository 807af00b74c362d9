package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtu-nova/nova-companion/store"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestUsage(t *testing.T) {
	out, err := runCmd(t)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "firmwares")
	assert.Contains(t, out, "--config")

	_, err = runCmd(t, "frobnicate")
	assert.EqualError(t, err, `unknown command "frobnicate"`)

	_, err = runCmd(t, "--bogus")
	assert.Error(t, err)
}

func TestFirmwaresCommand(t *testing.T) {
	out, err := runCmd(t, "firmwares")
	require.NoError(t, err)
	assert.Contains(t, out, "opentx-9x *")
	assert.Contains(t, out, "opentx-taranisplus")
	assert.Contains(t, out, "ersky9x")
}

func TestCapsCommand(t *testing.T) {
	out, err := runCmd(t, "caps", "opentx-taranis")
	require.NoError(t, err)
	assert.Contains(t, out, "SwitchesPositions")

	_, err = runCmd(t, "caps", "nothing-known")
	assert.Error(t, err)
}

func TestNewAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radio.yaml")

	_, err := runCmd(t, "-f", "opentx-taranis", "new", path, "--slots", "3")
	require.NoError(t, err)

	doc, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "opentx-taranis", doc.Firmware)
	assert.Len(t, doc.Models, 3)

	out, err := runCmd(t, "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "MODEL01")
	assert.Contains(t, out, "CH1")
	assert.Contains(t, out, "[I1]")
	assert.NotContains(t, out, "empty")

	out, err = runCmd(t, "show", path, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")

	_, err = runCmd(t, "show")
	assert.Error(t, err)

	_, err = runCmd(t, "-f", "opentx-taranis", "new", path)
	require.NoError(t, err)
	backups, err := filepath.Glob(filepath.Join(filepath.Dir(path), "radio-*.yaml"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestServeNeedsDocument(t *testing.T) {
	_, err := runCmd(t, "serve")
	assert.Error(t, err)

	_, err = runCmd(t, "serve", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := store.DefaultConfig()
	cfg.Firmware = "er9x"
	cfg.Slots = 2
	require.NoError(t, store.SaveConfig(cfgPath, cfg))

	path := filepath.Join(dir, "radio.yaml")
	_, err := runCmd(t, "-c", cfgPath, "new", path)
	require.NoError(t, err)

	doc, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "er9x", doc.Firmware)
	assert.Len(t, doc.Models, 2)

	_, err = runCmd(t, "-c", cfgPath, "--log-level", "loud", "firmwares")
	assert.Error(t, err)
}

func TestDetectNeedsPort(t *testing.T) {
	_, err := runCmd(t, "detect")
	assert.Error(t, err)

	_, err = runCmd(t, "-p", filepath.Join(t.TempDir(), "ttyNone"), "detect")
	assert.Error(t, err)
}
