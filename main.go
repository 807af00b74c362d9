package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gtu-nova/nova-companion/api"
	"github.com/gtu-nova/nova-companion/firmware"
	"github.com/gtu-nova/nova-companion/model"
	"github.com/gtu-nova/nova-companion/radio"
	"github.com/gtu-nova/nova-companion/raw"
	"github.com/gtu-nova/nova-companion/store"
)

var logger = logrus.New()

func initLogger(level string) error {
	logger.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

// errUsage is returned after usage has been printed.
var errUsage = errors.New("usage")

type command struct {
	name  string
	args  string
	help  string
	run   func(a *app, fs *pflag.FlagSet, args []string) error
	flags func(fs *pflag.FlagSet)
}

var commands []*command

func init() {
	commands = []*command{
		{name: "firmwares", help: "List the supported firmwares", run: runFirmwares},
		{name: "caps", args: "[firmware]", help: "Show the capabilities of a firmware", run: runCaps},
		{name: "new", args: "<file>", help: "Create a radio document with default settings", run: runNew,
			flags: func(fs *pflag.FlagSet) { fs.Int("slots", 0, "Number of model slots (default from config)") }},
		{name: "show", args: "<file>", help: "Print the models of a radio document", run: runShow,
			flags: func(fs *pflag.FlagSet) { fs.Bool("all", false, "Also list empty model slots") }},
		{name: "serve", args: "<file>", help: "Serve a radio document over HTTP", run: runServe,
			flags: func(fs *pflag.FlagSet) { fs.String("listen", ":9080", "Address to listen on") }},
		{name: "detect", help: "Identify the radio on the serial port", run: runDetect,
			flags: func(fs *pflag.FlagSet) {
				fs.Duration("timeout", 5*time.Second, "How long to wait for the radio")
				fs.String("calibration", "", "Read the radio calibration into this document")
			}},
	}
}

type app struct {
	cfg      store.Config
	registry *firmware.Registry
}

func (a *app) firmware(id string) (*firmware.Firmware, error) {
	if id == "" {
		id = a.cfg.Firmware
	}
	if id == "" {
		return a.registry.Default(), nil
	}
	if fw, ok := a.registry.Find(id); ok {
		return fw, nil
	}
	return nil, fmt.Errorf("unknown firmware %q", id)
}

// save writes doc to path, keeping a timestamped copy of the file it
// replaces.
func (a *app) save(doc *store.Document, path string) error {
	backup, err := store.Backup(path, a.cfg.Backup, time.Now())
	if err != nil {
		return err
	}
	if backup != "" {
		logger.Infof("Previous %s kept as %s", path, backup)
	}
	return doc.Save(path)
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: nova-companion [options] <command> [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %-12s %s\n", c.name, c.args, c.help)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	global.SetOutput(w)
	global.PrintDefaults()
}

func run(args []string, out io.Writer) error {
	global := pflag.NewFlagSet("nova-companion", pflag.ContinueOnError)
	global.SetInterspersed(false)
	configPath := global.StringP("config", "c", "", "Configuration file")
	fwID := global.StringP("firmware", "f", "", "Firmware id (see the firmwares command)")
	portName := global.StringP("port", "p", "", "Serial port")
	baud := global.IntP("baud", "b", 0, "Serial port speed")
	logLevel := global.StringP("log-level", "l", "", "Log level (trace, debug, info, warn, error)")
	help := global.BoolP("help", "h", false, "Display help text.")
	global.SetOutput(io.Discard)

	if err := global.Parse(args); err != nil {
		usage(out, global)
		return err
	}
	if *help || global.NArg() == 0 {
		usage(out, global)
		return errUsage
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *fwID != "" {
		cfg.Firmware = *fwID
	}
	if *portName != "" {
		cfg.Port = *portName
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := initLogger(cfg.LogLevel); err != nil {
		return err
	}
	pterm.SetDefaultOutput(out)

	name := global.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		fs := pflag.NewFlagSet(c.name, pflag.ContinueOnError)
		fs.SetOutput(out)
		if c.flags != nil {
			c.flags(fs)
		}
		if err := fs.Parse(global.Args()[1:]); err != nil {
			return err
		}
		a := &app{cfg: cfg, registry: firmware.DefaultRegistry()}
		return c.run(a, fs, fs.Args())
	}
	usage(out, global)
	return fmt.Errorf("unknown command %q", name)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, pflag.ErrHelp) {
			logger.Error(err)
		}
		os.Exit(1)
	}
}

func runFirmwares(a *app, _ *pflag.FlagSet, _ []string) error {
	data := pterm.TableData{{"ID", "Name", "Board", "Options"}}
	def := a.registry.Default()
	for _, fw := range a.registry.Firmwares() {
		id := fw.ID()
		if fw == def {
			id += " *"
		}
		var opts []string
		for _, group := range fw.Options() {
			for _, o := range group {
				opts = append(opts, o.Name)
			}
		}
		data = append(data, []string{id, fw.Name(), fw.Board().Name(), fmt.Sprint(opts)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runCaps(a *app, _ *pflag.FlagSet, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	fw, err := a.firmware(id)
	if err != nil {
		return err
	}
	pterm.DefaultSection.Println(fw.Name())
	data := pterm.TableData{{"Capability", "Value"}}
	for _, c := range firmware.Capabilities() {
		data = append(data, []string{c.String(), strconv.Itoa(fw.Capability(c))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runNew(a *app, fs *pflag.FlagSet, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("new: exactly one file argument required")
	}
	fw, err := a.firmware("")
	if err != nil {
		return err
	}
	slots, _ := fs.GetInt("slots")
	if slots <= 0 {
		slots = a.cfg.Slots
	}
	doc := store.NewDocument(fw, &a.cfg.Profile, slots)
	if err := a.save(doc, args[0]); err != nil {
		return err
	}
	logger.Infof("Created %s for %s with %d model slots", args[0], fw.ID(), slots)
	return nil
}

func runShow(a *app, fs *pflag.FlagSet, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show: exactly one file argument required")
	}
	doc, err := store.Load(args[0])
	if err != nil {
		return err
	}
	fw, err := doc.ResolveFirmware(a.registry)
	if err != nil {
		return err
	}
	all, _ := fs.GetBool("all")

	pterm.DefaultHeader.WithFullWidth().Println(fmt.Sprintf("%s (%s)", args[0], fw.Name()))
	for i := range doc.Models {
		m := &doc.Models[i]
		if m.IsEmpty() && !all {
			continue
		}
		if err := showModel(fw, i, m, &doc.Settings); err != nil {
			return err
		}
	}
	return nil
}

func showModel(fw *firmware.Firmware, slot int, m *model.ModelData, settings *model.GeneralSettings) error {
	pterm.DefaultSection.Printf("%02d %s\n", slot+1, m.Name)
	if m.IsEmpty() {
		pterm.Info.Println("empty")
		return nil
	}

	if inputs := m.Inputs(); len(inputs) > 0 {
		data := pterm.TableData{{"Input", "Source", "Weight", "Curve", "Switch"}}
		for _, e := range inputs {
			input := raw.NewSource(raw.SourceVirtualInput, e.Chn)
			data = append(data, []string{
				input.Label(fw, m),
				e.SrcRaw.Label(fw, m),
				weightString(e.Weight),
				e.Curve.String(),
				switchString(fw, e.Swtch),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	data := pterm.TableData{{"Channel", "Source", "Weight", "Offset", "Curve", "Switch"}}
	for _, mix := range m.Mixes() {
		data = append(data, []string{
			raw.NewSource(raw.SourceCh, mix.DestCh-1).Label(fw, m),
			mix.SrcRaw.Label(fw, m),
			weightString(mix.Weight),
			weightString(mix.SOffset),
			mix.Curve.String(),
			switchString(fw, mix.Swtch),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	if err := showLogicalSwitches(fw, m, settings); err != nil {
		return err
	}
	return showGVars(fw, m)
}

func showLogicalSwitches(fw *firmware.Firmware, m *model.ModelData, settings *model.GeneralSettings) error {
	data := pterm.TableData{{"Switch", "Function", "V1", "V2"}}
	for i := range m.LogicalSw {
		ls := &m.LogicalSw[i]
		if ls.IsEmpty() {
			continue
		}
		label := raw.NewSwitch(raw.SwitchVirtual, i+1).Label(fw)
		var v1, v2 string
		switch ls.FunctionFamily() {
		case model.LsFamilyVOfs:
			src := raw.SourceFromValue(ls.Val1)
			rng := src.Range(fw, m, settings, ls.RangeFlags())
			v1 = src.Label(fw, m)
			v2 = strconv.FormatFloat(rng.Value(fw, ls.Val2), 'f', rng.Decimals, 64) + rng.Unit
		case model.LsFamilyVBool:
			v1 = raw.SwitchFromValue(ls.Val1).Label(fw)
			v2 = raw.SwitchFromValue(ls.Val2).Label(fw)
		case model.LsFamilyVComp:
			v1 = raw.SourceFromValue(ls.Val1).Label(fw, m)
			v2 = raw.SourceFromValue(ls.Val2).Label(fw, m)
		default:
			v1 = strconv.Itoa(ls.Val1)
			v2 = strconv.Itoa(ls.Val2)
		}
		data = append(data, []string{label, ls.FuncString(), v1, v2})
	}
	if len(data) == 1 {
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func showGVars(fw *firmware.Firmware, m *model.ModelData) error {
	gvars := fw.Capability(firmware.Gvars)
	modes := fw.Capability(firmware.FlightModes)
	if gvars == 0 || modes == 0 {
		return nil
	}
	if gvars > model.MaxGvars {
		gvars = model.MaxGvars
	}
	if modes > model.MaxFlightModes {
		modes = model.MaxFlightModes
	}

	header := []string{"Mode"}
	for g := 0; g < gvars; g++ {
		header = append(header, raw.NewSource(raw.SourceGvar, g).Label(fw, m))
	}
	data := pterm.TableData{header}
	for phase := 0; phase < modes; phase++ {
		row := []string{raw.NewSwitch(raw.SwitchFlightMode, phase+1).Label(fw)}
		for g := 0; g < gvars; g++ {
			v := strconv.Itoa(m.GVarValue(phase, g))
			if m.IsGVarLinked(phase, g) {
				v += "*"
			}
			row = append(row, v)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func weightString(v int) string {
	return raw.GVarString(v, false)
}

func switchString(fw *firmware.Firmware, s raw.Switch) string {
	if s.Type == raw.SwitchNone {
		return ""
	}
	return s.Label(fw)
}

func runServe(a *app, fs *pflag.FlagSet, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("serve: exactly one file argument required")
	}
	doc, err := store.Load(args[0])
	if err != nil {
		return err
	}
	s, err := api.New(a.registry, doc, logger)
	if err != nil {
		return err
	}
	addr, _ := fs.GetString("listen")
	logger.Infof("Serving %s on %s", args[0], addr)
	return http.ListenAndServe(addr, s.Router())
}

func runDetect(a *app, fs *pflag.FlagSet, _ []string) error {
	if a.cfg.Port == "" {
		return fmt.Errorf("detect: no serial port, use --port or set port in the configuration")
	}
	timeout, _ := fs.GetDuration("timeout")
	calibration, _ := fs.GetString("calibration")

	port, err := radio.OpenSerial(a.cfg.Port, a.cfg.Baud)
	if err != nil {
		return fmt.Errorf("can't open port (%w)", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	r, id, err := radio.Connect(ctx, port, nil, logger)
	if err != nil {
		_ = port.Close()
		return err
	}
	defer r.Close()
	fw, err := id.Firmware(a.registry)
	if err != nil {
		return err
	}

	info := [][]string{
		{"Firmware", fw.ID()},
		{"Variant", id.Variant},
		{"Version", fmt.Sprintf("%d.%d.%d", id.VersionMajor, id.VersionMinor, id.VersionPatch)},
		{"Board", fmt.Sprintf("%s (%s)", fw.Board().Name(), id.BoardID)},
		{"Build", fmt.Sprintf("%s (built on %s @ %s)", id.Build.Revision, id.Build.Date, id.Build.Time)},
		{"Protocol", fmt.Sprintf("%d.%d.%d", id.APIProtocol, id.APIMajor, id.APIMinor)},
	}
	if id.TargetName != "" {
		info = append(info, []string{"Target", id.TargetName})
	}
	if err := pterm.DefaultTable.WithData(info).Render(); err != nil {
		return err
	}

	if calibration == "" {
		return nil
	}
	doc, err := store.Load(calibration)
	if errors.Is(err, os.ErrNotExist) {
		doc = store.NewDocument(fw, &a.cfg.Profile, a.cfg.Slots)
	} else if err != nil {
		return err
	}
	if doc.Firmware != fw.ID() {
		logger.Warnf("%s was made for %s, the radio runs %s", calibration, doc.Firmware, fw.ID())
	}
	if err := r.ReadCalibration(ctx, &doc.Settings); err != nil {
		return fmt.Errorf("reading calibration: %w", err)
	}
	if err := a.save(doc, calibration); err != nil {
		return err
	}
	logger.Infof("Calibration saved to %s", calibration)
	return nil
}
