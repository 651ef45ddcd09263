// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"clklib/pkg/board"
	"clklib/pkg/clk"
	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

var Version = "1.0.0"

// This variable is filled in during the linker step - -ldflags "-X main.buildTime=`date -u '+%Y-%m-%dT%H:%M:%S'`"
var buildTime = ""

var helptxt = `
clk-util is a command line tool to inspect and drive the clock controllers of a MediaTek SoC.

Usage:
./clk-util [--version] [--help] [--board=FILE | --dtb=FILE | --sim] [--init] [--chip=NAME] [--list] [--rate=REF] [--path=REF]
           [--enable=REF] [--disable=REF] [--select=REF,IDX] [--set-rate=REF,HZ] [--measure=METER,SEL]
           [--bundle=NAME] [--verbosity=0]

Which:
	version            : Print the version of this application and exit
	help               : Print the help text and exit
	board=FILE         : Read the controller blocks from a YAML board description
	dtb=FILE           : Read the controller blocks from a flattened devicetree blob
	sim                : Use simulated registers instead of /dev/mem
	init               : Run the boot probe: PLL and mux defaults, gate boot policy, chip fixups.
	                     Without it the blocks are attached as they are; --sim always probes
	chip=NAME          : Chip simulated when --sim is used without --board or --dtb
	list               : List every clock with its parent, rate and state
	rate=REF           : Print the rate of a clock
	path=REF           : Print the parent chain of a clock
	enable=REF         : Enable a clock and every gateable clock above it
	disable=REF        : Disable a clock
	select=REF,IDX     : Select candidate IDX of a topckgen mux
	set-rate=REF,HZ    : Program a PLL
	measure=METER,SEL  : Measure an input of the frequency meter, METER is ckgen or abist
	bundle=NAME        : Enable the clocks and pulse the resets of a peripheral
	verbosity          : Set the log level verbosity, where 0 is no longing and 4 is very verbose

REF is namespace:name or namespace:id, for example topckgen:axi_sel or pciesys:3. xtal and xtal2 name the crystals.
`

const (
	DefaultVerbosity = "0"      // Default log level
	DefaultChip      = "mt7622" // Default simulated chip
)

type Settings struct {
	Version   bool   // Print the version of this application and exit if true
	Verbosity string // The log level verbosity, where 0 is no longing and 4 is very verbose
	Help      bool   // Print the help text and exit
	Board     string // YAML board description
	DTB       string // Flattened devicetree blob
	Sim       bool   // Use simulated registers
	Init      bool   // Run the boot probe instead of attaching to the current register state
	Chip      string // Simulated chip
	List      bool   // List every clock
	Rate      string // Print the rate of a clock
	Path      string // Print the parent chain of a clock
	Enable    string // Enable a clock
	Disable   string // Disable a clock
	Select    string // Select a mux candidate
	SetRate   string // Program a PLL
	Measure   string // Measure a frequency meter input
	Bundle    string // Enable a peripheral bundle
}

// InitContext: initialize the configuration data using command line args
func (s *Settings) InitContext(args []string, ctx context.Context) (context.Context, error) {

	newContext := ctx

	flags := flag.NewFlagSet(args[0], flag.ExitOnError)

	var (
		version   = flags.Bool("version", false, "Display version and exit")
		verbosity = flags.String("verbosity", DefaultVerbosity, "Log level verbosity")
		help      = flags.Bool("help", false, "Print the help text")
		boardFile = flags.String("board", "", "YAML board description")
		dtb       = flags.String("dtb", "", "Flattened devicetree blob")
		sim       = flags.Bool("sim", false, "Use simulated registers")
		initBoard = flags.Bool("init", false, "Run the boot probe on the board")
		chip      = flags.String("chip", DefaultChip, "Chip simulated when no board is given")
		list      = flags.Bool("list", false, "List every clock")
		rate      = flags.String("rate", "", "Print the rate of a clock")
		path      = flags.String("path", "", "Print the parent chain of a clock")
		enable    = flags.String("enable", "", "Enable a clock and its gateable ancestors")
		disable   = flags.String("disable", "", "Disable a clock")
		sel       = flags.String("select", "", "Select candidate IDX of a mux: REF,IDX")
		setRate   = flags.String("set-rate", "", "Program a PLL: REF,HZ")
		measure   = flags.String("measure", "", "Measure a frequency meter input: ckgen|abist,SEL")
		bundle    = flags.String("bundle", "", "Enable a peripheral bundle")
	)

	err := flags.Parse(args[1:])
	if err != nil {
		return newContext, err
	}

	// Update the configuration object with the parsed values
	s.Version = *version
	s.Verbosity = *verbosity
	s.Help = *help
	s.Board = *boardFile
	s.DTB = *dtb
	s.Sim = *sim
	s.Init = *initBoard
	s.Chip = *chip
	s.List = *list
	s.Rate = *rate
	s.Path = *path
	s.Enable = *enable
	s.Disable = *disable
	s.Select = *sel
	s.SetRate = *setRate
	s.Measure = *measure
	s.Bundle = *bundle

	if len(args) == 1 {
		s.Help = true
	}
	if s.Board != "" && s.DTB != "" {
		return newContext, errors.New("--board and --dtb are exclusive")
	}
	if s.Board == "" && s.DTB == "" && !s.Sim {
		s.Help = true
	}

	return newContext, nil
}

func PrintTableToStdout(table any, prefix, indent string) {
	s, _ := json.MarshalIndent(table, prefix, indent)
	fmt.Print(string(s), "\n")
}

func loadConfig(s *Settings) (*board.Config, error) {
	switch {
	case s.Board != "":
		return board.LoadConfig(s.Board)
	case s.DTB != "":
		b, err := os.ReadFile(s.DTB)
		if err != nil {
			return nil, err
		}
		return board.ParseDTB(b)
	}
	return board.SimConfig(s.Chip)
}

// splitArg splits "REF,N" into the clock reference and the number.
func splitArg(t *clk.Tree, arg string) (clk.Ref, uint64, error) {
	refStr, numStr, ok := strings.Cut(arg, ",")
	if !ok {
		return clk.None, 0, fmt.Errorf("%q: expected REF,NUMBER", arg)
	}
	r, err := t.ParseRef(refStr)
	if err != nil {
		return clk.None, 0, err
	}
	n, err := strconv.ParseUint(numStr, 0, 64)
	if err != nil {
		return clk.None, 0, fmt.Errorf("%q: %w", arg, err)
	}
	return r, n, nil
}

func printList(sys *clk.System) {
	t := sys.Tree()
	prFmt := "%-28s | %-7s | %-28s | %14s | %s\n"
	fmt.Printf(prFmt, "CLOCK", "KIND", "PARENT", "RATE", "STATE")
	for _, ns := range t.Namespaces() {
		h, herr := sys.Handle(ns)
		for id := 0; id < t.Size(ns); id++ {
			r := clk.Ref{NS: ns, ID: id}
			n, err := t.Lookup(r)
			if err != nil {
				continue
			}
			name := string(ns) + ":" + n.Label()
			parent := "-"
			if p, err := sys.ParentOf(r); err == nil && !p.IsNone() {
				if pn, err := t.Lookup(p); err == nil {
					parent = string(p.NS) + ":" + pn.Label()
				}
			} else if err != nil {
				parent = "?"
			}
			rate := "-"
			if v, err := sys.Rate(r); err == nil {
				rate = strconv.FormatUint(v, 10)
			}
			state := "-"
			if herr == nil {
				if on, err := h.IsEnabled(id); err == nil {
					state = map[bool]string{true: "on", false: "off"}[on]
				}
			} else {
				state = "unbound"
			}
			fmt.Printf(prFmt, name, n.Kind(), parent, rate, state)
		}
	}
}

func printPath(sys *clk.System, r clk.Ref) error {
	path, err := sys.Path(r)
	if err != nil {
		return err
	}
	for i, p := range path {
		n, err := sys.Tree().Lookup(p)
		if err != nil {
			return err
		}
		rate := "?"
		if v, err := sys.Rate(p); err == nil {
			rate = strconv.FormatUint(v, 10)
		}
		fmt.Printf("%*s%v (%s) %s Hz\n", 2*i, "", p, n.Label(), rate)
	}
	return nil
}

func run(s *Settings) error {
	cfg, err := loadConfig(s)
	if err != nil {
		return err
	}
	var mapper board.Mapper = board.PhysMapper
	if s.Sim {
		p, ok := board.Platforms[cfg.Chip]
		if !ok {
			return fmt.Errorf("%w: %q", board.ErrUnknownChip, cfg.Chip)
		}
		mapper = board.SimMapper(p.Chip.Tree, nil)
	}
	open := board.Attach
	if s.Sim || s.Init {
		open = board.Probe
	}
	b, err := open(cfg, mapper)
	if err != nil {
		return err
	}
	defer b.Close()
	sys := b.Sys
	t := sys.Tree()

	if s.SetRate != "" {
		r, hz, err := splitArg(t, s.SetRate)
		if err != nil {
			return err
		}
		h, err := sys.Handle(r.NS)
		if err != nil {
			return err
		}
		if err := h.SetPLLRate(r.ID, hz); err != nil {
			return err
		}
	}

	if s.Select != "" {
		r, idx, err := splitArg(t, s.Select)
		if err != nil {
			return err
		}
		h, err := sys.Handle(r.NS)
		if err != nil {
			return err
		}
		if err := h.SelectMuxParent(r.ID, int(idx)); err != nil {
			return err
		}
	}

	if s.Enable != "" {
		r, err := t.ParseRef(s.Enable)
		if err != nil {
			return err
		}
		if err := sys.EnablePath(r); err != nil {
			return err
		}
	}

	if s.Disable != "" {
		r, err := t.ParseRef(s.Disable)
		if err != nil {
			return err
		}
		if err := sys.Disable(r); err != nil {
			return err
		}
	}

	if s.Bundle != "" {
		bundle, err := b.Bundle(s.Bundle)
		if err != nil {
			return err
		}
		if err := bundle.Enable(); err != nil {
			return err
		}
		rates, err := bundle.Rates()
		if err != nil {
			return err
		}
		fmt.Printf("Bundle %s enabled\n", bundle.Name())
		PrintTableToStdout(rates, "", "  ")
	}

	if s.Rate != "" {
		r, err := t.ParseRef(s.Rate)
		if err != nil {
			return err
		}
		rate, err := sys.Rate(r)
		if err != nil {
			return err
		}
		fmt.Printf("%v: %d Hz\n", r, rate)
	}

	if s.Path != "" {
		r, err := t.ParseRef(s.Path)
		if err != nil {
			return err
		}
		if err := printPath(sys, r); err != nil {
			return err
		}
	}

	if s.Measure != "" {
		meterStr, selStr, ok := strings.Cut(s.Measure, ",")
		if !ok {
			return fmt.Errorf("%q: expected METER,SEL", s.Measure)
		}
		m := clk.MeterCKGEN
		switch strings.ToLower(meterStr) {
		case "ckgen":
		case "abist":
			m = clk.MeterABIST
		default:
			return fmt.Errorf("unknown meter %q", meterStr)
		}
		sel, err := strconv.ParseUint(selStr, 0, 32)
		if err != nil {
			return err
		}
		h, err := sys.Handle(clk.NSTopckgen)
		if err != nil {
			return err
		}
		khz, err := h.Measure(m, uint32(sel))
		if err != nil {
			return err
		}
		fmt.Printf("%v input %d: %d kHz\n", m, sel, khz)
	}

	if s.List {
		printList(sys)
	}
	return nil
}

func main() {

	// Extract settings and initialize context using command line args or defaults
	settings := Settings{}
	ctx := context.Background()
	_, err := settings.InitContext(os.Args, ctx)

	if err != nil {
		fmt.Printf("ERROR: parsing parameters, err=%v\n", err)
		os.Exit(1)
	}

	// Set verbosity level according to the 'verbosity' flag
	var l klog.Level
	l.Set(settings.Verbosity)

	// clk-util banner
	args := strings.Join(os.Args[1:], " ")
	klog.V(regs.DBG_LVL_BASIC).InfoS("clk-util", "args", args)
	klog.V(regs.DBG_LVL_INFO).InfoS("clk-util", "settings", settings)

	if settings.Version {
		fmt.Println("[] clk-util", "version", Version, "build", buildTime)
		os.Exit(0)
	}

	if settings.Help {
		fmt.Print(helptxt)
		os.Exit(0)
	}

	if err := run(&settings); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}
