// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// Package board probes the clock and reset controllers of a board and hands out consumer bundles.
package board

import (
	"fmt"
	"io"
	"sort"

	"clklib/pkg/clk"
	"clklib/pkg/clk/mt7622"
	"clklib/pkg/consumer"
	"clklib/pkg/regs"
	"clklib/pkg/reset"

	"k8s.io/klog/v2"
)

// Platform is a supported chip with the peripheral bundles its drivers use.
type Platform struct {
	Compatible string
	Chip       *clk.Chip
	Consumers  map[string]consumer.Desc
}

var Platforms = map[string]*Platform{
	"mt7622": {Compatible: "mediatek,mt7622", Chip: mt7622.Chip, Consumers: mt7622.Consumers},
}

// PlatformFor returns the platform whose root compatible string is compatible, or nil.
func PlatformFor(compatible string) *Platform {
	for _, p := range Platforms {
		if p.Compatible == compatible {
			return p
		}
	}
	return nil
}

// SIM_BASE is where SimConfig places the first block. Each following block is one SIM_STRIDE above.
const SIM_BASE = 0x10000000
const SIM_STRIDE = 0x10000

// SimConfig returns a board with one instance of every block of chip, for use with SimMapper.
func SimConfig(chip string) (*Config, error) {
	p, ok := Platforms[chip]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChip, chip)
	}
	cfg := &Config{Chip: chip}
	for i, d := range p.Chip.Drivers {
		cfg.Instances = append(cfg.Instances, Instance{
			Compatible: d.Compatible,
			Base:       SIM_BASE + uint64(i)*SIM_STRIDE,
			Size:       regs.PAGE_SIZE,
		})
	}
	return cfg, nil
}

// Mapper returns the register window of one instance. ns is the namespace its driver provides.
type Mapper func(inst Instance, ns clk.Namespace) (regs.Window, error)

// PhysMapper maps instances from /dev/mem.
func PhysMapper(inst Instance, ns clk.Namespace) (regs.Window, error) {
	size := inst.Size
	if size == 0 {
		size = regs.PAGE_SIZE
	}
	return regs.MapPhys(uintptr(inst.Base), int(size))
}

// SimMapper backs every instance with a simulated block, recorded in sims by compatible string.
func SimMapper(t *clk.Tree, sims map[string]*regs.Sim) Mapper {
	return func(inst Instance, ns clk.Namespace) (regs.Window, error) {
		s := clk.NewSimBlock(t, ns)
		if sims != nil {
			sims[inst.Compatible] = s
		}
		return s, nil
	}
}

type Board struct {
	Platform *Platform
	Sys      *clk.System

	windows map[string]regs.Window
	resets  map[clk.Namespace]*reset.Controller
}

// Probe maps and initializes every block of cfg, in the chip's driver order. The apmixedsys and
// topckgen blocks are required; other blocks absent from cfg are skipped.
func Probe(cfg *Config, m Mapper) (*Board, error) {
	return setup(cfg, m, true)
}

// Attach maps every block of cfg and binds it to its current register state. Unlike Probe it
// writes no register: no boot defaults, no gate boot policy and no chip fixups.
func Attach(cfg *Config, m Mapper) (*Board, error) {
	return setup(cfg, m, false)
}

func setup(cfg *Config, m Mapper, init bool) (*Board, error) {
	p, ok := Platforms[cfg.Chip]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChip, cfg.Chip)
	}
	klog.V(regs.DBG_LVL_BASIC).InfoS("board.setup", "chip", cfg.Chip, "instances", len(cfg.Instances), "init", init)

	tree := p.Chip.Tree
	if cfg.XtalRate != 0 && cfg.XtalRate != tree.XtalRate {
		t := *tree
		t.XtalRate = cfg.XtalRate
		t.Xtal2Rate = cfg.XtalRate
		tree = &t
	}
	sys, err := clk.NewSystem(tree)
	if err != nil {
		return nil, err
	}

	b := &Board{
		Platform: p,
		Sys:      sys,
		windows:  map[string]regs.Window{},
		resets:   map[clk.Namespace]*reset.Controller{},
	}
	for _, inst := range cfg.Instances {
		if _, ok := p.Chip.Driver(inst.Compatible); !ok {
			klog.V(regs.DBG_LVL_INFO).InfoS("board.setup: no driver", "compatible", inst.Compatible)
		}
	}

	for i := range p.Chip.Drivers {
		d := &p.Chip.Drivers[i]
		inst, ok := cfg.Instance(d.Compatible)
		if !ok {
			if d.NS == clk.NSApmixed || d.NS == clk.NSTopckgen {
				b.Close()
				return nil, fmt.Errorf("%s: no instance: %w", d.Compatible, clk.ErrResourceUnavailable)
			}
			klog.V(regs.DBG_LVL_INFO).InfoS("board.setup: skipped", "compatible", d.Compatible)
			continue
		}
		if err := b.probe(d, inst, m, init); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) probe(d *clk.Driver, inst Instance, m Mapper, init bool) error {
	if inst.Base == 0 {
		return fmt.Errorf("%s: no register base: %w", d.Compatible, clk.ErrResourceUnavailable)
	}
	w, err := m(inst, d.NS)
	if err != nil {
		return fmt.Errorf("%s: %w", d.Compatible, err)
	}
	b.windows[d.Compatible] = w
	klog.V(regs.DBG_LVL_BASIC).InfoS("board.probe", "compatible", d.Compatible, "ns", d.NS, "base", regs.Hex(inst.Base), "init", init)

	switch {
	case init:
		err = d.Probe(b.Sys, w)
	case d.NS != clk.NSNone:
		_, err = b.Sys.Bind(d.NS, w)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", d.Compatible, err)
	}
	if d.ResetRegs > 0 {
		b.resets[d.NS] = reset.New(string(d.NS), w, d.ResetOfs, d.ResetRegs)
	}
	return nil
}

// Window returns the register window of the block with the given compatible string.
func (b *Board) Window(compatible string) (regs.Window, bool) {
	w, ok := b.windows[compatible]
	return w, ok
}

// Reset returns the reset controller of ns.
func (b *Board) Reset(ns clk.Namespace) (*reset.Controller, error) {
	c, ok := b.resets[ns]
	if !ok {
		return nil, fmt.Errorf("%s reset controller: %w", ns, clk.ErrResourceUnavailable)
	}
	return c, nil
}

// Consumers returns the names of the platform's peripheral bundles, sorted.
func (b *Board) Consumers() []string {
	names := make([]string, 0, len(b.Platform.Consumers))
	for n := range b.Platform.Consumers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bundle returns the named peripheral bundle bound to the board's clocks and resets.
func (b *Board) Bundle(name string) (*consumer.Bundle, error) {
	desc, ok := b.Platform.Consumers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConsumer, name)
	}
	var resets consumer.ResetProvider
	if c, ok := b.resets[desc.ResetNS]; ok {
		resets = c
	}
	return consumer.New(desc, b.Sys, resets)
}

// Close releases the register windows that hold a mapping.
func (b *Board) Close() error {
	var first error
	for compat, w := range b.windows {
		if c, ok := w.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = fmt.Errorf("%s: %w", compat, err)
			}
		}
	}
	b.windows = map[string]regs.Window{}
	return first
}
