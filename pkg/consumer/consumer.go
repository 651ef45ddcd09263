// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// Package consumer brings up the clocks and reset lines a peripheral driver needs, as one unit.
package consumer

import (
	"fmt"
	"time"

	"clklib/pkg/clk"
	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

const RESET_HOLD = 100 * time.Microsecond

type ClockProvider interface {
	Enable(r clk.Ref) error
	Disable(r clk.Ref) error
	Rate(r clk.Ref) (uint64, error)
}

type ResetProvider interface {
	Request(id int) error
	Assert(id int) error
	Deassert(id int) error
}

// Clock is a named clock input of a peripheral.
type Clock struct {
	Name string
	Ref  clk.Ref
}

// Desc lists a peripheral's clocks in enable order and the reset lines pulsed after them.
type Desc struct {
	Name    string
	Clocks  []Clock
	ResetNS clk.Namespace
	Resets  []int
}

type Bundle struct {
	desc   Desc
	clocks ClockProvider
	resets ResetProvider

	// Delay holds the reset lines asserted. Tests replace it.
	Delay func(time.Duration)
}

// New checks the reset lines of desc and returns its bundle. resets may be nil for peripherals without reset lines.
func New(desc Desc, clocks ClockProvider, resets ResetProvider) (*Bundle, error) {
	if len(desc.Resets) > 0 {
		if resets == nil {
			return nil, fmt.Errorf("%s: no %s reset controller: %w", desc.Name, desc.ResetNS, clk.ErrResourceUnavailable)
		}
		for _, id := range desc.Resets {
			if err := resets.Request(id); err != nil {
				return nil, fmt.Errorf("%s: %w", desc.Name, err)
			}
		}
	}
	return &Bundle{desc: desc, clocks: clocks, resets: resets, Delay: time.Sleep}, nil
}

func (b *Bundle) Name() string { return b.desc.Name }

func (b *Bundle) delay() {
	if b.Delay != nil {
		b.Delay(RESET_HOLD)
	}
}

// Enable enables every clock in order then pulses the reset lines.
// On failure every clock of the bundle is disabled again.
func (b *Bundle) Enable() error {
	klog.V(regs.DBG_LVL_BASIC).InfoS("consumer.Bundle.Enable", "name", b.desc.Name, "clocks", len(b.desc.Clocks), "resets", len(b.desc.Resets))
	for _, c := range b.desc.Clocks {
		if err := b.clocks.Enable(c.Ref); err != nil {
			b.disableAll()
			return fmt.Errorf("%s: enable %s: %w", b.desc.Name, c.Name, err)
		}
	}
	if len(b.desc.Resets) == 0 {
		return nil
	}
	if err := b.pulse(); err != nil {
		b.disableAll()
		return fmt.Errorf("%s: %w", b.desc.Name, err)
	}
	return nil
}

func (b *Bundle) pulse() error {
	for _, id := range b.desc.Resets {
		if err := b.resets.Assert(id); err != nil {
			return err
		}
	}
	b.delay()
	for _, id := range b.desc.Resets {
		if err := b.resets.Deassert(id); err != nil {
			return err
		}
	}
	b.delay()
	return nil
}

// Disable disables every clock of the bundle and reports the first failure.
func (b *Bundle) Disable() error {
	klog.V(regs.DBG_LVL_BASIC).InfoS("consumer.Bundle.Disable", "name", b.desc.Name)
	return b.disableAll()
}

func (b *Bundle) disableAll() error {
	var first error
	for _, c := range b.desc.Clocks {
		if err := b.clocks.Disable(c.Ref); err != nil {
			klog.ErrorS(err, "consumer.Bundle.disableAll", "name", b.desc.Name, "clock", c.Name)
			if first == nil {
				first = fmt.Errorf("%s: disable %s: %w", b.desc.Name, c.Name, err)
			}
		}
	}
	return first
}

// Rates returns the current rate of each clock by name.
func (b *Bundle) Rates() (map[string]uint64, error) {
	out := make(map[string]uint64, len(b.desc.Clocks))
	for _, c := range b.desc.Clocks {
		rate, err := b.clocks.Rate(c.Ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", b.desc.Name, c.Name, err)
		}
		out[c.Name] = rate
	}
	return out, nil
}
