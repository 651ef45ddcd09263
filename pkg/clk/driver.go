// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import (
	"clklib/pkg/regs"
)

// Driver binds a devicetree compatible string to the probe routine of one controller block.
type Driver struct {
	Compatible string
	// NS is the clock namespace the block provides, NSNone for blocks without clocks.
	NS    Namespace
	Probe func(s *System, w regs.Window) error
	// ResetRegs is the number of 32 bit reset registers at ResetOfs, zero when the block has none.
	ResetOfs  uint32
	ResetRegs int
}

// Chip is a tree and the drivers of its blocks, in probe order.
type Chip struct {
	Name    string
	Tree    *Tree
	Drivers []Driver
}

// Driver returns the driver matching compatible.
func (c *Chip) Driver(compatible string) (*Driver, bool) {
	for i := range c.Drivers {
		if c.Drivers[i].Compatible == compatible {
			return &c.Drivers[i], true
		}
	}
	return nil, false
}

// NewSimBlock returns a simulated register block for ns whose set and clear gate
// registers strobe their status registers.
func NewSimBlock(t *Tree, ns Namespace) *regs.Sim {
	s := regs.NewSim()
	for _, g := range t.Gates[ns] {
		switch g.Conv {
		case GateSetClr, GateSetClrInv:
			if g.Regs.Set != g.Regs.Sta {
				s.Strobe(g.Regs.Set, g.Regs.Sta, true)
			}
			if g.Regs.Clr != g.Regs.Sta {
				s.Strobe(g.Regs.Clr, g.Regs.Sta, false)
			}
		}
	}
	return s
}
