// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements the gate register conventions.
package clk

import (
	"fmt"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

func (h *Handle) setGate(g *Gate, on bool) error {
	bit := uint32(1) << g.Shift
	switch g.Conv {
	case GateSetClr:
		if on {
			h.regs.Write32(g.Regs.Set, bit)
		} else {
			h.regs.Write32(g.Regs.Clr, bit)
		}
	case GateSetClrInv:
		if on {
			h.regs.Write32(g.Regs.Clr, bit)
		} else {
			h.regs.Write32(g.Regs.Set, bit)
		}
	case GateDirect:
		if on {
			regs.ClrBits(h.regs, g.Regs.Sta, bit)
		} else {
			regs.SetBits(h.regs, g.Regs.Sta, bit)
		}
	case GateDirectInv:
		if on {
			regs.SetBits(h.regs, g.Regs.Sta, bit)
		} else {
			regs.ClrBits(h.regs, g.Regs.Sta, bit)
		}
	}
	if !h.poll.Wait(func() bool { return h.gateRunning(g) == on }) {
		klog.ErrorS(ErrHardwareNotReady, "clk.setGate: status did not follow", "gate", g.Name, "on", on, "sta", regs.Hex(h.regs.Read32(g.Regs.Sta)))
		return fmt.Errorf("%s gate %s: status did not reach on=%v: %w", h.ns, g.Name, on, ErrHardwareNotReady)
	}
	return nil
}

func (h *Handle) gateRunning(g *Gate) bool {
	set := h.regs.Read32(g.Regs.Sta)&(uint32(1)<<g.Shift) != 0
	switch g.Conv {
	case GateSetClrInv, GateDirect:
		return !set
	}
	return set
}

// IsEnabled reports whether gate id is running according to its status register.
func (h *Handle) IsEnabled(id int) (bool, error) {
	if h.ns == NSApmixed {
		p, err := h.sys.tree.pll(id)
		if err != nil {
			return false, err
		}
		return h.regs.Read32(p.Reg)&p.EnMask != 0, nil
	}
	if h.ns == NSTopckgen {
		m, err := h.sys.tree.mux(id)
		if err != nil {
			return false, err
		}
		if m.GateShift < 0 {
			return true, nil
		}
		return h.regs.Read32(m.Reg)&(uint32(1)<<m.GateShift) == 0, nil
	}
	g, err := h.gate(id)
	if err != nil {
		return false, err
	}
	return h.gateRunning(g), nil
}
