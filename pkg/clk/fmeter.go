// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements the topckgen frequency meter.
package clk

import (
	"fmt"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

const FMETER_EN = 1 << 7
const FMETER_CKGEN_CLK_EXC = 1 << 5
const FMETER_CKGEN_TRI_CAL = 1 << 4
const FMETER_ABIST_CLK_EXC = 1 << 2
const FMETER_ABIST_TRI_CAL = 1 << 0
const FMETER_WINDOW = 1023 // reference cycles per count
const FMETER_DIV = 0       // k1: the measured clock is divided by k1+1

// Meter selects one of the frequency meter inputs.
type Meter int

const (
	MeterABIST Meter = iota
	MeterCKGEN
)

func (m Meter) String() string {
	if m == MeterABIST {
		return "abist"
	}
	return "ckgen"
}

func (h *Handle) fmeterRegs() (*FMeterRegs, error) {
	if h.ns != NSTopckgen {
		return nil, fmt.Errorf("%s has no frequency meter: %w", h.ns, ErrWrongKind)
	}
	if h.sys.tree.FMeter == nil {
		return nil, fmt.Errorf("%s: frequency meter: %w", h.sys.tree.Name, ErrResourceUnavailable)
	}
	return h.sys.tree.FMeter, nil
}

// Measure counts input sel of the chosen meter against the reference and returns its rate in kHz.
func (h *Handle) Measure(m Meter, sel uint32) (uint64, error) {
	fm, err := h.fmeterRegs()
	if err != nil {
		return 0, err
	}
	if sel > 0x3F {
		return 0, fmt.Errorf("%s meter input %d: %w", m, sel, ErrInvalidCandidate)
	}

	regs.SetBits(h.regs, fm.Cali0, FMETER_EN)
	defer regs.ClrBits(h.regs, fm.Cali0, FMETER_EN)

	var tri uint32
	var cnt func() uint32
	switch m {
	case MeterCKGEN:
		regs.ClrBits(h.regs, fm.Cali0, FMETER_CKGEN_CLK_EXC)
		h.regs.Write32(fm.Cali2, FMETER_WINDOW<<16)
		regs.ClrSetBits(h.regs, fm.MiscCfg1, 0xFF000000, FMETER_DIV<<24)
		regs.ClrSetBits(h.regs, fm.Cfg9, 0x3F0000, sel<<16)
		tri = FMETER_CKGEN_TRI_CAL
		cnt = func() uint32 { return h.regs.Read32(fm.Cali2) & 0xFFFF }
	default:
		regs.ClrBits(h.regs, fm.Cali0, FMETER_ABIST_CLK_EXC)
		regs.ClrSetBits(h.regs, fm.Cali1, 0x3FF0000, FMETER_WINDOW<<16)
		regs.ClrSetBits(h.regs, fm.MiscCfg1, 0xFF, FMETER_DIV)
		regs.ClrSetBits(h.regs, fm.Cfg8, 0x3F00, sel<<8)
		tri = FMETER_ABIST_TRI_CAL
		cnt = func() uint32 { return h.regs.Read32(fm.Cali1) & 0xFFFF }
	}

	regs.SetBits(h.regs, fm.Cali0, tri)
	if !h.fmeter.Wait(func() bool { return h.regs.Read32(fm.Cali0)&tri == 0 }) {
		klog.ErrorS(ErrHardwareNotReady, "clk.Measure: count did not complete", "meter", m, "sel", sel)
		return 0, fmt.Errorf("%s meter input %d: %w", m, sel, ErrHardwareNotReady)
	}
	khz := uint64(cnt()) * fm.RefKHz * (FMETER_DIV + 1) / (FMETER_WINDOW + 1)
	klog.V(regs.DBG_LVL_INFO).InfoS("clk.Measure", "meter", m, "sel", sel, "kHz", khz, "maxWait", h.fmeter.MaxWait())
	return khz, nil
}
