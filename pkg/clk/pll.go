// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements PLL rate readback, programming and the power sequence.
package clk

import (
	"fmt"
	"time"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

const REG_CON0 = 0
const REG_CON1 = 4

const CON0_BASE_EN = 1 << 0
const CON0_PWR_ON = 1 << 0
const CON0_ISO_EN = 1 << 1
const CON1_PCW_CHG = 1 << 31

const POSTDIV_MASK = 0x7
const POSTDIV_MAX = 4      // log2 of the largest post divider
const INTEGER_BITS = 7     // default integer bits of a pcw
const FMIN = 1_000_000_000 // lowest VCO rate
const PLL_SETTLE = 20 * time.Microsecond
const PLL_PWR_SETTLE = 1 * time.Microsecond

func (p *PLL) fbits() uint {
	ibits := uint(p.PcwIBits)
	if ibits == 0 {
		ibits = INTEGER_BITS
	}
	if uint(p.PcwBits) > ibits {
		return uint(p.PcwBits) - ibits
	}
	return 0
}

func (p *PLL) pcwField() regs.Field {
	return regs.Field{Offset: int(p.PcwShift), Bitwidth: int(p.PcwBits)}
}

func (p *PLL) pdField() regs.Field {
	return regs.Field{Offset: int(p.PdShift), Bitwidth: 3}
}

// pllCalcRate returns the output rate for a reference fin, a pcw and a post divider,
// rounding the VCO up when the fractional part of pcw is non-zero.
func pllCalcRate(p *PLL, fin uint64, pcw uint32, postdiv uint64) uint64 {
	fbits := p.fbits()
	vco := fin * uint64(pcw)
	carry := fbits > 0 && vco&(uint64(1)<<fbits-1) != 0
	vco >>= fbits
	if carry {
		vco++
	}
	return (vco + postdiv - 1) / postdiv
}

// pllCalcValues returns the post divider exponent and pcw for freq. The post divider
// is the smallest power of two that lifts the VCO to FMIN, limited to 2^POSTDIV_MAX.
func pllCalcValues(p *PLL, fin, freq uint64) (uint32, uint64) {
	fmax := p.Fmax
	if fmax != 0 && freq > fmax {
		freq = fmax
	}
	var val uint
	for val = 0; val < POSTDIV_MAX; val++ {
		if freq<<val >= FMIN {
			break
		}
	}
	pcw := ((freq << val) << p.fbits()) / fin
	return uint32(val), pcw
}

func (h *Handle) pllRate(p *PLL) uint64 {
	postdiv := uint64(1) << p.pdField().Read(h.regs.Read32(p.PdReg))
	pcw := p.pcwField().Read(h.regs.Read32(p.PcwReg))
	rate := pllCalcRate(p, h.sys.tree.Xtal2Rate, pcw, postdiv)
	klog.V(regs.DBG_LVL_DETAIL).InfoS("clk.pllRate", "pll", p.Name, "pcw", regs.Hex(pcw), "postdiv", postdiv, "rate", rate)
	return rate
}

// SetPLLRate programs PLL id as close to rate as the pcw resolution allows.
func (h *Handle) SetPLLRate(id int, rate uint64) error {
	if h.ns != NSApmixed {
		return fmt.Errorf("%v: %w", h.ref(id), ErrWrongKind)
	}
	p, err := h.sys.tree.pll(id)
	if err != nil {
		return err
	}
	if rate == 0 {
		return fmt.Errorf("pll %s: zero rate: %w", p.Name, ErrInvalidCandidate)
	}
	pd, pcw := pllCalcValues(p, h.sys.tree.Xtal2Rate, rate)
	if pcw > uint64(1)<<p.PcwBits-1 {
		return fmt.Errorf("pll %s: pcw %s for %d Hz exceeds %d bits: %w", p.Name, regs.Hex(pcw), rate, p.PcwBits, ErrInvalidCandidate)
	}
	klog.V(regs.DBG_LVL_INFO).InfoS("clk.SetPLLRate", "pll", p.Name, "rate", rate, "postdiv", 1<<pd, "pcw", regs.Hex(pcw))

	val := h.regs.Read32(p.PdReg)
	p.pdField().Write(&val, pd)
	if p.PdReg != p.PcwReg {
		h.regs.Write32(p.PdReg, val)
		val = h.regs.Read32(p.PcwReg)
	}
	p.pcwField().Write(&val, uint32(pcw))
	if p.PcwReg == p.Reg+REG_CON1 {
		val |= CON1_PCW_CHG
	}
	h.regs.Write32(p.PcwReg, val)

	h.sys.delay(PLL_SETTLE)
	if p.ReadyMask == 0 {
		return nil
	}
	if !h.poll.Wait(func() bool { return h.regs.Read32(p.ReadyReg)&p.ReadyMask == p.ReadyMask }) {
		klog.ErrorS(ErrHardwareNotReady, "clk.SetPLLRate: no lock", "pll", p.Name, "rate", rate)
		return fmt.Errorf("pll %s: not locked at %d Hz: %w", p.Name, rate, ErrHardwareNotReady)
	}
	return nil
}

func (h *Handle) pllEnable(p *PLL) {
	regs.SetBits(h.regs, p.PwrReg, CON0_PWR_ON)
	h.sys.delay(PLL_PWR_SETTLE)
	regs.ClrBits(h.regs, p.PwrReg, CON0_ISO_EN)
	h.sys.delay(PLL_PWR_SETTLE)
	regs.SetBits(h.regs, p.Reg+REG_CON0, p.EnMask)
	h.sys.delay(PLL_SETTLE)
	if p.Flags&PLLHaveRstBar != 0 {
		regs.SetBits(h.regs, p.Reg+REG_CON0, p.RstBarMask)
	}
}

func (h *Handle) pllDisable(p *PLL) {
	if p.Flags&PLLHaveRstBar != 0 {
		regs.ClrBits(h.regs, p.Reg+REG_CON0, p.RstBarMask)
	}
	regs.ClrBits(h.regs, p.Reg+REG_CON0, CON0_BASE_EN)
	regs.SetBits(h.regs, p.PwrReg, CON0_ISO_EN)
	regs.ClrBits(h.regs, p.PwrReg, CON0_PWR_ON)
}
