// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"clklib/pkg/clk"
	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

const MT7622_CLKSQ_STB_CON0 = 0x20
const MT7622_PLL_ISO_CON0 = 0x2c
const MT7622_PLL_FMAX = 2500 * MHZ
const MT7622_CON0_RST_BAR = 1 << 24

const MCU_AXI_DIV = 0x640
const MCU_BUS_MUX = 0x7c0

var AXI_DIV_MSK = regs.GenMask(4, 0)
var MCU_BUS_MSK = regs.GenMask(10, 9)

func pll(id int, name string, reg, pwrReg, enMask uint32, flags clk.PLLFlags, pcwbits uint8,
	pdReg uint32, pdShift uint8, pcwReg uint32, pcwShift uint8) clk.PLL {
	return clk.PLL{
		ID:         id,
		Name:       name,
		Reg:        reg,
		PwrReg:     pwrReg,
		EnMask:     enMask,
		RstBarMask: MT7622_CON0_RST_BAR,
		Flags:      flags,
		Fmax:       MT7622_PLL_FMAX,
		PcwBits:    pcwbits,
		PdReg:      pdReg,
		PdShift:    pdShift,
		PcwReg:     pcwReg,
		PcwShift:   pcwShift,
	}
}

var apmixedPLLs = []clk.PLL{
	pll(CLK_APMIXED_ARMPLL, "armpll", 0x200, 0x20c, 0x1, 0, 21, 0x204, 24, 0x204, 0),
	pll(CLK_APMIXED_MAINPLL, "mainpll", 0x210, 0x21c, 0x1, clk.PLLHaveRstBar, 21, 0x214, 24, 0x214, 0),
	pll(CLK_APMIXED_UNIV2PLL, "univ2pll", 0x220, 0x22c, 0x1, clk.PLLHaveRstBar, 7, 0x224, 24, 0x224, 14),
	pll(CLK_APMIXED_ETH1PLL, "eth1pll", 0x300, 0x310, 0x1, 0, 21, 0x300, 1, 0x304, 0),
	pll(CLK_APMIXED_ETH2PLL, "eth2pll", 0x314, 0x320, 0x1, 0, 21, 0x314, 1, 0x318, 0),
	pll(CLK_APMIXED_AUD1PLL, "aud1pll", 0x324, 0x330, 0x1, 0, 31, 0x324, 1, 0x328, 0),
	pll(CLK_APMIXED_AUD2PLL, "aud2pll", 0x334, 0x340, 0x1, 0, 31, 0x334, 1, 0x338, 0),
	pll(CLK_APMIXED_TRGPLL, "trgpll", 0x344, 0x354, 0x1, 0, 21, 0x344, 1, 0x348, 0),
	pll(CLK_APMIXED_SGMIPLL, "sgmipll", 0x358, 0x368, 0x1, 0, 21, 0x358, 1, 0x35c, 0),
}

func probeApmixedsys(s *clk.System, w regs.Window) error {
	if _, err := s.InitTree(clk.NSApmixed, w); err != nil {
		return err
	}
	// reduce clock square disable time
	w.Write32(MT7622_CLKSQ_STB_CON0, 0x98940501)
	// extend pwr/iso control timing to 1us
	w.Write32(MT7622_PLL_ISO_CON0, 0x80008)
	return nil
}

func probeTopckgen(s *clk.System, w regs.Window) error {
	_, err := s.InitTree(clk.NSTopckgen, w)
	return err
}

// probeMcucfg sets the CPU AXI divider and bus mux. The block has no clocks of its own.
func probeMcucfg(s *clk.System, w regs.Window) error {
	klog.V(regs.DBG_LVL_BASIC).InfoS("mt7622.probeMcucfg")
	regs.ClrSetBits(w, MCU_AXI_DIV, AXI_DIV_MSK, 0x12)
	regs.ClrSetBits(w, MCU_BUS_MUX, MCU_BUS_MSK, 1<<9)
	return nil
}
