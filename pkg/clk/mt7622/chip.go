// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// Package mt7622 holds the clock tables and controller drivers of the MediaTek MT7622.
package mt7622

import (
	"clklib/pkg/clk"
	"clklib/pkg/regs"
)

const COMPATIBLE_PREFIX = "mediatek,mt7622-"
const ETHSYS_HIFSYS_RST_CTRL_OFS = 0x34

// frequency meter registers of topckgen
const CLK_CFG_8 = 0x100
const CLK_CFG_9 = 0x104
const CLK_MISC_CFG_1 = 0x214
const CLK26CALI_0 = 0x220
const CLK26CALI_1 = 0x224
const CLK26CALI_2 = 0x228

// Tree is the MT7622 clock tree.
var Tree = &clk.Tree{
	Name:        "mt7622",
	XtalRate:    25 * MHZ,
	Xtal2Rate:   25 * MHZ,
	PLLs:        apmixedPLLs,
	Fixed:       topFixedClks,
	Factors:     topFixedDivs,
	Muxes:       topMuxes,
	FactorsOffs: CLK_TOP_TO_USB3_SYS,
	MuxesOffs:   CLK_TOP_AXI_SEL,
	Gates: map[clk.Namespace][]clk.Gate{
		NSInfracfg: infraCGs,
		NSPericfg:  periCGs,
		NSEthsys:   ethCGs,
		NSSgmiisys: sgmiiCGs,
		NSSsusbsys: ssusbCGs,
		NSPciesys:  pcieCGs,
	},
	FMeter: &clk.FMeterRegs{
		Cfg8:     CLK_CFG_8,
		Cfg9:     CLK_CFG_9,
		MiscCfg1: CLK_MISC_CFG_1,
		Cali0:    CLK26CALI_0,
		Cali1:    CLK26CALI_1,
		Cali2:    CLK26CALI_2,
		RefKHz:   25000,
	},
}

func gateProbe(ns clk.Namespace, gates []clk.Gate) func(*clk.System, regs.Window) error {
	return func(s *clk.System, w regs.Window) error {
		_, err := s.InitGates(ns, w, gates)
		return err
	}
}

// Chip lists the MT7622 controller drivers in probe order.
var Chip = &clk.Chip{
	Name: "mt7622",
	Tree: Tree,
	Drivers: []clk.Driver{
		{Compatible: COMPATIBLE_PREFIX + "mcucfg", Probe: probeMcucfg},
		{Compatible: COMPATIBLE_PREFIX + "apmixedsys", NS: clk.NSApmixed, Probe: probeApmixedsys},
		{Compatible: COMPATIBLE_PREFIX + "topckgen", NS: clk.NSTopckgen, Probe: probeTopckgen},
		{Compatible: COMPATIBLE_PREFIX + "infracfg", NS: NSInfracfg, Probe: gateProbe(NSInfracfg, infraCGs)},
		{Compatible: COMPATIBLE_PREFIX + "pericfg", NS: NSPericfg, Probe: gateProbe(NSPericfg, periCGs)},
		{Compatible: COMPATIBLE_PREFIX + "ethsys", NS: NSEthsys, Probe: gateProbe(NSEthsys, ethCGs),
			ResetOfs: ETHSYS_HIFSYS_RST_CTRL_OFS, ResetRegs: 1},
		{Compatible: COMPATIBLE_PREFIX + "sgmiisys", NS: NSSgmiisys, Probe: gateProbe(NSSgmiisys, sgmiiCGs)},
		{Compatible: COMPATIBLE_PREFIX + "ssusbsys", NS: NSSsusbsys, Probe: gateProbe(NSSsusbsys, ssusbCGs),
			ResetOfs: ETHSYS_HIFSYS_RST_CTRL_OFS, ResetRegs: 1},
		{Compatible: COMPATIBLE_PREFIX + "pciesys", NS: NSPciesys, Probe: gateProbe(NSPciesys, pcieCGs),
			ResetOfs: ETHSYS_HIFSYS_RST_CTRL_OFS, ResetRegs: 1},
	},
}
