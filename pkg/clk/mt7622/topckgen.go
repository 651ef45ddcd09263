// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"clklib/pkg/clk"
)

const MHZ = 1_000_000

var xtal = clk.Xtal
var none = clk.None

func fixed(id int, name string, rate uint64) clk.Fixed {
	return clk.Fixed{ID: id, Name: name, Rate: rate}
}

func factor(id int, name string, parent clk.Ref, mult, div uint32) clk.Factor {
	return clk.Factor{ID: id, Name: name, Parent: parent, Mult: mult, Div: div}
}

func muxGate(id int, name string, parents []clk.Ref, reg uint32, shift, width uint8, gate int8) clk.Mux {
	return clk.Mux{ID: id, Name: name, Parents: parents, Reg: reg, Shift: shift, Width: width, GateShift: gate}
}

func mux(id int, name string, parents []clk.Ref, reg uint32, shift, width uint8) clk.Mux {
	return muxGate(id, name, parents, reg, shift, width, -1)
}

var topFixedClks = []clk.Fixed{
	fixed(CLK_TOP_TO_U2_PHY, "to_u2_phy", 31_250_000),
	fixed(CLK_TOP_TO_U2_PHY_1P, "to_u2_phy_1p", 31_250_000),
	fixed(CLK_TOP_PCIE0_PIPE_EN, "pcie0_pipe_en", 125 * MHZ),
	fixed(CLK_TOP_PCIE1_PIPE_EN, "pcie1_pipe_en", 125 * MHZ),
	fixed(CLK_TOP_SSUSB_TX250M, "ssusb_tx250m", 250 * MHZ),
	fixed(CLK_TOP_SSUSB_EQ_RX250M, "ssusb_eq_rx250m", 250 * MHZ),
	fixed(CLK_TOP_SSUSB_CDR_REF, "ssusb_cdr_ref", 33_333_333),
	fixed(CLK_TOP_SSUSB_CDR_FB, "ssusb_cdr_fb", 50 * MHZ),
	fixed(CLK_TOP_SATA_ASIC, "sata_asic", 50 * MHZ),
	fixed(CLK_TOP_SATA_RBC, "sata_rbc", 50 * MHZ),
}

var topFixedDivs = []clk.Factor{
	factor(CLK_TOP_TO_USB3_SYS, "to_usb3_sys", apm(CLK_APMIXED_ETH1PLL), 1, 4),
	factor(CLK_TOP_P1_1MHZ, "p1_1mhz", apm(CLK_APMIXED_ETH1PLL), 1, 500),
	factor(CLK_TOP_4MHZ, "free_run_4mhz", apm(CLK_APMIXED_ETH1PLL), 1, 125),
	factor(CLK_TOP_P0_1MHZ, "p0_1mhz", apm(CLK_APMIXED_ETH1PLL), 1, 500),
	factor(CLK_TOP_TXCLK_SRC_PRE, "txclk_src_pre", top(CLK_TOP_SGMIIPLL_D2), 1, 1),
	factor(CLK_TOP_RTC, "rtc", xtal, 1, 1024),
	factor(CLK_TOP_MEMPLL, "mempll", xtal, 32, 1),
	factor(CLK_TOP_DMPLL, "dmpll", top(CLK_TOP_MEMPLL), 1, 1),
	factor(CLK_TOP_SYSPLL_D2, "syspll_d2", apm(CLK_APMIXED_MAINPLL), 1, 2),
	factor(CLK_TOP_SYSPLL1_D2, "syspll1_d2", apm(CLK_APMIXED_MAINPLL), 1, 4),
	factor(CLK_TOP_SYSPLL1_D4, "syspll1_d4", apm(CLK_APMIXED_MAINPLL), 1, 8),
	factor(CLK_TOP_SYSPLL1_D8, "syspll1_d8", apm(CLK_APMIXED_MAINPLL), 1, 16),
	factor(CLK_TOP_SYSPLL2_D4, "syspll2_d4", apm(CLK_APMIXED_MAINPLL), 1, 12),
	factor(CLK_TOP_SYSPLL2_D8, "syspll2_d8", apm(CLK_APMIXED_MAINPLL), 1, 24),
	factor(CLK_TOP_SYSPLL_D5, "syspll_d5", apm(CLK_APMIXED_MAINPLL), 1, 5),
	factor(CLK_TOP_SYSPLL3_D2, "syspll3_d2", apm(CLK_APMIXED_MAINPLL), 1, 10),
	factor(CLK_TOP_SYSPLL3_D4, "syspll3_d4", apm(CLK_APMIXED_MAINPLL), 1, 20),
	factor(CLK_TOP_SYSPLL4_D2, "syspll4_d2", apm(CLK_APMIXED_MAINPLL), 1, 14),
	factor(CLK_TOP_SYSPLL4_D4, "syspll4_d4", apm(CLK_APMIXED_MAINPLL), 1, 28),
	factor(CLK_TOP_SYSPLL4_D16, "syspll4_d16", apm(CLK_APMIXED_MAINPLL), 1, 112),
	factor(CLK_TOP_UNIVPLL, "univpll", apm(CLK_APMIXED_UNIV2PLL), 1, 2),
	factor(CLK_TOP_UNIVPLL_D2, "univpll_d2", top(CLK_TOP_UNIVPLL), 1, 2),
	factor(CLK_TOP_UNIVPLL1_D2, "univpll1_d2", top(CLK_TOP_UNIVPLL), 1, 4),
	factor(CLK_TOP_UNIVPLL1_D4, "univpll1_d4", top(CLK_TOP_UNIVPLL), 1, 8),
	factor(CLK_TOP_UNIVPLL1_D8, "univpll1_d8", top(CLK_TOP_UNIVPLL), 1, 16),
	factor(CLK_TOP_UNIVPLL1_D16, "univpll1_d16", top(CLK_TOP_UNIVPLL), 1, 32),
	factor(CLK_TOP_UNIVPLL2_D2, "univpll2_d2", top(CLK_TOP_UNIVPLL), 1, 6),
	factor(CLK_TOP_UNIVPLL2_D4, "univpll2_d4", top(CLK_TOP_UNIVPLL), 1, 12),
	factor(CLK_TOP_UNIVPLL2_D8, "univpll2_d8", top(CLK_TOP_UNIVPLL), 1, 24),
	factor(CLK_TOP_UNIVPLL2_D16, "univpll2_d16", top(CLK_TOP_UNIVPLL), 1, 48),
	factor(CLK_TOP_UNIVPLL_D5, "univpll_d5", top(CLK_TOP_UNIVPLL), 1, 5),
	factor(CLK_TOP_UNIVPLL3_D2, "univpll3_d2", top(CLK_TOP_UNIVPLL), 1, 10),
	factor(CLK_TOP_UNIVPLL3_D4, "univpll3_d4", top(CLK_TOP_UNIVPLL), 1, 20),
	factor(CLK_TOP_UNIVPLL3_D16, "univpll3_d16", top(CLK_TOP_UNIVPLL), 1, 80),
	factor(CLK_TOP_UNIVPLL_D7, "univpll_d7", top(CLK_TOP_UNIVPLL), 1, 7),
	factor(CLK_TOP_UNIVPLL_D80_D4, "univpll_d80_d4", top(CLK_TOP_UNIVPLL), 1, 320),
	factor(CLK_TOP_UNIV48M, "univ48m", top(CLK_TOP_UNIVPLL), 1, 25),
	factor(CLK_TOP_SGMIIPLL, "sgmiipll_ck", apm(CLK_APMIXED_SGMIPLL), 1, 1),
	factor(CLK_TOP_SGMIIPLL_D2, "sgmiipll_d2", apm(CLK_APMIXED_SGMIPLL), 1, 2),
	factor(CLK_TOP_AUD1PLL, "aud1pll_ck", apm(CLK_APMIXED_AUD1PLL), 1, 1),
	factor(CLK_TOP_AUD2PLL, "aud2pll_ck", apm(CLK_APMIXED_AUD2PLL), 1, 1),
	factor(CLK_TOP_AUD_I2S2_MCK, "aud_i2s2_mck", top(CLK_TOP_I2S2_MCK_SEL), 1, 2),
	factor(CLK_TOP_TO_USB3_REF, "to_usb3_ref", top(CLK_TOP_UNIVPLL2_D4), 1, 4),
	factor(CLK_TOP_PCIE1_MAC_EN, "pcie1_mac_en", top(CLK_TOP_UNIVPLL1_D4), 1, 1),
	factor(CLK_TOP_PCIE0_MAC_EN, "pcie0_mac_en", top(CLK_TOP_UNIVPLL1_D4), 1, 1),
	factor(CLK_TOP_ETH_500M, "eth_500m", apm(CLK_APMIXED_ETH1PLL), 1, 1),
}

func refs(ids ...int) []clk.Ref {
	out := make([]clk.Ref, len(ids))
	for i, id := range ids {
		switch id {
		case XTAL:
			out[i] = xtal
		case NONE:
			out[i] = none
		default:
			out[i] = top(id)
		}
	}
	return out
}

// markers for refs
const (
	XTAL = -1
	NONE = -2
)

var (
	axiParents = refs(XTAL, CLK_TOP_SYSPLL1_D2, CLK_TOP_SYSPLL_D5, CLK_TOP_SYSPLL1_D4,
		CLK_TOP_UNIVPLL_D5, CLK_TOP_UNIVPLL2_D2, CLK_TOP_UNIVPLL_D7)
	memParents       = refs(XTAL, CLK_TOP_DMPLL)
	ddrphycfgParents = refs(XTAL, CLK_TOP_SYSPLL1_D8)
	ethParents       = refs(XTAL, CLK_TOP_SYSPLL1_D2, CLK_TOP_UNIVPLL1_D2, CLK_TOP_SYSPLL1_D4,
		CLK_TOP_UNIVPLL_D5, NONE, CLK_TOP_UNIVPLL_D7)
	pwmParents      = refs(XTAL, CLK_TOP_UNIVPLL2_D4)
	f10mRefParents  = refs(XTAL, CLK_TOP_SYSPLL4_D16)
	nfiInfraParents = refs(XTAL, XTAL, XTAL, XTAL, XTAL, XTAL, XTAL, XTAL,
		CLK_TOP_UNIVPLL2_D8, CLK_TOP_SYSPLL1_D8, CLK_TOP_UNIVPLL1_D8, CLK_TOP_SYSPLL4_D2,
		CLK_TOP_UNIVPLL2_D4, CLK_TOP_UNIVPLL3_D2, CLK_TOP_SYSPLL1_D4)
	flashParents = refs(XTAL, CLK_TOP_UNIVPLL_D80_D4, CLK_TOP_SYSPLL2_D8, CLK_TOP_SYSPLL3_D4,
		CLK_TOP_UNIVPLL3_D4, CLK_TOP_UNIVPLL1_D8, CLK_TOP_SYSPLL2_D4, CLK_TOP_UNIVPLL2_D4)
	uartParents = refs(XTAL, CLK_TOP_UNIVPLL2_D8)
	spi0Parents = refs(XTAL, CLK_TOP_SYSPLL3_D2, XTAL, CLK_TOP_SYSPLL2_D4, CLK_TOP_SYSPLL4_D2,
		CLK_TOP_UNIVPLL2_D4, CLK_TOP_UNIVPLL1_D8, XTAL)
	spi1Parents = refs(XTAL, CLK_TOP_SYSPLL3_D2, XTAL, CLK_TOP_SYSPLL4_D4, CLK_TOP_SYSPLL4_D2,
		CLK_TOP_UNIVPLL2_D4, CLK_TOP_UNIVPLL1_D8, XTAL)
	msdc30Parents    = refs(XTAL, CLK_TOP_UNIVPLL2_D16, CLK_TOP_UNIV48M)
	a1sysHpParents   = refs(XTAL, CLK_TOP_AUD1PLL, CLK_TOP_AUD2PLL, XTAL)
	intdirParents    = refs(XTAL, CLK_TOP_SYSPLL1_D2, CLK_TOP_UNIVPLL_D2, CLK_TOP_SGMIIPLL)
	audIntbusParents = refs(XTAL, CLK_TOP_SYSPLL1_D4, CLK_TOP_SYSPLL4_D2, CLK_TOP_SYSPLL3_D2)
	pmicspiParents   = refs(XTAL, NONE, NONE, NONE, NONE, CLK_TOP_UNIVPLL2_D16)
	atbParents       = refs(XTAL, CLK_TOP_SYSPLL1_D2, CLK_TOP_SYSPLL_D5)
	audioParents     = refs(XTAL, CLK_TOP_SYSPLL3_D4, CLK_TOP_SYSPLL4_D4, CLK_TOP_UNIVPLL1_D16)
	usb20Parents     = refs(XTAL, CLK_TOP_UNIVPLL3_D4, CLK_TOP_SYSPLL1_D8, XTAL)
	aud1Parents      = refs(XTAL, CLK_TOP_AUD1PLL)
	asmLParents      = refs(XTAL, CLK_TOP_SYSPLL_D5, CLK_TOP_UNIVPLL2_D2, CLK_TOP_UNIVPLL2_D4)
	apll1CkParents   = refs(CLK_TOP_AUD1_SEL, CLK_TOP_AUD2_SEL)
)

func hifSel() clk.Mux {
	m := muxGate(CLK_TOP_HIF_SEL, "hif_sel", ethParents, 0x90, 8, 3, 15)
	m.Flags = clk.MuxDomainSCPSYS
	return m
}

var topMuxes = []clk.Mux{
	// CLK_CFG_0
	muxGate(CLK_TOP_AXI_SEL, "axi_sel", axiParents, 0x40, 0, 3, 7),
	muxGate(CLK_TOP_MEM_SEL, "mem_sel", memParents, 0x40, 8, 1, 15),
	muxGate(CLK_TOP_DDRPHYCFG_SEL, "ddrphycfg_sel", ddrphycfgParents, 0x40, 16, 1, 23),
	muxGate(CLK_TOP_ETH_SEL, "eth_sel", ethParents, 0x40, 24, 3, 31),

	// CLK_CFG_1
	muxGate(CLK_TOP_PWM_SEL, "pwm_sel", pwmParents, 0x50, 0, 2, 7),
	muxGate(CLK_TOP_F10M_REF_SEL, "f10m_ref_sel", f10mRefParents, 0x50, 8, 1, 15),
	muxGate(CLK_TOP_NFI_INFRA_SEL, "nfi_infra_sel", nfiInfraParents, 0x50, 16, 4, 23),
	muxGate(CLK_TOP_FLASH_SEL, "flash_sel", flashParents, 0x50, 24, 3, 31),

	// CLK_CFG_2
	muxGate(CLK_TOP_UART_SEL, "uart_sel", uartParents, 0x60, 0, 1, 7),
	muxGate(CLK_TOP_SPI0_SEL, "spi0_sel", spi0Parents, 0x60, 8, 3, 15),
	muxGate(CLK_TOP_SPI1_SEL, "spi1_sel", spi1Parents, 0x60, 16, 3, 23),
	muxGate(CLK_TOP_MSDC50_0_SEL, "msdc50_0_sel", uartParents, 0x60, 24, 3, 31),

	// CLK_CFG_3
	muxGate(CLK_TOP_MSDC30_0_SEL, "msdc30_0_sel", msdc30Parents, 0x70, 0, 3, 7),
	muxGate(CLK_TOP_MSDC30_1_SEL, "msdc30_1_sel", msdc30Parents, 0x70, 8, 3, 15),
	muxGate(CLK_TOP_A1SYS_HP_SEL, "a1sys_hp_sel", a1sysHpParents, 0x70, 16, 3, 23),
	muxGate(CLK_TOP_A2SYS_HP_SEL, "a2sys_hp_sel", a1sysHpParents, 0x70, 24, 3, 31),

	// CLK_CFG_4
	muxGate(CLK_TOP_INTDIR_SEL, "intdir_sel", intdirParents, 0x80, 0, 2, 7),
	muxGate(CLK_TOP_AUD_INTBUS_SEL, "aud_intbus_sel", audIntbusParents, 0x80, 8, 2, 15),
	muxGate(CLK_TOP_PMICSPI_SEL, "pmicspi_sel", pmicspiParents, 0x80, 16, 3, 23),
	muxGate(CLK_TOP_SCP_SEL, "scp_sel", ddrphycfgParents, 0x80, 24, 2, 31),

	// CLK_CFG_5
	muxGate(CLK_TOP_ATB_SEL, "atb_sel", atbParents, 0x90, 0, 2, 7),
	hifSel(),
	muxGate(CLK_TOP_AUDIO_SEL, "audio_sel", audioParents, 0x90, 16, 2, 23),
	muxGate(CLK_TOP_U2_SEL, "usb20_sel", usb20Parents, 0x90, 24, 2, 31),

	// CLK_CFG_6
	muxGate(CLK_TOP_AUD1_SEL, "aud1_sel", aud1Parents, 0xA0, 0, 1, 7),
	muxGate(CLK_TOP_AUD2_SEL, "aud2_sel", aud1Parents, 0xA0, 8, 1, 15),
	muxGate(CLK_TOP_IRRX_SEL, "irrx_sel", f10mRefParents, 0xA0, 16, 1, 23),
	muxGate(CLK_TOP_IRTX_SEL, "irtx_sel", f10mRefParents, 0xA0, 24, 1, 31),

	// CLK_CFG_7
	muxGate(CLK_TOP_ASM_L_SEL, "asm_l_sel", asmLParents, 0xB0, 0, 2, 7),
	muxGate(CLK_TOP_ASM_M_SEL, "asm_m_sel", asmLParents, 0xB0, 8, 2, 15),
	muxGate(CLK_TOP_ASM_H_SEL, "asm_h_sel", asmLParents, 0xB0, 16, 2, 23),

	// CLK_AUDDIV_0
	mux(CLK_TOP_APLL1_SEL, "apll1_ck_sel", apll1CkParents, 0x120, 6, 1),
	mux(CLK_TOP_APLL2_SEL, "apll2_ck_sel", apll1CkParents, 0x120, 7, 1),
	mux(CLK_TOP_I2S0_MCK_SEL, "i2s0_mck_sel", apll1CkParents, 0x120, 8, 1),
	mux(CLK_TOP_I2S1_MCK_SEL, "i2s1_mck_sel", apll1CkParents, 0x120, 9, 1),
	mux(CLK_TOP_I2S2_MCK_SEL, "i2s2_mck_sel", apll1CkParents, 0x120, 10, 1),
	mux(CLK_TOP_I2S3_MCK_SEL, "i2s3_mck_sel", apll1CkParents, 0x120, 11, 1),
}
