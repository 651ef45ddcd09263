// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"clklib/pkg/clk"
)

var infraCGRegs = &clk.GateRegs{Set: 0x40, Clr: 0x44, Sta: 0x48}
var peri0CGRegs = &clk.GateRegs{Set: 0x8, Clr: 0x10, Sta: 0x18}
var peri1CGRegs = &clk.GateRegs{Set: 0xC, Clr: 0x14, Sta: 0x1C}
var ethCGRegs = &clk.GateRegs{Set: 0x30, Clr: 0x30, Sta: 0x30}
var sgmiiCGRegs = &clk.GateRegs{Set: 0xE4, Clr: 0xE4, Sta: 0xE4}
var ssusbCGRegs = &clk.GateRegs{Set: 0x30, Clr: 0x30, Sta: 0x30}
var pcieCGRegs = &clk.GateRegs{Set: 0x30, Clr: 0x30, Sta: 0x30}

// infracfg and pericfg gates are clock-gate bits: a set bit stops the clock.
func cg(id int, name string, parent clk.Ref, r *clk.GateRegs, shift uint8) clk.Gate {
	return clk.Gate{ID: id, Name: name, Parent: parent, Regs: r, Shift: shift, Conv: clk.GateSetClrInv}
}

// the subsystem blocks use enable bits in a single register
func en(id int, name string, parent clk.Ref, r *clk.GateRegs, shift uint8) clk.Gate {
	return clk.Gate{ID: id, Name: name, Parent: parent, Regs: r, Shift: shift, Conv: clk.GateDirectInv}
}

func critical(g clk.Gate) clk.Gate {
	g.Flags |= clk.GateCritical
	return g
}

var infraCGs = []clk.Gate{
	cg(CLK_INFRA_DBGCLK_PD, "infra_dbgclk_pd", top(CLK_TOP_AXI_SEL), infraCGRegs, 0),
	cg(CLK_INFRA_TRNG, "trng_ck", top(CLK_TOP_AXI_SEL), infraCGRegs, 2),
	cg(CLK_INFRA_AUDIO_PD, "infra_audio_pd", top(CLK_TOP_AUD_INTBUS_SEL), infraCGRegs, 5),
	cg(CLK_INFRA_IRRX_PD, "infra_irrx_pd", top(CLK_TOP_IRRX_SEL), infraCGRegs, 16),
	critical(cg(CLK_INFRA_APXGPT_PD, "infra_apxgpt_pd", top(CLK_TOP_F10M_REF_SEL), infraCGRegs, 18)),
	cg(CLK_INFRA_PMIC_PD, "infra_pmic_pd", top(CLK_TOP_PMICSPI_SEL), infraCGRegs, 22),
}

var periCGs = []clk.Gate{
	// PERI0
	cg(CLK_PERI_THERM_PD, "peri_therm_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 1),
	cg(CLK_PERI_PWM1_PD, "peri_pwm1_pd", xtal, peri0CGRegs, 2),
	cg(CLK_PERI_PWM2_PD, "peri_pwm2_pd", xtal, peri0CGRegs, 3),
	cg(CLK_PERI_PWM3_PD, "peri_pwm3_pd", xtal, peri0CGRegs, 4),
	cg(CLK_PERI_PWM4_PD, "peri_pwm4_pd", xtal, peri0CGRegs, 5),
	cg(CLK_PERI_PWM5_PD, "peri_pwm5_pd", xtal, peri0CGRegs, 6),
	cg(CLK_PERI_PWM6_PD, "peri_pwm6_pd", xtal, peri0CGRegs, 7),
	cg(CLK_PERI_PWM7_PD, "peri_pwm7_pd", xtal, peri0CGRegs, 8),
	cg(CLK_PERI_PWM_PD, "peri_pwm_pd", xtal, peri0CGRegs, 9),
	cg(CLK_PERI_AP_DMA_PD, "peri_ap_dma_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 12),
	cg(CLK_PERI_MSDC30_0_PD, "peri_msdc30_0", top(CLK_TOP_MSDC30_0_SEL), peri0CGRegs, 13),
	cg(CLK_PERI_MSDC30_1_PD, "peri_msdc30_1", top(CLK_TOP_MSDC30_1_SEL), peri0CGRegs, 14),
	critical(cg(CLK_PERI_UART0_PD, "peri_uart0_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 17)),
	cg(CLK_PERI_UART1_PD, "peri_uart1_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 18),
	cg(CLK_PERI_UART2_PD, "peri_uart2_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 19),
	cg(CLK_PERI_UART3_PD, "peri_uart3_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 20),
	cg(CLK_PERI_BTIF_PD, "peri_btif_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 22),
	cg(CLK_PERI_I2C0_PD, "peri_i2c0_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 23),
	cg(CLK_PERI_I2C1_PD, "peri_i2c1_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 24),
	cg(CLK_PERI_I2C2_PD, "peri_i2c2_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 25),
	cg(CLK_PERI_SPI1_PD, "peri_spi1_pd", top(CLK_TOP_SPI1_SEL), peri0CGRegs, 26),
	cg(CLK_PERI_AUXADC_PD, "peri_auxadc_pd", xtal, peri0CGRegs, 27),
	cg(CLK_PERI_SPI0_PD, "peri_spi0_pd", top(CLK_TOP_SPI0_SEL), peri0CGRegs, 28),
	cg(CLK_PERI_SNFI_PD, "peri_snfi_pd", top(CLK_TOP_NFI_INFRA_SEL), peri0CGRegs, 29),
	cg(CLK_PERI_NFI_PD, "peri_nfi_pd", top(CLK_TOP_AXI_SEL), peri0CGRegs, 30),
	cg(CLK_PERI_NFIECC_PD, "peri_nfiecc_pd", top(CLK_TOP_AXI_SEL), peri1CGRegs, 31),

	// PERI1
	cg(CLK_PERI_FLASH_PD, "peri_flash_pd", top(CLK_TOP_FLASH_SEL), peri1CGRegs, 1),
	cg(CLK_PERI_IRTX_PD, "peri_irtx_pd", top(CLK_TOP_IRTX_SEL), peri1CGRegs, 2),
}

var ethCGs = []clk.Gate{
	en(CLK_ETH_HSDMA_EN, "eth_hsdma_en", top(CLK_TOP_ETH_SEL), ethCGRegs, 5),
	en(CLK_ETH_ESW_EN, "eth_esw_en", top(CLK_TOP_ETH_500M), ethCGRegs, 6),
	en(CLK_ETH_GP2_EN, "eth_gp2_en", top(CLK_TOP_TXCLK_SRC_PRE), ethCGRegs, 7),
	en(CLK_ETH_GP1_EN, "eth_gp1_en", top(CLK_TOP_TXCLK_SRC_PRE), ethCGRegs, 8),
	en(CLK_ETH_GP0_EN, "eth_gp0_en", top(CLK_TOP_TXCLK_SRC_PRE), ethCGRegs, 9),
}

var sgmiiCGs = []clk.Gate{
	en(CLK_SGMII_TX250M_EN, "sgmii_tx250m_en", top(CLK_TOP_SSUSB_TX250M), sgmiiCGRegs, 2),
	en(CLK_SGMII_RX250M_EN, "sgmii_rx250m_en", top(CLK_TOP_SSUSB_EQ_RX250M), sgmiiCGRegs, 3),
	en(CLK_SGMII_CDR_REF, "sgmii_cdr_ref", top(CLK_TOP_SSUSB_CDR_REF), sgmiiCGRegs, 4),
	en(CLK_SGMII_CDR_FB, "sgmii_cdr_fb", top(CLK_TOP_SSUSB_CDR_FB), sgmiiCGRegs, 5),
}

var ssusbCGs = []clk.Gate{
	en(CLK_SSUSB_U2_PHY_1P_EN, "ssusb_u2_phy_1p", top(CLK_TOP_TO_U2_PHY_1P), ssusbCGRegs, 0),
	en(CLK_SSUSB_U2_PHY_EN, "ssusb_u2_phy_en", top(CLK_TOP_TO_U2_PHY), ssusbCGRegs, 1),
	en(CLK_SSUSB_REF_EN, "ssusb_ref_en", top(CLK_TOP_TO_USB3_REF), ssusbCGRegs, 5),
	en(CLK_SSUSB_SYS_EN, "ssusb_sys_en", top(CLK_TOP_TO_USB3_SYS), ssusbCGRegs, 6),
	en(CLK_SSUSB_MCU_EN, "ssusb_mcu_en", top(CLK_TOP_AXI_SEL), ssusbCGRegs, 7),
	en(CLK_SSUSB_DMA_EN, "ssusb_dma_en", top(CLK_TOP_HIF_SEL), ssusbCGRegs, 8),
}

var pcieCGs = []clk.Gate{
	en(CLK_PCIE_P1_AUX_EN, "pcie_p1_aux_en", top(CLK_TOP_P1_1MHZ), pcieCGRegs, 12),
	en(CLK_PCIE_P1_OBFF_EN, "pcie_p1_obff_en", top(CLK_TOP_4MHZ), pcieCGRegs, 13),
	en(CLK_PCIE_P1_AHB_EN, "pcie_p1_ahb_en", top(CLK_TOP_AXI_SEL), pcieCGRegs, 14),
	en(CLK_PCIE_P1_AXI_EN, "pcie_p1_axi_en", top(CLK_TOP_HIF_SEL), pcieCGRegs, 15),
	en(CLK_PCIE_P1_MAC_EN, "pcie_p1_mac_en", top(CLK_TOP_PCIE1_MAC_EN), pcieCGRegs, 16),
	en(CLK_PCIE_P1_PIPE_EN, "pcie_p1_pipe_en", top(CLK_TOP_PCIE1_PIPE_EN), pcieCGRegs, 17),
	en(CLK_PCIE_P0_AUX_EN, "pcie_p0_aux_en", top(CLK_TOP_P0_1MHZ), pcieCGRegs, 18),
	en(CLK_PCIE_P0_OBFF_EN, "pcie_p0_obff_en", top(CLK_TOP_4MHZ), pcieCGRegs, 19),
	en(CLK_PCIE_P0_AHB_EN, "pcie_p0_ahb_en", top(CLK_TOP_AXI_SEL), pcieCGRegs, 20),
	en(CLK_PCIE_P0_AXI_EN, "pcie_p0_axi_en", top(CLK_TOP_HIF_SEL), pcieCGRegs, 21),
	en(CLK_PCIE_P0_MAC_EN, "pcie_p0_mac_en", top(CLK_TOP_PCIE0_MAC_EN), pcieCGRegs, 22),
	en(CLK_PCIE_P0_PIPE_EN, "pcie_p0_pipe_en", top(CLK_TOP_PCIE0_PIPE_EN), pcieCGRegs, 23),
	en(CLK_SATA_AHB_EN, "sata_ahb_en", top(CLK_TOP_AXI_SEL), pcieCGRegs, 26),
	en(CLK_SATA_AXI_EN, "sata_axi_en", top(CLK_TOP_HIF_SEL), pcieCGRegs, 27),
	en(CLK_SATA_ASIC_EN, "sata_asic_en", top(CLK_TOP_SATA_ASIC), pcieCGRegs, 28),
	en(CLK_SATA_RBC_EN, "sata_rbc_en", top(CLK_TOP_SATA_RBC), pcieCGRegs, 29),
	en(CLK_SATA_PM_EN, "sata_pm_en", top(CLK_TOP_UNIVPLL2_D4), pcieCGRegs, 30),
}
