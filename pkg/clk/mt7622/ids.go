// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"clklib/pkg/clk"
)

// apmixedsys
const (
	CLK_APMIXED_ARMPLL = iota
	CLK_APMIXED_MAINPLL
	CLK_APMIXED_UNIV2PLL
	CLK_APMIXED_ETH1PLL
	CLK_APMIXED_ETH2PLL
	CLK_APMIXED_AUD1PLL
	CLK_APMIXED_AUD2PLL
	CLK_APMIXED_TRGPLL
	CLK_APMIXED_SGMIPLL
)

// topckgen: fixed sources, then factors from CLK_TOP_TO_USB3_SYS, then muxes from CLK_TOP_AXI_SEL
const (
	CLK_TOP_TO_U2_PHY = iota
	CLK_TOP_TO_U2_PHY_1P
	CLK_TOP_PCIE0_PIPE_EN
	CLK_TOP_PCIE1_PIPE_EN
	CLK_TOP_SSUSB_TX250M
	CLK_TOP_SSUSB_EQ_RX250M
	CLK_TOP_SSUSB_CDR_REF
	CLK_TOP_SSUSB_CDR_FB
	CLK_TOP_SATA_ASIC
	CLK_TOP_SATA_RBC

	CLK_TOP_TO_USB3_SYS
	CLK_TOP_P1_1MHZ
	CLK_TOP_4MHZ
	CLK_TOP_P0_1MHZ
	CLK_TOP_TXCLK_SRC_PRE
	CLK_TOP_RTC
	CLK_TOP_MEMPLL
	CLK_TOP_DMPLL
	CLK_TOP_SYSPLL_D2
	CLK_TOP_SYSPLL1_D2
	CLK_TOP_SYSPLL1_D4
	CLK_TOP_SYSPLL1_D8
	CLK_TOP_SYSPLL2_D4
	CLK_TOP_SYSPLL2_D8
	CLK_TOP_SYSPLL_D5
	CLK_TOP_SYSPLL3_D2
	CLK_TOP_SYSPLL3_D4
	CLK_TOP_SYSPLL4_D2
	CLK_TOP_SYSPLL4_D4
	CLK_TOP_SYSPLL4_D16
	CLK_TOP_UNIVPLL
	CLK_TOP_UNIVPLL_D2
	CLK_TOP_UNIVPLL1_D2
	CLK_TOP_UNIVPLL1_D4
	CLK_TOP_UNIVPLL1_D8
	CLK_TOP_UNIVPLL1_D16
	CLK_TOP_UNIVPLL2_D2
	CLK_TOP_UNIVPLL2_D4
	CLK_TOP_UNIVPLL2_D8
	CLK_TOP_UNIVPLL2_D16
	CLK_TOP_UNIVPLL_D5
	CLK_TOP_UNIVPLL3_D2
	CLK_TOP_UNIVPLL3_D4
	CLK_TOP_UNIVPLL3_D16
	CLK_TOP_UNIVPLL_D7
	CLK_TOP_UNIVPLL_D80_D4
	CLK_TOP_UNIV48M
	CLK_TOP_SGMIIPLL
	CLK_TOP_SGMIIPLL_D2
	CLK_TOP_AUD1PLL
	CLK_TOP_AUD2PLL
	CLK_TOP_AUD_I2S2_MCK
	CLK_TOP_TO_USB3_REF
	CLK_TOP_PCIE1_MAC_EN
	CLK_TOP_PCIE0_MAC_EN
	CLK_TOP_ETH_500M

	CLK_TOP_AXI_SEL
	CLK_TOP_MEM_SEL
	CLK_TOP_DDRPHYCFG_SEL
	CLK_TOP_ETH_SEL
	CLK_TOP_PWM_SEL
	CLK_TOP_F10M_REF_SEL
	CLK_TOP_NFI_INFRA_SEL
	CLK_TOP_FLASH_SEL
	CLK_TOP_UART_SEL
	CLK_TOP_SPI0_SEL
	CLK_TOP_SPI1_SEL
	CLK_TOP_MSDC50_0_SEL
	CLK_TOP_MSDC30_0_SEL
	CLK_TOP_MSDC30_1_SEL
	CLK_TOP_A1SYS_HP_SEL
	CLK_TOP_A2SYS_HP_SEL
	CLK_TOP_INTDIR_SEL
	CLK_TOP_AUD_INTBUS_SEL
	CLK_TOP_PMICSPI_SEL
	CLK_TOP_SCP_SEL
	CLK_TOP_ATB_SEL
	CLK_TOP_HIF_SEL
	CLK_TOP_AUDIO_SEL
	CLK_TOP_U2_SEL
	CLK_TOP_AUD1_SEL
	CLK_TOP_AUD2_SEL
	CLK_TOP_IRRX_SEL
	CLK_TOP_IRTX_SEL
	CLK_TOP_ASM_L_SEL
	CLK_TOP_ASM_M_SEL
	CLK_TOP_ASM_H_SEL
	CLK_TOP_APLL1_SEL
	CLK_TOP_APLL2_SEL
	CLK_TOP_I2S0_MCK_SEL
	CLK_TOP_I2S1_MCK_SEL
	CLK_TOP_I2S2_MCK_SEL
	CLK_TOP_I2S3_MCK_SEL
	CLK_TOP_NR
)

// infracfg
const (
	CLK_INFRA_DBGCLK_PD = iota
	CLK_INFRA_TRNG
	CLK_INFRA_AUDIO_PD
	CLK_INFRA_IRRX_PD
	CLK_INFRA_APXGPT_PD
	CLK_INFRA_PMIC_PD
)

// pericfg
const (
	CLK_PERI_THERM_PD = iota
	CLK_PERI_PWM1_PD
	CLK_PERI_PWM2_PD
	CLK_PERI_PWM3_PD
	CLK_PERI_PWM4_PD
	CLK_PERI_PWM5_PD
	CLK_PERI_PWM6_PD
	CLK_PERI_PWM7_PD
	CLK_PERI_PWM_PD
	CLK_PERI_AP_DMA_PD
	CLK_PERI_MSDC30_0_PD
	CLK_PERI_MSDC30_1_PD
	CLK_PERI_UART0_PD
	CLK_PERI_UART1_PD
	CLK_PERI_UART2_PD
	CLK_PERI_UART3_PD
	CLK_PERI_BTIF_PD
	CLK_PERI_I2C0_PD
	CLK_PERI_I2C1_PD
	CLK_PERI_I2C2_PD
	CLK_PERI_SPI1_PD
	CLK_PERI_AUXADC_PD
	CLK_PERI_SPI0_PD
	CLK_PERI_SNFI_PD
	CLK_PERI_NFI_PD
	CLK_PERI_NFIECC_PD
	CLK_PERI_FLASH_PD
	CLK_PERI_IRTX_PD
)

// ethsys
const (
	CLK_ETH_HSDMA_EN = iota
	CLK_ETH_ESW_EN
	CLK_ETH_GP2_EN
	CLK_ETH_GP1_EN
	CLK_ETH_GP0_EN
)

// sgmiisys
const (
	CLK_SGMII_TX250M_EN = iota
	CLK_SGMII_RX250M_EN
	CLK_SGMII_CDR_REF
	CLK_SGMII_CDR_FB
)

// ssusbsys
const (
	CLK_SSUSB_U2_PHY_1P_EN = iota
	CLK_SSUSB_U2_PHY_EN
	CLK_SSUSB_REF_EN
	CLK_SSUSB_SYS_EN
	CLK_SSUSB_MCU_EN
	CLK_SSUSB_DMA_EN
)

// pciesys
const (
	CLK_PCIE_P1_AUX_EN = iota
	CLK_PCIE_P1_OBFF_EN
	CLK_PCIE_P1_AHB_EN
	CLK_PCIE_P1_AXI_EN
	CLK_PCIE_P1_MAC_EN
	CLK_PCIE_P1_PIPE_EN
	CLK_PCIE_P0_AUX_EN
	CLK_PCIE_P0_OBFF_EN
	CLK_PCIE_P0_AHB_EN
	CLK_PCIE_P0_AXI_EN
	CLK_PCIE_P0_MAC_EN
	CLK_PCIE_P0_PIPE_EN
	CLK_SATA_AHB_EN
	CLK_SATA_AXI_EN
	CLK_SATA_ASIC_EN
	CLK_SATA_RBC_EN
	CLK_SATA_PM_EN
)

// reset lines of the ethsys, ssusbsys and pciesys reset controllers
const (
	MT7622_ETHSYS_SYS_RST    = 0
	MT7622_ETHSYS_MCM_RST    = 2
	MT7622_ETHSYS_HSDMA_RST  = 5
	MT7622_ETHSYS_FE_RST     = 6
	MT7622_ETHSYS_GMAC_RST   = 23
	MT7622_ETHSYS_EPHY_RST   = 24
	MT7622_ETHSYS_CRYPTO_RST = 25
	MT7622_ETHSYS_PCIE_RST   = 31

	MT7622_SSUSB_PHY_PWR_RST = 3
	MT7622_SSUSB_MAC_PWR_RST = 4

	MT7622_PCIE1_CORE_RST = 19
	MT7622_PCIE1_MMIO_RST = 20
	MT7622_PCIE1_HRST     = 21
	MT7622_PCIE1_USER_RST = 22
	MT7622_PCIE1_PIPE_RST = 23
	MT7622_PCIE0_CORE_RST = 27
	MT7622_PCIE0_MMIO_RST = 28
	MT7622_PCIE0_HRST     = 29
	MT7622_PCIE0_USER_RST = 30
	MT7622_PCIE0_PIPE_RST = 31
)

const (
	NSInfracfg clk.Namespace = "infracfg"
	NSPericfg  clk.Namespace = "pericfg"
	NSEthsys   clk.Namespace = "ethsys"
	NSSgmiisys clk.Namespace = "sgmiisys"
	NSSsusbsys clk.Namespace = "ssusbsys"
	NSPciesys  clk.Namespace = "pciesys"
)

func top(id int) clk.Ref { return clk.Top(id) }
func apm(id int) clk.Ref { return clk.Apmixed(id) }
