// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"clklib/pkg/clk"
	"clklib/pkg/consumer"
)

func pcie(id int) clk.Ref  { return clk.Ref{NS: NSPciesys, ID: id} }
func ssusb(id int) clk.Ref { return clk.Ref{NS: NSSsusbsys, ID: id} }
func eth(id int) clk.Ref   { return clk.Ref{NS: NSEthsys, ID: id} }
func sgmii(id int) clk.Ref { return clk.Ref{NS: NSSgmiisys, ID: id} }

var PCIe0 = consumer.Desc{
	Name: "pcie0",
	Clocks: []consumer.Clock{
		{Name: "sys_ck", Ref: pcie(CLK_PCIE_P0_MAC_EN)},
		{Name: "ahb_ck", Ref: pcie(CLK_PCIE_P0_AHB_EN)},
		{Name: "aux_ck", Ref: pcie(CLK_PCIE_P0_AUX_EN)},
		{Name: "axi_ck", Ref: pcie(CLK_PCIE_P0_AXI_EN)},
		{Name: "obff_ck", Ref: pcie(CLK_PCIE_P0_OBFF_EN)},
		{Name: "pipe_ck", Ref: pcie(CLK_PCIE_P0_PIPE_EN)},
	},
	ResetNS: NSPciesys,
	Resets: []int{MT7622_PCIE0_CORE_RST, MT7622_PCIE0_MMIO_RST, MT7622_PCIE0_HRST,
		MT7622_PCIE0_USER_RST, MT7622_PCIE0_PIPE_RST},
}

var PCIe1 = consumer.Desc{
	Name: "pcie1",
	Clocks: []consumer.Clock{
		{Name: "sys_ck", Ref: pcie(CLK_PCIE_P1_MAC_EN)},
		{Name: "ahb_ck", Ref: pcie(CLK_PCIE_P1_AHB_EN)},
		{Name: "aux_ck", Ref: pcie(CLK_PCIE_P1_AUX_EN)},
		{Name: "axi_ck", Ref: pcie(CLK_PCIE_P1_AXI_EN)},
		{Name: "obff_ck", Ref: pcie(CLK_PCIE_P1_OBFF_EN)},
		{Name: "pipe_ck", Ref: pcie(CLK_PCIE_P1_PIPE_EN)},
	},
	ResetNS: NSPciesys,
	Resets: []int{MT7622_PCIE1_CORE_RST, MT7622_PCIE1_MMIO_RST, MT7622_PCIE1_HRST,
		MT7622_PCIE1_USER_RST, MT7622_PCIE1_PIPE_RST},
}

var SATA = consumer.Desc{
	Name: "sata",
	Clocks: []consumer.Clock{
		{Name: "ahb", Ref: pcie(CLK_SATA_AHB_EN)},
		{Name: "axi", Ref: pcie(CLK_SATA_AXI_EN)},
		{Name: "asic", Ref: pcie(CLK_SATA_ASIC_EN)},
		{Name: "rbc", Ref: pcie(CLK_SATA_RBC_EN)},
		{Name: "pm", Ref: pcie(CLK_SATA_PM_EN)},
	},
}

var SSUSB = consumer.Desc{
	Name: "ssusb",
	Clocks: []consumer.Clock{
		{Name: "sys_ck", Ref: ssusb(CLK_SSUSB_SYS_EN)},
		{Name: "ref_ck", Ref: ssusb(CLK_SSUSB_REF_EN)},
		{Name: "mcu_ck", Ref: ssusb(CLK_SSUSB_MCU_EN)},
		{Name: "dma_ck", Ref: ssusb(CLK_SSUSB_DMA_EN)},
		{Name: "u2_phy", Ref: ssusb(CLK_SSUSB_U2_PHY_EN)},
		{Name: "u2_phy_1p", Ref: ssusb(CLK_SSUSB_U2_PHY_1P_EN)},
	},
}

var Ethernet = consumer.Desc{
	Name: "eth",
	Clocks: []consumer.Clock{
		{Name: "ethif", Ref: eth(CLK_ETH_HSDMA_EN)},
		{Name: "esw", Ref: eth(CLK_ETH_ESW_EN)},
		{Name: "gp0", Ref: eth(CLK_ETH_GP0_EN)},
		{Name: "gp1", Ref: eth(CLK_ETH_GP1_EN)},
		{Name: "gp2", Ref: eth(CLK_ETH_GP2_EN)},
		{Name: "sgmii_tx250m", Ref: sgmii(CLK_SGMII_TX250M_EN)},
		{Name: "sgmii_rx250m", Ref: sgmii(CLK_SGMII_RX250M_EN)},
		{Name: "sgmii_cdr_ref", Ref: sgmii(CLK_SGMII_CDR_REF)},
		{Name: "sgmii_cdr_fb", Ref: sgmii(CLK_SGMII_CDR_FB)},
	},
	ResetNS: NSEthsys,
	Resets:  []int{MT7622_ETHSYS_FE_RST},
}

// Consumers lists the peripheral bundles by name.
var Consumers = map[string]consumer.Desc{
	PCIe0.Name:    PCIe0,
	PCIe1.Name:    PCIe1,
	SATA.Name:     SATA,
	SSUSB.Name:    SSUSB,
	Ethernet.Name: Ethernet,
}
