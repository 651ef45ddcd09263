// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package mt7622

import (
	"testing"

	"clklib/pkg/clk"
	"clklib/pkg/consumer"
	"clklib/pkg/regs"
	"clklib/pkg/reset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type board struct {
	sys  *clk.System
	sims map[string]*regs.Sim
}

func probeAll(t *testing.T) *board {
	t.Helper()
	sys, err := clk.NewSystem(Tree)
	require.NoError(t, err)
	sys.Delay = nil
	b := &board{sys: sys, sims: map[string]*regs.Sim{}}
	for _, d := range Chip.Drivers {
		sim := clk.NewSimBlock(Tree, d.NS)
		require.NoError(t, d.Probe(sys, sim), d.Compatible)
		b.sims[d.Compatible[len(COMPATIBLE_PREFIX):]] = sim
	}
	return b
}

func TestTreeLayout(t *testing.T) {
	require.NoError(t, Tree.Validate())
	assert.Len(t, Tree.Fixed, 10)
	assert.Len(t, Tree.Factors, 46)
	assert.Len(t, Tree.Muxes, 37)
	assert.Equal(t, CLK_TOP_NR, CLK_TOP_AXI_SEL+len(Tree.Muxes))
	assert.Len(t, Tree.PLLs, 9)

	r, err := Tree.ParseRef("topckgen:axi_sel")
	require.NoError(t, err)
	assert.Equal(t, clk.Top(CLK_TOP_AXI_SEL), r)
	r, err = Tree.ParseRef("pciesys:sata_pm_en")
	require.NoError(t, err)
	assert.Equal(t, clk.Ref{NS: NSPciesys, ID: CLK_SATA_PM_EN}, r)
}

func TestAuddivMuxes(t *testing.T) {
	b := probeAll(t)
	top, err := b.sys.Handle(clk.NSTopckgen)
	require.NoError(t, err)
	for i, id := range []int{CLK_TOP_APLL1_SEL, CLK_TOP_APLL2_SEL, CLK_TOP_I2S0_MCK_SEL,
		CLK_TOP_I2S1_MCK_SEL, CLK_TOP_I2S2_MCK_SEL, CLK_TOP_I2S3_MCK_SEL} {
		require.NoError(t, top.SelectMuxParent(id, 1))
		assert.Equal(t, uint32(1)<<(6+i), b.sims["topckgen"].Peek(0x120)&(uint32(1)<<(6+i)), id)
	}
	assert.Equal(t, uint32(0xFC0), b.sims["topckgen"].Peek(0x120))
}

func TestEthSelPlaceholder(t *testing.T) {
	b := probeAll(t)
	top, err := b.sys.Handle(clk.NSTopckgen)
	require.NoError(t, err)

	assert.ErrorIs(t, top.SelectMuxParent(CLK_TOP_ETH_SEL, 5), clk.ErrInvalidCandidate)
	assert.ErrorIs(t, top.SelectMuxParent(CLK_TOP_PMICSPI_SEL, 2), clk.ErrInvalidCandidate)

	require.NoError(t, top.SelectMuxParent(CLK_TOP_ETH_SEL, 0))
	p, err := top.ParentOf(CLK_TOP_ETH_SEL)
	require.NoError(t, err)
	assert.Equal(t, clk.Xtal, p)

	// hardware left on the hole reports it instead of guessing
	b.sims["topckgen"].Poke(0x40, 5<<24)
	_, err = b.sys.Rate(clk.Ref{NS: NSEthsys, ID: CLK_ETH_HSDMA_EN})
	assert.ErrorIs(t, err, clk.ErrInvalidParentSelection)
}

func TestRates(t *testing.T) {
	b := probeAll(t)
	apm, err := b.sys.Handle(clk.NSApmixed)
	require.NoError(t, err)
	top, err := b.sys.Handle(clk.NSTopckgen)
	require.NoError(t, err)

	require.NoError(t, apm.SetPLLRate(CLK_APMIXED_ETH1PLL, 500*MHZ))
	require.NoError(t, apm.SetPLLRate(CLK_APMIXED_UNIV2PLL, 1250*MHZ))
	require.NoError(t, apm.SetPLLRate(CLK_APMIXED_MAINPLL, 1120*MHZ))
	require.NoError(t, top.SelectMuxParent(CLK_TOP_MEM_SEL, 1))

	tests := []struct {
		ref  clk.Ref
		rate uint64
	}{
		{clk.Top(CLK_TOP_TO_USB3_SYS), 125 * MHZ},
		{clk.Top(CLK_TOP_P1_1MHZ), 1 * MHZ},
		{clk.Top(CLK_TOP_4MHZ), 4 * MHZ},
		{clk.Top(CLK_TOP_ETH_500M), 500 * MHZ},
		{clk.Top(CLK_TOP_RTC), 24414},
		{clk.Top(CLK_TOP_MEM_SEL), 800 * MHZ},
		{clk.Top(CLK_TOP_UNIVPLL), 625 * MHZ},
		{clk.Top(CLK_TOP_UNIVPLL_D2), 312_500_000},
		{clk.Top(CLK_TOP_TO_USB3_REF), 13_020_833},
		{clk.Top(CLK_TOP_SYSPLL1_D2), 279_999_923},
		{clk.Top(CLK_TOP_AXI_SEL), 25 * MHZ},
		{clk.Ref{NS: NSPciesys, ID: CLK_PCIE_P0_AUX_EN}, 1 * MHZ},
		{clk.Ref{NS: NSPciesys, ID: CLK_SATA_PM_EN}, 52_083_333},
		{clk.Ref{NS: NSPciesys, ID: CLK_PCIE_P1_PIPE_EN}, 125 * MHZ},
		{clk.Ref{NS: NSSsusbsys, ID: CLK_SSUSB_SYS_EN}, 125 * MHZ},
		{clk.Ref{NS: NSPericfg, ID: CLK_PERI_PWM1_PD}, 25 * MHZ},
		{clk.Ref{NS: NSSgmiisys, ID: CLK_SGMII_CDR_REF}, 33_333_333},
	}
	for _, tc := range tests {
		rate, err := b.sys.Rate(tc.ref)
		require.NoError(t, err, tc.ref)
		assert.Equal(t, tc.rate, rate, tc.ref)
	}

	require.NoError(t, top.SelectMuxParent(CLK_TOP_AXI_SEL, 1))
	rate, err := b.sys.Rate(clk.Ref{NS: NSPericfg, ID: CLK_PERI_UART0_PD})
	require.NoError(t, err)
	assert.Equal(t, uint64(279_999_923), rate)
}

func TestProbeFixups(t *testing.T) {
	sys, err := clk.NewSystem(Tree)
	require.NoError(t, err)
	mcu := regs.NewSim()
	mcu.Poke(MCU_AXI_DIV, 0xFFFFFFFF)
	mcu.Poke(MCU_BUS_MUX, 0x0000F800)
	d, ok := Chip.Driver(COMPATIBLE_PREFIX + "mcucfg")
	require.True(t, ok)
	require.NoError(t, d.Probe(sys, mcu))
	assert.Equal(t, uint32(0xFFFFFFF2), mcu.Peek(MCU_AXI_DIV))
	assert.Equal(t, uint32(0x0000FA00), mcu.Peek(MCU_BUS_MUX))

	b := probeAll(t)
	assert.Equal(t, uint32(0x98940501), b.sims["apmixedsys"].Peek(MT7622_CLKSQ_STB_CON0))
	assert.Equal(t, uint32(0x80008), b.sims["apmixedsys"].Peek(MT7622_PLL_ISO_CON0))
}

func TestBootPolicy(t *testing.T) {
	b := probeAll(t)
	// every peri0 gate except UART0 is stopped
	var gated uint32
	for _, g := range periCGs {
		if g.Regs == peri0CGRegs && g.ID != CLK_PERI_UART0_PD {
			gated |= 1 << g.Shift
		}
	}
	assert.Equal(t, gated, b.sims["pericfg"].Peek(0x18))
	assert.Equal(t, uint32(1<<31), b.sims["pericfg"].Peek(0x1C)&(1<<31))

	per, err := b.sys.Handle(NSPericfg)
	require.NoError(t, err)
	on, err := per.IsEnabled(CLK_PERI_UART0_PD)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, per.Enable(CLK_PERI_NFIECC_PD))
	assert.Zero(t, b.sims["pericfg"].Peek(0x1C)&(1<<31))

	assert.Zero(t, b.sims["pciesys"].Peek(0x30))
}

func TestHifSelReleasesSCPSYS(t *testing.T) {
	b := probeAll(t)
	require.NoError(t, b.sys.Enable(clk.Top(CLK_TOP_HIF_SEL)))
	assert.Equal(t, uint32(clk.SCP_ARMCK_OFF_EN), b.sims["topckgen"].Peek(clk.CLK_SCP_CFG0))
	assert.Equal(t, uint32(clk.SCP_AXICK_DCM_DIS_EN|clk.SCP_AXICK_26M_SEL_EN), b.sims["topckgen"].Peek(clk.CLK_SCP_CFG1))
}

func TestPCIeBundle(t *testing.T) {
	b := probeAll(t)
	rst := reset.New("pciesys", b.sims["pciesys"], ETHSYS_HIFSYS_RST_CTRL_OFS, 1)
	bundle, err := consumer.New(PCIe0, b.sys, rst)
	require.NoError(t, err)
	bundle.Delay = nil

	require.NoError(t, bundle.Enable())
	assert.Equal(t, uint32(0x3F<<18), b.sims["pciesys"].Peek(0x30))
	assert.Zero(t, b.sims["pciesys"].Peek(ETHSYS_HIFSYS_RST_CTRL_OFS))

	require.NoError(t, bundle.Disable())
	assert.Zero(t, b.sims["pciesys"].Peek(0x30))
}

func TestConsumersResolve(t *testing.T) {
	for name, desc := range Consumers {
		assert.Equal(t, name, desc.Name)
		for _, c := range desc.Clocks {
			_, err := Tree.Lookup(c.Ref)
			assert.NoError(t, err, "%s %s", name, c.Name)
		}
	}
}

func TestFrequencyMeter(t *testing.T) {
	b := probeAll(t)
	top, err := b.sys.Handle(clk.NSTopckgen)
	require.NoError(t, err)
	sim := b.sims["topckgen"]
	sim.ClearAfter(CLK26CALI_0, clk.FMETER_CKGEN_TRI_CAL, 1)
	sim.Stick(CLK26CALI_2, 0x2000, 0)

	khz, err := top.Measure(clk.MeterCKGEN, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(200000), khz)
}
