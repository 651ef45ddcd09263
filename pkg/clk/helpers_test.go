// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import (
	"testing"
	"time"

	"clklib/pkg/regs"

	"github.com/stretchr/testify/require"
)

const nsInfra Namespace = "infra"
const nsEth Namespace = "eth"

const (
	TOP_FIXED_50M = iota
	TOP_XTAL_D4
	TOP_PLL_D2
	TOP_PLL_D2_D3
	TOP_LOOP_BACK
	TOP_SEL_A
	TOP_SEL_LOOP
	TOP_SEL_SCP
)

var infraRegs = &GateRegs{Set: 0x40, Clr: 0x44, Sta: 0x48}
var ethRegs = &GateRegs{Set: 0x30, Clr: 0x30, Sta: 0x30}

func testTree() *Tree {
	return &Tree{
		Name:      "test",
		XtalRate:  25_000_000,
		Xtal2Rate: 25_000_000,
		PLLs: []PLL{
			{ID: 0, Name: "testpll", Reg: 0x100, PwrReg: 0x10c, EnMask: 0x1, RstBarMask: 1 << 24, Flags: PLLHaveRstBar,
				Fmax: 2_500_000_000, PcwBits: 21, PdReg: 0x104, PdShift: 24, PcwReg: 0x104},
			{ID: 1, Name: "lockpll", Reg: 0x200, PwrReg: 0x20c, EnMask: 0x1, Fmax: 2_500_000_000, PcwBits: 21,
				PdReg: 0x200, PdShift: 1, PcwReg: 0x204, ReadyReg: 0x208, ReadyMask: 0x1},
		},
		Fixed: []Fixed{
			{ID: TOP_FIXED_50M, Name: "fixed_50m", Rate: 50_000_000},
		},
		Factors: []Factor{
			{ID: TOP_XTAL_D4, Name: "xtal_d4", Parent: Xtal, Mult: 1, Div: 4},
			{ID: TOP_PLL_D2, Name: "pll_d2", Parent: Apmixed(0), Mult: 1, Div: 2},
			{ID: TOP_PLL_D2_D3, Name: "pll_d2_d3", Parent: Top(TOP_PLL_D2), Mult: 1, Div: 3},
			{ID: TOP_LOOP_BACK, Name: "loop_back", Parent: Top(TOP_SEL_LOOP), Mult: 1, Div: 1},
		},
		Muxes: []Mux{
			{ID: TOP_SEL_A, Name: "sel_a", Reg: 0x40, Shift: 0, Width: 3, GateShift: 7,
				Parents: []Ref{Xtal, Top(TOP_XTAL_D4), Top(TOP_PLL_D2_D3), Top(TOP_FIXED_50M), Top(TOP_PLL_D2), None}},
			{ID: TOP_SEL_LOOP, Name: "sel_loop", Reg: 0x40, Shift: 8, Width: 1, GateShift: -1,
				Parents: []Ref{Xtal, Top(TOP_LOOP_BACK)}},
			{ID: TOP_SEL_SCP, Name: "sel_scp", Reg: 0x50, Shift: 0, Width: 1, GateShift: 7, Flags: MuxDomainSCPSYS,
				Parents: []Ref{Xtal, Top(TOP_PLL_D2)}},
		},
		FactorsOffs: 1,
		MuxesOffs:   5,
		Gates: map[Namespace][]Gate{
			nsInfra: {
				{ID: 0, Name: "g_setclr", Parent: Top(TOP_SEL_A), Regs: infraRegs, Shift: 0, Conv: GateSetClr},
				{ID: 1, Name: "g_setclr_inv", Parent: Top(TOP_XTAL_D4), Regs: infraRegs, Shift: 1, Conv: GateSetClrInv},
				{ID: 2, Name: "g_crit", Parent: Xtal, Regs: infraRegs, Shift: 2, Conv: GateSetClrInv, Flags: GateCritical},
			},
			nsEth: {
				{ID: 0, Name: "g_direct", Parent: Top(TOP_PLL_D2), Regs: ethRegs, Shift: 0, Conv: GateDirect},
				{ID: 1, Name: "g_direct_inv", Parent: Top(TOP_FIXED_50M), Regs: ethRegs, Shift: 4, Conv: GateDirectInv},
			},
		},
		FMeter: &FMeterRegs{Cfg8: 0x100, Cfg9: 0x104, MiscCfg1: 0x214, Cali0: 0x220, Cali1: 0x224, Cali2: 0x228, RefKHz: 25000},
	}
}

type testSys struct {
	sys    *System
	delays []time.Duration
	sims   map[Namespace]*regs.Sim
	h      map[Namespace]*Handle
}

// newTestSys initializes every block of tree on simulated registers.
func newTestSys(t *testing.T, tree *Tree) *testSys {
	t.Helper()
	sys, err := NewSystem(tree)
	require.NoError(t, err)
	ts := &testSys{sys: sys, sims: map[Namespace]*regs.Sim{}, h: map[Namespace]*Handle{}}
	sys.Delay = func(d time.Duration) { ts.delays = append(ts.delays, d) }
	for _, ns := range tree.Namespaces() {
		sim := NewSimBlock(tree, ns)
		h, err := sys.InitTree(ns, sim)
		require.NoError(t, err, ns)
		ts.sims[ns] = sim
		ts.h[ns] = h
	}
	ts.delays = nil
	return ts
}
