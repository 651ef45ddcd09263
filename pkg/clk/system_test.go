// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import (
	"testing"

	"clklib/pkg/regs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGatesPolicy(t *testing.T) {
	ts := newTestSys(t, testTree())
	// g_setclr off, g_setclr_inv off (gated bit high), g_crit running (bit low)
	assert.Equal(t, uint32(0x2), ts.sims[nsInfra].Peek(0x48))
	// g_direct gated (bit high), g_direct_inv off (bit low)
	assert.Equal(t, uint32(0x1), ts.sims[nsEth].Peek(0x30))
}

func TestInitTwiceKeepsConsumerGates(t *testing.T) {
	ts := newTestSys(t, testTree())
	require.NoError(t, ts.sys.Enable(Ref{NS: nsEth, ID: 1}))
	require.NoError(t, ts.sys.Enable(Ref{NS: nsInfra, ID: 0}))
	before := map[Namespace][]regs.Access{}
	for ns, sim := range ts.sims {
		before[ns] = sim.Snapshot()
	}

	for _, ns := range ts.sys.Tree().Namespaces() {
		h, err := ts.sys.InitTree(ns, ts.sims[ns])
		require.NoError(t, err)
		assert.Same(t, ts.h[ns], h)
	}
	for ns, sim := range ts.sims {
		assert.Equal(t, before[ns], sim.Snapshot(), ns)
	}

	on, err := ts.h[nsEth].IsEnabled(1)
	require.NoError(t, err)
	assert.True(t, on)

	// a released gate falls back to the boot policy on the next init
	require.NoError(t, ts.sys.Disable(Ref{NS: nsInfra, ID: 0}))
	require.NoError(t, ts.sys.Enable(Ref{NS: nsInfra, ID: 1}))
	_, err = ts.sys.InitGates(nsInfra, ts.sims[nsInfra], nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0), ts.sims[nsInfra].Peek(0x48))
}

func TestInitTreeDefaults(t *testing.T) {
	tree := testTree()
	tree.MuxDefaults = []MuxDefault{
		{ID: TOP_SEL_A, Parent: Top(TOP_XTAL_D4), Enable: true},
		{ID: TOP_SEL_LOOP, Parent: Top(TOP_LOOP_BACK)},
	}
	tree.PLLDefaults = []PLLDefault{{ID: 0, Rate: 1_250_000_000}}

	sys, err := NewSystem(tree)
	require.NoError(t, err)
	sys.Delay = nil
	apmSim := regs.NewSim()
	topSim := regs.NewSim()
	topSim.Poke(0x40, 0x80)

	_, err = sys.InitTree(NSApmixed, apmSim)
	require.NoError(t, err)
	_, err = sys.InitTree(NSTopckgen, topSim)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x101), topSim.Peek(0x40))
	assert.Equal(t, uint32(0x1|1<<24), apmSim.Peek(0x100))

	rate, err := sys.Rate(Apmixed(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(1_250_000_000), rate)

	snap := topSim.Snapshot()
	_, err = sys.InitTree(NSTopckgen, topSim)
	require.NoError(t, err)
	assert.Equal(t, snap, topSim.Snapshot())
}

func TestInitErrors(t *testing.T) {
	sys, err := NewSystem(testTree())
	require.NoError(t, err)

	_, err = sys.InitTree("bogus", regs.NewSim())
	assert.ErrorIs(t, err, ErrUnknownClockID)
	_, err = sys.InitTree(NSTopckgen, nil)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	_, err = sys.InitGates(nsEth, nil, nil)
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	short := testTree().Gates[nsEth][:1]
	_, err = sys.InitGates(nsEth, regs.NewSim(), short)
	assert.ErrorIs(t, err, ErrInvalidTree)

	_, err = sys.Handle(nsEth)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	_, err = NewSystem(nil)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestInitGatesOnlyLeavesTopckgen(t *testing.T) {
	sys, err := NewSystem(testTree())
	require.NoError(t, err)
	sys.Delay = nil

	h, err := sys.InitGates(nsEth, NewSimBlock(sys.Tree(), nsEth), nil)
	require.NoError(t, err)
	assert.Equal(t, nsEth, h.Namespace())
	_, err = sys.Handle(NSTopckgen)
	assert.ErrorIs(t, err, ErrResourceUnavailable)

	rate, err := h.Rate(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), rate)
}

func TestBindWritesNothing(t *testing.T) {
	tree := testTree()
	tree.PLLDefaults = []PLLDefault{{ID: 0, Rate: 1_250_000_000}}
	sys, err := NewSystem(tree)
	require.NoError(t, err)
	sys.Delay = nil

	sims := map[Namespace]*regs.Sim{}
	for _, ns := range tree.Namespaces() {
		sim := NewSimBlock(tree, ns)
		sims[ns] = sim
		_, err := sys.Bind(ns, sim)
		require.NoError(t, err, ns)
	}
	// g_direct_inv left running by firmware
	sims[nsEth].Poke(0x30, 1<<4)
	sims[NSTopckgen].Poke(0x40, 3)

	for ns, sim := range sims {
		assert.Empty(t, sim.Writes(), ns)
	}
	on, err := sys.handles[nsEth].IsEnabled(1)
	require.NoError(t, err)
	assert.True(t, on)
	rate, err := sys.Rate(Top(TOP_SEL_A))
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), rate)

	_, err = sys.Bind("nope", regs.NewSim())
	assert.ErrorIs(t, err, ErrUnknownClockID)
	_, err = sys.Bind(nsEth, nil)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}
