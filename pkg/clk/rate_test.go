// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorOfCrystal(t *testing.T) {
	sys, err := NewSystem(testTree())
	require.NoError(t, err)

	// nothing initialized: the path never touches registers
	rate, err := sys.Rate(Top(TOP_XTAL_D4))
	require.NoError(t, err)
	assert.Equal(t, uint64(6_250_000), rate)

	rate, err = sys.Rate(Top(TOP_FIXED_50M))
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), rate)

	_, err = sys.Rate(Top(TOP_PLL_D2))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	_, err = sys.Rate(Top(TOP_SEL_A))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestRateThroughPLL(t *testing.T) {
	ts := newTestSys(t, testTree())
	ts.sims[NSApmixed].Poke(0x104, 50<<14) // 1250 MHz, post divider 1

	tests := []struct {
		ref  Ref
		rate uint64
	}{
		{Apmixed(0), 1_250_000_000},
		{Top(TOP_PLL_D2), 625_000_000},
		{Top(TOP_PLL_D2_D3), 208_333_333},
		{Ref{NS: nsEth, ID: 0}, 625_000_000},
		{Ref{NS: nsEth, ID: 1}, 50_000_000},
		{Ref{NS: nsInfra, ID: 1}, 6_250_000},
	}
	for _, tc := range tests {
		rate, err := ts.sys.Rate(tc.ref)
		require.NoError(t, err, tc.ref)
		assert.Equal(t, tc.rate, rate, tc.ref)
	}
}

func TestMuxResolution(t *testing.T) {
	ts := newTestSys(t, testTree())
	ts.sims[NSApmixed].Poke(0x104, 50<<14)
	top := ts.h[NSTopckgen]

	rate, err := top.Rate(TOP_SEL_A)
	require.NoError(t, err)
	assert.Equal(t, uint64(25_000_000), rate)

	require.NoError(t, top.SelectMuxParent(TOP_SEL_A, 2))
	p, err := top.ParentOf(TOP_SEL_A)
	require.NoError(t, err)
	assert.Equal(t, Top(TOP_PLL_D2_D3), p)

	path, err := ts.sys.Path(Ref{NS: nsInfra, ID: 0})
	require.NoError(t, err)
	assert.Equal(t, []Ref{{NS: nsInfra, ID: 0}, Top(TOP_SEL_A), Top(TOP_PLL_D2_D3), Top(TOP_PLL_D2), Apmixed(0)}, path)

	rate, err = ts.sys.Rate(Ref{NS: nsInfra, ID: 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(208_333_333), rate)
}

func TestUnavailableSelection(t *testing.T) {
	ts := newTestSys(t, testTree())
	for _, idx := range []uint32{5, 7} {
		ts.sims[NSTopckgen].Poke(0x40, idx)
		_, err := ts.sys.ParentOf(Top(TOP_SEL_A))
		assert.ErrorIs(t, err, ErrInvalidParentSelection, idx)
		_, err = ts.sys.Rate(Ref{NS: nsInfra, ID: 0})
		assert.ErrorIs(t, err, ErrInvalidParentSelection, idx)
	}
}

func TestCycleDetected(t *testing.T) {
	ts := newTestSys(t, testTree())
	require.NoError(t, ts.h[NSTopckgen].SelectMuxParent(TOP_SEL_LOOP, 1))

	_, err := ts.sys.Rate(Top(TOP_SEL_LOOP))
	assert.ErrorIs(t, err, ErrCycleDetected)
	_, err = ts.sys.Path(Top(TOP_LOOP_BACK))
	assert.ErrorIs(t, err, ErrCycleDetected)

	require.NoError(t, ts.h[NSTopckgen].SelectMuxParent(TOP_SEL_LOOP, 0))
	rate, err := ts.sys.Rate(Top(TOP_LOOP_BACK))
	require.NoError(t, err)
	assert.Equal(t, uint64(25_000_000), rate)
}

func TestResolveIsDeterministic(t *testing.T) {
	ts := newTestSys(t, testTree())
	ts.sims[NSApmixed].Poke(0x104, 50<<14)
	require.NoError(t, ts.h[NSTopckgen].SelectMuxParent(TOP_SEL_A, 4))

	r := Ref{NS: nsInfra, ID: 0}
	first, err := ts.sys.Path(r)
	require.NoError(t, err)
	rate1, err := ts.sys.Rate(r)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := ts.sys.Path(r)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		rate, err := ts.sys.Rate(r)
		require.NoError(t, err)
		assert.Equal(t, rate1, rate)
	}
	term, err := ts.sys.Terminal(r)
	require.NoError(t, err)
	assert.Equal(t, Apmixed(0), term)
	assert.Equal(t, uint64(625_000_000), rate1)
}

func TestParentOfTerminals(t *testing.T) {
	ts := newTestSys(t, testTree())
	for _, r := range []Ref{Xtal, Apmixed(0), Top(TOP_FIXED_50M)} {
		p, err := ts.sys.ParentOf(r)
		require.NoError(t, err, r)
		assert.True(t, p.IsNone(), r)
	}
	_, err := ts.sys.ParentOf(Top(99))
	assert.ErrorIs(t, err, ErrUnknownClockID)
}

func TestGatesAndEnablePath(t *testing.T) {
	ts := newTestSys(t, testTree())
	ts.sims[NSApmixed].Poke(0x104, 50<<14)

	r := Ref{NS: nsEth, ID: 0}
	gates, err := ts.sys.Gates(r)
	require.NoError(t, err)
	assert.Equal(t, []Ref{r, Apmixed(0)}, gates)

	require.NoError(t, ts.sys.EnablePath(r))
	on, err := ts.h[NSApmixed].IsEnabled(0)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = ts.h[nsEth].IsEnabled(0)
	require.NoError(t, err)
	assert.True(t, on)

	gates, err = ts.sys.Gates(Ref{NS: nsInfra, ID: 0})
	require.NoError(t, err)
	assert.Equal(t, []Ref{{NS: nsInfra, ID: 0}, Top(TOP_SEL_A)}, gates)

	assert.ErrorIs(t, ts.sys.Enable(Xtal), ErrNotGateable)
	assert.ErrorIs(t, ts.sys.Enable(Ref{NS: nsEth, ID: 9}), ErrUnknownClockID)
}
