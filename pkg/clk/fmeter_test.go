// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureCKGEN(t *testing.T) {
	ts := newTestSys(t, testTree())
	top, sim := ts.h[NSTopckgen], ts.sims[NSTopckgen]
	sim.ClearAfter(0x220, FMETER_CKGEN_TRI_CAL, 3)
	sim.Stick(0x228, 1024, 0)

	khz, err := top.Measure(MeterCKGEN, 0x12)
	require.NoError(t, err)
	assert.Equal(t, uint64(25000), khz)
	assert.Equal(t, uint32(0x12<<16), sim.Peek(0x104)&0x3F0000)
	assert.Equal(t, uint32(FMETER_WINDOW<<16), sim.Peek(0x228))
	assert.Zero(t, sim.Peek(0x220)&FMETER_EN)
	assert.Equal(t, 2, top.fmeter.MaxWait())
}

func TestMeasureABIST(t *testing.T) {
	ts := newTestSys(t, testTree())
	top, sim := ts.h[NSTopckgen], ts.sims[NSTopckgen]
	sim.ClearAfter(0x220, FMETER_ABIST_TRI_CAL, 1)
	sim.Stick(0x224, 2048, 0)

	khz, err := top.Measure(MeterABIST, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(50000), khz)
	assert.Equal(t, uint32(3<<8), sim.Peek(0x100)&0x3F00)
}

func TestMeasureTimeout(t *testing.T) {
	ts := newTestSys(t, testTree())
	top, sim := ts.h[NSTopckgen], ts.sims[NSTopckgen]
	sim.Stick(0x220, FMETER_ABIST_TRI_CAL, 0)

	_, err := top.Measure(MeterABIST, 1)
	assert.ErrorIs(t, err, ErrHardwareNotReady)
	assert.Len(t, ts.delays, 100)

	// the wait cap tightens after a fast measurement and stays with this block
	sim.Stick(0x220, 0, 0)
	sim.ClearAfter(0x220, FMETER_ABIST_TRI_CAL, 2)
	_, err = top.Measure(MeterABIST, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, top.fmeter.MaxWait())

	other := newTestSys(t, testTree())
	assert.Zero(t, other.h[NSTopckgen].fmeter.MaxWait())
}

func TestMeasureErrors(t *testing.T) {
	ts := newTestSys(t, testTree())
	_, err := ts.h[nsEth].Measure(MeterCKGEN, 1)
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = ts.h[NSTopckgen].Measure(MeterCKGEN, 0x40)
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	tree := testTree()
	tree.FMeter = nil
	_, err = newTestSys(t, tree).h[NSTopckgen].Measure(MeterCKGEN, 1)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}
