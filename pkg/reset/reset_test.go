// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package reset

import (
	"testing"

	"clklib/pkg/regs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertDeassert(t *testing.T) {
	sim := regs.NewSim()
	sim.Poke(0x34, 0x10)
	c := New("pciesys", sim, 0x34, 1)
	assert.Equal(t, 32, c.NumResets())

	require.NoError(t, c.Assert(31))
	assert.Equal(t, uint32(0x80000010), sim.Peek(0x34))
	on, err := c.Asserted(31)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, c.Deassert(31))
	assert.Equal(t, uint32(0x10), sim.Peek(0x34))
}

func TestSecondRegister(t *testing.T) {
	sim := regs.NewSim()
	c := New("wide", sim, 0x100, 2)
	require.NoError(t, c.Assert(33))
	assert.Equal(t, uint32(0x2), sim.Peek(0x104))
	assert.Zero(t, sim.Peek(0x100))
}

func TestUnknownReset(t *testing.T) {
	c := New("ethsys", regs.NewSim(), 0x34, 1)
	for _, id := range []int{-1, 32, 100} {
		assert.ErrorIs(t, c.Request(id), ErrUnknownReset, id)
		assert.ErrorIs(t, c.Assert(id), ErrUnknownReset, id)
		assert.ErrorIs(t, c.Deassert(id), ErrUnknownReset, id)
	}
	assert.NoError(t, c.Request(0))
}
