// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package consumer

import (
	"errors"
	"testing"
	"time"

	"clklib/pkg/clk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	op string
	id int
}

type fakeClocks struct {
	log  *[]event
	fail map[int]bool
}

func (f fakeClocks) Enable(r clk.Ref) error {
	*f.log = append(*f.log, event{"enable", r.ID})
	if f.fail[r.ID] {
		return clk.ErrHardwareNotReady
	}
	return nil
}

func (f fakeClocks) Disable(r clk.Ref) error {
	*f.log = append(*f.log, event{"disable", r.ID})
	return nil
}

func (f fakeClocks) Rate(r clk.Ref) (uint64, error) {
	return uint64(r.ID) * 1000, nil
}

type fakeResets struct {
	log  *[]event
	fail bool
}

func (f fakeResets) Request(id int) error {
	if id > 31 {
		return errors.New("bad line")
	}
	return nil
}

func (f fakeResets) Assert(id int) error {
	*f.log = append(*f.log, event{"assert", id})
	return nil
}

func (f fakeResets) Deassert(id int) error {
	*f.log = append(*f.log, event{"deassert", id})
	if f.fail {
		return errors.New("stuck")
	}
	return nil
}

func desc() Desc {
	ns := clk.Namespace("pciesys")
	return Desc{
		Name: "port0",
		Clocks: []Clock{
			{"sys_ck", clk.Ref{NS: ns, ID: 1}},
			{"ahb_ck", clk.Ref{NS: ns, ID: 2}},
			{"aux_ck", clk.Ref{NS: ns, ID: 3}},
		},
		ResetNS: ns,
		Resets:  []int{7, 8},
	}
}

func TestEnableOrder(t *testing.T) {
	var log []event
	var delays []time.Duration
	b, err := New(desc(), fakeClocks{log: &log}, fakeResets{log: &log})
	require.NoError(t, err)
	b.Delay = func(d time.Duration) { delays = append(delays, d) }

	require.NoError(t, b.Enable())
	assert.Equal(t, []event{
		{"enable", 1}, {"enable", 2}, {"enable", 3},
		{"assert", 7}, {"assert", 8}, {"deassert", 7}, {"deassert", 8},
	}, log)
	assert.Equal(t, []time.Duration{RESET_HOLD, RESET_HOLD}, delays)
}

func TestEnableRollsBack(t *testing.T) {
	var log []event
	b, err := New(desc(), fakeClocks{log: &log, fail: map[int]bool{2: true}}, fakeResets{log: &log})
	require.NoError(t, err)
	b.Delay = nil

	err = b.Enable()
	assert.ErrorIs(t, err, clk.ErrHardwareNotReady)
	assert.Contains(t, err.Error(), "ahb_ck")
	assert.Equal(t, []event{
		{"enable", 1}, {"enable", 2},
		{"disable", 1}, {"disable", 2}, {"disable", 3},
	}, log)
}

func TestResetFailureDisablesClocks(t *testing.T) {
	var log []event
	b, err := New(desc(), fakeClocks{log: &log}, fakeResets{log: &log, fail: true})
	require.NoError(t, err)
	b.Delay = nil

	assert.Error(t, b.Enable())
	assert.Equal(t, event{"disable", 3}, log[len(log)-1])
}

func TestNewChecksResets(t *testing.T) {
	var log []event
	_, err := New(desc(), fakeClocks{log: &log}, nil)
	assert.ErrorIs(t, err, clk.ErrResourceUnavailable)

	s := desc()
	s.Resets = []int{40}
	_, err = New(s, fakeClocks{log: &log}, fakeResets{log: &log})
	assert.Error(t, err)

	s.Resets = nil
	b, err := New(s, fakeClocks{log: &log}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Enable())
	assert.Len(t, log, 3)
}

func TestRates(t *testing.T) {
	var log []event
	b, err := New(desc(), fakeClocks{log: &log}, fakeResets{log: &log})
	require.NoError(t, err)
	rates, err := b.Rates()
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"sys_ck": 1000, "ahb_ck": 2000, "aux_ck": 3000}, rates)
	assert.Equal(t, "port0", b.Name())
}
