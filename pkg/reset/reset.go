// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// Package reset implements the reset controllers that share a register block with a clock controller.
// Reset line n is bit n%32 of the n/32th register from the control offset; a set bit holds the line in reset.
package reset

import (
	"errors"
	"fmt"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

var ErrUnknownReset = errors.New("unknown reset line")

type Controller struct {
	name     string
	regs     regs.Window
	regofs   uint32
	nrResets int
}

// New binds a controller with nregs 32 bit control registers at regofs.
func New(name string, w regs.Window, regofs uint32, nregs int) *Controller {
	klog.V(regs.DBG_LVL_BASIC).InfoS("reset.New", "name", name, "regofs", regs.Hex(regofs), "nregs", nregs)
	return &Controller{name: name, regs: w, regofs: regofs, nrResets: nregs * 32}
}

func (c *Controller) Name() string   { return c.name }
func (c *Controller) NumResets() int { return c.nrResets }

// Request validates a reset line before use.
func (c *Controller) Request(id int) error {
	if id < 0 || id >= c.nrResets {
		return fmt.Errorf("%s reset %d of %d: %w", c.name, id, c.nrResets, ErrUnknownReset)
	}
	return nil
}

func (c *Controller) reg(id int) (uint32, uint32, error) {
	if err := c.Request(id); err != nil {
		return 0, 0, err
	}
	return c.regofs + uint32(id/32)*4, uint32(1) << (id % 32), nil
}

func (c *Controller) Assert(id int) error {
	ofs, bit, err := c.reg(id)
	if err != nil {
		return err
	}
	klog.V(regs.DBG_LVL_INFO).InfoS("reset.Assert", "name", c.name, "id", id)
	regs.SetBits(c.regs, ofs, bit)
	return nil
}

func (c *Controller) Deassert(id int) error {
	ofs, bit, err := c.reg(id)
	if err != nil {
		return err
	}
	klog.V(regs.DBG_LVL_INFO).InfoS("reset.Deassert", "name", c.name, "id", id)
	regs.ClrBits(c.regs, ofs, bit)
	return nil
}

// Asserted reports whether line id is held in reset.
func (c *Controller) Asserted(id int) (bool, error) {
	ofs, bit, err := c.reg(id)
	if err != nil {
		return false, err
	}
	return c.regs.Read32(ofs)&bit != 0, nil
}
