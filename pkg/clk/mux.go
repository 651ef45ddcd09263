// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements mux selection and the mux companion gates.
package clk

import (
	"fmt"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

const CLK_SCP_CFG0 = 0x200
const CLK_SCP_CFG1 = 0x204
const SCP_ARMCK_OFF_EN = 0x3FF // bits 9:0
const SCP_AXICK_DCM_DIS_EN = 1 << 0
const SCP_AXICK_26M_SEL_EN = 1 << 4

func (m *Mux) field() regs.Field {
	return regs.Field{Offset: int(m.Shift), Bitwidth: int(m.Width)}
}

// index returns the candidate position of parent.
func (m *Mux) index(parent Ref) (int, error) {
	if parent.IsNone() {
		return -1, fmt.Errorf("mux %s: %w", m.Name, ErrInvalidCandidate)
	}
	for i, p := range m.Parents {
		if p == parent {
			return i, nil
		}
	}
	return -1, fmt.Errorf("mux %s: %v is not a candidate: %w", m.Name, parent, ErrInvalidCandidate)
}

func (m *Mux) checkIndex(index int) error {
	if index < 0 || index >= len(m.Parents) {
		return fmt.Errorf("mux %s: index %d of %d: %w", m.Name, index, len(m.Parents), ErrInvalidCandidate)
	}
	if m.Parents[index].IsNone() {
		return fmt.Errorf("mux %s: index %d is unavailable: %w", m.Name, index, ErrInvalidCandidate)
	}
	return nil
}

func (h *Handle) muxParent(m *Mux) (Ref, error) {
	idx := int(m.field().Read(h.regs.Read32(m.Reg)))
	if idx >= len(m.Parents) || m.Parents[idx].IsNone() {
		return None, fmt.Errorf("mux %s selects index %d: %w", m.Name, idx, ErrInvalidParentSelection)
	}
	return m.Parents[idx], nil
}

func (h *Handle) topMux(id int) (*Mux, error) {
	if h.ns != NSTopckgen {
		return nil, fmt.Errorf("%v: %w", h.ref(id), ErrWrongKind)
	}
	return h.sys.tree.mux(id)
}

// SelectMuxParent programs the selection field of mux id. The companion gate is untouched.
func (h *Handle) SelectMuxParent(id, index int) error {
	m, err := h.topMux(id)
	if err != nil {
		return err
	}
	if err := m.checkIndex(index); err != nil {
		return err
	}
	val := h.regs.Read32(m.Reg)
	m.field().Write(&val, uint32(index))
	h.regs.Write32(m.Reg, val)
	klog.V(regs.DBG_LVL_INFO).InfoS("clk.SelectMuxParent", "mux", m.Name, "index", index, "parent", m.Parents[index])
	return nil
}

// SelectMuxParentGate programs the selection and the companion gate of mux id in one write.
func (h *Handle) SelectMuxParentGate(id, index int, on bool) error {
	m, err := h.topMux(id)
	if err != nil {
		return err
	}
	if err := m.checkIndex(index); err != nil {
		return err
	}
	if m.GateShift < 0 {
		return fmt.Errorf("mux %s: %w", m.Name, ErrNotGateable)
	}
	val := h.regs.Read32(m.Reg)
	m.field().Write(&val, uint32(index))
	if on {
		val &^= uint32(1) << m.GateShift
	} else {
		val |= uint32(1) << m.GateShift
	}
	h.regs.Write32(m.Reg, val)
	klog.V(regs.DBG_LVL_INFO).InfoS("clk.SelectMuxParentGate", "mux", m.Name, "index", index, "on", on)
	if on {
		h.scpsys(m)
	}
	return nil
}

// SetParent selects parent on mux id.
func (h *Handle) SetParent(id int, parent Ref) error {
	m, err := h.topMux(id)
	if err != nil {
		return err
	}
	idx, err := m.index(parent)
	if err != nil {
		return err
	}
	return h.SelectMuxParent(id, idx)
}

func (h *Handle) muxGate(m *Mux, on bool) error {
	if m.GateShift < 0 {
		return nil
	}
	bit := uint32(1) << m.GateShift
	if on {
		regs.ClrBits(h.regs, m.Reg, bit)
		h.scpsys(m)
	} else {
		regs.SetBits(h.regs, m.Reg, bit)
	}
	return nil
}

func (h *Handle) scpsys(m *Mux) {
	if m.Flags&MuxDomainSCPSYS == 0 {
		return
	}
	h.regs.Write32(CLK_SCP_CFG0, SCP_ARMCK_OFF_EN)
	h.regs.Write32(CLK_SCP_CFG1, SCP_AXICK_DCM_DIS_EN|SCP_AXICK_26M_SEL_EN)
}
