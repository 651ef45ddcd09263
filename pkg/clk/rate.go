// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements parent resolution and rate computation across namespaces.
package clk

import (
	"fmt"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

// ParentOf returns the parent of r. Muxes report the candidate currently selected in
// hardware. Terminal sources (crystals, fixed sources and PLLs) return None.
func (s *System) ParentOf(r Ref) (Ref, error) {
	n, err := s.tree.Lookup(r)
	if err != nil {
		return None, err
	}
	switch n := n.(type) {
	case *Factor:
		return n.Parent, nil
	case *Gate:
		if h, ok := s.handles[r.NS]; ok {
			g, err := h.gate(r.ID)
			if err != nil {
				return None, err
			}
			return g.Parent, nil
		}
		return n.Parent, nil
	case *Mux:
		h, err := s.Handle(NSTopckgen)
		if err != nil {
			return None, err
		}
		return h.muxParent(n)
	}
	return None, nil
}

// Path returns r followed by each ancestor up to and including its terminal source.
// The walk is iterative and bounded by the size of the tree.
func (s *System) Path(r Ref) ([]Ref, error) {
	limit := s.tree.nodeCount()
	path := []Ref{r}
	cur := r
	for {
		p, err := s.ParentOf(cur)
		if err != nil {
			return nil, fmt.Errorf("resolving %v: %w", r, err)
		}
		if p.IsNone() {
			return path, nil
		}
		if len(path) >= limit {
			return nil, fmt.Errorf("resolving %v after %d steps: %w", r, len(path), ErrCycleDetected)
		}
		path = append(path, p)
		cur = p
	}
}

// Terminal returns the source at the root of r's current path.
func (s *System) Terminal(r Ref) (Ref, error) {
	path, err := s.Path(r)
	if err != nil {
		return None, err
	}
	return path[len(path)-1], nil
}

// Rate returns the rate of r in Hz: the terminal rate with every factor on the path
// applied from the root down, truncating after each step.
func (s *System) Rate(r Ref) (uint64, error) {
	path, err := s.Path(r)
	if err != nil {
		return 0, err
	}
	rate, err := s.terminalRate(path[len(path)-1])
	if err != nil {
		return 0, err
	}
	for i := len(path) - 2; i >= 0; i-- {
		n, _ := s.tree.Lookup(path[i])
		if f, ok := n.(*Factor); ok {
			rate = rate * uint64(f.Mult) / uint64(f.Div)
		}
	}
	klog.V(regs.DBG_LVL_DETAIL).InfoS("clk.System.Rate", "clk", r, "depth", len(path), "rate", rate)
	return rate, nil
}

func (s *System) terminalRate(r Ref) (uint64, error) {
	n, err := s.tree.Lookup(r)
	if err != nil {
		return 0, err
	}
	switch n := n.(type) {
	case *Fixed:
		return n.Rate, nil
	case *PLL:
		h, err := s.Handle(NSApmixed)
		if err != nil {
			return 0, err
		}
		return h.pllRate(n), nil
	}
	return 0, fmt.Errorf("%v has no parent and no rate: %w", r, ErrInvalidTree)
}

// Gateable reports whether r has an enable control.
func (s *System) Gateable(r Ref) bool {
	n, err := s.tree.Lookup(r)
	if err != nil {
		return false
	}
	switch n := n.(type) {
	case *Gate, *PLL:
		return true
	case *Mux:
		return n.GateShift >= 0
	}
	return false
}

// Gates returns the gateable clocks on r's current path, leaf first.
func (s *System) Gates(r Ref) ([]Ref, error) {
	path, err := s.Path(r)
	if err != nil {
		return nil, err
	}
	var out []Ref
	for _, p := range path {
		if s.Gateable(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Enable ungates r alone.
func (s *System) Enable(r Ref) error {
	h, err := s.handleFor(r)
	if err != nil {
		return err
	}
	return h.Enable(r.ID)
}

func (s *System) Disable(r Ref) error {
	h, err := s.handleFor(r)
	if err != nil {
		return err
	}
	return h.Disable(r.ID)
}

// EnablePath enables every gateable clock on r's path, root first.
func (s *System) EnablePath(r Ref) error {
	gates, err := s.Gates(r)
	if err != nil {
		return err
	}
	for i := len(gates) - 1; i >= 0; i-- {
		if err := s.Enable(gates[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *System) handleFor(r Ref) (*Handle, error) {
	if !s.tree.valid(r) {
		return nil, fmt.Errorf("clock %v: %w", r, ErrUnknownClockID)
	}
	if r.NS == NSXtal {
		return nil, fmt.Errorf("%v: %w", r, ErrNotGateable)
	}
	return s.Handle(r.NS)
}
