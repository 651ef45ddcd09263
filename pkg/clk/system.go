// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements controller initialization and the per-block handles.
package clk

import (
	"fmt"
	"sort"
	"time"

	"clklib/pkg/regs"

	"k8s.io/klog/v2"
)

// System owns one clock tree and the handles of its initialized blocks.
// It is not safe for concurrent use.
type System struct {
	tree      *Tree
	handles   map[Namespace]*Handle
	requested map[Ref]bool

	// Delay is used for settle delays and poll intervals. Tests replace it.
	Delay func(time.Duration)
}

// Handle is an initialized clock controller block bound to its registers.
type Handle struct {
	sys   *System
	ns    Namespace
	regs  regs.Window
	gates []Gate

	poll   *regs.Poller
	fmeter *regs.Poller
}

func NewSystem(t *Tree) (*System, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree: %w", ErrInvalidTree)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	klog.V(regs.DBG_LVL_BASIC).InfoS("clk.NewSystem", "tree", t.Name, "plls", len(t.PLLs), "topckgen", t.topCount(), "gateBlocks", len(t.Gates))
	return &System{
		tree:      t,
		handles:   map[Namespace]*Handle{},
		requested: map[Ref]bool{},
		Delay:     time.Sleep,
	}, nil
}

func (s *System) Tree() *Tree { return s.tree }

func (s *System) delay(d time.Duration) {
	if s.Delay != nil {
		s.Delay(d)
	}
}

// Handle returns the initialized block for ns.
func (s *System) Handle(ns Namespace) (*Handle, error) {
	h, ok := s.handles[ns]
	if !ok {
		return nil, fmt.Errorf("%s not initialized: %w", ns, ErrResourceUnavailable)
	}
	return h, nil
}

func (s *System) bind(ns Namespace, w regs.Window, gates []Gate) *Handle {
	h, ok := s.handles[ns]
	if ok {
		klog.V(regs.DBG_LVL_INFO).InfoS("clk.System.bind: re-initializing", "ns", ns)
		h.regs = w
		h.gates = gates
		return h
	}
	h = &Handle{
		sys:    s,
		ns:     ns,
		regs:   w,
		gates:  gates,
		poll:   &regs.Poller{Sleep: s.delay},
		fmeter: &regs.Poller{Adaptive: true, Sleep: s.delay},
	}
	s.handles[ns] = h
	return h
}

// Bind attaches ns to a block whose registers are already set up. No register is written:
// boot defaults and the gate boot policy are left to InitTree and InitGates.
func (s *System) Bind(ns Namespace, w regs.Window) (*Handle, error) {
	klog.V(regs.DBG_LVL_BASIC).InfoS("clk.Bind", "tree", s.tree.Name, "ns", ns)
	if w == nil {
		return nil, fmt.Errorf("%s: no register base: %w", ns, ErrResourceUnavailable)
	}
	switch ns {
	case NSApmixed, NSTopckgen:
		return s.bind(ns, w, nil), nil
	}
	gates, ok := s.tree.Gates[ns]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ns, ErrUnknownClockID)
	}
	return s.bind(ns, w, gates), nil
}

// InitTree binds the apmixedsys or topckgen block and applies the boot defaults of the tree.
// Running it again on the same block re-applies the same defaults.
func (s *System) InitTree(ns Namespace, w regs.Window) (*Handle, error) {
	klog.V(regs.DBG_LVL_BASIC).InfoS("clk.InitTree", "tree", s.tree.Name, "ns", ns)
	if w == nil {
		return nil, fmt.Errorf("%s: no register base: %w", ns, ErrResourceUnavailable)
	}
	switch ns {
	case NSApmixed:
		h := s.bind(ns, w, nil)
		for _, d := range s.tree.PLLDefaults {
			if err := h.SetPLLRate(d.ID, d.Rate); err != nil {
				return nil, err
			}
			if err := h.Enable(d.ID); err != nil {
				return nil, err
			}
		}
		return h, nil
	case NSTopckgen:
		h := s.bind(ns, w, nil)
		for _, f := range s.tree.Factors {
			klog.V(regs.DBG_LVL_DEEP_DETAIL).InfoS("clk.InitTree", "factor", f.Name, "parent", f.Parent, "mult", f.Mult, "div", f.Div)
		}
		for _, d := range s.tree.MuxDefaults {
			m, _ := s.tree.mux(d.ID)
			idx, _ := m.index(d.Parent)
			if m.GateShift >= 0 && d.Enable {
				if err := h.SelectMuxParentGate(d.ID, idx, true); err != nil {
					return nil, err
				}
				continue
			}
			if err := h.SelectMuxParent(d.ID, idx); err != nil {
				return nil, err
			}
		}
		return h, nil
	}
	if _, ok := s.tree.Gates[ns]; ok {
		return s.InitGates(ns, w, s.tree.Gates[ns])
	}
	return nil, fmt.Errorf("%s: %w", ns, ErrUnknownClockID)
}

// InitGates binds a gate-only block. Gates not marked critical and not enabled
// through this System are disabled; tree-wide mux and PLL setup is skipped.
func (s *System) InitGates(ns Namespace, w regs.Window, gates []Gate) (*Handle, error) {
	klog.V(regs.DBG_LVL_BASIC).InfoS("clk.InitGates", "tree", s.tree.Name, "ns", ns, "gates", len(gates))
	if w == nil {
		return nil, fmt.Errorf("%s: no register base: %w", ns, ErrResourceUnavailable)
	}
	if gates == nil {
		gates = s.tree.Gates[ns]
	}
	if err := s.tree.validateGates(ns, gates); err != nil {
		return nil, err
	}
	if known, ok := s.tree.Gates[ns]; ok && len(known) != len(gates) {
		return nil, invalid("%s: gate table has %d entries, tree has %d", ns, len(gates), len(known))
	}
	h := s.bind(ns, w, gates)
	for i := range gates {
		g := &gates[i]
		on := g.Flags&GateCritical != 0 || s.requested[Ref{NS: ns, ID: g.ID}]
		klog.V(regs.DBG_LVL_DETAIL).InfoS("clk.InitGates", "gate", g.Name, "on", on)
		if err := h.setGate(g, on); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Handle) Namespace() Namespace { return h.ns }
func (h *Handle) System() *System      { return h.sys }
func (h *Handle) ref(id int) Ref       { return Ref{NS: h.ns, ID: id} }

func (h *Handle) gate(id int) (*Gate, error) {
	if id < 0 || id >= len(h.gates) {
		return nil, fmt.Errorf("%v: %w", h.ref(id), ErrUnknownClockID)
	}
	return &h.gates[id], nil
}

// Rate returns the current rate of clock id of this block in Hz.
func (h *Handle) Rate(id int) (uint64, error) { return h.sys.Rate(h.ref(id)) }

// ParentOf returns the current parent of clock id of this block.
func (h *Handle) ParentOf(id int) (Ref, error) { return h.sys.ParentOf(h.ref(id)) }

// Enable ungates clock id. Fixed sources and factors have nothing to enable.
// Parents are not enabled; use System.EnablePath for that.
func (h *Handle) Enable(id int) error {
	if err := h.control(id, true); err != nil {
		return err
	}
	h.sys.requested[h.ref(id)] = true
	return nil
}

func (h *Handle) Disable(id int) error {
	if err := h.control(id, false); err != nil {
		return err
	}
	delete(h.sys.requested, h.ref(id))
	return nil
}

func (h *Handle) control(id int, on bool) error {
	klog.V(regs.DBG_LVL_INFO).InfoS("clk.Handle.control", "clk", h.ref(id), "on", on)
	switch h.ns {
	case NSApmixed:
		p, err := h.sys.tree.pll(id)
		if err != nil {
			return err
		}
		if on {
			h.pllEnable(p)
		} else {
			h.pllDisable(p)
		}
		return nil
	case NSTopckgen:
		if id < 0 || id >= h.sys.tree.topCount() {
			return fmt.Errorf("%v: %w", h.ref(id), ErrUnknownClockID)
		}
		if id < h.sys.tree.MuxesOffs {
			return nil
		}
		m, _ := h.sys.tree.mux(id)
		return h.muxGate(m, on)
	}
	g, err := h.gate(id)
	if err != nil {
		return err
	}
	return h.setGate(g, on)
}

func sortNamespaces(ns []Namespace) {
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
}
