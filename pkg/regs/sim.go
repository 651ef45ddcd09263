// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements an in-memory register block used by tests and by clk-util --sim.
package regs

import (
	"sort"
	"sync"
)

// Access is one logged register write.
type Access struct {
	Ofs uint32
	Val uint32
}

type strobe struct {
	target uint32
	set    bool
}

type stuck struct {
	set uint32
	clr uint32
}

type selfClear struct {
	mask  uint32
	reads int
	left  int
}

// Sim models a register block. Plain registers store what is written. Strobe registers
// set or clear bits of their target register, the way set/clear gate registers do.
// Stuck bits and self-clearing bits let tests model hardware that does not follow writes.
type Sim struct {
	mu        sync.Mutex
	mem       map[uint32]uint32
	strobes   map[uint32]strobe
	stuck     map[uint32]stuck
	selfClear map[uint32]*selfClear
	writes    []Access
}

func NewSim() *Sim {
	return &Sim{
		mem:       map[uint32]uint32{},
		strobes:   map[uint32]strobe{},
		stuck:     map[uint32]stuck{},
		selfClear: map[uint32]*selfClear{},
	}
}

// Strobe makes writes to ofs set (set=true) or clear the written bits of target.
func (s *Sim) Strobe(ofs, target uint32, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strobes[ofs] = strobe{target: target, set: set}
}

// Stick forces bits of ofs to read as one (set) or zero (clr) regardless of writes.
func (s *Sim) Stick(ofs, set, clr uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stuck[ofs] = stuck{set: set, clr: clr}
}

// ClearAfter makes bits of mask at ofs drop back to zero after they have been read
// the given number of times following a write that set them.
func (s *Sim) ClearAfter(ofs, mask uint32, reads int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selfClear[ofs] = &selfClear{mask: mask, reads: reads}
}

func (s *Sim) Read32(ofs uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.selfClear[ofs]; ok && sc.left > 0 {
		sc.left--
		if sc.left == 0 {
			s.mem[ofs] &^= sc.mask
		}
	}
	v := s.mem[ofs]
	if st, ok := s.stuck[ofs]; ok {
		v = (v | st.set) &^ st.clr
	}
	return v
}

func (s *Sim) Write32(ofs uint32, val uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, Access{Ofs: ofs, Val: val})
	target := ofs
	if st, ok := s.strobes[ofs]; ok {
		target = st.target
		if st.set {
			s.mem[target] |= val
		} else {
			s.mem[target] &^= val
		}
	} else {
		s.mem[ofs] = val
	}
	if sc, ok := s.selfClear[target]; ok && s.mem[target]&sc.mask != 0 {
		if sc.reads <= 0 {
			s.mem[target] &^= sc.mask
		} else {
			sc.left = sc.reads
		}
	}
}

// Peek returns the stored value of ofs without side effects.
func (s *Sim) Peek(ofs uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem[ofs]
}

// Poke stores val at ofs without logging a write.
func (s *Sim) Poke(ofs, val uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[ofs] = val
}

// Writes returns the logged writes in order.
func (s *Sim) Writes() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Access(nil), s.writes...)
}

// WritesTo counts the logged writes to ofs.
func (s *Sim) WritesTo(ofs uint32) int {
	n := 0
	for _, a := range s.Writes() {
		if a.Ofs == ofs {
			n++
		}
	}
	return n
}

func (s *Sim) ResetLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
}

// Snapshot returns every stored register, sorted by offset.
func (s *Sim) Snapshot() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Access, 0, len(s.mem))
	for ofs, v := range s.mem {
		out = append(out, Access{Ofs: ofs, Val: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ofs < out[j].Ofs })
	return out
}
