// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file describes a clock tree: the static node tables of one chip and the
// namespaces they live in.
package clk

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace names one clock controller block. IDs are only meaningful within a namespace.
type Namespace string

const (
	NSNone     Namespace = ""
	NSXtal     Namespace = "xtal"
	NSApmixed  Namespace = "apmixedsys"
	NSTopckgen Namespace = "topckgen"
)

// Ref identifies a clock by namespace and ID.
type Ref struct {
	NS Namespace
	ID int
}

var (
	// None marks an unavailable mux candidate.
	None  = Ref{}
	Xtal  = Ref{NS: NSXtal, ID: 0}
	Xtal2 = Ref{NS: NSXtal, ID: 1}
)

func Apmixed(id int) Ref { return Ref{NS: NSApmixed, ID: id} }
func Top(id int) Ref     { return Ref{NS: NSTopckgen, ID: id} }

func (r Ref) IsNone() bool { return r.NS == NSNone }

func (r Ref) String() string {
	switch {
	case r.IsNone():
		return "none"
	case r == Xtal:
		return "xtal"
	case r == Xtal2:
		return "xtal2"
	}
	return string(r.NS) + ":" + strconv.Itoa(r.ID)
}

// ParseRef accepts "ns:id", "ns:name", "xtal" and "xtal2".
func (t *Tree) ParseRef(s string) (Ref, error) {
	switch s {
	case "xtal":
		return Xtal, nil
	case "xtal2":
		return Xtal2, nil
	}
	ns, id, ok := strings.Cut(s, ":")
	if !ok {
		return None, fmt.Errorf("clock %q: expected namespace:id", s)
	}
	r := Ref{NS: Namespace(ns)}
	if n, err := strconv.Atoi(id); err == nil {
		r.ID = n
	} else if r, ok = t.Find(Namespace(ns), id); !ok {
		return None, fmt.Errorf("clock %q: %w", s, ErrUnknownClockID)
	}
	if !t.valid(r) {
		return None, fmt.Errorf("clock %q: %w", s, ErrUnknownClockID)
	}
	return r, nil
}

type Kind int

const (
	KindFixed Kind = iota
	KindPLL
	KindFactor
	KindMux
	KindGate
)

var kindNames = [...]string{"fixed", "pll", "factor", "mux", "gate"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is one entry of a clock table.
type Node interface {
	Kind() Kind
	Label() string
}

// Fixed is a source with a constant rate and no parent.
type Fixed struct {
	ID   int
	Name string
	Rate uint64
}

// Factor derives its rate from its parent as parent*Mult/Div.
type Factor struct {
	ID     int
	Name   string
	Parent Ref
	Mult   uint32
	Div    uint32
}

type MuxFlags uint32

const (
	// MuxDomainSCPSYS muxes also release the SCPSYS bus clock controls when enabled.
	MuxDomainSCPSYS MuxFlags = 1 << iota
)

// Mux selects one of Parents through the bit field Reg[Shift+Width-1:Shift].
// GateShift is the companion gate bit in the same register, or -1.
type Mux struct {
	ID        int
	Name      string
	Parents   []Ref
	Reg       uint32
	Shift     uint8
	Width     uint8
	GateShift int8
	Flags     MuxFlags
}

type PLLFlags uint32

const (
	PLLHaveRstBar PLLFlags = 1 << iota
)

// PLL is a programmable source in the apmixedsys block.
type PLL struct {
	ID         int
	Name       string
	Reg        uint32
	PwrReg     uint32
	EnMask     uint32
	RstBarMask uint32
	Flags      PLLFlags
	Fmax       uint64
	PcwBits    uint8
	PcwIBits   uint8
	PdReg      uint32
	PdShift    uint8
	PcwReg     uint32
	PcwShift   uint8
	// ReadyReg/ReadyMask name a lock status bit polled after a rate change. Zero mask: settle delay only.
	ReadyReg  uint32
	ReadyMask uint32
}

// GateKind is the register convention of a gate.
type GateKind uint8

const (
	// GateSetClr: enable writes the bit to the set register, status bit one means running.
	GateSetClr GateKind = iota
	// GateSetClrInv: enable writes the bit to the clear register, status bit one means gated.
	GateSetClrInv
	// GateDirect: status register is read-modify-written, bit one means gated.
	GateDirect
	// GateDirectInv: status register is read-modify-written, bit one means running.
	GateDirectInv
)

var gateKindNames = [...]string{"setclr", "setclr-inv", "direct", "direct-inv"}

func (k GateKind) String() string {
	if int(k) >= len(gateKindNames) {
		return fmt.Sprintf("gatekind(%d)", int(k))
	}
	return gateKindNames[k]
}

// GateRegs are the set, clear and status offsets shared by a bank of gates.
type GateRegs struct {
	Set uint32
	Clr uint32
	Sta uint32
}

type GateFlags uint32

const (
	// GateCritical gates are left running by the boot policy.
	GateCritical GateFlags = 1 << iota
)

type Gate struct {
	ID     int
	Name   string
	Parent Ref
	Regs   *GateRegs
	Shift  uint8
	Conv   GateKind
	Flags  GateFlags
}

func (*Fixed) Kind() Kind  { return KindFixed }
func (*Factor) Kind() Kind { return KindFactor }
func (*Mux) Kind() Kind    { return KindMux }
func (*PLL) Kind() Kind    { return KindPLL }
func (*Gate) Kind() Kind   { return KindGate }

func (n *Fixed) Label() string  { return n.Name }
func (n *Factor) Label() string { return n.Name }
func (n *Mux) Label() string    { return n.Name }
func (n *PLL) Label() string    { return n.Name }
func (n *Gate) Label() string   { return n.Name }

var _ Node = (*Gate)(nil)

// MuxDefault is a boot selection applied by InitTree on the topckgen block.
type MuxDefault struct {
	ID     int
	Parent Ref
	Enable bool
}

// PLLDefault is a boot rate applied by InitTree on the apmixedsys block.
type PLLDefault struct {
	ID   int
	Rate uint64
}

// FMeterRegs locates the frequency meter inside the topckgen block.
type FMeterRegs struct {
	Cfg8     uint32
	Cfg9     uint32
	MiscCfg1 uint32
	Cali0    uint32
	Cali1    uint32
	Cali2    uint32
	RefKHz   uint64
}

// Tree is the complete static description of a chip's clocks. Topckgen IDs are
// partitioned: fixed sources at [0, FactorsOffs), factors at [FactorsOffs, MuxesOffs)
// and muxes from MuxesOffs on.
type Tree struct {
	Name        string
	XtalRate    uint64
	Xtal2Rate   uint64
	PLLs        []PLL
	Fixed       []Fixed
	Factors     []Factor
	Muxes       []Mux
	FactorsOffs int
	MuxesOffs   int
	Gates       map[Namespace][]Gate
	MuxDefaults []MuxDefault
	PLLDefaults []PLLDefault
	FMeter      *FMeterRegs
}

func (t *Tree) topCount() int {
	return t.MuxesOffs + len(t.Muxes)
}

// nodeCount bounds the length of any acyclic parent walk.
func (t *Tree) nodeCount() int {
	n := 2 + len(t.PLLs) + t.topCount()
	for _, g := range t.Gates {
		n += len(g)
	}
	return n
}

func (t *Tree) valid(r Ref) bool {
	if r.ID < 0 {
		return false
	}
	switch r.NS {
	case NSNone:
		return false
	case NSXtal:
		return r.ID <= 1
	case NSApmixed:
		return r.ID < len(t.PLLs)
	case NSTopckgen:
		return r.ID < t.topCount()
	}
	g, ok := t.Gates[r.NS]
	return ok && r.ID < len(g)
}

// Lookup returns the table entry of r. The crystals are reported as fixed sources.
func (t *Tree) Lookup(r Ref) (Node, error) {
	if !t.valid(r) {
		return nil, fmt.Errorf("clock %v: %w", r, ErrUnknownClockID)
	}
	switch r.NS {
	case NSXtal:
		if r.ID == 0 {
			return &Fixed{ID: 0, Name: "xtal", Rate: t.XtalRate}, nil
		}
		return &Fixed{ID: 1, Name: "xtal2", Rate: t.Xtal2Rate}, nil
	case NSApmixed:
		return &t.PLLs[r.ID], nil
	case NSTopckgen:
		switch {
		case r.ID < t.FactorsOffs:
			return &t.Fixed[r.ID], nil
		case r.ID < t.MuxesOffs:
			return &t.Factors[r.ID-t.FactorsOffs], nil
		default:
			return &t.Muxes[r.ID-t.MuxesOffs], nil
		}
	}
	return &t.Gates[r.NS][r.ID], nil
}

// Find looks a clock up by name within a namespace.
func (t *Tree) Find(ns Namespace, name string) (Ref, bool) {
	switch ns {
	case NSApmixed:
		for i := range t.PLLs {
			if t.PLLs[i].Name == name {
				return Apmixed(i), true
			}
		}
	case NSTopckgen:
		for id := 0; id < t.topCount(); id++ {
			if n, _ := t.Lookup(Top(id)); n != nil && n.Label() == name {
				return Top(id), true
			}
		}
	default:
		for i := range t.Gates[ns] {
			if t.Gates[ns][i].Name == name {
				return Ref{NS: ns, ID: i}, true
			}
		}
	}
	return None, false
}

// Size returns the number of clocks in ns.
func (t *Tree) Size(ns Namespace) int {
	switch ns {
	case NSXtal:
		return 2
	case NSApmixed:
		return len(t.PLLs)
	case NSTopckgen:
		return t.topCount()
	}
	return len(t.Gates[ns])
}

// Namespaces lists the clock blocks of the tree, apmixedsys and topckgen first.
func (t *Tree) Namespaces() []Namespace {
	out := []Namespace{NSApmixed, NSTopckgen}
	for ns := range t.Gates {
		out = append(out, ns)
	}
	sortNamespaces(out[2:])
	return out
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrInvalidTree)
}

// Validate checks the numbering scheme and every parent reference of the tree.
func (t *Tree) Validate() error {
	if t.XtalRate == 0 || t.Xtal2Rate == 0 {
		return invalid("%s: crystal rate not set", t.Name)
	}
	if t.FactorsOffs != len(t.Fixed) || t.MuxesOffs != t.FactorsOffs+len(t.Factors) {
		return invalid("%s: topckgen offsets %d/%d do not match table sizes", t.Name, t.FactorsOffs, t.MuxesOffs)
	}
	for i, p := range t.PLLs {
		if p.ID != i {
			return invalid("pll %s: id %d at index %d", p.Name, p.ID, i)
		}
		if p.PcwBits == 0 || int(p.PcwShift)+int(p.PcwBits) > 32 || int(p.PdShift)+3 > 32 || p.EnMask == 0 {
			return invalid("pll %s: bad register layout", p.Name)
		}
	}
	for i, f := range t.Fixed {
		if f.ID != i {
			return invalid("fixed %s: id %d at index %d", f.Name, f.ID, i)
		}
	}
	for i, f := range t.Factors {
		if f.ID != t.FactorsOffs+i {
			return invalid("factor %s: id %d at index %d", f.Name, f.ID, t.FactorsOffs+i)
		}
		if f.Mult == 0 || f.Div == 0 {
			return invalid("factor %s: zero ratio", f.Name)
		}
		if !t.valid(f.Parent) {
			return invalid("factor %s: parent %v out of range", f.Name, f.Parent)
		}
	}
	for i, m := range t.Muxes {
		if m.ID != t.MuxesOffs+i {
			return invalid("mux %s: id %d at index %d", m.Name, m.ID, t.MuxesOffs+i)
		}
		if m.Width == 0 || int(m.Shift)+int(m.Width) > 32 {
			return invalid("mux %s: field %d+%d outside register", m.Name, m.Shift, m.Width)
		}
		if len(m.Parents) == 0 || len(m.Parents) > 1<<m.Width {
			return invalid("mux %s: %d candidates for a %d bit field", m.Name, len(m.Parents), m.Width)
		}
		if m.GateShift > 31 || m.GateShift < -1 {
			return invalid("mux %s: gate bit %d", m.Name, m.GateShift)
		}
		for _, p := range m.Parents {
			if !p.IsNone() && !t.valid(p) {
				return invalid("mux %s: parent %v out of range", m.Name, p)
			}
		}
	}
	for ns, gates := range t.Gates {
		if err := t.validateGates(ns, gates); err != nil {
			return err
		}
	}
	for _, d := range t.MuxDefaults {
		m, err := t.mux(d.ID)
		if err != nil {
			return invalid("mux default %d: %v", d.ID, err)
		}
		if _, err := m.index(d.Parent); err != nil {
			return invalid("mux default %s: %v", m.Name, err)
		}
	}
	for _, d := range t.PLLDefaults {
		if !t.valid(Apmixed(d.ID)) || d.Rate == 0 {
			return invalid("pll default %d: bad entry", d.ID)
		}
	}
	return nil
}

func (t *Tree) validateGates(ns Namespace, gates []Gate) error {
	switch ns {
	case NSNone, NSXtal, NSApmixed, NSTopckgen:
		return invalid("gates cannot live in namespace %q", ns)
	}
	for i, g := range gates {
		if g.ID != i {
			return invalid("%s gate %s: id %d at index %d", ns, g.Name, g.ID, i)
		}
		if g.Regs == nil || g.Shift > 31 || g.Conv > GateDirectInv {
			return invalid("%s gate %s: bad register layout", ns, g.Name)
		}
		if !t.valid(g.Parent) {
			return invalid("%s gate %s: parent %v out of range", ns, g.Name, g.Parent)
		}
	}
	return nil
}

func (t *Tree) mux(id int) (*Mux, error) {
	if id < t.MuxesOffs || id >= t.topCount() {
		return nil, fmt.Errorf("%v is not a mux: %w", Top(id), ErrWrongKind)
	}
	return &t.Muxes[id-t.MuxesOffs], nil
}

func (t *Tree) pll(id int) (*PLL, error) {
	if id < 0 || id >= len(t.PLLs) {
		return nil, fmt.Errorf("%v: %w", Apmixed(id), ErrUnknownClockID)
	}
	return &t.PLLs[id], nil
}
