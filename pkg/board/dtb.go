// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file builds a board description from a flattened devicetree blob.
package board

import (
	"encoding/binary"
	"fmt"
	"sort"

	"clklib/pkg/regs"

	"github.com/platinasystems/fdt"
	"k8s.io/klog/v2"
)

const FDT_MAGIC = 0xd00dfeed
const FDT_HEADER_SIZE = 40

// crystal node of the MediaTek devicetrees
const XTAL_OUTPUT_NAME = "clkxtal"

func propCells(t *fdt.Tree, n *fdt.Node, name string, def int) int {
	if v, ok := n.Properties[name]; ok && len(v) >= 4 {
		return int(t.PropUint32(v))
	}
	return def
}

func cellsValue(c []uint32) uint64 {
	var v uint64
	for _, x := range c {
		v = v<<32 | uint64(x)
	}
	return v
}

func hasString(t *fdt.Tree, b []byte, s string) bool {
	for _, v := range t.PropStringSlice(b) {
		if v == s {
			return true
		}
	}
	return false
}

// checkHeader rejects blobs whose header points outside the blob.
func checkHeader(b []byte) error {
	if len(b) < FDT_HEADER_SIZE || binary.BigEndian.Uint32(b) != FDT_MAGIC {
		return fmt.Errorf("%w: no fdt header", ErrBadDTB)
	}
	total := uint64(binary.BigEndian.Uint32(b[4:]))
	dtOff := uint64(binary.BigEndian.Uint32(b[8:]))
	strOff := uint64(binary.BigEndian.Uint32(b[12:]))
	if total > uint64(len(b)) {
		return fmt.Errorf("%w: total size %d exceeds %d byte blob", ErrBadDTB, total, len(b))
	}
	if dtOff < FDT_HEADER_SIZE || dtOff+4 > total || strOff > total {
		return fmt.Errorf("%w: struct %s or strings %s outside %d bytes", ErrBadDTB, regs.Hex(dtOff), regs.Hex(strOff), total)
	}
	return nil
}

// parseTree runs the fdt parser, which indexes the blob without bounds checks.
func parseTree(b []byte) (t *fdt.Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: %v", ErrBadDTB, r)
		}
	}()
	t = &fdt.Tree{Debug: false, IsLittleEndian: false}
	t.Parse(b)
	if t.RootNode == nil {
		return nil, fmt.Errorf("%w: no root node", ErrBadDTB)
	}
	return t, nil
}

// ParseDTB returns the controller blocks of a known platform found in a devicetree blob.
// Blocks are expected directly under the root node, as in the MediaTek SoC devicetrees.
func ParseDTB(b []byte) (*Config, error) {
	if err := checkHeader(b); err != nil {
		return nil, err
	}
	t, err := parseTree(b)
	if err != nil {
		return nil, err
	}
	root := t.RootNode

	var p *Platform
	for _, c := range t.PropStringSlice(root.Properties["compatible"]) {
		if p = PlatformFor(c); p != nil {
			break
		}
	}
	if p == nil {
		return nil, fmt.Errorf("%w: root compatible %q", ErrUnknownChip, root.Properties["compatible"])
	}

	acells := propCells(t, root, "#address-cells", 2)
	scells := propCells(t, root, "#size-cells", 1)
	cfg := &Config{Chip: p.Chip.Name}

	t.EachProperty("compatible", "", func(n *fdt.Node, name string, value string) {
		compat := []byte(value)
		if hasString(t, compat, "fixed-clock") && hasString(t, n.Properties["clock-output-names"], XTAL_OUTPUT_NAME) {
			if f := n.Properties["clock-frequency"]; len(f) >= 4 {
				cfg.XtalRate = uint64(t.PropUint32(f))
			}
			return
		}
		for _, c := range t.PropStringSlice(compat) {
			if _, ok := p.Chip.Driver(c); !ok {
				continue
			}
			reg := t.PropUint32Slice(n.Properties["reg"])
			if len(reg) < acells+scells {
				if err == nil {
					err = fmt.Errorf("%w: %s: reg has %d cells", ErrBadDTB, n.Name, len(reg))
				}
				return
			}
			inst := Instance{
				Compatible: c,
				Base:       cellsValue(reg[:acells]),
				Size:       cellsValue(reg[acells : acells+scells]),
			}
			klog.V(regs.DBG_LVL_INFO).InfoS("board.ParseDTB", "node", n.Name, "compatible", c, "base", regs.Hex(inst.Base))
			cfg.Instances = append(cfg.Instances, inst)
			return
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(cfg.Instances, func(i, j int) bool { return cfg.Instances[i].Base < cfg.Instances[j].Base })
	return cfg, nil
}
