// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements register windows backed by /dev/mem.
package regs

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"k8s.io/klog/v2"
)

const MEM_FILE = "/dev/mem"
const PAGE_SIZE = 4096

// MMIO is a physical register block mapped into the process.
type MMIO struct {
	base uintptr
	size int
	offs uintptr
	mm   mmap.MMap
}

// MapPhys maps size bytes of physical address space starting at base. The mapping
// starts at the page boundary below base; accesses are made relative to base.
func MapPhys(base uintptr, size int) (*MMIO, error) {
	klog.V(DBG_LVL_BASIC).InfoS("regs.MapPhys", "base", Hex(base), "size", Hex(size))
	if size <= 0 {
		return nil, fmt.Errorf("map %s: empty window", Hex(base))
	}
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", MEM_FILE, err)
	}
	defer f.Close()

	mapAddr := base &^ uintptr(PAGE_SIZE-1)
	mapSize := size + int(base-mapAddr)
	mm, err := mmap.MapRegion(f, mapSize, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		return nil, fmt.Errorf("couldn't map region (%s, %d): %w", Hex(base), size, err)
	}
	klog.V(DBG_LVL_DETAIL).InfoS("regs.MapPhys: mapped", "mapAddr", Hex(mapAddr), "mapSize", mapSize)

	return &MMIO{base: base, size: size, offs: base - mapAddr, mm: mm}, nil
}

func (m *MMIO) word(ofs uint32) *uint32 {
	if ofs&3 != 0 || int(ofs)+4 > m.size {
		// equivalent of a bus fault: the tables name an offset outside the declared window
		klog.Fatal(fmt.Errorf("register %s+%s outside %d byte window", Hex(m.base), Hex(ofs), m.size))
	}
	// force 32bit access
	return (*uint32)(unsafe.Pointer(&m.mm[m.offs+uintptr(ofs)]))
}

func (m *MMIO) Read32(ofs uint32) uint32 {
	return atomic.LoadUint32(m.word(ofs))
}

func (m *MMIO) Write32(ofs uint32, val uint32) {
	klog.V(DBG_LVL_DEEP_DETAIL).InfoS("regs.MMIO.Write32", "addr", Hex(m.base+uintptr(ofs)), "val", Hex(val))
	atomic.StoreUint32(m.word(ofs), val)
}

// Base returns the physical address the window was mapped at.
func (m *MMIO) Base() uintptr {
	return m.base
}

func (m *MMIO) Close() error {
	return m.mm.Unmap()
}
