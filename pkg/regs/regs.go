// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

// This file implements the register access layer shared by every clock controller.
// Each helper is a single read, a single write or one read followed by one write.
package regs

import (
	"fmt"
)

const (
	DBG_LVL_DEFAULT     = iota //0
	DBG_LVL_BASIC              //1
	DBG_LVL_INFO               //2
	DBG_LVL_DETAIL             //3
	DBG_LVL_DEEP_DETAIL        //4
)

// Window is a mapped register block. Offsets are byte offsets from the block base.
type Window interface {
	Read32(ofs uint32) uint32
	Write32(ofs uint32, val uint32)
}

// SetBits ors mask into the register at ofs.
func SetBits(w Window, ofs, mask uint32) {
	w.Write32(ofs, w.Read32(ofs)|mask)
}

// ClrBits clears mask in the register at ofs.
func ClrBits(w Window, ofs, mask uint32) {
	w.Write32(ofs, w.Read32(ofs)&^mask)
}

// ClrSetBits clears clr then sets set in one read-modify-write.
func ClrSetBits(w Window, ofs, clr, set uint32) {
	w.Write32(ofs, (w.Read32(ofs)&^clr)|set)
}

// GenMask returns the contiguous mask for bits h..l inclusive.
func GenMask(h, l uint) uint32 {
	return (^uint32(0) >> (31 - h)) & (^uint32(0) << l)
}

// Field is a bit field of a 32 bit register.
type Field struct {
	Offset   int
	Bitwidth int
}

func (f Field) Mask() uint32 {
	return (uint32(1)<<f.Bitwidth - 1) << f.Offset
}

func (f Field) Read(reg uint32) uint32 {
	return (reg >> f.Offset) & (uint32(1)<<f.Bitwidth - 1)
}

func (f Field) Write(reg *uint32, val uint32) {
	*reg = (*reg &^ f.Mask()) | ((val << f.Offset) & f.Mask())
}

// Fits reports whether val can be stored in the field without truncation.
func (f Field) Fits(val uint32) bool {
	return val <= uint32(1)<<f.Bitwidth-1
}

// Wrapper function to shorten int to hex convertion call
func Hex(a any) string {
	return fmt.Sprintf("0x%X", a)
}
