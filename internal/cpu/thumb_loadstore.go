// This file is part of gba-sub000.
//
// gba-sub000 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gba-sub000 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

package cpu

// thumbPCRelativeLoad implements format 6 (LDR Rd, [PC, #imm8*4]), per
// spec.md §4.5. The base is PC word-aligned regardless of the low bits the
// pipeline offset might otherwise imply.
func thumbPCRelativeLoad(c *CPU, word uint32) uint64 {
	rd := int((word >> 8) & 0x7)
	imm := (word & 0xFF) * 4
	base := c.regs.R(RegPC) &^ 3
	c.regs.SetR(rd, c.mem.Read32(base+imm))
	return 3
}

// thumbLoadStoreRegOffset implements format 7 (STR/LDR/STRB/LDRB Rd,
// [Rb, Ro]), per spec.md §4.5.
func thumbLoadStoreRegOffset(c *CPU, word uint32) uint64 {
	load := word&(1<<11) != 0
	byteWide := word&(1<<10) != 0
	ro := int((word >> 6) & 0x7)
	rb := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	addr := c.regs.R(rb) + c.regs.R(ro)
	if load {
		if byteWide {
			c.regs.SetR(rd, uint32(c.mem.Read8(addr)))
		} else {
			c.regs.SetR(rd, c.mem.Read32(addr))
		}
		return 3
	}
	if byteWide {
		c.mem.Write8(addr, uint8(c.regs.R(rd)))
	} else {
		c.mem.Write32(addr, c.regs.R(rd))
	}
	c.noteWrite(addr)
	return 2
}

// thumbLoadStoreSignExtended implements format 8 (STRH/LDRH/LDSB/LDSH Rd,
// [Rb, Ro]), per spec.md §4.5.
func thumbLoadStoreSignExtended(c *CPU, word uint32) uint64 {
	h := word&(1<<11) != 0
	s := word&(1<<10) != 0
	ro := int((word >> 6) & 0x7)
	rb := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	addr := c.regs.R(rb) + c.regs.R(ro)

	switch {
	case !s && !h: // STRH
		c.mem.Write16(addr, uint16(c.regs.R(rd)))
		c.noteWrite(addr)
		return 2
	case !s && h: // LDRH
		c.regs.SetR(rd, uint32(c.mem.Read16(addr)))
	case s && !h: // LDSB
		c.regs.SetR(rd, uint32(int32(int8(c.mem.Read8(addr)))))
	case s && h: // LDSH
		c.regs.SetR(rd, uint32(int32(int16(c.mem.Read16(addr)))))
	}
	return 3
}

// thumbLoadStoreImmediate implements format 9 (STR/LDR/STRB/LDRB Rd,
// [Rb, #imm5]), per spec.md §4.5: the immediate is scaled by 4 for word
// transfers, unscaled for byte transfers.
func thumbLoadStoreImmediate(c *CPU, word uint32) uint64 {
	byteWide := word&(1<<12) != 0
	load := word&(1<<11) != 0
	offset5 := (word >> 6) & 0x1F
	rb := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	var offset uint32
	if byteWide {
		offset = offset5
	} else {
		offset = offset5 * 4
	}
	addr := c.regs.R(rb) + offset

	if load {
		if byteWide {
			c.regs.SetR(rd, uint32(c.mem.Read8(addr)))
		} else {
			c.regs.SetR(rd, c.mem.Read32(addr))
		}
		return 3
	}
	if byteWide {
		c.mem.Write8(addr, uint8(c.regs.R(rd)))
	} else {
		c.mem.Write32(addr, c.regs.R(rd))
	}
	c.noteWrite(addr)
	return 2
}

// thumbLoadStoreHalfword implements format 10 (STRH/LDRH Rd,
// [Rb, #imm5*2]), per spec.md §4.5.
func thumbLoadStoreHalfword(c *CPU, word uint32) uint64 {
	load := word&(1<<11) != 0
	offset5 := (word >> 6) & 0x1F
	rb := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	addr := c.regs.R(rb) + offset5*2
	if load {
		c.regs.SetR(rd, uint32(c.mem.Read16(addr)))
		return 3
	}
	c.mem.Write16(addr, uint16(c.regs.R(rd)))
	c.noteWrite(addr)
	return 2
}

// thumbSPRelativeLoadStore implements format 11 (STR/LDR Rd, [SP, #imm8*4]),
// per spec.md §4.5.
func thumbSPRelativeLoadStore(c *CPU, word uint32) uint64 {
	load := word&(1<<11) != 0
	rd := int((word >> 8) & 0x7)
	imm := (word & 0xFF) * 4

	addr := c.regs.R(RegSP) + imm
	if load {
		c.regs.SetR(rd, c.mem.Read32(addr))
		return 3
	}
	c.mem.Write32(addr, c.regs.R(rd))
	c.noteWrite(addr)
	return 2
}

// thumbLoadAddress implements format 12 (ADD Rd, PC|SP, #imm8*4), per
// spec.md §4.5.
func thumbLoadAddress(c *CPU, word uint32) uint64 {
	useSP := word&(1<<11) != 0
	rd := int((word >> 8) & 0x7)
	imm := (word & 0xFF) * 4

	var base uint32
	if useSP {
		base = c.regs.R(RegSP)
	} else {
		base = c.regs.R(RegPC) &^ 3
	}
	c.regs.SetR(rd, base+imm)
	return 1
}
