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

// mulBoothCycles prices a multiply by how many significant bytes its
// multiplier operand has, per spec.md §4.4's byte-counted MUL timing: one
// internal cycle per non-trivial byte of Rs, all-0 or all-1 bytes above the
// lowest significant one being free.
func mulBoothCycles(rs uint32) uint64 {
	m := rs
	for i := 0; i < 3; i++ {
		m >>= 8
		if m == 0 || m == 0xFFFFFF>>(8*i) {
			return uint64(i + 1)
		}
	}
	return 4
}

// armMultiply implements MUL/MLA, per spec.md §4.4.
func armMultiply(c *CPU, word uint32) uint64 {
	accumulate := word&(1<<21) != 0
	setFlags := word&(1<<20) != 0
	rd := int((word >> 16) & 0xF)
	rn := int((word >> 12) & 0xF)
	rs := int((word >> 8) & 0xF)
	rm := int(word & 0xF)

	result := c.regs.R(rm) * c.regs.R(rs)
	if accumulate {
		result += c.regs.R(rn)
	}
	c.regs.SetR(rd, result)

	if setFlags {
		n, z := updateNZ(result)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
	}

	cycles := c.mulCycles(c.regs.R(rs))
	if accumulate {
		cycles++
	}
	return cycles + 1
}

// armMultiplyLong implements UMULL/UMLAL/SMULL/SMLAL, per spec.md §4.4.
func armMultiplyLong(c *CPU, word uint32) uint64 {
	signed := word&(1<<22) != 0
	accumulate := word&(1<<21) != 0
	setFlags := word&(1<<20) != 0
	rdHi := int((word >> 16) & 0xF)
	rdLo := int((word >> 12) & 0xF)
	rs := int((word >> 8) & 0xF)
	rm := int(word & 0xF)

	var wide uint64
	if signed {
		wide = uint64(int64(int32(c.regs.R(rm))) * int64(int32(c.regs.R(rs))))
	} else {
		wide = uint64(c.regs.R(rm)) * uint64(c.regs.R(rs))
	}

	if accumulate {
		hi := uint64(c.regs.R(rdHi))
		lo := uint64(c.regs.R(rdLo))
		wide += (hi << 32) | lo
	}

	hiVal := uint32(wide >> 32)
	loVal := uint32(wide)
	c.regs.SetR(rdHi, hiVal)
	c.regs.SetR(rdLo, loVal)

	if setFlags {
		c.regs.SetFlag(FlagN, hiVal&0x80000000 != 0)
		c.regs.SetFlag(FlagZ, wide == 0)
	}

	cycles := c.mulCycles(c.regs.R(rs)) + 1
	if accumulate {
		cycles++
	}
	return cycles + 1
}

// armSwapWord implements SWP, per spec.md §4.4: an atomic (with respect to
// this cooperative interpreter -- no instruction is ever interrupted
// partway, per spec.md §5) load-then-store of a 32-bit value.
func armSwapWord(c *CPU, word uint32) uint64 {
	return armSwap(c, word, false)
}

// armSwapByte implements SWPB.
func armSwapByte(c *CPU, word uint32) uint64 {
	return armSwap(c, word, true)
}

func armSwap(c *CPU, word uint32, byteWide bool) uint64 {
	rn := int((word >> 16) & 0xF)
	rd := int((word >> 12) & 0xF)
	rm := int(word & 0xF)
	addr := c.regs.R(rn)

	if byteWide {
		old := c.mem.Read8(addr)
		c.mem.Write8(addr, uint8(c.regs.R(rm)))
		c.noteWrite(addr)
		c.regs.SetR(rd, uint32(old))
	} else {
		old := c.mem.Read32(addr)
		c.mem.Write32(addr, c.regs.R(rm))
		c.noteWrite(addr)
		c.regs.SetR(rd, old)
	}
	return 4
}
