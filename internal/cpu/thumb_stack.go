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

import "math/bits"

// thumbAddOffsetToSP implements format 13 (ADD SP, #+/-imm7*4), per
// spec.md §4.5.
func thumbAddOffsetToSP(c *CPU, word uint32) uint64 {
	negative := word&(1<<7) != 0
	imm := (word & 0x7F) * 4

	sp := c.regs.R(RegSP)
	if negative {
		sp -= imm
	} else {
		sp += imm
	}
	c.regs.SetR(RegSP, sp)
	return 1
}

// thumbPushPop implements format 14 (PUSH/POP {Rlist, LR|PC}), per spec.md
// §4.5: a full-descending-stack transfer, registers always visited in
// ascending order (R0 nearest the bottom of the range pushed, LR/PC last).
func thumbPushPop(c *CPU, word uint32) uint64 {
	load := word&(1<<11) != 0
	includeExtra := word&(1<<8) != 0
	rlist := word & 0xFF

	count := bits.OnesCount16(uint16(rlist))
	if includeExtra {
		count++
	}

	if load {
		addr := c.regs.R(RegSP)
		for i := 0; i < 8; i++ {
			if rlist&(1<<i) == 0 {
				continue
			}
			c.regs.SetR(i, c.mem.Read32(addr))
			addr += 4
		}
		if includeExtra {
			target := c.mem.Read32(addr)
			c.regs.FlushTo(target &^ 1)
			c.cache.invalidateAll()
			addr += 4
		}
		c.regs.SetR(RegSP, addr)
		return uint64(count) + 2
	}

	addr := c.regs.R(RegSP) - uint32(count)*4
	c.regs.SetR(RegSP, addr)
	for i := 0; i < 8; i++ {
		if rlist&(1<<i) == 0 {
			continue
		}
		c.mem.Write32(addr, c.regs.R(i))
		c.noteWrite(addr)
		addr += 4
	}
	if includeExtra {
		c.mem.Write32(addr, c.regs.R(RegLR))
		c.noteWrite(addr)
	}
	return uint64(count) + 1
}

// thumbMultipleLoadStore implements format 15 (STMIA/LDMIA Rb!, {Rlist}),
// per spec.md §4.5: always post-increment, always writeback, ascending
// register order.
func thumbMultipleLoadStore(c *CPU, word uint32) uint64 {
	load := word&(1<<11) != 0
	rb := int((word >> 8) & 0x7)
	rlist := word & 0xFF

	count := bits.OnesCount16(uint16(rlist))
	addr := c.regs.R(rb)
	baseInList := rlist&(1<<rb) != 0

	for i := 0; i < 8; i++ {
		if rlist&(1<<i) == 0 {
			continue
		}
		if load {
			c.regs.SetR(i, c.mem.Read32(addr))
		} else {
			c.mem.Write32(addr, c.regs.R(i))
			c.noteWrite(addr)
		}
		addr += 4
	}

	if !(load && baseInList) {
		c.regs.SetR(rb, addr)
	}
	return uint64(count) + 1
}
