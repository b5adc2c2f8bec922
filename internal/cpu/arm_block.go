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

// armBlockDataTransfer implements LDM/STM, per spec.md §4.4: every
// pre/post-indexed, up/down, writeback and S-bit combination, including the
// empty-register-list edge case -- unpredictable on real hardware, resolved
// here (and in DESIGN.md) as "transfer no registers, skip writeback", the
// acceptable behavior spec.md §4.4 names explicitly.
func armBlockDataTransfer(c *CPU, word uint32) uint64 {
	pre := word&(1<<24) != 0
	up := word&(1<<23) != 0
	sBit := word&(1<<22) != 0
	writeback := word&(1<<21) != 0
	load := word&(1<<20) != 0
	rn := int((word >> 16) & 0xF)
	regList := word & 0xFFFF

	if regList == 0 {
		return 2
	}

	count := bits.OnesCount16(uint16(regList))

	base := c.regs.R(rn)
	addr := base
	if !up {
		addr -= uint32(count) * 4
	}
	if up == pre {
		addr += 4
	}

	// S=1 with a load that includes R15 restores CPSR from SPSR once the
	// load completes; S=1 in every other case means transfer the user-mode
	// register bank regardless of the currently active mode, per spec.md
	// §4.4.
	pcInList := regList&(1<<RegPC) != 0
	userBank := sBit && !(load && pcInList)

	for i := 0; i < 16; i++ {
		if regList&(1<<i) == 0 {
			continue
		}
		if load {
			v := c.mem.Read32(addr)
			if i == RegPC {
				c.regs.FlushTo(v &^ 3)
				c.cache.invalidateAll()
			} else if userBank {
				c.regs.SetRUser(i, v)
			} else {
				c.regs.SetR(i, v)
			}
		} else {
			var v uint32
			if userBank {
				v = c.regs.RUser(i)
			} else {
				v = c.regs.R(i)
			}
			if i == RegPC {
				v += 4 // stored value is PC+12; R(15) already reads PC+8
			}
			c.mem.Write32(addr, v)
			c.noteWrite(addr)
		}
		addr += 4
	}

	if load && pcInList && sBit {
		c.exceptionReturnFromSPSR()
	}

	if writeback {
		var newBase uint32
		if up {
			newBase = base + uint32(count)*4
		} else {
			newBase = base - uint32(count)*4
		}
		// a load that writes back into its own base register keeps the
		// loaded value, not the computed writeback address, per spec.md
		// §4.4's "base-in-register-list" edge case.
		if !(load && rn < 16 && regList&(1<<rn) != 0) {
			c.regs.SetR(rn, newBase)
		}
	}

	cycles := uint64(count) + 1
	if pcInList {
		cycles += 2
	}
	return cycles
}
