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

// thumbConditionalBranch implements format 16, per spec.md §4.5: the
// condition field sits where ARM's is implicit-AL, so this is the one
// Thumb instruction that evaluates a real Condition.
func thumbConditionalBranch(c *CPU, word uint32) uint64 {
	cond := Condition((word >> 8) & 0xF)
	if !evalCondition(cond, c.regs.CPSR()) {
		return 1
	}

	offset := word & 0xFF
	signed := int32(int8(uint8(offset))) * 2
	target := uint32(int32(c.regs.R(RegPC)) + signed)
	c.regs.FlushTo(target)
	c.cache.invalidateAll()
	return branchCycles
}

// thumbSoftwareInterrupt implements format 17, per spec.md §4.5/§7: SWI
// always traps to ARM-state Supervisor mode, identically to the ARM
// encoding's exception entry.
func thumbSoftwareInterrupt(c *CPU, word uint32) uint64 {
	returnAddr := c.regs.PC()
	spsr := c.regs.CPSR()
	c.regs.SwitchMode(ModeSupervisor)
	c.regs.SetSPSR(spsr, 0xFFFFFFFF)
	c.regs.SetR(RegLR, returnAddr)
	c.regs.SetFlag(FlagI, true)
	c.regs.SetFlag(FlagT, false)
	c.regs.FlushTo(vectorSWI)
	c.cache.invalidateAll()
	return branchCycles
}

// thumbUnconditionalBranch implements format 18 (B label), per spec.md
// §4.5: an 11-bit signed word-pair offset.
func thumbUnconditionalBranch(c *CPU, word uint32) uint64 {
	offset := word & 0x7FF
	signed := signExtend(offset, 11) * 2
	target := uint32(int32(c.regs.R(RegPC)) + signed)
	c.regs.FlushTo(target)
	c.cache.invalidateAll()
	return branchCycles
}

// thumbLongBranchWithLink implements format 19 (BL label), per spec.md
// §4.5: a two-instruction pair, the first stashing the high 11 bits of the
// offset into LR, the second combining them with its own low 11 bits and
// branching. The CPU's Step loop only checks for pending interrupts between
// dispatches, so when the first half is immediately followed by the second
// half in memory, this handler runs both before returning -- keeping the
// pair atomic with respect to interrupt entry, matching the original core's
// behavior (see SPEC_FULL.md's "Thumb format 19 atomicity" note).
func thumbLongBranchWithLink(c *CPU, word uint32) uint64 {
	if word&(1<<11) != 0 {
		return thumbLongBranchSecondHalf(c, word)
	}

	high := signExtend(word&0x7FF, 11) << 12
	c.regs.SetR(RegLR, uint32(int32(c.regs.R(RegPC))+high))

	next := c.fetchWord(c.regs.PC(), true)
	if next>>8 < 0xF8 || next>>8 > 0xFF {
		return 1
	}
	c.regs.SetPC(c.regs.PC() + 2)
	return 1 + thumbLongBranchSecondHalf(c, next)
}

func thumbLongBranchSecondHalf(c *CPU, word uint32) uint64 {
	offset11 := word & 0x7FF
	target := c.regs.R(RegLR) + offset11*2
	next := c.regs.PC() | 1
	c.regs.SetR(RegLR, next)
	c.regs.FlushTo(target)
	c.cache.invalidateAll()
	return branchCycles
}

// signExtend sign-extends the low `bits` bits of v to a full int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
