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

// thumbMoveShifted implements format 1 (LSL/LSR/ASR Rd, Rs, #offset5), per
// spec.md §4.5. The immediate-shift corner cases (LSR/ASR #0 meaning #32,
// ROR not present in this format) are the same ones the barrel shifter
// already encodes.
func thumbMoveShifted(c *CPU, word uint32) uint64 {
	op := (word >> 11) & 0x3
	offset5 := (word >> 6) & 0x1F
	rs := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	var typ ShiftType
	switch op {
	case 0b00:
		typ = ShiftLSL
	case 0b01:
		typ = ShiftLSR
	default:
		typ = ShiftASR
	}

	value, carryOut := shift(c.regs.R(rs), offset5, typ, c.regs.GetFlag(FlagC), false)
	c.regs.SetR(rd, value)

	n, z := updateNZ(value)
	c.regs.SetFlag(FlagN, n)
	c.regs.SetFlag(FlagZ, z)
	c.regs.SetFlag(FlagC, carryOut)
	return 1
}

// thumbAddSubtract implements format 2 (ADD/SUB Rd, Rs, Rn|#imm3), per
// spec.md §4.5.
func thumbAddSubtract(c *CPU, word uint32) uint64 {
	immediate := word&(1<<10) != 0
	sub := word&(1<<9) != 0
	field := (word >> 6) & 0x7
	rs := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	var operand uint32
	if immediate {
		operand = field
	} else {
		operand = c.regs.R(int(field))
	}

	op1 := c.regs.R(rs)
	var result uint32
	var n, z, cOut, vOut bool
	if sub {
		result, n, z, cOut, vOut = subFlags(op1, operand, true)
	} else {
		result, n, z, cOut, vOut = addFlags(op1, operand, false)
	}
	c.regs.SetR(rd, result)
	c.regs.SetFlag(FlagN, n)
	c.regs.SetFlag(FlagZ, z)
	c.regs.SetFlag(FlagC, cOut)
	c.regs.SetFlag(FlagV, vOut)
	return 1
}

// thumbImmediateOp implements format 3 (MOV/CMP/ADD/SUB Rd, #offset8), per
// spec.md §4.5.
func thumbImmediateOp(c *CPU, word uint32) uint64 {
	op := (word >> 11) & 0x3
	rd := int((word >> 8) & 0x7)
	imm := word & 0xFF

	switch op {
	case 0b00: // MOV
		c.regs.SetR(rd, imm)
		n, z := updateNZ(imm)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
	case 0b01: // CMP
		_, n, z, cOut, vOut := subFlags(c.regs.R(rd), imm, true)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
		c.regs.SetFlag(FlagC, cOut)
		c.regs.SetFlag(FlagV, vOut)
	case 0b10: // ADD
		result, n, z, cOut, vOut := addFlags(c.regs.R(rd), imm, false)
		c.regs.SetR(rd, result)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
		c.regs.SetFlag(FlagC, cOut)
		c.regs.SetFlag(FlagV, vOut)
	case 0b11: // SUB
		result, n, z, cOut, vOut := subFlags(c.regs.R(rd), imm, true)
		c.regs.SetR(rd, result)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
		c.regs.SetFlag(FlagC, cOut)
		c.regs.SetFlag(FlagV, vOut)
	}
	return 1
}
