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

// thumbALU implements format 4's sixteen ALU operations (AND/EOR/LSL/LSR/
// ASR/ADC/SBC/ROR/TST/NEG/CMP/CMN/ORR/MUL/BIC/MVN), per spec.md §4.5.
func thumbALU(c *CPU, word uint32) uint64 {
	op := (word >> 6) & 0xF
	rs := int((word >> 3) & 0x7)
	rd := int(word & 0x7)

	dst := c.regs.R(rd)
	src := c.regs.R(rs)
	carryIn := c.regs.GetFlag(FlagC)

	var result uint32
	var n, z, cOut, vOut bool
	hasV := false
	writesResult := true
	cycles := uint64(1)

	switch op {
	case 0b0000: // AND
		result = dst & src
		n, z = updateNZ(result)
	case 0b0001: // EOR
		result = dst ^ src
		n, z = updateNZ(result)
	case 0b0010: // LSL
		result, cOut = shift(dst, src&0xFF, ShiftLSL, carryIn, true)
		n, z = updateNZ(result)
		c.regs.SetFlag(FlagC, cOut)
		cycles = 2
	case 0b0011: // LSR
		result, cOut = shift(dst, src&0xFF, ShiftLSR, carryIn, true)
		n, z = updateNZ(result)
		c.regs.SetFlag(FlagC, cOut)
		cycles = 2
	case 0b0100: // ASR
		result, cOut = shift(dst, src&0xFF, ShiftASR, carryIn, true)
		n, z = updateNZ(result)
		c.regs.SetFlag(FlagC, cOut)
		cycles = 2
	case 0b0101: // ADC
		result, n, z, cOut, vOut = addFlags(dst, src, carryIn)
		hasV = true
	case 0b0110: // SBC
		result, n, z, cOut, vOut = subFlags(dst, src, carryIn)
		hasV = true
	case 0b0111: // ROR
		result, cOut = shift(dst, src&0xFF, ShiftROR, carryIn, true)
		n, z = updateNZ(result)
		c.regs.SetFlag(FlagC, cOut)
		cycles = 2
	case 0b1000: // TST
		result = dst & src
		n, z = updateNZ(result)
		writesResult = false
	case 0b1001: // NEG
		result, n, z, cOut, vOut = subFlags(0, src, true)
		hasV = true
	case 0b1010: // CMP
		result, n, z, cOut, vOut = subFlags(dst, src, true)
		hasV = true
		writesResult = false
	case 0b1011: // CMN
		result, n, z, cOut, vOut = addFlags(dst, src, false)
		hasV = true
		writesResult = false
	case 0b1100: // ORR
		result = dst | src
		n, z = updateNZ(result)
	case 0b1101: // MUL
		result = dst * src
		n, z = updateNZ(result)
		cycles = c.mulCycles(src) + 1
	case 0b1110: // BIC
		result = dst &^ src
		n, z = updateNZ(result)
	case 0b1111: // MVN
		result = ^src
		n, z = updateNZ(result)
	}

	if writesResult {
		c.regs.SetR(rd, result)
	}
	c.regs.SetFlag(FlagN, n)
	c.regs.SetFlag(FlagZ, z)
	if op != 0b0010 && op != 0b0011 && op != 0b0100 && op != 0b0111 {
		if op == 0b0000 || op == 0b0001 || op == 0b1000 || op == 0b1100 || op == 0b1110 || op == 0b1111 {
			// AND/EOR/TST/ORR/BIC/MVN leave C unchanged in this format.
		} else {
			c.regs.SetFlag(FlagC, cOut)
		}
	}
	if hasV {
		c.regs.SetFlag(FlagV, vOut)
	}
	return cycles
}

// thumbHiRegisterOp implements format 5 (ADD/CMP/MOV/BX with access to R8-
// R15), per spec.md §4.5.
func thumbHiRegisterOp(c *CPU, word uint32) uint64 {
	op := (word >> 8) & 0x3
	h1 := (word >> 7) & 0x1
	h2 := (word >> 6) & 0x1
	rs := int((word>>3)&0x7) | int(h2<<3)
	rd := int(word&0x7) | int(h1<<3)

	switch op {
	case 0b00: // ADD
		result := c.regs.R(rd) + c.regs.R(rs)
		if rd == RegPC {
			c.regs.FlushTo(result)
			c.cache.invalidateAll()
			return branchCycles
		}
		c.regs.SetR(rd, result)
	case 0b01: // CMP
		_, n, z, cOut, vOut := subFlags(c.regs.R(rd), c.regs.R(rs), true)
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
		c.regs.SetFlag(FlagC, cOut)
		c.regs.SetFlag(FlagV, vOut)
	case 0b10: // MOV
		result := c.regs.R(rs)
		if rd == RegPC {
			c.regs.FlushTo(result &^ 1)
			c.cache.invalidateAll()
			return branchCycles
		}
		c.regs.SetR(rd, result)
	case 0b11: // BX (and BLX in later cores, not present on ARMv4T)
		target := c.regs.R(rs)
		c.regs.SetFlag(FlagT, target&1 != 0)
		c.regs.FlushTo(target)
		c.cache.invalidateAll()
		return branchCycles
	}
	return 1
}
