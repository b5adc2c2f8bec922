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

// dataProcOperand2 evaluates operand2 of a data-processing instruction,
// returning the value and the shifter's carry-out (which feeds C for the
// logical opcodes), per spec.md §4.3/§4.4.
func dataProcOperand2(c *CPU, word uint32) (value uint32, shifterCarry bool) {
	carryIn := c.regs.GetFlag(FlagC)

	if word&(1<<25) != 0 {
		imm8 := word & 0xFF
		rot := (word >> 8) & 0xF
		return rotateImmediate(imm8, rot, carryIn)
	}

	rm := c.regs.R(int(word & 0xF))
	typ := ShiftType((word >> 5) & 0x3)

	if word&(1<<4) != 0 {
		rs := c.regs.R(int((word>>8)&0xF)) & 0xFF
		return shift(rm, rs, typ, carryIn, true)
	}

	amount := (word >> 7) & 0x1F
	return shift(rm, amount, typ, carryIn, false)
}

// armDataProcessing executes AND/EOR/SUB/RSB/ADD/ADC/SBC/RSC/TST/TEQ/CMP/
// CMN/ORR/MOV/BIC/MVN, per spec.md §4.4.
func armDataProcessing(c *CPU, word uint32) uint64 {
	opcode := (word >> 21) & 0xF
	setFlags := word&(1<<20) != 0
	rn := int((word >> 16) & 0xF)
	rd := int((word >> 12) & 0xF)

	op2, shifterCarry := dataProcOperand2(c, word)
	op1 := c.regs.R(rn)

	var result uint32
	var n, z, cOut, vOut bool
	writesResult := true

	switch opcode {
	case 0b0000: // AND
		result = op1 & op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	case 0b0001: // EOR
		result = op1 ^ op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	case 0b0010: // SUB
		result, n, z, cOut, vOut = subFlags(op1, op2, true)
	case 0b0011: // RSB
		result, n, z, cOut, vOut = subFlags(op2, op1, true)
	case 0b0100: // ADD
		result, n, z, cOut, vOut = addFlags(op1, op2, false)
	case 0b0101: // ADC
		result, n, z, cOut, vOut = addFlags(op1, op2, c.regs.GetFlag(FlagC))
	case 0b0110: // SBC
		result, n, z, cOut, vOut = subFlags(op1, op2, c.regs.GetFlag(FlagC))
	case 0b0111: // RSC
		result, n, z, cOut, vOut = subFlags(op2, op1, c.regs.GetFlag(FlagC))
	case 0b1000: // TST
		result = op1 & op2
		n, z = updateNZ(result)
		cOut = shifterCarry
		writesResult = false
	case 0b1001: // TEQ
		result = op1 ^ op2
		n, z = updateNZ(result)
		cOut = shifterCarry
		writesResult = false
	case 0b1010: // CMP
		result, n, z, cOut, vOut = subFlags(op1, op2, true)
		writesResult = false
	case 0b1011: // CMN
		result, n, z, cOut, vOut = addFlags(op1, op2, false)
		writesResult = false
	case 0b1100: // ORR
		result = op1 | op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	case 0b1101: // MOV
		result = op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	case 0b1110: // BIC
		result = op1 &^ op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	case 0b1111: // MVN
		result = ^op2
		n, z = updateNZ(result)
		cOut = shifterCarry
	}

	if writesResult {
		if rd == RegPC {
			c.regs.FlushTo(result)
			if setFlags {
				// writing R15 with S=1 in a privileged mode restores CPSR
				// from SPSR, the classic "MOVS PC, LR"-shaped return.
				c.exceptionReturnFromSPSR()
			}
			c.cache.invalidateAll()
			return branchCycles
		}
		c.regs.SetR(rd, result)
	}

	if setFlags && rd != RegPC {
		c.regs.SetFlag(FlagN, n)
		c.regs.SetFlag(FlagZ, z)
		c.regs.SetFlag(FlagC, cOut)
		if opcode != 0b0000 && opcode != 0b0001 && opcode != 0b1000 &&
			opcode != 0b1001 && opcode != 0b1100 && opcode != 0b1101 &&
			opcode != 0b1110 && opcode != 0b1111 {
			c.regs.SetFlag(FlagV, vOut)
		}
	}

	return dataProcCycles
}

const (
	dataProcCycles = 1
	branchCycles   = 3
)
