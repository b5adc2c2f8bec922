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

// psrFieldMask expands MSR's 4-bit field mask (bits 19:16 of the
// instruction, "fsxc") into the CPSR/SPSR bit mask it selects, per spec.md
// §4.4. This core only implements the flags (f) and control (c) fields --
// status (s) and extension (x) are reserved/unused on ARMv4T.
func psrFieldMask(fieldBits uint32) uint32 {
	var mask uint32
	if fieldBits&0x1 != 0 { // c: control bits
		mask |= 0x000000FF
	}
	if fieldBits&0x8 != 0 { // f: flag bits
		mask |= 0xFF000000
	}
	return mask
}

// armMRS implements MRS Rd, CPSR|SPSR, per spec.md §4.4.
func armMRS(c *CPU, word uint32) uint64 {
	rd := int((word >> 12) & 0xF)
	useSPSR := word&(1<<22) != 0

	var v uint32
	if useSPSR {
		v = c.regs.SPSR()
	} else {
		v = c.regs.CPSR()
	}
	c.regs.SetR(rd, v)
	return dataProcCycles
}

// armMSRRegister implements MSR CPSR_f|SPSR_f, Rm, per spec.md §4.4.
func armMSRRegister(c *CPU, word uint32) uint64 {
	rm := int(word & 0xF)
	return msrWrite(c, word, c.regs.R(rm))
}

// armMSRImmediate implements MSR CPSR_f|SPSR_f, #imm, per spec.md §4.4.
func armMSRImmediate(c *CPU, word uint32) uint64 {
	imm8 := word & 0xFF
	rot := (word >> 8) & 0xF
	v, _ := rotateImmediate(imm8, rot, c.regs.GetFlag(FlagC))
	return msrWrite(c, word, v)
}

func msrWrite(c *CPU, word uint32, value uint32) uint64 {
	useSPSR := word&(1<<22) != 0
	field := (word >> 16) & 0xF
	mask := psrFieldMask(field)

	if useSPSR {
		c.regs.SetSPSR(value, mask)
	} else {
		c.regs.SetCPSR(value, mask)
		c.cache.invalidateAll()
	}
	return dataProcCycles
}

// armBranchExchange implements BX Rm: jump to Rm's address, switching to
// Thumb state if its bit 0 is set, per spec.md §4.4.
func armBranchExchange(c *CPU, word uint32) uint64 {
	rm := int(word & 0xF)
	target := c.regs.R(rm)

	thumb := target&1 != 0
	c.regs.SetFlag(FlagT, thumb)
	c.regs.FlushTo(target)
	c.cache.invalidateAll()
	return branchCycles
}
