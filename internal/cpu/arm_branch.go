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

// armBranch implements B and BL, per spec.md §4.4: a PC-relative jump using
// a sign-extended 24-bit word offset, optionally saving the return address
// in LR.
func armBranch(c *CPU, word uint32) uint64 {
	link := word&(1<<24) != 0

	offset := word & 0xFFFFFF
	signed := int32(offset<<8) >> 6 // sign-extend 24 bits, then *4

	if link {
		c.regs.SetR(RegLR, c.regs.PC())
	}

	target := uint32(int32(c.regs.R(RegPC)) + signed)
	c.regs.FlushTo(target)
	c.cache.invalidateAll()
	return branchCycles
}

// armSoftwareInterrupt implements SWI, per spec.md §4.4/§7: save the return
// address to R14_svc, CPSR to SPSR_svc, switch to Supervisor mode, disable
// IRQ, jump to 0x00000008. The comment field (bits 23:0) is informational
// only -- BIOS call dispatch is out of scope for this core.
func armSoftwareInterrupt(c *CPU, word uint32) uint64 {
	returnAddr := c.regs.PC()
	spsr := c.regs.CPSR()
	c.regs.SwitchMode(ModeSupervisor)
	c.regs.SetSPSR(spsr, 0xFFFFFFFF)
	c.regs.SetR(RegLR, returnAddr)
	c.regs.SetFlag(FlagI, true)
	c.regs.FlushTo(vectorSWI)
	c.cache.invalidateAll()
	return branchCycles
}
