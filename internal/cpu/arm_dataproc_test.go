package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestARMAddImmediateWithRotation(t *testing.T) {
	c, mem := newTestCPU(t)
	// ADD R0, R0, #0xFF0 (imm8=0xFF, rot=14 -> rotated right by 28 bits).
	putARM(mem, 0, armDPImm(0b0100, false, 0, 0, 14, 0xFF))
	c.regs.SetR(0, 0x10)

	c.Step(1)

	assert.Equal(t, uint32(0x10+0xFF0), c.regs.R(0))
	assert.Equal(t, uint32(4), c.regs.PC())
}

func TestARMMovSetsFlagsFromShifterCarry(t *testing.T) {
	c, mem := newTestCPU(t)
	// MOVS R1, R0, LSL #1 ; R0 = 0x80000000 so the shifted-out bit becomes C.
	putARM(mem, 0, armDPReg(0b1101, true, 0, 1, 0, 1, ShiftLSL))
	c.regs.SetR(0, 0x80000000)

	c.Step(1)

	assert.Equal(t, uint32(0), c.regs.R(1))
	assert.True(t, c.regs.GetFlag(FlagZ))
	assert.True(t, c.regs.GetFlag(FlagC))
}

func TestARMSubFlagsOnUnderflow(t *testing.T) {
	c, mem := newTestCPU(t)
	// SUBS R0, R0, R1
	putARM(mem, 0, armDPReg(0b0010, true, 0, 0, 1, 0, ShiftLSL))
	c.regs.SetR(0, 1)
	c.regs.SetR(1, 2)

	c.Step(1)

	assert.Equal(t, uint32(0xFFFFFFFF), c.regs.R(0))
	assert.True(t, c.regs.GetFlag(FlagN))
	assert.False(t, c.regs.GetFlag(FlagC), "borrow clears C")
}

func TestARMCMPDoesNotWriteRd(t *testing.T) {
	c, mem := newTestCPU(t)
	putARM(mem, 0, armDPReg(0b1010, true, 0, 0, 1, 0, ShiftLSL)) // CMP R0, R1
	c.regs.SetR(0, 5)
	c.regs.SetR(1, 5)

	c.Step(1)

	assert.Equal(t, uint32(5), c.regs.R(0), "CMP must not modify Rn")
	assert.True(t, c.regs.GetFlag(FlagZ))
}

func TestARMMovsPCRestoresCPSRFromSPSR(t *testing.T) {
	c, mem := newTestCPU(t)
	c.regs.SwitchMode(ModeSupervisor)
	c.regs.cpsr = (c.regs.cpsr &^ modeMaskBits) | uint32(ModeSupervisor)
	c.regs.SetSPSR(uint32(ModeUser), 0xFFFFFFFF)
	c.regs.SetR(RegLR, 0x8000)

	// MOVS PC, LR
	putARM(mem, 0, armDPReg(0b1101, true, 0, RegPC, RegLR, 0, ShiftLSL))

	c.Step(1)

	assert.Equal(t, ModeUser, c.regs.mode())
	assert.Equal(t, uint32(0x8000), c.regs.PC())
}

func TestARMConditionSkipsWhenFalse(t *testing.T) {
	c, mem := newTestCPU(t)
	// MOVEQ R0, #5, but Z is clear.
	word := armDPImm(0b1101, false, 0, 0, 0, 5)
	word = (word &^ (0xF << 28)) | (uint32(CondEQ) << 28)
	putARM(mem, 0, word)
	c.regs.SetFlag(FlagZ, false)

	c.Step(1)

	assert.Equal(t, uint32(0), c.regs.R(0), "condition false: instruction must not execute")
	assert.Equal(t, uint32(4), c.regs.PC())
}
