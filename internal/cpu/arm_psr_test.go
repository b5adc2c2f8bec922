package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func armMRSWord(rd int, useSPSR bool) uint32 {
	byteVal := uint32(0x10)
	if useSPSR {
		byteVal = 0x14
	}
	return condAL<<28 | byteVal<<20 | 0xF<<16 | uint32(rd)<<12
}

func armMSRRegWord(rm int, useSPSR bool, field uint32) uint32 {
	word := condAL<<28 | 0x12<<20 | field<<16 | 0xF<<12 | uint32(rm)
	if useSPSR {
		word |= 1 << 22
	}
	return word
}

func TestMRSReadsCPSR(t *testing.T) {
	c, mem := newTestCPU(t)
	putARM(mem, 0, armMRSWord(0, false))
	c.regs.SetFlag(FlagN, true)

	c.Step(1)

	assert.Equal(t, c.regs.CPSR(), c.regs.R(0))
}

func TestMSRRegisterWritesFlagsOnly(t *testing.T) {
	c, mem := newTestCPU(t)
	// MSR CPSR_f, R0, with R0 carrying only flag bits set.
	putARM(mem, 0, armMSRRegWord(0, false, 0b1000))
	c.regs.SetR(0, flagN|flagZ)
	modeBefore := c.regs.mode()

	c.Step(1)

	assert.True(t, c.regs.GetFlag(FlagN))
	assert.True(t, c.regs.GetFlag(FlagZ))
	assert.Equal(t, modeBefore, c.regs.mode(), "control field not selected: mode must not change")
}

func TestMSRRegisterWritesControlField(t *testing.T) {
	c, mem := newTestCPU(t)
	putARM(mem, 0, armMSRRegWord(0, false, 0b0001))
	c.regs.SetR(0, uint32(ModeSystem))

	c.Step(1)

	assert.Equal(t, ModeSystem, c.regs.mode())
}

func TestBXSwitchesToThumb(t *testing.T) {
	c, mem := newTestCPU(t)
	putARM(mem, 0, armBXWord(0))
	c.regs.SetR(0, 0x1001) // odd target: Thumb

	c.Step(1)

	assert.True(t, c.regs.thumb())
	assert.Equal(t, uint32(0x1000), c.regs.PC())
}

func TestBXStaysARMOnEvenTarget(t *testing.T) {
	c, mem := newTestCPU(t)
	putARM(mem, 0, armBXWord(0))
	c.regs.SetR(0, 0x2000)

	c.Step(1)

	assert.False(t, c.regs.thumb())
	assert.Equal(t, uint32(0x2000), c.regs.PC())
}
