package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrowm/gba-sub000/internal/memmap"
)

// newTestCPU builds a CPU over a flat, fully read/write memory map, large
// enough for instruction streams and a stack, with no interrupt controller.
func newTestCPU(t *testing.T) (*CPU, *memmap.Map) {
	t.Helper()
	mem := memmap.NewFlat(64 * 1024)
	c := New(mem, nil)
	c.Reset(0)
	c.regs.SetFlag(FlagI, false)
	c.regs.SetFlag(FlagF, false)
	c.regs.SwitchMode(ModeUser)
	c.regs.cpsr = (c.regs.cpsr &^ modeMaskBits) | uint32(ModeSystem)
	return c, mem
}

func putARM(mem *memmap.Map, addr uint32, word uint32) {
	mem.Write32(addr, word)
}

func putThumb(mem *memmap.Map, addr uint32, word uint16) {
	mem.Write16(addr, word)
}

type alwaysPending struct{ acked int }

func (a *alwaysPending) PendingAndUnmasked() bool { return true }
func (a *alwaysPending) Ack()                     { a.acked++ }

func TestStepEntersIRQWhenPendingAndUnmasked(t *testing.T) {
	mem := memmap.NewFlat(64 * 1024)
	irqc := &alwaysPending{}
	c := New(mem, irqc)
	c.Reset(0x100)
	c.regs.SetFlag(FlagI, false)

	// IRQ entry costs 2 cycles, so a budget of 2 covers exactly one entry and
	// no instruction at the 0x18 vector is executed; entry sets I, so the
	// still-pending request is not taken again.
	c.Step(2)

	assert.Equal(t, ModeIRQ, c.regs.mode())
	assert.True(t, c.regs.GetFlag(FlagI))
	assert.Equal(t, uint32(0x18), c.regs.PC())
	assert.GreaterOrEqual(t, irqc.acked, 1)
}

func TestScenarioARMAddImmediateWithRotation(t *testing.T) {
	c, mem := newTestCPU(t)
	// ADDS R1, R1, #0x100 (imm8=0x01, rot=12 -> rotated right by 24 = 0x100)
	putARM(mem, 0, armDPImm(0b0100, true, 1, 1, 12, 0x01))
	c.regs.SetR(1, 0xFFFFFF00)
	c.regs.SetFlag(FlagC, false)

	c.Step(1)

	require.Equal(t, uint32(0), c.regs.R(1))
	assert.False(t, c.regs.GetFlag(FlagN))
	assert.True(t, c.regs.GetFlag(FlagZ))
	assert.True(t, c.regs.GetFlag(FlagC))
	assert.False(t, c.regs.GetFlag(FlagV))
	assert.Equal(t, uint32(4), c.regs.PC())
}
