package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetState(t *testing.T) {
	r := NewRegisters()
	assert.Equal(t, ModeSupervisor, r.mode())
	assert.True(t, r.GetFlag(FlagI))
	assert.True(t, r.GetFlag(FlagF))
	assert.False(t, r.thumb())
}

func TestPCPipelineOffset(t *testing.T) {
	r := NewRegisters()
	// the raw PC holds the next fetch address: the step loop has already
	// advanced it past the instruction at 0x1000 that is executing.
	r.SetPC(0x1004)
	assert.Equal(t, uint32(0x1008), r.R(RegPC), "ARM state reads PC+8")

	r.SetFlag(FlagT, true)
	r.SetPC(0x1002)
	assert.Equal(t, uint32(0x1004), r.R(RegPC), "Thumb state reads PC+4")
}

func TestFlushToAppliesAlignment(t *testing.T) {
	r := NewRegisters()
	r.FlushTo(0x1003)
	assert.Equal(t, uint32(0x1000), r.PC(), "ARM flush clears low 2 bits")

	r.SetFlag(FlagT, true)
	r.FlushTo(0x2001)
	assert.Equal(t, uint32(0x2000), r.PC(), "Thumb flush clears low bit")
}

func TestBankedRegistersSwitchOnModeChange(t *testing.T) {
	r := NewRegisters()
	r.SetR(RegSP, 0x03007F00)
	r.SetR(RegLR, 0x11111111)

	r.SwitchMode(ModeIRQ)
	r.SetR(RegSP, 0x03007FA0)
	r.SetR(RegLR, 0x22222222)

	r.SwitchMode(ModeSupervisor)
	assert.Equal(t, uint32(0x03007F00), r.R(RegSP))
	assert.Equal(t, uint32(0x11111111), r.R(RegLR))

	r.SwitchMode(ModeIRQ)
	assert.Equal(t, uint32(0x03007FA0), r.R(RegSP))
	assert.Equal(t, uint32(0x22222222), r.R(RegLR))
}

func TestFIQBanksR8ThroughR12(t *testing.T) {
	r := NewRegisters()
	r.SetR(8, 0xAAAA)
	r.SwitchMode(ModeFIQ)
	r.SetR(8, 0xBBBB)
	r.SwitchMode(ModeSupervisor)
	assert.Equal(t, uint32(0xAAAA), r.R(8))
	r.SwitchMode(ModeFIQ)
	assert.Equal(t, uint32(0xBBBB), r.R(8))
}

func TestSetCPSRMaskedInUserMode(t *testing.T) {
	r := NewRegisters()
	r.SwitchMode(ModeUser)
	r.cpsr = (r.cpsr &^ modeMaskBits) | uint32(ModeUser)

	r.SetCPSR(flagN|uint32(ModeSupervisor), flagN|modeMaskBits)
	assert.True(t, r.GetFlag(FlagN), "flag bits are always writable")
	assert.Equal(t, ModeUser, r.mode(), "mode bits are not writable from User mode via SetCPSR")
}

func TestRestoreCPSRBypassesUserMask(t *testing.T) {
	r := NewRegisters()
	r.SwitchMode(ModeUser)
	r.cpsr = (r.cpsr &^ modeMaskBits) | uint32(ModeUser)

	r.RestoreCPSR(uint32(ModeSupervisor))
	assert.Equal(t, ModeSupervisor, r.mode())
}

func TestSPSRUndefinedInUserAndSystem(t *testing.T) {
	r := NewRegisters()
	r.SwitchMode(ModeUser)
	r.cpsr = (r.cpsr &^ modeMaskBits) | uint32(ModeUser)
	assert.Equal(t, uint32(0), r.SPSR())

	r.SetSPSR(0xFFFFFFFF, 0xFFFFFFFF)
	assert.Equal(t, uint32(0), r.SPSR())
}

func TestRUserReachesUserBankFromPrivilegedMode(t *testing.T) {
	r := NewRegisters()
	r.SwitchMode(ModeUser)
	r.SetR(RegSP, 0x03007F00)
	r.SwitchMode(ModeIRQ)
	r.SetR(RegSP, 0x03007FA0)

	assert.Equal(t, uint32(0x03007F00), r.RUser(RegSP))
	r.SetRUser(RegSP, 0x03007F10)
	r.SwitchMode(ModeUser)
	assert.Equal(t, uint32(0x03007F10), r.R(RegSP))
}

func TestRUserFIQBank(t *testing.T) {
	r := NewRegisters()
	r.SetR(8, 0x1234)
	r.SwitchMode(ModeFIQ)
	r.SetR(8, 0x5678)
	assert.Equal(t, uint32(0x1234), r.RUser(8), "RUser reaches the non-banked set even while in FIQ mode")
}
