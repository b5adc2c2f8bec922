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

// Package cpu implements the ARM7TDMI interpreter core: the register file
// and mode state, the barrel shifter, the ARM and Thumb decoders/executors,
// the condition evaluator and flag updater, and the cycle-budgeted step
// loop. This is the hard part of the emulator (spec.md §1) -- every other
// package in this repository exists to exercise or surround it.
package cpu

import (
	"github.com/harrowm/gba-sub000/internal/logger"
	"github.com/harrowm/gba-sub000/internal/memmap"
)

// IRQ vector addresses the exception handlers jump to, per spec.md §4.4.
const (
	vectorUndefined = 0x00000004
	vectorSWI       = 0x00000008
	vectorIRQ       = 0x00000018
)

// Memory is the interface the CPU requires of its backing memory map. The
// concrete implementation is internal/memmap.Map; tests may substitute a
// smaller fake.
type Memory interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
	MapAddr(addr uint32) (memmap.RegionID, uint32)
}

// InterruptController is the minimal interface the CPU polls between
// instructions, per spec.md §6/§4.7.
type InterruptController interface {
	PendingAndUnmasked() bool
	Ack()
}

type nullIRQ struct{}

func (nullIRQ) PendingAndUnmasked() bool { return false }
func (nullIRQ) Ack()                     {}

// CPU is the ARM7TDMI interpreter: register file, attached memory and
// interrupt controller, and the optional decode cache, per spec.md §6.
type CPU struct {
	regs  *Registers
	mem   Memory
	irq   InterruptController
	cache *decodeCache

	armTable   [4096]armHandler
	thumbTable [256]thumbHandler

	cyclesConsumed       uint64
	instructionsExecuted uint64

	// simplifiedMulTiming selects the flat `m+1` multiply-cycle approximation
	// instead of the byte-scan "early termination" rule, a prefs-togglable
	// fallback per SPEC_FULL.md's supplemented cycle-costing detail.
	simplifiedMulTiming bool

	// cacheEnabled gates the decode cache per prefs.Values.DecodeCacheEnabled;
	// disabled, fetchWord always decodes straight from memory.
	cacheEnabled bool
}

// SetCacheEnabled toggles the decode cache on or off, per
// prefs.Values.DecodeCacheEnabled. Disabling it mid-run does not clear
// existing entries; it simply stops consulting and populating them.
func (c *CPU) SetCacheEnabled(enabled bool) {
	c.cacheEnabled = enabled
}

// SetSimplifiedMulTiming toggles the MUL/MLA/MULL cycle-cost model between
// the byte-scan rule (default, matching original_source/cpu.c) and the flat
// `m+1` approximation some implementers may prefer for predictability.
func (c *CPU) SetSimplifiedMulTiming(simplified bool) {
	c.simplifiedMulTiming = simplified
}

// mulCycles prices a multiply's Rs operand according to the active timing
// model.
func (c *CPU) mulCycles(rs uint32) uint64 {
	if c.simplifiedMulTiming {
		return 1
	}
	return mulBoothCycles(rs)
}

// New constructs a CPU attached to mem and irqc, per spec.md §6's
// `new(memory_handle, interrupt_handle) -> Cpu`. A nil irqc is replaced
// with a controller that never asserts, which is convenient for
// instruction-level unit tests that don't care about interrupts.
func New(mem Memory, irqc InterruptController) *CPU {
	if irqc == nil {
		irqc = nullIRQ{}
	}
	c := &CPU{
		regs:         NewRegisters(),
		mem:          mem,
		irq:          irqc,
		cache:        newDecodeCache(),
		cacheEnabled: true,
	}
	buildArmTable(&c.armTable)
	buildThumbTable(&c.thumbTable)
	return c
}

// Registers returns a snapshot of the 16 general-purpose registers as the
// architecture currently exposes them (R15 read with its pipeline offset
// applied), per spec.md §6.
func (c *CPU) Registers() [16]uint32 {
	var out [16]uint32
	for i := 0; i < 16; i++ {
		out[i] = c.regs.R(i)
	}
	return out
}

// SetRegister writes a general-purpose register directly, bypassing any
// instruction semantics. Exposed for tests and debuggers, per spec.md §6
// ("mutable accessor for testing").
func (c *CPU) SetRegister(i int, v uint32) {
	if i == RegPC {
		c.regs.SetPC(v)
		return
	}
	c.regs.SetR(i, v)
}

// CPSR returns the raw Current Program Status Register.
func (c *CPU) CPSR() uint32 {
	return c.regs.CPSR()
}

// SetCPSR overwrites the entire CPSR unconditionally. This is a debug/test
// accessor (spec.md §6's `set_cpsr(u32)`), not an emulation of the MSR
// instruction -- it is not subject to MSR's User-mode write restriction.
func (c *CPU) SetCPSR(v uint32) {
	c.regs.RestoreCPSR(v)
	c.cache.invalidateAll()
}

// GetFlag reports one CPSR flag/control bit, per spec.md §6.
func (c *CPU) GetFlag(f FlagBit) bool {
	return c.regs.GetFlag(f)
}

// SetFlag sets one CPSR flag/control bit, per spec.md §6.
func (c *CPU) SetFlag(f FlagBit, v bool) {
	c.regs.SetFlag(f, v)
}

// CacheStats returns (hits, misses, invalidations) for the decode cache,
// per spec.md §6's optional cache_stats() API.
func (c *CPU) CacheStats() (hits, misses, invalidations uint64) {
	return c.cache.Stats()
}

// InstructionsExecuted returns the running count of instructions Step has
// dispatched (IRQ entries are not instructions and are not counted).
func (c *CPU) InstructionsExecuted() uint64 {
	return c.instructionsExecuted
}

// Reset puts the CPU in its post-reset state: Supervisor mode, IRQ/FIQ
// disabled, ARM state, PC at the given pc.
func (c *CPU) Reset(pc uint32) {
	c.regs = NewRegisters()
	c.regs.SetPC(pc)
	c.cache.invalidateAll()
}

// instrSize returns the width, in bytes, of the currently selected
// instruction set's encoding.
func (c *CPU) instrSize() uint32 {
	if c.regs.thumb() {
		return 2
	}
	return 4
}

// Step runs the CPU for up to cycleBudget cycles and returns the number of
// cycles actually consumed, per spec.md §4.7/§6. Cancellation is purely
// cooperative: no instruction is interrupted partway through (spec.md §5).
func (c *CPU) Step(cycleBudget uint64) uint64 {
	var consumed uint64

	for consumed < cycleBudget {
		if c.irq.PendingAndUnmasked() && !c.regs.GetFlag(FlagI) {
			consumed += c.enterIRQ()
			continue
		}

		pc := c.regs.PC()
		thumb := c.regs.thumb()

		if thumb {
			consumed += c.stepThumb(pc)
		} else {
			consumed += c.stepARM(pc)
		}
		c.instructionsExecuted++
	}

	c.cyclesConsumed += consumed
	return consumed
}

// fetchWord fetches the instruction word at addr through the decode cache,
// transparently handling cache hit/miss and the region-epoch validity
// check described in cache.go.
func (c *CPU) fetchWord(addr uint32, thumb bool) uint32 {
	if !c.cacheEnabled {
		if thumb {
			return uint32(c.mem.Read16(addr))
		}
		return c.mem.Read32(addr)
	}

	region, _ := c.mem.MapAddr(addr)
	gen := c.cache.regionEpoch(region)

	if w, ok := c.cache.lookup(addr, thumb, region, gen); ok {
		return w
	}

	var w uint32
	if thumb {
		w = uint32(c.mem.Read16(addr))
	} else {
		w = c.mem.Read32(addr)
	}
	c.cache.insert(addr, thumb, w, region, gen)
	return w
}

// noteWrite must be called by every store the CPU performs, so that the
// decode cache's self-modifying-code invalidation (spec.md §3, §5) stays
// correct: any write touching the aligned byte containing a cached address
// invalidates that region's cache entries.
func (c *CPU) noteWrite(addr uint32) {
	region, _ := c.mem.MapAddr(addr)
	c.cache.invalidateRegion(region)
}

// stepARM fetches, decodes and executes one ARM instruction at pc,
// returning its cycle cost, per spec.md §4.4/§4.7.
func (c *CPU) stepARM(pc uint32) uint64 {
	word := c.fetchWord(pc, false)

	cond := Condition((word >> 28) & 0xF)
	if !evalCondition(cond, c.regs.CPSR()) {
		c.regs.SetPC(pc + 4)
		return 1
	}

	key := ((word >> 16) & 0xFF0) | ((word >> 4) & 0xF)
	handler := c.armTable[key]
	if handler == nil {
		return c.enterUndefined(pc)
	}

	// default sequential advance; handlers that branch call FlushTo, which
	// overwrites this.
	c.regs.SetPC(pc + 4)
	return handler(c, word)
}

// stepThumb fetches, decodes and executes one Thumb instruction at pc,
// returning its cycle cost, per spec.md §4.5/§4.7.
func (c *CPU) stepThumb(pc uint32) uint64 {
	word := c.fetchWord(pc, true)

	handler := c.thumbTable[word>>8]
	if handler == nil {
		return c.enterUndefined(pc)
	}

	c.regs.SetPC(pc + 2)
	return handler(c, word)
}

// enterUndefined takes the undefined-instruction exception, per spec.md
// §4.4/§7: save the next instruction's address (pc+4 in ARM state, pc+2 in
// Thumb state) to R14_und, CPSR to SPSR_und, switch to Undefined
// mode, disable IRQ, clear T, jump to 0x00000004.
func (c *CPU) enterUndefined(pc uint32) uint64 {
	logger.Logf("CPU", "undefined instruction at %#08x", pc)
	returnAddr := pc + c.instrSize()
	spsr := c.regs.CPSR()
	c.regs.SwitchMode(ModeUndefined)
	c.regs.SetSPSR(spsr, 0xFFFFFFFF)
	c.regs.SetR(RegLR, returnAddr)
	c.regs.SetFlag(FlagI, true)
	c.regs.SetFlag(FlagT, false)
	c.regs.FlushTo(vectorUndefined)
	return 3
}

// enterIRQ performs IRQ entry, per spec.md §4.7/§4.4: save CPSR to
// SPSR_irq, bank LR_irq to the return address, switch to IRQ mode, disable
// further IRQs, clear T, jump to 0x18.
func (c *CPU) enterIRQ() uint64 {
	returnAddr := c.regs.PC()
	if !c.regs.thumb() {
		returnAddr += 4
	}
	spsr := c.regs.CPSR()
	c.regs.SwitchMode(ModeIRQ)
	c.regs.SetSPSR(spsr, 0xFFFFFFFF)
	c.regs.SetR(RegLR, returnAddr)
	c.regs.SetFlag(FlagI, true)
	c.regs.SetFlag(FlagT, false)
	c.regs.FlushTo(vectorIRQ)
	c.irq.Ack()
	return 2
}

// exceptionReturnFromSPSR restores CPSR from the current mode's SPSR and
// switches mode accordingly, the mechanism every exception-return path
// (MOVS PC,LR / LDM with S-bit and R15 in the list / RFE-shaped sequences)
// uses, per spec.md §4.4.
func (c *CPU) exceptionReturnFromSPSR() {
	c.regs.RestoreCPSR(c.regs.SPSR())
}
