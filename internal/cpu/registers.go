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

// Mode is one of the seven ARM7TDMI processor modes, encoded the same way
// CPSR bits 4..0 encode them, per spec.md §3.
type Mode uint32

const (
	ModeUser       Mode = 0x10
	ModeFIQ        Mode = 0x11
	ModeIRQ        Mode = 0x12
	ModeSupervisor Mode = 0x13
	ModeAbort      Mode = 0x17
	ModeUndefined  Mode = 0x1B
	ModeSystem     Mode = 0x1F
)

func (m Mode) valid() bool {
	switch m {
	case ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem:
		return true
	}
	return false
}

// CPSR bit positions, per spec.md §3.
const (
	flagN uint32 = 1 << 31
	flagZ uint32 = 1 << 30
	flagC uint32 = 1 << 29
	flagV uint32 = 1 << 28
	flagI uint32 = 1 << 7
	flagF uint32 = 1 << 6
	flagT uint32 = 1 << 5
)

const modeMaskBits uint32 = 0x1F

// FlagBit names one of the CPSR condition/control bits exposed on the
// public CPU API (spec.md §6).
type FlagBit int

const (
	FlagN FlagBit = iota
	FlagZ
	FlagC
	FlagV
	FlagI
	FlagF
	FlagT
)

// register index constants for readability at call sites.
const (
	RegSP = 13
	RegLR = 14
	RegPC = 15
)

// bankedSet holds the R13/R14 pair (and for FIQ, R8-R12) that are swapped in
// when the processor enters a given privileged mode, plus that mode's SPSR.
type bankedSet struct {
	r8, r9, r10, r11, r12 uint32 // only meaningful for the FIQ bank
	sp, lr                uint32
	spsr                  uint32
}

// Registers is the ARM7TDMI register file: 16 general registers with the
// program counter at R15, a CPSR, and banked copies of R13/R14 (R8..R12 for
// FIQ) and SPSR per privileged mode, per spec.md §3/§4.2.
type Registers struct {
	// r holds R0..R14 for the *currently active* bank. R15 is tracked
	// separately in pc since its semantics (pipeline offset on read,
	// flush-on-write) are never shared with any banked copy.
	r  [15]uint32
	pc uint32

	cpsr uint32

	usr bankedSet // user/system bank (R13_usr/R14_usr; also the FIQ bank's "non-banked" home when not in FIQ)
	fiq bankedSet
	irq bankedSet
	svc bankedSet
	abt bankedSet
	und bankedSet
}

// NewRegisters returns a register file reset the way the ARM7TDMI resets:
// Supervisor mode, IRQ and FIQ disabled, ARM state, all GPRs zero.
func NewRegisters() *Registers {
	r := &Registers{}
	r.cpsr = uint32(ModeSupervisor) | flagI | flagF
	return r
}

func (r *Registers) mode() Mode {
	return Mode(r.cpsr & modeMaskBits)
}

func (r *Registers) bankFor(m Mode) *bankedSet {
	switch m {
	case ModeFIQ:
		return &r.fiq
	case ModeIRQ:
		return &r.irq
	case ModeSupervisor:
		return &r.svc
	case ModeAbort:
		return &r.abt
	case ModeUndefined:
		return &r.und
	default:
		return &r.usr
	}
}

// thumb reports whether the CPSR's T bit is set.
func (r *Registers) thumb() bool {
	return r.cpsr&flagT != 0
}

// R reads general-purpose register i (0..15), honoring the current mode's
// banking and R15's pipeline-offset read semantics (spec.md §3, §4.2): R15
// reads as the address of the currently executing instruction plus 8 in ARM
// state or plus 4 in Thumb state. PC is kept, internally, as the address one
// instruction past the one currently executing (see Step's fetch/advance
// order in cpu.go), so the extra offset added here is exactly one more
// instruction width.
func (r *Registers) R(i int) uint32 {
	if i == RegPC {
		if r.thumb() {
			return r.pc + 2
		}
		return r.pc + 4
	}
	return r.r[i]
}

// PC returns the raw program counter (address of the next fetch), without
// the operand-read pipeline offset R(15) applies. Used by the step loop and
// by handlers computing a return address for LR; operand reads of R15 go
// through R.
func (r *Registers) PC() uint32 {
	return r.pc
}

// SetPC sets the raw program counter directly; used by the step loop after
// ordinary sequential advance. Branch/BX/exception handlers call
// FlushTo instead, since those additionally apply the instruction set's
// alignment mask.
func (r *Registers) SetPC(addr uint32) {
	r.pc = addr
}

// SetR writes general-purpose register i (0..15), honoring banking. Writing
// R15 does not itself perform alignment masking or pipeline-flush
// bookkeeping -- callers that mean to branch must use FlushTo, which also
// applies the correct alignment mask for the current instruction set.
func (r *Registers) SetR(i int, v uint32) {
	if i == RegPC {
		r.pc = v
		return
	}
	r.r[i] = v
}

// FlushTo performs the register-file side of a pipeline flush caused by an
// instruction writing R15: the new PC is masked to the current instruction
// set's alignment (low 2 bits cleared in ARM state, low bit cleared in
// Thumb state) per spec.md §4.2.
func (r *Registers) FlushTo(addr uint32) {
	if r.thumb() {
		r.pc = addr &^ 1
	} else {
		r.pc = addr &^ 3
	}
}

// CPSR returns the raw CPSR value.
func (r *Registers) CPSR() uint32 {
	return r.cpsr
}

// SetCPSR writes the CPSR, using mask to select which bits are affected
// (used directly by MSR's field mask; exception return goes through
// RestoreCPSR instead). In User mode, bits outside the flag byte
// (N/Z/C/V) are never modified regardless of mask, per spec.md §3's
// invariant and §7's privileged-write rule.
func (r *Registers) SetCPSR(value, mask uint32) {
	if r.mode() == ModeUser {
		mask &= flagN | flagZ | flagC | flagV
	}

	oldMode := r.mode()
	r.cpsr = (r.cpsr &^ mask) | (value & mask)
	newMode := r.mode()

	if newMode != oldMode {
		if !newMode.valid() {
			// an invalid mode value leaves register banking where it was;
			// the CPSR mode bits themselves are still updated above, which
			// matches real hardware's "unpredictable but doesn't crash"
			// behavior for this case.
			return
		}
		r.switchBank(oldMode, newMode)
	}
}

// RestoreCPSR writes the entire CPSR unconditionally, bypassing the
// User-mode write-mask restriction SetCPSR enforces. This models hardware
// SPSR-to-CPSR restoration on exception return (e.g. `MOVS PC, LR`, or an
// LDM with the S bit and R15 in the register list), which is not subject to
// the MSR instruction's User-mode restriction -- that restriction is a
// property of the MSR instruction, not of CPSR writes in general.
func (r *Registers) RestoreCPSR(value uint32) {
	oldMode := r.mode()
	r.cpsr = value
	newMode := r.mode()
	if newMode != oldMode && newMode.valid() {
		r.switchBank(oldMode, newMode)
	}
}

// SPSR returns the Saved Program Status Register of the current mode. User
// and System modes have no SPSR; callers in those modes get 0, per spec.md
// §4.2 ("undefined in User/System").
func (r *Registers) SPSR() uint32 {
	m := r.mode()
	if m == ModeUser || m == ModeSystem {
		return 0
	}
	return r.bankFor(m).spsr
}

// SetSPSR writes the SPSR of the current mode, masked the same way SetCPSR
// is. A no-op in User/System mode.
func (r *Registers) SetSPSR(value, mask uint32) {
	m := r.mode()
	if m == ModeUser || m == ModeSystem {
		return
	}
	b := r.bankFor(m)
	b.spsr = (b.spsr &^ mask) | (value & mask)
}

// RUser reads register i as it would appear in User mode, regardless of the
// currently active mode. Used by LDM/STM's S-bit "transfer user-mode
// registers" form (spec.md §4.4), which must reach the user bank even when
// executing in a privileged mode.
func (r *Registers) RUser(i int) uint32 {
	if i < 8 || i == RegPC {
		return r.R(i)
	}
	if r.mode() == ModeUser || r.mode() == ModeSystem {
		return r.r[i]
	}
	if i <= 12 {
		if r.mode() == ModeFIQ {
			switch i {
			case 8:
				return r.usr.r8
			case 9:
				return r.usr.r9
			case 10:
				return r.usr.r10
			case 11:
				return r.usr.r11
			default:
				return r.usr.r12
			}
		}
		return r.r[i]
	}
	if i == RegSP {
		return r.usr.sp
	}
	return r.usr.lr
}

// SetRUser writes register i as it would appear in User mode, mirroring
// RUser. Used by LDM's S-bit form.
func (r *Registers) SetRUser(i int, v uint32) {
	if i < 8 || i == RegPC {
		r.SetR(i, v)
		return
	}
	if r.mode() == ModeUser || r.mode() == ModeSystem {
		r.r[i] = v
		return
	}
	if i <= 12 {
		if r.mode() == ModeFIQ {
			switch i {
			case 8:
				r.usr.r8 = v
			case 9:
				r.usr.r9 = v
			case 10:
				r.usr.r10 = v
			case 11:
				r.usr.r11 = v
			default:
				r.usr.r12 = v
			}
			return
		}
		r.r[i] = v
		return
	}
	if i == RegSP {
		r.usr.sp = v
		return
	}
	r.usr.lr = v
}

// SwitchMode saves the current mode's banked R13/R14 (and R8..R12 when
// entering or leaving FIQ) and loads the new mode's banked set, per spec.md
// §4.2, and writes newMode into the CPSR mode bits. Only the mode bits
// change; the flag and control bits are left as they are. SetCPSR and
// RestoreCPSR do the same bank swap (through switchBank) when a write
// changes the mode bits; SwitchMode is used by the exception entry paths,
// which switch mode without a masked SetCPSR call.
func (r *Registers) SwitchMode(newMode Mode) {
	oldMode := r.mode()
	r.cpsr = (r.cpsr &^ modeMaskBits) | uint32(newMode)
	if newMode != oldMode {
		r.switchBank(oldMode, newMode)
	}
}

// switchBank performs the actual register shuffle between two (already
// validated, already different) modes.
func (r *Registers) switchBank(oldMode, newMode Mode) {
	// save outgoing R13/R14
	oldBank := r.bankFor(oldMode)
	oldBank.sp = r.r[RegSP]
	oldBank.lr = r.r[RegLR]

	if oldMode == ModeFIQ {
		oldBank.r8, oldBank.r9, oldBank.r10, oldBank.r11, oldBank.r12 =
			r.r[8], r.r[9], r.r[10], r.r[11], r.r[12]
	} else if newMode == ModeFIQ {
		// the live R8..R12 before entering FIQ belong to the shared
		// non-banked set; stash them in usr so leaving FIQ can restore them.
		r.usr.r8, r.usr.r9, r.usr.r10, r.usr.r11, r.usr.r12 =
			r.r[8], r.r[9], r.r[10], r.r[11], r.r[12]
	}

	// load incoming R13/R14
	newBank := r.bankFor(newMode)
	r.r[RegSP] = newBank.sp
	r.r[RegLR] = newBank.lr

	if newMode == ModeFIQ {
		r.r[8], r.r[9], r.r[10], r.r[11], r.r[12] =
			newBank.r8, newBank.r9, newBank.r10, newBank.r11, newBank.r12
	} else if oldMode == ModeFIQ {
		// leaving FIQ: R8..R12 revert to the non-banked (user/system) set
		r.r[8], r.r[9], r.r[10], r.r[11], r.r[12] =
			r.usr.r8, r.usr.r9, r.usr.r10, r.usr.r11, r.usr.r12
	}
}

// GetFlag reports the state of one CPSR flag/control bit.
func (r *Registers) GetFlag(f FlagBit) bool {
	return r.cpsr&bitFor(f) != 0
}

// SetFlag sets or clears one CPSR flag/control bit directly, bypassing the
// User-mode write-mask check SetCPSR applies -- used internally by
// instruction handlers that are always allowed to touch N/Z/C/V, and by
// exception entry, which is always privileged.
func (r *Registers) SetFlag(f FlagBit, v bool) {
	bit := bitFor(f)
	if v {
		r.cpsr |= bit
	} else {
		r.cpsr &^= bit
	}
}

func bitFor(f FlagBit) uint32 {
	switch f {
	case FlagN:
		return flagN
	case FlagZ:
		return flagZ
	case FlagC:
		return flagC
	case FlagV:
		return flagV
	case FlagI:
		return flagI
	case FlagF:
		return flagF
	case FlagT:
		return flagT
	}
	return 0
}

// Snapshot returns a value copy of the register file, suitable for save
// states or the rewind-style facilities the teacher's VCS core exposes.
func (r *Registers) Snapshot() Registers {
	return *r
}
