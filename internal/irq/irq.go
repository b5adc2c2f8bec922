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

// Package irq implements the minimal interrupt-controller contract the CPU
// observes at instruction boundaries: a level-sensitive request register
// gated by a per-source enable mask, plus a master enable. It models the
// entry/exit interface only -- the interrupt sources themselves (timers,
// DMA, keypad, serial) are explicit Non-goals and are never wired up here;
// callers (internal/system, tests) raise request bits directly.
package irq

import "sync"

// Source numbers a GBA interrupt line, matching the bit position it
// occupies in IE/IF (IO registers 0x04000200/0x04000202), for callers that
// want to mirror real register semantics without this package depending on
// internal/memmap.
type Source uint16

const (
	SourceVBlank Source = 1 << iota
	SourceHBlank
	SourceVCount
	SourceTimer0
	SourceTimer1
	SourceTimer2
	SourceTimer3
	SourceSerial
	SourceDMA0
	SourceDMA1
	SourceDMA2
	SourceDMA3
	SourceKeypad
	SourceGamepak
)

// Controller is a level-sensitive interrupt controller: an interrupt is
// pending as long as any enabled request bit is set, and stays pending
// until Clear removes the request bit; Ack does not clear anything, since
// no source model exists here to clear bits on its own.
type Controller struct {
	mu          sync.Mutex
	masterEnable bool
	enable      uint16
	request     uint16
}

// New returns a Controller with interrupts disabled and nothing pending.
func New() *Controller {
	return &Controller{}
}

// SetMasterEnable mirrors IME (IO register 0x04000208, bit 0).
func (c *Controller) SetMasterEnable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.masterEnable = v
}

// SetEnable mirrors a write to IE (0x04000200).
func (c *Controller) SetEnable(mask uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enable = mask
}

// Raise sets one or more request bits, mirroring a source asserting its IF
// bit. Safe to call from any goroutine; internal/gpu's hblank/vblank timing
// calls it between CPU steps, on the same goroutine as the step loop.
func (c *Controller) Raise(sources Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request |= uint16(sources)
}

// Clear clears request bits directly, mirroring a write-1-to-clear to IF.
func (c *Controller) Clear(sources Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request &^= uint16(sources)
}

// PendingAndUnmasked reports whether the CPU's IRQ line is currently
// asserted: master enable set, and at least one enabled source pending.
// Implements cpu.InterruptController.
func (c *Controller) PendingAndUnmasked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.masterEnable && c.request&c.enable != 0
}

// Ack is called by the CPU on IRQ entry. This controller has no interrupt
// sources of its own to acknowledge, so it is a deliberate no-op: a real
// source model (timers, DMA, ...) would clear its own IF bit on acceptance,
// but that model is out of scope here (spec.md §1's Non-goals) and request
// bits are only ever cleared by an explicit Clear call.
func (c *Controller) Ack() {}
