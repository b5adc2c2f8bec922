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

// Package gpu implements scanline timing (VCOUNT/DISPSTAT-equivalent
// hblank/vblank tracking) and a deliberately minimal renderer: one flat
// color strip per scanline, with no tile/sprite/palette composition. Its
// job, per SPEC_FULL.md's domain stack, is to give the CPU's step loop
// something real to be driven against -- pixel-accurate rendering is an
// explicit Non-goal.
package gpu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/harrowm/gba-sub000/internal/irq"
)

const (
	// ScreenWidth and ScreenHeight match the GBA's visible framebuffer.
	ScreenWidth  = 240
	ScreenHeight = 160

	totalScanlines  = 228
	cyclesPerLine   = 1232
	hblankStartCycl = 960
)

// Timing tracks the current scanline and dot position, advanced by cycles
// consumed from cpu.Step, and raises VBlank/HBlank/VCount-match interrupts
// through an attached irq.Controller.
type Timing struct {
	irqc *irq.Controller

	lineCycle uint64
	line      int

	hblank bool
	vblank bool

	vcountTarget int

	strip [ScreenHeight]color.RGBA
}

// NewTiming constructs scanline timing wired to irqc (nil is accepted for
// headless use, e.g. instruction-level tests that don't care about video
// timing at all).
func NewTiming(irqc *irq.Controller) *Timing {
	return &Timing{irqc: irqc}
}

// SetVCountTarget mirrors writing DISPSTAT's VCOUNT-match field.
func (t *Timing) SetVCountTarget(line int) {
	t.vcountTarget = line
}

// VCount returns the current scanline (0..227), mirroring the VCOUNT
// register.
func (t *Timing) VCount() int {
	return t.line
}

// InVBlank and InHBlank mirror DISPSTAT bits 0 and 1.
func (t *Timing) InVBlank() bool { return t.vblank }
func (t *Timing) InHBlank() bool { return t.hblank }

// Advance steps scanline timing by the given number of CPU cycles,
// crossing hblank/vblank/line boundaries and raising the corresponding
// interrupt as each is entered, per spec.md §2's "interrupt entry, not
// interrupt-source modeling" boundary -- this is the one source this core
// does model, since it is also the thing driving the CPU's own step budget.
func (t *Timing) Advance(cycles uint64) {
	for cycles > 0 {
		remaining := uint64(cyclesPerLine) - t.lineCycle
		step := cycles
		if step > remaining {
			step = remaining
		}
		t.lineCycle += step
		cycles -= step

		wasHBlank := t.hblank
		t.hblank = t.lineCycle >= hblankStartCycl
		if t.hblank && !wasHBlank {
			t.raise(irq.SourceHBlank)
		}

		if t.lineCycle >= cyclesPerLine {
			t.lineCycle = 0
			t.hblank = false
			t.line++
			if t.line >= totalScanlines {
				t.line = 0
			}

			wasVBlank := t.vblank
			t.vblank = t.line >= ScreenHeight
			if t.vblank && !wasVBlank {
				t.raise(irq.SourceVBlank)
			}
			if t.line == t.vcountTarget {
				t.raise(irq.SourceVCount)
			}
		}
	}
}

func (t *Timing) raise(s irq.Source) {
	if t.irqc != nil {
		t.irqc.Raise(s)
	}
}

// SetScanlineColor sets the flat color painted across one visible scanline.
// internal/system calls this from game logic (or a test harness) in place
// of real tile/sprite composition.
func (t *Timing) SetScanlineColor(line int, c color.RGBA) {
	if line >= 0 && line < ScreenHeight {
		t.strip[line] = c
	}
}

// Draw paints the current per-scanline color strip onto screen, one
// horizontal band per scanline. This is the entire "renderer": no tiles,
// no sprites, no palette lookups, matching spec.md §1's Non-goals.
func (t *Timing) Draw(screen *ebiten.Image) {
	for y := 0; y < ScreenHeight; y++ {
		c := t.strip[y]
		for x := 0; x < ScreenWidth; x++ {
			screen.Set(x, y, c)
		}
	}
}
