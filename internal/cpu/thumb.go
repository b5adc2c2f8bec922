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

// thumbHandler executes one decoded Thumb instruction and returns its cycle
// cost, per spec.md §4.5.
type thumbHandler func(c *CPU, word uint32) uint64

// buildThumbTable fills the 256-entry Thumb dispatch table, keyed on the
// top 8 bits of the 16-bit instruction, per spec.md §4.5: all 19 documented
// formats are distinguishable by their top bits alone, with no bit-4-style
// secondary discriminator the way ARM needs one.
func buildThumbTable(t *[256]thumbHandler) {
	for b := 0; b < 256; b++ {
		t[b] = classifyThumb(uint8(b))
	}
}

func classifyThumb(b uint8) thumbHandler {
	switch {
	case b <= 0x17:
		return thumbMoveShifted
	case b >= 0x18 && b <= 0x1F:
		return thumbAddSubtract
	case b >= 0x20 && b <= 0x3F:
		return thumbImmediateOp
	case b >= 0x40 && b <= 0x43:
		return thumbALU
	case b >= 0x44 && b <= 0x47:
		return thumbHiRegisterOp
	case b >= 0x48 && b <= 0x4F:
		return thumbPCRelativeLoad
	case b >= 0x50 && b <= 0x5F:
		if b&0x2 == 0 {
			return thumbLoadStoreRegOffset
		}
		return thumbLoadStoreSignExtended
	case b >= 0x60 && b <= 0x7F:
		return thumbLoadStoreImmediate
	case b >= 0x80 && b <= 0x8F:
		return thumbLoadStoreHalfword
	case b >= 0x90 && b <= 0x9F:
		return thumbSPRelativeLoadStore
	case b >= 0xA0 && b <= 0xAF:
		return thumbLoadAddress
	case b == 0xB0:
		return thumbAddOffsetToSP
	case b == 0xB4, b == 0xB5, b == 0xBC, b == 0xBD:
		return thumbPushPop
	case b >= 0xC0 && b <= 0xCF:
		return thumbMultipleLoadStore
	case b == 0xDF:
		return thumbSoftwareInterrupt
	case b >= 0xD0 && b <= 0xDE:
		return thumbConditionalBranch
	case b >= 0xE0 && b <= 0xE7:
		return thumbUnconditionalBranch
	case b >= 0xF0 && b <= 0xFF:
		return thumbLongBranchWithLink
	}
	return nil
}
