package cpu

// Test-only ARM/Thumb instruction encoders, built directly from the bit
// layouts spec.md §4.4/§4.5 describe, so test cases read as field values
// rather than opaque hex constants.

const condAL = uint32(CondAL)

// armDPImm encodes a data-processing instruction with an immediate
// operand2: imm8 rotated right by 2*rot.
func armDPImm(opcode uint32, s bool, rn, rd int, rot, imm8 uint32) uint32 {
	word := condAL<<28 | 1<<25 | opcode<<21 | uint32(rn)<<16 | uint32(rd)<<12 | rot<<8 | imm8
	if s {
		word |= 1 << 20
	}
	return word
}

// armDPReg encodes a data-processing instruction with a register operand2
// shifted by an immediate amount.
func armDPReg(opcode uint32, s bool, rn, rd int, rm int, shiftAmt uint32, typ ShiftType) uint32 {
	word := condAL<<28 | opcode<<21 | uint32(rn)<<16 | uint32(rd)<<12 | shiftAmt<<7 | uint32(typ)<<5 | uint32(rm)
	if s {
		word |= 1 << 20
	}
	return word
}

// armSingleTransferImm encodes LDR/STR with a 12-bit immediate offset.
func armSingleTransferImm(load, pre, up, byteWide, writeback bool, rn, rd int, offset uint32) uint32 {
	word := condAL<<28 | 1<<26 | uint32(rn)<<16 | uint32(rd)<<12 | (offset & 0xFFF)
	if load {
		word |= 1 << 20
	}
	if pre {
		word |= 1 << 24
	}
	if up {
		word |= 1 << 23
	}
	if byteWide {
		word |= 1 << 22
	}
	if writeback {
		word |= 1 << 21
	}
	return word
}

// armBlockTransfer encodes LDM/STM.
func armBlockTransfer(load, pre, up, sBit, writeback bool, rn int, regList uint32) uint32 {
	word := condAL<<28 | 1<<27 | uint32(rn)<<16 | (regList & 0xFFFF)
	if load {
		word |= 1 << 20
	}
	if pre {
		word |= 1 << 24
	}
	if up {
		word |= 1 << 23
	}
	if sBit {
		word |= 1 << 22
	}
	if writeback {
		word |= 1 << 21
	}
	return word
}

// armBranchWord encodes B/BL with a signed word offset (in instructions,
// not bytes).
func armBranchWord(link bool, offsetWords int32) uint32 {
	word := condAL<<28 | 0b101<<25 | (uint32(offsetWords) & 0xFFFFFF)
	if link {
		word |= 1 << 24
	}
	return word
}

// armMulWord encodes MUL/MLA.
func armMulWord(accumulate, s bool, rd, rn, rs, rm int) uint32 {
	word := condAL<<28 | 0b1001<<4 | uint32(rd)<<16 | uint32(rn)<<12 | uint32(rs)<<8 | uint32(rm)
	if accumulate {
		word |= 1 << 21
	}
	if s {
		word |= 1 << 20
	}
	return word
}

// armBXWord encodes BX Rm.
func armBXWord(rm int) uint32 {
	return condAL<<28 | 0x12<<20 | 0xFFF<<8 | 0b0001<<4 | uint32(rm)
}

// thumbMovImm encodes format 3 MOV Rd, #imm8.
func thumbMovImm(rd int, imm uint32) uint16 {
	return uint16(0b001<<13 | 0b00<<11 | uint32(rd)<<8 | imm)
}

// thumbALUWord encodes format 4.
func thumbALUWord(op uint32, rs, rd int) uint16 {
	return uint16(0b010000<<10 | op<<6 | uint32(rs)<<3 | uint32(rd))
}

// thumbMoveShiftedWord encodes format 1.
func thumbMoveShiftedWord(op uint32, offset5 uint32, rs, rd int) uint16 {
	return uint16(op<<11 | offset5<<6 | uint32(rs)<<3 | uint32(rd))
}

// thumbBLHigh / thumbBLLow encode format 19's two halves.
func thumbBLHigh(offsetHigh11 uint32) uint16 {
	return uint16(0b1111<<12 | offsetHigh11)
}

func thumbBLLow(offsetLow11 uint32) uint16 {
	return uint16(0b11111<<11 | offsetLow11)
}
