package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftLSL(t *testing.T) {
	v, c := shift(0x80000001, 1, ShiftLSL, false, false)
	assert.Equal(t, uint32(0x00000002), v)
	assert.True(t, c, "bit shifted out of bit31 becomes carry")

	v, c = shift(0x1, 0, ShiftLSL, true, false)
	assert.Equal(t, uint32(0x1), v)
	assert.True(t, c, "LSL #0 is a no-op, carry-in passes through")

	v, c = shift(0x1, 32, ShiftLSL, false, true)
	assert.Equal(t, uint32(0), v)
	assert.True(t, c, "LSL by register amount 32 yields 0, carry = bit0")
}

func TestShiftLSRImmediateZeroMeans32(t *testing.T) {
	v, c := shift(0x80000000, 0, ShiftLSR, false, false)
	assert.Equal(t, uint32(0), v)
	assert.True(t, c)
}

func TestShiftLSRRegisterZeroIsNoop(t *testing.T) {
	v, c := shift(0x80000000, 0, ShiftLSR, true, true)
	assert.Equal(t, uint32(0x80000000), v)
	assert.True(t, c)
}

func TestShiftASRSignExtends(t *testing.T) {
	v, c := shift(0x80000000, 4, ShiftASR, false, false)
	assert.Equal(t, uint32(0xF8000000), v)
	assert.False(t, c)
}

func TestShiftASRLargeAmountNegative(t *testing.T) {
	v, c := shift(0x80000000, 40, ShiftASR, false, true)
	assert.Equal(t, uint32(0xFFFFFFFF), v)
	assert.True(t, c)
}

func TestShiftRORRRX(t *testing.T) {
	v, c := shift(0x1, 0, ShiftROR, true, false)
	assert.Equal(t, uint32(0x80000000), v, "RRX rotates carry-in into bit31")
	assert.True(t, c, "bit0 of the original value becomes carry-out")
}

func TestShiftRORByAmount(t *testing.T) {
	v, c := shift(0x1, 4, ShiftROR, false, false)
	assert.Equal(t, uint32(0x10000000), v)
	assert.False(t, c)
}

func TestRotateImmediate(t *testing.T) {
	v, c := rotateImmediate(0xFF, 4, false)
	assert.Equal(t, uint32(0xFF000000), v)
	assert.True(t, c)

	v, c = rotateImmediate(0xFF, 0, true)
	assert.Equal(t, uint32(0xFF), v)
	assert.True(t, c, "rot==0 passes carry-in through unchanged")
}
