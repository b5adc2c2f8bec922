package memmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := New()
	m.Write32(baseWRAM+4, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), m.Read32(baseWRAM+4))
	assert.Equal(t, uint16(0xBEEF), m.Read16(baseWRAM+4))
	assert.Equal(t, uint8(0xEF), m.Read8(baseWRAM+4))
}

func TestWRAMMirroring(t *testing.T) {
	m := New()
	m.Write32(baseWRAM, 0x11223344)
	assert.Equal(t, uint32(0x11223344), m.Read32(baseWRAM+wramSize))
}

func TestVRAMPhysicalMirroring(t *testing.T) {
	m := New()
	// the physical 96 KiB region; writing near its end should be visible
	// mirrored into the upper 32 KiB of the 128 KiB window.
	m.Write32(baseVRAM+vramPhys-4, 0xCAFEBABE)
	assert.Equal(t, uint32(0xCAFEBABE), m.Read32(baseVRAM+vramWindow-4))
}

func TestUnalignedReadRotation(t *testing.T) {
	m := New()
	m.Write32(baseWRAM, 0x44332211)
	// reading at +1 should rotate the aligned word right by 8.
	got := m.Read32(baseWRAM + 1)
	want := rotateRight32(0x44332211, 8)
	assert.Equal(t, want, got)
}

func TestReadOnlyROMWritesAreDropped(t *testing.T) {
	m := New()
	m.LoadROM([]byte{1, 2, 3, 4})
	m.Write8(baseROM0, 0xFF)
	assert.Equal(t, uint8(1), m.Read8(baseROM0))
}

func TestUnmappedReadsReturnAllOnes(t *testing.T) {
	m := New()
	assert.Equal(t, uint8(0xFF), m.Read8(0x0FFFFFFF))
	assert.Equal(t, uint32(0xFFFFFFFF), m.Read32(0x0FFFFFFF))
}

func TestFlatMapForTests(t *testing.T) {
	m := NewFlat(1024)
	m.Write32(0, 0x12345678)
	require.Equal(t, uint32(0x12345678), m.Read32(0))

	region, off := m.MapAddr(0)
	assert.Equal(t, RegionWRAM, region)
	assert.Equal(t, uint32(0), off)

	region, _ = m.MapAddr(2048)
	assert.Equal(t, RegionNone, region)
}

func TestMapAddrROMMirrorsAcrossWindows(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0xAB})
	assert.Equal(t, uint8(0xAB), m.Read8(baseROM1))
	assert.Equal(t, uint8(0xAB), m.Read8(baseROM2))
}
