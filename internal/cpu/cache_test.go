package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrowm/gba-sub000/internal/memmap"
)

func TestCacheMissThenHit(t *testing.T) {
	d := newDecodeCache()
	_, ok := d.lookup(0x1000, false, memmap.RegionWRAM, 0)
	assert.False(t, ok)

	d.insert(0x1000, false, 0xCAFEBABE, memmap.RegionWRAM, 0)
	v, ok := d.lookup(0x1000, false, memmap.RegionWRAM, 0)
	assert.True(t, ok)
	assert.Equal(t, uint32(0xCAFEBABE), v)

	hits, misses, _ := d.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCacheInvalidateRegionStrandsEntry(t *testing.T) {
	d := newDecodeCache()
	gen := d.regionEpoch(memmap.RegionWRAM)
	d.insert(0x1000, false, 0x11111111, memmap.RegionWRAM, gen)

	d.invalidateRegion(memmap.RegionWRAM)

	newGen := d.regionEpoch(memmap.RegionWRAM)
	_, ok := d.lookup(0x1000, false, memmap.RegionWRAM, newGen)
	assert.False(t, ok, "stale regionGen should miss after invalidation")
}

func TestCacheDistinguishesThumbVsARM(t *testing.T) {
	d := newDecodeCache()
	d.insert(0x1000, false, 0xAAAAAAAA, memmap.RegionWRAM, 0)
	_, ok := d.lookup(0x1000, true, memmap.RegionWRAM, 0)
	assert.False(t, ok, "ARM and Thumb fetches at the same address must not alias")
}

func TestCacheInvalidateAllBumpsEveryRegion(t *testing.T) {
	d := newDecodeCache()
	before := d.regionEpoch(memmap.RegionIWRAM)
	d.invalidateAll()
	after := d.regionEpoch(memmap.RegionIWRAM)
	assert.Greater(t, after, before)
}
