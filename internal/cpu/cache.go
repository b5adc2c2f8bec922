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

import "github.com/harrowm/gba-sub000/internal/memmap"

// cacheEntry is an instruction cache entry: the fetched instruction word,
// the address and instruction set it was fetched under, and the region and
// region epoch that decide its validity. It does not hold a decoded handler,
// pre-extracted operand fields or a cycle cost: on a hit the step loop still
// indexes the 4096-entry or 256-entry dispatch table and the handler
// re-derives its fields and cycle cost from the word. A hit saves only the
// memory read; the region lookup and epoch check run on every fetch.
type cacheEntry struct {
	valid     bool
	addr      uint32
	thumb     bool
	word      uint32
	region    memmap.RegionID
	regionGen uint32
}

// cacheSize is the number of direct-mapped slots in the decode cache,
// per spec.md §9 ("the canonical design above uses 4096; implementers
// should not copy the smaller size" -- that guidance is about the ARM
// dispatch table, but the same entry count is a reasonable cache size).
const cacheSize = 4096

// decodeCache is a direct-mapped cache keyed on (aligned PC, instruction
// set), per spec.md §4.8. Invalidation is by per-region epoch counter
// (spec.md §9's epoch-counter approach): every write bumps the epoch of the
// region it touches, and a cache entry is considered stale if its stored
// epoch doesn't match the region's current epoch. This was chosen over
// clearing entries on every write because it keeps writes O(1) regardless
// of how many cache entries might alias the written address; see
// DESIGN.md.
type decodeCache struct {
	entries [cacheSize]cacheEntry
	epoch   [10]uint32 // indexed by memmap.RegionID

	hits         uint64
	misses       uint64
	invalidation uint64
}

func newDecodeCache() *decodeCache {
	return &decodeCache{}
}

func (d *decodeCache) slot(addr uint32) int {
	return int((addr >> 1) % cacheSize)
}

// lookup returns the cached word for (addr, thumb) if present and still
// valid, with a hit/miss counter bump either way.
func (d *decodeCache) lookup(addr uint32, thumb bool, region memmap.RegionID, regionGen uint32) (uint32, bool) {
	e := &d.entries[d.slot(addr)]
	if e.valid && e.addr == addr && e.thumb == thumb && e.region == region && e.regionGen == regionGen {
		d.hits++
		return e.word, true
	}
	d.misses++
	return 0, false
}

// insert stores a freshly decoded word for (addr, thumb).
func (d *decodeCache) insert(addr uint32, thumb bool, word uint32, region memmap.RegionID, regionGen uint32) {
	d.entries[d.slot(addr)] = cacheEntry{
		valid:     true,
		addr:      addr,
		thumb:     thumb,
		word:      word,
		region:    region,
		regionGen: regionGen,
	}
}

// invalidateRegion bumps the epoch of the given region, lazily stranding
// every cache entry that pointed into it; it does not walk the cache.
func (d *decodeCache) invalidateRegion(region memmap.RegionID) {
	if region == memmap.RegionNone {
		return
	}
	d.epoch[region]++
	d.invalidation++
}

// invalidateAll bumps every region's epoch. It is called by the handlers
// that branch (B/BL, BX, SWI, Thumb branches, LDR/LDM/POP into PC, ARM data
// processing and Thumb hi-register ADD/MOV with Rd=PC), by MSR writes to
// the CPSR, and by CPU.SetCPSR and CPU.Reset, which
// covers the ARM/Thumb switches made by BX and MSR. Undefined-instruction and
// IRQ entry do not call it. A mode switch doesn't itself make cached words
// wrong (the cache already keys on the thumb bit).
func (d *decodeCache) invalidateAll() {
	for i := range d.epoch {
		d.epoch[i]++
	}
	d.invalidation++
}

// regionEpoch returns the current epoch for region, used as part of a cache
// entry's validity key.
func (d *decodeCache) regionEpoch(region memmap.RegionID) uint32 {
	if region == memmap.RegionNone {
		return 0
	}
	return d.epoch[region]
}

// Stats returns (hits, misses, invalidations), per spec.md §4.8/§6.
func (d *decodeCache) Stats() (hits, misses, invalidations uint64) {
	return d.hits, d.misses, d.invalidation
}
