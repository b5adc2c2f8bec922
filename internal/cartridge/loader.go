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

// Package cartridge does the one mechanical thing spec.md's Non-goals leave
// behind after excluding "BIOS image parsing, ROM loading, save/backup
// emulation" as features (§1): getting bytes off disk and into the BIOS/ROM
// regions so the core has something to execute. No header parsing, no
// mapper detection, no save state.
package cartridge

import (
	"os"

	"github.com/pkg/errors"
)

// Loader reads flat binary images from disk. It and internal/prefs are the
// two boundaries in this repository that return a wrapped error, per
// SPEC_FULL.md's ambient stack section.
type Loader struct{}

// NewLoader returns a ready-to-use Loader; it holds no state.
func NewLoader() Loader {
	return Loader{}
}

// LoadBIOS reads a BIOS image from path.
func (Loader) LoadBIOS(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cartridge: reading BIOS image %s", path)
	}
	return data, nil
}

// LoadROM reads a cartridge ROM image from path.
func (Loader) LoadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cartridge: reading ROM image %s", path)
	}
	return data, nil
}
