// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerfLayoutFor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(perfLayout{fan: 4, volt: 5, nvclk: 8, shader: 10, memclk: 12}, perfLayoutFor(0x25))
	assert.Equal(perfLayout{fan: 6, volt: 7, nvclk: 8, shader: 10, memclk: 12}, perfLayoutFor(0x30))
	assert.Equal(perfLayout{fan: 6, volt: 7, nvclk: 8, shader: 10, memclk: 12}, perfLayoutFor(0x35))
	assert.Equal(perfLayout{shader: 0, fan: 4, volt: 5, nvclk: 6, delta: 7, memclk: 11, lock: 13}, perfLayoutFor(0x10))
}

func TestPerfCapsFor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(CapDeltaClk, perfCapsFor(ArchNV47))
	assert.Equal(CapDeltaClk, perfCapsFor(ArchNV49))
	assert.Equal(CapShaderClk, perfCapsFor(ArchNV5X))
	assert.Equal(CapLock, perfCapsFor(ArchNV4X))
	assert.Equal(PerfCaps(0), perfCapsFor(ArchNV5))
}

// TestParsePerfTableTwoLevels exercises the default (pre-0x25) layout with
// two active performance levels followed by the 0x04104B4D end marker.
func TestParsePerfTableTwoLevels(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(48)
	b.put(0, 0x10, 6, 2, 0, 16, 1) // version, start, num_active, offset_inner, entry_size, num_entries

	// Row 0 at offset 6.
	b.put(6, 0x23)
	b.put(10, 50)     // fan
	b.put(11, 110)    // volt
	b.putU16(12, 500) // nvclk
	b.putU16(17, 800) // memclk

	// Row 1 at offset 22.
	b.put(22, 0x24)
	b.put(26, 60)     // fan
	b.put(27, 120)    // volt
	b.putU16(28, 600) // nvclk
	b.putU16(33, 900) // memclk

	// End marker at offset 38.
	b.putU32(38, perfEndMarker)

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	levels, caps, err := parsePerfTable(r, 0, ArchNV47)
	assert.NoError(err)
	assert.Equal(CapDeltaClk, caps)
	assert.Len(levels, 2)

	assert.Equal(PerformanceLevel{NvClk: 500, MemClk: 800, Voltage: 1.10, FanSpeed: 50, Active: true}, levels[0])
	assert.Equal(PerformanceLevel{NvClk: 600, MemClk: 900, Voltage: 1.20, FanSpeed: 60, Active: true}, levels[1])
}

func TestParsePerfTableAlignmentError(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(24)
	b.put(0, 0x10, 6, 1, 0, 16, 1)
	b.put(6, 0x55) // wrong high nibble, not 0x2_, and not the end marker

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	_, _, err := parsePerfTable(r, 0, ArchNV4X)
	assert.Error(err)
}
