// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBMPNV5SignOnOnly(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(128)
	bmpOff := 0
	b.put(bmpOff, 0xFF, 0x7F, 'N', 'V')
	b.put(bmpOff+5, 5, 2) // major, minor
	b.putU32(bmpOff+10, 0x05020100)
	b.putU16(bmpOff+30, 64)
	b.putStr(64, "GeForce card BIOS")

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	decodeBMP(r, uint32(bmpOff), ArchNV5, &p)

	assert.Empty(p.Diagnostics)
	assert.EqualValues(5, p.Version.BMPMajor)
	assert.EqualValues(2, p.Version.BMPMinor)
	assert.Equal("05.02.01.00", p.Version.VersionString)
	assert.Equal("GeForce card BIOS", p.SignOn)
	assert.Empty(p.PerfTable)
	assert.Empty(p.VoltTable)
}

func TestDecodeBMPNV3XReadsVoltAndPerf(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(256)
	bmpOff := 0
	b.put(bmpOff, 0xFF, 0x7F, 'N', 'V')
	b.put(bmpOff+5, 5, 10)
	b.putU32(bmpOff+10, 0x05020100)
	b.putU16(bmpOff+30, 64)
	b.putStr(64, "GeForce FX BIOS")

	voltOff := 100
	b.putU16(bmpOff+0x98, uint16(voltOff))
	b.put(voltOff, 0x01 /* selector */, 5 /* start */, 1 /* num_entries */, 2 /* entry_size */)
	b.put(voltOff+4, 0x3F) // mask at start-1
	b.put(voltOff+5, 130, 0x04)

	perfOff := 160
	b.putU16(bmpOff+0x94, uint16(perfOff))
	b.put(perfOff, 3 /* start */, 0, 1 /* num_entries */, 64 /* size */)
	row := perfOff + 4
	b.putU32(row+0, 50000) // nvclk raw /100
	b.putU32(row+4, 20000) // memclk raw /50
	b.put(row+54, 80)      // fanspeed
	b.put(row+55, 120)     // voltage raw /100

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	decodeBMP(r, uint32(bmpOff), ArchNV3X, &p)

	assert.Empty(p.Diagnostics)
	assert.Equal([]VoltageLevel{{Voltage: 1.30, VID: 0x04}}, p.VoltTable)
	assert.EqualValues(0x3F, p.VoltMask)

	assert.Len(p.PerfTable, 1)
	assert.Equal(PerformanceLevel{NvClk: 500, MemClk: 400, FanSpeed: 80, Voltage: 1.20, Active: true}, p.PerfTable[0])
}
