// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadBitEntry(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(8)
	b.put(0, 'P', 0x00)
	b.putU16(2, 0x0010)
	b.putU16(4, 0x0200)

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	e, err := readBitEntry(r, 0)
	assert.NoError(err)
	assert.Equal(bitEntry{id0: 'P', id1: 0x00, length: 0x0010, offset: 0x0200}, e)
}

func TestDecodeBitBSetsVersionAndBootTime(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(32)
	b.putU32(0, 0x05440321)
	b.put(4, 0x02)
	b.putU16(0x0A, 1500)

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	err := decodeBitB(r, bitEntry{offset: 0}, &p)
	assert.NoError(err)
	assert.Equal("05.44.03.21.02", p.Version.VersionString)
	assert.Equal(uint16(1500), p.Version.BootTextTimeMs)
}

func TestDecodeBitI2SetsIdentity(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(64)
	b.putU32(0, 0x05440321)
	b.put(4, 0x02)
	b.putU16(0x0B, 0xABCD)
	b.putStr(0x0F, "20260730")
	b.put(0x24, 0x02) // HierarchySwitchPort0

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	err := decodeBitI2(r, bitEntry{offset: 0}, &p)
	assert.NoError(err)
	assert.Equal(uint16(0xABCD), p.Identity.BoardID)
	assert.Equal("20260730", p.Version.BuildDate)
	assert.Equal(HierarchySwitchPort0, p.Identity.HierarchyID)
}

// TestDecodeBITDirectoryWalk runs the full BIT directory loop over entries
// for version-info (0), 'B', and the terminator, confirming dispatch and
// clean termination on the all-zero id.
func TestDecodeBITDirectoryWalk(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(64)
	b.put(0, 'B', 'I', 'T', 0x00)

	entryOff := 4
	// Version-info entry (id0 0, non-zero id1): skipped, info only.
	b.put(entryOff, 0x00, 0x01, 0x01, 0x00, 0x00, 0x00)
	entryOff += 6

	// 'B' entry pointing at a version block further in the buffer.
	verBlock := 40
	b.put(entryOff, 'B', 0x00)
	b.putU16(entryOff+2, 0)
	b.putU16(entryOff+4, uint16(verBlock))
	entryOff += 6

	// Terminator.
	b.put(entryOff, 0, 0, 0, 0, 0, 0)

	b.putU32(verBlock, 0x05440321)
	b.put(verBlock+4, 0x02)
	b.putU16(verBlock+0x0A, 2500)

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	decodeBIT(r, 0, ArchNV4X, &p)

	assert.Empty(p.Diagnostics)
	assert.Equal("05.44.03.21.02", p.Version.VersionString)
	assert.Equal(uint16(2500), p.Version.BootTextTimeMs)
}

func TestDecodeBITUnknownEntrySkipped(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(32)
	b.put(0, 'B', 'I', 'T', 0x00)
	b.put(4, 'Z', 0x00, 0, 0, 0, 0) // unknown id, skipped silently
	b.put(10, 0, 0, 0, 0, 0, 0)    // terminator

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	var p ParsedBios
	decodeBIT(r, 0, ArchNV4X, &p)
	assert.Empty(p.Diagnostics)
}
