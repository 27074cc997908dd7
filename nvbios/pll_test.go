// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildPllRow(b *romBuilder, off int) {
	b.putU32(off, 0x00004000)       // register
	b.putU16(off+0x4, 100)          // VCO1 min freq (x1000 -> kHz)
	b.putU16(off+0x6, 400)          // VCO1 max freq
	b.putU16(off+0x8, 200)          // VCO2 min freq
	b.putU16(off+0xa, 500)          // VCO2 max freq
	b.putU16(off+0xc, 10)           // VCO1 min input freq
	b.putU16(off+0xe, 40)           // VCO1 max input freq
	b.putU16(off+0x10, 20)          // VCO2 min input freq
	b.putU16(off+0x12, 50)          // VCO2 max input freq
	b.put(off+0x14, 1, 28, 1, 28)   // VCO1 N/M min/max
	b.put(off+0x18, 1, 28, 1, 28)   // VCO2 N/M min/max
	b.put(off+0x1d, 0x07, 0x09)     // calibration bytes
}

func TestParsePllTable(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(64)
	b.put(0, 0x01 /* version */, 4 /* start */, 0x20 /* entry_size */, 2 /* num_entries */)
	buildPllRow(b, 4)
	buildPllRow(b, 4+0x20)

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	plls, err := parsePllTable(r, 0)
	assert.NoError(err)
	assert.Len(plls, 2)

	p := plls[0]
	assert.Equal(uint32(0x4000), p.Register)
	assert.Equal(uint32(100_000), p.VCO1.MinFreqKHz)
	assert.Equal(uint32(400_000), p.VCO1.MaxFreqKHz)
	assert.Equal(uint32(200_000), p.VCO2.MinFreqKHz)
	assert.Equal(uint32(500_000), p.VCO2.MaxFreqKHz)
	assert.EqualValues(1, p.VCO1.MinN)
	assert.EqualValues(28, p.VCO1.MaxN)
	assert.EqualValues(0x07, p.Cal1)
	assert.EqualValues(0x09, p.Cal2)
}

func TestParsePllTableCap(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(4 + 0x20*(MaxPllEntries+2))
	b.put(0, 0x01, 4, 0x20, byte(MaxPllEntries+2))
	for i := 0; i < MaxPllEntries+2; i++ {
		buildPllRow(b, 4+0x20*i)
	}

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	plls, err := parsePllTable(r, 0)
	assert.ErrorIs(err, ErrTableOverflow)
	assert.Len(plls, MaxPllEntries)
}
