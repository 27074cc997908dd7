// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func putTempRow(b *romBuilder, off int, id byte, value int16) {
	b.put(off, id)
	b.put(off+1, byte(value), byte(value>>8))
}

func TestParseTempTable(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(64)
	b.put(0, 0x01 /* version */, 4 /* start */, 3 /* entry_size */, 6 /* num_entries */)

	row := 4
	putTempRow(b, row, 0x04, int16(0x0790)) // critical, first occurrence -> Int
	row += 3
	putTempRow(b, row, 0x04, int16(0x0890)) // critical, second occurrence -> Ext
	row += 3
	putTempRow(b, row, 0x05, int16(0x0690)) // throttle, first occurrence
	row += 3
	putTempRow(b, row, 0x08, int16(0x0590)) // fanboost, first occurrence
	row += 3
	putTempRow(b, row, 0x12, int16(1)) // slope mult
	row += 3
	putTempRow(b, row, 0x13, int16(1)) // slope div

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	th, sc, diags := parseTempTable(r, 0)
	assert.Empty(diags)

	assert.NotZero(th.Caps & CapCrtclThld1)
	assert.NotZero(th.Caps & CapCrtclThld2)
	assert.NotZero(th.Caps & CapThrtlThld1)
	assert.NotZero(th.Caps & CapFnbstThld1)
	assert.Equal(uint16(0x079), th.CrtclInt)
	assert.Equal(uint16(0x089), th.CrtclExt)
	assert.EqualValues(1, sc.SlopeMult)
	assert.EqualValues(1, sc.SlopeDiv)
}

func TestParseTempTableThirdThresholdOverflows(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(64)
	b.put(0, 0x01, 4, 3, 3)

	row := 4
	putTempRow(b, row, 0x05, int16(0x0790))
	row += 3
	putTempRow(b, row, 0x05, int16(0x0890))
	row += 3
	putTempRow(b, row, 0x05, int16(0x0990)) // third occurrence: error

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	_, _, diags := parseTempTable(r, 0)
	assert.Len(diags, 1)
}

func TestParseTempTableCorrection(t *testing.T) {
	assert := assert.New(t)

	b := newRomBuilder(16)
	b.put(0, 0x01, 4, 3, 1)
	// id 0x01 with value & 0x8F == 0: correction = (value>>9)&0x7F.
	putTempRow(b, 4, 0x01, int16(0x2000))

	r := newReader(b.bytes(), uint32(len(b.bytes())))
	_, sc, diags := parseTempTable(r, 0)
	assert.Empty(diags)
	assert.EqualValues(0x10, sc.TempCorrection)
}
