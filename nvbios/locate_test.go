// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	assert := assert.New(t)

	buf := make([]byte, 64)
	copy(buf[20:], "PCIR")

	r := newReader(buf, uint32(len(buf)))
	off, ok := r.find([]byte("PCIR"), 0)
	assert.True(ok)
	assert.Equal(uint32(20), off)

	_, ok = r.find([]byte("XXXX"), 0)
	assert.False(ok)

	_, ok = r.find([]byte("PCIR"), 21)
	assert.False(ok)
}

func TestFindMasked(t *testing.T) {
	assert := assert.New(t)

	buf := make([]byte, 16)
	buf[4] = 0xFF
	buf[5] = 0x7F
	buf[6] = 'N'
	buf[7] = 0x99 // arbitrary low nibble, masked out below

	needle := []byte{0xFF, 0x7F, 'N', 'V'}
	mask := []byte{0xFF, 0xFF, 0xFF, 0xF0}
	needle[3] = 0x90

	r := newReader(buf, uint32(len(buf)))
	off, ok := r.findMasked(needle, mask, 0)
	assert.True(ok)
	assert.Equal(uint32(4), off)
}
