// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package namedb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultResolves(t *testing.T) {
	assert := assert.New(t)

	db := Default()
	assert.Equal("RIVA TNT2", db.AdapterName(0x0020))
	assert.Equal("NVIDIA Corporation", db.VendorName(0x10DE))
	assert.Equal("", db.AdapterName(0xFFFF))
}

func TestNilDBResolvesEmpty(t *testing.T) {
	var db *DB
	assert.Equal(t, "", db.AdapterName(0x0020))
	assert.Equal(t, "", db.VendorName(0x10DE))
}

func TestDecodeResolves(t *testing.T) {
	assert := assert.New(t)

	src := `
adapters:
  - device_id: 64
    name: Test Card
vendors:
  - subvendor_id: 4171
    name: Test Vendor
`
	db, err := Decode(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal("Test Card", db.AdapterName(64))
	assert.Equal("Test Vendor", db.VendorName(4171))
}
