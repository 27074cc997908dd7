// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package namedb is a YAML-backed lookup table mapping PCI device and
// subvendor ids to human-readable names. It implements nvbios.NameDB so
// the core parser never has to import a file format or touch disk itself.
package namedb

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// AdapterEntry names one card model by its PCI device id.
type AdapterEntry struct {
	DeviceID uint16 `yaml:"device_id"`
	Name     string `yaml:"name"`
}

// VendorEntry names one board partner by its PCI subvendor id.
type VendorEntry struct {
	SubvendorID uint16 `yaml:"subvendor_id"`
	Name        string `yaml:"name"`
}

// DB is a loaded name database. The zero value is valid and resolves
// nothing, matching nvbios.Parse's treatment of a nil NameDB.
type DB struct {
	Adapters []AdapterEntry `yaml:"adapters"`
	Vendors  []VendorEntry  `yaml:"vendors"`
}

// defaultDB seeds a handful of representative entries so a fresh checkout
// has something to resolve without first running cmd/gen-namedb.
var defaultDB = DB{
	Adapters: []AdapterEntry{
		{0x0020, "RIVA TNT2"},
		{0x0110, "GeForce FX 5600"},
		{0x0141, "GeForce FX 5600 Ultra"},
		{0x0040, "GeForce 6800 Ultra"},
		{0x0091, "GeForce 7800 GTX"},
		{0x0191, "GeForce 8800 GTX"},
		{0x0400, "GeForce 8600 GT"},
	},
	Vendors: []VendorEntry{
		{0x1043, "ASUSTeK Computer Inc."},
		{0x1458, "Gigabyte Technology Co., Ltd"},
		{0x1462, "Micro-Star International Co., Ltd. (MSI)"},
		{0x10DE, "NVIDIA Corporation"},
		{0x3842, "eVga.com. Corp."},
	},
}

// Default returns the built-in name database.
func Default() *DB {
	db := defaultDB
	return &db
}

// Load reads a YAML-encoded DB from path.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML-encoded DB from r.
func Decode(r io.Reader) (*DB, error) {
	var db DB
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&db); err != nil {
		return nil, err
	}
	return &db, nil
}

// AdapterName implements nvbios.NameDB. An unresolved id returns "".
func (db *DB) AdapterName(deviceID uint16) string {
	if db == nil {
		return ""
	}
	for _, a := range db.Adapters {
		if a.DeviceID == deviceID {
			return a.Name
		}
	}
	return ""
}

// VendorName implements nvbios.NameDB. An unresolved id returns "".
func (db *DB) VendorName(subvendorID uint16) string {
	if db == nil {
		return ""
	}
	for _, v := range db.Vendors {
		if v.SubvendorID == subvendorID {
			return v.Name
		}
	}
	return ""
}
