// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package romacq acquires a raw video BIOS ROM image from hardware or from
// a previously dumped file, for package nvbios to parse. It never
// interprets the bytes it returns; that is entirely nvbios's job.
package romacq

import "errors"

// ErrNoROM is returned when a backend finds no usable ROM image at all
// (card absent, ROM shadowing disabled, empty dump file).
var ErrNoROM = errors.New("romacq: no rom image available")

// Backend acquires a ROM image from one source. Each concrete backend
// (FileBackend, PromBackend, PraminBackend) wraps exactly one acquisition
// strategy so callers can swap sources without touching nvbios.
type Backend interface {
	// ReadROM returns the raw ROM bytes and nvbios's declared logical size
	// (rom[2]*512), or ErrNoROM if the backend has nothing to offer.
	ReadROM() ([]byte, uint32, error)
	Close() error
}

// romSize reads the declared size byte (offset 2) from a ROM buffer and
// returns size*512, the same cross-check nvbios.validate performs.
func romSize(buf []byte) uint32 {
	if len(buf) < 3 {
		return uint32(len(buf))
	}
	return uint32(buf[2]) * 512
}
