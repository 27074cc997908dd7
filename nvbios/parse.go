// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Top-level orchestration (§2 data flow): build a RomImage, validate it,
// dispatch to the BMP or BIT decoder based on device-id generation, and
// return the populated ParsedBios aggregate.

package nvbios

import "hash/crc32"

// Parse consumes a ROM buffer (at most NvPromSize bytes) and its logical
// size, and produces a ParsedBios. A validator failure (§4.3) aborts
// parsing and returns a non-nil error with no usable aggregate; every
// other failure is attached to the result's Diagnostics and does not stop
// sibling tables from being populated.
func Parse(buf []byte, romSize uint32, db NameDB) (*ParsedBios, error) {
	p := &ParsedBios{}
	p.Image = newRomImage(buf, romSize)

	r := newReader(p.Image.Buf[:], p.Image.RomSize)

	a, deviceID, arch, err := validate(r)
	if err != nil {
		return nil, err
	}

	p.ChecksumOK = p.Image.Checksum == 0

	ci, modDate, err := decodeIdentity(r, a, deviceID, arch, db)
	p.Identity = ci
	p.Version.ModDate = modDate
	p.addDiagnostic(err)

	speakerOff, err := locateSpeakerToggle(r)
	p.SpeakerToggleOffset = speakerOff
	p.addDiagnostic(err)

	if a.hasBIT {
		decodeBIT(r, a.bitOffset, arch, p)
	} else if a.hasBMP {
		decodeBMP(r, a.bmpOffset, arch, p)
	}

	return p, nil
}

// newRomImage copies buf (truncated to NvPromSize) into a fixed-capacity
// RomImage and computes its checksum and CRC-32 values.
func newRomImage(buf []byte, romSize uint32) RomImage {
	var img RomImage

	n := copy(img.Buf[:], buf)
	if uint32(n) < romSize {
		romSize = uint32(n)
	}
	if romSize > NvPromSize {
		romSize = NvPromSize
	}
	img.RomSize = romSize

	var sum uint8
	for _, b := range img.Buf[:romSize] {
		sum += b
	}
	img.Checksum = sum

	img.CRC32 = crc32.ChecksumIEEE(img.Buf[:romSize])
	img.FakeCRC32 = crc32.ChecksumIEEE(img.Buf[:])

	return img
}
