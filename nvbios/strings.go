// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// String-reference table (§4.7.5). length must equal 0x15 (21): eight
// {ptr(u16),len(u8)} triples, the 8th (engineering-release) read as a
// 0x2E-byte block XOR'd with 0xFF from a generation-dependent offset.

package nvbios

const stringTableLength = 0x15

func parseStringTable(r *reader, offset uint32, length uint8, arch Arch) ([8]string, error) {
	var out [8]string

	if length != stringTableLength {
		return out, &InvalidBiosError{Reason: ErrTableOverflow, Detail: "unknown string table length"}
	}

	for i := 0; i < 7; i++ {
		ptr, err := r.u16(offset + uint32(3*i))
		if err != nil {
			return out, err
		}
		strLen, err := r.u8(offset + 2 + uint32(3*i))
		if err != nil {
			return out, err
		}
		s, err := r.readMasked(uint32(ptr), int(strLen), 0x00)
		if err != nil {
			return out, err
		}
		out[i] = s
	}

	var engOff uint32
	switch {
	case arch.IsNV4XFamily():
		base, err := r.u16(offset + 0x06)
		if err != nil {
			return out, err
		}
		extra, err := r.u8(offset + 0x08)
		if err != nil {
			return out, err
		}
		engOff = uint32(base) + uint32(extra) + 1
	case arch == ArchNV5X:
		base, err := r.u16(offset + 0x12)
		if err != nil {
			return out, err
		}
		extra, err := r.u8(offset + 0x14)
		if err != nil {
			return out, err
		}
		engOff = uint32(base) + uint32(extra)
	default:
		return out, nil
	}

	s, err := r.readMasked(engOff, 0x2E, 0xFF)
	if err != nil {
		return out, err
	}
	out[7] = s
	return out, nil
}
