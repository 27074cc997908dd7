// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Voltage table (§4.7.4). The first byte at offset selects one of two
// layouts; each row is {voltage: rom[+0]*0.01V, VID: rom[+1]}.

package nvbios

func parseVoltageTable(r *reader, offset uint32) ([]VoltageLevel, uint8, error) {
	selector, err := r.u8(offset)
	if err != nil {
		return nil, 0, err
	}

	var start, entrySize, numEntries, voltMask uint8

	switch selector {
	case 0x10, 0x12:
		start = 5
		entrySize, err = r.u8(offset + 1)
		if err != nil {
			return nil, 0, err
		}
		numEntries, err = r.u8(offset + 2)
		if err != nil {
			return nil, 0, err
		}
		voltMask, err = r.u8(offset + 4)
		if err != nil {
			return nil, 0, err
		}
	default:
		start, err = r.u8(offset + 1)
		if err != nil {
			return nil, 0, err
		}
		numEntries, err = r.u8(offset + 2)
		if err != nil {
			return nil, 0, err
		}
		entrySize, err = r.u8(offset + 3)
		if err != nil {
			return nil, 0, err
		}
		voltMask, err = r.u8(offset + uint32(start) - 1)
		if err != nil {
			return nil, 0, err
		}
	}

	var overflowErr error
	if int(numEntries) > MaxVoltLvls {
		numEntries = MaxVoltLvls
		overflowErr = &TableOverflowError{Table: "voltage", Cap: MaxVoltLvls}
	}

	row := offset + uint32(start)
	out := make([]VoltageLevel, 0, numEntries)
	for i := 0; i < int(numEntries); i++ {
		rawVolt, err := r.u8(row)
		if err != nil {
			return out, voltMask, err
		}
		vid, err := r.u8(row + 1)
		if err != nil {
			return out, voltMask, err
		}
		out = append(out, VoltageLevel{VID: vid, Voltage: float64(rawVolt) / 100})
		row += uint32(entrySize)
	}

	return out, voltMask, overflowErr
}
