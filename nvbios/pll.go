// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// PLL programming-limits table (§4.7.1). Header: version(u8), start(u8),
// entry_size(u8), num_entries(u8). Rows start `start` bytes in and are
// `entry_size` apart.

package nvbios

func parsePllTable(r *reader, offset uint32) ([]PllLimit, error) {
	start, err := r.u8(offset + 1)
	if err != nil {
		return nil, err
	}
	entrySize, err := r.u8(offset + 2)
	if err != nil {
		return nil, err
	}
	numEntries, err := r.u8(offset + 3)
	if err != nil {
		return nil, err
	}

	var overflowErr error
	if int(numEntries) > MaxPllEntries {
		numEntries = MaxPllEntries
		overflowErr = &TableOverflowError{Table: "pll", Cap: MaxPllEntries}
	}

	row := offset + uint32(start)
	out := make([]PllLimit, 0, numEntries)
	for i := 0; i < int(numEntries); i++ {
		pll, err := readPllRow(r, row)
		if err != nil {
			return out, err
		}
		out = append(out, pll)
		row += uint32(entrySize)
	}
	return out, overflowErr
}

func readPllRow(r *reader, off uint32) (PllLimit, error) {
	var p PllLimit

	reg, err := r.u32(off)
	if err != nil {
		return p, err
	}
	p.Register = reg

	vco1MinF, err := r.u16(off + 0x4)
	if err != nil {
		return p, err
	}
	vco1MaxF, err := r.u16(off + 0x6)
	if err != nil {
		return p, err
	}
	vco2MinF, err := r.u16(off + 0x8)
	if err != nil {
		return p, err
	}
	vco2MaxF, err := r.u16(off + 0xa)
	if err != nil {
		return p, err
	}
	vco1MinIn, err := r.u16(off + 0xc)
	if err != nil {
		return p, err
	}
	vco1MaxIn, err := r.u16(off + 0xe)
	if err != nil {
		return p, err
	}
	vco2MinIn, err := r.u16(off + 0x10)
	if err != nil {
		return p, err
	}
	vco2MaxIn, err := r.u16(off + 0x12)
	if err != nil {
		return p, err
	}

	p.VCO1.MinFreqKHz = uint32(vco1MinF) * 1000
	p.VCO1.MaxFreqKHz = uint32(vco1MaxF) * 1000
	p.VCO2.MinFreqKHz = uint32(vco2MinF) * 1000
	p.VCO2.MaxFreqKHz = uint32(vco2MaxF) * 1000
	p.VCO1.MinInputFreqKHz = uint32(vco1MinIn) * 1000
	p.VCO1.MaxInputFreqKHz = uint32(vco1MaxIn) * 1000
	p.VCO2.MinInputFreqKHz = uint32(vco2MinIn) * 1000
	p.VCO2.MaxInputFreqKHz = uint32(vco2MaxIn) * 1000

	for _, f := range []struct {
		off uint32
		dst *uint8
	}{
		{0x14, &p.VCO1.MinN}, {0x15, &p.VCO1.MaxN}, {0x16, &p.VCO1.MinM}, {0x17, &p.VCO1.MaxM},
		{0x18, &p.VCO2.MinN}, {0x19, &p.VCO2.MaxN}, {0x1a, &p.VCO2.MinM}, {0x1b, &p.VCO2.MaxM},
		{0x1d, &p.Cal1}, {0x1e, &p.Cal2},
	} {
		v, err := r.u8(off + f.off)
		if err != nil {
			return p, err
		}
		*f.dst = v
	}

	return p, nil
}
