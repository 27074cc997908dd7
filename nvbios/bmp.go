// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Legacy (BMP) decoder (§4.4) for NV5/NV3x ROMs, plus the NV3X-specific
// performance table (§4.8).

package nvbios

func decodeBMP(r *reader, bmpOffset uint32, arch Arch, p *ParsedBios) {
	major, err := r.u8(bmpOffset + 5)
	if err != nil {
		p.addDiagnostic(err)
		return
	}
	minor, err := r.u8(bmpOffset + 6)
	if err != nil {
		p.addDiagnostic(err)
		return
	}
	p.Version.BMPMajor = major
	p.Version.BMPMinor = minor

	version, err := r.u32(bmpOffset + 10)
	if err != nil {
		p.addDiagnostic(err)
		return
	}
	p.Version.VersionString = formatLegacyVersion(version)

	strPtr, err := r.u16(bmpOffset + 30)
	if err != nil {
		p.addDiagnostic(err)
		return
	}
	signOn, err := r.readCstr(uint32(strPtr), 256)
	if err != nil {
		p.addDiagnostic(err)
	} else {
		p.SignOn = signOn
	}

	if arch != ArchNV3X {
		return // NV5: sign-on string only.
	}

	voltOff, err := r.u16(bmpOffset + 0x98)
	if err != nil {
		p.addDiagnostic(err)
	} else {
		volt, mask, voltErr := parseVoltageTable(r, uint32(voltOff))
		p.VoltTable = volt
		p.VoltMask = mask
		p.addDiagnostic(voltErr)
	}

	perfOff, err := r.u16(bmpOffset + 0x94)
	if err != nil {
		p.addDiagnostic(err)
	} else {
		perf, perfErr := parseNV3XPerfTable(r, uint32(perfOff))
		p.PerfTable = perf
		p.addDiagnostic(perfErr)
	}

	// Init-script table pointer at +0x4D is retained for completeness
	// (§4.4) but NV3X's init tables cache no registers the legacy decoder
	// needs, so it is not walked here.
	_, _ = r.u16(bmpOffset + 0x4D)
}

// parseNV3XPerfTable decodes the GeForce FX era performance table (§4.8).
func parseNV3XPerfTable(r *reader, offset uint32) ([]PerformanceLevel, error) {
	start, err := r.u8(offset)
	if err != nil {
		return nil, err
	}
	numEntries, err := r.u8(offset + 2)
	if err != nil {
		return nil, err
	}
	size, err := r.u8(offset + 3)
	if err != nil {
		return nil, err
	}

	var overflowErr error
	if int(numEntries) > MaxPerfLvls {
		numEntries = MaxPerfLvls
		overflowErr = &TableOverflowError{Table: "performance", Cap: MaxPerfLvls}
	}

	row := offset + uint32(start) + 1
	out := make([]PerformanceLevel, 0, numEntries)
	for i := 0; i < int(numEntries); i++ {
		nvclkRaw, err := r.u32(row)
		if err != nil {
			return out, err
		}
		memclkRaw, err := r.u32(row + 4)
		if err != nil {
			return out, err
		}
		fan, err := r.u8(row + 54)
		if err != nil {
			return out, err
		}
		voltRaw, err := r.u8(row + 55)
		if err != nil {
			return out, err
		}

		out = append(out, PerformanceLevel{
			NvClk:    uint16(nvclkRaw / 100),
			MemClk:   uint16(memclkRaw / 50),
			FanSpeed: fan,
			Voltage:  float64(voltRaw) / 100,
			Active:   true,
		})
		row += uint32(size)
	}

	return out, overflowErr
}
