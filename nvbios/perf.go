// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// BIT performance table (§4.7.2). Header: version(u8), start(u8),
// num_active(u8), offset_inner(u8), entry_size(u8), num_entries(u8). Field
// offsets within a row depend on the header version; iteration stops at
// the 0x04104B4D end marker or MaxPerfLvls, whichever comes first.

package nvbios

const perfEndMarker = 0x04104B4D

// All of nvclk/shaderclk/memclk are read as u16 regardless of layout; only
// fan/volt/delta-selector/lock are single bytes.
type perfLayout struct {
	fan, volt, nvclk, shader, memclk, delta, lock uint32
}

func perfLayoutFor(version uint8) perfLayout {
	switch version {
	case 0x25:
		return perfLayout{fan: 4, volt: 5, nvclk: 8, shader: 10, memclk: 12}
	case 0x30, 0x35:
		return perfLayout{fan: 6, volt: 7, nvclk: 8, shader: 10, memclk: 12}
	default:
		return perfLayout{shader: 0, fan: 4, volt: 5, nvclk: 6, delta: 7, memclk: 11, lock: 13}
	}
}

func perfCapsFor(arch Arch) PerfCaps {
	var caps PerfCaps
	switch arch {
	case ArchNV47, ArchNV49:
		caps |= CapDeltaClk
	case ArchNV5X:
		caps |= CapShaderClk
	case ArchNV4X:
		caps |= CapLock
	}
	return caps
}

func parsePerfTable(r *reader, offset uint32, arch Arch) ([]PerformanceLevel, PerfCaps, error) {
	version, err := r.u8(offset)
	if err != nil {
		return nil, 0, err
	}
	start, err := r.u8(offset + 1)
	if err != nil {
		return nil, 0, err
	}
	numActive, err := r.u8(offset + 2)
	if err != nil {
		return nil, 0, err
	}
	offsetInner, err := r.u8(offset + 3)
	if err != nil {
		return nil, 0, err
	}
	entrySize, err := r.u8(offset + 4)
	if err != nil {
		return nil, 0, err
	}
	numEntries, err := r.u8(offset + 5)
	if err != nil {
		return nil, 0, err
	}
	_ = numEntries

	caps := perfCapsFor(arch)
	layout := perfLayoutFor(version)
	stride := uint32(offsetInner) + uint32(entrySize)*uint32(numEntries)

	out := make([]PerformanceLevel, 0, MaxPerfLvls)
	row := offset + uint32(start)
	sawEndMarker := false

	for i := 0; i < MaxPerfLvls; i++ {
		marker, err := r.u32(row)
		if err != nil {
			return out, caps, err
		}
		if marker == perfEndMarker {
			sawEndMarker = true
			break
		}

		firstByte, err := r.u8(row)
		if err != nil {
			return out, caps, err
		}
		if version != 0x35 && firstByte&0xf0 != 0x20 {
			return out, caps, &InvalidBiosError{Reason: ErrTableOverflow, Detail: "performance table alignment error"}
		}

		var lvl PerformanceLevel
		lvl.Active = i < int(numActive)

		fan, err := r.u8(row + layout.fan)
		if err != nil {
			return out, caps, err
		}
		lvl.FanSpeed = fan

		volt, err := r.u8(row + layout.volt)
		if err != nil {
			return out, caps, err
		}
		lvl.Voltage = float64(volt) / 100

		nvclk, err := r.u16(row + layout.nvclk)
		if err != nil {
			return out, caps, err
		}
		lvl.NvClk = nvclk

		memclk, err := r.u16(row + layout.memclk)
		if err != nil {
			return out, caps, err
		}
		lvl.MemClk = memclk

		if caps&CapDeltaClk != 0 {
			deltaSel, err := r.u8(row + layout.delta)
			if err != nil {
				return out, caps, err
			}
			if deltaSel != 0 {
				deltaNum, err := r.u8(row + layout.delta + 1)
				if err != nil {
					return out, caps, err
				}
				lvl.Delta = int16(deltaNum) / int16(deltaSel)
			}
		}

		if caps&CapShaderClk != 0 {
			shader, err := r.u16(row + layout.shader)
			if err != nil {
				return out, caps, err
			}
			lvl.ShaderClk = shader
		}

		if caps&CapLock != 0 {
			lockByte, err := r.u8(row + layout.lock)
			if err != nil {
				return out, caps, err
			}
			lvl.Lock = lockByte & 0xF
		}

		out = append(out, lvl)
		row += stride
	}

	if !sawEndMarker && len(out) == MaxPerfLvls {
		return out, caps, &TableOverflowError{Table: "performance", Cap: MaxPerfLvls}
	}

	return out, caps, nil
}
