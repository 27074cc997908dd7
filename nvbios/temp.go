// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Temperature / threshold table (§4.7.3). Header: version(u8), start(u8),
// entry_size(u8), num_entries(u8). Each row is {id:u8, value:i16}.

package nvbios

func parseTempTable(r *reader, offset uint32) (Thermal, SensorConfig, []error) {
	var th Thermal
	var sc SensorConfig
	var diags []error

	start, err := r.u8(offset + 1)
	if err != nil {
		return th, sc, append(diags, err)
	}
	entrySize, err := r.u8(offset + 2)
	if err != nil {
		return th, sc, append(diags, err)
	}
	numEntries, err := r.u8(offset + 3)
	if err != nil {
		return th, sc, append(diags, err)
	}

	row := offset + uint32(start)
	for i := 0; i < int(numEntries); i++ {
		id, err := r.u8(row)
		if err != nil {
			diags = append(diags, err)
			break
		}
		value, err := r.i16(row + 1)
		if err != nil {
			diags = append(diags, err)
			break
		}

		switch id {
		case 0x01:
			if value&0x8F == 0 {
				sc.TempCorrection = int32(value>>9) & 0x7F
			}
		case 0x04:
			diags = append(diags, applyThreshold(&th, CapCrtclThld1, CapCrtclThld2,
				&th.CrtclInt, &th.CrtclExt, value, "critical")...)
		case 0x05:
			diags = append(diags, applyThreshold(&th, CapThrtlThld1, CapThrtlThld2,
				&th.ThrtlInt, &th.ThrtlExt, value, "throttle")...)
		case 0x08:
			diags = append(diags, applyThreshold(&th, CapFnbstThld1, CapFnbstThld2,
				&th.FnbstInt, &th.FnbstExt, value, "fanboost")...)
		case 0x10:
			sc.DiodeOffsetMult = int32(value)
		case 0x11:
			sc.DiodeOffsetDiv = int32(value)
		case 0x12:
			sc.SlopeMult = int32(value)
		case 0x13:
			sc.SlopeDiv = int32(value)
		default:
			// Unknown temperature id: logged at verbose level only, not a
			// diagnostic failure.
		}

		row += uint32(entrySize)
	}

	return th, sc, diags
}

func applyThreshold(th *Thermal, cap1, cap2 ThermalCaps, intField, extField *uint16, value int16, name string) []error {
	raw := uint16(value>>4) & 0x1FF
	switch {
	case th.Caps&cap2 != 0:
		return []error{&InvalidBiosError{Reason: ErrTableOverflow, Detail: "unknown " + name + " temperature threshold"}}
	case th.Caps&cap1 != 0:
		*extField = raw
		th.Caps |= cap2
	default:
		*intField = raw
		th.Caps |= cap1
	}
	return nil
}
