// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// BIT decoder (§4.5). Walks the 6-byte entry records following the "BIT\0"
// anchor and dispatches each by its id byte. Iteration stops when both id
// bytes of an entry are zero. Unknown ids are skipped (advance by 6)
// without adding a diagnostic.

package nvbios

const bitEntrySize = 6

type bitEntry struct {
	id0, id1 byte
	length   uint16
	offset   uint16
}

func readBitEntry(r *reader, off uint32) (bitEntry, error) {
	id0, err := r.u8(off)
	if err != nil {
		return bitEntry{}, err
	}
	id1, err := r.u8(off + 1)
	if err != nil {
		return bitEntry{}, err
	}
	length, err := r.u16(off + 2)
	if err != nil {
		return bitEntry{}, err
	}
	offset, err := r.u16(off + 4)
	if err != nil {
		return bitEntry{}, err
	}
	return bitEntry{id0: id0, id1: id1, length: length, offset: offset}, nil
}

// decodeBIT walks the BIT directory starting right after the "BIT\0" anchor
// and populates p from each entry it recognizes. Per-entry failures are
// appended to p.Diagnostics and do not abort the walk of sibling entries.
func decodeBIT(r *reader, bitOffset uint32, arch Arch, p *ParsedBios) {
	off := bitOffset + 4 // skip 'B' 'I' 'T' '\0'

	for {
		entry, err := readBitEntry(r, off)
		if err != nil {
			p.addDiagnostic(err)
			return
		}
		if entry.id0 == 0 && entry.id1 == 0 {
			return
		}

		switch entry.id0 {
		case 0:
			// Table version, info only: nibble-packed Major.Minor.Patch.
		case 'B':
			p.addDiagnostic(decodeBitB(r, entry, p))
		case 'C':
			p.addDiagnostic(decodeBitC(r, entry, p))
		case 'I':
			p.addDiagnostic(decodeBitI(r, entry, p))
		case 'P':
			p.addDiagnostic(decodeBitP(r, entry, arch, p))
		case 'S':
			p.addDiagnostic(decodeBitS(r, entry, arch, p))
		case 'i':
			p.addDiagnostic(decodeBitI2(r, entry, p))
		default:
			// Unknown BIT entry id: logged at verbose level only.
		}

		off += bitEntrySize
	}
}

func decodeBitB(r *reader, e bitEntry, p *ParsedBios) error {
	v, err := r.formatBitVersion(uint32(e.offset))
	if err != nil {
		return err
	}
	p.Version.VersionString = v

	textTime, err := r.u16(uint32(e.offset) + 0x0A)
	if err != nil {
		return err
	}
	p.Version.BootTextTimeMs = textTime
	return nil
}

func decodeBitC(r *reader, e bitEntry, p *ParsedBios) error {
	pllOffset, err := r.u16(uint32(e.offset) + 0x08)
	if err != nil {
		return err
	}
	plls, err := parsePllTable(r, uint32(pllOffset))
	p.PllTable = plls
	return err
}

func decodeBitI(r *reader, e bitEntry, p *ParsedBios) error {
	initOffset, err := r.u16(uint32(e.offset))
	if err != nil {
		return err
	}
	res, diags := walkInitTables(r, uint32(initOffset), int(e.length))
	p.PipeCfg = res.PipeCfg
	p.NvPll = res.NvPll
	p.MPll = res.MPll
	for _, d := range diags {
		p.addDiagnostic(d)
	}
	return nil
}

func decodeBitP(r *reader, e bitEntry, arch Arch, p *ParsedBios) error {
	perfOff, err := r.u16(uint32(e.offset))
	if err != nil {
		return err
	}
	perf, caps, perfErr := parsePerfTable(r, uint32(perfOff), arch)
	p.PerfTable = perf
	p.PerfCaps = caps

	tempPtrOff, err := r.u16(uint32(e.offset) + 0x0C)
	if err == nil {
		thermal, sensor, diags := parseTempTable(r, uint32(tempPtrOff))
		p.Thermal = thermal
		p.Sensor = sensor
		for _, d := range diags {
			p.addDiagnostic(d)
		}
	} else {
		p.addDiagnostic(err)
	}

	voltPtrOff, err := r.u16(uint32(e.offset) + 0x10)
	if err == nil {
		volt, mask, voltErr := parseVoltageTable(r, uint32(voltPtrOff))
		p.VoltTable = volt
		p.VoltMask = mask
		p.addDiagnostic(voltErr)
	} else {
		p.addDiagnostic(err)
	}

	return perfErr
}

func decodeBitS(r *reader, e bitEntry, arch Arch, p *ParsedBios) error {
	strs, err := parseStringTable(r, uint32(e.offset), uint8(e.length), arch)
	p.SignOn = strs[0]
	p.VersionString = strs[1]
	p.Copyright = strs[2]
	p.OEM = strs[3]
	p.VesaVendor = strs[4]
	p.VesaName = strs[5]
	p.VesaRevision = strs[6]
	p.EngineeringRelease = strs[7]
	return err
}

func decodeBitI2(r *reader, e bitEntry, p *ParsedBios) error {
	v, err := r.formatBitVersion(uint32(e.offset))
	if err != nil {
		return err
	}
	p.Version.VersionStringV2 = v

	boardID, err := r.u16(uint32(e.offset) + 0x0B)
	if err != nil {
		return err
	}
	p.Identity.BoardID = boardID

	buildDate, err := r.readCstr(uint32(e.offset)+0x0F, 9)
	if err != nil {
		return err
	}
	p.Version.BuildDate = buildDate

	hierarchy, err := r.u8(uint32(e.offset) + 0x24)
	if err != nil {
		return err
	}
	p.Identity.HierarchyID = HierarchyID(hierarchy)
	return nil
}
