// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Device-id -> architecture-tag lookup. A handful of representative
// device-ids are seeded per generation so that ArchForDeviceID has real
// entries to resolve, the same way ataMinorVersions is seeded from the
// ATA/ATAPI revision tables rather than left as an empty map.
package nvbios

var archByDeviceID = map[uint16]Arch{
	// NV5 (Riva TNT2 family)
	0x0020: ArchNV5,
	0x0028: ArchNV5,
	0x0029: ArchNV5,

	// NV3x (GeForce FX family)
	0x0110: ArchNV3X,
	0x0141: ArchNV3X,
	0x0142: ArchNV3X,
	0x0160: ArchNV3X,
	0x0301: ArchNV3X,
	0x0311: ArchNV3X,
	0x0321: ArchNV3X,
	0x0330: ArchNV3X,

	// NV4x (GeForce 6/7 family)
	0x0040: ArchNV4X,
	0x0041: ArchNV4X,
	0x0090: ArchNV4X,
	0x00f0: ArchNV4X,
	0x0140: ArchNV4X,
	0x0091: ArchNV47,
	0x029c: ArchNV47,
	0x0211: ArchNV49,
	0x0291: ArchNV49,

	// NV5x (GeForce 8/9/200 family)
	0x0191: ArchNV5X,
	0x0400: ArchNV5X,
	0x0421: ArchNV5X,
	0x05e0: ArchNV5X,
	0x06e0: ArchNV5X,
}

// ArchForDeviceID maps a PCIR device-id to its architecture tag. Unknown
// device-ids return ArchNV5 (the zero value) and ok=false; callers that
// need a hard failure on an unrecognized device should check ok.
func ArchForDeviceID(deviceID uint16) (arch Arch, ok bool) {
	a, ok := archByDeviceID[deviceID]
	return a, ok
}
