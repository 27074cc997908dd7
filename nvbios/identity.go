// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Card-identity decoder (§4.4 intro): device-id, subsystem-id, modification
// date, and adapter/vendor name lookup via an external name database.

package nvbios

// NameDB resolves device/subvendor ids to human-readable names. It is
// supplied by the caller (see package namedb for a YAML-backed
// implementation) so the parser itself never touches a lookup file.
type NameDB interface {
	AdapterName(deviceID uint16) string
	VendorName(subvendorID uint16) string
}

func decodeIdentity(r *reader, a anchors, deviceID uint16, arch Arch, db NameDB) (CardIdentity, string, error) {
	var ci CardIdentity
	ci.DeviceID = deviceID
	ci.Arch = arch

	subven, err := r.u16(0x54)
	if err != nil {
		return ci, "", err
	}
	ci.SubvendorID = subven

	subsys, err := r.u16(0x56)
	if err != nil {
		return ci, "", err
	}
	ci.SubsystemID = subsys

	modDate, err := r.readCstr(0x38, 9)
	if err != nil {
		return ci, "", err
	}

	if db != nil {
		ci.AdapterName = db.AdapterName(deviceID)
		ci.VendorName = db.VendorName(subven)
	}

	return ci, modDate, nil
}
