// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvbios

import "fmt"

// formatLegacyVersion renders a 32-bit packed BMP version as "aa.bb.cc.dd",
// most-significant byte first.
func formatLegacyVersion(v uint32) string {
	return fmt.Sprintf("%02x.%02x.%02x.%02x",
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// formatBitVersion renders the BIT version form: a packed 32-bit value at
// off (big-endian byte order when printed, matching the legacy form) plus
// one extra byte at off+4, giving "aa.bb.cc.dd.ee".
func (r *reader) formatBitVersion(off uint32) (string, error) {
	version, err := r.u32(off)
	if err != nil {
		return "", err
	}
	extra, err := r.u8(off + 4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02x.%02x.%02x.%02x.%02x",
		byte(version>>24), byte(version>>16), byte(version>>8), byte(version), extra), nil
}
