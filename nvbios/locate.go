// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Locator: forward search for a literal or masked byte pattern within the
// ROM buffer, starting at a given offset. Complexity is O(n*m); the ROM is
// small enough (<=64 KiB) that no acceleration structure is needed.

package nvbios

// find returns the first offset >= start such that
// buf[off:off+len(needle)] == needle, or (0, false) if absent. Offset 0 is
// the ROM start (the 55 AA signature), which none of the needles used by
// this decoder ("PCIR", "BIT\x00", 0xFF 0x7F 'N' 'V') can ever match, so the
// sentinel collision documented in the source never bites in practice.
func (r *reader) find(needle []byte, start uint32) (uint32, bool) {
	if len(needle) == 0 || r.size < uint32(len(needle)) {
		return 0, false
	}
	last := r.size - uint32(len(needle))
	for off := start; off <= last; off++ {
		if matches(r.buf[off:off+uint32(len(needle))], needle) {
			return off, true
		}
	}
	return 0, false
}

// findMasked returns the first offset >= start such that, for every j,
// (buf[off+j] & mask[j]) == (needle[j] & mask[j]).
func (r *reader) findMasked(needle, mask []byte, start uint32) (uint32, bool) {
	n := len(needle)
	if n == 0 || n != len(mask) || r.size < uint32(n) {
		return 0, false
	}
	last := r.size - uint32(n)
	for off := start; off <= last; off++ {
		if matchesMasked(r.buf[off:off+uint32(n)], needle, mask) {
			return off, true
		}
	}
	return 0, false
}

func matches(window, needle []byte) bool {
	for i := range needle {
		if window[i] != needle[i] {
			return false
		}
	}
	return true
}

func matchesMasked(window, needle, mask []byte) bool {
	for j := range needle {
		if window[j]&mask[j] != needle[j]&mask[j] {
			return false
		}
	}
	return true
}
