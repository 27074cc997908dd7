// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// PC speaker (port 0x61) toggle locator. The init script writes AL to port
// 0x61 (OUT 0x61,AL, opcode bytes E6 61) after OR'ing or AND'ing it with 3,
// which connects/disconnects the motherboard PC speaker from the PIT timer.
// This decoder does not patch that byte (peripheral editing is out of
// scope), it only reports where it is so an external editor can.

package nvbios

// speakerToggle is the 5-byte instruction sequence ("PUSH AX; OR/AND AL,imm8;
// OUT 0x61,AL") with a mask that pins the PUSH and OUT opcode bytes, only
// the one bit (0x04) that the OR (0x0C) and AND (0x24) selectors share, and
// none of the immediate operand. The mask value at index 1 mirrors the
// reference decoder's 0x0C&0x24 expression exactly.
var (
	speakerToggle     = []byte{0x50, 0x0C & 0x24, 0x00, 0xE6, 0x61}
	speakerToggleMask = []byte{0xFF, 0x0C & 0x24, 0x00, 0xFF, 0xFF}
	speakerReset      = []byte{0x58, 0xE6, 0x61}
)

// speakerResetGap is the fixed byte distance between the toggle sequence and
// its paired "POP AX; OUT 0x61,AL" reset, used as a sanity check that both
// matches belong to the same instruction pair.
const speakerResetGap = 0x0B

// locateSpeakerToggle searches the ROM for the PC-speaker enable/disable
// write and its paired reset, returning the offset of the toggle's OR/AND
// immediate operand (the byte an editor would flip to enable or disable the
// speaker). It returns an error, not a fatal failure, if the pattern is
// absent, ambiguous, or the reset isn't found exactly speakerResetGap bytes
// later — none of which block parsing the rest of the image.
func locateSpeakerToggle(r *reader) (uint32, error) {
	first, found := r.findMasked(speakerToggle, speakerToggleMask, 0)
	if !found {
		return 0, ErrSpeakerToggleNotFound
	}

	if _, dup := r.findMasked(speakerToggle, speakerToggleMask, first+1); dup {
		return 0, ErrSpeakerToggleAmbiguous
	}

	second, found := r.find(speakerReset, first+5)
	if !found {
		return 0, ErrSpeakerResetNotFound
	}
	if second-first != speakerResetGap {
		return 0, ErrSpeakerOffsetDrift
	}

	return first + 2, nil
}
