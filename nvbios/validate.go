// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Image validator: signature, size cross-check, PCIR lookup, vendor-id
// check, and generation-gated anchor check. All failures here are fatal:
// no ParsedBios is produced.

package nvbios

var (
	sigBytes    = []byte{0x55, 0xAA}
	pcirNeedle  = []byte("PCIR")
	bitNeedle   = []byte("BIT\x00")
	bmpAnchor   = []byte{0xFF, 0x7F, 'N', 'V'}
)

// nvidiaVendorID is the PCI vendor-id this decoder family is restricted to.
const nvidiaVendorID = 0x10DE

// anchors collects the offsets located while validating, so the decoders
// don't have to re-search for them.
type anchors struct {
	pcirOffset uint32
	bitOffset  uint32
	bmpOffset  uint32
	hasBIT     bool
	hasBMP     bool
}

// validate performs, in order: signature check, capacity check, dual size
// cross-check, PCIR locate + vendor-id check, then the generation-gated
// anchor check. It returns the located anchors and the decoded CardIdentity
// device-id/architecture, or a fatal *InvalidBiosError.
func validate(r *reader) (anchors, uint16, Arch, error) {
	var a anchors

	if r.size < 2 || r.buf[0] != sigBytes[0] || r.buf[1] != sigBytes[1] {
		return a, 0, 0, &InvalidBiosError{Reason: ErrInvalidSignature}
	}

	if r.size > NvPromSize {
		return a, 0, 0, &InvalidBiosError{Reason: ErrSizeMismatch, Detail: "rom_size exceeds 64 KiB capacity"}
	}

	sizeByte, err := r.u8(2)
	if err != nil {
		return a, 0, 0, &InvalidBiosError{Reason: ErrTruncated, Detail: "reading size byte at offset 2"}
	}
	declaredSize := uint32(sizeByte) * 512

	ptr, err := r.u16(0x18)
	if err != nil {
		return a, 0, 0, &InvalidBiosError{Reason: ErrTruncated, Detail: "reading size pointer at offset 0x18"}
	}
	repeated, err := r.u16(0x10 + uint32(ptr))
	if err != nil || uint32(repeated) != declaredSize {
		return a, 0, 0, &InvalidBiosError{Reason: ErrSizeMismatch, Detail: "0x10+u16@0x18 disagrees with rom[2]*512"}
	}
	if declaredSize != r.size {
		return a, 0, 0, &InvalidBiosError{Reason: ErrSizeMismatch, Detail: "rom[2]*512 disagrees with declared rom_size"}
	}

	pcirOff, ok := r.find(pcirNeedle, 0)
	if !ok {
		return a, 0, 0, &InvalidBiosError{Reason: &AnchorMissingError{Name: "PCIR"}}
	}
	a.pcirOffset = pcirOff

	vendorID, err := r.u16(pcirOff + 4)
	if err != nil {
		return a, 0, 0, &InvalidBiosError{Reason: ErrTruncated, Detail: "reading PCIR vendor id"}
	}
	if vendorID != nvidiaVendorID {
		return a, 0, 0, &InvalidBiosError{Reason: ErrForeignVendor}
	}

	deviceID, err := r.u16(pcirOff + 6)
	if err != nil {
		return a, 0, 0, &InvalidBiosError{Reason: ErrTruncated, Detail: "reading PCIR device id"}
	}

	arch, archKnown := ArchForDeviceID(deviceID)

	if arch.IsBIT() || !archKnown {
		// Modern generations require the BIT anchor after PCIR.
		// Unrecognized device-ids look for it first and, when it is
		// absent, fall through to the legacy anchor check below.
		bitOff, found := r.find(bitNeedle, pcirOff)
		if found {
			a.bitOffset = bitOff
			a.hasBIT = true
			return a, deviceID, arch, nil
		}
		if arch.IsBIT() {
			return a, 0, 0, &InvalidBiosError{Reason: &AnchorMissingError{Name: "BIT"}}
		}
	}

	bmpOff, found := r.find(bmpAnchor, 0)
	if !found {
		return a, 0, 0, &InvalidBiosError{Reason: &AnchorMissingError{Name: "FF 7F N V"}}
	}
	verByte, err := r.u8(bmpOff + 5)
	if err != nil {
		return a, 0, 0, &InvalidBiosError{Reason: ErrTruncated, Detail: "reading BMP version byte"}
	}
	if verByte < 5 {
		return a, 0, 0, &InvalidBiosError{Reason: ErrUnsupportedGeneration}
	}
	a.bmpOffset = bmpOff
	a.hasBMP = true
	return a, deviceID, arch, nil
}

// IsVideoCard reports whether a 32-bit PCI class register (as read, in its
// big-endian wire form) identifies a display controller: the upper byte of
// the class field must equal 0x03. This is the only big-endian interaction
// in the decoder; it is used by acquisition backends at enumeration time,
// not by the parser itself.
func IsVideoCard(classRegisterBE uint32) bool {
	return byte(classRegisterBE>>24) == 0x03
}
