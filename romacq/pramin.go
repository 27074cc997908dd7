// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// PraminBackend reads the ROM shadow copy that NV4x/NV5x cards keep mapped
// into the PRAMIN aperture of BAR0, for systems where the sysfs "rom" file
// is unavailable (ROM shadowing disabled in firmware) but the card is
// otherwise alive and mapped. This is a last-resort backend: it mmaps the
// raw PCI BAR resource file directly, the same low-level style as
// ioctl.go's syscall-level device access.

package romacq

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/nvbios/nvbios"
)

// praminOffset is the BAR0 byte offset of the PRAMIN ROM shadow window on
// NV4x/NV5x hardware.
const praminOffset = 0x300000

// PraminBackend reads the ROM shadow copy from a memory-mapped PCI BAR.
type PraminBackend struct {
	path string // e.g. /sys/bus/pci/devices/0000:01:00.0/resource0
	fd   int
	mem  []byte
}

// OpenPramin mmaps BAR0 of the PCI device at addr.
func OpenPramin(addr string) (*PraminBackend, error) {
	path := filepath.Join("/sys/bus/pci/devices", addr, "resource0")

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("romacq: opening %s: %w", path, err)
	}

	mapLen := praminOffset + nvbios.NvPromSize
	mem, err := unix.Mmap(fd, 0, mapLen, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("romacq: mmap %s: %w", path, err)
	}

	return &PraminBackend{path: path, fd: fd, mem: mem}, nil
}

func (b *PraminBackend) ReadROM() ([]byte, uint32, error) {
	if len(b.mem) < praminOffset+2 {
		return nil, 0, ErrNoROM
	}
	window := b.mem[praminOffset : praminOffset+nvbios.NvPromSize]

	buf := make([]byte, len(window))
	copy(buf, window)

	if buf[0] != 0x55 || buf[1] != 0xAA {
		return nil, 0, ErrNoROM
	}
	return buf, romSize(buf), nil
}

func (b *PraminBackend) Close() error {
	if err := unix.Munmap(b.mem); err != nil {
		unix.Close(b.fd)
		return err
	}
	return unix.Close(b.fd)
}
