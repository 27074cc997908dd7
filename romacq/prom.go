// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// PromBackend reads a card's expansion ROM through the sysfs "rom" file
// that the kernel's PCI core exposes for every device: writing "1" maps
// the ROM BAR for the duration of the read, and "0" unmaps it again. This
// mirrors the raw-fd + syscall style package smart uses for SG_IO (see
// sgio.go) rather than going through *os.File.

package romacq

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/nvbios/nvbios"
)

// PromBackend reads the expansion ROM of one PCI device via sysfs.
type PromBackend struct {
	path string // e.g. /sys/bus/pci/devices/0000:01:00.0/rom
	fd   int
}

// OpenProm opens the sysfs "rom" attribute for the PCI device at addr
// (e.g. "0000:01:00.0").
func OpenProm(addr string) (*PromBackend, error) {
	path := filepath.Join("/sys/bus/pci/devices", addr, "rom")

	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("romacq: opening %s: %w", path, err)
	}
	return &PromBackend{path: path, fd: fd}, nil
}

func (b *PromBackend) ReadROM() ([]byte, uint32, error) {
	if _, err := unix.Write(b.fd, []byte("1")); err != nil {
		return nil, 0, fmt.Errorf("romacq: enabling rom at %s: %w", b.path, err)
	}
	defer unix.Pwrite(b.fd, []byte("0"), 0)

	buf := make([]byte, nvbios.NvPromSize)
	n, err := unix.Pread(b.fd, buf, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("romacq: reading %s: %w", b.path, err)
	}
	if n == 0 {
		return nil, 0, ErrNoROM
	}
	buf = buf[:n]
	return buf, romSize(buf), nil
}

func (b *PromBackend) Close() error {
	return unix.Close(b.fd)
}
