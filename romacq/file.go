// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// FileBackend reads a ROM image already dumped to a regular file, e.g. by
// `cat /sys/bus/pci/devices/.../rom > card.rom` or a vendor flashing tool.

package romacq

import (
	"fmt"
	"io"
	"os"

	"github.com/dswarbrick/nvbios/nvbios"
)

// FileBackend reads a ROM image from a plain file on disk.
type FileBackend struct {
	path string
	f    *os.File
}

// OpenFile opens path for reading. The file is not read until ReadROM is
// called.
func OpenFile(path string) (*FileBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("romacq: opening %s: %w", path, err)
	}
	return &FileBackend{path: path, f: f}, nil
}

func (b *FileBackend) ReadROM() ([]byte, uint32, error) {
	buf := make([]byte, nvbios.NvPromSize)
	n, err := b.f.ReadAt(buf, 0)
	if n == 0 && err != nil && err != io.EOF {
		return nil, 0, fmt.Errorf("romacq: reading %s: %w", b.path, err)
	}
	buf = buf[:n]
	if len(buf) == 0 {
		return nil, 0, ErrNoROM
	}
	return buf, romSize(buf), nil
}

func (b *FileBackend) Close() error {
	return b.f.Close()
}
