// Copyright 2017 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// ScanAdapters enumerates PCI devices via sysfs looking for display
// controllers, the same directory-walk style megaraid.go uses to find its
// ioctl device's major number and smart.go uses to glob SCSI disk nodes.

package romacq

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dswarbrick/nvbios/nvbios"
)

// AdapterInfo identifies one display controller found during a scan.
type AdapterInfo struct {
	Address  string // PCI address, e.g. "0000:01:00.0"
	VendorID uint16
	DeviceID uint16
}

// ScanAdapters walks /sys/bus/pci/devices and returns every device whose
// class register identifies it as a display controller (nvbios.IsVideoCard).
// It does not filter by vendor id; callers that only care about this
// decoder's supported cards should check VendorID == 0x10DE themselves.
func ScanAdapters() ([]AdapterInfo, error) {
	entries, err := os.ReadDir("/sys/bus/pci/devices")
	if err != nil {
		return nil, err
	}

	var out []AdapterInfo
	for _, e := range entries {
		addr := e.Name()
		dir := filepath.Join("/sys/bus/pci/devices", addr)

		class, err := readHexAttr(filepath.Join(dir, "class"))
		if err != nil || !nvbios.IsVideoCard(uint32(class)<<8) {
			continue
		}

		vendor, err := readHexAttr(filepath.Join(dir, "vendor"))
		if err != nil {
			continue
		}
		device, err := readHexAttr(filepath.Join(dir, "device"))
		if err != nil {
			continue
		}

		out = append(out, AdapterInfo{
			Address:  addr,
			VendorID: uint16(vendor),
			DeviceID: uint16(device),
		})
	}

	return out, nil
}

// readHexAttr reads a sysfs attribute file containing a single "0x..."
// hex value.
func readHexAttr(path string) (uint64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "0x")
	return strconv.ParseUint(s, 16, 64)
}
