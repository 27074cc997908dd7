// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Go nvbios reference implementation.
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/nvbios/namedb"
	"github.com/dswarbrick/nvbios/nvbios"
	"github.com/dswarbrick/nvbios/romacq"
	"github.com/dswarbrick/nvbios/utils"
)

const (
	_LINUX_CAPABILITY_VERSION_3 = 0x20080522

	CAP_SYS_RAWIO = 1 << 17
	CAP_SYS_ADMIN = 1 << 21
)

type capHeader struct {
	version uint32
	pid     int
}

type capData struct {
	effective   uint32
	permitted   uint32
	inheritable uint32
}

type capsV3 struct {
	hdr  capHeader
	data [2]capData
}

// checkCaps invokes the capget syscall to check for necessary capabilities.
// Note that this depends on the binary having the capabilities set (i.e.,
// via the `setcap` utility), and on VFS support. Running as root has all
// capabilities set automatically.
func checkCaps(logger *verboseLogger) {
	caps := new(capsV3)
	caps.hdr.version = _LINUX_CAPABILITY_VERSION_3

	// Use RawSyscall since we do not expect it to block.
	_, _, e1 := unix.RawSyscall(unix.SYS_CAPGET, uintptr(unsafe.Pointer(&caps.hdr)), uintptr(unsafe.Pointer(&caps.data)), 0)
	if e1 != 0 {
		logger.Println("capget() failed:", e1.Error())
		return
	}

	if (caps.data[0].effective&CAP_SYS_RAWIO == 0) && (caps.data[0].effective&CAP_SYS_ADMIN == 0) {
		logger.Println("Neither cap_sys_rawio nor cap_sys_admin are in effect. Device access will probably fail.")
	}
}

// verboseLogger gates diagnostic output behind -v, the same verbosity
// switch the smartctl reference implementation uses.
type verboseLogger struct {
	*log.Logger
	enabled bool
}

func (l *verboseLogger) Println(v ...interface{}) {
	if l.enabled {
		l.Logger.Println(v...)
	}
}

func scanAdapters(out io.Writer) {
	adapters, err := romacq.ScanAdapters()
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	for _, a := range adapters {
		fmt.Fprintf(out, "%s: vendor=%#04x device=%#04x\n", a.Address, a.VendorID, a.DeviceID)
	}
}

func printParsed(out io.Writer, p *nvbios.ParsedBios) {
	fmt.Fprintf(out, "Architecture:    %s\n", p.Identity.Arch)
	fmt.Fprintf(out, "Device ID:       %#04x (%s)\n", p.Identity.DeviceID, p.Identity.AdapterName)
	fmt.Fprintf(out, "Subvendor ID:    %#04x (%s)\n", p.Identity.SubvendorID, p.Identity.VendorName)
	fmt.Fprintf(out, "Version:         %s\n", p.Version.VersionString)
	if p.Version.VersionStringV2 != "" {
		fmt.Fprintf(out, "Version (v2):    %s\n", p.Version.VersionStringV2)
	}
	fmt.Fprintf(out, "Sign-on:         %s\n", p.SignOn)
	fmt.Fprintf(out, "ROM size:        %s (checksum ok: %v)\n", utils.FormatBytes(uint64(p.Image.RomSize)), p.ChecksumOK)

	if len(p.PerfTable) > 0 {
		fmt.Fprintln(out, "Performance levels:")
		for i, lvl := range p.PerfTable {
			fmt.Fprintf(out, "  [%d] nvclk=%dMHz memclk=%dMHz fan=%d%% volt=%.2fV active=%v\n",
				i, lvl.NvClk, lvl.MemClk, lvl.FanSpeed, lvl.Voltage, lvl.Active)
		}
	}

	if len(p.VoltTable) > 0 {
		fmt.Fprintln(out, "Voltage table:")
		for i, v := range p.VoltTable {
			fmt.Fprintf(out, "  [%d] vid=%#02x volt=%.2fV\n", i, v.VID, v.Voltage)
		}
	}

	for _, d := range p.Diagnostics {
		fmt.Fprintf(out, "diagnostic: %v\n", d)
	}
}

func main() {
	fmt.Println("Go nvbios-inspect Reference Implementation")
	fmt.Printf("Built with %s on %s (%s)\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	file := flag.String("file", "", "Path to a dumped ROM image")
	device := flag.String("device", "", "PCI address of a card to read the ROM from via sysfs, e.g., 0000:01:00.0")
	pramin := flag.Bool("pramin", false, "Fall back to PRAMIN shadow-copy acquisition for -device")
	scan := flag.Bool("scan", false, "Scan for display-controller adapters")
	namedbPath := flag.String("namedb", "", "Path to a namedb YAML file (default: built-in table)")
	dump := flag.String("dump", "", "Write the acquired ROM image to this path instead of inspecting it")
	verbose := flag.Bool("v", false, "Verbose diagnostics")
	flag.Parse()

	logger := &verboseLogger{Logger: log.New(os.Stderr, "", 0), enabled: *verbose}
	checkCaps(logger)

	switch {
	case *scan:
		scanAdapters(os.Stdout)
		return
	case *file != "":
		b, err := romacq.OpenFile(*file)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer b.Close()
		if *dump != "" {
			dumpROM(b, *dump)
			return
		}
		inspect(b, *namedbPath)
	case *device != "":
		var b romacq.Backend
		var err error
		if *pramin {
			b, err = romacq.OpenPramin(*device)
		} else {
			b, err = romacq.OpenProm(*device)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		defer b.Close()
		if *dump != "" {
			dumpROM(b, *dump)
			return
		}
		inspect(b, *namedbPath)
	default:
		flag.PrintDefaults()
		os.Exit(1)
	}
}

// dumpROM writes the backend-acquired ROM bytes verbatim to path, the
// acquisition-side counterpart to the reference decoder's bios.c dump_bios:
// a plain byte-for-byte image write, with no checksum fix-up or patching.
func dumpROM(b romacq.Backend, path string) {
	buf, romLen, err := b.ReadROM()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if uint32(len(buf)) < romLen {
		romLen = uint32(len(buf))
	}
	if err := os.WriteFile(path, buf[:romLen], 0644); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", romLen, path)
}

func inspect(b romacq.Backend, namedbPath string) {
	buf, romLen, err := b.ReadROM()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db := namedb.Default()
	if namedbPath != "" {
		loaded, err := namedb.Load(namedbPath)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		db = loaded
	}

	p, err := nvbios.Parse(buf, romLen, db)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	printParsed(os.Stdout, p)
}
