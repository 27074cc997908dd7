// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Miscellaneous utility functions shared by the nvbios command-line tools.

package utils

import "fmt"

// FormatBytes formats a uint64 byte quantity using human-readable units,
// e.g. kilobyte, megabyte.
func FormatBytes(v uint64) string {
	var i int

	// Only populate to exabyte, since we are constrained by uint64 limit.
	suffixes := [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	d := uint64(1)

	for i = 0; i < len(suffixes)-1; i++ {
		if v >= d*1000 {
			d *= 1000
		} else {
			break
		}
	}

	if i == 0 {
		return fmt.Sprintf("%d %s", v, suffixes[i])
	}
	// Print 3 significant digits.
	return fmt.Sprintf("%.3g %s", float64(v)/float64(d), suffixes[i])
}
