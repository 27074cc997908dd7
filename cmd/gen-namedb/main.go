// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// gen-namedb serializes the package namedb default lookup table to a file,
// in either YAML or TOML.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/dswarbrick/nvbios/namedb"
)

func main() {
	outFilename := flag.String("out", "namedb.yaml", "Output filename")
	useTOML := flag.Bool("toml", false, "Write TOML instead of YAML")
	flag.Parse()

	destFile, err := os.Create(*outFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create output: %v\n", err)
		os.Exit(1)
	}
	defer destFile.Close()

	db := namedb.Default()

	if *useTOML {
		enc := toml.NewEncoder(destFile)
		if err := enc.Encode(db); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding toml: %v\n", err)
			os.Exit(1)
		}
	} else {
		enc := yaml.NewEncoder(destFile)
		if err := enc.Encode(db); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding yaml: %v\n", err)
			os.Exit(1)
		}
		enc.Close()
	}

	fmt.Printf("Wrote %d adapters and %d vendors to %s\n", len(db.Adapters), len(db.Vendors), *outFilename)
}
