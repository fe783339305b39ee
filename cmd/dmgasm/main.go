// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dmgasm is a cross-assembler for the LR35902 CPU: it reads one
// or more source files, assembles each independently, and writes the
// resulting binary to disk or stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	dmgisa "github.com/dmgasm/dmgasm"
	"github.com/dmgasm/dmgasm/asm"
	"github.com/dmgasm/dmgasm/console"
)

func main() {
	interactive := flag.Bool("i", false, "start the interactive console instead of assembling files")
	out := flag.String("o", "", "write the assembled binary here instead of stdout (single-file mode only)")
	verbose := flag.Bool("v", false, "trace each source line as it is processed")
	flag.Parse()

	if *interactive {
		console.New().Run(os.Stdin, os.Stdout)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: dmgasm [-i] [-o output] [-v] <file>...")
		os.Exit(1)
	}
	if *out != "" && len(args) > 1 {
		exitOnError(fmt.Errorf("-o may only be used with a single input file"))
	}

	set := dmgisa.Default()
	for _, filename := range args {
		if err := assembleFile(set, filename, *out, *verbose); err != nil {
			exitOnError(err)
		}
	}
}

func assembleFile(set *dmgisa.Set, filename, out string, verbose bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	a := asm.NewAssembler(set)
	a.SetVerbose(verbose)

	res, err := a.Assemble(f)
	if err != nil {
		for _, e := range a.Errors() {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filename, e)
		}
		return err
	}

	w := os.Stdout
	if out != "" {
		wf, err := os.Create(out)
		if err != nil {
			return err
		}
		defer wf.Close()
		w = wf
	}
	_, err = w.Write(res.Code)
	return err
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
