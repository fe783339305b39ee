// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"io"

	dmgisa "github.com/dmgasm/dmgasm"
)

// errParse is the sentinel Assemble returns whenever one or more hard
// diagnostics were recorded; callers inspect Assembler.Errors() for
// the line-tagged detail.
var errParse = errors.New("asm: assembly failed")

// Result is the contract an out-of-scope ROM/object-file writer would
// consume: the final resolved byte stream in source order, the
// completed section map, and any EXPORT/GLOBAL-requested symbol
// addresses.
type Result struct {
	Code     []byte
	Sections []SectionResult
	Exports  []dmgisa.Export
}

// Assembler drives the two-pass pipeline: pass 1 tokenizes and processes
// every line, deferring forward references as UNRESOLVED items; pass 2
// re-walks the code list, resolving deferred items against the now
// complete symbol table. Every item keeps the section offset and address
// it was given in pass 1.
type Assembler struct {
	Set     *dmgisa.Set
	p       *Processor
	code    []CodeItem
	errs    []error
	verbose bool
}

// NewAssembler creates an Assembler bound to the given instruction set.
func NewAssembler(set *dmgisa.Set) *Assembler {
	return &Assembler{Set: set, p: NewProcessor(set)}
}

// SetVerbose toggles the printf-style line/section trace.
func (a *Assembler) SetVerbose(v bool) { a.verbose = v }

// Errors returns every hard diagnostic accumulated across both passes.
func (a *Assembler) Errors() []error { return a.errs }

// Symbols exposes the completed symbol table for introspection (used by
// the console's "symbols" command).
func (a *Assembler) Symbols() *SymbolTable { return a.p.Symbols }

// Sections returns every section created during assembly, in creation
// order, including its final length.
func (a *Assembler) Sections() []SectionResult {
	out := make([]SectionResult, 0, len(a.p.sectionOrder))
	for _, name := range a.p.sectionOrder {
		s := a.p.sections[name]
		out = append(out, SectionResult{
			Name: s.Name, Kind: s.Kind, Bank: s.Bank, HasBank: s.HasBank,
			Start: s.Range.Start, Length: a.sectionLength(name),
		})
	}
	return out
}

func (a *Assembler) sectionLength(name string) int {
	max := 0
	for _, item := range a.code {
		if item.SectionName == name && item.Offset+len(item.Bytes) > max {
			max = item.Offset + len(item.Bytes)
		}
	}
	return max
}

// Assemble tokenizes r's contents, runs pass 1 and pass 2, and returns
// the final Result. A failure to read r is returned as is; any other
// non-nil error is errParse, and Errors() holds the line-tagged
// diagnostics.
func (a *Assembler) Assemble(r io.Reader) (*Result, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	nodes := Tokenize(string(text), a.Set.Known)
	a.pass1(nodes)
	if len(a.errs) > 0 {
		return nil, errParse
	}

	a.pass2()
	if len(a.errs) > 0 {
		return nil, errParse
	}

	return a.buildResult(), nil
}

func (a *Assembler) pass1(nodes []LineNode) {
	for _, n := range nodes {
		a.logLine(n)
		items, err := a.p.Process(n)
		if err != nil {
			a.errs = append(a.errs, err)
			continue
		}
		a.code = append(a.code, items...)
	}
}

func (a *Assembler) pass2() {
	var resolved []CodeItem
	for _, item := range a.code {
		switch item.Kind {
		case ItemUnresolved:
			if item.Err != nil {
				a.errs = append(a.errs, item.Err)
				continue
			}
			r, err := Resolve(a.Set, a.p.Symbols, item.Mnemonic, item.Operands,
				item.UnresolvedIndex, item.UnresolvedName, item.InstrAddr, item.Major, item.Line)
			if err != nil {
				a.errs = append(a.errs, err)
				continue
			}
			item.Bytes = r.Bytes
			item.Kind = ItemInstruction
			resolved = append(resolved, item)
		default:
			resolved = append(resolved, item)
		}
	}
	a.code = resolved
}

func (a *Assembler) buildResult() *Result {
	var code []byte
	for _, item := range a.code {
		code = append(code, item.Bytes...)
	}

	var exports []dmgisa.Export
	for _, item := range a.code {
		if item.Kind != ItemExport {
			continue
		}
		sym, ok := a.p.Symbols.Lookup(item.UnresolvedName, "")
		if !ok {
			continue
		}
		exports = append(exports, dmgisa.Export{Name: item.UnresolvedName, Address: dmgisa.Address(sym.Value)})
	}

	return &Result{Code: code, Sections: a.Sections(), Exports: exports}
}

func (a *Assembler) logLine(n LineNode) {
	if !a.verbose {
		return
	}
	fmt.Printf("line %d: %+v\n", n.Line, n)
}
