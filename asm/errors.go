// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// UnknownMnemonicError reports a mnemonic absent from the instruction set.
type UnknownMnemonicError struct {
	Mnemonic string
	Line     int
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("line %d: unknown mnemonic %q", e.Line, e.Mnemonic)
}

// InvalidOperandError reports an operand matched by no branch of the
// instruction decision table.
type InvalidOperandError struct {
	Mnemonic string
	Operand  string
	Line     int
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("line %d: invalid operand %q for %s", e.Line, e.Operand, e.Mnemonic)
}

// UnresolvedSymbolError reports a label absent from the symbol table at
// the end of pass 2.
type UnresolvedSymbolError struct {
	Name string
	Line int
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("line %d: unresolved symbol %q", e.Line, e.Name)
}

// DisplacementOutOfRangeError reports a JR target outside [-128,127].
type DisplacementOutOfRangeError struct {
	Displacement int
	Line         int
}

func (e *DisplacementOutOfRangeError) Error() string {
	return fmt.Sprintf("line %d: JR displacement %d outside [-128,127]", e.Line, e.Displacement)
}

// DuplicateSymbolErrorAt is the line-tagged form of DuplicateSymbolError
// that the node processor reports in user-facing diagnostics.
type DuplicateSymbolErrorAt struct {
	Name string
	Line int
}

func (e *DuplicateSymbolErrorAt) Error() string {
	return fmt.Sprintf("line %d: duplicate symbol %q", e.Line, e.Name)
}

// PurgeOfAddressError reports a PURGE naming a non-constant symbol.
type PurgeOfAddressError struct {
	Name string
	Line int
}

func (e *PurgeOfAddressError) Error() string {
	return fmt.Sprintf("line %d: PURGE of address-defined symbol %q", e.Line, e.Name)
}
