// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	dmgisa "github.com/dmgasm/dmgasm"
)

// resolverMnemonics is the set of mnemonics C7 knows how to fix up; any
// other mnemonic reaching the resolver was never "resolvable via label"
// to begin with and is passed through as a hard UnresolvedSymbol error.
var resolverMnemonics = map[string]bool{
	"JR": true, "JP": true, "CALL": true, "LD": true, "LDH": true, "ADD": true,
}

// Resolve fixes up a pass-1 UNRESOLVED instruction now that the symbol
// table is complete: it substitutes the forward label's resolved value
// for the operand that blocked pass-1 encoding and re-invokes Encode.
//
// instrAddr is the absolute address of the instruction's opcode byte;
// major is the enclosing major symbol for private-label lookup.
func Resolve(set *dmgisa.Set, symtab *SymbolTable, mnemonic string, operands []string,
	unresolvedIndex int, unresolvedName string, instrAddr uint16, major string, line int) (*EncodeResult, error) {

	if !resolverMnemonics[mnemonic] {
		return nil, &UnresolvedSymbolError{Name: unresolvedName, Line: line}
	}

	name, hadParens := stripParens(unresolvedName)
	sym, ok := symtab.Lookup(name, major)
	if !ok {
		return nil, &UnresolvedSymbolError{Name: unresolvedName, Line: line}
	}

	rewritten := make([]string, len(operands))
	copy(rewritten, operands)

	if mnemonic == "JR" {
		instrLen := 2
		pcAtNext := int(instrAddr) + instrLen
		displacement := int(sym.Value) - pcAtNext
		if displacement < -128 || displacement > 127 {
			return nil, &DisplacementOutOfRangeError{Displacement: displacement, Line: line}
		}
		rewritten[unresolvedIndex] = fmt.Sprintf("%d", uint8(int8(displacement)))
	} else {
		literal := fmt.Sprintf("$%04X", sym.Value)
		if hadParens {
			literal = "(" + literal + ")"
		}
		rewritten[unresolvedIndex] = literal
	}

	return Encode(set, mnemonic, rewritten, line)
}
