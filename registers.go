// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmgisa

// Reg8 and Reg16 enumerate the CPU's general-purpose registers. They are
// exported mainly so other packages can range over a canonical ordering
// (the disassembler and the console use them); the assembler itself
// matches register operands by text, not by these constants.
type Reg8 byte

const (
	RegA Reg8 = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

var reg8Names = [...]string{"A", "B", "C", "D", "E", "H", "L"}

func (r Reg8) String() string { return reg8Names[r] }

// Reg16 is a 16-bit register pair.
type Reg16 byte

const (
	RegBC Reg16 = iota
	RegDE
	RegHL
	RegSP
	RegAF
	RegPC
)

var reg16Names = [...]string{"BC", "DE", "HL", "SP", "AF", "PC"}

func (r Reg16) String() string { return reg16Names[r] }

// registers8 and registers16 are the text keys that can appear verbatim
// as table operand keys. They double as the membership test that
// distinguishes "this operand is a register" from "this operand is a
// label or number", per the data model's Register type.
var registers8 = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true, "H": true, "L": true,
}

var registers16 = map[string]bool{
	"BC": true, "DE": true, "HL": true, "SP": true, "AF": true, "PC": true,
}

// indirects are the indirect/autoincrement register forms: (HL), (HL+),
// (HL-), (BC), (DE), (C).
var indirects = map[string]bool{
	"(HL)": true, "(HL+)": true, "(HL-)": true,
	"(BC)": true, "(DE)": true, "(C)": true,
}

// conditions are the branch condition codes. Note that the bare text "C"
// is ambiguous between the 8-bit register C and the carry condition; the
// instruction table resolves the ambiguity implicitly, since matching is
// by literal operand text against the candidate entries for a mnemonic,
// not by an independently-decided operand kind.
var conditions = map[string]bool{"NZ": true, "Z": true, "NC": true, "C": true}

// IsRegister reports whether s is a recognized register, indirect
// register form, or condition code — any token the lexer and encoder
// must treat as a literal operand rather than a number or label.
func IsRegister(s string) bool {
	return registers8[s] || registers16[s] || indirects[s] || conditions[s]
}

// IsCondition reports whether s is one of the four branch conditions.
func IsCondition(s string) bool {
	return conditions[s]
}
