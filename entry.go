// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmgisa

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry describes one (mnemonic, operand1?, operand2?) row of the
// instruction table: a single opcode byte value (or, for the CB-prefixed
// family, a value ≥ 0x100 whose high byte is the 0xCB prefix and whose
// low byte is the sub-opcode) plus the metadata needed to encode and
// disassemble it.
//
// This is the "flat match table keyed by a canonical operand-signature
// tuple" the design notes call for: rather than nesting nested maps
// keyed by operand text, every (mnemonic, operand1, operand2) combination
// is its own row, and the encoder filters rows by mnemonic and then
// matches operand text against Operand1/Operand2 directly.
type Entry struct {
	Mnemonic string   // e.g. "LD", "JR", "NOP" (always upper-case)
	Operand1 string   // exact table key, e.g. "BC", "(HL+)", "d16", "NZ", "#$08", or ""
	Operand2 string   // exact table key, or ""
	Opcode   int      // opcode value; >= 0x100 marks the CB-prefixed family
	Length   byte     // total encoded length including opcode byte(s)
	Cycles   []int    // cycle counts (2 entries when a branch can be taken or not)
	Flags    [4]string // Z, N, H, C flag effects, e.g. "Z","0","H","C","-","1"
}

// OpcodeBytes returns the opcode byte sequence for the given opcode
// value. Values >= 0x100 belong to the CB-prefixed family and are
// emitted prefix-byte-first; other values are a single byte.
func OpcodeBytes(opcode int) []byte {
	if opcode >= 0x100 {
		return []byte{byte(opcode >> 8), byte(opcode)}
	}
	return []byte{byte(opcode)}
}

// Set is a loaded instruction table: entries indexed both by mnemonic
// (for the encoder) and by opcode value (for the disassembler).
type Set struct {
	byMnemonic map[string][]*Entry
	byOpcode   map[int]*Entry
	all        []*Entry
}

func newSet() *Set {
	return &Set{
		byMnemonic: make(map[string][]*Entry),
		byOpcode:   make(map[int]*Entry),
	}
}

func (s *Set) add(e *Entry) {
	s.byMnemonic[e.Mnemonic] = append(s.byMnemonic[e.Mnemonic], e)
	s.byOpcode[e.Opcode] = e
	s.all = append(s.all, e)
}

// Lookup returns every table row for the given mnemonic (case
// insensitive), or nil if the mnemonic is unknown.
func (s *Set) Lookup(mnemonic string) []*Entry {
	return s.byMnemonic[strings.ToUpper(mnemonic)]
}

// Known reports whether mnemonic appears anywhere in the table.
func (s *Set) Known(mnemonic string) bool {
	return len(s.byMnemonic[strings.ToUpper(mnemonic)]) > 0
}

// ByOpcode returns the entry for an exact opcode value (see Entry.Opcode
// for the CB-prefix convention), used by the disassembler.
func (s *Set) ByOpcode(opcode int) (*Entry, bool) {
	e, ok := s.byOpcode[opcode]
	return e, ok
}

// All returns every entry in the table, in load order.
func (s *Set) All() []*Entry {
	return s.all
}

// jsonEntry mirrors the on-disk schema: a JSON object keyed by
// "0xNN" (or "0x1NN" for the CB-prefixed family) whose values carry the
// mnemonic and operand metadata.
type jsonEntry struct {
	Mnemonic string `json:"mnemonic"`
	Operand1 string `json:"operand1,omitempty"`
	Operand2 string `json:"operand2,omitempty"`
	Length   int    `json:"length"`
	Cycles   []int  `json:"cycles"`
	Flags    [4]string `json:"flags"`
}

// Load parses a JSON instruction-set document and builds a Set from it.
// The entry with mnemonic "PREFIX" is skipped; CB dispatch is encoded
// structurally via opcode values >= 0x100, not via a separate prefix
// entry.
func Load(r io.Reader) (*Set, error) {
	var raw map[string]jsonEntry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("dmgisa: decode instruction set: %w", err)
	}

	s := newSet()
	for key, je := range raw {
		if je.Mnemonic == "PREFIX" {
			continue
		}
		opcode, err := parseOpcodeKey(key)
		if err != nil {
			return nil, err
		}
		if opcode >= 0x100 && opcode < 0x200 {
			// "0x1NN" names CB-prefixed sub-opcode NN; store it as 0xCBNN.
			opcode = 0xCB00 | (opcode & 0xFF)
		}
		s.add(&Entry{
			Mnemonic: strings.ToUpper(je.Mnemonic),
			Operand1: je.Operand1,
			Operand2: je.Operand2,
			Opcode:   opcode,
			Length:   byte(je.Length),
			Cycles:   je.Cycles,
			Flags:    je.Flags,
		})
	}
	return s, nil
}

func parseOpcodeKey(key string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(key, "0x"), "0X")
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("dmgisa: bad opcode key %q: %w", key, err)
	}
	return int(v), nil
}
