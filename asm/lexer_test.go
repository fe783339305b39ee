// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func knownMnemonics(names ...string) func(string) bool {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(s string) bool { return set[s] }
}

func TestTokenizeSkipsBlankAndComment(t *testing.T) {
	known := knownMnemonics("NOP")
	nodes := Tokenize("\n; just a comment\n* also a comment\n   \nNOP\n", known)
	if len(nodes) != 1 {
		t.Fatalf("Tokenize = %d nodes, want 1", len(nodes))
	}
	if nodes[0].Kind != NodeInstruction || nodes[0].Mnemonic != "NOP" {
		t.Errorf("node = %+v", nodes[0])
	}
}

func TestTokenizeDirective(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize(`SECTION "X",ROM0`, known)
	if len(nodes) != 1 || nodes[0].Kind != NodeDirective || nodes[0].Name != "SECTION" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestTokenizeStorage(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize(`DB $FF,$00`, known)
	if len(nodes) != 1 || nodes[0].Kind != NodeStorage || nodes[0].Name != "DB" {
		t.Fatalf("got %+v", nodes)
	}
	if len(nodes[0].Args) != 2 || nodes[0].Args[0] != "$FF" || nodes[0].Args[1] != "$00" {
		t.Errorf("args = %v", nodes[0].Args)
	}
}

func TestTokenizeStorageStringPreservesCommasAndCase(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize(`DB "a,b",2`, known)
	if len(nodes) != 1 || nodes[0].Kind != NodeStorage {
		t.Fatalf("got %+v", nodes)
	}
	if len(nodes[0].Args) != 2 || nodes[0].Args[0] != `"a,b"` || nodes[0].Args[1] != "2" {
		t.Errorf("args = %v, want [\"a,b\" 2]", nodes[0].Args)
	}
}

func TestTokenizeCharacterLiteralPreservesCaseAndComma(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize(`DB 'a',','`, known)
	if len(nodes) != 1 || nodes[0].Kind != NodeStorage {
		t.Fatalf("got %+v", nodes)
	}
	if len(nodes[0].Args) != 2 || nodes[0].Args[0] != "'a'" || nodes[0].Args[1] != "','" {
		t.Errorf("args = %v, want ['a' ',']", nodes[0].Args)
	}
}

func TestTokenizeInstructionWithIndirectOperand(t *testing.T) {
	known := knownMnemonics("LD")
	nodes := Tokenize("ld a,(hl+)", known)
	if len(nodes) != 1 || nodes[0].Kind != NodeInstruction {
		t.Fatalf("got %+v", nodes)
	}
	if len(nodes[0].Args) != 2 || nodes[0].Args[0] != "A" || nodes[0].Args[1] != "(HL+)" {
		t.Errorf("args = %v", nodes[0].Args)
	}
}

func TestTokenizeLabel(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize(".loop:", known)
	if len(nodes) != 1 || nodes[0].Kind != NodeLabel || nodes[0].Name != ".LOOP:" {
		t.Fatalf("got %+v", nodes)
	}
}

func TestTokenizeCompoundLabelPlusInstruction(t *testing.T) {
	known := knownMnemonics("LD")
	nodes := Tokenize(".start: ld HL,BIGVAL", known)
	if len(nodes) != 1 || nodes[0].Kind != NodeCompound {
		t.Fatalf("got %+v", nodes)
	}
	if len(nodes[0].Parts) != 2 || nodes[0].Parts[0].Kind != NodeLabel || nodes[0].Parts[1].Kind != NodeInstruction {
		t.Errorf("parts = %+v", nodes[0].Parts)
	}
}

func TestTokenizeDoubleLabelIsInvalid(t *testing.T) {
	known := knownMnemonics()
	nodes := Tokenize("foo: bar:", known)
	if len(nodes) != 1 || nodes[0].Kind != NodeInvalid {
		t.Fatalf("got %+v, want Invalid", nodes)
	}
}

func TestTokenizePreservesLineNumbers(t *testing.T) {
	known := knownMnemonics("NOP")
	nodes := Tokenize("NOP\n\nNOP\n", known)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	if nodes[0].Line != 1 || nodes[1].Line != 3 {
		t.Errorf("line numbers = %d, %d, want 1, 3", nodes[0].Line, nodes[1].Line)
	}
}
