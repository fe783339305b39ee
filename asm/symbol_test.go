// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestScopeOf(t *testing.T) {
	cases := []struct {
		raw  string
		want Scope
	}{
		{".local", ScopePrivate},
		{"loop::", ScopeGlobal},
		{"loop:", ScopeLocal},
		{"loop", ScopeLocal},
	}
	for _, c := range cases {
		if got := ScopeOf(c.raw); got != c.want {
			t.Errorf("ScopeOf(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		".loop":  "LOOP",
		"loop::": "LOOP",
		"loop:":  "LOOP",
		"Loop":   "LOOP",
	}
	for raw, want := range cases {
		if got := CleanName(raw); got != want {
			t.Errorf("CleanName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSymbolTableAddLookup(t *testing.T) {
	st := NewSymbolTable()

	global := &Symbol{Name: CleanName("Start::"), Scope: ScopeGlobal, Value: 0x150}
	if err := st.Add(global, "MAIN"); err != nil {
		t.Fatalf("Add(global): %v", err)
	}
	if sym, ok := st.Lookup("START", ""); !ok || sym.Value != 0x150 {
		t.Errorf("Lookup(START) = %+v, %v", sym, ok)
	}

	local := &Symbol{Name: CleanName("loop:"), Scope: ScopeLocal, Value: 0x200}
	if err := st.Add(local, "MAIN"); err != nil {
		t.Fatalf("Add(local): %v", err)
	}

	priv1 := &Symbol{Name: CleanName(".inner"), Scope: ScopePrivate, Value: 0x210}
	if err := st.Add(priv1, "MAIN"); err != nil {
		t.Fatalf("Add(private MAIN): %v", err)
	}
	priv2 := &Symbol{Name: CleanName(".inner"), Scope: ScopePrivate, Value: 0x310}
	if err := st.Add(priv2, "OTHER"); err != nil {
		t.Fatalf("Add(private OTHER): %v", err)
	}

	sym, ok := st.Lookup(".inner", "MAIN")
	if !ok || sym.Value != 0x210 {
		t.Errorf("Lookup(.inner, MAIN) = %+v, %v, want 0x210", sym, ok)
	}
	sym, ok = st.Lookup(".inner", "OTHER")
	if !ok || sym.Value != 0x310 {
		t.Errorf("Lookup(.inner, OTHER) = %+v, %v, want 0x310", sym, ok)
	}

	if _, ok := st.Lookup(".inner", ""); ok {
		t.Errorf("Lookup(.inner, \"\") should fail without a major")
	}
}

func TestSymbolTableDuplicate(t *testing.T) {
	st := NewSymbolTable()
	a := &Symbol{Name: "LOOP", Scope: ScopeLocal, Value: 0x100}
	b := &Symbol{Name: "LOOP", Scope: ScopeLocal, Value: 0x200}
	if err := st.Add(a, ""); err != nil {
		t.Fatalf("Add(a): %v", err)
	}
	if err := st.Add(b, ""); err == nil {
		t.Fatalf("Add(b) should fail: duplicate address symbol")
	}
}

func TestSymbolTableConstantRedefinitionIdempotent(t *testing.T) {
	st := NewSymbolTable()
	a := &Symbol{Name: "MAXHP", Scope: ScopeLocal, Value: 99, IsConstant: true}
	b := &Symbol{Name: "MAXHP", Scope: ScopeLocal, Value: 99, IsConstant: true}
	if err := st.Add(a, ""); err != nil {
		t.Fatalf("Add(a): %v", err)
	}
	if err := st.Add(b, ""); err != nil {
		t.Errorf("re-adding identical constant should be idempotent, got %v", err)
	}

	c := &Symbol{Name: "MAXHP", Scope: ScopeLocal, Value: 100, IsConstant: true}
	if err := st.Add(c, ""); err == nil {
		t.Errorf("re-adding constant with a different value should fail")
	}
}

func TestSymbolTablePurgeAndClear(t *testing.T) {
	st := NewSymbolTable()
	sym := &Symbol{Name: "TEMP", Scope: ScopeLocal, Value: 1}
	if err := st.Add(sym, ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	st.Remove("TEMP", "")
	if _, ok := st.Lookup("TEMP", ""); ok {
		t.Errorf("TEMP should be purged")
	}

	st.Add(&Symbol{Name: "A", Scope: ScopeGlobal}, "")
	st.Clear()
	if len(st.Globals()) != 0 {
		t.Errorf("Clear should empty the table")
	}
}

func TestSymbolTableIterators(t *testing.T) {
	st := NewSymbolTable()
	st.Add(&Symbol{Name: "G1", Scope: ScopeGlobal}, "")
	st.Add(&Symbol{Name: "G2", Scope: ScopeGlobal}, "")
	st.Add(&Symbol{Name: "L1", Scope: ScopeLocal}, "")
	st.Add(&Symbol{Name: "P1", Scope: ScopePrivate}, "MAJOR")
	st.Add(&Symbol{Name: "P2", Scope: ScopePrivate}, "MAJOR")
	st.Add(&Symbol{Name: "P1", Scope: ScopePrivate}, "OTHER")

	if len(st.Globals()) != 2 {
		t.Errorf("Globals() = %d, want 2", len(st.Globals()))
	}
	if len(st.Locals()) != 1 {
		t.Errorf("Locals() = %d, want 1", len(st.Locals()))
	}
	if len(st.Privates("MAJOR")) != 2 {
		t.Errorf("Privates(MAJOR) = %d, want 2", len(st.Privates("MAJOR")))
	}
	if len(st.Privates("OTHER")) != 1 {
		t.Errorf("Privates(OTHER) = %d, want 1", len(st.Privates("OTHER")))
	}
}
