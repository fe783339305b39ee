// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// Scope is one of a symbol's three visibility classes.
type Scope byte

const (
	ScopePrivate Scope = iota // ".name:" — visible only inside its enclosing major symbol
	ScopeLocal                // bare identifier or trailing single ":"
	ScopeGlobal               // trailing "::"
)

func (s Scope) String() string {
	switch s {
	case ScopePrivate:
		return "private"
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Symbol is a named value: either a code address or an EQU constant.
type Symbol struct {
	Name       string // cleaned, uppercased name as stored in the table
	Value      uint16
	Scope      Scope
	IsConstant bool
}

// SymbolTable holds every equate and label seen during assembly. Keys
// are the cleaned, upper-cased name; a PRIVATE symbol is additionally
// prefixed with its enclosing major symbol's name so it cannot shadow
// another major's private of the same bare name — the composite-key
// trick mirrors a scope-prefixed label-storage pattern seen elsewhere
// in this codebase's lineage (composing a scope label with the bare
// name before storing it).
type SymbolTable struct {
	table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Symbol)}
}

// CleanName strips a label's scope decoration (leading "." and trailing
// ":"/"::") and upper-cases what remains.
func CleanName(raw string) string {
	s := strings.ToUpper(raw)
	s = strings.TrimPrefix(s, ".")
	s = strings.TrimRight(s, ":")
	return s
}

// key computes the lookup key for a symbol, applying the private
// composite-key scheme when scope is ScopePrivate.
func key(cleaned string, scope Scope, major string) string {
	if scope == ScopePrivate {
		return major + "\x00" + cleaned
	}
	return cleaned
}

// DuplicateSymbolError reports an Add whose key is already taken, other
// than an EQU constant re-added with the same value.
type DuplicateSymbolError struct {
	Name string
}

func (e *DuplicateSymbolError) Error() string {
	return "duplicate symbol: " + e.Name
}

// Add inserts sym into the table, keyed by its cleaned name (composite
// with the current major for PRIVATE symbols). Adding an existing
// address-defined key is a DuplicateSymbolError; re-adding an EQU
// constant with the same value is idempotent.
func (t *SymbolTable) Add(sym *Symbol, major string) error {
	k := key(sym.Name, sym.Scope, major)
	if existing, found := t.table[k]; found {
		if existing.IsConstant && sym.IsConstant && existing.Value == sym.Value {
			return nil
		}
		return &DuplicateSymbolError{Name: sym.Name}
	}
	t.table[k] = sym
	return nil
}

// Lookup finds a symbol by raw (possibly decorated) name. currentMajor
// supplies the enclosing major symbol needed to resolve a private
// reference; it is ignored for local/global lookups.
func (t *SymbolTable) Lookup(raw, currentMajor string) (*Symbol, bool) {
	cleaned := CleanName(raw)
	if strings.HasPrefix(raw, ".") {
		sym, ok := t.table[key(cleaned, ScopePrivate, currentMajor)]
		return sym, ok
	}
	sym, ok := t.table[cleaned]
	return sym, ok
}

// Remove deletes the named symbol, used by PURGE.
func (t *SymbolTable) Remove(raw, currentMajor string) {
	cleaned := CleanName(raw)
	if strings.HasPrefix(raw, ".") {
		delete(t.table, key(cleaned, ScopePrivate, currentMajor))
		return
	}
	delete(t.table, cleaned)
}

// Clear empties the table.
func (t *SymbolTable) Clear() {
	t.table = make(map[string]*Symbol)
}

// Globals returns every symbol with GLOBAL scope.
func (t *SymbolTable) Globals() []*Symbol {
	return t.filter(ScopeGlobal)
}

// Locals returns every symbol with LOCAL scope.
func (t *SymbolTable) Locals() []*Symbol {
	return t.filter(ScopeLocal)
}

// Privates returns every PRIVATE symbol belonging to the given major.
func (t *SymbolTable) Privates(major string) []*Symbol {
	var out []*Symbol
	prefix := major + "\x00"
	for k, sym := range t.table {
		if sym.Scope == ScopePrivate && strings.HasPrefix(k, prefix) {
			out = append(out, sym)
		}
	}
	return out
}

func (t *SymbolTable) filter(scope Scope) []*Symbol {
	var out []*Symbol
	for _, sym := range t.table {
		if sym.Scope == scope {
			out = append(out, sym)
		}
	}
	return out
}

// ScopeOf determines a label's scope from its decoration: a leading "."
// marks PRIVATE, a trailing "::" marks GLOBAL, anything else
// (bare or single trailing ":") is LOCAL.
func ScopeOf(raw string) Scope {
	switch {
	case strings.HasPrefix(raw, "."):
		return ScopePrivate
	case strings.HasSuffix(raw, "::"):
		return ScopeGlobal
	default:
		return ScopeLocal
	}
}
