// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"

	dmgisa "github.com/dmgasm/dmgasm"
)

// Processor dispatches tokenized LineNodes (C2) to the expression,
// symbol-table, section/storage, and encoder layers (C1/C3/C4/C5),
// producing Code items. It owns the process-wide instruction pointer,
// current section, and current major symbol for private-label scoping.
type Processor struct {
	Set     *dmgisa.Set
	Symbols *SymbolTable

	sections     map[string]*Section
	sectionOrder []string
	current      *Section
	ip           IP
	major        string

	exports []string
	forceGlobal map[string]bool
}

// NewProcessor creates a Processor bound to the given instruction set.
func NewProcessor(set *dmgisa.Set) *Processor {
	return &Processor{
		Set:         set,
		Symbols:     NewSymbolTable(),
		sections:    make(map[string]*Section),
		forceGlobal: make(map[string]bool),
	}
}

// Process dispatches a single LineNode, returning zero or more Code
// items. A returned error is a hard, line-bound diagnostic; it does not
// stop Process from being called again on subsequent nodes (C8 collects
// diagnostics across the whole pass).
func (p *Processor) Process(n LineNode) ([]CodeItem, error) {
	switch n.Kind {
	case NodeDirective:
		return p.processDirective(n)
	case NodeStorage:
		return p.processStorage(n)
	case NodeInstruction:
		return p.processInstruction(n)
	case NodeLabel:
		return p.processLabel(n)
	case NodeCompound:
		return p.processCompound(n)
	case NodeInvalid:
		return []CodeItem{{Kind: ItemUnresolved, Line: n.Line, Err: &LexSyntaxError{Text: n.Raw, Line: n.Line}}}, nil
	default:
		return nil, nil
	}
}

// LexSyntaxError reports a malformed line that the tokenizer could not
// classify into any known shape.
type LexSyntaxError struct {
	Text string
	Line int
}

func (e *LexSyntaxError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": malformed line: " + e.Text
}

func (p *Processor) processDirective(n LineNode) ([]CodeItem, error) {
	switch n.Name {
	case "SECTION":
		return p.processSection(n)
	case "EXPORT", "GLOBAL":
		return p.processExport(n)
	case "PURGE":
		return nil, p.processPurge(n)
	case "ORG":
		return p.processOrg(n)
	case "EQU", "SET":
		// Reached only when EQU appears without a preceding label on the
		// same line, which the data model does not allow.
		return nil, &LexSyntaxError{Text: n.Name, Line: n.Line}
	case "MACRO", "ENDM", "UNION", "NEXTU", "ENDU", "INCBIN":
		return nil, &UnsupportedDirectiveError{Name: n.Name, Line: n.Line}
	default:
		return nil, &LexSyntaxError{Text: n.Name, Line: n.Line}
	}
}

// UnsupportedDirectiveError reports a recognized-but-unimplemented
// directive keyword (MACRO/ENDM, UNION/NEXTU/ENDU, INCBIN).
type UnsupportedDirectiveError struct {
	Name string
	Line int
}

func (e *UnsupportedDirectiveError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": directive " + e.Name + " is not supported"
}

func (p *Processor) processSection(n LineNode) ([]CodeItem, error) {
	if len(n.Args) < 2 {
		return nil, &SectionTypeError{Msg: "SECTION requires a name and a kind"}
	}
	name := trimQuotes(n.Args[0])
	kindTok := n.Args[1]
	kindName, startOverride, _, _, err := parseKindQualifier(kindTok)
	if err != nil {
		return nil, err
	}
	kind, ok := ParseKind(kindName)
	if !ok {
		return nil, &SectionTypeError{Msg: "unknown section kind " + kindName}
	}
	sec, err := NewSection(name, kind, startOverride)
	if err != nil {
		return nil, err
	}
	for _, extra := range n.Args[2:] {
		if bank, ok := parseBankQualifier(extra); ok {
			if err := sec.WithBank(bank); err != nil {
				return nil, err
			}
		}
	}

	p.current = sec
	p.sections[name] = sec
	p.sectionOrder = append(p.sectionOrder, name)
	p.ip.EnterSection(sec)

	return []CodeItem{{Kind: ItemSection, Line: n.Line, SectionName: name, Offset: 0}}, nil
}

func (p *Processor) processExport(n LineNode) ([]CodeItem, error) {
	var items []CodeItem
	for _, name := range n.Args {
		cleaned := CleanName(name)
		p.exports = append(p.exports, cleaned)
		if n.Name == "GLOBAL" {
			p.forceGlobal[cleaned] = true
			if sym, ok := p.Symbols.Lookup(cleaned, ""); ok {
				sym.Scope = ScopeGlobal
			}
		}
		items = append(items, CodeItem{Kind: ItemExport, Line: n.Line, UnresolvedName: cleaned})
	}
	return items, nil
}

func (p *Processor) processPurge(n LineNode) error {
	for _, name := range n.Args {
		sym, ok := p.Symbols.Lookup(name, p.major)
		if !ok {
			continue
		}
		if !sym.IsConstant {
			return &PurgeOfAddressError{Name: CleanName(name), Line: n.Line}
		}
		p.Symbols.Remove(name, p.major)
	}
	return nil
}

func (p *Processor) processOrg(n LineNode) ([]CodeItem, error) {
	if len(n.Args) != 1 {
		return nil, &LexSyntaxError{Text: "ORG", Line: n.Line}
	}
	e, err := ParseExpression(n.Args[0])
	if err != nil {
		return nil, err
	}
	v, _ := e.ToDecimal()
	if p.current == nil {
		return nil, &SectionTypeError{Msg: "ORG outside any SECTION"}
	}
	if uint16(v) < p.current.Range.Start || uint16(v) > p.current.Range.End {
		return nil, &SectionTypeError{Msg: "ORG target outside current section bounds"}
	}
	p.ip.Location = uint16(v)
	return nil, nil
}

func (p *Processor) processStorage(n LineNode) ([]CodeItem, error) {
	if p.current == nil {
		return nil, &SectionTypeError{Msg: "storage directive outside any SECTION"}
	}
	var bytes []byte
	var err error
	switch n.Name {
	case "DS":
		bytes, err = p.encodeDSArgs(n.Args)
	case "DB":
		bytes, err = EncodeDB(n.Args)
	case "DW":
		bytes, err = EncodeDW(n.Args)
	case "DL":
		bytes, err = EncodeDL(n.Args)
	}
	if err != nil {
		return nil, err
	}
	item := CodeItem{Kind: ItemStorage, Line: n.Line, SectionName: p.current.Name, Offset: int(p.ip.Offset()), Bytes: bytes}
	p.ip.Advance(len(bytes))
	return []CodeItem{item}, nil
}

func (p *Processor) encodeDSArgs(args []string) ([]byte, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, &StorageError{Msg: "DS requires a count and an optional fill"}
	}
	ne, err := ParseExpression(args[0])
	if err != nil {
		return nil, err
	}
	nv, _ := ne.ToDecimal()
	fill := 0
	if len(args) == 2 {
		fe, err := ParseExpression(args[1])
		if err != nil {
			return nil, err
		}
		fv, _ := fe.ToDecimal()
		fill = int(fv)
	}
	return EncodeDS(int(nv), fill)
}

func (p *Processor) processInstruction(n LineNode) ([]CodeItem, error) {
	if p.current == nil {
		return nil, &SectionTypeError{Msg: "instruction outside any SECTION"}
	}
	instrAddr := p.ip.Location
	r, err := Encode(p.Set, n.Mnemonic, n.Args, n.Line)
	if err != nil {
		return nil, err
	}
	if r.Unresolved == "" {
		item := CodeItem{Kind: ItemInstruction, Line: n.Line, SectionName: p.current.Name, Offset: int(p.ip.Offset()), Bytes: r.Bytes}
		p.ip.Advance(len(r.Bytes))
		return []CodeItem{item}, nil
	}

	length := tentativeLength(n.Mnemonic)
	item := CodeItem{
		Kind: ItemUnresolved, Line: n.Line, SectionName: p.current.Name, Offset: int(p.ip.Offset()),
		Mnemonic: n.Mnemonic, Operands: n.Args, UnresolvedIndex: r.UnresolvedIndex, UnresolvedName: r.Unresolved,
		InstrAddr: instrAddr, Major: p.major, TentativeLength: length,
	}
	p.ip.Advance(length)
	return []CodeItem{item}, nil
}

// tentativeLength is the conservative byte count used to advance the IP
// across a deferred instruction in pass 1: 2 for relative jumps, 3 for
// the absolute-address and 16-bit-immediate families, 1 otherwise.
func tentativeLength(mnemonic string) int {
	switch mnemonic {
	case "JR":
		return 2
	case "JP", "CALL", "LD", "LDH":
		return 3
	default:
		return 1
	}
}

func (p *Processor) processLabel(n LineNode) ([]CodeItem, error) {
	sym, err := p.defineLabel(n.Name, n.Line)
	if err != nil {
		return nil, err
	}
	return []CodeItem{{Kind: ItemLabel, Line: n.Line, Symbol: sym}}, nil
}

func (p *Processor) defineLabel(raw string, line int) (*Symbol, error) {
	scope := ScopeOf(raw)
	cleaned := CleanName(raw)
	if p.forceGlobal[cleaned] {
		scope = ScopeGlobal
	}
	sym := &Symbol{Name: cleaned, Value: p.ip.Location, Scope: scope}
	if err := p.Symbols.Add(sym, p.major); err != nil {
		return nil, &DuplicateSymbolErrorAt{Name: cleaned, Line: line}
	}
	if scope != ScopePrivate {
		p.major = cleaned
	}
	return sym, nil
}

func (p *Processor) processCompound(n LineNode) ([]CodeItem, error) {
	if len(n.Parts) != 2 {
		return nil, &LexSyntaxError{Text: "compound node", Line: n.Line}
	}
	label, rest := n.Parts[0], n.Parts[1]

	if rest.Kind == NodeDirective && (rest.Name == "EQU" || rest.Name == "SET") {
		return p.processEquate(label, rest)
	}

	items, err := p.processLabel(label)
	if err != nil {
		return nil, err
	}
	restItems, err := p.Process(rest)
	if err != nil {
		return items, err
	}
	return append(items, restItems...), nil
}

func (p *Processor) processEquate(label, directive LineNode) ([]CodeItem, error) {
	if len(directive.Args) != 1 {
		return nil, &LexSyntaxError{Text: "EQU requires exactly one expression", Line: directive.Line}
	}
	e, err := ParseExpression(directive.Args[0])
	if err != nil {
		return nil, err
	}
	v, ok := e.ToDecimal()
	if !ok {
		return nil, &StorageError{Msg: "EQU value has no numeric conversion"}
	}

	cleaned := CleanName(label.Name)
	sym := &Symbol{Name: cleaned, Value: uint16(v), Scope: ScopeOf(label.Name), IsConstant: true}
	if err := p.Symbols.Add(sym, p.major); err != nil {
		return nil, &DuplicateSymbolErrorAt{Name: cleaned, Line: label.Line}
	}
	return []CodeItem{{Kind: ItemEquate, Line: label.Line, Symbol: sym}}, nil
}

// trimQuotes strips one layer of surrounding double quotes, used for
// SECTION's quoted name operand.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// parseKindQualifier parses a SECTION kind token, either bare ("ROM0")
// or with a start override ("WRAM0[$C100]"). BANK[n] arrives as a
// separate token, handled by parseBankQualifier.
func parseKindQualifier(tok string) (kind string, startOverride *uint16, bank int, hasBank bool, err error) {
	open := indexByte(tok, '[')
	if open < 0 {
		return tok, nil, 0, false, nil
	}
	if tok[len(tok)-1] != ']' {
		return "", nil, 0, false, &SectionTypeError{Msg: "malformed KIND[expr] qualifier"}
	}
	kind = tok[:open]
	exprText := tok[open+1 : len(tok)-1]
	e, perr := ParseExpression(exprText)
	if perr != nil {
		return "", nil, 0, false, perr
	}
	v, _ := e.ToDecimal()
	start := uint16(v)
	return kind, &start, 0, false, nil
}

// parseBankQualifier recognizes a "BANK[n]" token among SECTION's
// trailing qualifiers.
func parseBankQualifier(tok string) (dmgisa.Bank, bool) {
	const prefix = "BANK["
	if len(tok) <= len(prefix) || tok[:len(prefix)] != prefix || tok[len(tok)-1] != ']' {
		return 0, false
	}
	e, err := ParseExpression(tok[len(prefix) : len(tok)-1])
	if err != nil {
		return 0, false
	}
	v, ok := e.ToDecimal()
	if !ok {
		return 0, false
	}
	return dmgisa.Bank(v), true
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
