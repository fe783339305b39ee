// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"

	dmgisa "github.com/dmgasm/dmgasm"
)

// EncodeResult is the outcome of matching a mnemonic and its operands
// against the instruction set. Exactly one of Bytes or Unresolved is
// meaningful on success; a hard failure is returned as an error instead.
type EncodeResult struct {
	Bytes           []byte
	Unresolved      string // raw forward-label candidate text (decoration intact), "" if fully resolved
	UnresolvedIndex int    // operand index that held the forward label
}

// operandValue carries the bytes a single operand position contributes,
// or none when the operand is implicit in the opcode (a register,
// condition code, or RST target).
type operandValue struct {
	bytes []byte
}

// Encode matches mnemonic and operands against set and produces either a
// fully resolved byte sequence or a deferred result naming the forward
// label that blocked resolution. Operand text is expected pre-uppercased
// and pre-"exploded" by the tokenizer (e.g. "(HL+)", "SP+$55").
func Encode(set *dmgisa.Set, mnemonic string, operands []string, line int) (*EncodeResult, error) {
	mnemonic = strings.ToUpper(mnemonic)
	candidates := set.Lookup(mnemonic)
	if len(candidates) == 0 {
		return nil, &UnknownMnemonicError{Mnemonic: mnemonic, Line: line}
	}

	var values []operandValue
	unresolvedName := ""
	unresolvedIndex := 0

	for pos, text := range operands {
		fieldAt := func(e *dmgisa.Entry) string {
			if pos == 0 {
				return e.Operand1
			}
			return e.Operand2
		}

		if dmgisa.IsRegister(text) || dmgisa.IsCondition(text) {
			filtered := filterByField(candidates, fieldAt, text)
			if len(filtered) == 0 {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			candidates = filtered
			values = append(values, operandValue{})
			continue
		}

		content, hadParens := stripParens(text)

		if mnemonic == "RST" {
			v, err := evalExpr(content)
			if err != nil {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			key, ok := rstKey(v)
			if !ok {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			filtered := filterByField(candidates, fieldAt, key)
			if len(filtered) == 0 {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			candidates = filtered
			values = append(values, operandValue{})
			continue
		}

		if pos == 0 && isBitIndexMnemonic(mnemonic) {
			v, err := evalExpr(content)
			if err != nil || v > 7 {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			filtered := filterByField(candidates, fieldAt, bitIndexKey(v))
			if len(filtered) == 0 {
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			candidates = filtered
			values = append(values, operandValue{})
			continue
		}

		if !hadParens {
			if spExpr, ok := splitSPPlus(content); ok {
				filtered := filterByField(candidates, fieldAt, "SP+r8")
				if len(filtered) == 0 {
					return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
				}
				v, err := evalExpr(spExpr)
				if err != nil {
					return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
				}
				candidates = filtered
				values = append(values, operandValue{bytes: []byte{byte(v)}})
				continue
			}
		}

		v, numErr := evalExpr(content)
		if numErr != nil {
			cands8, cands16 := splitByWidth(candidates, fieldAt, hadParens)
			var chosen []*dmgisa.Entry
			switch {
			case len(cands8) > 0:
				chosen = cands8
			case len(cands16) > 0:
				chosen = cands16
			default:
				return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
			}
			candidates = chosen
			unresolvedName = text
			unresolvedIndex = pos
			values = append(values, operandValue{})
			continue
		}

		filtered := filterByPlaceholder(candidates, fieldAt, v, hadParens)
		if len(filtered) == 0 {
			return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: text, Line: line}
		}
		width := placeholderWidth(fieldAt(filtered[0]))
		candidates = filtered
		if width == 16 {
			values = append(values, operandValue{bytes: []byte{byte(v), byte(v >> 8)}})
		} else {
			values = append(values, operandValue{bytes: []byte{byte(v)}})
		}
	}

	// A row whose operand fields outnumber the source operands does not
	// match: a bare RET selects RET, not RET NZ.
	var exact []*dmgisa.Entry
	for _, e := range candidates {
		if (len(operands) >= 1 || e.Operand1 == "") && (len(operands) >= 2 || e.Operand2 == "") {
			exact = append(exact, e)
		}
	}
	candidates = exact

	if len(candidates) == 0 {
		return nil, &InvalidOperandError{Mnemonic: mnemonic, Operand: strings.Join(operands, ","), Line: line}
	}

	if unresolvedName != "" {
		return &EncodeResult{Unresolved: unresolvedName, UnresolvedIndex: unresolvedIndex}, nil
	}

	entry := candidates[0]
	out := dmgisa.OpcodeBytes(entry.Opcode)
	for _, v := range values {
		out = append(out, v.bytes...)
	}
	return &EncodeResult{Bytes: out}, nil
}

func filterByField(candidates []*dmgisa.Entry, fieldAt func(*dmgisa.Entry) string, text string) []*dmgisa.Entry {
	var out []*dmgisa.Entry
	for _, e := range candidates {
		if fieldAt(e) == text {
			out = append(out, e)
		}
	}
	return out
}

func filterByPlaceholder(candidates []*dmgisa.Entry, fieldAt func(*dmgisa.Entry) string, v uint32, hadParens bool) []*dmgisa.Entry {
	var out []*dmgisa.Entry
	for _, e := range candidates {
		if placeholderMatches(fieldAt(e), v, hadParens) {
			out = append(out, e)
		}
	}
	return out
}

func splitByWidth(candidates []*dmgisa.Entry, fieldAt func(*dmgisa.Entry) string, hadParens bool) (c8, c16 []*dmgisa.Entry) {
	for _, e := range candidates {
		f := fieldAt(e)
		if f == "" || isPlaceholderParenField(f) != hadParens {
			continue
		}
		if !isPlaceholder(f) {
			continue
		}
		if placeholderWidth(f) == 16 {
			c16 = append(c16, e)
		} else {
			c8 = append(c8, e)
		}
	}
	return
}

func isPlaceholder(field string) bool {
	inner := field
	if isPlaceholderParenField(field) {
		inner = field[1 : len(field)-1]
	}
	switch inner {
	case "d8", "d16", "a8", "a16", "r8":
		return true
	default:
		return false
	}
}

func isPlaceholderParenField(field string) bool {
	return strings.HasPrefix(field, "(") && strings.HasSuffix(field, ")")
}

// placeholderWidth classifies a placeholder field as 8-bit or 16-bit:
// fields naming "16" match 16-bit, everything else (d8/a8/r8) is 8-bit.
func placeholderWidth(field string) int {
	if strings.Contains(field, "16") {
		return 16
	}
	return 8
}

func placeholderMatches(field string, v uint32, hadParens bool) bool {
	if field == "" || !isPlaceholder(field) {
		return false
	}
	if isPlaceholderParenField(field) != hadParens {
		return false
	}
	if placeholderWidth(field) == 16 {
		return v <= 65535
	}
	if isHighRAMOffsetField(field) {
		// a8 is added to $FF00 on real hardware, so either the bare
		// offset or the label's full $FFxx address is accepted; only
		// the low byte is ever emitted.
		return v <= 255 || v >= 0xFF00
	}
	return v <= 255
}

// isHighRAMOffsetField reports whether field is the LDH-only "a8"
// placeholder, with or without its usual parens.
func isHighRAMOffsetField(field string) bool {
	inner := field
	if isPlaceholderParenField(field) {
		inner = field[1 : len(field)-1]
	}
	return inner == "a8"
}

// stripParens removes one layer of matching parentheses, reporting
// whether it did so.
func stripParens(text string) (string, bool) {
	if len(text) >= 2 && text[0] == '(' && text[len(text)-1] == ')' {
		return text[1 : len(text)-1], true
	}
	return text, false
}

// splitSPPlus recognizes the literal "SP+<expression>" form used only by
// the LD HL,SP+r8 instruction.
func splitSPPlus(content string) (string, bool) {
	if strings.HasPrefix(content, "SP+") {
		return content[len("SP+"):], true
	}
	return "", false
}

// rstKey normalizes an evaluated RST target to its table key: the
// tokenizer never emits "#$xx" text directly, so the encoder evaluates
// the numeric target and performs the translation itself.
func rstKey(v uint32) (string, bool) {
	switch v {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		return fmt.Sprintf("#$%02X", v), true
	default:
		return "", false
	}
}

func isBitIndexMnemonic(mnemonic string) bool {
	switch mnemonic {
	case "BIT", "RES", "SET":
		return true
	default:
		return false
	}
}

func bitIndexKey(v uint32) string {
	return fmt.Sprintf("%d", v)
}

func evalExpr(s string) (uint32, error) {
	e, err := ParseExpression(s)
	if err != nil {
		return 0, err
	}
	v, ok := e.ToDecimal()
	if !ok {
		return 0, &SyntaxError{Text: s, Msg: "character literal has no numeric value"}
	}
	return v, nil
}
