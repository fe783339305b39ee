// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpressionKind tags the literal form an Expression was parsed from.
type ExpressionKind byte

const (
	Hex8 ExpressionKind = iota
	Hex16
	Decimal
	Binary
	Octal
	Character
)

func (k ExpressionKind) String() string {
	switch k {
	case Hex8:
		return "hex8"
	case Hex16:
		return "hex16"
	case Decimal:
		return "decimal"
	case Binary:
		return "binary"
	case Octal:
		return "octal"
	case Character:
		return "character"
	default:
		return "unknown"
	}
}

// descriptor bounds a literal kind's raw character length and its
// base-10 value range, grounded in the ValueDescriptor family from
// original_source/LR35902_gbasm/core/constants.py: the same family
// whose numeric ranges this package's bounds table below already
// matches.
type descriptor struct {
	minChars, maxChars int
	minVal, maxVal     int
	base               int
}

var descriptors = map[ExpressionKind]descriptor{
	Hex8:    {1, 2, 0, 255, 16},
	Hex16:   {3, 4, 0, 65535, 16},
	Decimal: {1, 5, 0, 65535, 10},
	Binary:  {1, 8, 0, 255, 2},
	Octal:   {1, 6, 0, 65535, 8},
}

// Expression is a validated numeric or character literal.
type Expression struct {
	kind  ExpressionKind
	raw   string // value text, without prefix/suffix
	value int    // numeric value; meaningless for Character
}

// Kind returns the literal's kind tag.
func (e Expression) Kind() ExpressionKind { return e.kind }

// Raw returns the value text without its prefix or terminating quote.
func (e Expression) Raw() string { return e.raw }

// ToDecimal returns the literal's numeric value. Character literals
// have no numeric conversion and return ok=false.
func (e Expression) ToDecimal() (v uint32, ok bool) {
	if e.kind == Character {
		return 0, false
	}
	return uint32(e.value), true
}

// SyntaxError reports a malformed expression: bad prefix, illegal
// character, or unterminated string.
type SyntaxError struct {
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in expression %q: %s", e.Text, e.Msg)
}

// BoundsError reports a literal whose length or value falls outside its
// kind's descriptor.
type BoundsError struct {
	Text string
	Msg  string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bounds error in expression %q: %s", e.Text, e.Msg)
}

// ParseExpression recognizes the longest matching prefix from the
// ordered list ["0x","$$","$","0","%","&","'","\""] (order matters:
// "0x" before "0", "$$" before "$"), validates the remaining characters
// and the resulting length/value against the selected descriptor, and
// returns the literal.
func ParseExpression(text string) (Expression, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Expression{}, &SyntaxError{Text: text, Msg: "empty expression"}
	}

	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return parseNumeric(text, s[2:], pickHexKind(s[2:]))

	case strings.HasPrefix(s, "$$"):
		return parseNumeric(text, s[2:], Hex16)

	case strings.HasPrefix(s, "$"):
		return parseNumeric(text, s[1:], pickHexKind(s[1:]))

	case strings.HasPrefix(s, "%"):
		return parseNumeric(text, s[1:], Binary)

	case strings.HasPrefix(s, "&"):
		return parseNumeric(text, s[1:], Octal)

	case strings.HasPrefix(s, "'"), strings.HasPrefix(s, "\""):
		return parseCharacter(text, s)

	case isDecimalDigit(s[0]):
		return parseNumeric(text, s, Decimal)

	default:
		return Expression{}, &SyntaxError{Text: text, Msg: "unrecognized expression prefix"}
	}
}

// pickHexKind disambiguates a hex literal's width by its digit count:
// <=2 nibbles is 8-bit, otherwise 16-bit (ambiguous 3-digit forms, e.g.
// "$100", are treated as 16-bit per the length > 2 rule).
func pickHexKind(digits string) ExpressionKind {
	if len(digits) <= 2 {
		return Hex8
	}
	return Hex16
}

func parseNumeric(orig, raw string, kind ExpressionKind) (Expression, error) {
	d := descriptors[kind]

	if raw == "" {
		return Expression{}, &SyntaxError{Text: orig, Msg: "missing digits"}
	}
	for i := 0; i < len(raw); i++ {
		if !validDigit(raw[i], d.base) {
			return Expression{}, &SyntaxError{Text: orig, Msg: fmt.Sprintf("illegal character %q for base %d", raw[i], d.base)}
		}
	}
	if len(raw) < d.minChars || len(raw) > d.maxChars {
		return Expression{}, &BoundsError{Text: orig, Msg: fmt.Sprintf("length %d outside [%d,%d] for %s", len(raw), d.minChars, d.maxChars, kind)}
	}

	v, err := strconv.ParseInt(raw, d.base, 32)
	if err != nil {
		return Expression{}, &SyntaxError{Text: orig, Msg: "malformed numeric literal"}
	}
	if int(v) < d.minVal || int(v) > d.maxVal {
		return Expression{}, &BoundsError{Text: orig, Msg: fmt.Sprintf("value %d outside [%d,%d]", v, d.minVal, d.maxVal)}
	}

	return Expression{kind: kind, raw: raw, value: int(v)}, nil
}

func parseCharacter(orig, s string) (Expression, error) {
	quote := s[0]
	if len(s) < 2 || s[len(s)-1] != quote {
		return Expression{}, &SyntaxError{Text: orig, Msg: "unterminated character literal"}
	}
	raw := s[1 : len(s)-1]
	return Expression{kind: Character, raw: raw}, nil
}

func isDecimalDigit(c byte) bool { return c >= '0' && c <= '9' }

func validDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 10:
		return c >= '0' && c <= '9'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return false
	}
}

// FormatExpression is the reverse conversion: decimal value to
// expression text, parameterized by the target prefix and clamped to
// [0, 65535].
func FormatExpression(prefix string, value int) string {
	if value < 0 {
		value = 0
	}
	if value > 65535 {
		value = 65535
	}
	switch prefix {
	case "$":
		if value <= 0xff {
			return fmt.Sprintf("$%02X", value)
		}
		return fmt.Sprintf("$%04X", value)
	case "%":
		return "%" + strconv.FormatInt(int64(value), 2)
	case "&":
		return "&" + strconv.FormatInt(int64(value), 8)
	default:
		return strconv.Itoa(value)
	}
}
