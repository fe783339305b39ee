// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	dmgisa "github.com/dmgasm/dmgasm"
)

// Kind names a memory region's fixed hardware category.
type Kind byte

const (
	ROM0 Kind = iota
	ROMX
	VRAM
	SRAM
	WRAM0
	WRAMX
	OAM
	HRAM
)

func (k Kind) String() string {
	switch k {
	case ROM0:
		return "ROM0"
	case ROMX:
		return "ROMX"
	case VRAM:
		return "VRAM"
	case SRAM:
		return "SRAM"
	case WRAM0:
		return "WRAM0"
	case WRAMX:
		return "WRAMX"
	case OAM:
		return "OAM"
	case HRAM:
		return "HRAM"
	default:
		return "UNKNOWN"
	}
}

// addrRange is an inclusive [Start,End] span in the LR35902 address space.
type addrRange struct {
	Start, End uint16
}

// kindRanges gives each kind's default, fixed address range.
var kindRanges = map[Kind]addrRange{
	ROM0:  {0x0000, 0x3FFF},
	ROMX:  {0x4000, 0x7FFF},
	VRAM:  {0x8000, 0x9FFF},
	SRAM:  {0xA000, 0xBFFF},
	WRAM0: {0xC000, 0xCFFF},
	WRAMX: {0xD000, 0xDFFF},
	OAM:   {0xFE00, 0xFE9F},
	HRAM:  {0xFF80, 0xFFFE},
}

// bankRanges gives the valid BANK[n] range for each bankable kind, sourced
// from the real hardware's bank-count limits: ROMX banks 1-511, SRAM banks
// 0-3, WRAMX banks 1-7. Kinds absent from this map are unbankable.
var bankRanges = map[Kind]addrRange{
	ROMX:  {1, 511},
	SRAM:  {0, 3},
	WRAMX: {1, 7},
}

func ParseKind(name string) (Kind, bool) {
	switch name {
	case "ROM0":
		return ROM0, true
	case "ROMX":
		return ROMX, true
	case "VRAM":
		return VRAM, true
	case "SRAM":
		return SRAM, true
	case "WRAM0":
		return WRAM0, true
	case "WRAMX":
		return WRAMX, true
	case "OAM":
		return OAM, true
	case "HRAM":
		return HRAM, true
	default:
		return 0, false
	}
}

// SectionTypeError reports a malformed SECTION declaration: an unknown
// kind name, a start override outside the kind's range, or a BANK[n]
// qualifier that is out of range or attached to an unbankable kind.
type SectionTypeError struct {
	Msg string
}

func (e *SectionTypeError) Error() string { return "section type error: " + e.Msg }

// Section is a named region of target memory with fixed kind and
// address range, optionally qualified with a bank number.
type Section struct {
	Name    string
	Kind    Kind
	Range   addrRange
	Bank    dmgisa.Bank // meaningful only when HasBank is true
	HasBank bool
}

// NewSection validates kind and an optional start override and produces
// a Section whose IP will begin at its range's start.
func NewSection(name string, kind Kind, startOverride *uint16) (*Section, error) {
	r, ok := kindRanges[kind]
	if !ok {
		return nil, &SectionTypeError{Msg: fmt.Sprintf("unknown section kind %v", kind)}
	}
	if startOverride != nil {
		start := *startOverride
		if start < r.Start || start > r.End {
			return nil, &SectionTypeError{Msg: fmt.Sprintf(
				"start override $%04X outside %v range [$%04X,$%04X]", start, kind, r.Start, r.End)}
		}
		r.Start = start
	}
	return &Section{Name: name, Kind: kind, Range: r}, nil
}

// WithBank validates and attaches a BANK[n] qualifier.
func (s *Section) WithBank(n dmgisa.Bank) error {
	br, ok := bankRanges[s.Kind]
	if !ok {
		return &SectionTypeError{Msg: fmt.Sprintf("kind %v does not support BANK[]", s.Kind)}
	}
	if n < dmgisa.Bank(br.Start) || n > dmgisa.Bank(br.End) {
		return &SectionTypeError{Msg: fmt.Sprintf(
			"bank %d outside %v range [%d,%d]", n, s.Kind, br.Start, br.End)}
	}
	s.Bank = n
	s.HasBank = true
	return nil
}

// IP is the instruction pointer: the section's base address plus the
// running offset within it.
type IP struct {
	BaseAddress uint16
	Location    uint16
}

// Offset returns the current distance from the section base.
func (p IP) Offset() uint16 { return p.Location - p.BaseAddress }

// Advance moves the location forward by n bytes.
func (p *IP) Advance(n int) { p.Location += uint16(n) }

// EnterSection resets the IP to a freshly created section's start.
func (p *IP) EnterSection(s *Section) {
	p.BaseAddress = s.Range.Start
	p.Location = s.Range.Start
}

// SectionResult is the read-only view of a completed section returned by
// Assembler.Sections() and embedded in Result, letting an out-of-scope ROM
// writer place banked regions without re-deriving fixed hardware ranges.
type SectionResult struct {
	Name    string
	Kind    Kind
	Bank    dmgisa.Bank
	HasBank bool
	Start   uint16
	Length  int
}
