// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"

	dmgisa "github.com/dmgasm/dmgasm"
)

func TestEncodeNoOperandInstruction(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "NOP", nil, 1)
	if err != nil {
		t.Fatalf("Encode(NOP): %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0x00}) {
		t.Errorf("NOP = %v, want [00]", r.Bytes)
	}
}

func TestEncodeImmediate16(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LD", []string{"HL", "$FFDC"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0x21, 0xDC, 0xFF}) {
		t.Errorf("LD HL,$FFDC = %v, want [21 DC FF]", r.Bytes)
	}
}

func TestEncodeSPPlusR8(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LD", []string{"HL", "SP+$55"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0xF8, 0x55}) {
		t.Errorf("LD HL,SP+$55 = %v, want [F8 55]", r.Bytes)
	}
}

func TestEncodeForwardLabelDeferred(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LD", []string{"HL", "BIGVAL"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if r.Unresolved != "BIGVAL" {
		t.Errorf("Unresolved = %q, want BIGVAL", r.Unresolved)
	}
}

func TestEncodeConditionalJR(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "JR", []string{"NZ", "$FE"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0x20, 0xFE}) {
		t.Errorf("JR NZ,$FE = %v, want [20 FE]", r.Bytes)
	}
}

func TestEncodeIndirectRegister(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LD", []string{"A", "(HL+)"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0x2A}) {
		t.Errorf("LD A,(HL+) = %v, want [2A]", r.Bytes)
	}
}

func TestEncodeLDHBareOffset(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LDH", []string{"($80)", "A"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0xE0, 0x80}) {
		t.Errorf("LDH ($80),A = %v, want [E0 80]", r.Bytes)
	}
}

func TestEncodeLDHFullHighRAMAddress(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "LDH", []string{"A", "($FF80)"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0xF0, 0x80}) {
		t.Errorf("LDH A,($FF80) = %v, want [F0 80]", r.Bytes)
	}
}

func TestEncodeRST(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "RST", []string{"$00"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0xC7}) {
		t.Errorf("RST $00 = %v, want [C7]", r.Bytes)
	}
}

func TestEncodeRSTInvalidTarget(t *testing.T) {
	set := dmgisa.Default()
	if _, err := Encode(set, "RST", []string{"$05"}, 1); err == nil {
		t.Errorf("RST $05 should fail: not a valid RST target")
	}
}

func TestEncodeCBPrefixed(t *testing.T) {
	set := dmgisa.Default()
	r, err := Encode(set, "BIT", []string{"0", "B"}, 1)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(r.Bytes, []byte{0xCB, 0x40}) {
		t.Errorf("BIT 0,B = %v, want [CB 40]", r.Bytes)
	}
}

func TestEncodeUnknownMnemonic(t *testing.T) {
	set := dmgisa.Default()
	if _, err := Encode(set, "FROB", nil, 1); err == nil {
		t.Errorf("FROB should be UnknownMnemonic")
	}
}
