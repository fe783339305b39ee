// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"
)

func TestEncodeDS(t *testing.T) {
	out, err := EncodeDS(4, 0xFF)
	if err != nil {
		t.Fatalf("EncodeDS: %v", err)
	}
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(out, want) {
		t.Errorf("EncodeDS(4,0xFF) = %v, want %v", out, want)
	}

	if _, err := EncodeDS(1025, 0); err == nil {
		t.Errorf("EncodeDS(1025,_) should fail: count out of bounds")
	}
	if _, err := EncodeDS(1, 256); err == nil {
		t.Errorf("EncodeDS(_,256) should fail: fill out of bounds")
	}
}

func TestEncodeDB(t *testing.T) {
	out, err := EncodeDB([]string{"1", "$FF", `"AB"`})
	if err != nil {
		t.Fatalf("EncodeDB: %v", err)
	}
	want := []byte{0x01, 0xFF, 'A', 'B'}
	if !bytes.Equal(out, want) {
		t.Errorf("EncodeDB = %v, want %v", out, want)
	}
}

func TestEncodeDW(t *testing.T) {
	out, err := EncodeDW([]string{"$1234"})
	if err != nil {
		t.Fatalf("EncodeDW: %v", err)
	}
	want := []byte{0x34, 0x12}
	if !bytes.Equal(out, want) {
		t.Errorf("EncodeDW($1234) = %v, want %v", out, want)
	}
}

func TestEncodeDL(t *testing.T) {
	out, err := EncodeDL([]string{"1"})
	if err != nil {
		t.Fatalf("EncodeDL: %v", err)
	}
	want := []byte{0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(out, want) {
		t.Errorf("EncodeDL(1) = %v, want %v", out, want)
	}
}

func TestSplitStorageOperandsPreservesQuotedCommas(t *testing.T) {
	got := SplitStorageOperands(`1, "a,b", 2`)
	want := []string{"1", `"a,b"`, "2"}
	if len(got) != len(want) {
		t.Fatalf("SplitStorageOperands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("operand %d = %q, want %q", i, got[i], want[i])
		}
	}
}
