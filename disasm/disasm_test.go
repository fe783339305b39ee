// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"testing"

	dmgisa "github.com/dmgasm/dmgasm"
)

type byteMemory []byte

func (m byteMemory) ReadByte(addr dmgisa.Address) byte {
	if int(addr) >= len(m) {
		return 0
	}
	return m[addr]
}

func TestDisassembleSimple(t *testing.T) {
	set := dmgisa.Default()
	mem := byteMemory{0x00, 0x21, 0xDC, 0xFF, 0xCB, 0x40}

	line, next := Disassemble(set, mem, 0)
	if line != "NOP" || next != 1 {
		t.Errorf("Disassemble(0) = %q,%d want NOP,1", line, next)
	}

	line, next = Disassemble(set, mem, 1)
	if line != "LD HL,$FFDC" || next != 4 {
		t.Errorf("Disassemble(1) = %q,%d want \"LD HL,$FFDC\",4", line, next)
	}

	line, next = Disassemble(set, mem, 4)
	if line != "BIT 0,B" || next != 6 {
		t.Errorf("Disassemble(4) = %q,%d want \"BIT 0,B\",6", line, next)
	}
}

func TestDisassembleIllegalOpcode(t *testing.T) {
	set := dmgisa.Default()
	mem := byteMemory{0xD3}
	line, next := Disassemble(set, mem, 0)
	if line != "DB $D3" || next != 1 {
		t.Errorf("Disassemble(illegal) = %q,%d", line, next)
	}
}
