// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements an LR35902 instruction disassembler, driven
// by the same opcode table the assembler's encoder consumes.
package disasm

import (
	"fmt"
	"strings"

	dmgisa "github.com/dmgasm/dmgasm"
)

var hexDigits = "0123456789ABCDEF"

func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hexDigits[n&0xf]
		hexbuf[j-1] = hexDigits[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Memory is the minimal byte-addressable source a disassembler needs;
// satisfied by a flat ROM image or the assembler's own emitted bytes.
type Memory interface {
	ReadByte(addr dmgisa.Address) byte
}

// RegisterNames returns the 8-bit and 16-bit register names in their
// canonical declaration order, the same order a register dump command
// would list them in.
func RegisterNames() (reg8, reg16 []string) {
	for r := dmgisa.RegA; r <= dmgisa.RegL; r++ {
		reg8 = append(reg8, r.String())
	}
	for r := dmgisa.RegBC; r <= dmgisa.RegPC; r++ {
		reg16 = append(reg16, r.String())
	}
	return
}

// ReadBytes pulls n consecutive bytes from m starting at addr.
func ReadBytes(m Memory, addr dmgisa.Address, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = m.ReadByte(addr + dmgisa.Address(i))
	}
	return out
}

// Disassemble decodes the instruction at addr in m, returning its
// formatted mnemonic/operand text and the address of the next
// instruction. An opcode absent from set (illegal on real hardware)
// formats as a raw DB byte.
func Disassemble(set *dmgisa.Set, m Memory, addr dmgisa.Address) (line string, next dmgisa.Address) {
	first := m.ReadByte(addr)
	opcode := int(first)
	length := 1
	if first == 0xCB {
		sub := m.ReadByte(addr + 1)
		opcode = 0xCB00 + int(sub)
		length = 2
	}

	entry, ok := set.ByOpcode(opcode)
	if !ok {
		return fmt.Sprintf("DB $%02X", first), addr + 1
	}

	operandBytes := ReadBytes(m, addr+dmgisa.Address(length), int(entry.Length)-length)
	line = formatInstruction(entry, operandBytes)
	next = addr + dmgisa.Address(entry.Length)
	return
}

func formatInstruction(e *dmgisa.Entry, operand []byte) string {
	var parts []string
	parts = append(parts, e.Mnemonic)

	ops := formatOperands(e, operand)
	if len(ops) > 0 {
		parts = append(parts, strings.Join(ops, ","))
	}
	return strings.Join(parts, " ")
}

func formatOperands(e *dmgisa.Entry, operand []byte) []string {
	var out []string
	if e.Operand1 != "" {
		out = append(out, formatOperand(e.Operand1, operand))
	}
	if e.Operand2 != "" {
		out = append(out, formatOperand(e.Operand2, operand))
	}
	return out
}

// formatOperand renders a single table-key operand, substituting
// immediate/placeholder values from the instruction's trailing bytes.
func formatOperand(key string, operand []byte) string {
	switch {
	case key == "d8", key == "a8", key == "r8":
		if len(operand) > 0 {
			return fmt.Sprintf("$%02X", operand[0])
		}
		return key
	case key == "(a8)":
		if len(operand) > 0 {
			return fmt.Sprintf("($%02X)", operand[0])
		}
		return key
	case key == "d16", key == "a16":
		if len(operand) >= 2 {
			return fmt.Sprintf("$%s", hexString(operand[:2]))
		}
		return key
	case key == "(a16)":
		if len(operand) >= 2 {
			return fmt.Sprintf("($%s)", hexString(operand[:2]))
		}
		return key
	case key == "SP+r8":
		if len(operand) > 0 {
			return fmt.Sprintf("SP+$%02X", operand[0])
		}
		return key
	default:
		return key
	}
}
