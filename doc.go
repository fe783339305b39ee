// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dmgisa describes the Sharp LR35902 instruction set: the
// register and condition-code vocabulary, the opcode table keyed by
// mnemonic and operand text, and the JSON schema used to load a custom
// table. It has no dependency on the assembler or disassembler that
// consume it.
package dmgisa
