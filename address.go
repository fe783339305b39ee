// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmgisa

// Address is a 16-bit target-memory address.
type Address uint16

// Bank is a memory-bank number for a bankable section kind (ROMX, SRAM,
// WRAMX). Bank 0 is the default for SRAM; ROMX and WRAMX bank numbers
// start at 1 since bank 0 of those kinds is mapped by ROM0/WRAM0.
type Bank int
