// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"

	dmgisa "github.com/dmgasm/dmgasm"
	"github.com/dmgasm/dmgasm/asm"
	"github.com/dmgasm/dmgasm/disasm"
)

// commands is the root of the console's command tree, built once at
// package init the way the command registries in this lineage always
// are: a tree of name/brief/description/usage/handler records, looked
// up by unambiguous prefix.
var commands *cmd.Tree

// completions indexes every registered command name by prefix, giving
// "help" a tab-style listing independent of the dispatch tree's own
// internal prefix matching.
var completions *prefixtree.Tree[string]

func init() {
	completions = prefixtree.New[string]()

	commands = cmd.NewTree("dmgasm")
	add(commands, cmd.Command{
		Name:        "help",
		Description: "Display the available commands.",
		Usage:       "help",
		Data:        (*Console).cmdHelp,
	})
	add(commands, cmd.Command{
		Name:        "assemble",
		Brief:       "Assemble a source file",
		Description: "Run the assembler on the given file, replacing any previously loaded result.",
		Usage:       "assemble <file>",
		Data:        (*Console).cmdAssemble,
	})
	add(commands, cmd.Command{
		Name:        "symbols",
		Brief:       "List the symbol table of the last assembly",
		Description: "List every GLOBAL and LOCAL symbol known after the last successful assembly.",
		Usage:       "symbols",
		Data:        (*Console).cmdSymbols,
	})
	add(commands, cmd.Command{
		Name:        "sections",
		Brief:       "List the section map of the last assembly",
		Description: "List every section created during the last successful assembly, with its start address and length.",
		Usage:       "sections",
		Data:        (*Console).cmdSections,
	})
	add(commands, cmd.Command{
		Name:        "exports",
		Brief:       "List the exported symbols of the last assembly",
		Description: "List every label named in an EXPORT or GLOBAL directive, with its resolved address.",
		Usage:       "exports",
		Data:        (*Console).cmdExports,
	})
	add(commands, cmd.Command{
		Name:        "disasm",
		Brief:       "Disassemble bytes from the last assembly",
		Description: "Disassemble <count> instructions starting at <addr> within the last assembly's emitted code.",
		Usage:       "disasm <addr> <count>",
		Data:        (*Console).cmdDisasm,
	})
	add(commands, cmd.Command{
		Name:        "registers",
		Brief:       "List the CPU's registers",
		Description: "List the 8-bit and 16-bit register names this instruction set recognizes as operands.",
		Usage:       "registers",
		Data:        (*Console).cmdRegisters,
	})
	add(commands, cmd.Command{
		Name:        "quit",
		Brief:       "Exit the console",
		Usage:       "quit",
		Data:        (*Console).cmdQuit,
	})
}

// add registers cc with tree and indexes its name for completion.
func add(tree *cmd.Tree, cc cmd.Command) {
	tree.AddCommand(cc)
	completions.Add(cc.Name, cc.Name)
}

func (c *Console) cmdHelp(s cmd.Selection) error {
	if len(s.Args) == 0 {
		c.displayCommands(commands)
		return nil
	}
	name := strings.Join(s.Args, " ")
	sel, err := commands.Lookup(name)
	if err != nil {
		c.printf("%v\n", err)
		if full, ferr := completions.Find(name); ferr == nil {
			c.printf("did you mean %q?\n", full)
		}
		return nil
	}
	if sel.Command.Usage != "" {
		c.printf("Usage: %s\n", sel.Command.Usage)
	}
	switch {
	case sel.Command.Description != "":
		c.printf("%s\n", sel.Command.Description)
	case sel.Command.Brief != "":
		c.printf("%s.\n", sel.Command.Brief)
	}
	return nil
}

func (c *Console) cmdAssemble(s cmd.Selection) error {
	if len(s.Args) != 1 {
		return fmt.Errorf("usage: %s", s.Command.Usage)
	}

	f, err := os.Open(s.Args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	a := asm.NewAssembler(c.set)
	res, err := a.Assemble(f)
	if err != nil {
		for _, e := range a.Errors() {
			c.printf("%v\n", e)
		}
		return fmt.Errorf("assembly failed: %d error(s)", len(a.Errors()))
	}

	c.assembler = a
	c.result = res
	c.printf("assembled %d byte(s), %d section(s), %d export(s)\n",
		len(res.Code), len(res.Sections), len(res.Exports))
	return nil
}

func (c *Console) cmdSymbols(s cmd.Selection) error {
	if c.assembler == nil {
		return fmt.Errorf("no assembly loaded, run \"assemble <file>\" first")
	}
	st := c.assembler.Symbols()
	for _, sym := range st.Globals() {
		c.printf("%-20s %-6s global\n", sym.Name, asm.FormatExpression("$", int(sym.Value)))
	}
	for _, sym := range st.Locals() {
		c.printf("%-20s %-6s local\n", sym.Name, asm.FormatExpression("$", int(sym.Value)))
	}
	return nil
}

func (c *Console) cmdSections(s cmd.Selection) error {
	if c.assembler == nil {
		return fmt.Errorf("no assembly loaded, run \"assemble <file>\" first")
	}
	for _, sec := range c.assembler.Sections() {
		bank := ""
		if sec.HasBank {
			bank = fmt.Sprintf(" bank %d", sec.Bank)
		}
		c.printf("%-12s %-6s start %-6s length %d%s\n", sec.Name, sec.Kind,
			asm.FormatExpression("$", int(sec.Start)), sec.Length, bank)
	}
	return nil
}

func (c *Console) cmdExports(s cmd.Selection) error {
	if c.result == nil {
		return fmt.Errorf("no assembly loaded, run \"assemble <file>\" first")
	}
	for _, e := range c.result.Exports {
		c.printf("%-20s %s\n", e.Name, asm.FormatExpression("$", int(e.Address)))
	}
	return nil
}

func (c *Console) cmdDisasm(s cmd.Selection) error {
	if c.result == nil {
		return fmt.Errorf("no assembly loaded, run \"assemble <file>\" first")
	}
	if len(s.Args) != 2 {
		return fmt.Errorf("usage: %s", s.Command.Usage)
	}
	addr, err := parseAddr(s.Args[0])
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(s.Args[1])
	if err != nil || count < 0 {
		return fmt.Errorf("invalid instruction count %q", s.Args[1])
	}

	mem := codeMemory(c.result.Code)
	a := dmgisa.Address(addr)
	for i := 0; i < count && int(a) < len(mem); i++ {
		here := a
		var line string
		line, a = disasm.Disassemble(c.set, mem, a)
		c.printf("%-6s %s\n", asm.FormatExpression("$", int(here)), line)
	}
	return nil
}

func (c *Console) cmdRegisters(s cmd.Selection) error {
	reg8, reg16 := disasm.RegisterNames()
	c.printf("8-bit:  %s\n", strings.Join(reg8, " "))
	c.printf("16-bit: %s\n", strings.Join(reg16, " "))
	return nil
}

func (c *Console) cmdQuit(s cmd.Selection) error {
	c.done = true
	return nil
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

// codeMemory adapts a flat assembled byte stream to disasm.Memory,
// reading zero past the end rather than panicking.
type codeMemory []byte

func (m codeMemory) ReadByte(addr dmgisa.Address) byte {
	if int(addr) >= len(m) {
		return 0
	}
	return m[addr]
}
