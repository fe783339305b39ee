// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package console provides an interactive command prompt on top of the
// assembler: assemble a file, then inspect the resulting symbol table,
// section map, exports, and disassembly without re-running the one-shot
// CLI for every question.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/term"

	dmgisa "github.com/dmgasm/dmgasm"
	"github.com/dmgasm/dmgasm/asm"
)

// Console holds the state an interactive session accumulates: the
// instruction set it assembles against and the result of the most
// recent successful assembly.
type Console struct {
	input  *bufio.Scanner
	output *bufio.Writer

	set       *dmgisa.Set
	assembler *asm.Assembler
	result    *asm.Result

	done bool
}

// New creates a Console bound to the default LR35902 instruction set.
func New() *Console {
	return &Console{set: dmgisa.Default()}
}

// Run reads commands from r, one line at a time, writing prompts and
// output to w, until r is exhausted or the "quit" command is entered.
// When r is a terminal, Run prints a banner and a prompt before each
// line; terminal detection is the one place this pulls in term, since
// line reading itself is ordinary buffered scanning, same as a one-shot
// file read.
func (c *Console) Run(r io.Reader, w io.Writer) {
	c.input = bufio.NewScanner(r)
	c.output = bufio.NewWriter(w)
	defer c.output.Flush()

	interactive := false
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		interactive = true
	}

	if interactive {
		c.println("dmgasm console. Type 'help' for a command list, 'quit' to exit.")
	}

	for !c.done {
		if interactive {
			c.printf("dmgasm> ")
			c.output.Flush()
		}
		if !c.input.Scan() {
			break
		}
		line := strings.TrimSpace(c.input.Text())
		if err := c.process(line); err != nil {
			c.printf("ERROR: %v\n", err)
		}
		c.output.Flush()
	}
}

func (c *Console) process(line string) error {
	if line == "" {
		return nil
	}

	s, err := commands.Lookup(line)
	switch {
	case err == cmd.ErrNotFound:
		c.println("Command not found.")
		return nil
	case err == cmd.ErrAmbiguous:
		c.println("Command is ambiguous.")
		return nil
	case err != nil:
		return err
	}

	if s.Command == nil {
		return nil
	}
	if s.Command.Data == nil && s.Command.Subtree != nil {
		c.displayCommands(s.Command.Subtree)
		return nil
	}

	handler := s.Command.Data.(func(*Console, cmd.Selection) error)
	return handler(c, s)
}

func (c *Console) displayCommands(tree *cmd.Tree) {
	c.printf("%s commands:\n", tree.Title)
	for _, cc := range tree.Commands {
		if cc.Brief != "" {
			c.printf("    %-15s  %s\n", cc.Name, cc.Brief)
		}
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.output, format, args...)
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.output, args...)
}
