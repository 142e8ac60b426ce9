// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mir extracts return-oriented gadgets from machine IR
// function dumps.
//
// Each dump file holds one function: a "name:" line followed by basic
// blocks. A block starts at a line whose first word begins with "bb",
// is separated from its instructions by a blank line (optionally
// preceded by a "successors" line), and ends at the next blank line.
// An instruction is either "%dst = OP operands..." or "OP operands...".
// Instructions between "BUNDLE {" and "}" issue together.
package mir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IssueWidth is the offset, in bits, taken by one issued instruction
// or bundle.
const IssueWidth = 32

// GadgetLen is the maximum number of instructions in a gadget.
const GadgetLen = 4

// An Instruction is a single machine instruction.
type Instruction struct {
	// Src is set when the instruction has a destination register,
	// which is then Operands[0].
	Src       bool     `json:"src"`
	Operation string   `json:"operation"`
	Operands  []string `json:"operands"`
}

// A Block is a basic block. Each element of Issues is what issues in
// one slot: a single instruction or every instruction of a bundle.
type Block struct {
	Issues [][]Instruction
}

// A Function is a parsed function dump.
type Function struct {
	Name   string
	Blocks []Block
}

// A Program is a set of functions sorted by name.
type Program struct {
	Functions []*Function
}

// A Gadget is the tail of a returning block.
type Gadget struct {
	// Offset is the program offset just past the block.
	Offset       uint64        `json:"offset"`
	Instructions []Instruction `json:"instructions"`
}

// SyntaxError reports a malformed function dump.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

type parser struct {
	s        *bufio.Scanner
	fileName string
	line     int
}

func (p *parser) next() (string, bool) {
	if !p.s.Scan() {
		return "", false
	}
	p.line++
	return p.s.Text(), true
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{p.fileName, p.line, fmt.Sprintf(format, args...)}
}

// ReadFunction parses the function dump read from r. fileName is used
// in error messages.
func ReadFunction(r io.Reader, fileName string) (*Function, error) {
	p := &parser{s: bufio.NewScanner(r), fileName: fileName}
	p.s.Buffer(nil, 1<<20)

	f := new(Function)
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch {
		case fields[0] == "name:":
			if len(fields) < 2 {
				return nil, p.errorf("missing function name")
			}
			f.Name = fields[1]
		case strings.HasPrefix(fields[0], "bb"):
			b, err := p.block()
			if err != nil {
				return nil, err
			}
			f.Blocks = append(f.Blocks, b)
		}
	}
	if err := p.s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	if f.Name == "" {
		return nil, &SyntaxError{FileName: fileName, Msg: "no function name"}
	}
	return f, nil
}

func (p *parser) block() (Block, error) {
	var b Block

	// Skip the separator line, and the successors line before it.
	line, ok := p.next()
	if !ok {
		return b, nil
	}
	if fields := strings.Fields(line); len(fields) > 0 && strings.HasPrefix(fields[0], "successor") {
		p.next()
	}

	for {
		line, ok := p.next()
		if !ok {
			return b, nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return b, nil
		}

		if fields[0] == "BUNDLE" {
			insts, err := p.bundle()
			if err != nil {
				return b, err
			}
			b.Issues = append(b.Issues, insts)
			continue
		}
		r, _ := utf8.DecodeRuneInString(fields[0])
		if r == '%' || unicode.IsLetter(r) {
			inst, err := p.instruction(fields)
			if err != nil {
				return b, err
			}
			b.Issues = append(b.Issues, []Instruction{inst})
		}
	}
}

func (p *parser) bundle() ([]Instruction, error) {
	var insts []Instruction
	for {
		line, ok := p.next()
		if !ok {
			return nil, p.errorf("unterminated BUNDLE")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "}" {
			return insts, nil
		}
		inst, err := p.instruction(fields)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
}

func (p *parser) instruction(fields []string) (Instruction, error) {
	inst := Instruction{Operands: []string{}}
	if strings.HasPrefix(fields[0], "%") {
		if len(fields) < 3 || fields[1] != "=" {
			return inst, p.errorf("malformed instruction %q", strings.Join(fields, " "))
		}
		inst.Src = true
		inst.Operands = append(inst.Operands, operand(fields[0]))
		inst.Operation = fields[2]
		fields = fields[3:]
	} else {
		inst.Operation = fields[0]
		fields = fields[1:]
	}
	for _, f := range fields {
		inst.Operands = append(inst.Operands, operand(f))
	}
	return inst, nil
}

// operand strips the separator following an operand word.
func operand(word string) string {
	if i := strings.IndexByte(word, ','); i >= 0 {
		return word[:i]
	}
	return word
}

// ReadProgram parses every function dump in paths.
func ReadProgram(paths []string) (*Program, error) {
	prog := new(Program)
	for _, path := range paths {
		f, err := readFunctionFile(path)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, f)
	}
	sort.SliceStable(prog.Functions, func(i, j int) bool {
		return prog.Functions[i].Name < prog.Functions[j].Name
	})
	return prog, nil
}

func readFunctionFile(path string) (*Function, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadFunction(file, path)
}

// Gadgets returns the gadget of every returning block of p, in
// program order. A block returns if its last instruction is
// "JMPret %r31" or its operation contains "return".
func (p *Program) Gadgets() []Gadget {
	gadgets := []Gadget{}
	var offset uint64
	for _, f := range p.Functions {
		for _, b := range f.Blocks {
			var insts []Instruction
			for _, issue := range b.Issues {
				offset += IssueWidth
				insts = append(insts, issue...)
			}
			if len(insts) == 0 || !isReturn(insts[len(insts)-1]) {
				continue
			}
			tail := insts[max(0, len(insts)-GadgetLen):]
			gadgets = append(gadgets, Gadget{
				Offset:       offset,
				Instructions: append([]Instruction(nil), tail...),
			})
		}
	}
	return gadgets
}

func isReturn(inst Instruction) bool {
	if inst.Operation == "JMPret" && len(inst.Operands) > 0 && inst.Operands[0] == "%r31" {
		return true
	}
	return strings.Contains(inst.Operation, "return")
}
