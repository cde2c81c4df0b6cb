package cpu

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Statement is a line of assembled source with its instruction.
type Statement struct {
	LineNo      int
	Line        string
	Ip          int
	Instruction Instruction
}

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
	Symbol     SymbolTable
	Conditions []Condition
	Watches    []Watch
}

// Debug returns the statement assembled at an address, or nil.
func (prog *Program) Debug(ip uint16) (stmt *Statement) {
	for n := range prog.Statements {
		if prog.Statements[n].Ip == int(ip) {
			stmt = &prog.Statements[n]
			break
		}
	}

	return
}

// Binary encodes the program into the memory image loaded at address 0.
func (prog *Program) Binary() (bins []uint16, err error) {
	if len(prog.Statements) > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	for _, stmt := range prog.Statements {
		var word uint16
		word, err = Encode(stmt.Instruction)
		if err != nil {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Line, Err: err}
			return
		}
		bins = append(bins, word)
	}

	return
}

// Instructions iterates over the program instructions, by address.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Ip, stmt.Instruction) {
				return
			}
		}
	}
}

// Symbols iterates over the symbol table, sorted by address then name.
func (prog *Program) Symbols() iter.Seq2[string, uint16] {
	return func(yield func(name string, address uint16) bool) {
		names := slices.SortedFunc(maps.Keys(prog.Symbol), func(a, b string) int {
			if prog.Symbol[a] != prog.Symbol[b] {
				return int(prog.Symbol[a]) - int(prog.Symbol[b])
			}
			return strings.Compare(a, b)
		})
		for _, name := range names {
			if !yield(name, prog.Symbol[name]) {
				return
			}
		}
	}
}
