// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system symbols
var sysSymbol = SymbolTable{
	"MEMORY_SIZE": MEMORY_SIZE,
	"STACK_TOP":   STACK_TOP,
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass assembler for the accumulator processor.
//
// The first pass classifies each line, collects label addresses into the
// symbol table, and queues instructions, conditions, and watches with
// their labels unresolved. The second pass resolves every label against
// the completed symbol table, so forward references are always permitted.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Symbol  SymbolTable // Map of labels and equates to addresses.

	predefine SymbolTable     // Predefines
	lineNo    int             // Line being parsed.
	program   *Program        // Program being assembled.
	defined   map[string]bool // User-defined symbols.
	watched   map[string]bool // Watched symbols.
}

// Predefine defines a new symbol or redefines a predefined symbol.
func (asm *Assembler) Predefine(name string, value uint16) {
	if asm.predefine == nil {
		asm.predefine = SymbolTable{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// currentIp gets the address of the next instruction.
func (asm *Assembler) currentIp() int {
	return len(asm.program.Statements)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, address := range asm.Symbol {
		pred[name] = starlark.MakeInt(int(address))
	}
	pred["LINENO"] = starlark.MakeInt(asm.lineNo)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// expand replaces character literals and $(...) expressions with their values.
func (asm *Assembler) expand(line string) (expanded string, err error) {
	// Do 'x' evaluations
	expanded = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		}
		return fmt.Sprintf("%d", str[0])
	})

	// Do $() evaluations
	expanded = reExpression.ReplaceAllStringFunc(expanded, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// define binds a new symbol in the symbol table.
func (asm *Assembler) define(name string, value uint16) (err error) {
	if len(name) == 0 || strings.ContainsAny(name, CONDITION_PREFIX+WATCH_PREFIX+":") {
		err = ErrLabelSyntax
		return
	}

	// User symbols may shadow predefined ones, but not each other.
	if asm.defined[name] {
		err = ErrLabelDuplicate
		return
	}

	asm.defined[name] = true
	asm.Symbol[name] = value
	return
}

// parseLine classifies a single comment-free line of text.
func (asm *Assembler) parseLine(line string) (err error) {
	line, err = asm.expand(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		err = asm.define(label, uint16(asm.currentIp()))
		if err != nil {
			return
		}
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	switch {
	case words[0] == ".equ":
		// .equ NAME VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		var value uint16
		value, err = parseValue(words[2])
		if err != nil {
			return
		}
		err = asm.define(words[1], value)
	case strings.HasPrefix(words[0], CONDITION_PREFIX):
		var cond Condition
		cond, err = ParseCondition(strings.Join(words, " "))
		if err != nil {
			return
		}
		cond.LineNo = asm.lineNo
		asm.program.Conditions = append(asm.program.Conditions, cond)
	case strings.HasPrefix(words[0], WATCH_PREFIX):
		var watch Watch
		watch, err = ParseWatch(strings.Join(words, " "))
		if err != nil {
			return
		}
		if asm.watched[watch.Name] {
			return
		}
		asm.watched[watch.Name] = true
		watch.LineNo = asm.lineNo
		asm.program.Watches = append(asm.program.Watches, watch)
	default:
		var ins Instruction
		ins, err = ParseText(strings.Join(words, " "))
		if err != nil {
			return
		}
		stmt := Statement{
			LineNo:      asm.lineNo,
			Line:        line,
			Ip:          asm.currentIp(),
			Instruction: ins,
		}
		asm.program.Statements = append(asm.program.Statements, stmt)
	}

	return
}

// resolve is the second pass, binding all labels to their addresses.
func (asm *Assembler) resolve(table SymbolTable) (err error) {
	prog := asm.program

	for n := range prog.Statements {
		stmt := &prog.Statements[n]
		stmt.Instruction, err = stmt.Instruction.Resolve(table)
		if err != nil {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Line, Err: err}
			return
		}
	}

	for n := range prog.Conditions {
		cond := &prog.Conditions[n]
		*cond, err = cond.Resolve(table)
		if err != nil {
			err = &ErrSyntax{LineNo: cond.LineNo, Line: cond.String(), Err: err}
			return
		}
	}

	for n := range prog.Watches {
		watch := &prog.Watches[n]
		*watch, err = watch.Resolve(table)
		if err != nil {
			err = &ErrSyntax{LineNo: watch.LineNo, Line: WATCH_PREFIX + watch.Name, Err: err}
			return
		}
	}

	return
}

// Parse assembles an input stream into a resolved Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string

	asm.lineNo = 0
	asm.program = &Program{}
	asm.defined = make(map[string]bool)
	asm.watched = make(map[string]bool)
	asm.Symbol = maps.Clone(sysSymbol)
	for name, value := range asm.predefine {
		asm.Symbol[name] = value
	}

	for scanner.Scan() {
		text := scanner.Text()
		asm.lineNo += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", asm.lineNo, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		err = asm.parseLine(line)
		if err != nil {
			err = &ErrSyntax{LineNo: asm.lineNo, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// The symbol table is complete, and frozen from here on.
	table := maps.Clone(asm.Symbol)

	err = asm.resolve(table)
	if err != nil {
		return
	}

	prog = asm.program
	prog.Symbol = table

	if asm.Verbose {
		log.Printf("asm: %d words, %d symbols", len(prog.Statements), len(table))
	}

	return
}
