package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/acc16/cpu"
)

// printListing writes the resolved program, conditions, and symbol table.
func printListing(w io.Writer, prog *cpu.Program) {
	progTable := table.NewWriter()
	progTable.SetTitle("Program")
	progTable.AppendHeader(table.Row{"Addr", "Word", "Instruction", "Line", "Source"})
	for _, stmt := range prog.Statements {
		word, err := cpu.Encode(stmt.Instruction)
		wordText := fmt.Sprintf("%04x", word)
		if err != nil {
			wordText = "----"
		}
		progTable.AppendRow(table.Row{
			fmt.Sprintf("%03d", stmt.Ip),
			wordText,
			stmt.Instruction.String(),
			stmt.LineNo,
			stmt.Line,
		})
	}
	fmt.Fprintln(w, progTable.Render())

	if len(prog.Conditions) > 0 {
		condTable := table.NewWriter()
		condTable.SetTitle("Conditions")
		condTable.AppendHeader(table.Row{"Line", "Condition"})
		for _, cond := range prog.Conditions {
			condTable.AppendRow(table.Row{cond.LineNo, cond.String()})
		}
		fmt.Fprintln(w, condTable.Render())
	}

	symTable := table.NewWriter()
	symTable.SetTitle("Symbols")
	symTable.AppendHeader(table.Row{"Symbol", "Address"})
	for name, address := range prog.Symbols() {
		symTable.AppendRow(table.Row{name, address})
	}
	fmt.Fprintln(w, symTable.Render())
}
