package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/tebeka/atexit"

	"github.com/ezrec/acc16/cpu"
	"github.com/ezrec/acc16/emulator"
)

const (
	historyFile = ".acc16_history"
	promptMain  = "acc16> "
	dumpWidth   = 8  // Words per dump row.
	dumpDefault = 64 // Words dumped when no count is given.
)

const inspectHelp = `Commands:
  <label|address>        show a memory cell
  dump [start [count]]   show a range of memory
  regs                   show the registers
  help                   show this text
  quit                   leave the inspector`

// inspect runs an interactive read-eval loop over the halted machine.
func inspect(emu *emulator.Emulator) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	atexit.Register(func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
		ln.Close()
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		out, quit := inspectCommand(emu, line)
		if quit {
			return
		}
		if len(out) != 0 {
			fmt.Println(out)
		}
		if len(strings.TrimSpace(line)) != 0 {
			ln.AppendHistory(line)
		}
	}
}

// lookup converts a label or number into a memory address.
func lookup(emu *emulator.Emulator, word string) (address uint16, err error) {
	if emu.Program != nil {
		var ok bool
		address, ok = emu.Program.Symbol[word]
		if ok {
			return
		}
	}

	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = cpu.ErrLabelMissing(word)
		return
	}

	address = uint16(v64)
	return
}

// inspectCommand evaluates a single inspector command.
func inspectCommand(emu *emulator.Emulator, line string) (out string, quit bool) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case "quit", "exit":
		quit = true
	case "help", "?":
		out = inspectHelp
	case "regs":
		out = strings.TrimRight(emu.Cpu.String(), "\n")
	case "dump":
		start := uint16(0)
		count := dumpDefault
		var err error
		if len(words) > 1 {
			start, err = lookup(emu, words[1])
		}
		if err == nil && len(words) > 2 {
			var n uint16
			n, err = lookup(emu, words[2])
			count = int(n)
		}
		if err == nil && len(words) > 3 {
			err = cpu.ErrOpcodeExtraArgs
		}
		if err != nil {
			out = err.Error()
			return
		}
		out = dump(emu, start, count)
	default:
		if len(words) > 1 {
			out = cpu.ErrOpcodeExtraArgs.Error()
			return
		}
		address, err := lookup(emu, words[0])
		if err != nil {
			out = err.Error()
			return
		}
		value, err := emu.Cpu.Memory.Read(address)
		if err != nil {
			out = err.Error()
			return
		}
		out = fmt.Sprintf("%v @ %d: %d (0x%04x, %d)", words[0], address, value, value, cpu.Signed(value))
	}

	return
}

// dump renders a range of memory as a table.
func dump(emu *emulator.Emulator, start uint16, count int) string {
	mem := &emu.Cpu.Memory
	end := min(int(start)+count, len(mem))

	header := table.Row{"Addr"}
	for n := range dumpWidth {
		header = append(header, fmt.Sprintf("+%d", n))
	}

	dumpTable := table.NewWriter()
	dumpTable.AppendHeader(header)
	for base := int(start); base < end; base += dumpWidth {
		row := table.Row{fmt.Sprintf("%03d", base)}
		for n := range dumpWidth {
			if base+n >= end {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%04x", mem[base+n]))
		}
		dumpTable.AppendRow(row)
	}

	return dumpTable.Render()
}
