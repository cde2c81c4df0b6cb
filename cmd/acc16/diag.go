package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/acc16/cpu"
)

const (
	CONTEXT_LINES = 2 // Source lines shown around an error.
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func dim(s string) string  { return "\x1b[2m" + s + "\x1b[0m" }
func bold(s string) string { return "\x1b[1m" + s + "\x1b[0m" }

// colorize returns true if the writer is a color capable terminal.
func colorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	if len(os.Getenv("NO_COLOR")) != 0 {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// printDiagnostic writes an error, with the source lines surrounding it.
func printDiagnostic(w io.Writer, name string, src []byte, err error) {
	color := colorize(w)
	paint := func(fn func(string) string, s string) string {
		if color {
			return fn(s)
		}
		return s
	}

	var se *cpu.ErrSyntax
	if !errors.As(err, &se) {
		fmt.Fprintf(w, "%v: %v\n", name, paint(red, err.Error()))
		return
	}

	fmt.Fprintf(w, "%v:%d: %v\n", paint(bold, name), se.LineNo, paint(red, se.Err.Error()))

	lines := strings.Split(string(src), "\n")
	first := max(se.LineNo-CONTEXT_LINES, 1)
	last := min(se.LineNo+CONTEXT_LINES, len(lines))
	for lineno := first; lineno <= last; lineno++ {
		text := fmt.Sprintf("%5d | %v", lineno, strings.TrimRight(lines[lineno-1], "\r"))
		if lineno == se.LineNo {
			fmt.Fprintln(w, paint(red, text))
		} else {
			fmt.Fprintln(w, paint(dim, text))
		}
	}
}
