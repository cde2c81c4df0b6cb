// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/tebeka/atexit"

	"github.com/ezrec/acc16/cpu"
	"github.com/ezrec/acc16/emulator"
	"github.com/ezrec/acc16/rom"
)

const (
	EXIT_OK      = 0 // Program halted, all conditions met.
	EXIT_FAILURE = 1 // Assembly or runtime failure.
	EXIT_UNMET   = 2 // Program halted, some condition not met.
)

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	atexit.Exit(EXIT_FAILURE)
}

// writeImage saves a memory image to a file.
func writeImage(output string, image *rom.Rom) (err error) {
	ouf, err := os.Create(output)
	if err != nil {
		return
	}
	defer ouf.Close()

	err = image.Marshal(ouf)
	if err != nil {
		return
	}

	err = ouf.Close()
	return
}

func main() {
	var compile string
	var binary string
	var output string
	var trace bool
	var verbose bool
	var interactive bool

	flag.StringVar(&compile, "c", "", ".s file to compile")
	flag.StringVar(&binary, "b", "", ".bin image to run")
	flag.StringVar(&output, "o", "", "Save the image to a .bin file, do not execute")
	flag.BoolVar(&trace, "t", true, "Trace each executed instruction")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&interactive, "i", false, "Inspect memory after the program halts")

	flag.Parse()

	if len(compile) == 0 && len(binary) == 0 && flag.NArg() == 1 {
		compile = flag.Arg(0)
	} else if flag.NArg() != 0 {
		fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	switch {
	case len(compile) != 0:
		src, err := os.ReadFile(compile)
		if err != nil {
			fatalf("%v: %v", compile, err)
		}

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(bytes.NewReader(src))
		if err != nil {
			printDiagnostic(os.Stderr, compile, src, err)
			atexit.Exit(EXIT_FAILURE)
		}

		printListing(os.Stdout, prog)
		emu.Program = prog

		err = emu.Reset()
		if err != nil {
			printDiagnostic(os.Stderr, compile, src, err)
			atexit.Exit(EXIT_FAILURE)
		}
	case len(binary) != 0:
		image, err := rom.Load(os.DirFS(filepath.Dir(binary)), filepath.Base(binary))
		if err != nil {
			fatalf("%v: %v", binary, err)
		}
		emu.Rom = *image

		err = emu.Reset()
		if err != nil {
			fatalf("%v: %v", binary, err)
		}
	default:
		fatalf("%v: One of -c or -b is required", os.Args[0])
	}

	if len(output) != 0 {
		err := writeImage(output, &emu.Rom)
		if err != nil {
			fatalf("%v: %v", output, err)
		}
		atexit.Exit(EXIT_OK)
	}

	if trace {
		emu.Trace = os.Stdout
	}

	err := emu.Run()
	if err != nil {
		log.Print(emu.Cpu.String())
		fatalf("%v", err)
	}

	code := EXIT_OK
	outcomes, err := emu.Evaluate()
	for _, outcome := range outcomes {
		os.Stdout.WriteString(outcome.String() + "\n")
		if !outcome.Met {
			code = EXIT_UNMET
		}
	}
	if err != nil {
		fatalf("%v", err)
	}

	if interactive {
		inspect(emu)
	}

	atexit.Exit(code)
}
