// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"

	"github.com/ezrec/acc16/cpu"
	"github.com/ezrec/acc16/rom"
)

// Emulator state. CPU + program listing + memory image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Rom   rom.Rom   // Memory image loaded on reset.
	Trace io.Writer // If set, receives a line per executed instruction.

	fault *ErrRuntime // Latched runtime fault, cleared by Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Reset the emulator state, and load the memory image.
// If a Program is set, the image is assembled from it; otherwise
// the existing Rom is loaded as is.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil {
		emu.Rom.Data, err = emu.Program.Binary()
		if err != nil {
			return
		}
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.fault = nil

	err = emu.Cpu.Load(emu.Rom.Data)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the instruction at the program counter.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	stmt := emu.Program.Debug(emu.Cpu.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// trace reports the decoded instruction and register state.
func (emu *Emulator) trace(ins cpu.Instruction) {
	if emu.Trace == nil {
		return
	}

	fmt.Fprintf(emu.Trace, "%v - PC: %d, AC: %d, SP: %d\n", ins, emu.Cpu.Pc, emu.Cpu.Acc, emu.Cpu.Sp)
	emu.ReportWatches(emu.Trace)
}

// Tick performs a single instruction cycle of the emulator.
// Returns done once a stp instruction has executed.
// After a runtime fault, every Tick returns that fault until Reset.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.fault != nil {
		err = emu.fault
		return
	}

	if emu.Cpu.Fault != nil {
		err = &ErrRuntime{
			LineNo: emu.LineNo(),
			Ip:     emu.Cpu.Pc,
			Acc:    emu.Cpu.Acc,
			Sp:     emu.Cpu.Sp,
			Err:    emu.Cpu.Fault,
		}
		return
	}

	if emu.Cpu.Halted {
		done = true
		return
	}

	ip := emu.Cpu.Pc
	lineno := emu.LineNo()

	var disasm string
	defer func() {
		if err != nil {
			emu.Cpu.Fault = err
			emu.fault = &ErrRuntime{
				LineNo:      lineno,
				Ip:          ip,
				Instruction: disasm,
				Acc:         emu.Cpu.Acc,
				Sp:          emu.Cpu.Sp,
				Err:         err,
			}
			err = emu.fault
		}
	}()

	ins, err := emu.Cpu.Fetch()
	if err != nil {
		return
	}
	disasm = ins.String()

	emu.trace(ins)

	err = emu.Cpu.Execute(ins)
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks the emulator until the program halts, or faults.
// There is no step limit; a program that never halts runs forever.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Evaluate tests the program conditions against memory.
// Conditions are only meaningful once the program has halted.
func (emu *Emulator) Evaluate() (outcomes []cpu.Outcome, err error) {
	if !emu.Cpu.Halted {
		err = cpu.ErrNotHalted
		return
	}

	if emu.Program == nil {
		return
	}

	for _, cond := range emu.Program.Conditions {
		var outcome cpu.Outcome
		outcome, err = cond.Evaluate(&emu.Cpu.Memory)
		if err != nil {
			err = &ErrRuntime{
				LineNo:      cond.LineNo,
				Ip:          emu.Cpu.Pc,
				Instruction: cond.String(),
				Acc:         emu.Cpu.Acc,
				Sp:          emu.Cpu.Sp,
				Err:         err,
			}
			return
		}
		outcomes = append(outcomes, outcome)
	}

	return
}
