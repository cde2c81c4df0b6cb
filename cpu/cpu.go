// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Cpu is the complete machine state of the accumulator processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Acc    uint16 // Accumulator.
	Pc     uint16 // Program counter; address of the next instruction word.
	Sp     uint16 // Stack pointer; grows down from STACK_TOP.
	Memory Memory // Code, data, and stack.
	Halted bool   // Set once a stp instruction has executed.
	Fault  error  // First runtime fault; latched until Reset.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU in the reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Signed returns the two's-complement value of a word.
func Signed(word uint16) int16 {
	if word&0x8000 == 0 {
		return int16(word)
	}

	return -int16(^word) - 1
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X (%d)\n", "acc", cpu.Acc, Signed(cpu.Acc))
	text += fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %04X\n", "sp", cpu.Sp)

	var strval string
	val, ok := cpu.Peek()
	if ok && cpu.Depth() > 0 {
		strval = fmt.Sprintf("%04X", val)
	} else {
		strval = "----"
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", strval)

	return
}

// Reset the CPU state.
// - Zeros memory and the accumulator.
// - Sets the program counter to 0, and the stack pointer to STACK_TOP.
// - Clears any latched fault, and zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	cpu.Acc = 0
	cpu.Pc = 0
	cpu.Sp = STACK_TOP
	cpu.Halted = false
	cpu.Fault = nil
	cpu.Ticks = 0
}

// Load copies a program image into memory, starting at address 0.
func (cpu *Cpu) Load(words []uint16) (err error) {
	if len(words) > len(cpu.Memory) {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory[:], words)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// Fetch reads and decodes the instruction at the program counter,
// and advances the program counter past it.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	cpu.Pc++
	ins = Decode(word)

	return
}

// Tick executes a single CPU instruction cycle.
// A fault stops the machine: every later Tick returns the same error.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Fault != nil {
		err = cpu.Fault
		return
	}

	if cpu.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.Fault = err
		}
	}()

	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)
	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc, ins)
	}

	var address uint16
	if ins.Op.HasOperand() {
		address, err = ins.Label.Address()
		if err != nil {
			return
		}
	}

	mem := &cpu.Memory

	var value uint16
	switch ins.Op {
	case OP_LDA:
		value, err = mem.Read(address)
		if err == nil {
			cpu.Acc = value
		}
	case OP_STO:
		err = mem.Write(address, cpu.Acc)
	case OP_ADD:
		value, err = mem.Read(address)
		if err == nil {
			cpu.Acc += value
		}
	case OP_SUB:
		value, err = mem.Read(address)
		if err == nil {
			cpu.Acc -= value
		}
	case OP_JMP:
		cpu.Pc = address
	case OP_JGE:
		if Signed(cpu.Acc) >= 0 {
			cpu.Pc = address
		}
	case OP_JNE:
		if cpu.Acc != 0 {
			cpu.Pc = address
		}
	case OP_STP:
		cpu.Halted = true
	case OP_CALL:
		err = cpu.push(cpu.Pc)
		if err == nil {
			cpu.Pc = address
		}
	case OP_RETURN:
		value, err = cpu.pop()
		if err == nil {
			cpu.Pc = value
		}
	case OP_PUSH:
		err = cpu.push(cpu.Acc)
	case OP_POP:
		value, err = cpu.pop()
		if err == nil {
			cpu.Acc = value
		}
	case OP_LDR:
		// Acc = memory[memory[address]]
		value, err = mem.Read(address)
		if err == nil {
			value, err = mem.Read(value)
		}
		if err == nil {
			cpu.Acc = value
		}
	case OP_STR:
		// memory[memory[address]] = Acc
		value, err = mem.Read(address)
		if err == nil {
			err = mem.Write(value, cpu.Acc)
		}
	case OP_MOVPC:
		cpu.Pc = cpu.Acc
	case OP_MOVSP:
		cpu.Sp = cpu.Acc
	default:
		// OP_DEFW is data, and never decoded from a word.
		err = errors.Join(ErrOpcodeDecode, ErrOpcodeUnknown(ins.Op.String()))
	}

	if err != nil {
		return
	}

	cpu.Ticks++

	return
}
