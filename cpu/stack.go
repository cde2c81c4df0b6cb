package cpu

import (
	"errors"
)

const (
	STACK_TOP = MEMORY_SIZE - 1 // Initial stack pointer.
)

// push decrements the stack pointer, then stores the value at it.
func (cpu *Cpu) push(value uint16) (err error) {
	if cpu.Sp == 0 || int(cpu.Sp) > len(cpu.Memory) {
		err = errors.Join(ErrStackExhausted, ErrStackFull)
		return
	}

	cpu.Sp--
	cpu.Memory[cpu.Sp] = value
	return
}

// pop reads the value at the stack pointer, then increments it.
func (cpu *Cpu) pop() (value uint16, err error) {
	value, ok := cpu.Peek()
	if !ok {
		err = errors.Join(ErrStackExhausted, ErrStackEmpty)
		return
	}

	cpu.Sp++
	return
}

// Peek returns the value at the stack pointer, if it is within memory.
func (cpu *Cpu) Peek() (value uint16, ok bool) {
	if int(cpu.Sp) >= len(cpu.Memory) {
		return
	}

	return cpu.Memory[cpu.Sp], true
}

// Depth returns the number of words pushed below the initial stack pointer.
func (cpu *Cpu) Depth() int {
	return STACK_TOP - int(cpu.Sp)
}
