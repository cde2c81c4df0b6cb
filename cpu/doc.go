// Package cpu implements the processor and assembler for the acc16 system.
//
// The CPU is a 16-bit, single accumulator machine with a program counter,
// a downward growing stack pointer, and 256 words of memory shared by code,
// data, and stack. Instruction words hold a 4-bit opcode and a 12-bit
// operand address.
//
// The assembler is a two pass assembler supporting labels, equates,
// compile-time expressions, post-execution conditions, and memory watches.
package cpu
