package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeOp is an instruction operation.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_LDA    = CodeOp(0)  // lda
	OP_STO    = CodeOp(1)  // sto
	OP_ADD    = CodeOp(2)  // add
	OP_SUB    = CodeOp(3)  // sub
	OP_JMP    = CodeOp(4)  // jmp
	OP_JGE    = CodeOp(5)  // jge
	OP_JNE    = CodeOp(6)  // jne
	OP_STP    = CodeOp(7)  // stp
	OP_CALL   = CodeOp(8)  // call
	OP_RETURN = CodeOp(9)  // return
	OP_PUSH   = CodeOp(10) // push
	OP_POP    = CodeOp(11) // pop
	OP_LDR    = CodeOp(12) // ldr
	OP_STR    = CodeOp(13) // str
	OP_MOVPC  = CodeOp(14) // movpc
	OP_MOVSP  = CodeOp(15) // movsp
	OP_DEFW   = CodeOp(16) // defw
)

const (
	OPCODE_SHIFT = 12     // Opcode position in an instruction word.
	OPERAND_MASK = 0x0fff // Mask of the operand field.
)

// HasOperand returns true if the operation takes a label operand.
func (op CodeOp) HasOperand() bool {
	switch op {
	case OP_STP, OP_RETURN, OP_PUSH, OP_POP, OP_MOVPC, OP_MOVSP:
		return false
	}
	return true
}

// opMap maps mnemonics to operations.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, int(OP_DEFW)+1)
	for op := OP_LDA; op <= OP_DEFW; op++ {
		ops[op.String()] = op
	}
	return ops
}()

// Instruction is a single operation with its optional label operand.
type Instruction struct {
	Op    CodeOp
	Label Label
}

// ParseText parses a line of assembly text into an instruction.
func ParseText(line string) (ins Instruction, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeUnknown("")
		return
	}

	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeUnknown(words[0])
		return
	}

	args := words[1:]
	if !op.HasOperand() {
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		ins = Instruction{Op: op}
		return
	}

	switch {
	case len(args) == 0:
		err = ErrOpcodeValueMissing
		return
	case len(args) > 1:
		err = ErrOpcodeExtraArgs
		return
	}

	label := Symbol(args[0])
	if op == OP_DEFW && isNumeric(args[0]) {
		var value uint16
		value, err = parseValue(args[0])
		if err != nil {
			return
		}
		label = Address(value)
	}

	ins = Instruction{Op: op, Label: label}
	return
}

// isNumeric returns true if the word can only be a number.
func isNumeric(word string) bool {
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

// parseValue parses an unsigned 16-bit literal.
func parseValue(word string) (value uint16, err error) {
	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	return
}

// Decode decodes an instruction word. All sixteen opcodes are assigned,
// so every word decodes; OP_DEFW is never produced.
func Decode(word uint16) (ins Instruction) {
	op := CodeOp(word >> OPCODE_SHIFT)
	ins.Op = op
	if op.HasOperand() {
		ins.Label = Address(word & OPERAND_MASK)
	}
	return
}

// Encode encodes an instruction into a word.
func Encode(ins Instruction) (word uint16, err error) {
	if !ins.Op.HasOperand() {
		word = uint16(ins.Op) << OPCODE_SHIFT
		return
	}

	value, err := ins.Label.Address()
	if err != nil {
		return
	}

	if value > OPERAND_MASK {
		err = ErrAddressOutOfRange(value)
		return
	}

	if ins.Op == OP_DEFW {
		word = value
		return
	}

	word = (uint16(ins.Op) << OPCODE_SHIFT) | value
	return
}

// Resolve returns the instruction with its operand resolved.
func (ins Instruction) Resolve(table SymbolTable) (resolved Instruction, err error) {
	resolved = ins
	if !ins.Op.HasOperand() {
		return
	}

	resolved.Label, err = ins.Label.Resolve(table)
	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	if !ins.Op.HasOperand() {
		return ins.Op.String()
	}

	return fmt.Sprintf("%v %v", ins.Op, ins.Label)
}
