package cpu

import (
	"errors"

	"github.com/ezrec/acc16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrNotHalted      = errors.New(f("cpu not halted"))
	ErrStackExhausted = errors.New(f("stack exhausted"))
	ErrStackEmpty     = errors.New(f("stack empty"))
	ErrStackFull      = errors.New(f("stack full"))
	ErrProgramSize    = errors.New(f("program exceeds memory"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))

	// Label errors
	ErrLabelUnresolved = errors.New(f("label not resolved"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrConditionSyntax    = errors.New(f("condition syntax"))
	ErrConditionInvalid   = errors.New(f("condition invalid"))
	ErrWatchSyntax        = errors.New(f("watch syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
)

// ErrLabelMissing is returned when a referenced symbol was never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcodeUnknown is returned for an unrecognized mnemonic.
type ErrOpcodeUnknown string

func (eo ErrOpcodeUnknown) Error() string {
	return f("unknown opcode '%v'", string(eo))
}

// ErrAddressOutOfRange is returned when an address or operand does not fit.
type ErrAddressOutOfRange uint32

func (ea ErrAddressOutOfRange) Error() string {
	return f("address %#04x out of range", uint32(ea))
}

// Is matches any ErrAddressOutOfRange, regardless of the address.
func (ea ErrAddressOutOfRange) Is(err error) (ok bool) {
	_, ok = err.(ErrAddressOutOfRange)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
