package emulator

import (
	"github.com/ezrec/acc16/translate"
)

var f = translate.From

// ErrRuntime indicates the location and machine state of a runtime error.
type ErrRuntime struct {
	LineNo      int    // Source line, or 0 if unknown.
	Ip          uint16 // Address of the failing instruction.
	Instruction string // Disassembly of the failing instruction, if fetched.
	Acc         uint16 // Accumulator at failure.
	Sp          uint16 // Stack pointer at failure.
	Err         error
}

func (err *ErrRuntime) Error() string {
	return f("line %d ip %#03x '%v' acc %#04x sp %#04x: %v",
		err.LineNo, err.Ip, err.Instruction, err.Acc, err.Sp, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrWatchUnknown is returned for a name that is not watched.
type ErrWatchUnknown string

func (err ErrWatchUnknown) Error() string {
	return f("'%v' is not watched", string(err))
}
