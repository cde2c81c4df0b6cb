package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/acc16/cpu"
	"github.com/ezrec/acc16/emulator"
)

func newInspected(t *testing.T, program ...string) (emu *emulator.Emulator) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	emu = emulator.NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	return
}

func TestInspectLookup(t *testing.T) {
	assert := assert.New(t)

	emu := newInspected(t, "lda x", "sub y", "sto z", "stp", "x: defw 5", "y: defw 7", "z: defw 0")

	table := [](struct {
		word    string
		address uint16
		err     error
	}){
		{"x", 4, nil},
		{"z", 6, nil},
		{"STACK_TOP", cpu.STACK_TOP, nil},
		{"12", 12, nil},
		{"0x10", 16, nil},
		{"nowhere", 0, cpu.ErrLabelMissing("nowhere")},
		{"0x10000", 0, cpu.ErrLabelMissing("0x10000")},
	}

	for _, entry := range table {
		address, err := lookup(emu, entry.word)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.word)
			continue
		}
		assert.NoError(err, entry.word)
		assert.Equal(entry.address, address, entry.word)
	}
}

func TestInspectCommand(t *testing.T) {
	assert := assert.New(t)

	emu := newInspected(t, "lda x", "sub y", "sto z", "stp", "x: defw 5", "y: defw 7", "z: defw 0")

	table := [](struct {
		line string
		out  string
		quit bool
	}){
		{"", "", false},
		{"   ", "", false},
		{"quit", "", true},
		{"exit", "", true},
		{"help", inspectHelp, false},
		{"?", inspectHelp, false},
		{"x", "x @ 4: 5 (0x0005, 5)", false},
		{"z", "z @ 6: 65534 (0xfffe, -2)", false},
		{"4", "4 @ 4: 5 (0x0005, 5)", false},
		{"x y", cpu.ErrOpcodeExtraArgs.Error(), false},
		{"nowhere", cpu.ErrLabelMissing("nowhere").Error(), false},
		{"300", cpu.ErrAddressOutOfRange(300).Error(), false},
		{"dump 0 1 2", cpu.ErrOpcodeExtraArgs.Error(), false},
		{"dump nowhere", cpu.ErrLabelMissing("nowhere").Error(), false},
	}

	for _, entry := range table {
		out, quit := inspectCommand(emu, entry.line)
		assert.Equal(entry.out, out, entry.line)
		assert.Equal(entry.quit, quit, entry.line)
	}

	out, quit := inspectCommand(emu, "regs")
	assert.False(quit)
	assert.Equal(strings.TrimRight(emu.Cpu.String(), "\n"), out)
	assert.Contains(out, "FFFE (-2)")
}

func TestInspectDump(t *testing.T) {
	assert := assert.New(t)

	emu := newInspected(t, "lda x", "sub y", "sto z", "stp", "x: defw 5", "y: defw 7", "z: defw 0")

	out := dump(emu, 0, 8)
	assert.Contains(out, "0004")
	assert.Contains(out, "3005")
	assert.Contains(out, "1006")
	assert.Contains(out, "7000")
	assert.Contains(out, "fffe")
	assert.Contains(out, "000")
	assert.NotContains(out, "008")

	// Two rows, the second one partial.
	out = dump(emu, 4, 10)
	assert.Contains(out, "004")
	assert.Contains(out, "012")
	assert.NotContains(out, "020")

	// Clipped to the end of memory.
	out = dump(emu, cpu.MEMORY_SIZE-2, dumpDefault)
	assert.Contains(out, "254")
	assert.NotContains(out, "256")

	cmdOut, _ := inspectCommand(emu, "dump x 3")
	assert.Equal(dump(emu, 4, 3), cmdOut)

	cmdOut, _ = inspectCommand(emu, "dump")
	assert.Equal(dump(emu, 0, dumpDefault), cmdOut)
}
