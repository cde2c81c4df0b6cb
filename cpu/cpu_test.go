package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Acc = 5
	cpu.Pc = 6
	cpu.Sp = 7
	cpu.Memory[10] = 11
	cpu.Halted = true
	cpu.Fault = ErrStackEmpty
	cpu.Ticks = 12

	cpu.Reset()
	assert.Equal(uint16(0), cpu.Acc)
	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(uint16(STACK_TOP), cpu.Sp)
	assert.Equal(uint16(0), cpu.Memory[10])
	assert.False(cpu.Halted)
	assert.NoError(cpu.Fault)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint16{0x0004, 0x7000, 0, 0, 42}))
	assert.Equal(uint16(0x0004), cpu.Memory[0])
	assert.Equal(uint16(42), cpu.Memory[4])

	assert.NoError(cpu.Load(make([]uint16, MEMORY_SIZE)))
	assert.ErrorIs(cpu.Load(make([]uint16, MEMORY_SIZE+1)), ErrProgramSize)
}

func TestSigned(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word     uint16
		expected int16
	}){
		{0x0000, 0},
		{0x0001, 1},
		{0x7fff, 32767},
		{0x8000, -32768},
		{0xfffe, -2},
		{0xffff, -1},
	}

	for _, entry := range table {
		assert.Equal(entry.expected, Signed(entry.word), "%#04x", entry.word)
	}
}

func TestCpu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       CodeOp
		acc      uint16
		value    uint16
		expected uint16
	}){
		{OP_ADD, 65535, 1, 0},
		{OP_ADD, 0x8000, 0x8000, 0},
		{OP_ADD, 5, 7, 12},
		{OP_SUB, 0, 1, 65535},
		{OP_SUB, 12, 7, 5},
		{OP_SUB, 0x8000, 0xffff, 0x8001},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Memory[100] = entry.value
		cpu.Acc = entry.acc
		err := cpu.Execute(Instruction{entry.op, Address(100)})
		assert.NoError(err)
		assert.Equal(entry.expected, cpu.Acc, "%v %v %v", entry.acc, entry.op, entry.value)
	}
}

func TestCpu_LoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[20] = 0xbeef

	assert.NoError(cpu.Execute(Instruction{OP_LDA, Address(20)}))
	assert.Equal(uint16(0xbeef), cpu.Acc)

	assert.NoError(cpu.Execute(Instruction{OP_STO, Address(21)}))
	assert.Equal(uint16(0xbeef), cpu.Memory[21])
	assert.Equal(2, cpu.Ticks)
}

func TestCpu_Indirect(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[30] = 40 // pointer
	cpu.Memory[40] = 0x1234

	assert.NoError(cpu.Execute(Instruction{OP_LDR, Address(30)}))
	assert.Equal(uint16(0x1234), cpu.Acc)

	cpu.Acc = 0x5678
	cpu.Memory[30] = 41
	assert.NoError(cpu.Execute(Instruction{OP_STR, Address(30)}))
	assert.Equal(uint16(0x5678), cpu.Memory[41])
	assert.Equal(uint16(0x1234), cpu.Memory[40])
}

func TestCpu_Jumps(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     CodeOp
		acc    uint16
		branch bool
	}){
		{OP_JMP, 0, true},
		{OP_JMP, 0x8000, true},
		{OP_JGE, 0, true},
		{OP_JGE, 1, true},
		{OP_JGE, 0x7fff, true},
		{OP_JGE, 0x8000, false},
		{OP_JGE, 0xffff, false},
		{OP_JNE, 0, false},
		{OP_JNE, 1, true},
		{OP_JNE, 0x8000, true},
		{OP_JNE, 0xffff, true},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Pc = 3
		cpu.Acc = entry.acc
		err := cpu.Execute(Instruction{entry.op, Address(50)})
		assert.NoError(err)
		if entry.branch {
			assert.Equal(uint16(50), cpu.Pc, "%v acc=%#04x", entry.op, entry.acc)
		} else {
			assert.Equal(uint16(3), cpu.Pc, "%v acc=%#04x", entry.op, entry.acc)
		}
	}
}

func TestCpu_Moves(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Acc = 77
	assert.NoError(cpu.Execute(Instruction{Op: OP_MOVPC}))
	assert.Equal(uint16(77), cpu.Pc)

	cpu.Acc = 128
	assert.NoError(cpu.Execute(Instruction{Op: OP_MOVSP}))
	assert.Equal(uint16(128), cpu.Sp)
}

func TestCpu_Stop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint16{0x7000}))
	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
	assert.Equal(uint16(1), cpu.Pc)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
	assert.Equal(1, cpu.Ticks)
}

func TestCpu_Fetch(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint16{0x2005, 0x7000}))

	ins, err := cpu.Fetch()
	assert.NoError(err)
	assert.Equal(Instruction{OP_ADD, Address(5)}, ins)
	assert.Equal(uint16(1), cpu.Pc)

	cpu.Pc = MEMORY_SIZE
	_, err = cpu.Fetch()
	assert.ErrorIs(err, ErrAddressOutOfRange(0))
	assert.Equal(uint16(MEMORY_SIZE), cpu.Pc)
}

func TestCpu_AddressOutOfRange(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []CodeOp{OP_LDA, OP_STO, OP_ADD, OP_SUB, OP_LDR, OP_STR} {
		cpu := NewCpu()
		cpu.Acc = 9
		err := cpu.Execute(Instruction{op, Address(MEMORY_SIZE)})
		assert.ErrorIs(err, ErrAddressOutOfRange(0), op.String())
		assert.Equal(uint16(9), cpu.Acc, op.String())
		assert.Equal(0, cpu.Ticks, op.String())
	}

	// Indirect through an out of range pointer.
	for _, op := range []CodeOp{OP_LDR, OP_STR} {
		cpu := NewCpu()
		cpu.Memory[10] = 0x0fff
		err := cpu.Execute(Instruction{op, Address(10)})
		assert.ErrorIs(err, ErrAddressOutOfRange(0x0fff), op.String())
	}

	// Jumps may leave memory, but the next fetch faults.
	cpu := NewCpu()
	assert.NoError(cpu.Load([]uint16{0x4400})) // jmp 0x400
	assert.NoError(cpu.Tick())
	assert.Equal(uint16(0x400), cpu.Pc)
	assert.ErrorIs(cpu.Tick(), ErrAddressOutOfRange(0))
}

func TestCpu_Unexecutable(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.ErrorIs(cpu.Execute(Instruction{OP_DEFW, Address(3)}), ErrOpcodeDecode)
	assert.ErrorIs(cpu.Execute(Instruction{OP_LDA, Symbol("x")}), ErrLabelUnresolved)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Acc = 0xffff
	text := cpu.String()
	assert.Contains(text, "acc: FFFF (-1)")
	assert.Contains(text, "sp: 00FF")
	assert.Contains(text, "stack: ----")

	cpu.Acc = 0x42
	assert.NoError(cpu.Execute(Instruction{Op: OP_PUSH}))
	assert.Contains(cpu.String(), "stack: 0042")
}

func TestCpu_FaultLatched(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// lda 300; lda 4; stp; 0; 1
	assert.NoError(cpu.Load([]uint16{0x012c, 0x0004, 0x7000, 0, 1}))

	err := cpu.Tick()
	assert.ErrorIs(err, ErrAddressOutOfRange(0))
	assert.Equal(err, cpu.Fault)
	assert.Equal(uint16(1), cpu.Pc)

	// The faulting instruction is not skipped over.
	assert.Equal(err, cpu.Tick())
	assert.Equal(uint16(1), cpu.Pc)
	assert.Equal(uint16(0), cpu.Acc)
	assert.False(cpu.Halted)
	assert.Equal(0, cpu.Ticks)

	cpu.Reset()
	assert.NoError(cpu.Fault)
	assert.NoError(cpu.Load([]uint16{0x7000}))
	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
}
