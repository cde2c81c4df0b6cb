package cpu

const (
	MEMORY_SIZE = 256 // Words of memory.
)

// Memory is the flat word memory shared by code, data, and the stack.
type Memory [MEMORY_SIZE]uint16

// Read returns the word at an address.
func (mem *Memory) Read(address uint16) (value uint16, err error) {
	if int(address) >= len(mem) {
		err = ErrAddressOutOfRange(address)
		return
	}

	value = mem[address]
	return
}

// Write stores a word at an address.
func (mem *Memory) Write(address uint16, value uint16) (err error) {
	if int(address) >= len(mem) {
		err = ErrAddressOutOfRange(address)
		return
	}

	mem[address] = value
	return
}
