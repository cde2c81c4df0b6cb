package emulator

import (
	"fmt"
	"io"
)

// ReportWatches writes the current value of each watched memory cell,
// in declaration order. Memory is not modified.
func (emu *Emulator) ReportWatches(w io.Writer) {
	if emu.Program == nil {
		return
	}

	for _, watch := range emu.Program.Watches {
		value, err := emu.Watch(watch.Name)
		if err != nil {
			fmt.Fprintf(w, "%v: %v\n", watch.Name, err)
			continue
		}
		fmt.Fprintf(w, "%v: %d\n", watch.Name, value)
	}
}

// Watch returns the current value of a watched memory cell.
func (emu *Emulator) Watch(name string) (value uint16, err error) {
	if emu.Program == nil {
		err = ErrWatchUnknown(name)
		return
	}

	for _, watch := range emu.Program.Watches {
		if watch.Name != name {
			continue
		}
		var address uint16
		address, err = watch.Label.Address()
		if err != nil {
			return
		}
		value, err = emu.Cpu.Memory.Read(address)
		return
	}

	err = ErrWatchUnknown(name)
	return
}
