// Package rom holds assembled acc16 memory images, and their on-disk form:
// a sequence of big-endian 16-bit words, loaded at address 0.
package rom

import (
	"encoding/binary"
	"errors"
	"io"
	"io/fs"

	"github.com/ezrec/acc16/translate"
)

var f = translate.From

var (
	ErrOddLength = errors.New(f("image has an odd number of bytes"))
)

// Rom is a memory image.
type Rom struct {
	Data []uint16
}

// Marshal writes the image words to a stream.
func (rom *Rom) Marshal(w io.Writer) (err error) {
	return binary.Write(w, binary.BigEndian, rom.Data)
}

// Unmarshal replaces the image with the words read from a stream.
func (rom *Rom) Unmarshal(r io.Reader) (err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(raw)%2 != 0 {
		err = ErrOddLength
		return
	}

	data := make([]uint16, len(raw)/2)
	for n := range data {
		data[n] = binary.BigEndian.Uint16(raw[n*2:])
	}

	rom.Data = data
	return
}

// Load reads an image file from a file system.
func Load(filesys fs.FS, name string) (rom *Rom, err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	rom = &Rom{}
	err = rom.Unmarshal(inf)
	if err != nil {
		rom = nil
	}

	return
}
