// Package byteview provides offset-addressed, byte-order aware access to
// fixed-size byte regions. Field descriptors in package fixedfield read and
// write integers exclusively through the View interface, so any memory that
// can satisfy it (a Go slice, a wasm linear memory, a traced wrapper) can be
// decoded with the same schema.
package byteview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds  = errors.New("byteview: access out of bounds")
	ErrInvalidOrder = errors.New("byteview: invalid byte order")
)

// Endianness selects the byte order of multi-byte integers.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseEndianness accepts little, le, big and be in any case.
// An empty string yields LittleEndian.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return LittleEndian, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

// View is a fixed-size byte region addressed by absolute offsets.
// Implementations decide how out-of-range accesses are reported.
type View interface {
	Len() int

	ReadInt8(off int) (int8, error)
	ReadUint8(off int) (uint8, error)
	ReadInt16(off int, order Endianness) (int16, error)
	ReadUint16(off int, order Endianness) (uint16, error)
	ReadInt32(off int, order Endianness) (int32, error)
	ReadUint32(off int, order Endianness) (uint32, error)

	WriteInt8(off int, v int8) error
	WriteUint8(off int, v uint8) error
	WriteInt16(off int, v int16, order Endianness) error
	WriteUint16(off int, v uint16, order Endianness) error
	WriteInt32(off int, v int32, order Endianness) error
	WriteUint32(off int, v uint32, order Endianness) error
}
