package byteview

import (
	"encoding/binary"
	"fmt"
)

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Buffer is a View backed by a Go byte slice. Every access is bounds
// checked against the slice length.
type Buffer struct {
	b []byte
}

// New allocates a zeroed buffer of size bytes.
func New(size int) *Buffer {
	return &Buffer{b: make([]byte, size)}
}

// Wrap uses b directly; writes through the Buffer are visible in b.
func Wrap(b []byte) *Buffer {
	return &Buffer{b: b}
}

func (v *Buffer) Bytes() []byte { return v.b }

func (v *Buffer) Len() int { return len(v.b) }

func (v *Buffer) span(off, width int) ([]byte, error) {
	if off < 0 || width > len(v.b)-off {
		return nil, fmt.Errorf("%w: offset=%d, width=%d, length=%d", ErrOutOfBounds, off, width, len(v.b))
	}
	return v.b[off : off+width], nil
}

func (v *Buffer) ReadUint8(off int) (uint8, error) {
	b, err := v.span(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (v *Buffer) ReadInt8(off int) (int8, error) {
	u, err := v.ReadUint8(off)
	return int8(u), err
}

func (v *Buffer) ReadUint16(off int, order Endianness) (uint16, error) {
	b, err := v.span(off, 2)
	if err != nil {
		return 0, err
	}
	return order.ByteOrder().Uint16(b), nil
}

func (v *Buffer) ReadInt16(off int, order Endianness) (int16, error) {
	u, err := v.ReadUint16(off, order)
	return int16(u), err
}

func (v *Buffer) ReadUint32(off int, order Endianness) (uint32, error) {
	b, err := v.span(off, 4)
	if err != nil {
		return 0, err
	}
	return order.ByteOrder().Uint32(b), nil
}

func (v *Buffer) ReadInt32(off int, order Endianness) (int32, error) {
	u, err := v.ReadUint32(off, order)
	return int32(u), err
}

func (v *Buffer) WriteUint8(off int, x uint8) error {
	b, err := v.span(off, 1)
	if err != nil {
		return err
	}
	b[0] = x
	return nil
}

func (v *Buffer) WriteInt8(off int, x int8) error {
	return v.WriteUint8(off, uint8(x))
}

func (v *Buffer) WriteUint16(off int, x uint16, order Endianness) error {
	b, err := v.span(off, 2)
	if err != nil {
		return err
	}
	order.ByteOrder().PutUint16(b, x)
	return nil
}

func (v *Buffer) WriteInt16(off int, x int16, order Endianness) error {
	return v.WriteUint16(off, uint16(x), order)
}

func (v *Buffer) WriteUint32(off int, x uint32, order Endianness) error {
	b, err := v.span(off, 4)
	if err != nil {
		return err
	}
	order.ByteOrder().PutUint32(b, x)
	return nil
}

func (v *Buffer) WriteInt32(off int, x int32, order Endianness) error {
	return v.WriteUint32(off, uint32(x), order)
}

var _ View = (*Buffer)(nil)
