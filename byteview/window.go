package byteview

import "fmt"

// Window exposes size bytes of a parent view starting at base. Offsets
// passed to a Window are relative to base.
type Window struct {
	parent View
	base   int
	size   int
}

// Slice returns a window over parent. The range must lie inside parent.
func Slice(parent View, base, size int) (*Window, error) {
	if base < 0 || size < 0 || size > parent.Len()-base {
		return nil, fmt.Errorf("%w: window base=%d, size=%d, length=%d", ErrOutOfBounds, base, size, parent.Len())
	}
	return &Window{parent: parent, base: base, size: size}, nil
}

func (w *Window) Len() int { return w.size }

func (w *Window) at(off, width int) (int, error) {
	if off < 0 || width > w.size-off {
		return 0, fmt.Errorf("%w: offset=%d, width=%d, window=%d", ErrOutOfBounds, off, width, w.size)
	}
	return w.base + off, nil
}

func (w *Window) ReadInt8(off int) (int8, error) {
	p, err := w.at(off, 1)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadInt8(p)
}

func (w *Window) ReadUint8(off int) (uint8, error) {
	p, err := w.at(off, 1)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadUint8(p)
}

func (w *Window) ReadInt16(off int, order Endianness) (int16, error) {
	p, err := w.at(off, 2)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadInt16(p, order)
}

func (w *Window) ReadUint16(off int, order Endianness) (uint16, error) {
	p, err := w.at(off, 2)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadUint16(p, order)
}

func (w *Window) ReadInt32(off int, order Endianness) (int32, error) {
	p, err := w.at(off, 4)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadInt32(p, order)
}

func (w *Window) ReadUint32(off int, order Endianness) (uint32, error) {
	p, err := w.at(off, 4)
	if err != nil {
		return 0, err
	}
	return w.parent.ReadUint32(p, order)
}

func (w *Window) WriteInt8(off int, x int8) error {
	p, err := w.at(off, 1)
	if err != nil {
		return err
	}
	return w.parent.WriteInt8(p, x)
}

func (w *Window) WriteUint8(off int, x uint8) error {
	p, err := w.at(off, 1)
	if err != nil {
		return err
	}
	return w.parent.WriteUint8(p, x)
}

func (w *Window) WriteInt16(off int, x int16, order Endianness) error {
	p, err := w.at(off, 2)
	if err != nil {
		return err
	}
	return w.parent.WriteInt16(p, x, order)
}

func (w *Window) WriteUint16(off int, x uint16, order Endianness) error {
	p, err := w.at(off, 2)
	if err != nil {
		return err
	}
	return w.parent.WriteUint16(p, x, order)
}

func (w *Window) WriteInt32(off int, x int32, order Endianness) error {
	p, err := w.at(off, 4)
	if err != nil {
		return err
	}
	return w.parent.WriteInt32(p, x, order)
}

func (w *Window) WriteUint32(off int, x uint32, order Endianness) error {
	p, err := w.at(off, 4)
	if err != nil {
		return err
	}
	return w.parent.WriteUint32(p, x, order)
}

var _ View = (*Window)(nil)
