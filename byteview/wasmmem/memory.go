// Package wasmmem adapts wazero linear memory to byteview.View so field
// schemas can read and write guest memory directly.
package wasmmem

import (
	"encoding/binary"
	"fmt"

	"github.com/rawbytedev/fixedfield/byteview"
	"github.com/tetratelabs/wazero/api"
)

// Memory wraps a wazero memory. Offsets are guest addresses.
type Memory struct {
	mem api.Memory
}

func New(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

func (m *Memory) Len() int {
	if m.mem == nil {
		return 0
	}
	return int(m.mem.Size())
}

func (m *Memory) addr(off, width int) (uint32, error) {
	if m.mem == nil || off < 0 || width > m.Len()-off {
		return 0, fmt.Errorf("%w: offset=%d, width=%d, length=%d", byteview.ErrOutOfBounds, off, width, m.Len())
	}
	return uint32(off), nil
}

func (m *Memory) read(off, width int) ([]byte, error) {
	a, err := m.addr(off, width)
	if err != nil {
		return nil, err
	}
	data, ok := m.mem.Read(a, uint32(width))
	if !ok {
		return nil, fmt.Errorf("%w: offset=%d, width=%d", byteview.ErrOutOfBounds, off, width)
	}
	return data, nil
}

func (m *Memory) write(off int, data []byte) error {
	a, err := m.addr(off, len(data))
	if err != nil {
		return err
	}
	if !m.mem.Write(a, data) {
		return fmt.Errorf("%w: offset=%d, width=%d", byteview.ErrOutOfBounds, off, len(data))
	}
	return nil
}

func (m *Memory) ReadUint8(off int) (uint8, error) {
	a, err := m.addr(off, 1)
	if err != nil {
		return 0, err
	}
	b, ok := m.mem.ReadByte(a)
	if !ok {
		return 0, fmt.Errorf("%w: offset=%d, width=1", byteview.ErrOutOfBounds, off)
	}
	return b, nil
}

func (m *Memory) ReadInt8(off int) (int8, error) {
	u, err := m.ReadUint8(off)
	return int8(u), err
}

func (m *Memory) ReadUint16(off int, order byteview.Endianness) (uint16, error) {
	if order == byteview.BigEndian {
		data, err := m.read(off, 2)
		if err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint16(data), nil
	}
	a, err := m.addr(off, 2)
	if err != nil {
		return 0, err
	}
	v, ok := m.mem.ReadUint16Le(a)
	if !ok {
		return 0, fmt.Errorf("%w: offset=%d, width=2", byteview.ErrOutOfBounds, off)
	}
	return v, nil
}

func (m *Memory) ReadInt16(off int, order byteview.Endianness) (int16, error) {
	u, err := m.ReadUint16(off, order)
	return int16(u), err
}

func (m *Memory) ReadUint32(off int, order byteview.Endianness) (uint32, error) {
	if order == byteview.BigEndian {
		data, err := m.read(off, 4)
		if err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint32(data), nil
	}
	a, err := m.addr(off, 4)
	if err != nil {
		return 0, err
	}
	v, ok := m.mem.ReadUint32Le(a)
	if !ok {
		return 0, fmt.Errorf("%w: offset=%d, width=4", byteview.ErrOutOfBounds, off)
	}
	return v, nil
}

func (m *Memory) ReadInt32(off int, order byteview.Endianness) (int32, error) {
	u, err := m.ReadUint32(off, order)
	return int32(u), err
}

func (m *Memory) WriteUint8(off int, x uint8) error {
	a, err := m.addr(off, 1)
	if err != nil {
		return err
	}
	if !m.mem.WriteByte(a, x) {
		return fmt.Errorf("%w: offset=%d, width=1", byteview.ErrOutOfBounds, off)
	}
	return nil
}

func (m *Memory) WriteInt8(off int, x int8) error {
	return m.WriteUint8(off, uint8(x))
}

func (m *Memory) WriteUint16(off int, x uint16, order byteview.Endianness) error {
	if order == byteview.BigEndian {
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], x)
		return m.write(off, buf[:])
	}
	a, err := m.addr(off, 2)
	if err != nil {
		return err
	}
	if !m.mem.WriteUint16Le(a, x) {
		return fmt.Errorf("%w: offset=%d, width=2", byteview.ErrOutOfBounds, off)
	}
	return nil
}

func (m *Memory) WriteInt16(off int, x int16, order byteview.Endianness) error {
	return m.WriteUint16(off, uint16(x), order)
}

func (m *Memory) WriteUint32(off int, x uint32, order byteview.Endianness) error {
	if order == byteview.BigEndian {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], x)
		return m.write(off, buf[:])
	}
	a, err := m.addr(off, 4)
	if err != nil {
		return err
	}
	if !m.mem.WriteUint32Le(a, x) {
		return fmt.Errorf("%w: offset=%d, width=4", byteview.ErrOutOfBounds, off)
	}
	return nil
}

func (m *Memory) WriteInt32(off int, x int32, order byteview.Endianness) error {
	return m.WriteUint32(off, uint32(x), order)
}

var _ byteview.View = (*Memory)(nil)
