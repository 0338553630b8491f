package wasmmem

import (
	"context"
	"testing"

	"github.com/rawbytedev/fixedfield"
	"github.com/rawbytedev/fixedfield/byteview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
)

// one page of memory exported as "memory"
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func newMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })
	mod, err := rt.Instantiate(ctx, memoryModule)
	require.NoError(t, err)
	mem := mod.ExportedMemory("memory")
	require.NotNil(t, mem)
	return New(mem)
}

func TestMemoryLen(t *testing.T) {
	m := newMemory(t)
	assert.Equal(t, 65536, m.Len())
	assert.Equal(t, 0, New(nil).Len())
}

func TestMemoryByteOrder(t *testing.T) {
	m := newMemory(t)
	for i := 0; i < 16; i++ {
		require.NoError(t, m.WriteUint8(i, uint8(i)))
	}

	u16, err := m.ReadUint16(3, byteview.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(3+4<<8), u16)
	u16, err = m.ReadUint16(3, byteview.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint16(3<<8+4), u16)

	u32, err := m.ReadUint32(3, byteview.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(3+4<<8+5<<16+6<<24), u32)
	u32, err = m.ReadUint32(3, byteview.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, uint32(3<<24+4<<16+5<<8+6), u32)
}

func TestMemorySignedRoundTrip(t *testing.T) {
	m := newMemory(t)
	require.NoError(t, m.WriteInt8(100, -5))
	require.NoError(t, m.WriteInt16(101, -300, byteview.BigEndian))
	require.NoError(t, m.WriteInt32(103, -70000, byteview.LittleEndian))
	require.NoError(t, m.WriteInt32(107, -70000, byteview.BigEndian))

	i8, err := m.ReadInt8(100)
	require.NoError(t, err)
	assert.Equal(t, int8(-5), i8)
	i16, err := m.ReadInt16(101, byteview.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, int16(-300), i16)
	i32, err := m.ReadInt32(103, byteview.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, int32(-70000), i32)
	i32, err = m.ReadInt32(107, byteview.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, int32(-70000), i32)
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := newMemory(t)
	_, err := m.ReadUint32(65534, byteview.LittleEndian)
	require.ErrorIs(t, err, byteview.ErrOutOfBounds)
	_, err = m.ReadUint8(-1)
	require.ErrorIs(t, err, byteview.ErrOutOfBounds)
	require.ErrorIs(t, m.WriteUint16(65535, 1, byteview.BigEndian), byteview.ErrOutOfBounds)
}

func TestStructOverGuestMemory(t *testing.T) {
	m := newMemory(t)
	header := fixedfield.Must(fixedfield.NewStruct(
		fixedfield.Def("magic", fixedfield.Uint32(fixedfield.WithOrder(byteview.BigEndian))),
		fixedfield.Def("version", fixedfield.Uint16()),
		fixedfield.Def("name", fixedfield.Must(fixedfield.NewText(6))),
	))
	rec := fixedfield.Record{"magic": uint32(0x7f454c46), "version": uint16(2), "name": "guest"}
	require.NoError(t, header.Set(m, 1024, rec))

	got, err := header.Get(m, 1024)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	b, err := m.ReadUint8(1024)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7f), b)
}
