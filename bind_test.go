package fixedfield

import (
	"sync"
	"testing"

	"github.com/rawbytedev/fixedfield/byteview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Tag uint8
	X   int16
	Y   int16 `fixedfield:"y"`
}

type header struct {
	ID     uint32 `fixedfield:"id"`
	From   point  `fixedfield:"from"`
	Name   string
	Values [2]uint16 `fixedfield:"values"`
	Steps  []int8    `fixedfield:"steps"`
	note   string
	Ignore int `fixedfield:"-"`
}

func headerStruct(t *testing.T) *Struct {
	t.Helper()
	return Must(NewStruct(
		Def("id", Uint32(WithOrder(BigEndian))),
		Def("from", pointStruct(t)),
		Def("name", Must(NewText(4))),
		Def("values", Must(Repeat[uint16](Uint16(), 2))),
		Def("steps", Must(Repeat[int8](Int8(), 3))),
	))
}

func TestBindRoundTrip(t *testing.T) {
	b, err := Bind[header](headerStruct(t))
	require.NoError(t, err)
	assert.Equal(t, KindStruct, b.Kind())
	assert.Equal(t, 4+5+4+4+3, b.Len())

	in := header{
		ID:     0xdeadbeef,
		From:   point{Tag: 1, X: -5, Y: 300},
		Name:   "abcd",
		Values: [2]uint16{7, 65535},
		Steps:  []int8{-1, 0, 1},
		note:   "unexported",
		Ignore: 9,
	}
	view := byteview.New(b.Len() + 1)
	require.NoError(t, b.Set(view, 1, in))
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, view.Bytes()[1:5])

	out, err := b.Get(view, 1)
	require.NoError(t, err)
	in.note, in.Ignore = "", 0
	assert.Equal(t, in, out)
}

func TestBindPointer(t *testing.T) {
	b := Must(Bind[point](pointStruct(t)))
	view := byteview.New(5)
	require.NoError(t, b.SetValue(view, 0, &point{Tag: 2, X: 3, Y: 4}))
	assert.Equal(t, []byte{2, 3, 0, 0, 4}, view.Bytes())

	require.NoError(t, b.SetValue(view, 0, Record{"tag": 5, "x": 6, "y": 7}))
	x, err := b.GetValue(view, 0)
	require.NoError(t, err)
	assert.Equal(t, point{Tag: 5, X: 6, Y: 7}, x)
}

func TestBindErrors(t *testing.T) {
	_, err := Bind[int](pointStruct(t))
	require.ErrorIs(t, err, ErrNotStruct)

	type partial struct {
		Tag uint8
		X   int16
	}
	_, err = Bind[partial](pointStruct(t))
	require.ErrorIs(t, err, ErrUnboundMember)
	assert.Contains(t, err.Error(), `"y"`)

	type wrong struct {
		Tag string
		X   int16
		Y   int16
	}
	b := Must(Bind[wrong](pointStruct(t)))
	_, err = b.Get(byteview.New(5), 0)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestBindChecksNestedStructs(t *testing.T) {
	type flat struct {
		Tag uint8
		X   int16
	}
	type outer struct {
		ID   uint32 `fixedfield:"id"`
		From flat   `fixedfield:"from"`
	}
	s := Must(NewStruct(Def("id", Uint32()), Def("from", pointStruct(t))))
	_, err := Bind[outer](s)
	require.ErrorIs(t, err, ErrUnboundMember)
	assert.Contains(t, err.Error(), `"from.y"`)

	type list struct {
		Items []flat `fixedfield:"items"`
	}
	arr := Must(NewStruct(Def("items", Must(Repeat[Record](pointStruct(t), 2)))))
	_, err = Bind[list](arr)
	require.ErrorIs(t, err, ErrUnboundMember)
	assert.Contains(t, err.Error(), `"items[].y"`)

	type ptr struct {
		ID   uint32 `fixedfield:"id"`
		From *point `fixedfield:"from"`
	}
	_, err = Bind[ptr](s)
	require.NoError(t, err)
}

func TestBoundAsMember(t *testing.T) {
	bp := Must(Bind[point](pointStruct(t)))
	outer := Must(NewStruct(Def("kind", Uint8()), Def("at", bp)))
	view := byteview.New(6)
	require.NoError(t, outer.Set(view, 0, Record{
		"kind": 1,
		"at":   point{Tag: 2, X: 3, Y: 4},
	}))
	got, err := outer.Get(view, 0)
	require.NoError(t, err)
	assert.Equal(t, Record{"kind": uint8(1), "at": point{Tag: 2, X: 3, Y: 4}}, got)

	var paths []string
	require.NoError(t, Walk(outer, func(path string, _ int, _ Codec) error {
		paths = append(paths, path)
		return nil
	}))
	assert.Equal(t, []string{"", "kind", "at", "at.tag", "at.x", "at.y"}, paths)
}

func TestBindIntoMapField(t *testing.T) {
	type wrapper struct {
		From map[string]any `fixedfield:"from"`
	}
	s := Must(NewStruct(Def("from", pointStruct(t))))
	b := Must(Bind[wrapper](s))
	view := sequential()
	got, err := b.Get(view, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got.From["tag"])
	assert.Equal(t, int16(1+2<<8), got.From["x"])
}

func TestBindConcurrentPlans(t *testing.T) {
	s := pointStruct(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := Bind[point](s)
			assert.NoError(t, err)
			view := byteview.New(5)
			assert.NoError(t, b.Set(view, 0, point{Tag: 1, X: 2, Y: 3}))
		}()
	}
	wg.Wait()
}
