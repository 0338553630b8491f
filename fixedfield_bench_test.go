package fixedfield

import (
	"testing"

	"github.com/rawbytedev/fixedfield/byteview"
)

func BenchmarkScalarGet(b *testing.B) {
	f := Uint32(WithOrder(BigEndian))
	view := byteview.New(8)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = f.Get(view, 4)
	}
}

func BenchmarkScalarSet(b *testing.B) {
	f := Int16()
	view := byteview.New(8)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.Set(view, 2, int16(i))
	}
}

func BenchmarkTextGet(b *testing.B) {
	f := Must(NewText(16))
	view := byteview.Wrap([]byte("benchmark-name\x00\x00"))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = f.Get(view, 0)
	}
}

func benchStruct() *Struct {
	point := Must(NewStruct(Def("x", Int16()), Def("y", Int16())))
	return Must(NewStruct(
		Def("id", Uint32(WithOrder(BigEndian))),
		Def("name", Must(NewText(8))),
		Def("points", Must(Repeat[Record](point, 4))),
	))
}

func BenchmarkStructGet(b *testing.B) {
	s := benchStruct()
	view := byteview.New(s.Len())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get(view, 0)
	}
}

func BenchmarkStructSet(b *testing.B) {
	s := benchStruct()
	view := byteview.New(s.Len())
	pts := make([]Record, 4)
	for i := range pts {
		pts[i] = Record{"x": int16(i), "y": int16(-i)}
	}
	rec := Record{"id": uint32(7), "name": "bench", "points": pts}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Set(view, 0, rec)
	}
}

func BenchmarkBoundGet(b *testing.B) {
	type pt struct{ X, Y int16 }
	type row struct {
		ID     uint32
		Name   string
		Points [4]pt
	}
	bound := Must(Bind[row](benchStruct()))
	view := byteview.New(bound.Len())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = bound.Get(view, 0)
	}
}
