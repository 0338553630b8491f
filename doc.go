// Package fixedfield describes the byte layout of a fixed size region once,
// as a tree of field descriptors, and reads or writes typed values through
// it over any byteview.View at any base offset.
//
//	header := fixedfield.Must(fixedfield.NewStruct(
//		fixedfield.Def("magic", fixedfield.Uint32(fixedfield.WithOrder(fixedfield.BigEndian))),
//		fixedfield.Def("name", fixedfield.Must(fixedfield.NewText(8))),
//	))
//	rec, err := header.Get(view, 0)
//
// Descriptors hold no buffer state and can be shared between goroutines.
// A failing composite write does not undo members already written.
package fixedfield
