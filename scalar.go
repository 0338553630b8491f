package fixedfield

import (
	"fmt"

	"github.com/rawbytedev/fixedfield/internal/common"
)

// Integer is the set of value types carried by scalar fields.
type Integer interface {
	int8 | int16 | int32 | uint8 | uint16 | uint32
}

// Scalar is a fixed-width integer field. Values are not range checked:
// SetValue converts any Go integer with Go's wrapping conversion.
type Scalar[T Integer] struct {
	kind   Kind
	offset int
	order  Endianness
}

func newScalar[T Integer](k Kind, opts []Option) *Scalar[T] {
	o := buildOptions(opts)
	return &Scalar[T]{kind: k, offset: o.offset, order: o.order}
}

func Int8(opts ...Option) *Scalar[int8]     { return newScalar[int8](KindInt8, opts) }
func Int16(opts ...Option) *Scalar[int16]   { return newScalar[int16](KindInt16, opts) }
func Int32(opts ...Option) *Scalar[int32]   { return newScalar[int32](KindInt32, opts) }
func Uint8(opts ...Option) *Scalar[uint8]   { return newScalar[uint8](KindUint8, opts) }
func Uint16(opts ...Option) *Scalar[uint16] { return newScalar[uint16](KindUint16, opts) }
func Uint32(opts ...Option) *Scalar[uint32] { return newScalar[uint32](KindUint32, opts) }

func (s *Scalar[T]) Kind() Kind        { return s.kind }
func (s *Scalar[T]) Len() int          { return s.kind.Size() }
func (s *Scalar[T]) Offset() int       { return s.offset }
func (s *Scalar[T]) Order() Endianness { return s.order }

func (s *Scalar[T]) Get(v View, base int) (T, error) {
	at := base + s.offset
	switch s.kind {
	case KindInt8:
		x, err := v.ReadInt8(at)
		return T(x), err
	case KindUint8:
		x, err := v.ReadUint8(at)
		return T(x), err
	case KindInt16:
		x, err := v.ReadInt16(at, s.order)
		return T(x), err
	case KindUint16:
		x, err := v.ReadUint16(at, s.order)
		return T(x), err
	case KindInt32:
		x, err := v.ReadInt32(at, s.order)
		return T(x), err
	case KindUint32:
		x, err := v.ReadUint32(at, s.order)
		return T(x), err
	}
	return 0, fmt.Errorf("%w: %s is not a scalar", ErrTypeMismatch, s.kind)
}

func (s *Scalar[T]) Set(v View, base int, value T) error {
	at := base + s.offset
	switch s.kind {
	case KindInt8:
		return v.WriteInt8(at, int8(value))
	case KindUint8:
		return v.WriteUint8(at, uint8(value))
	case KindInt16:
		return v.WriteInt16(at, int16(value), s.order)
	case KindUint16:
		return v.WriteUint16(at, uint16(value), s.order)
	case KindInt32:
		return v.WriteInt32(at, int32(value), s.order)
	case KindUint32:
		return v.WriteUint32(at, uint32(value), s.order)
	}
	return fmt.Errorf("%w: %s is not a scalar", ErrTypeMismatch, s.kind)
}

func (s *Scalar[T]) GetValue(v View, base int) (any, error) {
	x, err := s.Get(v, base)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (s *Scalar[T]) SetValue(v View, base int, value any) error {
	if x, ok := value.(T); ok {
		return s.Set(v, base, x)
	}
	n, ok := common.AsInt64(value)
	if !ok {
		return fmt.Errorf("%w: %s field cannot store %T", ErrTypeMismatch, s.kind, value)
	}
	return s.Set(v, base, T(n))
}
