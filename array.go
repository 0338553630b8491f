package fixedfield

import (
	"fmt"
	"math"
	"reflect"
)

// Array repeats one element field across a fixed byte span. The element
// count is span / elem.Len().
type Array[T any] struct {
	elem  Field[T]
	span  int
	count int
}

// NewArray divides span bytes among copies of elem. The span must be a
// positive multiple of the element length.
func NewArray[T any](elem Field[T], span int) (*Array[T], error) {
	if elem == nil {
		return nil, fmt.Errorf("%w: array has no element field", ErrInvalidLayout)
	}
	step := elem.Len()
	if step <= 0 {
		return nil, fmt.Errorf("%w: element length %d", ErrInvalidLength, step)
	}
	if span <= 0 {
		return nil, fmt.Errorf("%w: array span %d", ErrInvalidLength, span)
	}
	if span%step != 0 {
		return nil, fmt.Errorf("%w: span %d, element length %d", ErrNonIntegralDivision, span, step)
	}
	return &Array[T]{elem: elem, span: span, count: span / step}, nil
}

// Repeat builds an array of count elements.
func Repeat[T any](elem Field[T], count int) (*Array[T], error) {
	if elem == nil {
		return nil, fmt.Errorf("%w: array has no element field", ErrInvalidLayout)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: element count %d", ErrInvalidLength, count)
	}
	if step := elem.Len(); step > 0 && count > math.MaxInt/step {
		return nil, fmt.Errorf("%w: %d elements of length %d overflow the span", ErrInvalidLength, count, step)
	}
	return NewArray(elem, count*elem.Len())
}

func (a *Array[T]) Kind() Kind  { return KindArray }
func (a *Array[T]) Len() int    { return a.span }
func (a *Array[T]) Count() int  { return a.count }
func (a *Array[T]) Elem() Codec { return a.elem }

func (a *Array[T]) Get(v View, base int) ([]T, error) {
	step := a.elem.Len()
	// The view bounds how many elements can decode before it faults.
	out := make([]T, 0, min(a.count, v.Len()/step+1))
	for i := 0; i < a.count; i++ {
		x, err := a.elem.Get(v, base+i*step)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (a *Array[T]) Set(v View, base int, values []T) error {
	if len(values) != a.count {
		return fmt.Errorf("%w: got %d elements, want %d", ErrArityMismatch, len(values), a.count)
	}
	step := a.elem.Len()
	for i, x := range values {
		if err := a.elem.Set(v, base+i*step, x); err != nil {
			return err
		}
	}
	return nil
}

func (a *Array[T]) GetValue(v View, base int) (any, error) {
	out, err := a.Get(v, base)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetValue accepts []T or any slice or array whose elements the element
// field's SetValue accepts.
func (a *Array[T]) SetValue(v View, base int, value any) error {
	if values, ok := value.([]T); ok {
		return a.Set(v, base, values)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("%w: array field cannot store %T", ErrTypeMismatch, value)
	}
	if rv.Len() != a.count {
		return fmt.Errorf("%w: got %d elements, want %d", ErrArityMismatch, rv.Len(), a.count)
	}
	step := a.elem.Len()
	for i := 0; i < a.count; i++ {
		if err := a.elem.SetValue(v, base+i*step, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
