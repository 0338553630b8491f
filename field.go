package fixedfield

import "golang.org/x/text/encoding/charmap"

// Codec is the type-erased face of a field descriptor. Struct members are
// held as Codecs so a layout can mix value types.
type Codec interface {
	Kind() Kind
	// Len is the number of bytes the field occupies. It never changes.
	Len() int
	GetValue(v View, base int) (any, error)
	SetValue(v View, base int, value any) error
}

// Field reads and writes values of type T over a fixed byte range that
// starts at base. Implementations hold no buffer state and are safe for
// concurrent use.
type Field[T any] interface {
	Codec
	Get(v View, base int) (T, error)
	Set(v View, base int, value T) error
}

type options struct {
	offset  int
	order   Endianness
	noPad   bool
	charset *charmap.Charmap
}

// Option configures scalar and text fields. Options that do not apply to
// a field are ignored.
type Option func(*options)

// WithOffset shifts every access of the field by n bytes past its base.
func WithOffset(n int) Option {
	return func(o *options) { o.offset = n }
}

// WithOrder sets the byte order of 16 and 32 bit fields.
func WithOrder(e Endianness) Option {
	return func(o *options) { o.order = e }
}

// WithoutPadding makes text writes leave bytes past the value untouched
// instead of zeroing them.
func WithoutPadding() Option {
	return func(o *options) { o.noPad = true }
}

// WithCharset maps text bytes through cm instead of Latin-1.
func WithCharset(cm *charmap.Charmap) Option {
	return func(o *options) { o.charset = cm }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Must panics if err is non-nil. It is meant for schemas declared in
// package-level variables.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

type erased struct {
	Codec
}

func (e erased) Get(v View, base int) (any, error)     { return e.GetValue(v, base) }
func (e erased) Set(v View, base int, value any) error { return e.SetValue(v, base, value) }
func (e erased) Unwrap() Codec                         { return e.Codec }

// Erase adapts c to Field[any], for trees whose value types are only known
// at run time.
func Erase(c Codec) Field[any] {
	if f, ok := c.(Field[any]); ok {
		return f
	}
	return erased{c}
}

// Unwrap strips the adapters returned by Erase and Bind and returns the
// descriptor underneath.
func Unwrap(c Codec) Codec {
	for {
		u, ok := c.(interface{ Unwrap() Codec })
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
