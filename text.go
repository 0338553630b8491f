package fixedfield

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// replacement byte written for runes the charset cannot encode
const asciiSub = 0x1a

// Text is a fixed-slot, zero-terminated string with one byte per
// character. Reads stop at the first zero byte. Writes store at most Len
// characters and, unless WithoutPadding was given, zero the rest of the
// slot. Bytes of the value that are not valid UTF-8 are stored as is.
type Text struct {
	length  int
	offset  int
	pad     bool
	charset *charmap.Charmap
}

func NewText(length int, opts ...Option) (*Text, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: text length %d", ErrInvalidLength, length)
	}
	o := buildOptions(opts)
	return &Text{length: length, offset: o.offset, pad: !o.noPad, charset: o.charset}, nil
}

func (t *Text) Kind() Kind   { return KindText }
func (t *Text) Len() int     { return t.length }
func (t *Text) Offset() int  { return t.offset }
func (t *Text) Padded() bool { return t.pad }

func (t *Text) decode(b byte) rune {
	if t.charset != nil {
		return t.charset.DecodeByte(b)
	}
	return rune(b)
}

func (t *Text) encode(r rune) byte {
	if t.charset != nil {
		b, ok := t.charset.EncodeRune(r)
		if !ok {
			return asciiSub
		}
		return b
	}
	return byte(r)
}

func (t *Text) Get(v View, base int) (string, error) {
	at := base + t.offset
	var sb strings.Builder
	for i := 0; i < t.length; i++ {
		b, err := v.ReadUint8(at + i)
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		sb.WriteRune(t.decode(b))
	}
	return sb.String(), nil
}

func (t *Text) Set(v View, base int, value string) error {
	at := base + t.offset
	i := 0
	for rest := value; len(rest) > 0 && i < t.length; i++ {
		r, size := utf8.DecodeRuneInString(rest)
		b := rest[0]
		if r != utf8.RuneError || size != 1 {
			b = t.encode(r)
		}
		if err := v.WriteUint8(at+i, b); err != nil {
			return err
		}
		rest = rest[size:]
	}
	if !t.pad {
		return nil
	}
	for ; i < t.length; i++ {
		if err := v.WriteUint8(at+i, 0); err != nil {
			return err
		}
	}
	return nil
}

func (t *Text) GetValue(v View, base int) (any, error) {
	s, err := t.Get(v, base)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (t *Text) SetValue(v View, base int, value any) error {
	if x, ok := value.(string); ok {
		return t.Set(v, base, x)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return t.Set(v, base, rv.String())
	}
	return fmt.Errorf("%w: text field cannot store %T", ErrTypeMismatch, value)
}
