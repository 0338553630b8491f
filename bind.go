package fixedfield

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/rawbytedev/fixedfield/internal/common"
)

// TagName is the struct tag that names the member a Go field binds to.
const TagName = "fixedfield"

type bindPlan struct {
	byTag  map[string]int
	byName map[string]int
}

func (p *bindPlan) lookup(name string) (int, bool) {
	if i, ok := p.byTag[name]; ok {
		return i, true
	}
	i, ok := p.byName[strings.ToLower(name)]
	return i, ok
}

type planCache struct {
	mu    sync.RWMutex
	plans map[reflect.Type]*bindPlan
}

var plans = &planCache{plans: make(map[reflect.Type]*bindPlan)}

func (c *planCache) get(t reflect.Type) *bindPlan {
	c.mu.RLock()
	if p, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return p
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if p, ok := c.plans[t]; ok {
		return p
	}

	p := &bindPlan{byTag: make(map[string]int), byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // skip unexported
		}
		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		if tag != "" {
			p.byTag[tag] = i
			continue
		}
		p.byName[strings.ToLower(sf.Name)] = i
	}
	c.plans[t] = p
	return p
}

// Bound maps a Struct's Record onto the Go struct type T. Go fields are
// matched to members by the `fixedfield:"name"` tag, or else by
// case-insensitive field name. Integer, string, struct, slice and array
// fields are supported, recursively.
type Bound[T any] struct {
	s *Struct
}

// Bind checks that every member of s has a Go field in T, recursing into
// members whose Go field is itself a struct, or a slice or array of one.
func Bind[T any](s *Struct) (*Bound[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	if err := checkBinding(s, t, ""); err != nil {
		return nil, err
	}
	return &Bound[T]{s: s}, nil
}

// checkBinding verifies every member of s, and of the structs nested in
// it, has a Go field in t.
func checkBinding(s *Struct, t reflect.Type, path string) error {
	p := plans.get(t)
	for _, m := range s.members {
		i, ok := p.lookup(m.Name)
		if !ok {
			return fmt.Errorf("%w: %q in %s", ErrUnboundMember, path+m.Name, t)
		}
		if err := checkNested(m.Field, t.Field(i).Type, path+m.Name); err != nil {
			return err
		}
	}
	return nil
}

func checkNested(c Codec, ft reflect.Type, path string) error {
	for ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	switch n := Unwrap(c).(type) {
	case *Struct:
		if ft.Kind() == reflect.Struct {
			return checkBinding(n, ft, path+".")
		}
	case container:
		if ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array {
			return checkNested(n.Elem(), ft.Elem(), path+"[]")
		}
	}
	return nil
}

func (b *Bound[T]) Kind() Kind      { return KindStruct }
func (b *Bound[T]) Len() int        { return b.s.Len() }
func (b *Bound[T]) Struct() *Struct { return b.s }
func (b *Bound[T]) Unwrap() Codec   { return b.s }

func (b *Bound[T]) Get(v View, base int) (T, error) {
	var out T
	rec, err := b.s.Get(v, base)
	if err != nil {
		return out, err
	}
	if err := assign(reflect.ValueOf(&out).Elem(), rec); err != nil {
		return out, err
	}
	return out, nil
}

func (b *Bound[T]) Set(v View, base int, value T) error {
	rec, err := recordFor(b.s, reflect.ValueOf(value))
	if err != nil {
		return err
	}
	return b.s.Set(v, base, rec)
}

func (b *Bound[T]) GetValue(v View, base int) (any, error) {
	x, err := b.Get(v, base)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (b *Bound[T]) SetValue(v View, base int, value any) error {
	switch x := value.(type) {
	case T:
		return b.Set(v, base, x)
	case *T:
		return b.Set(v, base, *x)
	}
	return b.s.SetValue(v, base, value)
}

// assign stores a decoded value into dst.
func assign(dst reflect.Value, src any) error {
	if src == nil {
		return nil
	}
	if reflect.TypeOf(src).AssignableTo(dst.Type()) {
		dst.Set(reflect.ValueOf(src))
		return nil
	}
	switch x := src.(type) {
	case Record:
		return assignRecord(dst, x)
	case string:
		if dst.Kind() != reflect.String {
			break
		}
		dst.SetString(x)
		return nil
	}
	if n, ok := common.AsInt64(src); ok {
		if common.SetInteger(dst, n) {
			return nil
		}
		return mismatch(dst, src)
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Slice {
		return mismatch(dst, src)
	}
	switch dst.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := assign(out.Index(i), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		if dst.Len() != rv.Len() {
			return fmt.Errorf("%w: got %d elements for %s", ErrArityMismatch, rv.Len(), dst.Type())
		}
		for i := 0; i < rv.Len(); i++ {
			if err := assign(dst.Index(i), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	return mismatch(dst, src)
}

func assignRecord(dst reflect.Value, rec Record) error {
	switch dst.Kind() {
	case reflect.Struct:
		p := plans.get(dst.Type())
		for name, x := range rec {
			i, ok := p.lookup(name)
			if !ok {
				continue
			}
			if err := assign(dst.Field(i), x); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		rv := reflect.ValueOf(rec)
		if !rv.Type().ConvertibleTo(dst.Type()) {
			return mismatch(dst, rec)
		}
		dst.Set(rv.Convert(dst.Type()))
		return nil
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assignRecord(dst.Elem(), rec)
	}
	return mismatch(dst, rec)
}

func mismatch(dst reflect.Value, src any) error {
	return fmt.Errorf("%w: cannot assign %T to %s", ErrTypeMismatch, src, dst.Type())
}

// recordFor builds the Record s expects from the Go struct in rv.
func recordFor(s *Struct, rv reflect.Value) (Record, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil value", ErrTypeMismatch)
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Map {
		switch m := rv.Interface().(type) {
		case Record:
			return m, nil
		case map[string]any:
			return Record(m), nil
		}
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: cannot encode %s as a struct", ErrTypeMismatch, rv.Type())
	}
	p := plans.get(rv.Type())
	rec := make(Record, len(s.members))
	for _, m := range s.members {
		i, ok := p.lookup(m.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnboundMember, m.Name, rv.Type())
		}
		x, err := valueFor(m.Field, rv.Field(i))
		if err != nil {
			return nil, err
		}
		rec[m.Name] = x
	}
	return rec, nil
}

// valueFor converts a Go value into the form c's SetValue accepts.
func valueFor(c Codec, rv reflect.Value) (any, error) {
	switch n := Unwrap(c).(type) {
	case *Struct:
		return recordFor(n, rv)
	case container:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			break
		}
		out := make([]any, rv.Len())
		for i := range out {
			x, err := valueFor(n.Elem(), rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return rv.Interface(), nil
}
