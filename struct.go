package fixedfield

import (
	"fmt"
	"math"
	"reflect"
)

// Member is one named entry of a struct layout.
type Member struct {
	Name  string
	Field Codec
}

// Def pairs a member name with its field.
func Def(name string, f Codec) Member {
	return Member{Name: name, Field: f}
}

// Layout lists struct members in byte order.
type Layout []Member

// Record is the value of a Struct field, keyed by member name.
type Record map[string]any

// Struct lays its members out back to back in declaration order with no
// padding. Its length is the sum of the member lengths.
type Struct struct {
	members Layout
	offsets []int
	index   map[string]int
	length  int
}

func NewStruct(members ...Member) (*Struct, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: struct has no members", ErrInvalidLayout)
	}
	s := &Struct{
		members: make(Layout, len(members)),
		offsets: make([]int, len(members)),
		index:   make(map[string]int, len(members)),
	}
	copy(s.members, members)
	for i, m := range s.members {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: member %d has no name", ErrInvalidLayout, i)
		}
		if m.Field == nil {
			return nil, fmt.Errorf("%w: member %q has no field", ErrInvalidLayout, m.Name)
		}
		if _, dup := s.index[m.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidLayout, m.Name)
		}
		if m.Field.Len() > math.MaxInt-s.length {
			return nil, fmt.Errorf("%w: member %q overflows the struct length", ErrInvalidLength, m.Name)
		}
		s.index[m.Name] = i
		s.offsets[i] = s.length
		s.length += m.Field.Len()
	}
	return s, nil
}

func (s *Struct) Kind() Kind { return KindStruct }
func (s *Struct) Len() int   { return s.length }

// Members returns a copy of the layout.
func (s *Struct) Members() Layout {
	out := make(Layout, len(s.members))
	copy(out, s.members)
	return out
}

// Member returns the field registered under name.
func (s *Struct) Member(name string) (Codec, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.members[i].Field, true
}

// Offset returns where member name starts, relative to the struct base.
func (s *Struct) Offset(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.offsets[i], true
}

func (s *Struct) Get(v View, base int) (Record, error) {
	rec := make(Record, len(s.members))
	off := base
	for _, m := range s.members {
		x, err := m.Field.GetValue(v, off)
		if err != nil {
			return nil, err
		}
		rec[m.Name] = x
		off += m.Field.Len()
	}
	return rec, nil
}

// Set writes every member of rec. All members must be present; keys that
// are not members are ignored. A failing member leaves earlier members
// written.
func (s *Struct) Set(v View, base int, rec Record) error {
	for _, m := range s.members {
		if _, ok := rec[m.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingMember, m.Name)
		}
	}
	off := base
	for _, m := range s.members {
		if err := m.Field.SetValue(v, off, rec[m.Name]); err != nil {
			return err
		}
		off += m.Field.Len()
	}
	return nil
}

func (s *Struct) GetValue(v View, base int) (any, error) {
	rec, err := s.Get(v, base)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// SetValue accepts a Record or any map with string keys.
func (s *Struct) SetValue(v View, base int, value any) error {
	switch x := value.(type) {
	case Record:
		return s.Set(v, base, x)
	case map[string]any:
		return s.Set(v, base, Record(x))
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: struct field cannot store %T", ErrTypeMismatch, value)
	}
	rec := make(Record, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		rec[iter.Key().String()] = iter.Value().Interface()
	}
	return s.Set(v, base, rec)
}
