package schemadef

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/fixedfield"
	"github.com/rawbytedev/fixedfield/byteview"
	"go.uber.org/zap"
)

type builder struct {
	types    map[string]TypeDef
	building map[string]bool
	built    map[string]*fixedfield.Struct
}

// Build turns the document into a Struct. Named types are built once and
// shared by every field that refers to them.
func (d *Document) Build() (*fixedfield.Struct, error) {
	b := &builder{
		types:    d.Types,
		building: make(map[string]bool),
		built:    make(map[string]*fixedfield.Struct),
	}
	s, err := b.structOf("", d.Fields)
	if err != nil {
		return nil, err
	}
	Logger().Debug("schema built",
		zap.String("name", d.Name),
		zap.Int("length", s.Len()),
		zap.Int("members", len(d.Fields)))
	return s, nil
}

func (b *builder) structOf(path string, defs []FieldDef) (*fixedfield.Struct, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %s: struct has no fields", ErrInvalidDefinition, where(path))
	}
	members := make([]fixedfield.Member, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: %s: field has no name", ErrInvalidDefinition, where(path))
		}
		p := def.Name
		if path != "" {
			p = path + "." + def.Name
		}
		c, err := b.field(p, def)
		if err != nil {
			return nil, err
		}
		members = append(members, fixedfield.Def(def.Name, c))
	}
	s, err := fixedfield.NewStruct(members...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", where(path), err)
	}
	return s, nil
}

func (b *builder) field(path string, def FieldDef) (fixedfield.Codec, error) {
	kind, ok := fixedfield.ParseKind(def.Type)
	if err := checkKeys(path, def, kind); err != nil {
		return nil, err
	}
	if !ok {
		return b.named(path, def.Type)
	}
	opts, err := options(path, def)
	if err != nil {
		return nil, err
	}
	switch kind {
	case fixedfield.KindInt8:
		return fixedfield.Int8(opts...), nil
	case fixedfield.KindInt16:
		return fixedfield.Int16(opts...), nil
	case fixedfield.KindInt32:
		return fixedfield.Int32(opts...), nil
	case fixedfield.KindUint8:
		return fixedfield.Uint8(opts...), nil
	case fixedfield.KindUint16:
		return fixedfield.Uint16(opts...), nil
	case fixedfield.KindUint32:
		return fixedfield.Uint32(opts...), nil
	case fixedfield.KindText:
		t, err := fixedfield.NewText(def.Length, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	case fixedfield.KindStruct:
		return b.structOf(path, def.Fields)
	default:
		return b.array(path, def)
	}
}

func (b *builder) array(path string, def FieldDef) (fixedfield.Codec, error) {
	if def.Elem == nil {
		return nil, fmt.Errorf("%w: %s: array has no elem", ErrInvalidDefinition, path)
	}
	if (def.Span > 0) == (def.Count > 0) {
		return nil, fmt.Errorf("%w: %s: array needs exactly one of span or count", ErrInvalidDefinition, path)
	}
	elem, err := b.field(path+"[]", *def.Elem)
	if err != nil {
		return nil, err
	}
	var arr *fixedfield.Array[any]
	if def.Span > 0 {
		arr, err = fixedfield.NewArray(fixedfield.Erase(elem), def.Span)
	} else {
		arr, err = fixedfield.Repeat(fixedfield.Erase(elem), def.Count)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return arr, nil
}

func (b *builder) named(path, name string) (fixedfield.Codec, error) {
	if s, ok := b.built[name]; ok {
		return s, nil
	}
	if b.building[name] {
		return nil, fmt.Errorf("%w: %s: %q refers to itself", ErrRecursiveType, path, name)
	}
	td, ok := b.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q", ErrUnknownType, path, name)
	}
	b.building[name] = true
	defer delete(b.building, name)

	s, err := b.structOf(path, td.Fields)
	if err != nil {
		return nil, err
	}
	b.built[name] = s
	return s, nil
}

// keysFor lists the optional keys each kind reads. Named type references
// (KindInvalid) take none.
var keysFor = map[fixedfield.Kind][]string{
	fixedfield.KindInt8:   {"offset", "endian"},
	fixedfield.KindInt16:  {"offset", "endian"},
	fixedfield.KindInt32:  {"offset", "endian"},
	fixedfield.KindUint8:  {"offset", "endian"},
	fixedfield.KindUint16: {"offset", "endian"},
	fixedfield.KindUint32: {"offset", "endian"},
	fixedfield.KindText:   {"offset", "length", "pad", "charset"},
	fixedfield.KindStruct: {"fields"},
	fixedfield.KindArray:  {"elem", "span", "count"},
}

func checkKeys(path string, def FieldDef, kind fixedfield.Kind) error {
	set := map[string]bool{
		"offset":  def.Offset != 0,
		"endian":  def.Endian != "",
		"length":  def.Length != 0,
		"pad":     def.Pad != nil,
		"charset": def.Charset != "",
		"fields":  len(def.Fields) > 0,
		"elem":    def.Elem != nil,
		"span":    def.Span != 0,
		"count":   def.Count != 0,
	}
	for _, k := range keysFor[kind] {
		delete(set, k)
	}
	var extra []string
	for _, k := range []string{"offset", "endian", "length", "pad", "charset", "fields", "elem", "span", "count"} {
		if set[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		return fmt.Errorf("%w: %s: %s does not take %s", ErrInvalidDefinition, path, typeName(def.Type), strings.Join(extra, ", "))
	}
	return nil
}

func typeName(t string) string {
	if _, ok := fixedfield.ParseKind(t); ok {
		return t
	}
	return fmt.Sprintf("type %q", t)
}

func options(path string, def FieldDef) ([]fixedfield.Option, error) {
	var opts []fixedfield.Option
	if def.Offset < 0 {
		return nil, fmt.Errorf("%w: %s: negative offset %d", ErrInvalidDefinition, path, def.Offset)
	}
	if def.Offset > 0 {
		opts = append(opts, fixedfield.WithOffset(def.Offset))
	}
	order, err := byteview.ParseEndianness(def.Endian)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	opts = append(opts, fixedfield.WithOrder(order))
	if def.Pad != nil && !*def.Pad {
		opts = append(opts, fixedfield.WithoutPadding())
	}
	if def.Charset != "" {
		cm, err := LookupCharset(def.Charset)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		opts = append(opts, fixedfield.WithCharset(cm))
	}
	return opts, nil
}

func where(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
