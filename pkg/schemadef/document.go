// Package schemadef loads fixed layout schemas from TOML or YAML documents
// and builds them into fixedfield trees.
package schemadef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType       = errors.New("schemadef: unknown type")
	ErrRecursiveType     = errors.New("schemadef: recursive type")
	ErrInvalidDefinition = errors.New("schemadef: invalid definition")
	ErrUnsupportedFormat = errors.New("schemadef: unsupported document format")
)

// Document is the root of a schema file. Fields make up the top level
// struct; Types holds named struct types that fields refer to by name.
type Document struct {
	Name   string             `toml:"name" yaml:"name"`
	Types  map[string]TypeDef `toml:"types" yaml:"types"`
	Fields []FieldDef         `toml:"fields" yaml:"fields"`
}

type TypeDef struct {
	Fields []FieldDef `toml:"fields" yaml:"fields"`
}

// FieldDef describes one field. Type is a kind name (int8 ... uint32,
// text, struct, array) or the name of an entry in Document.Types.
type FieldDef struct {
	Name    string     `toml:"name" yaml:"name"`
	Type    string     `toml:"type" yaml:"type"`
	Offset  int        `toml:"offset" yaml:"offset"`
	Endian  string     `toml:"endian" yaml:"endian"`
	Length  int        `toml:"length" yaml:"length"`
	Pad     *bool      `toml:"pad" yaml:"pad"`
	Charset string     `toml:"charset" yaml:"charset"`
	Fields  []FieldDef `toml:"fields" yaml:"fields"`
	Elem    *FieldDef  `toml:"elem" yaml:"elem"`
	Span    int        `toml:"span" yaml:"span"`
	Count   int        `toml:"count" yaml:"count"`
}

// ParseTOML decodes a TOML schema. Keys that match no document field are
// rejected.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidDefinition, strings.Join(keys, ", "))
	}
	return &doc, nil
}

// ParseYAML decodes a YAML schema. Keys that match no document field are
// rejected.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		return nil, err
	}
	return &doc, nil
}

// Load reads a schema file, choosing the parser from its extension
// (.toml, .yaml or .yml).
func Load(path string) (*Document, error) {
	var parse func([]byte) (*Document, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		parse = ParseTOML
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("schema load failed (%s): %w: %q", path, ErrUnsupportedFormat, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema load failed (%s): %w", path, err)
	}
	doc, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema parse failed (%s): %w", path, err)
	}
	Logger().Debug("schema loaded",
		zap.String("path", path),
		zap.String("name", doc.Name),
		zap.Int("fields", len(doc.Fields)),
		zap.Int("types", len(doc.Types)))
	return doc, nil
}
