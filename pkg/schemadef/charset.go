package schemadef

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

var charsetAliases = map[string]*charmap.Charmap{
	"latin1": charmap.ISO8859_1,
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"cp1252": charmap.Windows1252,
	"koi8r":  charmap.KOI8R,
}

// LookupCharset finds a single byte charset by alias (latin1, cp437, ...)
// or by its canonical name, ignoring case and punctuation.
func LookupCharset(name string) (*charmap.Charmap, error) {
	key := normalize(name)
	if cm, ok := charsetAliases[key]; ok {
		return cm, nil
	}
	for _, enc := range charmap.All {
		cm, ok := enc.(*charmap.Charmap)
		if ok && normalize(cm.String()) == key {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown charset %q", ErrInvalidDefinition, name)
}

func normalize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
