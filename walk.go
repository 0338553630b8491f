package fixedfield

// WalkFunc is called for every node of a field tree. path is the dotted
// member path ("" for the root, "items[]" for an array's element) and
// offset is where the node's bytes begin relative to the root's base.
type WalkFunc func(path string, offset int, c Codec) error

type container interface {
	Elem() Codec
}

type relative interface {
	Offset() int
}

// Walk visits c and its descendants depth first in byte order. An array's
// element is visited once, at the array's own offset. Walk stops at the
// first error returned by fn.
func Walk(c Codec, fn WalkFunc) error {
	return walk("", 0, c, fn)
}

func walk(path string, off int, c Codec, fn WalkFunc) error {
	c = Unwrap(c)
	at := off
	if r, ok := c.(relative); ok {
		at += r.Offset()
	}
	if err := fn(path, at, c); err != nil {
		return err
	}
	switch n := c.(type) {
	case *Struct:
		for i, m := range n.members {
			p := m.Name
			if path != "" {
				p = path + "." + m.Name
			}
			if err := walk(p, off+n.offsets[i], m.Field, fn); err != nil {
				return err
			}
		}
	case container:
		return walk(path+"[]", off, n.Elem(), fn)
	}
	return nil
}
