package fixedfield

import (
	"fmt"

	"github.com/rawbytedev/fixedfield/byteview"
)

type View = byteview.View
type Endianness = byteview.Endianness

const (
	LittleEndian = byteview.LittleEndian
	BigEndian    = byteview.BigEndian
)

// Kind identifies the variant of a field descriptor.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindUint8
	KindUint16
	KindUint32
	KindText
	KindStruct
	KindArray
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindText:    "text",
	KindStruct:  "struct",
	KindArray:   "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Size returns the byte width of scalar kinds and -1 otherwise.
func (k Kind) Size() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32:
		return 4
	default:
		return -1
	}
}

// IsScalar reports whether k is one of the integer kinds.
func (k Kind) IsScalar() bool { return k.Size() > 0 }

// ParseKind maps a kind name as printed by String back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if k != int(KindInvalid) && n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}
