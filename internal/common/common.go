package common

import "reflect"

// IsIntegerKind reports whether k is a signed or unsigned integer kind.
func IsIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// AsInt64 returns the value held by v when v is any Go integer, including
// named integer types. Unsigned values above MaxInt64 wrap.
func AsInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		return int64(rv.Uint()), true
	default:
		return 0, false
	}
}

// SetInteger stores x into dst, which must be settable and of an integer
// kind. reflect truncates the value to dst's width.
func SetInteger(dst reflect.Value, x int64) bool {
	if !IsIntegerKind(dst.Kind()) {
		return false
	}
	if dst.CanInt() {
		dst.SetInt(x)
	} else {
		dst.SetUint(uint64(x))
	}
	return true
}
