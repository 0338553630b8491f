package fixedfield

import "errors"

// Faults raised by a View are returned unchanged and are not listed here.
var (
	ErrArityMismatch       = errors.New("fixedfield: element count mismatch")
	ErrNonIntegralDivision = errors.New("fixedfield: span not divisible by element length")
	ErrInvalidLength       = errors.New("fixedfield: invalid length")
	ErrInvalidLayout       = errors.New("fixedfield: invalid layout")
	ErrMissingMember       = errors.New("fixedfield: missing member value")
	ErrTypeMismatch        = errors.New("fixedfield: type mismatch")
	ErrNotStruct           = errors.New("fixedfield: expected struct")
	ErrUnboundMember       = errors.New("fixedfield: member has no matching Go field")
)
