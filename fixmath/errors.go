package fixmath

import "errors"

var (
	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("fixmath: division by zero")

	// ErrOverflow indicates the result does not fit in 256 bits.
	ErrOverflow = errors.New("fixmath: overflow")

	// ErrUnderflow indicates a subtraction below zero.
	ErrUnderflow = errors.New("fixmath: underflow")

	// ErrInvalidDecimal indicates a malformed decimal string.
	ErrInvalidDecimal = errors.New("fixmath: invalid decimal")
)
