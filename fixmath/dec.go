// Package fixmath implements non-negative fixed-point decimal arithmetic at
// 18-digit scale (1.0 == 10^18 units) on 256-bit integers.
//
// Every multiplication and division truncates toward zero. The engine's
// royalty accounting depends on that truncation policy: fractional
// remainders ("dust") must never be rounded up or redistributed.
package fixmath

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// fracDigits is the number of decimal digits in the fractional part.
const fracDigits = 18

// scale is 10^18, the scaled representation of 1.0.
var scale = uint256.NewInt(1_000_000_000_000_000_000)

// Dec is a non-negative fixed-point decimal with 18 fractional digits.
// The zero value is 0.
type Dec struct {
	u uint256.Int
}

// Zero returns the decimal 0.
func Zero() Dec { return Dec{} }

// One returns the decimal 1.0.
func One() Dec {
	var d Dec
	d.u.Set(scale)
	return d
}

// FromUint64 returns whole as a decimal (whole * 10^18).
func FromUint64(whole uint64) Dec {
	var d Dec
	d.u.Mul(uint256.NewInt(whole), scale)
	return d
}

// FromScaled returns the decimal whose raw scaled representation is u.
func FromScaled(u *uint256.Int) Dec {
	var d Dec
	d.u.Set(u)
	return d
}

// Scaled returns a copy of the raw scaled representation.
func (d Dec) Scaled() *uint256.Int {
	return new(uint256.Int).Set(&d.u)
}

// Parse converts a decimal string such as "1", "0.16" or "1.19" to a Dec.
// At most 18 fractional digits are accepted. Negative values are rejected.
func Parse(s string) (Dec, error) {
	if s == "" {
		return Dec{}, fmt.Errorf("%w: empty string", ErrInvalidDecimal)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return Dec{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > fracDigits {
		return Dec{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidDecimal, s, fracDigits)
	}

	var whole uint256.Int
	if err := whole.SetFromDecimal(intPart); err != nil {
		return Dec{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	var frac uint256.Int
	if fracPart != "" {
		// Right-pad to 18 digits so "19" in "1.19" becomes 19 * 10^16.
		padded := fracPart + strings.Repeat("0", fracDigits-len(fracPart))
		if err := frac.SetFromDecimal(padded); err != nil {
			return Dec{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
		}
	}

	var d Dec
	if _, over := d.u.MulOverflow(&whole, scale); over {
		return Dec{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	if _, over := d.u.AddOverflow(&d.u, &frac); over {
		return Dec{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return d, nil
}

// MustParse is Parse for trusted constants; it panics on error.
func MustParse(s string) Dec {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the decimal with trailing fractional zeros trimmed.
func (d Dec) String() string {
	var whole, frac uint256.Int
	whole.DivMod(&d.u, scale, &frac)

	if frac.IsZero() {
		return whole.Dec()
	}

	fs := fmt.Sprintf("%018s", frac.Dec())
	fs = strings.TrimRight(fs, "0")
	return whole.Dec() + "." + fs
}

// IsZero reports whether d is 0.
func (d Dec) IsZero() bool { return d.u.IsZero() }

// Cmp returns -1, 0 or 1 comparing d with o.
func (d Dec) Cmp(o Dec) int { return d.u.Cmp(&o.u) }

// Add returns d + o.
func (d Dec) Add(o Dec) (Dec, error) {
	var r Dec
	if _, over := r.u.AddOverflow(&d.u, &o.u); over {
		return Dec{}, ErrOverflow
	}
	return r, nil
}

// Sub returns d - o.
func (d Dec) Sub(o Dec) (Dec, error) {
	var r Dec
	if _, under := r.u.SubOverflow(&d.u, &o.u); under {
		return Dec{}, ErrUnderflow
	}
	return r, nil
}

// Mul returns floor(d * o), truncating the fractional remainder.
func (d Dec) Mul(o Dec) (Dec, error) {
	var r Dec
	if _, over := r.u.MulDivOverflow(&d.u, &o.u, scale); over {
		return Dec{}, ErrOverflow
	}
	return r, nil
}

// Div returns floor(d / o), truncating the fractional remainder.
func (d Dec) Div(o Dec) (Dec, error) {
	if o.u.IsZero() {
		return Dec{}, ErrDivisionByZero
	}
	var r Dec
	if _, over := r.u.MulDivOverflow(&d.u, scale, &o.u); over {
		return Dec{}, ErrOverflow
	}
	return r, nil
}

// MulDiv returns floor(a * b / den) on the raw scaled representations.
// The scale cancels, so this is the exact integer allocation primitive for
// converting a weight fraction of a pool into a share.
func MulDiv(a, b, den Dec) (Dec, error) {
	if den.u.IsZero() {
		return Dec{}, ErrDivisionByZero
	}
	var r Dec
	if _, over := r.u.MulDivOverflow(&a.u, &b.u, &den.u); over {
		return Dec{}, ErrOverflow
	}
	return r, nil
}

// Pow returns d^n by repeated truncating multiplication. d^0 == 1.
func (d Dec) Pow(n uint64) (Dec, error) {
	r := One()
	for i := uint64(0); i < n; i++ {
		var err error
		r, err = r.Mul(d)
		if err != nil {
			return Dec{}, err
		}
	}
	return r, nil
}
