package fixmath

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string // raw scaled decimal representation
	}{
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"0.16", "160000000000000000"},
		{"1.19", "1190000000000000000"},
		{"0.5", "500000000000000000"},
		{"2.000000000000000001", "2000000000000000001"},
		{".25", "250000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Scaled().Dec())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "1.2.3", "-1", "abc", "0.0000000000000000001"} {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.Error(t, err)
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"0.16", "0.16"},
		{"1.19", "1.19"},
		{"10.500", "10.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.in).String())
	}
}

func TestMul_Floors(t *testing.T) {
	// 1 * 0.16 = 0.16 exactly.
	r, err := MustParse("1").Mul(MustParse("0.16"))
	require.NoError(t, err)
	assert.Equal(t, "0.16", r.String())

	// Smallest unit squared truncates to zero.
	tiny := FromScaled(uint256.NewInt(1))
	r, err = tiny.Mul(tiny)
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}

func TestDiv(t *testing.T) {
	r, err := MustParse("1").Div(MustParse("3"))
	require.NoError(t, err)
	// floor(10^18 / 3) = 333333333333333333, never rounded up.
	assert.Equal(t, "333333333333333333", r.Scaled().Dec())

	_, err = One().Div(Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSub_Underflow(t *testing.T) {
	_, err := MustParse("0.5").Sub(One())
	assert.ErrorIs(t, err, ErrUnderflow)

	r, err := One().Sub(MustParse("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "0.5", r.String())
}

func TestPow(t *testing.T) {
	ratio := MustParse("1.19")

	r, err := ratio.Pow(0)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(One()))

	r, err = ratio.Pow(1)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(ratio))

	// 1.19^2 with per-step truncation: floor(1.19 * 1.19) = 1.4161 exactly.
	r, err = ratio.Pow(2)
	require.NoError(t, err)
	assert.Equal(t, "1.4161", r.String())

	// Monotone non-decreasing for ratio >= 1.
	prev := One()
	for k := uint64(1); k <= 12; k++ {
		cur, err := ratio.Pow(k)
		require.NoError(t, err)
		assert.True(t, cur.Cmp(prev) >= 0, "ratio^%d decreased", k)
		prev = cur
	}
}

func TestMulDiv(t *testing.T) {
	pool := MustParse("0.16")

	// Full weight share: floor(pool * w / w) == pool.
	w := One()
	r, err := MulDiv(pool, w, w)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(pool))

	// Proportional split floors: floor(0.16 * 1 / 3).
	r, err = MulDiv(pool, One(), MustParse("3"))
	require.NoError(t, err)
	assert.Equal(t, "53333333333333333", r.Scaled().Dec())

	_, err = MulDiv(pool, One(), Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}
