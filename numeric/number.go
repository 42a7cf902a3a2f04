// Package numeric provides the interchangeable scalar representations used for
// pressure, velocity and flow: binary floating point and fixed point with an
// explicit storage width and fractional-bit count.
package numeric

// Number is a scalar value. Binary operations return a value in the
// receiver's representation.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	// Cmp returns -1, 0 or +1.
	Cmp(T) int
	Sign() int
	Float64() float64
}

// Format constructs values of one representation. Fixed-point formats carry
// their width and fractional bits; floating formats are zero-sized.
type Format[T any] interface {
	Zero() T
	FromInt(int64) T
	FromFloat64(float64) T
	// FromRaw builds a value directly from its raw mantissa. Floating formats
	// treat the mantissa as an integer value.
	FromRaw(int64) T
	// FracBits is the fractional-bit count K, 0 for floating formats.
	FracBits() uint
	// Random01 maps one 32-bit generator draw to a value in [0,1). Floating
	// formats divide by the generator maximum, so the top draw yields 1.
	Random01(draw uint32) T
	Spec() Spec
}

// Convert changes representation. Fixed to fixed conversion shifts the raw
// mantissa to the target's fractional bits; everything else goes through
// float64.
func Convert[To Number[To], From Number[From]](f Format[To], v From) To {
	if src, ok := any(v).(Fixed); ok {
		if dst, ok := any(f).(FixedFormat); ok {
			return any(dst.fromFixed(src)).(To)
		}
	}
	return f.FromFloat64(v.Float64())
}

// Min returns the smaller of a and b, preferring a on ties.
func Min[T Number[T]](a, b T) T {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

// Fill sets every element of s to v.
func Fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}
