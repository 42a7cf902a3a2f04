package numeric

import (
	"math"
	"strconv"
)

// Fixed is a fixed-point value: a two's complement mantissa stored in bits
// (8, 16, 32 or 64) scaled by 2^-frac. Overflow wraps at the storage width.
//
// The zero Fixed has no format yet; it reads as 0 and adopts the format of
// the other operand the first time it takes part in arithmetic.
type Fixed struct {
	raw  int64
	bits uint8
	frac uint8
}

// Raw returns the mantissa.
func (a Fixed) Raw() int64 { return a.raw }

// FracBits returns the fractional-bit count K.
func (a Fixed) FracBits() uint { return uint(a.frac) }

// Bits returns the storage width, 0 for an unformatted zero.
func (a Fixed) Bits() uint { return uint(a.bits) }

func (a Fixed) adopt(b Fixed) Fixed {
	if a.bits == 0 {
		a.bits, a.frac = b.bits, b.frac
	}
	return a
}

// aligned returns the mantissa rescaled to k fractional bits.
func (a Fixed) aligned(k uint8) int64 {
	if k >= a.frac {
		return a.raw << (k - a.frac)
	}
	return a.raw >> (a.frac - k)
}

func wrap(x int64, bits uint8) int64 {
	if bits == 0 || bits >= 64 {
		return x
	}
	s := 64 - bits
	return (x << s) >> s
}

// Add aligns b to the receiver's fractional bits and adds mantissas.
func (a Fixed) Add(b Fixed) Fixed {
	a = a.adopt(b)
	a.raw = wrap(a.raw+b.aligned(a.frac), a.bits)
	return a
}

// Sub aligns b to the receiver's fractional bits and subtracts mantissas.
func (a Fixed) Sub(b Fixed) Fixed {
	a = a.adopt(b)
	a.raw = wrap(a.raw-b.aligned(a.frac), a.bits)
	return a
}

// Mul multiplies through float64; the result is truncated to the receiver's
// format, not rounded.
func (a Fixed) Mul(b Fixed) Fixed {
	a = a.adopt(b)
	return a.format().FromFloat64(a.Float64() * b.Float64())
}

// Div divides through float64, truncating like Mul.
func (a Fixed) Div(b Fixed) Fixed {
	a = a.adopt(b)
	return a.format().FromFloat64(a.Float64() / b.Float64())
}

func (a Fixed) Neg() Fixed {
	a.raw = wrap(-a.raw, a.bits)
	return a
}

// Cmp compares after aligning b to the receiver's fractional bits.
func (a Fixed) Cmp(b Fixed) int {
	a = a.adopt(b)
	r := b.aligned(a.frac)
	switch {
	case a.raw < r:
		return -1
	case a.raw > r:
		return 1
	}
	return 0
}

func (a Fixed) Sign() int {
	switch {
	case a.raw < 0:
		return -1
	case a.raw > 0:
		return 1
	}
	return 0
}

func (a Fixed) Float64() float64 {
	return float64(a.raw) / math.Ldexp(1, int(a.frac))
}

func (a Fixed) String() string {
	return strconv.FormatFloat(a.Float64(), 'g', -1, 64)
}

func (a Fixed) format() FixedFormat {
	return FixedFormat{bits: a.bits, frac: a.frac}
}

// FixedFormat builds Fixed values of one width and fractional-bit count.
type FixedFormat struct {
	bits uint8
	frac uint8
	fast bool
	// declared is the width named in the type descriptor; bits can be wider for FAST_FIXED.
	declared uint8
}

// NewFixedFormat returns the format for spec, which must be a fixed kind.
// FAST_FIXED specs store in the narrowest native width that holds their bits.
func NewFixedFormat(spec Spec) (FixedFormat, error) {
	if err := spec.Validate(); err != nil {
		return FixedFormat{}, err
	}
	if !spec.IsFixed() {
		return FixedFormat{}, errorf(spec.String(), "not a fixed-point spec")
	}
	return FixedFormat{
		bits:     uint8(spec.StorageBits()),
		frac:     uint8(spec.Frac),
		fast:     spec.Kind == KindFastFixed,
		declared: uint8(spec.Bits),
	}, nil
}

func (f FixedFormat) Zero() Fixed {
	return Fixed{bits: f.bits, frac: f.frac}
}

// FromInt shifts v left by the fractional bits.
func (f FixedFormat) FromInt(v int64) Fixed {
	return Fixed{raw: wrap(v<<f.frac, f.bits), bits: f.bits, frac: f.frac}
}

// FromFloat64 scales by 2^K and truncates toward zero.
func (f FixedFormat) FromFloat64(v float64) Fixed {
	return Fixed{raw: wrap(int64(v*math.Ldexp(1, int(f.frac))), f.bits), bits: f.bits, frac: f.frac}
}

func (f FixedFormat) FromRaw(v int64) Fixed {
	return Fixed{raw: wrap(v, f.bits), bits: f.bits, frac: f.frac}
}

func (f FixedFormat) FracBits() uint { return uint(f.frac) }

// Bits returns the storage width.
func (f FixedFormat) Bits() uint { return uint(f.bits) }

// Random01 keeps the low K bits of the draw as the mantissa. The result is
// uniform over the representable fractions i/2^K, not over [0,1).
func (f FixedFormat) Random01(draw uint32) Fixed {
	mask := uint64(math.MaxUint64)
	if f.frac < 64 {
		mask = 1<<f.frac - 1
	}
	return f.FromRaw(int64(uint64(draw) & mask))
}

func (f FixedFormat) Spec() Spec {
	kind := KindFixed
	if f.fast {
		kind = KindFastFixed
	}
	bits := int(f.declared)
	if bits == 0 {
		bits = int(f.bits)
	}
	return Spec{Kind: kind, Bits: bits, Frac: int(f.frac)}
}

func (f FixedFormat) fromFixed(v Fixed) Fixed {
	return f.FromRaw(v.aligned(f.frac))
}
