package numeric

import (
	"math"
	"strconv"
)

// Float32 is a single-precision value.
type Float32 float32

func (a Float32) Add(b Float32) Float32 { return a + b }
func (a Float32) Sub(b Float32) Float32 { return a - b }
func (a Float32) Mul(b Float32) Float32 { return a * b }
func (a Float32) Div(b Float32) Float32 { return a / b }
func (a Float32) Neg() Float32          { return -a }
func (a Float32) Float64() float64      { return float64(a) }

func (a Float32) Cmp(b Float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a Float32) Sign() int { return a.Cmp(0) }

func (a Float32) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 32)
}

// Float64 is a double-precision value.
type Float64 float64

func (a Float64) Add(b Float64) Float64 { return a + b }
func (a Float64) Sub(b Float64) Float64 { return a - b }
func (a Float64) Mul(b Float64) Float64 { return a * b }
func (a Float64) Div(b Float64) Float64 { return a / b }
func (a Float64) Neg() Float64          { return -a }
func (a Float64) Float64() float64      { return float64(a) }

func (a Float64) Cmp(b Float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a Float64) Sign() int { return a.Cmp(0) }

func (a Float64) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

// Float32Format builds Float32 values.
type Float32Format struct{}

func (Float32Format) Zero() Float32                 { return 0 }
func (Float32Format) FromInt(v int64) Float32       { return Float32(v) }
func (Float32Format) FromFloat64(v float64) Float32 { return Float32(v) }
func (Float32Format) FromRaw(v int64) Float32       { return Float32(v) }
func (Float32Format) FracBits() uint                { return 0 }
func (Float32Format) Spec() Spec                    { return Spec{Kind: KindFloat} }

// Random01 divides the draw by the generator maximum in single precision.
// The range is [0,1]: the top draws round to exactly 1.
func (Float32Format) Random01(draw uint32) Float32 {
	return Float32(float32(draw) / float32(math.MaxUint32))
}

// Float64Format builds Float64 values.
type Float64Format struct{}

func (Float64Format) Zero() Float64                 { return 0 }
func (Float64Format) FromInt(v int64) Float64       { return Float64(v) }
func (Float64Format) FromFloat64(v float64) Float64 { return Float64(v) }
func (Float64Format) FromRaw(v int64) Float64       { return Float64(v) }
func (Float64Format) FracBits() uint                { return 0 }
func (Float64Format) Spec() Spec                    { return Spec{Kind: KindDouble} }

// Random01 divides the draw by the generator maximum in double precision.
// The range is [0,1]: math.MaxUint32 maps to exactly 1.
func (Float64Format) Random01(draw uint32) Float64 {
	return Float64(float64(draw) / float64(math.MaxUint32))
}
