package numeric

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadSpec is returned for type descriptors that do not parse or validate.
var ErrBadSpec = errors.New("bad numeric type")

// Kind selects a representation.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindDouble
	KindFixed
	KindFastFixed
)

// Spec describes a representation: FLOAT, DOUBLE, FIXED(N,K) or
// FAST_FIXED(N,K). Specs are comparable and used as registry keys.
type Spec struct {
	Kind Kind
	Bits int // N, fixed kinds only
	Frac int // K, fixed kinds only
}

var fixedPattern = regexp.MustCompile(`^(FAST_)?FIXED\(\s*([0-9]+)\s*,\s*([0-9]+)\s*\)$`)

// ParseSpec parses a descriptor such as "FIXED(32,16)" or "\"DOUBLE\"".
func ParseSpec(s string) (Spec, error) {
	name := strings.Trim(strings.TrimSpace(s), `"`)
	switch name {
	case "FLOAT":
		return Spec{Kind: KindFloat}, nil
	case "DOUBLE":
		return Spec{Kind: KindDouble}, nil
	}

	m := fixedPattern.FindStringSubmatch(name)
	if m == nil {
		return Spec{}, errorf(s, "unknown type")
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Spec{}, errorf(s, "bad width")
	}
	k, err := strconv.Atoi(m[3])
	if err != nil {
		return Spec{}, errorf(s, "bad fractional bits")
	}

	spec := Spec{Kind: KindFixed, Bits: n, Frac: k}
	if m[1] != "" {
		spec.Kind = KindFastFixed
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// MustParseSpec is like ParseSpec but panics on error.
func MustParseSpec(s string) Spec {
	spec, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// Validate checks widths: FIXED needs a native width, FAST_FIXED anything up
// to 64 bits, and both need 1 <= K <= N-2 so that 1 is representable and
// Random01 stays non-negative.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindFloat, KindDouble:
		return nil
	case KindFixed:
		switch s.Bits {
		case 8, 16, 32, 64:
		default:
			return errorf(s.String(), "width must be 8, 16, 32 or 64")
		}
	case KindFastFixed:
		if s.Bits < 1 || s.Bits > 64 {
			return errorf(s.String(), "width must be in 1..64")
		}
	default:
		return errorf(s.String(), "unknown kind")
	}
	if s.Frac < 1 || s.Frac > s.Bits-2 {
		return errorf(s.String(), "fractional bits must be in 1..width-2")
	}
	return nil
}

// IsFixed reports whether s is FIXED or FAST_FIXED.
func (s Spec) IsFixed() bool {
	return s.Kind == KindFixed || s.Kind == KindFastFixed
}

// StorageBits is the native width a value occupies: the declared width for
// FIXED, the narrowest of 8/16/32/64 that fits for FAST_FIXED, and the IEEE
// width for floating kinds.
func (s Spec) StorageBits() int {
	switch s.Kind {
	case KindFloat:
		return 32
	case KindDouble:
		return 64
	case KindFastFixed:
		for _, w := range []int{8, 16, 32, 64} {
			if s.Bits <= w {
				return w
			}
		}
	}
	return s.Bits
}

func (s Spec) String() string {
	switch s.Kind {
	case KindFloat:
		return "FLOAT"
	case KindDouble:
		return "DOUBLE"
	case KindFixed:
		return fmt.Sprintf("FIXED(%d,%d)", s.Bits, s.Frac)
	case KindFastFixed:
		return fmt.Sprintf("FAST_FIXED(%d,%d)", s.Bits, s.Frac)
	}
	return fmt.Sprintf("Kind(%d)", s.Kind)
}

// MarshalText lets specs appear as strings in YAML and CSV.
func (s Spec) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a descriptor.
func (s *Spec) UnmarshalText(b []byte) error {
	spec, err := ParseSpec(string(b))
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

func errorf(spec, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrBadSpec, spec, reason)
}
