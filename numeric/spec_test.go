package numeric

import (
	"errors"
	"testing"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    Spec
		storage int
	}{
		{"FLOAT", Spec{Kind: KindFloat}, 32},
		{"DOUBLE", Spec{Kind: KindDouble}, 64},
		{`"DOUBLE"`, Spec{Kind: KindDouble}, 64},
		{"FIXED(32,16)", Spec{Kind: KindFixed, Bits: 32, Frac: 16}, 32},
		{"FIXED(64, 8)", Spec{Kind: KindFixed, Bits: 64, Frac: 8}, 64},
		{"FAST_FIXED(13,7)", Spec{Kind: KindFastFixed, Bits: 13, Frac: 7}, 16},
		{"FAST_FIXED(33,7)", Spec{Kind: KindFastFixed, Bits: 33, Frac: 7}, 64},
		{"FAST_FIXED(8,6)", Spec{Kind: KindFastFixed, Bits: 8, Frac: 6}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			if err != nil {
				t.Fatalf("ParseSpec: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.StorageBits() != tt.storage {
				t.Errorf("StorageBits = %d, want %d", got.StorageBits(), tt.storage)
			}
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	for _, in := range []string{"", "INT", "FIXED(12,4)", "FIXED(32,0)", "FIXED(16,17)", "FAST_FIXED(65,2)", "FIXED(32)",
		"FIXED(8,7)", "FIXED(8,8)", "FIXED(16,16)", "FAST_FIXED(2,1)", "FAST_FIXED(13,12)"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSpec(in)
			if !errors.Is(err, ErrBadSpec) {
				t.Errorf("ParseSpec(%q) err = %v, want ErrBadSpec", in, err)
			}
		})
	}
}

func TestSpecStringRoundTrip(t *testing.T) {
	for _, in := range []string{"FLOAT", "DOUBLE", "FIXED(16,8)", "FAST_FIXED(40,20)"} {
		spec := MustParseSpec(in)
		if spec.String() != in {
			t.Errorf("String() = %q, want %q", spec.String(), in)
		}
		var back Spec
		text, _ := spec.MarshalText()
		if err := back.UnmarshalText(text); err != nil || back != spec {
			t.Errorf("text round trip of %s gave %+v, %v", in, back, err)
		}
	}
}
