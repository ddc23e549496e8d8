package codec

import (
	"errors"
	"testing"
)

func TestDecode_Bool(t *testing.T) {
	v, err := Decode("1", KindBool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Bool {
		t.Error("expected true")
	}
	if _, err := Decode("true", KindBool); err == nil {
		t.Error(`"true" is not a dialect boolean literal`)
	}
	if _, err := Decode("2", KindBool); err == nil {
		t.Error(`"2" should be rejected`)
	}
}

func TestDecode_IntOverflow(t *testing.T) {
	if _, err := Decode("9223372036854775808", KindInt); err == nil {
		t.Error("expected overflow error")
	}
	var de *DecodeError
	_, err := Decode("abc", KindInt)
	if !errors.As(err, &de) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if de.Raw != "abc" {
		t.Errorf("Raw = %q", de.Raw)
	}
}

func TestDecode_FloatRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Inf", "nope"} {
		if _, err := Decode(raw, KindFloat); err == nil {
			t.Errorf("Decode(%q) should fail", raw)
		}
	}
}

func TestDecode_EnumExactMatch(t *testing.T) {
	v, err := Decode("2", KindEnum, "0", "1", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "2" {
		t.Errorf("Str = %q", v.Str)
	}
	if _, err := Decode("3", KindEnum, "0", "1", "2"); err == nil {
		t.Error("non-member should be rejected")
	}
	if _, err := Decode(" 2", KindEnum, "0", "1", "2"); err == nil {
		t.Error("enum match must be exact, no trimming")
	}
}

func TestDecode_StringStripsControlChars(t *testing.T) {
	v, err := Decode("abc\ndef\x00", KindString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "abcdef" {
		t.Errorf("Str = %q", v.Str)
	}
}

func TestEncode_RoundTripLaw(t *testing.T) {
	cases := []struct {
		raw     string
		kind    Kind
		members []string
	}{
		{"0", KindBool, nil},
		{"1", KindBool, nil},
		{"-42", KindInt, nil},
		{"0.000000", KindFloat, nil},
		{"144.000000", KindFloat, nil},
		{"0.1234567", KindFloat, nil},
		{"1", KindEnum, []string{"0", "1", "2"}},
		{"plain text", KindString, nil},
	}
	for _, c := range cases {
		v, err := Decode(c.raw, c.kind, c.members...)
		if err != nil {
			t.Fatalf("Decode(%q, %v): %v", c.raw, c.kind, err)
		}
		back, err := Decode(Encode(v), c.kind, c.members...)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", c.raw, err)
		}
		if !Equal(v, back) {
			t.Errorf("round trip of %q: %+v != %+v", c.raw, v, back)
		}
	}
}

func TestEncode_FloatGameStyle(t *testing.T) {
	if got := Encode(Float(0)); got != "0.000000" {
		t.Errorf("Encode(0) = %q, want 6-decimal style", got)
	}
	if got := Encode(Float(144)); got != "144.000000" {
		t.Errorf("Encode(144) = %q", got)
	}
	// Values that 6 decimals cannot represent fall back to exact form.
	v := Float(0.1234567)
	back, err := Decode(Encode(v), KindFloat)
	if err != nil || back.Float != v.Float {
		t.Errorf("precision fallback broken: %q", Encode(v))
	}
}

func TestEqual_KindMismatch(t *testing.T) {
	if Equal(Int(1), Float(1)) {
		t.Error("different kinds must not compare equal")
	}
}
