// Package codec converts between the profile file's textual values and
// typed in-memory values.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the declared type of a setting value.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindEnum
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Boolean literals of the profile dialect.
const (
	boolFalse = "0"
	boolTrue  = "1"
)

// TypedValue is a decoded value tagged with its kind. Enum and string
// values share the Str field; the tag disambiguates.
type TypedValue struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

// DecodeError reports a value that could not be decoded. Key is filled
// in by callers that know it; the codec itself only sees raw text.
type DecodeError struct {
	Key    string
	Raw    string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("decode %q: %s", e.Raw, e.Reason)
	}
	return fmt.Sprintf("decode %s=%q: %s", e.Key, e.Raw, e.Reason)
}

// Decode parses raw into a TypedValue of the given kind. For KindEnum
// the raw string must exactly match one of members. Errors are always
// *DecodeError; Decode never panics.
func Decode(raw string, kind Kind, members ...string) (TypedValue, error) {
	switch kind {
	case KindBool:
		switch raw {
		case boolFalse:
			return TypedValue{Kind: KindBool, Bool: false}, nil
		case boolTrue:
			return TypedValue{Kind: KindBool, Bool: true}, nil
		}
		return TypedValue{}, &DecodeError{Raw: raw, Reason: `boolean must be "0" or "1"`}

	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return TypedValue{}, &DecodeError{Raw: raw, Reason: "not an integer"}
		}
		return TypedValue{Kind: KindInt, Int: n}, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return TypedValue{}, &DecodeError{Raw: raw, Reason: "not a finite number"}
		}
		return TypedValue{Kind: KindFloat, Float: f}, nil

	case KindEnum:
		for _, m := range members {
			if raw == m {
				return TypedValue{Kind: KindEnum, Str: raw}, nil
			}
		}
		return TypedValue{}, &DecodeError{Raw: raw, Reason: "not a member of " + strings.Join(members, "|")}

	case KindString:
		return TypedValue{Kind: KindString, Str: sanitize(raw)}, nil
	}
	return TypedValue{}, &DecodeError{Raw: raw, Reason: "unknown kind"}
}

// Encode renders v back to profile text. It is the left inverse of
// Decode: Decode(Encode(v)) yields v for every v Decode produces.
func Encode(v TypedValue) string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return boolTrue
		}
		return boolFalse
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		// The game writes floats in fixed 6-decimal style. Use it when
		// it survives a round trip, otherwise fall back to the shortest
		// exact representation.
		fixed := strconv.FormatFloat(v.Float, 'f', 6, 64)
		if back, err := strconv.ParseFloat(fixed, 64); err == nil && back == v.Float {
			return fixed
		}
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindEnum, KindString:
		return v.Str
	}
	return ""
}

// Equal reports whether two typed values carry the same kind and value.
func Equal(a, b TypedValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	default:
		return a.Str == b.Str
	}
}

// sanitize strips control characters that would break the line-oriented
// format out of a free-form string value.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Bool builds a boolean TypedValue.
func Bool(v bool) TypedValue { return TypedValue{Kind: KindBool, Bool: v} }

// Int builds an integer TypedValue.
func Int(v int64) TypedValue { return TypedValue{Kind: KindInt, Int: v} }

// Float builds a floating-point TypedValue.
func Float(v float64) TypedValue { return TypedValue{Kind: KindFloat, Float: v} }

// Enum builds an enum TypedValue. The caller is responsible for member
// validity; Validate-produced values are always members.
func Enum(v string) TypedValue { return TypedValue{Kind: KindEnum, Str: v} }

// String builds a string TypedValue.
func String(v string) TypedValue { return TypedValue{Kind: KindString, Str: sanitize(v)} }
