// Package validate checks raw setting values against the schema
// catalog, clamping or rejecting per descriptor. It is pure: no
// filesystem access, no mutation of shared state.
package validate

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tstetson/fieldtuner/internal/codec"
	"github.com/tstetson/fieldtuner/internal/schema"
)

// Severity of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes.
const (
	CodeDecode     = "decode"
	CodeRange      = "range"
	CodeClamped    = "clamped"
	CodeUnknownKey = "unknown_key"
)

// Finding is one per-key validation observation. Errors reject the
// value; warnings and infos accompany an accepted (possibly coerced)
// value. Nothing is silently dropped: clamps and unknown keys surface
// here.
type Finding struct {
	Key      string   `json:"key"`
	Raw      string   `json:"raw"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report aggregates findings across a batch of keys so a caller sees
// every problem at once instead of the first.
type Report []Finding

// HasErrors reports whether any finding is an error.
func (r Report) HasErrors() bool {
	for _, f := range r {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error findings.
func (r Report) Errors() Report {
	var out Report
	for _, f := range r {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Value validates one raw value against its descriptor. Unknown keys
// pass through as opaque strings with an informational finding. The
// returned TypedValue is meaningful only when no error finding is
// present.
func Value(key, raw string) (codec.TypedValue, []Finding) {
	d, ok := schema.Lookup(key)
	if !ok {
		return codec.String(raw), []Finding{{
			Key: key, Raw: raw, Severity: SeverityInfo, Code: CodeUnknownKey,
			Message: "undocumented setting, passed through unvalidated",
		}}
	}

	if d.Kind == codec.KindEnum {
		members := d.MemberValues()
		if err := validation.Validate(raw, validation.In(toAny(members)...)); err != nil {
			return codec.TypedValue{}, []Finding{{
				Key: key, Raw: raw, Severity: SeverityError, Code: CodeDecode,
				Message: fmt.Sprintf("not an allowed value for %s", d.Label),
			}}
		}
		return codec.Enum(raw), nil
	}

	v, err := codec.Decode(raw, d.Kind)
	if err != nil {
		var de *codec.DecodeError
		if errors.As(err, &de) {
			de.Key = key
		}
		return codec.TypedValue{}, []Finding{{
			Key: key, Raw: raw, Severity: SeverityError, Code: CodeDecode,
			Message: err.Error(),
		}}
	}

	if d.HasRange() {
		return clampToRange(d, v, raw)
	}
	return v, nil
}

// All validates a batch of raw edits, returning typed values for every
// accepted key and a report covering the whole batch. Rejected keys are
// absent from the value map.
func All(edits map[string]string) (map[string]codec.TypedValue, Report) {
	values := make(map[string]codec.TypedValue, len(edits))
	var report Report
	for key, raw := range edits {
		v, findings := Value(key, raw)
		report = append(report, findings...)
		if !Report(findings).HasErrors() {
			values[key] = v
		}
	}
	return values, report
}

// clampToRange enforces numeric bounds: a value exactly at a bound is
// accepted unchanged; outside a soft range it is clamped with a
// warning; outside a hard range it is rejected.
func clampToRange(d *schema.Descriptor, v codec.TypedValue, raw string) (codec.TypedValue, []Finding) {
	var n float64
	switch v.Kind {
	case codec.KindInt:
		n = float64(v.Int)
	case codec.KindFloat:
		n = v.Float
	default:
		return v, nil
	}

	if n >= d.Min && n <= d.Max {
		return v, nil
	}
	if d.HardRange {
		return codec.TypedValue{}, []Finding{{
			Key: d.Key, Raw: raw, Severity: SeverityError, Code: CodeRange,
			Message: fmt.Sprintf("%s must be between %g and %g", d.Label, d.Min, d.Max),
		}}
	}

	clamped := n
	if clamped < d.Min {
		clamped = d.Min
	} else {
		clamped = d.Max
	}
	if v.Kind == codec.KindInt {
		v.Int = int64(clamped)
	} else {
		v.Float = clamped
	}
	return v, []Finding{{
		Key: d.Key, Raw: raw, Severity: SeverityWarning, Code: CodeClamped,
		Message: fmt.Sprintf("%s clamped to %g (allowed %g-%g)", d.Label, clamped, d.Min, d.Max),
	}}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
