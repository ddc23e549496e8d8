package validate

import (
	"testing"

	"github.com/tstetson/fieldtuner/internal/codec"
)

func findingCodes(fs []Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Code
	}
	return out
}

func TestValue_AcceptsInRange(t *testing.T) {
	v, fs := Value("GstRender.FieldOfViewVertical", "90.000000")
	if len(fs) != 0 {
		t.Fatalf("unexpected findings: %v", fs)
	}
	if v.Kind != codec.KindFloat || v.Float != 90 {
		t.Errorf("value = %+v", v)
	}
}

func TestValue_ExactBoundsAcceptedUnchanged(t *testing.T) {
	for _, raw := range []string{"50.000000", "120.000000"} {
		v, fs := Value("GstRender.FieldOfViewVertical", raw)
		if len(fs) != 0 {
			t.Errorf("bound %s produced findings: %v", raw, fs)
		}
		if codec.Encode(v) != raw {
			t.Errorf("bound value changed: %q -> %q", raw, codec.Encode(v))
		}
	}
}

func TestValue_SoftRangeClamps(t *testing.T) {
	v, fs := Value("GstRender.FieldOfViewVertical", "121.000000")
	if len(fs) != 1 || fs[0].Code != CodeClamped || fs[0].Severity != SeverityWarning {
		t.Fatalf("findings = %v", fs)
	}
	if v.Float != 120 {
		t.Errorf("clamped value = %v, want 120", v.Float)
	}
	v, _ = Value("GstRender.FieldOfViewVertical", "49.000000")
	if v.Float != 50 {
		t.Errorf("clamped value = %v, want 50", v.Float)
	}
}

func TestValue_HardRangeRejects(t *testing.T) {
	_, fs := Value("GstRender.Brightness", "1.100000")
	if len(fs) != 1 || fs[0].Code != CodeRange || fs[0].Severity != SeverityError {
		t.Fatalf("findings = %v", fs)
	}
	// The bound itself is still fine.
	if _, fs := Value("GstRender.Brightness", "1.000000"); len(fs) != 0 {
		t.Errorf("bound rejected: %v", fs)
	}
}

func TestValue_EnumRejectsNonMember(t *testing.T) {
	if _, fs := Value("GstRender.FullscreenMode", "3"); !Report(fs).HasErrors() {
		t.Error("non-member enum value accepted")
	}
	v, fs := Value("GstRender.FullscreenMode", "2")
	if len(fs) != 0 || v.Str != "2" {
		t.Errorf("value = %+v, findings = %v", v, fs)
	}
}

func TestValue_BoolRejectsOtherTokens(t *testing.T) {
	if _, fs := Value("GstRender.Dx12Enabled", "yes"); !Report(fs).HasErrors() {
		t.Error(`"yes" accepted as boolean`)
	}
}

func TestValue_UnknownKeyPassesThrough(t *testing.T) {
	v, fs := Value("GstWeird.NotInCatalog", "whatever")
	if len(fs) != 1 || fs[0].Code != CodeUnknownKey || fs[0].Severity != SeverityInfo {
		t.Fatalf("findings = %v", fs)
	}
	if v.Kind != codec.KindString || v.Str != "whatever" {
		t.Errorf("value = %+v", v)
	}
}

func TestAll_AggregatesInsteadOfFailingFast(t *testing.T) {
	values, report := All(map[string]string{
		"GstRender.Dx12Enabled":         "1",
		"GstRender.FullscreenMode":      "9",
		"GstRender.FieldOfViewVertical": "200",
		"GstCustom.Opaque":              "x",
	})
	if !report.HasErrors() {
		t.Fatal("expected errors in report")
	}
	if len(report.Errors()) != 1 {
		t.Errorf("errors = %v", findingCodes(report.Errors()))
	}
	if _, ok := values["GstRender.FullscreenMode"]; ok {
		t.Error("rejected key present in values")
	}
	if v := values["GstRender.FieldOfViewVertical"]; v.Float != 120 {
		t.Errorf("clamp not applied in batch: %v", v)
	}
	if _, ok := values["GstCustom.Opaque"]; !ok {
		t.Error("unknown key should still be carried")
	}
	if len(values) != 3 {
		t.Errorf("values = %d entries", len(values))
	}
}
