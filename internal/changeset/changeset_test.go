package changeset

import (
	"testing"

	"github.com/tstetson/fieldtuner/internal/codec"
	"github.com/tstetson/fieldtuner/internal/profile"
)

const baselineText = "GstRender.Dx12Enabled=1\nGstRender.FrameRateLimit=144.000000\nGstRender.MotionBlurEnable=1\n"

func mustParse(t *testing.T, s string) *profile.Document {
	t.Helper()
	doc, err := profile.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDiff_OnlyChangedKeys(t *testing.T) {
	doc := mustParse(t, baselineText)
	cs := Diff(doc, map[string]codec.TypedValue{
		"GstRender.Dx12Enabled":      codec.Bool(true),  // same as baseline
		"GstRender.MotionBlurEnable": codec.Bool(false), // changed
	})
	if cs.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (no-op edits excluded)", cs.Len())
	}
	c := cs.Changes[0]
	if c.Key != "GstRender.MotionBlurEnable" || c.OldRaw != "1" || c.NewRaw != "0" {
		t.Errorf("change = %+v", c)
	}
	if c.Old == nil || !c.Old.Bool {
		t.Errorf("old typed value = %+v", c.Old)
	}
}

func TestDiff_NoOpReencoding(t *testing.T) {
	doc := mustParse(t, baselineText)
	cs := Diff(doc, map[string]codec.TypedValue{
		"GstRender.FrameRateLimit": codec.Float(144),
	})
	if !cs.Empty() {
		t.Errorf("144 re-encodes to baseline text; cs = %+v", cs.Changes)
	}
}

func TestDiff_OrderBaselineThenAddedSorted(t *testing.T) {
	doc := mustParse(t, baselineText)
	cs := Diff(doc, map[string]codec.TypedValue{
		"GstRender.Zzz":              codec.Int(1),
		"GstRender.Aaa":              codec.Int(2),
		"GstRender.MotionBlurEnable": codec.Bool(false),
		"GstRender.Dx12Enabled":      codec.Bool(false),
	})
	got := make([]string, cs.Len())
	for i, c := range cs.Changes {
		got[i] = c.Key
	}
	want := []string{"GstRender.Dx12Enabled", "GstRender.MotionBlurEnable", "GstRender.Aaa", "GstRender.Zzz"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !cs.Changes[2].Added || !cs.Changes[3].Added {
		t.Error("appended keys not flagged Added")
	}
}

func TestDiff_NoDuplicateKeys(t *testing.T) {
	doc := mustParse(t, baselineText)
	cs := Diff(doc, map[string]codec.TypedValue{"GstRender.MotionBlurEnable": codec.Bool(false)})
	seen := map[string]bool{}
	for _, c := range cs.Changes {
		if seen[c.Key] {
			t.Fatalf("duplicate key %s", c.Key)
		}
		seen[c.Key] = true
	}
}

func TestFromEdits_SharedValidationPath(t *testing.T) {
	doc := mustParse(t, baselineText)
	cs, report := FromEdits(doc, map[string]string{
		"GstRender.MotionBlurEnable": "0",
		"GstRender.FrameRateLimit":   "900.000000", // clamps to 500
		"GstRender.FullscreenMode":   "7",          // rejected
	})
	if !report.HasErrors() {
		t.Error("expected rejection in report")
	}
	raw := cs.RawValues()
	if raw["GstRender.FrameRateLimit"] != "500.000000" {
		t.Errorf("clamped raw = %q", raw["GstRender.FrameRateLimit"])
	}
	if _, ok := raw["GstRender.FullscreenMode"]; ok {
		t.Error("rejected key leaked into change set")
	}
	if cs.Len() != 2 {
		t.Errorf("Len = %d", cs.Len())
	}
}
