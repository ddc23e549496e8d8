package profile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tstetson/fieldtuner/internal/apperr"
)

const sample = "GstRender.Dx12Enabled=1\nGstRender.FieldOfViewVertical=80.000000\n# tuned by hand\nGstRender.MotionBlurEnable=1\n\nUnknown.Directive=keep=me\n"

func TestParse_RoundTripIdentity(t *testing.T) {
	inputs := []string{
		sample,
		"a=1\r\nb=2\r\n",
		"no trailing newline=1",
		"",
		"; comment only\n\n\n",
		"weird line without delimiter\nx=1\n",
	}
	for _, in := range inputs {
		doc, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := doc.Serialize(); string(got) != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestParse_FirstEqualsDelimiter(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := doc.Get("Unknown.Directive")
	if !ok {
		t.Fatal("key missing")
	}
	if v != "keep=me" {
		t.Errorf("value = %q, want %q (later '=' belongs to the value)", v, "keep=me")
	}
}

func TestParse_CommentsAndBlanksNotEntries(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Has("# tuned by hand") {
		t.Error("comment parsed as entry")
	}
	if doc.Len() != 4 {
		t.Errorf("Len = %d, want 4", doc.Len())
	}
}

func TestParse_BinaryDetection(t *testing.T) {
	cases := [][]byte{
		[]byte("PROFSAVE\x01\x02binary blob"),
		{0x00, 0x01, 0x02},
		append([]byte("almost text"), 0x00),
	}
	for _, data := range cases {
		_, err := Parse(data)
		if !errors.Is(err, apperr.ErrBinaryFormat) {
			t.Errorf("Parse(%q) err = %v, want ErrBinaryFormat", data, err)
		}
	}
}

func TestSet_RewritesInPlace(t *testing.T) {
	doc, _ := Parse([]byte(sample))
	doc.Set("GstRender.MotionBlurEnable", "0")
	want := "GstRender.Dx12Enabled=1\nGstRender.FieldOfViewVertical=80.000000\n# tuned by hand\nGstRender.MotionBlurEnable=0\n\nUnknown.Directive=keep=me\n"
	if got := string(doc.Serialize()); got != want {
		t.Errorf("serialize =\n%q\nwant\n%q", got, want)
	}
}

func TestSet_AppendsNewKeys(t *testing.T) {
	doc, _ := Parse([]byte("a=1\n"))
	doc.Apply(map[string]string{"z": "9", "b": "2"})
	want := "a=1\nb=2\nz=9\n"
	if got := string(doc.Serialize()); got != want {
		t.Errorf("serialize = %q, want %q (new keys in lexical order)", got, want)
	}
}

func TestSet_AppendAfterMissingFinalNewline(t *testing.T) {
	doc, _ := Parse([]byte("a=1"))
	doc.Set("b", "2")
	if got := string(doc.Serialize()); got != "a=1\nb=2\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestSet_PreservesCRLF(t *testing.T) {
	doc, _ := Parse([]byte("a=1\r\nb=2\r\n"))
	doc.Set("a", "5")
	doc.Set("c", "3")
	if got := string(doc.Serialize()); got != "a=5\r\nb=2\r\nc=3\r\n" {
		t.Errorf("serialize = %q", got)
	}
}

func TestUnknownKeySurvivesUnrelatedEdit(t *testing.T) {
	doc, _ := Parse([]byte(sample))
	doc.Set("GstRender.Dx12Enabled", "0")
	out := doc.Serialize()
	if !bytes.Contains(out, []byte("Unknown.Directive=keep=me\n")) {
		t.Error("undocumented line did not survive an unrelated edit")
	}
	if !bytes.Contains(out, []byte("# tuned by hand\n")) {
		t.Error("comment did not survive")
	}
}

func TestClone_Independent(t *testing.T) {
	doc, _ := Parse([]byte(sample))
	snap := doc.Clone()
	doc.Set("GstRender.Dx12Enabled", "0")
	if v, _ := snap.Get("GstRender.Dx12Enabled"); v != "1" {
		t.Errorf("snapshot mutated: %q", v)
	}
}

func TestParseFile_Provenance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PROFSAVE_profile")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if doc.Path != path || doc.Checksum == "" || doc.ReadAt.IsZero() {
		t.Errorf("provenance incomplete: %+v", doc)
	}
}

func TestDuplicateKey_FirstWins(t *testing.T) {
	doc, _ := Parse([]byte("k=1\nk=2\n"))
	if v, _ := doc.Get("k"); v != "1" {
		t.Errorf("Get = %q, want first occurrence", v)
	}
	doc.Set("k", "9")
	if got := string(doc.Serialize()); got != "k=9\nk=2\n" {
		t.Errorf("serialize = %q (only first occurrence rewritten)", got)
	}
}
