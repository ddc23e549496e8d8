package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/validate"
)

func TestBuiltins_Present(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"esports", "competitive", "balanced", "quality"} {
		p, err := s.Get(id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if !p.Builtin || len(p.Settings) == 0 {
			t.Errorf("preset %s = %+v", id, p)
		}
	}
	if _, err := s.Get("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestBuiltins_ValidateCleanly(t *testing.T) {
	s := NewStore()
	for _, p := range s.List() {
		_, report := validate.All(p.Settings)
		if report.HasErrors() {
			t.Errorf("preset %s rejects: %v", p.ID, report.Errors())
		}
	}
}

func TestLoadDir_UserPresets(t *testing.T) {
	dir := t.TempDir()
	body := "name: Streaming\ndescription: Capture-friendly settings.\nsettings:\n  GstRender.FrameRateLimit: \"120.000000\"\n  GstRender.VSyncMode: \"1\"\n"
	if err := os.WriteFile(filepath.Join(dir, "streaming.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	p, err := s.Get("streaming")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Builtin || p.Name != "Streaming" || p.Settings["GstRender.VSyncMode"] != "1" {
		t.Errorf("preset = %+v", p)
	}
}

func TestLoadDir_MissingDirIsFine(t *testing.T) {
	s := NewStore()
	if err := s.LoadDir(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
}

func TestLoadDir_MalformedFails(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::"), 0o644)
	s := NewStore()
	if err := s.LoadDir(dir); err == nil {
		t.Error("malformed preset should fail")
	}
}
