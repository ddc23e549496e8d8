package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/commit"
	"github.com/tstetson/fieldtuner/internal/preset"
	"github.com/tstetson/fieldtuner/internal/testutil"
)

func newService(t *testing.T, content string) *Service {
	t.Helper()
	dir := t.TempDir()
	path := testutil.WriteProfile(t, dir, "PROFSAVE_profile", content)
	backups := testutil.NewBackupManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(path, preset.NewStore(), backups, commit.NewCoordinator(backups, nil), backup.DefaultRetention, nil, logger)
}

func TestProfile_SeparatesKnownAndUnknown(t *testing.T) {
	s := newService(t, "GstRender.MotionBlurEnable=1\nCustom.Tweak=abc\n")

	detail, err := s.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(detail.Settings) != 1 || detail.Settings[0].Key != "GstRender.MotionBlurEnable" {
		t.Fatalf("settings = %+v, want single known key", detail.Settings)
	}
	if len(detail.Unknown) != 1 || detail.Unknown[0] != "Custom.Tweak" {
		t.Fatalf("unknown = %v", detail.Unknown)
	}
	if detail.Checksum == "" {
		t.Fatal("missing checksum")
	}
}

func TestProfile_MissingFile(t *testing.T) {
	s := newService(t, "x=1\n")
	s.profilePath = filepath.Join(t.TempDir(), "absent")

	_, err := s.Profile(context.Background())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPreview_DoesNotWrite(t *testing.T) {
	content := "GstRender.MotionBlurEnable=1\n"
	s := newService(t, content)

	res, err := s.Preview(context.Background(), map[string]string{"GstRender.MotionBlurEnable": "0"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if res.Changes.Len() != 1 {
		t.Fatalf("changes = %d, want 1", res.Changes.Len())
	}

	got, _ := os.ReadFile(s.profilePath)
	if string(got) != content {
		t.Fatalf("preview modified the file: %q", got)
	}
}

func TestCommit_RejectsHardRangeViolation(t *testing.T) {
	s := newService(t, "GstRender.Brightness=0.500000\n")

	_, report, err := s.Commit(context.Background(), map[string]string{"GstRender.Brightness": "7.5"}, "")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !report.HasErrors() {
		t.Fatal("report should carry the rejection")
	}

	got, _ := os.ReadFile(s.profilePath)
	if string(got) != "GstRender.Brightness=0.500000\n" {
		t.Fatalf("file changed despite rejection: %q", got)
	}
}

func TestCommit_AppliesAndBacksUp(t *testing.T) {
	s := newService(t, "GstRender.MotionBlurEnable=1\n")

	res, _, err := s.Commit(context.Background(), map[string]string{"GstRender.MotionBlurEnable": "0"}, "turn off blur")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.State != commit.StateCommitted {
		t.Fatalf("state = %s", res.State)
	}

	recs, err := s.Backups(context.Background())
	if err != nil {
		t.Fatalf("backups: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("backups = %d, want 1", len(recs))
	}
}

func TestApplyPreset_IsIdempotent(t *testing.T) {
	s := newService(t, "GstRender.MotionBlurEnable=1\n")

	res, _, err := s.ApplyPreset(context.Background(), "esports")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if res.State != commit.StateCommitted {
		t.Fatalf("state = %s", res.State)
	}

	// Second application finds nothing to change.
	res, _, err = s.ApplyPreset(context.Background(), "esports")
	if err != nil {
		t.Fatalf("re-apply preset: %v", err)
	}
	if res.State != commit.StateIdle {
		t.Fatalf("state = %s, want %s for no-op", res.State, commit.StateIdle)
	}
}

func TestApplyPreset_UnknownID(t *testing.T) {
	s := newService(t, "x=1\n")
	_, _, err := s.ApplyPreset(context.Background(), "no-such-preset")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRestoreBackup_TakesSafetyBackup(t *testing.T) {
	s := newService(t, "GstRender.MotionBlurEnable=1\n")

	res, _, err := s.Commit(context.Background(), map[string]string{"GstRender.MotionBlurEnable": "0"}, "")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := s.RestoreBackup(context.Background(), res.Backup.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, _ := os.ReadFile(s.profilePath)
	if string(got) != "GstRender.MotionBlurEnable=1\n" {
		t.Fatalf("restored file = %q", got)
	}

	recs, _ := s.Backups(context.Background())
	if len(recs) != 2 {
		t.Fatalf("backups after restore = %d, want commit backup + safety backup", len(recs))
	}
}

func TestDetectProfile(t *testing.T) {
	dir := t.TempDir()
	real := testutil.WriteProfile(t, dir, "PROFSAVE_profile", "x=1\n")

	got, err := DetectProfile([]string{
		filepath.Join(dir, "missing", "PROFSAVE_profile"),
		real,
	})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if got != real {
		t.Fatalf("detected %q, want %q", got, real)
	}

	if _, err := DetectProfile([]string{filepath.Join(dir, "nope")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
