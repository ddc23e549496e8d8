package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/storage"
)

func testManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(filepath.Join(root, "backups"))
	if err != nil {
		t.Fatal(err)
	}
	db, err := Open(filepath.Join(root, "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	profilePath := filepath.Join(root, "PROFSAVE_profile")
	if err := os.WriteFile(profilePath, []byte("GstRender.Dx12Enabled=1\nblur=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewManager(store, db), profilePath
}

func TestCreate_VerifiedCopy(t *testing.T) {
	m, profilePath := testManager(t)
	rec, err := m.Create(profilePath, "before tweak")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 || rec.Size == 0 || rec.Checksum == "" {
		t.Errorf("record = %+v", rec)
	}
	if rec.OriginalPath != profilePath {
		t.Errorf("OriginalPath = %q", rec.OriginalPath)
	}
	data, err := m.Read(rec)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	src, _ := os.ReadFile(profilePath)
	if string(data) != string(src) {
		t.Error("payload differs from source")
	}
}

func TestCreate_MissingSourceFails(t *testing.T) {
	m, _ := testManager(t)
	if _, err := m.Create("/nonexistent/profile", ""); err == nil {
		t.Error("expected error")
	}
}

func TestCreate_CollisionWithinSameInstant(t *testing.T) {
	m, profilePath := testManager(t)
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	a, err := m.Create(profilePath, "x")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Create(profilePath, "x")
	if err != nil {
		t.Fatal(err)
	}
	if a.FileName == b.FileName {
		t.Errorf("colliding names: %q", a.FileName)
	}
}

func TestList_NewestFirstAndRepeatable(t *testing.T) {
	m, profilePath := testManager(t)
	base := time.Now()
	for i := 0; i < 3; i++ {
		step := i
		m.now = func() time.Time { return base.Add(time.Duration(step) * time.Second) }
		if _, err := m.Create(profilePath, ""); err != nil {
			t.Fatal(err)
		}
	}
	first, err := m.List("")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("lengths %d, %d", len(first), len(second))
	}
	for i := 1; i < len(first); i++ {
		if first[i].CreatedAt.After(first[i-1].CreatedAt) {
			t.Error("not newest first")
		}
	}
}

func TestRestore_Atomic(t *testing.T) {
	m, profilePath := testManager(t)
	rec, err := m.Create(profilePath, "pre-image")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(profilePath, []byte("GstRender.Dx12Enabled=0\nblur=0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(rec, profilePath); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	data, _ := os.ReadFile(profilePath)
	if string(data) != "GstRender.Dx12Enabled=1\nblur=1\n" {
		t.Errorf("restored content = %q", data)
	}
	// No temp junk left behind.
	entries, _ := os.ReadDir(filepath.Dir(profilePath))
	for _, e := range entries {
		if len(e.Name()) > 10 && e.Name()[:10] == ".fieldtune" {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestRestore_CorruptPayloadRejected(t *testing.T) {
	m, profilePath := testManager(t)
	rec, err := m.Create(profilePath, "")
	if err != nil {
		t.Fatal(err)
	}
	rec.Checksum = "deadbeef"
	if err := m.Restore(rec, profilePath); err == nil {
		t.Error("corrupted payload should not restore")
	}
}

func TestDelete(t *testing.T) {
	m, profilePath := testManager(t)
	rec, err := m.Create(profilePath, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestCleanup_KeepCount(t *testing.T) {
	m, profilePath := testManager(t)
	base := time.Now()
	for i := 0; i < 4; i++ {
		step := i
		m.now = func() time.Time { return base.Add(time.Duration(step) * time.Second) }
		if _, err := m.Create(profilePath, ""); err != nil {
			t.Fatal(err)
		}
	}
	deleted, err := m.Cleanup(RetentionPolicy{KeepCount: 3})
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("deleted %d records", len(deleted))
	}
	remaining, _ := m.List("")
	if len(remaining) != 3 {
		t.Errorf("%d remaining", len(remaining))
	}
	// The removed one must be the oldest.
	for _, r := range remaining {
		if !r.CreatedAt.After(deleted[0].CreatedAt) {
			t.Error("a kept backup is older than the deleted one")
		}
	}
}

func TestCleanup_NewestSurvivesAgePolicy(t *testing.T) {
	m, profilePath := testManager(t)
	old := time.Now().Add(-90 * 24 * time.Hour)
	m.now = func() time.Time { return old }
	if _, err := m.Create(profilePath, "ancient"); err != nil {
		t.Fatal(err)
	}
	m.now = time.Now

	deleted, err := m.Cleanup(DefaultRetention)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if len(deleted) != 0 {
		t.Error("sole backup must never be deleted")
	}
}

func TestCleanup_AgeThreshold(t *testing.T) {
	m, profilePath := testManager(t)
	m.now = func() time.Time { return time.Now().Add(-40 * 24 * time.Hour) }
	if _, err := m.Create(profilePath, "old"); err != nil {
		t.Fatal(err)
	}
	m.now = time.Now
	if _, err := m.Create(profilePath, "fresh"); err != nil {
		t.Fatal(err)
	}

	deleted, err := m.Cleanup(RetentionPolicy{MaxAge: 30 * 24 * time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	if len(deleted) != 1 || deleted[0].Description != "old" {
		t.Errorf("deleted = %+v", deleted)
	}
}
