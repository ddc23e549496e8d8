// Package testutil holds helpers shared across package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/storage"
)

// WriteProfile writes content to name under dir and returns the path.
func WriteProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

// NewBackupManager builds a Manager over a temp store and a temp
// SQLite index, both cleaned up with the test.
func NewBackupManager(t *testing.T) *backup.Manager {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(filepath.Join(dir, "payloads"))
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	db, err := backup.Open(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return backup.NewManager(store, db)
}
