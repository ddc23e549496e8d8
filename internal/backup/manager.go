package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tstetson/fieldtuner/internal/checksum"
	"github.com/tstetson/fieldtuner/internal/storage"
)

// RetentionPolicy bounds how many backups are kept. Zero fields
// disable the corresponding threshold. Whatever the policy says, the
// single newest backup is never deleted.
type RetentionPolicy struct {
	KeepCount int
	MaxAge    time.Duration
}

// DefaultRetention matches the original tool: 20 backups, 30 days.
var DefaultRetention = RetentionPolicy{KeepCount: 20, MaxAge: 30 * 24 * time.Hour}

// Index is the metadata store the manager records into. *DB satisfies
// it; tests may substitute their own.
type Index interface {
	Insert(r Record) (int64, error)
	Get(id int64) (Record, error)
	List(originalPath string) ([]Record, error)
	Delete(id int64) error
}

var _ Index = (*DB)(nil)

// Manager copies profile files into the backup store and tracks them
// in the index.
type Manager struct {
	store storage.Provider
	index Index
	now   func() time.Time
}

// NewManager creates a backup manager over the given store and index.
func NewManager(store storage.Provider, index Index) *Manager {
	return &Manager{store: store, index: index, now: time.Now}
}

// Create copies the file at sourcePath into the backup store and
// records it. The copy is verified (size and checksum against the
// source bytes) before the record is written; a backup that cannot be
// verified is removed and reported as an error.
func (m *Manager) Create(sourcePath, description string) (Record, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return Record{}, fmt.Errorf("backup: read source %s: %w", sourcePath, err)
	}
	sum := checksum.Sum(data)

	name, err := m.uniqueName(description)
	if err != nil {
		return Record{}, err
	}
	if err := m.store.Write(name, data); err != nil {
		return Record{}, err
	}

	// Verify the copy landed intact before trusting it as a recovery point.
	abs, err := m.store.Path(name)
	if err != nil {
		return Record{}, err
	}
	info, err := os.Stat(abs)
	if err != nil || info.Size() != int64(len(data)) {
		_ = m.store.Delete(name)
		return Record{}, fmt.Errorf("backup: verify %s: size mismatch", name)
	}
	diskSum, err := checksum.SumFile(abs)
	if err != nil || diskSum != sum {
		_ = m.store.Delete(name)
		return Record{}, fmt.Errorf("backup: verify %s: checksum mismatch", name)
	}

	rec := Record{
		FileName:     name,
		OriginalPath: sourcePath,
		Description:  description,
		Size:         int64(len(data)),
		Checksum:     sum,
		CreatedAt:    m.now(),
	}
	id, err := m.index.Insert(rec)
	if err != nil {
		_ = m.store.Delete(name)
		return Record{}, err
	}
	rec.ID = id
	return rec, nil
}

// Get returns a single record by ID.
func (m *Manager) Get(id int64) (Record, error) {
	return m.index.Get(id)
}

// List returns records newest first, optionally filtered by original
// profile path.
func (m *Manager) List(originalPath string) ([]Record, error) {
	return m.index.List(originalPath)
}

// Read returns the stored payload of a backup, verified against the
// recorded checksum.
func (m *Manager) Read(rec Record) ([]byte, error) {
	data, err := m.store.Read(rec.FileName)
	if err != nil {
		return nil, err
	}
	if checksum.Sum(data) != rec.Checksum {
		return nil, fmt.Errorf("backup: %s corrupted on disk", rec.FileName)
	}
	return data, nil
}

// Restore copies a backup's content back over targetPath atomically:
// the payload is written to a temporary file in the target's directory
// and renamed into place, so a crash mid-restore never leaves a
// half-written live file.
func (m *Manager) Restore(rec Record, targetPath string) error {
	data, err := m.Read(rec)
	if err != nil {
		return err
	}
	return replaceFile(targetPath, data)
}

// Delete removes a backup's payload and record.
func (m *Manager) Delete(id int64) error {
	rec, err := m.index.Get(id)
	if err != nil {
		return err
	}
	if err := m.store.Delete(rec.FileName); err != nil && !os.IsNotExist(err) {
		return err
	}
	return m.index.Delete(id)
}

// Cleanup removes backups beyond the policy's count or age thresholds,
// oldest first. The newest backup always survives so at least one
// recovery point exists once any backup has been made. Returns the
// deleted records.
func (m *Manager) Cleanup(policy RetentionPolicy) ([]Record, error) {
	records, err := m.index.List("")
	if err != nil {
		return nil, err
	}
	cutoff := time.Time{}
	if policy.MaxAge > 0 {
		cutoff = m.now().Add(-policy.MaxAge)
	}

	var doomed []Record
	for i, rec := range records { // newest first; index 0 is untouchable
		if i == 0 {
			continue
		}
		overCount := policy.KeepCount > 0 && i >= policy.KeepCount
		overAge := !cutoff.IsZero() && rec.CreatedAt.Before(cutoff)
		if overCount || overAge {
			doomed = append(doomed, rec)
		}
	}

	// Delete oldest first.
	var deleted []Record
	for i := len(doomed) - 1; i >= 0; i-- {
		if err := m.Delete(doomed[i].ID); err != nil {
			return deleted, err
		}
		deleted = append(deleted, doomed[i])
	}
	return deleted, nil
}

// uniqueName builds a timestamped file name, disambiguated when two
// backups land within the same second.
func (m *Manager) uniqueName(description string) (string, error) {
	base := "backup_" + m.now().Format("20060102_150405")
	if desc := sanitizeDescription(description); desc != "" {
		base += "_" + desc
	}
	name := base
	for n := 2; ; n++ {
		abs, err := m.store.Path(name)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// sanitizeDescription reduces a free-text description to a short,
// filename-safe slug. The full text stays in the index.
func sanitizeDescription(desc string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, desc)
	mapped = strings.Trim(mapped, "_")
	if len(mapped) > 30 {
		mapped = mapped[:30]
	}
	return mapped
}

// replaceFile atomically replaces path with data via a temporary file
// in the same directory.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fieldtuner-restore-*")
	if err != nil {
		return fmt.Errorf("backup: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("backup: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("backup: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("backup: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("backup: rename: %w", err)
	}
	success = true
	return nil
}
