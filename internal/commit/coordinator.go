// Package commit orchestrates the atomic application of a change set
// to the live profile file: lock → backup → write temp → verify →
// rename. The original file is untouched unless every step succeeds.
package commit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/changeset"
	"github.com/tstetson/fieldtuner/internal/codec"
	"github.com/tstetson/fieldtuner/internal/profile"
	"github.com/tstetson/fieldtuner/internal/schema"
)

// State of a commit attempt.
type State string

const (
	StateIdle       State = "idle"
	StateLocking    State = "locking"
	StateBackingUp  State = "backing-up"
	StateWriting    State = "writing"
	StateVerifying  State = "verifying"
	StateCommitted  State = "committed"
	StateRolledBack State = "rolled-back"
)

// tmpPattern is the prefix of in-flight temp files next to the target.
// Stale ones from crashed attempts are swept before each write.
const tmpPattern = ".fieldtuner-commit-"

// Result describes a finished commit attempt. State is Committed on
// success, RolledBack on failure, Idle for a no-op. The backup (when
// one was taken) survives either way.
type Result struct {
	State   State               `json:"state"`
	Applied changeset.ChangeSet `json:"applied"`
	Backup  *backup.Record      `json:"backup,omitempty"`
}

// Coordinator serializes commits per profile path. Concurrent commit
// attempts against the same path are rejected, never interleaved;
// readers keep working on snapshots and only ever see the file before
// or after the atomic rename.
type Coordinator struct {
	backups *backup.Manager
	probe   ProcessProbe

	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// NewCoordinator creates a coordinator. probe may be nil when no
// game-running detection is wanted.
func NewCoordinator(backups *backup.Manager, probe ProcessProbe) *Coordinator {
	return &Coordinator{
		backups: backups,
		probe:   probe,
		paths:   make(map[string]*sync.Mutex),
	}
}

func (c *Coordinator) pathLock(path string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.paths[path]
	if !ok {
		m = &sync.Mutex{}
		c.paths[path] = m
	}
	return m
}

// Commit applies cs to the profile at path. description tags the
// pre-write backup. The context is consulted only before the write
// begins; once writing starts the attempt runs to Committed or
// RolledBack.
func (c *Coordinator) Commit(ctx context.Context, path string, cs changeset.ChangeSet, description string) (Result, error) {
	res := Result{State: StateIdle, Applied: cs}

	// An empty change set commits as a no-op: no backup, no write.
	if cs.Empty() {
		return res, nil
	}

	// Pre-flight: never start a doomed commit while the game may be
	// holding or rewriting the file.
	if c.probe != nil && c.probe() {
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: %w", path, apperr.ErrGameRunning)
	}

	res.State = StateLocking
	lock := c.pathLock(path)
	if !lock.TryLock() {
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: %w", path, apperr.ErrLockConflict)
	}
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		res.State = StateRolledBack
		return res, err
	}

	doc, err := profile.ParseFile(path)
	if err != nil {
		res.State = StateRolledBack
		return res, err
	}

	res.State = StateBackingUp
	rec, err := c.backups.Create(path, description)
	if err != nil {
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: backup: %w", path, err)
	}
	res.Backup = &rec

	res.State = StateWriting
	sweepStaleTemps(filepath.Dir(path))
	doc.Apply(cs.RawValues())

	tmpName, err := writeTemp(path, doc.Serialize())
	if err != nil {
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: %w", path, err)
	}

	res.State = StateVerifying
	if err := verifyTemp(tmpName, cs); err != nil {
		_ = os.Remove(tmpName)
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		res.State = StateRolledBack
		return res, fmt.Errorf("commit %s: rename: %w", path, err)
	}

	res.State = StateCommitted
	return res, nil
}

// writeTemp writes data to a temp file in the target's directory and
// returns its name. fsync before close, so the subsequent rename
// publishes durable content.
func writeTemp(target string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), tmpPattern+"*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
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
		return "", fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp: %w", err)
	}
	success = true
	return tmpName, nil
}

// verifyTemp re-parses the temp file and confirms every changed key
// decodes to its intended typed value.
func verifyTemp(tmpName string, cs changeset.ChangeSet) error {
	doc, err := profile.ParseFile(tmpName)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	for _, ch := range cs.Changes {
		raw, ok := doc.Get(ch.Key)
		if !ok {
			return fmt.Errorf("verify: %s missing after write", ch.Key)
		}
		got, err := decodeFor(ch.Key, raw)
		if err != nil {
			return fmt.Errorf("verify: %s: %w", ch.Key, err)
		}
		if !codec.Equal(got, ch.New) {
			return fmt.Errorf("verify: %s = %q, intended %q", ch.Key, raw, ch.NewRaw)
		}
	}
	return nil
}

func decodeFor(key, raw string) (codec.TypedValue, error) {
	d, ok := schema.Lookup(key)
	if !ok {
		return codec.String(raw), nil
	}
	return codec.Decode(raw, d.Kind, d.MemberValues()...)
}

// sweepStaleTemps removes leftovers from attempts that crashed between
// writing and renaming. Only our own prefix is touched.
func sweepStaleTemps(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, tmpPattern+"*"))
	if err != nil {
		return
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
}
