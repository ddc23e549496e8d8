// Package engine ties the profile parser, schema catalog, validation,
// backups and the commit coordinator into one service used by the HTTP
// API and the MCP server.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/changeset"
	"github.com/tstetson/fieldtuner/internal/commit"
	"github.com/tstetson/fieldtuner/internal/preset"
	"github.com/tstetson/fieldtuner/internal/profile"
	"github.com/tstetson/fieldtuner/internal/schema"
	"github.com/tstetson/fieldtuner/internal/sse"
	"github.com/tstetson/fieldtuner/internal/validate"
)

// SettingValue is one recognized profile entry with its decoded value.
type SettingValue struct {
	Key      string             `json:"key"`
	Raw      string             `json:"raw"`
	Kind     string             `json:"kind"`
	Label    string             `json:"label,omitempty"`
	Category string             `json:"category,omitempty"`
	Findings []validate.Finding `json:"findings,omitempty"`
}

// ProfileDetail is the full representation of a parsed profile.
type ProfileDetail struct {
	Path     string         `json:"path"`
	Checksum string         `json:"checksum"`
	ReadAt   time.Time      `json:"read_at"`
	Settings []SettingValue `json:"settings"`
	Unknown  []string       `json:"unknown_keys,omitempty"`
}

// PreviewResult pairs a computed change set with its validation report.
type PreviewResult struct {
	Changes changeset.ChangeSet `json:"changes"`
	Report  validate.Report     `json:"report"`
}

// Service coordinates all profile operations against one profile file.
type Service struct {
	profilePath string
	presets     *preset.Store
	backups     *backup.Manager
	coordinator *commit.Coordinator
	retention   backup.RetentionPolicy
	broker      *sse.Broker
	logger      *slog.Logger
}

// NewService creates the engine. broker may be nil; events are then
// dropped.
func NewService(profilePath string, presets *preset.Store, backups *backup.Manager, coordinator *commit.Coordinator, retention backup.RetentionPolicy, broker *sse.Broker, logger *slog.Logger) *Service {
	return &Service{
		profilePath: profilePath,
		presets:     presets,
		backups:     backups,
		coordinator: coordinator,
		retention:   retention,
		broker:      broker,
		logger:      logger,
	}
}

// ProfilePath returns the path the service operates on.
func (s *Service) ProfilePath() string { return s.profilePath }

// SetBroker attaches the SSE broker. Call before serving requests;
// the field is not guarded.
func (s *Service) SetBroker(b *sse.Broker) { s.broker = b }

// Profile parses the live file and decorates every entry with catalog
// metadata and validation findings. Unrecognized keys are listed but
// never judged.
func (s *Service) Profile(_ context.Context) (*ProfileDetail, error) {
	doc, err := profile.ParseFile(s.profilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("engine: %w", apperr.ErrNotFound)
		}
		return nil, err
	}

	detail := &ProfileDetail{
		Path:     doc.Path,
		Checksum: doc.Checksum,
		ReadAt:   doc.ReadAt,
	}
	for _, key := range doc.Keys() {
		raw, _ := doc.Get(key)
		d, known := schema.Lookup(key)
		if !known {
			detail.Unknown = append(detail.Unknown, key)
			continue
		}
		_, findings := validate.Value(key, raw)
		detail.Settings = append(detail.Settings, SettingValue{
			Key:      key,
			Raw:      raw,
			Kind:     d.Kind.String(),
			Label:    d.Label,
			Category: d.Category,
			Findings: findings,
		})
	}
	return detail, nil
}

// Catalog returns every known setting descriptor, sorted by key.
func (s *Service) Catalog() []*schema.Descriptor {
	return schema.All()
}

// Presets returns all available presets.
func (s *Service) Presets() []preset.Preset {
	return s.presets.List()
}

// Preview validates edits against the live file and computes the
// change set a commit would apply. Nothing is written.
func (s *Service) Preview(_ context.Context, edits map[string]string) (PreviewResult, error) {
	doc, err := profile.ParseFile(s.profilePath)
	if err != nil {
		return PreviewResult{}, err
	}
	cs, report := changeset.FromEdits(doc, edits)
	return PreviewResult{Changes: cs, Report: report}, nil
}

// Commit validates edits, applies the resulting change set atomically
// and runs backup retention. Rejected edits abort before anything is
// written.
func (s *Service) Commit(ctx context.Context, edits map[string]string, description string) (commit.Result, validate.Report, error) {
	doc, err := profile.ParseFile(s.profilePath)
	if err != nil {
		return commit.Result{}, validate.Report{}, err
	}
	cs, report := changeset.FromEdits(doc, edits)
	if report.HasErrors() {
		return commit.Result{State: commit.StateIdle}, report, fmt.Errorf("engine: commit: %w", apperr.ErrValidation)
	}

	res, err := s.coordinator.Commit(ctx, s.profilePath, cs, description)
	if err != nil {
		return res, report, err
	}
	if res.State == commit.StateCommitted {
		s.logger.Info("commit applied",
			slog.String("path", s.profilePath),
			slog.Int("changes", cs.Len()))
		s.publish("commit.applied", map[string]any{
			"path":    s.profilePath,
			"changes": cs.Len(),
		})
		if res.Backup != nil {
			s.publish("backup.created", map[string]any{"id": res.Backup.ID})
		}
		s.cleanup()
	}
	return res, report, nil
}

// ApplyPreset commits every setting of the named preset. Preset values
// already present in the file are skipped by the diff, so re-applying
// a preset is a no-op.
func (s *Service) ApplyPreset(ctx context.Context, id string) (commit.Result, validate.Report, error) {
	p, err := s.presets.Get(id)
	if err != nil {
		return commit.Result{}, validate.Report{}, err
	}
	return s.Commit(ctx, p.Settings, "preset-"+p.ID)
}

// Backups lists all backups of the profile, newest first.
func (s *Service) Backups(_ context.Context) ([]backup.Record, error) {
	return s.backups.List(s.profilePath)
}

// CreateBackup takes a manual backup of the live file.
func (s *Service) CreateBackup(_ context.Context, description string) (backup.Record, error) {
	rec, err := s.backups.Create(s.profilePath, description)
	if err != nil {
		return backup.Record{}, err
	}
	s.publish("backup.created", map[string]any{"id": rec.ID})
	s.cleanup()
	return rec, nil
}

// ReadBackup returns a backup's verified payload.
func (s *Service) ReadBackup(_ context.Context, id int64) (backup.Record, []byte, error) {
	rec, err := s.backups.Get(id)
	if err != nil {
		return backup.Record{}, nil, err
	}
	data, err := s.backups.Read(rec)
	if err != nil {
		return backup.Record{}, nil, err
	}
	return rec, data, nil
}

// RestoreBackup replaces the live file with a backup's payload. A
// safety backup of the current state is taken first, so a restore is
// itself undoable.
func (s *Service) RestoreBackup(_ context.Context, id int64) (backup.Record, error) {
	rec, err := s.backups.Get(id)
	if err != nil {
		return backup.Record{}, err
	}
	if _, err := s.backups.Create(s.profilePath, "pre-restore"); err != nil {
		return backup.Record{}, fmt.Errorf("engine: restore safety backup: %w", err)
	}
	if err := s.backups.Restore(rec, s.profilePath); err != nil {
		return backup.Record{}, err
	}
	s.logger.Info("backup restored",
		slog.Int64("id", rec.ID),
		slog.String("path", s.profilePath))
	s.publish("backup.restored", map[string]any{"id": rec.ID})
	s.cleanup()
	return rec, nil
}

// DeleteBackup removes a backup and its payload.
func (s *Service) DeleteBackup(_ context.Context, id int64) error {
	return s.backups.Delete(id)
}

func (s *Service) publish(eventType string, data any) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(sse.Event{Type: eventType, Data: data})
}

func (s *Service) cleanup() {
	deleted, err := s.backups.Cleanup(s.retention)
	if err != nil {
		s.logger.Warn("backup retention", slog.String("error", err.Error()))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("backup retention", slog.Int("deleted", len(deleted)))
	}
}

// DetectProfile returns the first existing profile file among the
// given candidate paths.
func DetectProfile(candidates []string) (string, error) {
	for _, c := range candidates {
		p := filepath.Clean(c)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("engine: no profile found: %w", apperr.ErrNotFound)
}
