package api

import (
	"github.com/tstetson/fieldtuner/internal/backup"
	"github.com/tstetson/fieldtuner/internal/engine"
	"github.com/tstetson/fieldtuner/internal/preset"
	"github.com/tstetson/fieldtuner/internal/validate"
)

// EditRequest is the request body for preview and commit.
type EditRequest struct {
	Changes     map[string]string `json:"changes" validate:"required"`
	Description string            `json:"description,omitempty" example:"lower input latency"`
}

// BackupRequest is the request body for a manual backup.
type BackupRequest struct {
	Description string `json:"description,omitempty" example:"before tournament"`
}

// ProfileDetail is the full profile response type (aliased from the domain layer).
type ProfileDetail = engine.ProfileDetail

// PreviewResponse wraps a computed change set and its validation report.
type PreviewResponse = engine.PreviewResult

// CommitResponse is returned after a commit attempt.
type CommitResponse struct {
	State   string          `json:"state" example:"committed"`
	Changes int             `json:"changes" example:"3"`
	Backup  *backup.Record  `json:"backup,omitempty"`
	Report  validate.Report `json:"report,omitempty"`
}

// SettingDTO describes one catalog entry.
type SettingDTO struct {
	Key         string      `json:"key" example:"GstRender.MotionBlurEnable"`
	Kind        string      `json:"kind" example:"bool"`
	Label       string      `json:"label,omitempty" example:"Motion Blur"`
	Category    string      `json:"category,omitempty" example:"Graphics"`
	Subcategory string      `json:"subcategory,omitempty" example:"Post-processing"`
	Tooltip     string      `json:"tooltip,omitempty"`
	Default     string      `json:"default,omitempty" example:"0"`
	Min         float64     `json:"min,omitempty"`
	Max         float64     `json:"max,omitempty"`
	HardRange   bool        `json:"hard_range,omitempty"`
	Members     []MemberDTO `json:"members,omitempty"`
	Aliases     []string    `json:"aliases,omitempty"`
}

// MemberDTO is one allowed value of an enum setting.
type MemberDTO struct {
	Value string `json:"value" example:"2"`
	Label string `json:"label,omitempty" example:"High"`
}

// SettingsResponse wraps the settings catalog.
type SettingsResponse struct {
	Settings []SettingDTO `json:"settings" validate:"required"`
}

// PresetsResponse wraps the preset listing.
type PresetsResponse struct {
	Presets []preset.Preset `json:"presets" validate:"required"`
}

// BackupsResponse wraps the backup listing.
type BackupsResponse struct {
	Backups []backup.Record `json:"backups" validate:"required"`
}
