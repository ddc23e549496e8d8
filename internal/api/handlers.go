package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/commit"
	"github.com/tstetson/fieldtuner/internal/engine"
	"github.com/tstetson/fieldtuner/internal/schema"
	"github.com/tstetson/fieldtuner/internal/validate"
)

// Handler holds API route handlers.
type Handler struct {
	svc *engine.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *engine.Service) *Handler {
	return &Handler{svc: svc}
}

func backupID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid backup id")
	}
	return id, nil
}

// GetProfile handles GET /api/profile.
//
//	@Summary		Get the parsed profile with validation findings
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Profile(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("profile not found"))
		case errors.Is(err, apperr.ErrBinaryFormat):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("profile is in binary format"))
		default:
			slog.Error("get profile failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// ListSettings handles GET /api/settings.
//
//	@Summary		List the settings catalog
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	descriptors := h.svc.Catalog()
	settings := make([]SettingDTO, len(descriptors))
	for i, d := range descriptors {
		settings[i] = settingDTO(d)
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}

func settingDTO(d *schema.Descriptor) SettingDTO {
	dto := SettingDTO{
		Key:         d.Key,
		Kind:        d.Kind.String(),
		Label:       d.Label,
		Category:    d.Category,
		Subcategory: d.Subcategory,
		Tooltip:     d.Tooltip,
		Default:     d.Default,
		Min:         d.Min,
		Max:         d.Max,
		HardRange:   d.HardRange,
		Aliases:     d.Aliases,
	}
	for _, m := range d.Members {
		dto.Members = append(dto.Members, MemberDTO{Value: m.Value, Label: m.Label})
	}
	return dto
}

// ListPresets handles GET /api/presets.
//
//	@Summary		List built-in and user presets
//	@Tags			presets
//	@Produce		json
//	@Success		200	{object}	PresetsResponse
//	@Security		BearerAuth
//	@Router			/presets [get]
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PresetsResponse{Presets: h.svc.Presets()})
}

// Preview handles POST /api/preview.
//
//	@Summary		Validate edits and compute the change set without writing
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EditRequest	true	"Proposed edits"
//	@Success		200		{object}	PreviewResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEdits(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Preview(r.Context(), req.Changes)
	if err != nil {
		slog.Error("preview failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Commit handles POST /api/commit.
//
//	@Summary		Apply validated edits to the profile atomically
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EditRequest	true	"Edits to apply"
//	@Success		200		{object}	CommitResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		422		{object}	CommitResponse
//	@Security		BearerAuth
//	@Router			/commit [post]
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEdits(w, r)
	if !ok {
		return
	}
	res, report, err := h.svc.Commit(r.Context(), req.Changes, req.Description)
	h.writeCommitResult(w, res, report, err)
}

// ApplyPreset handles POST /api/presets/{id}/apply.
//
//	@Summary		Apply a preset to the profile
//	@Tags			presets
//	@Produce		json
//	@Param			id	path		string	true	"Preset id"
//	@Success		200	{object}	CommitResponse
//	@Failure		404	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/presets/{id}/apply [post]
func (h *Handler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("preset id is required"))
		return
	}
	res, report, err := h.svc.ApplyPreset(r.Context(), id)
	h.writeCommitResult(w, res, report, err)
}

func (h *Handler) writeCommitResult(w http.ResponseWriter, res commit.Result, report validate.Report, err error) {
	body := CommitResponse{
		State:   string(res.State),
		Changes: res.Applied.Len(),
		Backup:  res.Backup,
		Report:  report,
	}
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, body)
		case errors.Is(err, apperr.ErrLockConflict):
			writeJSON(w, http.StatusConflict, errorBody("another commit is in progress"))
		case errors.Is(err, apperr.ErrGameRunning):
			writeJSON(w, http.StatusConflict, errorBody("game is running"))
		case errors.Is(err, apperr.ErrBinaryFormat):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("profile is in binary format"))
		default:
			slog.Error("commit failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// ListBackups handles GET /api/backups.
//
//	@Summary		List backups, newest first
//	@Tags			backups
//	@Produce		json
//	@Success		200	{object}	BackupsResponse
//	@Security		BearerAuth
//	@Router			/backups [get]
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Backups(r.Context())
	if err != nil {
		slog.Error("list backups failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, BackupsResponse{Backups: recs})
}

// CreateBackup handles POST /api/backups.
//
//	@Summary		Take a manual backup of the profile
//	@Tags			backups
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BackupRequest	false	"Backup description"
//	@Success		201		{object}	backup.Record
//	@Security		BearerAuth
//	@Router			/backups [post]
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var req BackupRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	rec, err := h.svc.CreateBackup(r.Context(), req.Description)
	if err != nil {
		slog.Error("create backup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DownloadBackup handles GET /api/backups/{id}/download.
//
//	@Summary		Download a backup's verified payload
//	@Tags			backups
//	@Produce		octet-stream
//	@Param			id	path	int	true	"Backup id"
//	@Success		200	"Profile bytes"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/backups/{id}/download [get]
func (h *Handler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	id, err := backupID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rec, data, err := h.svc.ReadBackup(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("download backup failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// RestoreBackup handles POST /api/backups/{id}/restore.
//
//	@Summary		Replace the profile with a backup's payload
//	@Tags			backups
//	@Produce		json
//	@Param			id	path		int	true	"Backup id"
//	@Success		200	{object}	backup.Record
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/backups/{id}/restore [post]
func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	id, err := backupID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rec, err := h.svc.RestoreBackup(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("restore backup failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteBackup handles DELETE /api/backups/{id}.
//
//	@Summary		Delete a backup
//	@Tags			backups
//	@Param			id	path	int	true	"Backup id"
//	@Success		204	"Backup deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/backups/{id} [delete]
func (h *Handler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	id, err := backupID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.svc.DeleteBackup(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete backup failed", slog.Int64("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEdits(w http.ResponseWriter, r *http.Request) (EditRequest, bool) {
	var req EditRequest
	if !decodeBody(w, r, &req) {
		return req, false
	}
	if len(req.Changes) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("changes are required"))
		return req, false
	}
	return req, true
}
