package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tstetson/fieldtuner/internal/engine"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *engine.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Profile.
	r.Get("/profile", h.GetProfile)
	r.Post("/preview", h.Preview)
	r.Post("/commit", h.Commit)

	// Catalog and presets.
	r.Get("/settings", h.ListSettings)
	r.Get("/presets", h.ListPresets)
	r.Post("/presets/{id}/apply", h.ApplyPreset)

	// Backups.
	r.Get("/backups", h.ListBackups)
	r.Post("/backups", h.CreateBackup)
	r.Get("/backups/{id}/download", h.DownloadBackup)
	r.Post("/backups/{id}/restore", h.RestoreBackup)
	r.Delete("/backups/{id}", h.DeleteBackup)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
