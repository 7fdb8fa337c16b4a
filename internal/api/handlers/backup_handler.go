package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/panel-console/internal/safety"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/rs/zerolog/log"
)

// BackupHandler handles HTTP requests related to the backup dialog.
type BackupHandler struct {
	service  services.BackupServiceProvider
	dialog   services.DialogControl
	renderer *view.Renderer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service services.BackupServiceProvider, dialog services.DialogControl, renderer *view.Renderer) *BackupHandler {
	return &BackupHandler{service: service, dialog: dialog, renderer: renderer}
}

// Open opens the dialog, fetches the list and returns the rendered list
// container. Upstream failures are part of the fragment, not an HTTP error.
func (h *BackupHandler) Open(w http.ResponseWriter, r *http.Request) {
	st := h.service.OpenBackupList(r.Context())
	html, err := h.renderer.BackupList(st)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render backup list")
		http.Error(w, "Failed to render backup list", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// Close hides the dialog.
func (h *BackupHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.dialog.Close()
	w.WriteHeader(http.StatusNoContent)
}

// List returns the current list state without fetching.
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListState())
}

// Restore handles the request to restore a backup. The browser has already
// asked the user and passes the answer as "confirmed".
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("backup_name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "backup_name is required")
		return
	}

	outcome, err := h.service.RestoreBackup(r.Context(), name, safety.Static(confirmed(r)))
	switch {
	case errors.Is(err, services.ErrUnknownBackup):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRestoreInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil && outcome.Result == services.RestoreFailed:
		// The page already shows the failure as a notification.
		writeJSON(w, http.StatusBadGateway, outcome)
	case err != nil:
		log.Error().Err(err).Str("backup_name", name).Msg("Restore aborted")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}
