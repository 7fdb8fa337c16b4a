package handlers

import (
	"bytes"
	"net/http"

	"github.com/isdelr/panel-console/internal/formguard"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/ui"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/rs/zerolog/log"
)

// PageConfig is the static part of the panel page.
type PageConfig struct {
	Title      string
	FormID     string
	FormAction string
	Fields     []view.Field
}

// PageHandler serves the panel page with the current UI state.
type PageHandler struct {
	cfg           PageConfig
	renderer      *view.Renderer
	backups       services.BackupServiceProvider
	notifications NotificationStore
	loading       *ui.Indicator
	dialog        *ui.Dialog
	guards        *formguard.Registry
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(cfg PageConfig, renderer *view.Renderer, backups services.BackupServiceProvider, notifications NotificationStore, loading *ui.Indicator, dialog *ui.Dialog, guards *formguard.Registry) *PageHandler {
	return &PageHandler{
		cfg:           cfg,
		renderer:      renderer,
		backups:       backups,
		notifications: notifications,
		loading:       loading,
		dialog:        dialog,
		guards:        guards,
	}
}

// Serve renders the page. Every render gets its own form guard.
func (h *PageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	guardID := h.guards.Open(h.cfg.FormID)

	var buf bytes.Buffer
	err := h.renderer.Page(&buf, view.PageData{
		Title:         h.cfg.Title,
		FormID:        h.cfg.FormID,
		GuardID:       guardID,
		FormAction:    h.cfg.FormAction,
		Fields:        h.cfg.Fields,
		Backups:       h.backups.ListState(),
		DialogVisible: h.dialog.Visible(),
		Notifications: h.notifications.List(),
		Loading:       h.loading.State(),
	})
	if err != nil {
		h.guards.Close(guardID)
		log.Error().Err(err).Msg("Failed to render panel page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.String())
}
