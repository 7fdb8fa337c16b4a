package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/panel-console/internal/models"
)

// NotificationStore is the notification region as seen by the page.
type NotificationStore interface {
	Push(kind models.NotificationKind, message string) models.Notification
	List() []models.Notification
	Dismiss(id string) bool
}

// NotificationHandler lists and dismisses notifications.
type NotificationHandler struct {
	store NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the visible notifications, oldest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.store.List()
	if list == nil {
		list = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create shows a notification raised by the page itself, such as the result
// of a clipboard copy. Unknown kinds are shown as info.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	kind := models.NotificationKind(r.FormValue("kind")).Normalize()
	writeJSON(w, http.StatusCreated, h.store.Push(kind, message))
}

// Dismiss removes one notification before its timer does.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if !h.store.Dismiss(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
