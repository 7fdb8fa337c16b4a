package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/panel-console/internal/safety"
	"github.com/isdelr/panel-console/internal/services"
)

// ServiceHandler handles actions on the managed service.
type ServiceHandler struct {
	service services.ServiceControlProvider
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(service services.ServiceControlProvider) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// Restart handles the request to restart the service.
func (h *ServiceHandler) Restart(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Restart(r.Context(), safety.Static(confirmed(r)))
	switch {
	case errors.Is(err, services.ErrRestartInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil && outcome.Message != "":
		writeJSON(w, http.StatusBadGateway, outcome)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, outcome)
	}
}
