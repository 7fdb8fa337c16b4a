package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/notify"
	"github.com/isdelr/panel-console/internal/panelapi"
	"github.com/isdelr/panel-console/internal/safety"
	"github.com/rs/zerolog/log"
)

// RestartQuestion is the confirmation asked before restarting the service.
const RestartQuestion = "Restart the service? This may interrupt running operations."

// ErrRestartInFlight is returned while another restart request is running.
var ErrRestartInFlight = errors.New("a restart is already in progress")

// ServiceControlProvider defines the interface for service actions.
type ServiceControlProvider interface {
	Restart(ctx context.Context, confirm safety.Confirmer) (ActionOutcome, error)
}

// ActionOutcome describes a finished service action.
type ActionOutcome struct {
	Done    bool   `json:"done"`
	Message string `json:"message,omitempty"`
}

// ServiceControl restarts the managed service through the upstream.
type ServiceControl struct {
	api      panelapi.API
	notifier notify.Notifier
	loading  LoadingIndicator
	events   EventServiceProvider

	mu   sync.Mutex
	busy bool
}

// NewServiceControl creates a new ServiceControl. events may be nil.
func NewServiceControl(api panelapi.API, notifier notify.Notifier, loading LoadingIndicator, events EventServiceProvider) *ServiceControl {
	return &ServiceControl{api: api, notifier: notifier, loading: loading, events: events}
}

// Restart asks for confirmation and then restarts the service. The page is
// not reloaded afterwards.
func (s *ServiceControl) Restart(ctx context.Context, confirm safety.Confirmer) (ActionOutcome, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ActionOutcome{}, ErrRestartInFlight
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	ok, err := confirm.Confirm(ctx, RestartQuestion)
	if err != nil {
		return ActionOutcome{}, fmt.Errorf("confirm restart: %w", err)
	}
	if !ok {
		return ActionOutcome{}, nil
	}

	s.loading.Show("Restarting service...")
	resp, err := s.api.RestartService(ctx)
	s.loading.Hide()

	if err != nil {
		msg := FailureMessage(err)
		s.notifier.Push(models.KindDanger, msg)
		log.Error().Err(err).Msg("Failed to restart service")
		s.record("service.restart.fail", "error", fmt.Sprintf("Service restart failed: %v", err))
		return ActionOutcome{Message: msg}, err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Service restart initiated"
	}
	s.notifier.Push(models.KindSuccess, msg)
	s.record("service.restart", "warn", msg)
	return ActionOutcome{Done: true, Message: msg}, nil
}

func (s *ServiceControl) record(eventType, level, message string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, level, message, nil); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}
