package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/notify"
	"github.com/isdelr/panel-console/internal/panelapi"
	"github.com/isdelr/panel-console/internal/safety"
	"github.com/rs/zerolog/log"
)

// DefaultReloadDelay is how long the page waits after a restore before reloading.
const DefaultReloadDelay = 1500 * time.Millisecond

var (
	// ErrUnknownBackup is returned when restoring a name that was not in the
	// last listing.
	ErrUnknownBackup = errors.New("backup is not in the current list")
	// ErrRestoreInFlight is returned while another restore is running.
	ErrRestoreInFlight = errors.New("a restore is already in progress")
)

// ListPhase is what the backup list container currently shows.
type ListPhase string

const (
	PhaseIdle    ListPhase = "idle"
	PhaseLoading ListPhase = "loading"
	PhaseReady   ListPhase = "ready"
	PhaseEmpty   ListPhase = "empty"
	PhaseFailed  ListPhase = "failed"
)

// BackupListState is the content of the backup dialog.
type BackupListState struct {
	Phase     ListPhase             `json:"phase"`
	Backups   []models.BackupRecord `json:"backups,omitempty"`
	Error     string                `json:"error,omitempty"`
	RequestID uint64                `json:"requestId"`
	Busy      bool                  `json:"busy"` // restore in flight; restore controls are disabled
}

// RestoreResult classifies how a restore ended.
type RestoreResult string

const (
	Restored        RestoreResult = "restored"
	RestoreCanceled RestoreResult = "cancelled"
	RestoreFailed   RestoreResult = "failed"
)

// RestoreOutcome describes a finished restore action.
type RestoreOutcome struct {
	Result   RestoreResult `json:"result"`
	Message  string        `json:"message,omitempty"`
	ReloadIn time.Duration `json:"reloadIn,omitempty"`
}

// LoadingIndicator is the blocking indicator shown during restores.
type LoadingIndicator interface {
	Show(text string)
	Hide()
}

// DialogControl opens and closes the backup dialog.
type DialogControl interface {
	Open()
	Close()
}

// PageReloader reloads the page after a delay.
type PageReloader interface {
	ScheduleReload(delay time.Duration)
}

// BackupServiceProvider defines the interface for the backup manager.
type BackupServiceProvider interface {
	OpenBackupList(ctx context.Context) BackupListState
	ListState() BackupListState
	RestoreBackup(ctx context.Context, name string, confirm safety.Confirmer) (RestoreOutcome, error)
}

// Widgets are the page components the backup manager drives.
type Widgets struct {
	Notifier notify.Notifier
	Loading  LoadingIndicator
	Dialog   DialogControl
	Reloader PageReloader
}

// BackupService lists the upstream's backups and restores one of them,
// reflecting every step on the page widgets.
type BackupService struct {
	api         panelapi.API
	widgets     Widgets
	events      EventServiceProvider
	reloadDelay time.Duration
	onChange    func(BackupListState)

	mu         sync.Mutex
	seq        uint64
	cancelList context.CancelFunc
	state      BackupListState
	listed     map[string]struct{}
	busy       bool
}

// NewBackupService creates a new BackupService. events may be nil.
func NewBackupService(api panelapi.API, widgets Widgets, events EventServiceProvider, reloadDelay time.Duration) *BackupService {
	if reloadDelay <= 0 {
		reloadDelay = DefaultReloadDelay
	}
	return &BackupService{
		api:         api,
		widgets:     widgets,
		events:      events,
		reloadDelay: reloadDelay,
		state:       BackupListState{Phase: PhaseIdle},
	}
}

// OnListChange registers fn to receive every new list state.
func (s *BackupService) OnListChange(fn func(BackupListState)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// ListState returns the current dialog content.
func (s *BackupService) ListState() BackupListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OpenBackupList opens the dialog and re-fetches the list. A list request
// still in flight from an earlier open is cancelled and its response dropped.
func (s *BackupService) OpenBackupList(ctx context.Context) BackupListState {
	s.widgets.Dialog.Open()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancelList != nil {
		s.cancelList()
	}
	s.seq++
	id := s.seq
	s.cancelList = cancel
	// Rows of the previous listing are gone from the page, so nothing can
	// be restored until this request settles.
	s.listed = nil
	s.state = BackupListState{Phase: PhaseLoading, RequestID: id, Busy: s.busy}
	loading := s.state
	s.mu.Unlock()
	s.publish(loading)

	backups, err := s.api.ListBackups(ctx)

	s.mu.Lock()
	if id != s.seq {
		current := s.state
		s.mu.Unlock()
		log.Debug().Uint64("request_id", id).Uint64("latest_id", current.RequestID).Msg("Dropping stale backup list response")
		return current
	}
	s.cancelList = nil
	next := BackupListState{RequestID: id, Busy: s.busy}
	switch {
	case err != nil:
		next.Phase = PhaseFailed
		next.Error = err.Error()
	case len(backups) == 0:
		next.Phase = PhaseEmpty
		s.listed = map[string]struct{}{}
	default:
		next.Phase = PhaseReady
		next.Backups = backups
		s.listed = make(map[string]struct{}, len(backups))
		for _, b := range backups {
			s.listed[b.Name] = struct{}{}
		}
	}
	s.state = next
	s.mu.Unlock()
	s.publish(next)

	if err != nil {
		log.Error().Err(err).Bool("transport", panelapi.IsTransport(err)).Msg("Failed to load backup list")
		s.record("backup.list.fail", "error", fmt.Sprintf("Failed to load backup list: %v", err), nil)
	}
	return next
}

// RestoreQuestion is the confirmation asked before restoring name.
func RestoreQuestion(name string) string {
	return fmt.Sprintf("Restore from %q? The current .env file will be backed up before restoring.", name)
}

// RestoreBackup restores the named backup after confirmation. On success the
// dialog closes and the page reloads after the reload delay; on failure the
// error is shown and nothing reloads.
func (s *BackupService) RestoreBackup(ctx context.Context, name string, confirm safety.Confirmer) (RestoreOutcome, error) {
	s.mu.Lock()
	if _, ok := s.listed[name]; !ok {
		s.mu.Unlock()
		return RestoreOutcome{}, fmt.Errorf("%w: %s", ErrUnknownBackup, name)
	}
	if s.busy {
		s.mu.Unlock()
		return RestoreOutcome{}, ErrRestoreInFlight
	}
	s.setBusyLocked(true)
	st := s.state
	s.mu.Unlock()
	s.publish(st)
	defer s.release()

	ok, err := confirm.Confirm(ctx, RestoreQuestion(name))
	if err != nil {
		return RestoreOutcome{}, fmt.Errorf("confirm restore: %w", err)
	}
	if !ok {
		log.Info().Str("backup_name", name).Msg("Restore declined by user")
		return RestoreOutcome{Result: RestoreCanceled}, nil
	}

	s.record("backup.restore.start", "warn", fmt.Sprintf("Restoration from backup '%s' started.", name), &name)

	s.widgets.Loading.Show("Restoring from backup...")
	resp, err := s.api.RestoreBackup(ctx, name)
	s.widgets.Loading.Hide()

	if err != nil {
		msg := FailureMessage(err)
		s.widgets.Notifier.Push(models.KindDanger, msg)
		log.Error().Err(err).Str("backup_name", name).Msg("Failed to restore backup")
		s.record("backup.restore.fail", "error", fmt.Sprintf("Restoration from backup '%s' failed: %v", name, err), &name)
		return RestoreOutcome{Result: RestoreFailed, Message: msg}, err
	}

	msg := resp.Message
	if msg == "" {
		msg = fmt.Sprintf("Successfully restored from %s", name)
	}
	s.widgets.Notifier.Push(models.KindSuccess, msg)
	s.widgets.Dialog.Close()
	s.widgets.Reloader.ScheduleReload(s.reloadDelay)
	log.Info().Str("backup_name", name).Msg("Backup restored")
	s.record("backup.restore.finish", "info", fmt.Sprintf("Configuration restored from backup '%s'.", name), &name)

	return RestoreOutcome{Result: Restored, Message: msg, ReloadIn: s.reloadDelay}, nil
}

// FailureMessage turns an upstream error into the text shown to the user.
func FailureMessage(err error) string {
	if panelapi.IsApplication(err) {
		return "Error: " + err.Error()
	}
	return "Connection error: " + err.Error()
}

func (s *BackupService) release() {
	s.mu.Lock()
	s.setBusyLocked(false)
	st := s.state
	s.mu.Unlock()
	s.publish(st)
}

func (s *BackupService) setBusyLocked(busy bool) {
	s.busy = busy
	s.state.Busy = busy
}

func (s *BackupService) publish(st BackupListState) {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

func (s *BackupService) record(eventType, level, message string, subject *string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, level, message, subject); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("Failed to record event")
	}
}
