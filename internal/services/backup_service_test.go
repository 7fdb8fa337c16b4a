package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/panelapi"
	"github.com/isdelr/panel-console/internal/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backupFixture struct {
	api      *fakeAPI
	notifier *fakeNotifier
	loading  *fakeLoading
	dialog   *fakeDialog
	reloader *fakeReloader
	events   *fakeEvents
	svc      *BackupService
}

func newBackupFixture(backups ...models.BackupRecord) *backupFixture {
	f := &backupFixture{
		api: &fakeAPI{
			listFn: func(context.Context) ([]models.BackupRecord, error) { return backups, nil },
			restoreFn: func(_ context.Context, name string) (models.ActionResponse, error) {
				return models.ActionResponse{Success: true, Message: "Successfully restored from " + name}, nil
			},
		},
		notifier: &fakeNotifier{},
		loading:  &fakeLoading{},
		dialog:   &fakeDialog{},
		reloader: &fakeReloader{},
		events:   &fakeEvents{},
	}
	f.svc = NewBackupService(f.api, Widgets{
		Notifier: f.notifier,
		Loading:  f.loading,
		Dialog:   f.dialog,
		Reloader: f.reloader,
	}, f.events, 0)
	return f
}

func record(name string, size int64) models.BackupRecord {
	return models.BackupRecord{
		Name:     name,
		Modified: models.Timestamp{Time: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		Size:     size,
	}
}

func TestOpenBackupList_Ready(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048), record("env_20231231.bak", 1024))

	var states []ListPhase
	f.svc.OnListChange(func(st BackupListState) { states = append(states, st.Phase) })

	st := f.svc.OpenBackupList(context.Background())

	assert.Equal(t, PhaseReady, st.Phase)
	require.Len(t, st.Backups, 2)
	assert.Equal(t, "env_20240101.bak", st.Backups[0].Name)
	assert.Equal(t, []ListPhase{PhaseLoading, PhaseReady}, states)
	assert.True(t, f.dialog.visible)
	assert.Equal(t, st, f.svc.ListState())
}

func TestOpenBackupList_Empty(t *testing.T) {
	f := newBackupFixture()

	st := f.svc.OpenBackupList(context.Background())

	assert.Equal(t, PhaseEmpty, st.Phase)
	assert.Empty(t, st.Backups)
}

func TestOpenBackupList_Failure(t *testing.T) {
	f := newBackupFixture()
	f.api.listFn = func(context.Context) ([]models.BackupRecord, error) {
		return nil, &panelapi.TransportError{Op: "list backups", Err: errors.New("connection refused")}
	}

	st := f.svc.OpenBackupList(context.Background())

	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Contains(t, st.Error, "connection refused")
	assert.Equal(t, []string{"backup.list.fail"}, f.events.types())
}

func TestOpenBackupList_RefetchesEveryOpen(t *testing.T) {
	f := newBackupFixture(record("a.bak", 1))

	f.svc.OpenBackupList(context.Background())
	f.svc.OpenBackupList(context.Background())

	assert.Equal(t, 2, f.api.listCalls)
}

func TestOpenBackupList_StaleResponseIgnored(t *testing.T) {
	f := newBackupFixture()
	started := make(chan struct{})
	first := true
	f.api.listFn = func(ctx context.Context) ([]models.BackupRecord, error) {
		if first {
			first = false
			close(started)
			<-ctx.Done()
			return []models.BackupRecord{record("stale.bak", 1)}, nil
		}
		return []models.BackupRecord{record("fresh.bak", 1)}, nil
	}

	staleDone := make(chan BackupListState)
	go func() { staleDone <- f.svc.OpenBackupList(context.Background()) }()
	<-started

	fresh := f.svc.OpenBackupList(context.Background())
	stale := <-staleDone

	require.Equal(t, PhaseReady, fresh.Phase)
	assert.Equal(t, "fresh.bak", fresh.Backups[0].Name)
	// The stale call reports whatever the newer request has put on screen.
	assert.Equal(t, fresh.RequestID, stale.RequestID)
	for _, b := range stale.Backups {
		assert.NotEqual(t, "stale.bak", b.Name)
	}
	assert.Equal(t, "fresh.bak", f.svc.ListState().Backups[0].Name)
}

func TestRestoreBackup_DeclinedSendsNothing(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.svc.OpenBackupList(context.Background())

	out, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(false))

	require.NoError(t, err)
	assert.Equal(t, RestoreCanceled, out.Result)
	assert.Empty(t, f.api.restores())
	assert.Empty(t, f.loading.shows)
	assert.Empty(t, f.notifier.all())
	assert.False(t, f.svc.ListState().Busy)
}

func TestRestoreBackup_AsksWithBackupName(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.svc.OpenBackupList(context.Background())

	var asked string
	confirm := safety.ConfirmFunc(func(_ context.Context, q string) (bool, error) {
		asked = q
		return false, nil
	})
	_, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", confirm)

	require.NoError(t, err)
	assert.Contains(t, asked, `"env_20240101.bak"`)
}

func TestRestoreBackup_UnknownName(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.svc.OpenBackupList(context.Background())

	_, err := f.svc.RestoreBackup(context.Background(), "../../etc/passwd", safety.Static(true))

	assert.ErrorIs(t, err, ErrUnknownBackup)
	assert.Empty(t, f.api.restores())
}

func TestRestoreBackup_Success(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.svc.OpenBackupList(context.Background())

	out, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))

	require.NoError(t, err)
	assert.Equal(t, Restored, out.Result)
	assert.Equal(t, DefaultReloadDelay, out.ReloadIn)
	assert.Equal(t, []string{"env_20240101.bak"}, f.api.restores())
	assert.Equal(t, []string{"Restoring from backup..."}, f.loading.shows)
	assert.False(t, f.loading.visible)
	assert.False(t, f.dialog.visible)
	assert.Equal(t, []time.Duration{DefaultReloadDelay}, f.reloader.delays)

	notes := f.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, models.KindSuccess, notes[0].Kind)
	assert.Equal(t, "Successfully restored from env_20240101.bak", notes[0].Message)
	assert.Equal(t, []string{"backup.restore.start", "backup.restore.finish"}, f.events.types())
}

func TestRestoreBackup_ApplicationErrorDoesNotReload(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.api.restoreFn = func(context.Context, string) (models.ActionResponse, error) {
		return models.ActionResponse{}, &panelapi.ApplicationError{Op: "restore backup", Status: 500, Message: "file not found"}
	}
	f.svc.OpenBackupList(context.Background())

	out, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))

	require.Error(t, err)
	assert.Equal(t, RestoreFailed, out.Result)
	assert.Empty(t, f.reloader.delays)
	assert.True(t, f.dialog.visible)
	assert.False(t, f.loading.visible)

	notes := f.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, models.KindDanger, notes[0].Kind)
	assert.Contains(t, notes[0].Message, "file not found")
	assert.Equal(t, "Error: file not found", notes[0].Message)
}

func TestRestoreBackup_TransportErrorIsDistinct(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.api.restoreFn = func(context.Context, string) (models.ActionResponse, error) {
		return models.ActionResponse{}, &panelapi.TransportError{Op: "restore backup", Err: errors.New("connection reset")}
	}
	f.svc.OpenBackupList(context.Background())

	_, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))

	require.Error(t, err)
	notes := f.notifier.all()
	require.Len(t, notes, 1)
	assert.Equal(t, "Connection error: restore backup: connection reset", notes[0].Message)
	assert.Empty(t, f.reloader.delays)
}

func TestRestoreBackup_DoubleSubmitRejected(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	entered := make(chan struct{})
	release := make(chan struct{})
	f.api.restoreFn = func(context.Context, string) (models.ActionResponse, error) {
		close(entered)
		<-release
		return models.ActionResponse{Success: true, Message: "ok"}, nil
	}
	f.svc.OpenBackupList(context.Background())

	done := make(chan error)
	go func() {
		_, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))
		done <- err
	}()
	<-entered

	assert.True(t, f.svc.ListState().Busy)
	_, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))
	assert.ErrorIs(t, err, ErrRestoreInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, f.api.restores(), 1)
	assert.False(t, f.svc.ListState().Busy)
}

func TestRestoreBackup_NothingListedWhileLoading(t *testing.T) {
	f := newBackupFixture(record("env_20240101.bak", 2048))
	f.svc.OpenBackupList(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	f.api.listFn = func(context.Context) ([]models.BackupRecord, error) {
		close(started)
		<-release
		return nil, nil
	}
	go f.svc.OpenBackupList(context.Background())
	<-started

	_, err := f.svc.RestoreBackup(context.Background(), "env_20240101.bak", safety.Static(true))
	assert.ErrorIs(t, err, ErrUnknownBackup)
	close(release)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Error: nope", FailureMessage(&panelapi.ApplicationError{Message: "nope"}))
	assert.Equal(t, "Connection error: op: boom", FailureMessage(&panelapi.TransportError{Op: "op", Err: errors.New("boom")}))
}
