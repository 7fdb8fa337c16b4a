package services

import (
	"context"
	"sync"
	"time"

	"github.com/isdelr/panel-console/internal/models"
)

type fakeAPI struct {
	mu sync.Mutex

	listFn    func(ctx context.Context) ([]models.BackupRecord, error)
	restoreFn func(ctx context.Context, name string) (models.ActionResponse, error)
	restartFn func(ctx context.Context) (models.ActionResponse, error)

	listCalls    int
	restoreCalls []string
	restartCalls int
}

func (f *fakeAPI) ListBackups(ctx context.Context) ([]models.BackupRecord, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeAPI) RestoreBackup(ctx context.Context, name string) (models.ActionResponse, error) {
	f.mu.Lock()
	f.restoreCalls = append(f.restoreCalls, name)
	fn := f.restoreFn
	f.mu.Unlock()
	return fn(ctx, name)
}

func (f *fakeAPI) RestartService(ctx context.Context) (models.ActionResponse, error) {
	f.mu.Lock()
	f.restartCalls++
	fn := f.restartFn
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeAPI) restores() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.restoreCalls...)
}

type fakeNotifier struct {
	mu    sync.Mutex
	items []models.Notification
}

func (n *fakeNotifier) Push(kind models.NotificationKind, message string) models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	item := models.Notification{Kind: kind, Message: message}
	n.items = append(n.items, item)
	return item
}

func (n *fakeNotifier) all() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.items...)
}

type fakeLoading struct {
	mu      sync.Mutex
	visible bool
	shows   []string
}

func (l *fakeLoading) Show(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = true
	l.shows = append(l.shows, text)
}

func (l *fakeLoading) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = false
}

type fakeDialog struct {
	mu      sync.Mutex
	visible bool
}

func (d *fakeDialog) Open()  { d.mu.Lock(); d.visible = true; d.mu.Unlock() }
func (d *fakeDialog) Close() { d.mu.Lock(); d.visible = false; d.mu.Unlock() }

type fakeReloader struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *fakeReloader) ScheduleReload(delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, delay)
}

type recordedEvent struct {
	Type, Level, Message string
}

type fakeEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (e *fakeEvents) CreateEvent(eventType, level, message string, subject *string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, recordedEvent{eventType, level, message})
	return nil
}

func (e *fakeEvents) GetRecentEvents(limit int) ([]models.Event, error) { return nil, nil }

func (e *fakeEvents) PruneEvents(before time.Time) (int64, error) { return 0, nil }

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
