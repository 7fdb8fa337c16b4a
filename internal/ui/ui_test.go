package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	action  string
	payload any
}

type recorder struct {
	mu   sync.Mutex
	msgs []published
}

func (r *recorder) Publish(action string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, published{action, payload})
}

func (r *recorder) count(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.action == action {
			n++
		}
	}
	return n
}

func TestIndicator_ShowHide(t *testing.T) {
	rec := &recorder{}
	ind := NewIndicator(rec)

	ind.Show("Restoring from backup...")
	assert.Equal(t, LoadingState{Visible: true, Text: "Restoring from backup..."}, ind.State())

	ind.Hide()
	assert.False(t, ind.State().Visible)
	assert.Equal(t, 2, rec.count(ActionLoading))
}

func TestDialog_Visibility(t *testing.T) {
	rec := &recorder{}
	d := NewDialog("backupModal", rec)

	d.Open()
	assert.True(t, d.Visible())
	d.Close()
	assert.False(t, d.Visible())

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, DialogState{Name: "backupModal", Visible: false}, rec.msgs[1].payload)
}

func TestReloader_FiresOnceAfterDelay(t *testing.T) {
	rec := &recorder{}
	r := NewReloader(rec)

	r.ScheduleReload(20 * time.Millisecond)
	assert.Equal(t, 0, rec.count(ActionReload))

	require.Eventually(t, func() bool { return rec.count(ActionReload) == 1 }, time.Second, 5*time.Millisecond)
}

func TestReloader_Stop(t *testing.T) {
	rec := &recorder{}
	r := NewReloader(rec)

	r.ScheduleReload(20 * time.Millisecond)
	r.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, rec.count(ActionReload))
}

func TestNilPublisher(t *testing.T) {
	ind := NewIndicator(nil)
	assert.NotPanics(t, func() { ind.Show("x") })
}
