package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	mu      sync.Mutex
	added   []string
	removed []string
}

func (r *recordingListener) NotificationAdded(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, n.Message)
}

func (r *recordingListener) NotificationRemoved(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
}

func (r *recordingListener) removedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.removed)
}

func TestCenter_StacksInInsertionOrder(t *testing.T) {
	c := NewCenter(time.Minute)
	defer c.Close()

	c.Push(models.KindInfo, "first")
	c.Push(models.KindDanger, "second")
	c.Push(models.KindSuccess, "third")

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
	assert.Equal(t, "third", list[2].Message)
	assert.Equal(t, models.KindDanger, list[1].Kind)
}

func TestCenter_UnknownKindIsInfo(t *testing.T) {
	c := NewCenter(time.Minute)
	defer c.Close()

	n := c.Push("primary", "hello")
	assert.Equal(t, models.KindInfo, n.Kind)
}

func TestCenter_AutoDismiss(t *testing.T) {
	c := NewCenter(30 * time.Millisecond)
	l := &recordingListener{}
	c.Subscribe(l)

	n := c.Push(models.KindWarning, "short lived")
	assert.Equal(t, 30*time.Millisecond, n.ExpiresAt.Sub(n.CreatedAt))

	require.Eventually(t, func() bool { return len(c.List()) == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return l.removedCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"short lived"}, l.added)
}

func TestCenter_DismissEarly(t *testing.T) {
	c := NewCenter(50 * time.Millisecond)
	l := &recordingListener{}
	c.Subscribe(l)

	a := c.Push(models.KindInfo, "a")
	b := c.Push(models.KindInfo, "b")

	assert.True(t, c.Dismiss(a.ID))
	assert.False(t, c.Dismiss(a.ID))

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	// a's timer was stopped, so only b's expiry is reported later.
	require.Eventually(t, func() bool { return l.removedCount() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 2, l.removedCount())
}

func TestNewCenter_DefaultTTL(t *testing.T) {
	c := NewCenter(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
