package formguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_ChangedInputPreventsUnload(t *testing.T) {
	g := New()
	assert.False(t, g.PreventUnload())

	g.Change("fb_email")

	assert.True(t, g.IsDirty())
	assert.True(t, g.PreventUnload())
}

func TestGuard_SubmitClears(t *testing.T) {
	g := New()
	g.Change("proxy_port")
	g.Submit()

	assert.False(t, g.IsDirty())
	assert.False(t, g.PreventUnload())

	g.Change("proxy_port")
	assert.True(t, g.IsDirty())
}

func TestGuard_TrackedFieldsOnly(t *testing.T) {
	g := New("fb_email", "log_level")

	assert.False(t, g.Change("search"))
	assert.False(t, g.IsDirty())

	assert.True(t, g.Change("log_level"))
	assert.True(t, g.IsDirty())
}

func TestGuard_MarkDirtyAndClean(t *testing.T) {
	g := New()
	g.MarkDirty()
	assert.True(t, g.IsDirty())
	g.MarkClean()
	assert.False(t, g.IsDirty())
}

func TestRegistry_InstancesAreIndependent(t *testing.T) {
	r := NewRegistry()
	first := r.Open("configForm")
	second := r.Open("configForm")
	require.NotEqual(t, first, second)

	g, ok := r.Get("configForm", first)
	require.True(t, ok)
	g.Change("fb_email")

	st, ok := r.State("configForm", first)
	require.True(t, ok)
	assert.True(t, st.PreventUnload)

	st, ok = r.State("configForm", second)
	require.True(t, ok)
	assert.False(t, st.Dirty)

	r.Open("configForm")
	st, _ = r.State("configForm", first)
	assert.True(t, st.Dirty, "opening another page must not clear an existing one")
}

func TestRegistry_GuardBelongsToItsForm(t *testing.T) {
	r := NewRegistry()
	id := r.Open("configForm")

	_, ok := r.Get("loginForm", id)
	assert.False(t, ok)
	_, ok = r.Get("configForm", "missing")
	assert.False(t, ok)
}

func TestRegistry_Watch(t *testing.T) {
	r := NewRegistry()
	r.Watch("configForm", "fb_email")

	g, ok := r.Get("configForm", r.Open("configForm"))
	require.True(t, ok)
	assert.False(t, g.Change("other"))
	assert.True(t, g.Change("fb_email"))
}

func TestRegistry_CloseAndSweep(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	stale := r.Open("configForm")
	closed := r.Open("configForm")
	now = now.Add(2 * time.Hour)
	fresh := r.Open("configForm")

	assert.True(t, r.Close(closed))
	assert.False(t, r.Close(closed))

	assert.Equal(t, 1, r.Sweep(time.Hour))
	_, ok := r.Get("configForm", stale)
	assert.False(t, ok)
	_, ok = r.Get("configForm", fresh)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len())
}
