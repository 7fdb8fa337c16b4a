// Package formguard tracks unsaved changes per form so the page can ask
// before it is unloaded.
package formguard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Guard holds the dirty flag of one form.
type Guard struct {
	mu      sync.Mutex
	dirty   bool
	tracked map[string]struct{}
}

// New creates a Guard watching the given fields. A guard with no fields
// watches every field of its form.
func New(fields ...string) *Guard {
	g := &Guard{}
	if len(fields) > 0 {
		g.tracked = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			g.tracked[f] = struct{}{}
		}
	}
	return g
}

// Change records that field changed. It reports whether the field is tracked.
func (g *Guard) Change(field string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tracked != nil {
		if _, ok := g.tracked[field]; !ok {
			return false
		}
	}
	g.dirty = true
	return true
}

// Submit records a form submission, which clears the flag.
func (g *Guard) Submit() {
	g.MarkClean()
}

func (g *Guard) MarkDirty() {
	g.mu.Lock()
	g.dirty = true
	g.mu.Unlock()
}

func (g *Guard) MarkClean() {
	g.mu.Lock()
	g.dirty = false
	g.mu.Unlock()
}

func (g *Guard) IsDirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dirty
}

// PreventUnload reports whether leaving the page must go through the
// browser's own confirmation.
func (g *Guard) PreventUnload() bool {
	return g.IsDirty()
}

// State is the serialisable view of a guard.
type State struct {
	Form          string `json:"form"`
	Guard         string `json:"guard"`
	Dirty         bool   `json:"dirty"`
	PreventUnload bool   `json:"prevent_unload"`
}

type page struct {
	form    string
	guard   *Guard
	touched time.Time
}

// Registry owns one Guard per rendered form instance, so two pages showing
// the same form never share a dirty flag.
type Registry struct {
	mu     sync.Mutex
	fields map[string][]string
	pages  map[string]*page
	now    func() time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		fields: make(map[string][]string),
		pages:  make(map[string]*page),
		now:    time.Now,
	}
}

// Watch declares which fields of form are tracked by guards opened afterwards.
func (r *Registry) Watch(form string, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[form] = fields
}

// Open creates a clean guard for a newly rendered instance of form and
// returns its ID.
func (r *Registry) Open(form string) string {
	id := uuid.New().String()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[id] = &page{form: form, guard: New(r.fields[form]...), touched: r.now()}
	return id
}

// Get returns the guard with id if it belongs to form.
func (r *Registry) Get(form, id string) (*Guard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[id]
	if !ok || p.form != form {
		return nil, false
	}
	p.touched = r.now()
	return p.guard, true
}

// State returns the current state of the guard with id.
func (r *Registry) State(form, id string) (State, bool) {
	g, ok := r.Get(form, id)
	if !ok {
		return State{}, false
	}
	dirty := g.IsDirty()
	return State{Form: form, Guard: id, Dirty: dirty, PreventUnload: dirty}, true
}

// Close forgets the guard with id, e.g. once its page is gone.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pages[id]
	delete(r.pages, id)
	return ok
}

// Sweep drops guards untouched for longer than idle and returns how many
// were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	n := 0
	for id, p := range r.pages {
		if p.touched.Before(cutoff) {
			delete(r.pages, id)
			n++
		}
	}
	return n
}

// Len returns the number of open guards.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}
