// Package ui holds the small shared widgets of the panel page: the blocking
// loading indicator, the backup dialog's visibility flag and the page
// reloader. Each widget publishes its changes so connected pages follow.
package ui

import (
	"sync"
	"time"
)

// Message actions published by the widgets.
const (
	ActionLoading = "loading"
	ActionDialog  = "dialog"
	ActionReload  = "reload"
)

// Publisher delivers a state change to the connected pages.
type Publisher interface {
	Publish(action string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

func orNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// LoadingState is the visible state of the loading indicator.
type LoadingState struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text,omitempty"`
}

// Indicator is the blocking loading indicator.
type Indicator struct {
	pub   Publisher
	mu    sync.Mutex
	state LoadingState
}

func NewIndicator(pub Publisher) *Indicator {
	return &Indicator{pub: orNop(pub)}
}

// Show displays the indicator with text.
func (i *Indicator) Show(text string) {
	i.set(LoadingState{Visible: true, Text: text})
}

// Hide removes the indicator.
func (i *Indicator) Hide() {
	i.set(LoadingState{})
}

func (i *Indicator) State() LoadingState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

func (i *Indicator) set(s LoadingState) {
	i.mu.Lock()
	i.state = s
	i.mu.Unlock()
	i.pub.Publish(ActionLoading, s)
}

// DialogState is the visible state of a modal dialog.
type DialogState struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Dialog is a modal's visibility flag.
type Dialog struct {
	name    string
	pub     Publisher
	mu      sync.Mutex
	visible bool
}

func NewDialog(name string, pub Publisher) *Dialog {
	return &Dialog{name: name, pub: orNop(pub)}
}

func (d *Dialog) Open()  { d.set(true) }
func (d *Dialog) Close() { d.set(false) }

func (d *Dialog) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

func (d *Dialog) set(v bool) {
	d.mu.Lock()
	d.visible = v
	d.mu.Unlock()
	d.pub.Publish(ActionDialog, DialogState{Name: d.name, Visible: v})
}

// Reloader tells the connected pages to reload themselves.
type Reloader struct {
	pub Publisher

	mu    sync.Mutex
	timer *time.Timer
}

func NewReloader(pub Publisher) *Reloader {
	return &Reloader{pub: orNop(pub)}
}

// ScheduleReload reloads the pages once delay has passed. A newer schedule
// replaces a pending one.
func (r *Reloader) ScheduleReload(delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(delay, func() {
		r.pub.Publish(ActionReload, nil)
	})
}

// Stop cancels a pending reload.
func (r *Reloader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
