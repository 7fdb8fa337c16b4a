package api

import (
	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/ui"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/isdelr/panel-console/internal/websocket"
	"github.com/rs/zerolog/log"
)

// fragment is the payload of a message carrying rendered HTML.
type fragment struct {
	HTML string `json:"html"`
}

// PagePublisher turns UI state changes into push messages for the open
// pages. Loading, notification and backup list changes are rendered here so
// the page script only swaps HTML in.
type PagePublisher struct {
	out      ui.Publisher
	renderer *view.Renderer
}

// NewPagePublisher creates a PagePublisher writing to out, usually the hub.
func NewPagePublisher(out ui.Publisher, renderer *view.Renderer) *PagePublisher {
	return &PagePublisher{out: out, renderer: renderer}
}

// Publish implements ui.Publisher.
func (p *PagePublisher) Publish(action string, payload any) {
	if st, ok := payload.(ui.LoadingState); ok && action == ui.ActionLoading {
		html, err := p.renderer.Loading(st)
		if err != nil {
			log.Error().Err(err).Msg("Failed to render loading indicator")
			return
		}
		payload = fragment{HTML: html}
	}
	p.out.Publish(action, payload)
}

// NotificationAdded implements notify.Listener.
func (p *PagePublisher) NotificationAdded(n models.Notification) {
	html, err := p.renderer.Notification(n)
	if err != nil {
		log.Error().Err(err).Str("notification_id", n.ID).Msg("Failed to render notification")
		return
	}
	p.out.Publish(websocket.ActionNotificationAdd, struct {
		ID   string `json:"id"`
		HTML string `json:"html"`
	}{ID: n.ID, HTML: html})
}

// NotificationRemoved implements notify.Listener.
func (p *PagePublisher) NotificationRemoved(id string) {
	p.out.Publish(websocket.ActionNotificationRemove, map[string]string{"id": id})
}

// BackupsChanged pushes the re-rendered backup list.
func (p *PagePublisher) BackupsChanged(st services.BackupListState) {
	html, err := p.renderer.BackupList(st)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render backup list")
		return
	}
	p.out.Publish(websocket.ActionBackups, fragment{HTML: html})
}
