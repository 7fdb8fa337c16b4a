package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	ws "github.com/isdelr/panel-console/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket connections.
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	origins  map[string]bool
}

// NewWebSocketHandler creates a new WebSocketHandler. Pages served by the
// console itself and the listed origins may connect.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{hub: hub, origins: make(map[string]bool, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		h.origins[o] = true
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.origins["*"] || h.origins[origin] {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// Serve handles the WebSocket connection request.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleIncoming)
		h.hub.Leave(client)
	}()
}

// handleIncoming logs anything a page sends. Pages only listen; the hub
// may already have closed client.Send, so nothing is written back here.
func (h *WebSocketHandler) handleIncoming(client *ws.Client, message []byte) {
	log.Debug().Bytes("message", message).Msg("Ignoring websocket message from page")
}
