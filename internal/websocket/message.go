package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Actions pushed to the page besides the ones the ui widgets publish.
const (
	ActionNotificationAdd    = "notification.add"
	ActionNotificationRemove = "notification.remove"
	ActionBackups            = "backups"
	ActionError              = "error"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage encodes an action and its payload.
func NewMessage(action string, payload interface{}) []byte {
	data, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		data, _ = json.Marshal(Message{Action: ActionError, Payload: map[string]string{"message": "encoding failed"}})
	}
	return data
}

// NewErrorMessage creates an error message for a client.
func NewErrorMessage(message string) []byte {
	return NewMessage(ActionError, map[string]string{"message": message})
}
