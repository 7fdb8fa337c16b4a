package models

import "time"

// Event represents a loggable console action.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "backup.restore.finish", "service.restart.fail"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	Subject   *string   `json:"subject,omitempty"` // Backup name, when the event concerns one
	CreatedAt time.Time `json:"createdAt"`
}
