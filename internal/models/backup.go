package models

import (
	"encoding/json"
	"time"
)

// BackupRecord describes one saved configuration snapshot on the upstream.
// Records are fetched fresh on every list and never cached.
type BackupRecord struct {
	Name     string    `json:"name"`
	Modified Timestamp `json:"modified"`
	Size     int64     `json:"size"`
}

// ListResponse is the upstream's answer to a backup listing.
type ListResponse struct {
	Success bool           `json:"success"`
	Backups []BackupRecord `json:"backups"`
	Error   string         `json:"error,omitempty"`
}

// ActionResponse is the upstream's answer to restore and restart requests.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RestorePayload is the JSON body sent to the restore endpoint.
type RestorePayload struct {
	BackupName string `json:"backup_name"`
}

// Timestamp accepts the datetime encodings the upstream may emit.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,  // Flask's jsonify of a datetime
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999", // naive isoformat()
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are Unix seconds. A
// value that cannot be read decodes to the zero time, so one bad date does
// not hide the rest of the list.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var secs float64
		if json.Unmarshal(data, &secs) == nil {
			whole := int64(secs)
			t.Time = time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC()
		}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
