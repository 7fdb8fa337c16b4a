package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Formats(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		`"2024-01-01T10:00:00Z"`,
		`"Mon, 01 Jan 2024 10:00:00 GMT"`,
		`"2024-01-01T10:00:00"`,
		`"2024-01-01 10:00:00"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, want.Equal(ts.UTC()), "%s decoded to %s", raw, ts.Time)
	}
}

func TestTimestamp_UnixSeconds(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1704103200`), &ts))
	assert.True(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).Equal(ts.Time))
}

func TestTimestamp_UnreadableIsZero(t *testing.T) {
	for _, raw := range []string{`"yesterday"`, `null`, `""`, `{"x":1}`, `true`} {
		ts := Timestamp{Time: time.Now()}
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		assert.True(t, ts.IsZero(), raw)
	}
}

func TestListResponse_BadDateKeepsRow(t *testing.T) {
	body := `{"success":true,"backups":[` +
		`{"name":"a.bak","modified":"not a date","size":1},` +
		`{"name":"b.bak","modified":"2024-01-01T10:00:00Z","size":2}]}`
	var resp ListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.Len(t, resp.Backups, 2)
	assert.True(t, resp.Backups[0].Modified.IsZero())
	assert.Equal(t, "b.bak", resp.Backups[1].Name)
}

func TestListResponse_Decode(t *testing.T) {
	body := `{"success":true,"backups":[{"name":"env_20240101.bak","modified":"2024-01-01T10:00:00Z","size":2048}]}`
	var resp ListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.Len(t, resp.Backups, 1)
	assert.Equal(t, "env_20240101.bak", resp.Backups[0].Name)
	assert.Equal(t, int64(2048), resp.Backups[0].Size)
	assert.Equal(t, 2024, resp.Backups[0].Modified.Year())
}

func TestNotificationKind_Normalize(t *testing.T) {
	assert.Equal(t, KindDanger, KindDanger.Normalize())
	assert.Equal(t, KindInfo, NotificationKind("primary").Normalize())
	assert.Equal(t, "check-circle-fill", KindSuccess.Icon())
}
