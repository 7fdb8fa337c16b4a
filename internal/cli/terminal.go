package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/isdelr/panel-console/internal/models"
)

// terminal stands in for the page widgets: notifications and the loading
// text are printed, the dialog has nothing to show.
type terminal struct {
	out io.Writer
	err io.Writer
}

func (t terminal) Push(kind models.NotificationKind, message string) models.Notification {
	w := t.out
	if kind == models.KindDanger || kind == models.KindWarning {
		w = t.err
	}
	fmt.Fprintln(w, message)
	now := time.Now()
	return models.Notification{Kind: kind, Message: message, CreatedAt: now}
}

func (t terminal) Show(text string) { fmt.Fprintln(t.err, text) }
func (t terminal) Hide()            {}
func (t terminal) Open()            {}
func (t terminal) Close()           {}

// ScheduleReload has no page to reload; the restored config takes effect
// when the service next reads it.
func (t terminal) ScheduleReload(time.Duration) {}
