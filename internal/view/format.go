package view

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the panel's fixed display format for timestamps.
const DateLayout = "15:04:05 2/1/2006"

// FormatSize renders a byte count as KiB with two decimals, e.g. "2.00 KB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}

// FormatDate renders t in loc using DateLayout. A nil loc means local time.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// FormatNumber inserts thousand separators, e.g. 1234567 -> "1,234,567".
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}
