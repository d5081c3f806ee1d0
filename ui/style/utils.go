package style

import (
	"fmt"
	"time"
)

// FormatClock formats t as a 12-hour status bar clock ("03:04 PM").
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM")
}

// FormatDuration formats d as m:ss for track positions.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Percent renders a 0-100 level as "NN%".
func Percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}
