// Package notify provides the toast messages and per-app badge counts drawn
// over the top surface.
package notify

import (
	"image"
	"image/color"
	"time"

	"github.com/user-none/duoscreen/ui/style"
)

// Notification displays temporary messages on screen and keeps badge counts
// for the home grid. Time advances only through Update so toasts expire on
// frame boundaries.
type Notification struct {
	message   string
	remaining time.Duration
	history   []string
	badges    map[string]int
}

// maxHistory is how many past messages are kept for the notifications panel
const maxHistory = 20

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{
		badges: make(map[string]int),
	}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.message = message
	n.remaining = duration
	n.history = append(n.history, message)
	if len(n.history) > maxHistory {
		n.history = n.history[len(n.history)-maxHistory:]
	}
}

// ShowDefault displays a notification with default 3 second duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, style.NotificationDefault)
}

// ShowShort displays a notification with 1 second duration
func (n *Notification) ShowShort(message string) {
	n.Show(message, style.NotificationShort)
}

// Update counts down the visible message.
func (n *Notification) Update(dt time.Duration) {
	if n.message == "" {
		return
	}
	n.remaining -= dt
	if n.remaining <= 0 {
		n.message = ""
		n.remaining = 0
	}
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	return n.message != "" && n.remaining > 0
}

// Message returns the visible message.
func (n *Notification) Message() string {
	return n.message
}

// History returns past messages, oldest first.
func (n *Notification) History() []string {
	return n.history
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.message = ""
	n.remaining = 0
}

// SetBadge sets the unread count for an app. Zero removes the badge.
func (n *Notification) SetBadge(appID string, count int) {
	if count <= 0 {
		delete(n.badges, appID)
		return
	}
	n.badges[appID] = count
}

// Badge returns the unread count for an app.
func (n *Notification) Badge(appID string) int {
	return n.badges[appID]
}

// TotalBadges returns the sum of all badge counts.
func (n *Notification) TotalBadges() int {
	total := 0
	for _, c := range n.badges {
		total += c
	}
	return total
}

// Draw renders the notification at the bottom-right of dst
func (n *Notification) Draw(dst *image.RGBA) {
	if !n.IsVisible() {
		return
	}

	face := style.Face(style.FontMedium)
	bounds := dst.Bounds()

	// Calculate text size
	textWidth, textHeight := style.MeasureText(n.message, face)

	// Padding
	padding := 12
	bgWidth := textWidth + padding*2
	bgHeight := textHeight + padding*2

	// Position: bottom-right, 8px margin
	margin := 8
	bgX := bounds.Max.X - bgWidth - margin
	bgY := bounds.Max.Y - bgHeight - margin
	bg := image.Rect(bgX, bgY, bgX+bgWidth, bgY+bgHeight)

	// Black at 60% opacity
	style.BlendRect(dst, bg, color.NRGBA{0, 0, 0, 153})
	style.DrawText(dst, n.message, bgX+padding, bgY+padding, face, color.White)
}

// DrawBadge draws a count bubble with its center at c.
func DrawBadge(dst *image.RGBA, c image.Point, count int, theme style.Theme) {
	if count <= 0 {
		return
	}
	label := "9+"
	if count < 10 {
		label = string(rune('0' + count))
	}
	style.FillCircle(dst, c, 8, theme.Danger)
	face := style.BoldFace(style.FontSmall)
	style.DrawTextCentered(dst, label, image.Rect(c.X-8, c.Y-8, c.X+8, c.Y+8), face, theme.White)
}
