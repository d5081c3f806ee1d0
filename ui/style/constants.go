package style

import "time"

// Font sizes in points at 72 DPI
const (
	FontSmall  = 12
	FontMedium = 16
	FontLarge  = 20
	FontTitle  = 24
)

// Shared layout values for the bottom (touch) surface
const (
	QuickBarHeight = 35
	GridTop        = 40
	GridColumns    = 3
	GridCellHeight = 80
	ListItemHeight = 40
	KeyRowHeight   = 28
)

// Top surface layout
const (
	StatusBarHeight = 30
)

// Overlay alpha for the quick menu backdrop (out of 255)
const OverlayAlpha = 240

// Notification timing
const (
	NotificationDefault = 3 * time.Second
	NotificationShort   = 1 * time.Second
)

// Icon cache capacity (distinct icon/size/color combinations)
const IconCacheSize = 128
