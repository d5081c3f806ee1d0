// Package layout describes how the top and bottom surfaces are stacked inside
// the physical window and maps window coordinates into surface-local ones.
package layout

import "image"

// DefaultGap is the height of the separator strip between the two surfaces.
const DefaultGap = 20

// Surface identifies one of the two logical screens.
type Surface int

const (
	SurfaceNone Surface = iota
	SurfaceTop
	SurfaceBottom
)

func (s Surface) String() string {
	switch s {
	case SurfaceTop:
		return "top"
	case SurfaceBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Layout holds the fixed surface dimensions. It is read once at startup and
// never changes while the system runs.
type Layout struct {
	TopWidth     int
	TopHeight    int
	BottomWidth  int
	BottomHeight int
	Gap          int
}

// Default returns the 800x480 over 320x240 layout.
func Default() Layout {
	return Layout{
		TopWidth:     800,
		TopHeight:    480,
		BottomWidth:  320,
		BottomHeight: 240,
		Gap:          DefaultGap,
	}
}

// WindowSize returns the physical window dimensions.
func (l Layout) WindowSize() (width, height int) {
	width = l.TopWidth
	if l.BottomWidth > width {
		width = l.BottomWidth
	}
	return width, l.TopHeight + l.BottomHeight + l.Gap
}

// WindowRect returns the window bounds anchored at the origin.
func (l Layout) WindowRect() image.Rectangle {
	w, h := l.WindowSize()
	return image.Rect(0, 0, w, h)
}

// TopSize returns the top surface dimensions as a point.
func (l Layout) TopSize() image.Point {
	return image.Pt(l.TopWidth, l.TopHeight)
}

// BottomSize returns the bottom surface dimensions as a point.
func (l Layout) BottomSize() image.Point {
	return image.Pt(l.BottomWidth, l.BottomHeight)
}

// TopOrigin is where the top surface's (0,0) lands in window space.
func (l Layout) TopOrigin() image.Point {
	w, _ := l.WindowSize()
	return image.Pt((w-l.TopWidth)/2, 0)
}

// BottomOrigin is where the bottom surface's (0,0) lands in window space.
func (l Layout) BottomOrigin() image.Point {
	w, _ := l.WindowSize()
	return image.Pt((w-l.BottomWidth)/2, l.TopHeight+l.Gap)
}

// TopRect returns the top surface area in window space.
func (l Layout) TopRect() image.Rectangle {
	return image.Rectangle{Min: l.TopOrigin(), Max: l.TopOrigin().Add(l.TopSize())}
}

// BottomRect returns the bottom surface area in window space.
func (l Layout) BottomRect() image.Rectangle {
	return image.Rectangle{Min: l.BottomOrigin(), Max: l.BottomOrigin().Add(l.BottomSize())}
}

// GapRect returns the full-width separator strip in window space.
func (l Layout) GapRect() image.Rectangle {
	w, _ := l.WindowSize()
	return image.Rect(0, l.TopHeight, w, l.TopHeight+l.Gap)
}

// ToLocal translates a window point into the local space of a surface whose
// (0,0) sits at origin. ok is false when the result falls outside
// [0,size) on either axis; callers must then ignore the input.
func ToLocal(p, origin, size image.Point) (local image.Point, ok bool) {
	local = p.Sub(origin)
	if local.X < 0 || local.Y < 0 || local.X >= size.X || local.Y >= size.Y {
		return image.Point{}, false
	}
	return local, true
}

// ToTop maps a window point into top-surface coordinates.
func (l Layout) ToTop(p image.Point) (image.Point, bool) {
	return ToLocal(p, l.TopOrigin(), l.TopSize())
}

// ToBottom maps a window point into bottom-surface coordinates.
func (l Layout) ToBottom(p image.Point) (image.Point, bool) {
	return ToLocal(p, l.BottomOrigin(), l.BottomSize())
}

// Locate reports which surface contains the window point and the local
// coordinate on it. The gap strip and the side margins belong to no surface.
func (l Layout) Locate(p image.Point) (Surface, image.Point) {
	if local, ok := l.ToTop(p); ok {
		return SurfaceTop, local
	}
	if local, ok := l.ToBottom(p); ok {
		return SurfaceBottom, local
	}
	return SurfaceNone, image.Point{}
}
