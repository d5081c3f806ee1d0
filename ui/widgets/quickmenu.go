package widgets

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/layout"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
)

// Slider track geometry in bottom-local space
const (
	SliderX      = 40
	SliderWidth  = 240
	SliderHeight = 20

	BrightnessSliderY = 60
	VolumeSliderY     = 110

	// sliderStep is how far one left/right press moves the focused slider
	sliderStep = 5
)

// QuickSettings is the value edited by the quick menu.
type QuickSettings struct {
	Brightness int
	Volume     int
}

type slider int

const (
	sliderNone slider = iota
	sliderBrightness
	sliderVolume
)

// BrightnessTrack and VolumeTrack are the slider hit areas.
var (
	BrightnessTrack = image.Rect(SliderX, BrightnessSliderY, SliderX+SliderWidth, BrightnessSliderY+SliderHeight)
	VolumeTrack     = image.Rect(SliderX, VolumeSliderY, SliderX+SliderWidth, VolumeSliderY+SliderHeight)
)

// SliderValue maps a bottom-local x onto the [0,100] slider range.
func SliderValue(x int) int {
	v := int(float64(x-SliderX) / SliderWidth * 100)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// QuickMenu is the brightness/volume panel opened from the home quick bar.
// Slider changes are pushed to the collaborators as they happen.
type QuickMenu struct {
	Overlay[QuickSettings]

	layout     layout.Layout
	volume     types.VolumeControl
	brightness types.BrightnessControl

	// fallback holds the levels of a missing collaborator: the configured
	// startup level until the user moves the slider.
	fallback QuickSettings

	dragging slider
	focused  slider
	devices  []string
}

// NewQuickMenu creates a hidden quick menu. Either collaborator may be nil;
// defaults seeds the slider of a missing one.
func NewQuickMenu(l layout.Layout, volume types.VolumeControl, brightness types.BrightnessControl, defaults QuickSettings) *QuickMenu {
	defaults.Brightness = clampPercent(defaults.Brightness)
	defaults.Volume = clampPercent(defaults.Volume)
	return &QuickMenu{
		layout:     l,
		volume:     volume,
		brightness: brightness,
		fallback:   defaults,
		focused:    sliderBrightness,
	}
}

// Open shows the menu seeded from the collaborators' current levels.
func (q *QuickMenu) Open(onComplete func(QuickSettings)) {
	initial := q.fallback
	if q.brightness != nil {
		initial.Brightness = q.brightness.Brightness()
	}
	if q.volume != nil {
		initial.Volume = q.volume.Volume()
	}
	q.Show(initial, onComplete)
}

// Toggle opens a hidden menu or dismisses a visible one.
func (q *QuickMenu) Toggle() {
	if q.visible {
		q.Dismiss()
		return
	}
	q.Open(nil)
}

// Dismiss hides the menu, ends any drag and reports the final levels.
func (q *QuickMenu) Dismiss() {
	q.dragging = sliderNone
	q.Overlay.Dismiss()
}

// Dragging reports whether a slider is being dragged.
func (q *QuickMenu) Dragging() bool {
	return q.dragging != sliderNone
}

// SetDevices sets the connected Bluetooth device names shown in the panel.
func (q *QuickMenu) SetDevices(names []string) {
	q.devices = append(q.devices[:0], names...)
}

// SetBrightness stores a brightness level and forwards it to the backlight.
func (q *QuickMenu) SetBrightness(v int) {
	q.value.Brightness = clampPercent(v)
	if q.brightness == nil {
		q.fallback.Brightness = q.value.Brightness
		return
	}
	q.brightness.SetBrightness(q.value.Brightness)
}

// SetVolume stores a volume level and forwards it to the mixer immediately.
func (q *QuickMenu) SetVolume(v int) {
	q.value.Volume = clampPercent(v)
	if q.volume == nil {
		q.fallback.Volume = q.value.Volume
		return
	}
	q.volume.SetVolume(q.value.Volume)
}

func (q *QuickMenu) set(s slider, v int) {
	switch s {
	case sliderBrightness:
		q.SetBrightness(v)
	case sliderVolume:
		q.SetVolume(v)
	}
}

func (q *QuickMenu) get(s slider) int {
	if s == sliderVolume {
		return q.value.Volume
	}
	return q.value.Brightness
}

// HandleEvent consumes every event while visible.
func (q *QuickMenu) HandleEvent(e input.Event) bool {
	if !q.visible {
		return false
	}

	switch ev := e.(type) {
	case input.PointerEvent:
		q.handlePointer(ev)
		return true
	}

	if input.IsBack(e) {
		q.Dismiss()
		return true
	}
	switch {
	case input.IsPress(e, input.ButtonUp):
		q.focused = sliderBrightness
	case input.IsPress(e, input.ButtonDown):
		q.focused = sliderVolume
	case input.IsPress(e, input.ButtonLeft):
		q.set(q.focused, q.get(q.focused)-sliderStep)
	case input.IsPress(e, input.ButtonRight):
		q.set(q.focused, q.get(q.focused)+sliderStep)
	}
	return true
}

func (q *QuickMenu) handlePointer(ev input.PointerEvent) {
	switch ev.Action {
	case input.PointerDown:
		local, ok := q.layout.ToBottom(ev.Pos)
		if !ok {
			return
		}
		switch {
		case local.In(BrightnessTrack):
			q.dragging = sliderBrightness
		case local.In(VolumeTrack):
			q.dragging = sliderVolume
		default:
			return
		}
		q.focused = q.dragging
		q.set(q.dragging, SliderValue(local.X))
	case input.PointerMove:
		if q.dragging == sliderNone {
			return
		}
		// Drags keep tracking past the surface edge; the value clamps.
		x := ev.Pos.X - q.layout.BottomOrigin().X
		q.set(q.dragging, SliderValue(x))
	case input.PointerUp:
		q.dragging = sliderNone
	}
}

// Render draws the panel over the bottom surface.
func (q *QuickMenu) Render(dst *image.RGBA, theme style.Theme) {
	if !q.visible {
		return
	}
	style.BlendRect(dst, dst.Bounds(), style.WithAlpha(theme.Dark, style.OverlayAlpha))

	medium := style.BoldFace(style.FontMedium)
	small := style.Face(style.FontSmall)

	style.DrawText(dst, "Quick Menu", 20, 16, medium, theme.White)

	q.renderSlider(dst, fmt.Sprintf("Brightness: %s", style.Percent(q.value.Brightness)),
		BrightnessTrack, q.value.Brightness, theme.Primary, q.focused == sliderBrightness, theme)
	q.renderSlider(dst, fmt.Sprintf("Volume: %s", style.Percent(q.value.Volume)),
		VolumeTrack, q.value.Volume, theme.Success, q.focused == sliderVolume, theme)

	style.DrawText(dst, "Bluetooth Devices:", SliderX, 145, small, theme.White)
	if len(q.devices) == 0 {
		style.DrawText(dst, "No devices connected", SliderX, 163, small, theme.Gray)
	} else {
		for i, name := range q.devices {
			if i == 2 {
				break
			}
			style.DrawText(dst, style.FitText(name, small, SliderWidth), SliderX, 163+i*16, small, theme.Light)
		}
	}

	style.DrawText(dst, "Press B or ESC to close", SliderX, 208, small, theme.Gray)
}

func (q *QuickMenu) renderSlider(dst *image.RGBA, label string, track image.Rectangle, value int, fill color.RGBA, focused bool, theme style.Theme) {
	small := style.Face(style.FontSmall)
	labelColor := theme.White
	if focused {
		labelColor = theme.Warning
	}
	style.DrawText(dst, label, track.Min.X, track.Min.Y-16, small, labelColor)

	style.FillRect(dst, track, theme.Secondary)
	filled := track
	filled.Max.X = track.Min.X + track.Dx()*value/100
	style.FillRect(dst, filled, fill)
	style.StrokeRect(dst, track, theme.White, 2)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
