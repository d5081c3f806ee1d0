// Package streamdeck turns an Elgato Stream Deck into a hardware button
// source and backlight. Key presses become gamepad button events on the
// frame queue; key faces show the button each key stands for.
package streamdeck

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"rafaelmartins.com/p/streamdeck"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/ui/style"
)

// Sink receives the raw events produced by key presses.
type Sink interface {
	Push(e input.Event) bool
}

// Binding assigns a pad button to a deck key.
type Binding struct {
	Button int    // input.Pad* index
	Label  string // Caption drawn when Icon is empty
	Icon   string // style.Icon* name
}

// DefaultBindings covers a 15-key deck left to right, top to bottom:
// system keys on the first row, the d-pad and face buttons below.
var DefaultBindings = []Binding{
	{Button: input.PadHome, Label: "HOME"},
	{Button: input.PadSelect, Label: "SEL"},
	{Button: input.PadStart, Label: "START"},
	{Button: input.PadL, Label: "L"},
	{Button: input.PadR, Label: "R"},
	{Button: input.PadY, Label: "Y"},
	{Button: input.PadUp, Label: "UP"},
	{Button: input.PadX, Label: "X"},
	{Button: input.PadB, Label: "B"},
	{Button: input.PadA, Label: "A"},
	{Button: input.PadLeft, Label: "LEFT"},
	{Button: input.PadDown, Label: "DOWN"},
	{Button: input.PadRight, Label: "RIGHT"},
}

// Deck is an open Stream Deck bound to a sink.
type Deck struct {
	device   *streamdeck.Device
	sink     Sink
	bindings []Binding

	mu         sync.Mutex
	brightness int
}

// Open opens the deck with the given serial number, or the first one found
// when serial is empty, and binds its keys.
func Open(serial string, sink Sink, bindings []Binding, icons *style.IconSet, theme style.Theme) (*Deck, error) {
	device, err := streamdeck.GetDevice(serial)
	if err != nil {
		return nil, fmt.Errorf("find stream deck: %w", err)
	}
	if err := device.Open(); err != nil {
		return nil, fmt.Errorf("open stream deck: %w", err)
	}
	log.Printf("Connected to: %s", device.GetModelName())

	if bindings == nil {
		bindings = DefaultBindings
	}
	d := &Deck{
		device:     device,
		sink:       sink,
		bindings:   bindings,
		brightness: 80,
	}
	d.SetBrightness(d.brightness)

	rect, err := device.GetKeyImageRectangle()
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("key image size: %w", err)
	}

	err = device.ForEachKey(func(key streamdeck.KeyID) error {
		b, ok := d.binding(int(key - streamdeck.KEY_1))
		if !ok {
			return device.ClearKey(key)
		}
		if err := device.SetKeyImage(key, KeyFace(b, rect.Dx(), icons, theme)); err != nil {
			return err
		}
		return device.AddKeyHandler(key, func(dev *streamdeck.Device, k *streamdeck.Key) error {
			d.push(b.Button, true)
			k.WaitForRelease()
			d.push(b.Button, false)
			return nil
		})
	})
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("bind keys: %w", err)
	}
	return d, nil
}

func (d *Deck) binding(index int) (Binding, bool) {
	if index < 0 || index >= len(d.bindings) {
		return Binding{}, false
	}
	return d.bindings[index], true
}

func (d *Deck) push(button int, pressed bool) {
	if !d.sink.Push(input.ButtonEvent{Button: button, Pressed: pressed}) {
		log.Printf("Warning: dropped stream deck button %d, queue closed", button)
	}
}

// Listen delivers key events until ctx is cancelled or the device fails.
func (d *Deck) Listen(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := d.device.Listen(errChan); err != nil {
			errChan <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("stream deck: %w", err)
			}
		}
	}
}

// Brightness returns the panel brightness in percent.
func (d *Deck) Brightness() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// SetBrightness sets the panel brightness in percent.
func (d *Deck) SetBrightness(percent int) {
	percent = max(0, min(100, percent))
	d.mu.Lock()
	d.brightness = percent
	d.mu.Unlock()
	if err := d.device.SetBrightness(byte(percent)); err != nil {
		log.Printf("Warning: failed to set stream deck brightness: %v", err)
	}
}

// Close releases the device.
func (d *Deck) Close() error {
	return d.device.Close()
}

// KeyFace draws the face of a bound key: the icon when set, otherwise the
// label, on the theme's dark color.
func KeyFace(b Binding, size int, icons *style.IconSet, theme style.Theme) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	style.Fill(img, theme.Dark)
	style.StrokeRect(img, img.Bounds(), theme.Primary, 3)

	if b.Icon != "" && icons != nil {
		icon := size * 2 / 3
		style.Blit(img, icons.Render(b.Icon, icon, theme.White), image.Pt((size-icon)/2, (size-icon)/2))
		return img
	}
	face := style.BoldFace(style.FontLarge)
	if w, _ := style.MeasureText(b.Label, face); w > size-8 {
		face = style.BoldFace(style.FontSmall)
	}
	style.DrawTextCentered(img, b.Label, img.Bounds(), face, color.White)
	return img
}
