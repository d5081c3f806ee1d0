package fb

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// BacklightRoot is where the kernel lists backlight devices.
const BacklightRoot = "/sys/class/backlight"

// ErrNoBacklight is returned when no backlight device exists.
var ErrNoBacklight = errors.New("no backlight device")

// Backlight controls a sysfs backlight in percent.
type Backlight struct {
	fs      afero.Fs
	dir     string
	max     int
	percent int
}

// FindBacklight opens the first backlight device under BacklightRoot.
func FindBacklight(fs afero.Fs) (*Backlight, error) {
	entries, err := afero.ReadDir(fs, BacklightRoot)
	if err != nil {
		return nil, fmt.Errorf("list backlights: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoBacklight
	}
	return OpenBacklight(fs, filepath.Join(BacklightRoot, entries[0].Name()))
}

// OpenBacklight opens the backlight device in dir.
func OpenBacklight(fs afero.Fs, dir string) (*Backlight, error) {
	maxLevel, err := readSysfsInt(fs, filepath.Join(dir, "max_brightness"))
	if err != nil {
		return nil, err
	}
	if maxLevel <= 0 {
		return nil, fmt.Errorf("backlight %s reports max brightness %d", dir, maxLevel)
	}
	cur, err := readSysfsInt(fs, filepath.Join(dir, "brightness"))
	if err != nil {
		return nil, err
	}
	return &Backlight{
		fs:      fs,
		dir:     dir,
		max:     maxLevel,
		percent: (cur*100 + maxLevel/2) / maxLevel,
	}, nil
}

// Brightness returns the last level set, in percent.
func (b *Backlight) Brightness() int {
	return b.percent
}

// SetBrightness writes a level in percent. Failures are logged; the panel
// keeps its previous level.
func (b *Backlight) SetBrightness(percent int) {
	percent = max(0, min(100, percent))
	raw := (percent*b.max + 50) / 100
	path := filepath.Join(b.dir, "brightness")
	if err := afero.WriteFile(b.fs, path, []byte(strconv.Itoa(raw)), 0644); err != nil {
		log.Printf("Warning: failed to set backlight: %v", err)
		return
	}
	b.percent = percent
}
