package ui

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

var errScreenshotsDisabled = errors.New("screenshots not configured")

// takeScreenshot writes the last composited window as a PNG named after the
// current time.
func (a *App) takeScreenshot() error {
	if a.fs == nil || a.screenshotDir == "" {
		return errScreenshotsDisabled
	}
	if err := a.fs.MkdirAll(a.screenshotDir, 0755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, a.sys.Window()); err != nil {
		return fmt.Errorf("encode screenshot: %w", err)
	}

	name := "screenshot-" + a.now().Format("20060102-150405") + ".png"
	path := filepath.Join(a.screenshotDir, name)
	if err := afero.WriteFile(a.fs, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	log.Printf("Saved screenshot %s", path)
	a.sys.Notify().ShowShort("Screenshot saved")
	return nil
}
