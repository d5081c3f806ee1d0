// Package fb presents composited frames on a Linux framebuffer device and
// drives the panel backlight through sysfs.
package fb

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Format is a framebuffer pixel layout.
type Format int

const (
	RGB565   Format = iota // 16 bpp, little endian
	XRGB8888               // 32 bpp, little endian BGRX in memory
)

// BytesPerPixel returns the pixel size of f.
func (f Format) BytesPerPixel() int {
	if f == RGB565 {
		return 2
	}
	return 4
}

func (f Format) String() string {
	switch f {
	case RGB565:
		return "rgb565"
	case XRGB8888:
		return "xrgb8888"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForDepth maps a bits-per-pixel value to a format.
func FormatForDepth(bpp int) (Format, error) {
	switch bpp {
	case 16:
		return RGB565, nil
	case 32:
		return XRGB8888, nil
	}
	return 0, fmt.Errorf("unsupported framebuffer depth %d", bpp)
}

// Geometry describes a framebuffer as reported by sysfs.
type Geometry struct {
	Width  int
	Height int
	Stride int // Bytes per line
	Format Format
}

// ReadGeometry reads the size, line length and depth of the framebuffer
// named name (for example "fb0") from /sys/class/graphics.
func ReadGeometry(fs afero.Fs, name string) (Geometry, error) {
	dir := filepath.Join("/sys/class/graphics", name)

	size, err := readSysfs(fs, filepath.Join(dir, "virtual_size"))
	if err != nil {
		return Geometry{}, err
	}
	w, h, ok := strings.Cut(size, ",")
	if !ok {
		return Geometry{}, fmt.Errorf("parse virtual_size %q", size)
	}
	var g Geometry
	if g.Width, err = strconv.Atoi(w); err != nil {
		return Geometry{}, fmt.Errorf("parse width: %w", err)
	}
	if g.Height, err = strconv.Atoi(h); err != nil {
		return Geometry{}, fmt.Errorf("parse height: %w", err)
	}

	depth, err := readSysfsInt(fs, filepath.Join(dir, "bits_per_pixel"))
	if err != nil {
		return Geometry{}, err
	}
	if g.Format, err = FormatForDepth(depth); err != nil {
		return Geometry{}, err
	}

	g.Stride = g.Width * g.Format.BytesPerPixel()
	if stride, err := readSysfsInt(fs, filepath.Join(dir, "stride")); err == nil && stride > 0 {
		g.Stride = stride
	}
	return g, nil
}

// Framebuffer writes frames to a framebuffer device. The window is copied
// into the top-left of the device; anything outside the device is clipped.
type Framebuffer struct {
	dev    io.WriterAt
	closer io.Closer
	geom   Geometry
	buf    []byte
}

// New creates a presenter writing to dev.
func New(dev io.WriterAt, geom Geometry) *Framebuffer {
	return &Framebuffer{
		dev:  dev,
		geom: geom,
		buf:  make([]byte, geom.Stride*geom.Height),
	}
}

// Open opens the framebuffer device /dev/<name> using geometry from sysfs.
func Open(fs afero.Fs, name string) (*Framebuffer, error) {
	geom, err := ReadGeometry(fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s geometry: %w", name, err)
	}
	f, err := os.OpenFile(filepath.Join("/dev", name), os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}
	fb := New(f, geom)
	fb.closer = f
	return fb, nil
}

// Geometry returns the device geometry.
func (f *Framebuffer) Geometry() Geometry {
	return f.geom
}

// Present converts the window and writes it to the device.
func (f *Framebuffer) Present(window *image.RGBA) error {
	Convert(f.buf, f.geom, window)
	if _, err := f.dev.WriteAt(f.buf, 0); err != nil {
		return fmt.Errorf("write framebuffer: %w", err)
	}
	return nil
}

// Close closes the device if Open created it.
func (f *Framebuffer) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Convert packs src into dst laid out as geom. Pixels of dst outside src
// are left untouched.
func Convert(dst []byte, geom Geometry, src *image.RGBA) {
	b := src.Bounds()
	w := min(b.Dx(), geom.Width)
	h := min(b.Dy(), geom.Height)
	bpp := geom.Format.BytesPerPixel()

	for y := 0; y < h; y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := y * geom.Stride
		for x := 0; x < w; x++ {
			r, g, bl := src.Pix[si], src.Pix[si+1], src.Pix[si+2]
			switch geom.Format {
			case RGB565:
				v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(bl>>3)
				dst[di] = byte(v)
				dst[di+1] = byte(v >> 8)
			case XRGB8888:
				dst[di] = bl
				dst[di+1] = g
				dst[di+2] = r
				dst[di+3] = 0xff
			}
			si += 4
			di += bpp
		}
	}
}

func readSysfs(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func readSysfsInt(fs afero.Fs, path string) (int, error) {
	s, err := readSysfs(fs, path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
