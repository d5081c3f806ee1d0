package fb

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/spf13/afero"
)

type memDevice struct {
	data []byte
	err  error
}

func (m *memDevice) WriteAt(p []byte, off int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	end := int(off) + len(p)
	if end > len(m.data) {
		m.data = append(m.data, make([]byte, end-len(m.data))...)
	}
	copy(m.data[off:], p)
	return len(p), nil
}

func TestConvertPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{10, 20, 30, 255})

	tests := []struct {
		format Format
		want   []byte
	}{
		{RGB565, []byte{0x00, 0xf8, 0xa3, 0x08}},
		{XRGB8888, []byte{0, 0, 255, 255, 30, 20, 10, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			geom := Geometry{Width: 2, Height: 1, Stride: 2 * tt.format.BytesPerPixel(), Format: tt.format}
			dst := make([]byte, geom.Stride)
			Convert(dst, geom, src)
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Fatalf("bytes = %v, want %v", dst, tt.want)
				}
			}
		})
	}
}

func TestConvertClipsAndPads(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	// Device narrower and shorter than the window, with a padded stride.
	geom := Geometry{Width: 2, Height: 2, Stride: 8, Format: RGB565}
	dst := make([]byte, geom.Stride*geom.Height)
	for i := range dst {
		dst[i] = 0xaa
	}
	Convert(dst, geom, src)

	for y := 0; y < 2; y++ {
		row := dst[y*geom.Stride:]
		for i := 0; i < 4; i++ {
			if row[i] != 0xff {
				t.Errorf("row %d byte %d = %#x, want 0xff", y, i, row[i])
			}
		}
		for i := 4; i < 8; i++ {
			if row[i] != 0xaa {
				t.Errorf("row %d padding byte %d overwritten", y, i)
			}
		}
	}
}

func TestPresent(t *testing.T) {
	geom := Geometry{Width: 2, Height: 2, Stride: 8, Format: XRGB8888}
	dev := &memDevice{}
	f := New(dev, geom)

	win := image.NewRGBA(image.Rect(0, 0, 2, 2))
	win.SetRGBA(1, 1, color.RGBA{1, 2, 3, 255})
	if err := f.Present(win); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(dev.data) != 16 {
		t.Fatalf("wrote %d bytes, want 16", len(dev.data))
	}
	if got := dev.data[12:16]; got[0] != 3 || got[1] != 2 || got[2] != 1 {
		t.Errorf("last pixel = %v", got)
	}

	boom := errors.New("boom")
	dev.err = boom
	if err := f.Present(win); !errors.Is(err, boom) {
		t.Errorf("Present error = %v, want wrapped boom", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close on a caller-owned device: %v", err)
	}
}

func writeSysfs(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestReadGeometry(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    Geometry
		wantErr bool
	}{
		{
			name: "rgb565",
			files: map[string]string{
				"virtual_size":   "800,740\n",
				"bits_per_pixel": "16\n",
			},
			want: Geometry{Width: 800, Height: 740, Stride: 1600, Format: RGB565},
		},
		{
			name: "padded stride",
			files: map[string]string{
				"virtual_size":   "800,740\n",
				"bits_per_pixel": "32\n",
				"stride":         "3328\n",
			},
			want: Geometry{Width: 800, Height: 740, Stride: 3328, Format: XRGB8888},
		},
		{
			name: "unsupported depth",
			files: map[string]string{
				"virtual_size":   "800,740\n",
				"bits_per_pixel": "24\n",
			},
			wantErr: true,
		},
		{
			name:    "bad size",
			files:   map[string]string{"virtual_size": "800x740\n", "bits_per_pixel": "16\n"},
			wantErr: true,
		},
		{
			name:    "missing",
			files:   map[string]string{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			files := make(map[string]string)
			for name, content := range tt.files {
				files["/sys/class/graphics/fb0/"+name] = content
			}
			writeSysfs(t, fs, files)

			got, err := ReadGeometry(fs, "fb0")
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGeometry: %v", err)
			}
			if got != tt.want {
				t.Errorf("geometry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBacklight(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := BacklightRoot + "/rpi_backlight"
	writeSysfs(t, fs, map[string]string{
		dir + "/max_brightness": "255\n",
		dir + "/brightness":     "128\n",
	})

	b, err := FindBacklight(fs)
	if err != nil {
		t.Fatalf("FindBacklight: %v", err)
	}
	if b.Brightness() != 50 {
		t.Errorf("initial brightness = %d, want 50", b.Brightness())
	}

	tests := []struct {
		set     int
		percent int
		raw     string
	}{
		{100, 100, "255"},
		{0, 0, "0"},
		{40, 40, "102"},
		{150, 100, "255"},
		{-5, 0, "0"},
	}
	for _, tt := range tests {
		b.SetBrightness(tt.set)
		if b.Brightness() != tt.percent {
			t.Errorf("SetBrightness(%d): percent %d, want %d", tt.set, b.Brightness(), tt.percent)
		}
		data, err := afero.ReadFile(fs, dir+"/brightness")
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tt.raw {
			t.Errorf("SetBrightness(%d): wrote %q, want %q", tt.set, data, tt.raw)
		}
	}
}

func TestFindBacklightNone(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(BacklightRoot, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindBacklight(fs); !errors.Is(err, ErrNoBacklight) {
		t.Errorf("err = %v, want ErrNoBacklight", err)
	}
}
