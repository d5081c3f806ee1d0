package style

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed icons/*.svg
var iconFS embed.FS

// Icon names
const (
	IconSettings  = "settings"
	IconMusic     = "music"
	IconFriends   = "friends"
	IconChat      = "chat"
	IconBrowser   = "browser"
	IconBell      = "bell"
	IconMenu      = "menu"
	IconPlay      = "play"
	IconPause     = "pause"
	IconPrev      = "prev"
	IconNext      = "next"
	IconWifi      = "wifi"
	IconBluetooth = "bluetooth"
	IconUser      = "user"
)

type iconKey struct {
	name string
	size int
	rgba [4]uint32
}

// IconSet rasterizes the embedded SVG icons and keeps the most recently used
// renderings. Icons are drawn on a transparent background so they can be
// blitted over any theme color.
type IconSet struct {
	cache *lru.Cache[iconKey, *image.RGBA]
}

// NewIconSet creates an icon set with an LRU of IconCacheSize entries.
func NewIconSet() *IconSet {
	cache, err := lru.New[iconKey, *image.RGBA](IconCacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &IconSet{cache: cache}
}

// Render returns the named icon at size x size pixels filled with c. Unknown
// names and unparsable sources yield a blank image of the requested size.
func (s *IconSet) Render(name string, size int, c color.Color) image.Image {
	r, g, b, a := c.RGBA()
	key := iconKey{name: name, size: size, rgba: [4]uint32{r, g, b, a}}
	if img, ok := s.cache.Get(key); ok {
		return img
	}

	img := renderIcon(name, size, c)
	s.cache.Add(key, img)
	return img
}

// Len returns the number of cached renderings.
func (s *IconSet) Len() int {
	return s.cache.Len()
}

func renderIcon(name string, size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	data, err := iconFS.ReadFile("icons/" + name + ".svg")
	if err != nil {
		return img
	}

	r, g, b, _ := c.RGBA()
	hexColor := fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	svg := strings.ReplaceAll(string(data), "currentColor", hexColor)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		log.Printf("Failed to parse icon %s: %v", name, err)
		return img
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img
}
