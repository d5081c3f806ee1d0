package style

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	size int
	bold bool
}

var (
	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
	parsed  = map[bool]*opentype.Font{}
)

// Face returns the cached regular UI face at the given point size. Falls back
// to basicfont if the embedded font cannot be parsed.
func Face(size int) font.Face {
	return face(size, false)
}

// BoldFace returns the cached bold UI face at the given point size.
func BoldFace(size int) font.Face {
	return face(size, true)
}

func face(size int, bold bool) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()

	key := faceKey{size: size, bold: bold}
	if f, ok := faces[key]; ok {
		return f
	}

	tt, ok := parsed[bold]
	if !ok {
		data := goregular.TTF
		if bold {
			data = gobold.TTF
		}
		var err error
		tt, err = opentype.Parse(data)
		if err != nil {
			log.Printf("Warning: failed to parse UI font: %v", err)
			tt = nil
		}
		parsed[bold] = tt
	}

	var f font.Face = basicfont.Face7x13
	if tt != nil {
		nf, err := opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			log.Printf("Warning: failed to create %dpt face: %v", size, err)
		} else {
			f = nf
		}
	}
	faces[key] = f
	return f
}

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst draw.Image, s string, x, y int, face font.Face, c color.Color) {
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	d.DrawString(s)
}

// DrawTextCentered draws s centered inside r.
func DrawTextCentered(dst draw.Image, s string, r image.Rectangle, face font.Face, c color.Color) {
	w, h := MeasureText(s, face)
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	DrawText(dst, s, x, y, face, c)
}

// DrawTextRight draws s so that it ends at rightX.
func DrawTextRight(dst draw.Image, s string, rightX, y int, face font.Face, c color.Color) {
	w, _ := MeasureText(s, face)
	DrawText(dst, s, rightX-w, y, face, c)
}

// MeasureText returns the pixel width and line height of s.
func MeasureText(s string, face font.Face) (width, height int) {
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// FitText truncates s with an ellipsis so it fits within maxWidth pixels.
func FitText(s string, face font.Face, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	if font.MeasureString(face, s).Ceil() <= maxWidth {
		return s
	}

	const ellipsis = "..."
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		candidate := string(runes[:i]) + ellipsis
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

// TruncateEnd truncates a string from the end, keeping the start portion.
// Returns the truncated string and whether truncation occurred.
// Used for list rows where the row width is a fixed number of glyphs.
func TruncateEnd(s string, maxLen int) (string, bool) {
	r := []rune(s)
	if len(r) <= maxLen {
		return s, false
	}
	if maxLen <= 3 {
		return string(r[:maxLen]), true
	}
	return string(r[:maxLen-3]) + "...", true
}

// TruncateStart truncates a string from the start, keeping the end portion.
// Useful for URLs and file paths where the end is most relevant.
func TruncateStart(s string, maxLen int) (string, bool) {
	r := []rune(s)
	if len(r) <= maxLen {
		return s, false
	}
	if maxLen <= 3 {
		return string(r[len(r)-maxLen:]), true
	}
	return "..." + string(r[len(r)-maxLen+3:]), true
}
