package style

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Fill paints the whole surface with a solid color.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// FillRect paints r with a solid color, clipped to the surface.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{c}, image.Point{}, draw.Src)
}

// BlendRect composites a translucent color over r.
func BlendRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{c}, image.Point{}, draw.Over)
}

// StrokeRect outlines r with a border of the given width drawn inside r.
func StrokeRect(dst draw.Image, r image.Rectangle, c color.Color, width int) {
	if width <= 0 {
		return
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// FillRoundRect paints an anti-aliased rounded rectangle.
func FillRoundRect(dst *image.RGBA, r image.Rectangle, radius float64, c color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(c)
	rasterx.AddRoundRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y),
		radius, radius, 0, rasterx.RoundGap, filler)
	filler.Draw()
}

// FillCircle paints an anti-aliased disc.
func FillCircle(dst *image.RGBA, center image.Point, radius float64, c color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(c)
	rasterx.AddCircle(float64(center.X), float64(center.Y), radius, filler)
	filler.Draw()
}

// Blit copies src onto dst with src's top-left at pt.
func Blit(dst draw.Image, src image.Image, pt image.Point) {
	sb := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(sb.Size())}, src, sb.Min, draw.Over)
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
