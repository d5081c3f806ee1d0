package layout

import (
	"image"
	"testing"
)

func TestWindowSize(t *testing.T) {
	l := Default()
	w, h := l.WindowSize()
	if w != 800 || h != 740 {
		t.Fatalf("WindowSize() = %dx%d, want 800x740", w, h)
	}

	wide := Layout{TopWidth: 300, TopHeight: 200, BottomWidth: 400, BottomHeight: 100, Gap: 20}
	w, h = wide.WindowSize()
	if w != 400 || h != 320 {
		t.Fatalf("WindowSize() with wide bottom = %dx%d, want 400x320", w, h)
	}
}

func TestOrigins(t *testing.T) {
	l := Default()

	if got := l.TopOrigin(); got != image.Pt(0, 0) {
		t.Errorf("TopOrigin() = %v, want (0,0)", got)
	}
	if got := l.BottomOrigin(); got != image.Pt(240, 500) {
		t.Errorf("BottomOrigin() = %v, want (240,500)", got)
	}
	if got := l.GapRect(); got != image.Rect(0, 480, 800, 500) {
		t.Errorf("GapRect() = %v", got)
	}
}

func TestToLocal(t *testing.T) {
	origin := image.Pt(240, 500)
	size := image.Pt(320, 240)

	tests := []struct {
		name  string
		point image.Point
		want  image.Point
		ok    bool
	}{
		{"origin maps to zero", image.Pt(240, 500), image.Pt(0, 0), true},
		{"interior", image.Pt(250, 510), image.Pt(10, 10), true},
		{"last pixel", image.Pt(559, 739), image.Pt(319, 239), true},
		{"far corner is outside", image.Pt(560, 740), image.Point{}, false},
		{"right edge is outside", image.Pt(560, 600), image.Point{}, false},
		{"bottom edge is outside", image.Pt(300, 740), image.Point{}, false},
		{"left of surface", image.Pt(239, 600), image.Point{}, false},
		{"above surface", image.Pt(300, 499), image.Point{}, false},
		{"beyond far corner", image.Pt(900, 900), image.Point{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToLocal(tc.point, origin, size)
			if ok != tc.ok {
				t.Fatalf("ToLocal(%v) ok = %v, want %v", tc.point, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("ToLocal(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestToLocalTranslationInvariant(t *testing.T) {
	size := image.Pt(320, 240)
	origin := image.Pt(240, 500)
	offsets := []image.Point{{0, 0}, {7, 3}, {-50, 12}, {1000, -400}}
	points := []image.Point{{240, 500}, {300, 600}, {559, 739}, {560, 740}, {10, 10}}

	for _, off := range offsets {
		for _, p := range points {
			want, wantOK := ToLocal(p, origin, size)
			got, gotOK := ToLocal(p.Add(off), origin.Add(off), size)
			if got != want || gotOK != wantOK {
				t.Errorf("offset %v point %v: got (%v,%v), want (%v,%v)", off, p, got, gotOK, want, wantOK)
			}
		}
	}
}

func TestLocate(t *testing.T) {
	l := Default()

	tests := []struct {
		name    string
		point   image.Point
		surface Surface
		local   image.Point
	}{
		{"top corner", image.Pt(0, 0), SurfaceTop, image.Pt(0, 0)},
		{"top interior", image.Pt(400, 240), SurfaceTop, image.Pt(400, 240)},
		{"gap strip", image.Pt(400, 490), SurfaceNone, image.Point{}},
		{"bottom origin", image.Pt(240, 500), SurfaceBottom, image.Pt(0, 0)},
		{"bottom left margin", image.Pt(100, 600), SurfaceNone, image.Point{}},
		{"bottom right margin", image.Pt(700, 600), SurfaceNone, image.Point{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, local := l.Locate(tc.point)
			if s != tc.surface || local != tc.local {
				t.Errorf("Locate(%v) = (%v, %v), want (%v, %v)", tc.point, s, local, tc.surface, tc.local)
			}
		})
	}
}
