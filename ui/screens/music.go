package screens

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/media"
	"github.com/user-none/duoscreen/ui/style"
)

// Transport buttons on the bottom surface
var (
	musicPrevButton = image.Rect(40, 180, 100, 220)
	musicPlayButton = image.Rect(110, 180, 170, 220)
	musicNextButton = image.Rect(180, 180, 240, 220)
)

const (
	musicVolumeStep = 5
	// musicTrackLength is the nominal length shown for every track; files
	// are not decoded.
	musicTrackLength = 3 * time.Minute
)

// Music is the music player: now-playing on top, transport controls on the
// bottom. Playback is simulated by advancing a position clock.
type Music struct {
	env      *Env
	playlist *media.Playlist
	position time.Duration
}

// NewMusic creates the music screen and scans the music directory.
func NewMusic(env *Env) *Music {
	var tracks []media.Track
	if env.FS != nil && env.MusicDir != "" {
		var err error
		tracks, err = media.Scan(env.FS, env.MusicDir, env.MusicFormats)
		if err != nil {
			log.Printf("failed to scan music: %v", err)
		}
	}
	return &Music{
		env:      env,
		playlist: media.NewPlaylist(tracks),
	}
}

// Playlist returns the screen's playlist.
func (m *Music) Playlist() *media.Playlist {
	return m.playlist
}

// Position returns the simulated playback position.
func (m *Music) Position() time.Duration {
	return m.position
}

func (m *Music) HandleEvent(e input.Event) bool {
	if p, ok := bottomTap(m.env.Layout(), e); ok {
		switch {
		case p.In(musicPrevButton):
			m.prev()
		case p.In(musicPlayButton):
			m.toggle()
		case p.In(musicNextButton):
			m.next()
		}
		return true
	}

	if ke, ok := e.(input.KeyEvent); ok && ke.Pressed && ke.Key == "Space" {
		m.toggle()
		return true
	}

	switch {
	case input.IsBack(e):
		m.env.Nav.Pop()
	case input.IsConfirm(e):
		m.toggle()
	case input.IsPress(e, input.ButtonLeft):
		m.prev()
	case input.IsPress(e, input.ButtonRight):
		m.next()
	case input.IsPress(e, input.ButtonUp):
		m.adjustVolume(musicVolumeStep)
	case input.IsPress(e, input.ButtonDown):
		m.adjustVolume(-musicVolumeStep)
	default:
		return false
	}
	return true
}

func (m *Music) toggle() {
	if m.playlist.Len() == 0 {
		m.env.toast("No music found")
		return
	}
	m.playlist.Toggle()
}

func (m *Music) prev() {
	m.playlist.Prev()
	m.position = 0
}

func (m *Music) next() {
	m.playlist.Next()
	m.position = 0
}

func (m *Music) adjustVolume(delta int) {
	if m.env.Volume == nil {
		return
	}
	v := m.env.Volume.Volume() + delta
	m.env.Volume.SetVolume(max(0, min(100, v)))
}

func (m *Music) Update(dt time.Duration) {
	if !m.playlist.Playing() {
		return
	}
	m.position += dt
	if m.position >= musicTrackLength {
		m.next()
	}
}

func (m *Music) Render(top, bottom *image.RGBA, theme style.Theme) {
	m.renderTop(top, theme)
	m.renderBottom(bottom, theme)
}

func (m *Music) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Dark)
	w := dst.Bounds().Dx()
	title := style.BoldFace(style.FontTitle)
	medium := style.Face(style.FontMedium)

	style.DrawText(dst, "Now Playing", 20, 20, title, theme.White)

	track, ok := m.playlist.Current()
	if !ok {
		style.DrawText(dst, "No music found", 20, 80, medium, theme.Gray)
		style.DrawText(dst, fmt.Sprintf("Add files to %s", m.env.MusicDir), 20, 106, medium, theme.Gray)
		return
	}

	art := image.Rect(20, 70, 220, 270)
	style.FillRect(dst, art, theme.Primary)
	if m.env.Icons != nil {
		style.Blit(dst, m.env.Icons.Render(style.IconMusic, 96, theme.White), image.Pt(art.Min.X+52, art.Min.Y+52))
	}

	large := style.BoldFace(style.FontLarge)
	style.DrawText(dst, style.FitText(track.Title, large, w-260), 240, 90, large, theme.White)
	style.DrawText(dst, fmt.Sprintf("Track %d of %d", m.playlist.Index()+1, m.playlist.Len()), 240, 122, medium, theme.Gray)

	bar := image.Rect(240, 200, w-20, 208)
	style.FillRect(dst, bar, theme.Secondary)
	filled := bar
	filled.Max.X = bar.Min.X + int(int64(bar.Dx())*int64(m.position)/int64(musicTrackLength))
	style.FillRect(dst, filled, theme.Success)
	small := style.Face(style.FontSmall)
	style.DrawText(dst, style.FormatDuration(m.position), bar.Min.X, bar.Max.Y+6, small, theme.Light)
	style.DrawTextRight(dst, style.FormatDuration(musicTrackLength), bar.Max.X, bar.Max.Y+6, small, theme.Light)

	// Upcoming tracks
	tracks := m.playlist.Tracks()
	y := 300
	for i := 1; i <= 4 && i < len(tracks); i++ {
		next := tracks[(m.playlist.Index()+i)%len(tracks)]
		style.DrawText(dst, style.FitText(next.Title, medium, w-60), 40, y, medium, theme.Light)
		y += 26
	}
}

func (m *Music) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Secondary)
	medium := style.Face(style.FontMedium)

	volume := 0
	if m.env.Volume != nil {
		volume = m.env.Volume.Volume()
	}
	style.DrawText(dst, "Volume: "+style.Percent(volume), 40, 40, medium, theme.White)
	bar := image.Rect(40, 70, 280, 82)
	style.FillRect(dst, bar, theme.Dark)
	filled := bar
	filled.Max.X = bar.Min.X + bar.Dx()*volume/100
	style.FillRect(dst, filled, theme.Success)

	playIcon := style.IconPlay
	if m.playlist.Playing() {
		playIcon = style.IconPause
	}
	buttons := []struct {
		r    image.Rectangle
		icon string
	}{
		{musicPrevButton, style.IconPrev},
		{musicPlayButton, playIcon},
		{musicNextButton, style.IconNext},
	}
	for _, b := range buttons {
		style.FillRoundRect(dst, b.r, 8, theme.Primary)
		if m.env.Icons != nil {
			c := b.r.Min.Add(image.Pt(b.r.Dx()/2-12, b.r.Dy()/2-12))
			style.Blit(dst, m.env.Icons.Render(b.icon, 24, theme.White), c)
		}
	}
}
