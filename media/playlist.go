// Package media discovers music files and tracks playlist position.
package media

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Track is one playable file.
type Track struct {
	Path  string
	Title string // File name without extension
}

// Scan lists the music files directly inside dir whose extension is in
// formats, sorted by path. A missing dir is created and yields no tracks.
func Scan(fs afero.Fs, dir string, formats []string) ([]Track, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat music dir: %w", err)
	}
	if !exists {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create music dir: %w", err)
		}
		return nil, nil
	}

	allowed := make(map[string]bool, len(formats))
	for _, f := range formats {
		allowed[strings.ToLower(f)] = true
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read music dir: %w", err)
	}

	var tracks []Track
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !allowed[strings.ToLower(ext)] {
			continue
		}
		tracks = append(tracks, Track{
			Path:  filepath.Join(dir, e.Name()),
			Title: strings.TrimSuffix(e.Name(), ext),
		})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Path < tracks[j].Path })
	return tracks, nil
}

// Playlist is the play/pause and position state of the music player.
// Audio output is outside its concern; it only tracks which track is
// selected and whether it is playing.
type Playlist struct {
	tracks  []Track
	current int
	playing bool
}

// NewPlaylist creates a stopped playlist positioned at the first track.
func NewPlaylist(tracks []Track) *Playlist {
	return &Playlist{tracks: tracks}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Tracks returns the tracks in play order.
func (p *Playlist) Tracks() []Track {
	return p.tracks
}

// Index returns the position of the current track.
func (p *Playlist) Index() int {
	return p.current
}

// Current returns the current track, or false for an empty playlist.
func (p *Playlist) Current() (Track, bool) {
	if len(p.tracks) == 0 {
		return Track{}, false
	}
	return p.tracks[p.current], true
}

// Playing reports whether playback is active.
func (p *Playlist) Playing() bool {
	return p.playing
}

// Toggle flips between playing and paused. No-op on an empty playlist.
func (p *Playlist) Toggle() {
	if len(p.tracks) == 0 {
		return
	}
	p.playing = !p.playing
}

// Next advances to the following track, wrapping at the end.
func (p *Playlist) Next() {
	if len(p.tracks) == 0 {
		return
	}
	p.current = (p.current + 1) % len(p.tracks)
}

// Prev moves to the previous track, wrapping at the start.
func (p *Playlist) Prev() {
	if len(p.tracks) == 0 {
		return
	}
	p.current = (p.current - 1 + len(p.tracks)) % len(p.tracks)
}

// Select jumps to track i if it exists.
func (p *Playlist) Select(i int) {
	if i >= 0 && i < len(p.tracks) {
		p.current = i
	}
}
