package screens

import (
	"fmt"
	"image"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/ui/style"
)

// Settings row geometry on the bottom surface
const (
	settingsRowTop     = 10
	settingsRowHeight  = 30
	settingsRowVisible = 7
)

// SettingsSection is one entry of the settings list.
type SettingsSection struct {
	ID    string
	Title string
}

// SettingsSections lists the settings categories in display order.
var SettingsSections = []SettingsSection{
	{"profile", "Profile"},
	{"wifi", "WiFi"},
	{"bluetooth", "Bluetooth"},
	{"display", "Display"},
	{"audio", "Audio"},
	{"network", "Network"},
	{"themes", "Themes"},
	{"controls", "Controls"},
	{"storage", "Storage"},
	{"system", "System"},
	{"privacy", "Privacy"},
	{"about", "About"},
}

// Settings lists the settings categories on the bottom surface and shows
// the open category on top. Only the themes section is interactive.
type Settings struct {
	env      *Env
	list     ListState
	open     string
	themes   []string
	themeSel int
}

// NewSettings creates the settings screen.
func NewSettings(env *Env) *Settings {
	return &Settings{
		env:    env,
		list:   NewListState(len(SettingsSections), settingsRowVisible),
		themes: style.ThemeIDs(),
	}
}

// OpenSection returns the id of the open section, or "".
func (s *Settings) OpenSection() string {
	return s.open
}

func (s *Settings) HandleEvent(e input.Event) bool {
	if p, ok := bottomTap(s.env.Layout(), e); ok {
		if p.Y >= settingsRowTop {
			if i, ok := s.list.RowAt((p.Y - settingsRowTop) / settingsRowHeight); ok {
				s.list.Select(i)
				s.open = SettingsSections[i].ID
			}
		}
		return true
	}

	if input.IsBack(e) {
		if s.open != "" {
			s.open = ""
		} else {
			s.env.Nav.Pop()
		}
		return true
	}

	if s.open == "themes" {
		return s.handleThemes(e)
	}

	switch {
	case input.IsPress(e, input.ButtonUp):
		s.move(-1)
	case input.IsPress(e, input.ButtonDown):
		s.move(1)
	case input.IsConfirm(e):
		s.open = SettingsSections[s.list.Selected].ID
	default:
		return false
	}
	return true
}

// move steps the list selection. An open section follows the selection.
func (s *Settings) move(delta int) {
	s.list.Move(delta)
	if s.open != "" {
		s.open = SettingsSections[s.list.Selected].ID
	}
}

func (s *Settings) handleThemes(e input.Event) bool {
	switch {
	case input.IsPress(e, input.ButtonUp):
		s.themeSel = max(s.themeSel-1, 0)
	case input.IsPress(e, input.ButtonDown):
		s.themeSel = min(s.themeSel+1, len(s.themes)-1)
	case input.IsConfirm(e):
		id := s.themes[s.themeSel]
		if s.env.OnTheme != nil {
			s.env.OnTheme(id)
		}
		theme, _ := style.ThemeByID(id)
		s.env.toast(fmt.Sprintf("Theme changed to %s", theme.Name))
	default:
		return false
	}
	return true
}

func (s *Settings) Update(dt time.Duration) {}

func (s *Settings) Render(top, bottom *image.RGBA, theme style.Theme) {
	s.renderTop(top, theme)
	s.renderBottom(bottom, theme)
}

func (s *Settings) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Light)
	title := style.BoldFace(style.FontTitle)
	medium := style.Face(style.FontMedium)

	if s.open == "" {
		style.DrawText(dst, "Settings", 20, 20, title, theme.Dark)
		style.DrawText(dst, "Select a category on the bottom screen", 20, 60, medium, theme.Gray)
		return
	}

	section := SettingsSections[s.list.Selected]
	style.DrawText(dst, section.Title, 20, 20, title, theme.Dark)

	switch s.open {
	case "themes":
		for i, id := range s.themes {
			t, _ := style.ThemeByID(id)
			y := 70 + i*40
			row := image.Rect(20, y, 380, y+32)
			if i == s.themeSel {
				style.FillRect(dst, row, theme.Primary)
			}
			style.FillRect(dst, image.Rect(row.Max.X-40, y+6, row.Max.X-10, y+26), t.Primary)
			label := t.Name
			if id == theme.ID {
				label += " (current)"
			}
			style.DrawText(dst, label, 30, y+7, medium, theme.Dark)
		}
	case "about":
		style.DrawText(dst, "duoscreen", 20, 70, medium, theme.Dark)
		w, h := s.env.Layout().WindowSize()
		style.DrawText(dst, fmt.Sprintf("Window %dx%d", w, h), 20, 96, medium, theme.Gray)
	default:
		style.DrawText(dst, section.Title+" settings are not available", 20, 70, medium, theme.Gray)
	}
	style.DrawText(dst, "Press B to go back", 20, dst.Bounds().Dy()-30, style.Face(style.FontSmall), theme.Gray)
}

func (s *Settings) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.White)
	w := dst.Bounds().Dx()
	medium := style.Face(style.FontMedium)

	start, end := s.list.Visible()
	for i := start; i < end; i++ {
		y := settingsRowTop + (i-start)*settingsRowHeight
		row := image.Rect(10, y, w-10, y+settingsRowHeight-4)
		fg := theme.Dark
		if i == s.list.Selected {
			style.FillRect(dst, row, theme.Primary)
			fg = theme.White
		}
		style.DrawText(dst, SettingsSections[i].Title, row.Min.X+8, y+5, medium, fg)
	}
}
