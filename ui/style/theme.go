package style

import (
	"image/color"
	"sort"
)

// Theme is an immutable color snapshot handed to every render call. Screens
// never read colors from package state, so switching themes only changes
// which value the host passes in.
type Theme struct {
	ID        string
	Name      string
	Primary   color.RGBA
	Secondary color.RGBA
	Light     color.RGBA
	Dark      color.RGBA

	Success color.RGBA
	Danger  color.RGBA
	Warning color.RGBA
	White   color.RGBA
	Black   color.RGBA
	Gray    color.RGBA
	Online  color.RGBA
	Offline color.RGBA
}

// Fixed palette entries shared by all themes
var (
	colorSuccess = color.RGBA{46, 204, 113, 255}
	colorDanger  = color.RGBA{231, 76, 60, 255}
	colorWarning = color.RGBA{241, 196, 15, 255}
	colorWhite   = color.RGBA{255, 255, 255, 255}
	colorBlack   = color.RGBA{0, 0, 0, 255}
	colorGray    = color.RGBA{127, 140, 141, 255}
	colorOffline = color.RGBA{149, 165, 166, 255}
)

func newTheme(id, name string, primary, secondary, light, dark color.RGBA) Theme {
	return Theme{
		ID:        id,
		Name:      name,
		Primary:   primary,
		Secondary: secondary,
		Light:     light,
		Dark:      dark,
		Success:   colorSuccess,
		Danger:    colorDanger,
		Warning:   colorWarning,
		White:     colorWhite,
		Black:     colorBlack,
		Gray:      colorGray,
		Online:    colorSuccess,
		Offline:   colorOffline,
	}
}

var themes = map[string]Theme{
	"default": newTheme("default", "Default Blue",
		color.RGBA{52, 152, 219, 255}, color.RGBA{149, 165, 166, 255},
		color.RGBA{236, 240, 241, 255}, color.RGBA{44, 62, 80, 255}),
	"dark": newTheme("dark", "Dark Mode",
		color.RGBA{41, 128, 185, 255}, color.RGBA{52, 73, 94, 255},
		color.RGBA{52, 73, 94, 255}, color.RGBA{23, 32, 42, 255}),
	"nintendo": newTheme("nintendo", "Nintendo Red",
		color.RGBA{230, 0, 18, 255}, color.RGBA{128, 128, 128, 255},
		color.RGBA{240, 240, 240, 255}, color.RGBA{64, 64, 64, 255}),
	"forest": newTheme("forest", "Forest Green",
		color.RGBA{39, 174, 96, 255}, color.RGBA{149, 165, 166, 255},
		color.RGBA{236, 240, 241, 255}, color.RGBA{34, 153, 84, 255}),
}

// DefaultTheme returns the default blue theme.
func DefaultTheme() Theme {
	return themes["default"]
}

// ThemeByID returns the theme with the given id.
func ThemeByID(id string) (Theme, bool) {
	t, ok := themes[id]
	return t, ok
}

// IsValidTheme checks if a theme id exists
func IsValidTheme(id string) bool {
	_, ok := themes[id]
	return ok
}

// ThemeIDs returns all theme ids with "default" first and the rest sorted.
func ThemeIDs() []string {
	ids := make([]string, 0, len(themes))
	for id := range themes {
		if id != "default" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return append([]string{"default"}, ids...)
}
