package screens

import (
	"image"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/widgets"
)

// Browser layout on the bottom surface
var browserURLBar = image.Rect(10, 10, 310, 35)

const (
	browserBookmarkTop    = 50
	browserBookmarkHeight = 30
	browserMaxSuggestions = 5
	browserURLChars       = 45
)

// Browser shows a placeholder page on top and the URL bar and bookmarks on
// the bottom. Pages are not fetched or rendered.
type Browser struct {
	env       *Env
	url       string
	history   []string
	bookmarks []string
	keyboard  *widgets.Keyboard
}

// NewBrowser creates the browser screen.
func NewBrowser(env *Env) *Browser {
	bookmarks := env.Bookmarks
	if len(bookmarks) == 0 {
		bookmarks = DefaultBookmarks
	}
	return &Browser{
		env:       env,
		bookmarks: bookmarks,
		keyboard:  widgets.NewKeyboard(env.Layout()),
	}
}

// URL returns the loaded address.
func (b *Browser) URL() string {
	return b.url
}

// History returns loaded addresses, oldest first.
func (b *Browser) History() []string {
	return b.history
}

// Keyboard returns the URL entry keyboard.
func (b *Browser) Keyboard() *widgets.Keyboard {
	return b.keyboard
}

// Load navigates to raw. Blank input is ignored and a missing scheme
// defaults to https.
func (b *Browser) Load(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	b.url = raw
	b.history = append(b.history, raw)
}

// Suggestions ranks bookmarks and history against query, best match first.
func (b *Browser) Suggestions(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	seen := make(map[string]bool)
	var targets []string
	for _, list := range [][]string{b.bookmarks, b.history} {
		for _, u := range list {
			if !seen[u] {
				seen[u] = true
				targets = append(targets, u)
			}
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Sort(ranks)
	out := make([]string, 0, min(len(ranks), browserMaxSuggestions))
	for _, r := range ranks {
		if len(out) == browserMaxSuggestions {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

func (b *Browser) HandleEvent(e input.Event) bool {
	if b.keyboard.Visible() {
		return b.keyboard.HandleEvent(e)
	}

	if p, ok := bottomTap(b.env.Layout(), e); ok {
		if p.In(browserURLBar) {
			b.editURL()
			return true
		}
		for i, u := range b.bookmarks {
			if p.In(bookmarkRect(i)) {
				b.Load(u)
				break
			}
		}
		return true
	}

	switch {
	case input.IsBack(e):
		b.env.Nav.Pop()
	case input.IsConfirm(e):
		b.editURL()
	default:
		return false
	}
	return true
}

func (b *Browser) editURL() {
	b.keyboard.Show(b.url, b.Load)
}

func bookmarkRect(i int) image.Rectangle {
	y := browserBookmarkTop + i*browserBookmarkHeight
	return image.Rect(10, y, 310, y+25)
}

func (b *Browser) Update(dt time.Duration) {}

func (b *Browser) Render(top, bottom *image.RGBA, theme style.Theme) {
	b.renderTop(top, theme)
	b.renderBottom(bottom, theme)
}

func (b *Browser) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.White)
	title := style.BoldFace(style.FontTitle)
	medium := style.Face(style.FontMedium)

	if b.keyboard.Visible() {
		style.DrawText(dst, "Suggestions", 20, 20, title, theme.Dark)
		y := 70
		for _, s := range b.Suggestions(b.keyboard.Text()) {
			style.DrawText(dst, s, 20, y, medium, theme.Primary)
			y += 30
		}
		return
	}

	if b.url == "" {
		style.DrawText(dst, "Browser", 20, 20, title, theme.Dark)
		style.DrawText(dst, "Enter a URL or pick a bookmark", 20, 60, medium, theme.Gray)
		return
	}

	style.FillRect(dst, image.Rect(0, 0, dst.Bounds().Dx(), 40), theme.Light)
	shown, _ := style.TruncateStart(b.url, browserURLChars*2)
	style.DrawText(dst, shown, 20, 12, medium, theme.Dark)
	style.DrawText(dst, "Loading: "+b.url, 20, 80, title, theme.Dark)
	style.DrawText(dst, "Web rendering is not available on this device", 20, 120, medium, theme.Gray)
}

func (b *Browser) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Light)
	if b.keyboard.Visible() {
		b.keyboard.Render(dst, theme)
		return
	}

	small := style.Face(style.FontSmall)
	style.FillRect(dst, browserURLBar, theme.White)
	style.StrokeRect(dst, browserURLBar, theme.Secondary, 1)
	if b.url == "" {
		style.DrawText(dst, "Enter URL...", browserURLBar.Min.X+6, browserURLBar.Min.Y+6, small, theme.Gray)
	} else {
		shown, _ := style.TruncateStart(b.url, browserURLChars)
		style.DrawText(dst, shown, browserURLBar.Min.X+6, browserURLBar.Min.Y+6, small, theme.Dark)
	}

	for i, u := range b.bookmarks {
		r := bookmarkRect(i)
		if r.Max.Y > dst.Bounds().Dy() {
			break
		}
		style.FillRect(dst, r, theme.Primary)
		label, _ := style.TruncateEnd(strings.TrimPrefix(u, "https://"), browserURLChars)
		style.DrawText(dst, label, r.Min.X+8, r.Min.Y+6, small, theme.White)
	}
}
