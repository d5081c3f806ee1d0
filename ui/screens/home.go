package screens

import (
	"image"
	"log"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/ui/notify"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
	"github.com/user-none/duoscreen/ui/widgets"
)

// Quick bar slots on the bottom surface, left to right
const (
	barFriends = iota
	barNotifications
	barBrowser
	barMenu
	barSlots
)

var barIcons = [barSlots]string{style.IconFriends, style.IconBell, style.IconBrowser, style.IconMenu}

// Home is the root screen: a status bar and app preview on top, a quick bar
// and app grid on the bottom.
type Home struct {
	env      *Env
	apps     []AppInfo
	selected int
	quick    *widgets.QuickMenu

	showNotifications bool
}

// NewHomeFactory returns a root screen builder for the navigation stack.
// The Env's Navigator is bound to the stack building the screen.
func NewHomeFactory(env *Env) func(types.Navigator) types.Screen {
	return func(nav types.Navigator) types.Screen {
		env.Nav = nav
		return NewHome(env)
	}
}

// NewHome creates the home screen.
func NewHome(env *Env) *Home {
	return &Home{
		env:   env,
		apps:  env.Registry.Apps(),
		quick: widgets.NewQuickMenu(env.Layout(), env.Volume, env.Brightness, env.Levels),
	}
}

// Selected returns the highlighted grid index.
func (h *Home) Selected() int {
	return h.selected
}

// QuickMenu returns the home screen's quick settings overlay.
func (h *Home) QuickMenu() *widgets.QuickMenu {
	return h.quick
}

func (h *Home) HandleEvent(e input.Event) bool {
	if h.quick.Visible() {
		return h.quick.HandleEvent(e)
	}

	if local, ok := bottomTap(h.env.Layout(), e); ok {
		h.handleTouch(local)
		return true
	}

	last := len(h.apps) - 1
	switch {
	case input.IsPress(e, input.ButtonDown):
		h.selected = min(h.selected+style.GridColumns, last)
	case input.IsPress(e, input.ButtonUp):
		h.selected = max(h.selected-style.GridColumns, 0)
	case input.IsPress(e, input.ButtonLeft):
		h.selected = max(h.selected-1, 0)
	case input.IsPress(e, input.ButtonRight):
		h.selected = min(h.selected+1, last)
	case input.IsConfirm(e):
		h.launchSelected()
	default:
		return false
	}
	return true
}

func (h *Home) handleTouch(p image.Point) {
	l := h.env.Layout()

	if p.Y < style.QuickBarHeight {
		switch p.X / (l.BottomWidth / barSlots) {
		case barFriends:
			h.launch(AppFriends)
		case barNotifications:
			h.showNotifications = !h.showNotifications
		case barBrowser:
			h.launch(AppBrowser)
		case barMenu:
			h.quick.Toggle()
		}
		return
	}

	if p.Y > style.GridTop {
		col := p.X / (l.BottomWidth / style.GridColumns)
		row := (p.Y - style.GridTop) / style.GridCellHeight
		index := row*style.GridColumns + col
		if col < style.GridColumns && index < len(h.apps) {
			h.selected = index
			h.launchSelected()
		}
	}
}

func (h *Home) launchSelected() {
	if h.selected >= 0 && h.selected < len(h.apps) {
		h.launch(h.apps[h.selected].ID)
	}
}

func (h *Home) launch(id string) {
	log.Printf("Launching app: %s", id)
	if !h.env.Registry.Launch(h.env, id) {
		log.Printf("Warning: app %s is not registered", id)
	}
}

func (h *Home) Update(dt time.Duration) {}

func (h *Home) Render(top, bottom *image.RGBA, theme style.Theme) {
	h.renderTop(top, theme)
	h.renderBottom(bottom, theme)
}

func (h *Home) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Light)
	w := dst.Bounds().Dx()
	ht := dst.Bounds().Dy()

	// Status bar
	style.FillRect(dst, image.Rect(0, 0, w, style.StatusBarHeight), theme.Primary)
	medium := style.Face(style.FontMedium)
	style.DrawText(dst, style.FormatClock(h.env.now()), 10, 6, medium, theme.White)
	if h.env.Icons != nil {
		style.Blit(dst, h.env.Icons.Render(style.IconWifi, 20, theme.White), image.Pt(w-80, 5))
		style.Blit(dst, h.env.Icons.Render(style.IconBluetooth, 20, theme.White), image.Pt(w-40, 5))
	}

	if h.showNotifications {
		h.renderNotifications(dst, theme)
		return
	}

	if h.selected < 0 || h.selected >= len(h.apps) {
		return
	}
	app := h.apps[h.selected]
	preview := image.Rect(w/8, 100, w-w/8, ht-80)
	style.FillRect(dst, preview, theme.White)
	style.StrokeRect(dst, preview, theme.Primary, 3)

	cx := (preview.Min.X + preview.Max.X) / 2
	cy := (preview.Min.Y + preview.Max.Y) / 2
	if h.env.Icons != nil {
		style.Blit(dst, h.env.Icons.Render(app.Icon, 64, theme.Primary), image.Pt(cx-32, cy-40-32))
	}
	nameRect := image.Rect(preview.Min.X, cy+28, preview.Max.X, cy+52)
	style.DrawTextCentered(dst, app.Name, nameRect, style.BoldFace(style.FontLarge), theme.Dark)
}

func (h *Home) renderNotifications(dst *image.RGBA, theme style.Theme) {
	title := style.BoldFace(style.FontLarge)
	small := style.Face(style.FontMedium)
	style.DrawText(dst, "Notifications", 20, 50, title, theme.Dark)

	var history []string
	if h.env.Notify != nil {
		history = h.env.Notify.History()
	}
	if len(history) == 0 {
		style.DrawText(dst, "No notifications", 20, 90, small, theme.Gray)
		return
	}
	y := 90
	for i := len(history) - 1; i >= 0 && y < dst.Bounds().Dy()-30; i-- {
		style.DrawText(dst, style.FitText(history[i], small, dst.Bounds().Dx()-40), 20, y, small, theme.Dark)
		y += 26
	}
}

func (h *Home) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Secondary)

	if h.quick.Visible() {
		h.quick.Render(dst, theme)
		return
	}

	w := dst.Bounds().Dx()
	style.FillRect(dst, image.Rect(0, 0, w, style.QuickBarHeight), theme.Dark)

	slotWidth := w / barSlots
	for i, icon := range barIcons {
		cx := slotWidth*i + slotWidth/2
		if h.env.Icons != nil {
			style.Blit(dst, h.env.Icons.Render(icon, 20, theme.White), image.Pt(cx-10, style.QuickBarHeight/2-10))
		}
		if i == barNotifications && h.env.Notify != nil {
			notify.DrawBadge(dst, image.Pt(cx+12, 9), h.env.Notify.TotalBadges(), theme)
		}
	}

	cellWidth := w / style.GridColumns
	small := style.Face(style.FontSmall)
	for i, app := range h.apps {
		x := (i % style.GridColumns) * cellWidth
		y := style.GridTop + (i/style.GridColumns)*style.GridCellHeight
		cx := x + cellWidth/2
		cy := y + style.GridCellHeight/2

		if i == h.selected {
			style.StrokeRect(dst, image.Rect(x+2, y+2, x+cellWidth-2, y+style.GridCellHeight-2), theme.Primary, 3)
		}
		if h.env.Icons != nil {
			style.Blit(dst, h.env.Icons.Render(app.Icon, 28, theme.Dark), image.Pt(cx-14, cy-15-14))
		}
		style.DrawTextCentered(dst, app.Name, image.Rect(x, cy+12, x+cellWidth, cy+28), small, theme.Dark)
		if h.env.Notify != nil {
			notify.DrawBadge(dst, image.Pt(cx+18, cy-28), h.env.Notify.Badge(app.ID), theme)
		}
	}
}
