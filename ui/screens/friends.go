package screens

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/style"
)

// Friend list geometry on the bottom surface
const (
	friendsRowTop     = 40
	friendsRowHeight  = style.ListItemHeight
	friendsRowVisible = 5
)

// Friends lists the user's friends on the bottom surface. A opens the
// selected friend's profile on top, X starts a chat.
type Friends struct {
	env         *Env
	friends     []social.Friend
	list        ListState
	showProfile bool
}

// NewFriends creates the friends screen and loads the list from the store.
func NewFriends(env *Env) *Friends {
	f := &Friends{env: env}
	if env.Store != nil {
		friends, err := env.Store.Friends(context.Background(), env.UserID)
		if err != nil {
			log.Printf("failed to load friends: %v", err)
		}
		f.friends = friends
	}
	f.list = NewListState(len(f.friends), friendsRowVisible)
	return f
}

// Selected returns the highlighted friend.
func (f *Friends) Selected() (social.Friend, bool) {
	if len(f.friends) == 0 {
		return social.Friend{}, false
	}
	return f.friends[f.list.Selected], true
}

// ShowingProfile reports whether the profile view is open.
func (f *Friends) ShowingProfile() bool {
	return f.showProfile
}

func (f *Friends) HandleEvent(e input.Event) bool {
	if p, ok := bottomTap(f.env.Layout(), e); ok {
		if p.Y >= friendsRowTop {
			if i, ok := f.list.RowAt((p.Y - friendsRowTop) / friendsRowHeight); ok {
				f.list.Select(i)
				f.showProfile = true
			}
		}
		return true
	}

	switch {
	case input.IsBack(e):
		if f.showProfile {
			f.showProfile = false
		} else {
			f.env.Nav.Pop()
		}
	case input.IsPress(e, input.ButtonUp):
		f.list.Move(-1)
	case input.IsPress(e, input.ButtonDown):
		f.list.Move(1)
	case input.IsConfirm(e):
		if len(f.friends) > 0 {
			f.showProfile = !f.showProfile
		}
	case input.IsPress(e, input.ButtonX):
		if friend, ok := f.Selected(); ok {
			f.env.Nav.Push(NewChat(f.env, &friend))
		}
	default:
		return false
	}
	return true
}

func (f *Friends) Update(dt time.Duration) {}

func (f *Friends) Render(top, bottom *image.RGBA, theme style.Theme) {
	f.renderTop(top, theme)
	f.renderBottom(bottom, theme)
}

func (f *Friends) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Light)
	title := style.BoldFace(style.FontTitle)
	medium := style.Face(style.FontMedium)

	friend, ok := f.Selected()
	if !f.showProfile || !ok {
		style.DrawText(dst, "Friends", 20, 20, title, theme.Dark)
		online := 0
		for _, fr := range f.friends {
			if fr.Online() {
				online++
			}
		}
		style.DrawText(dst, fmt.Sprintf("%d of %d online", online, len(f.friends)), 20, 60, medium, theme.Gray)
		style.DrawText(dst, "A: profile   X: chat   B: back", 20, dst.Bounds().Dy()-30, style.Face(style.FontSmall), theme.Gray)
		return
	}

	card := image.Rect(40, 60, dst.Bounds().Dx()-40, 300)
	style.FillRoundRect(dst, card, 12, theme.White)
	style.FillCircle(dst, image.Pt(card.Min.X+80, card.Min.Y+80), 50, theme.Primary)
	if f.env.Icons != nil {
		style.Blit(dst, f.env.Icons.Render(style.IconUser, 48, theme.White), image.Pt(card.Min.X+56, card.Min.Y+56))
	}
	style.DrawText(dst, friend.Name, card.Min.X+160, card.Min.Y+40, title, theme.Dark)
	statusColor := theme.Offline
	if friend.Online() {
		statusColor = theme.Online
	}
	style.FillCircle(dst, image.Pt(card.Min.X+168, card.Min.Y+90), 6, statusColor)
	style.DrawText(dst, friend.StatusLabel(), card.Min.X+182, card.Min.Y+82, medium, theme.Dark)
	style.DrawText(dst, "Press X to chat", card.Min.X+160, card.Min.Y+130, medium, theme.Gray)
}

func (f *Friends) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.White)
	w := dst.Bounds().Dx()
	medium := style.Face(style.FontMedium)
	style.DrawText(dst, "Friends", 10, 10, style.BoldFace(style.FontMedium), theme.Dark)

	if len(f.friends) == 0 {
		style.DrawText(dst, "No friends yet", 10, friendsRowTop+10, medium, theme.Gray)
		return
	}

	start, end := f.list.Visible()
	for i := start; i < end; i++ {
		fr := f.friends[i]
		y := friendsRowTop + (i-start)*friendsRowHeight
		row := image.Rect(5, y+2, w-5, y+friendsRowHeight-2)
		fg := theme.Dark
		if i == f.list.Selected {
			style.FillRect(dst, row, theme.Primary)
			fg = theme.White
		}
		statusColor := theme.Offline
		if fr.Online() {
			statusColor = theme.Online
		}
		style.FillCircle(dst, image.Pt(row.Min.X+15, y+friendsRowHeight/2), 6, statusColor)
		style.DrawText(dst, fr.Name, row.Min.X+30, y+11, medium, fg)
		style.DrawTextRight(dst, fr.StatusLabel(), row.Max.X-8, y+13, style.Face(style.FontSmall), fg)
	}
}
