package screens

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/widgets"
)

// Chat layout
var chatSendButton = image.Rect(200, 200, 300, 230)

const (
	chatVisibleMessages = 8
	chatBubbleWidth     = 350
	chatBubbleHeight    = 30
	chatBubbleMaxChars  = 40
)

// Chat shows the conversation with one friend on top and the compose
// controls on the bottom. Messages are composed with the on-screen keyboard.
type Chat struct {
	env      *Env
	friend   social.Friend
	messages []social.Message
	keyboard *widgets.Keyboard
}

// NewChat creates a chat with friend. A nil friend opens the conversation
// with the first friend in the list.
func NewChat(env *Env, friend *social.Friend) *Chat {
	c := &Chat{
		env:      env,
		keyboard: widgets.NewKeyboard(env.Layout()),
	}
	switch {
	case friend != nil:
		c.friend = *friend
	case env.Store != nil:
		friends, err := env.Store.Friends(context.Background(), env.UserID)
		if err != nil {
			log.Printf("failed to load friends: %v", err)
		}
		if len(friends) > 0 {
			c.friend = friends[0]
		}
	}
	c.reload()
	return c
}

// Friend returns the other side of the conversation.
func (c *Chat) Friend() social.Friend {
	return c.friend
}

// Messages returns the loaded conversation, oldest first.
func (c *Chat) Messages() []social.Message {
	return c.messages
}

// Keyboard returns the compose keyboard.
func (c *Chat) Keyboard() *widgets.Keyboard {
	return c.keyboard
}

func (c *Chat) reload() {
	if c.env.Store == nil || c.friend.ID == "" {
		return
	}
	msgs, err := c.env.Store.Messages(context.Background(), c.env.UserID, c.friend.ID)
	if err != nil {
		log.Printf("failed to load messages: %v", err)
		return
	}
	c.messages = msgs
}

func (c *Chat) HandleEvent(e input.Event) bool {
	if c.keyboard.Visible() {
		return c.keyboard.HandleEvent(e)
	}

	if p, ok := bottomTap(c.env.Layout(), e); ok {
		if p.In(chatSendButton) {
			c.compose()
		}
		return true
	}

	switch {
	case input.IsBack(e):
		c.env.Nav.Pop()
	case input.IsConfirm(e):
		c.compose()
	default:
		return false
	}
	return true
}

func (c *Chat) compose() {
	c.keyboard.Show("", c.send)
}

func (c *Chat) send(body string) {
	if c.env.Store == nil || c.friend.ID == "" {
		return
	}
	msg, err := c.env.Store.SendMessage(context.Background(), c.env.UserID, c.friend.ID, body)
	if errors.Is(err, social.ErrEmptyMessage) {
		return
	}
	if err != nil {
		log.Printf("failed to send message: %v", err)
		c.env.toast("Message not sent")
		return
	}
	c.messages = append(c.messages, msg)
}

func (c *Chat) Update(dt time.Duration) {}

func (c *Chat) Render(top, bottom *image.RGBA, theme style.Theme) {
	c.renderTop(top, theme)
	c.renderBottom(bottom, theme)
}

func (c *Chat) renderTop(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.Light)
	medium := style.Face(style.FontMedium)
	small := style.Face(style.FontSmall)

	name := c.friend.Name
	if name == "" {
		name = "Chat"
	}
	style.FillRect(dst, image.Rect(0, 0, dst.Bounds().Dx(), 40), theme.Primary)
	style.DrawText(dst, name, 20, 10, style.BoldFace(style.FontLarge), theme.White)

	msgs := c.messages
	if len(msgs) > chatVisibleMessages {
		msgs = msgs[len(msgs)-chatVisibleMessages:]
	}
	y := 60
	for _, m := range msgs {
		fromMe := m.Sender == c.env.UserID
		x, bg, fg := 20, theme.White, theme.Dark
		if fromMe {
			x, bg, fg = 400, theme.Primary, theme.White
		}
		bubble := image.Rect(x, y, x+chatBubbleWidth, y+chatBubbleHeight)
		style.FillRoundRect(dst, bubble, 10, bg)
		body, _ := style.TruncateEnd(m.Body, chatBubbleMaxChars)
		style.DrawText(dst, body, x+10, y+7, medium, fg)
		style.DrawTextRight(dst, style.FormatClock(m.SentAt), bubble.Max.X-8, y+9, small, fg)
		y += chatBubbleHeight + 15
	}
}

func (c *Chat) renderBottom(dst *image.RGBA, theme style.Theme) {
	style.Fill(dst, theme.White)
	if c.keyboard.Visible() {
		c.keyboard.Render(dst, theme)
		return
	}

	medium := style.Face(style.FontMedium)
	style.DrawText(dst, "Type a message...", 20, 20, medium, theme.Gray)
	style.StrokeRect(dst, image.Rect(10, 10, dst.Bounds().Dx()-10, 45), theme.Secondary, 2)

	style.FillRoundRect(dst, chatSendButton, 6, theme.Primary)
	style.DrawTextCentered(dst, "Send", chatSendButton, style.BoldFace(style.FontMedium), theme.White)
}
