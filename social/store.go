// Package social stores the friends list and chat messages shown by the
// friends and chat screens.
package social

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Presence values
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// ErrEmptyMessage is returned when sending a blank message.
var ErrEmptyMessage = errors.New("social: empty message")

// Friend is one entry of a user's friends list.
type Friend struct {
	ID     string
	Name   string
	Status string
}

// Online reports whether the friend is currently online.
func (f Friend) Online() bool {
	return f.Status == StatusOnline
}

// StatusLabel returns the capitalized presence for display.
func (f Friend) StatusLabel() string {
	if f.Status == "" {
		return "Offline"
	}
	return strings.ToUpper(f.Status[:1]) + f.Status[1:]
}

// Message is one chat message between two users.
type Message struct {
	ID       string
	Sender   string
	Receiver string
	Body     string
	SentAt   time.Time
}

// Store is the backend the friends and chat screens read from.
type Store interface {
	// Friends returns the user's friends ordered by name.
	Friends(ctx context.Context, userID string) ([]Friend, error)
	// AddFriend records a pending friendship.
	AddFriend(ctx context.Context, userID, friendID string) error
	// Messages returns the conversation between two users, oldest first.
	Messages(ctx context.Context, userID, friendID string) ([]Message, error)
	// SendMessage stores a message and returns it with its id and time set.
	SendMessage(ctx context.Context, sender, receiver, body string) (Message, error)
	// SetStatus updates the user's presence.
	SetStatus(ctx context.Context, userID, status string) error
	Close() error
}

func validateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyMessage
	}
	return body, nil
}

// Open returns a SQLite-backed store for a non-empty database path, or the
// seeded demo store when no database is configured.
func Open(database, userID string) (Store, error) {
	if database == "" {
		return NewDemoStore(userID), nil
	}
	s, err := OpenSQLStore(database)
	if err != nil {
		return nil, err
	}
	return s, nil
}
