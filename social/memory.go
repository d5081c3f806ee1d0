package social

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DemoFriendID is the friend the demo conversation is held with.
const DemoFriendID = "1"

// MemoryStore keeps everything in memory. It backs the screens when no
// database is configured and seeds a demo friends list and conversation.
type MemoryStore struct {
	mu       sync.Mutex
	now      func() time.Time
	friends  map[string][]Friend
	status   map[string]string
	messages []Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		friends: make(map[string][]Friend),
		status:  make(map[string]string),
	}
}

// NewDemoStore creates an in-memory store seeded for userID.
func NewDemoStore(userID string) *MemoryStore {
	s := NewMemoryStore()
	s.friends[userID] = []Friend{
		{ID: "1", Name: "Player1", Status: StatusOnline},
		{ID: "2", Name: "Player2", Status: StatusOffline},
		{ID: "3", Name: "Player3", Status: StatusOnline},
	}

	base := time.Date(2024, 1, 1, 10, 30, 0, 0, time.Local)
	seed := []struct {
		fromMe bool
		body   string
	}{
		{false, "Hey! How are you?"},
		{true, "Good! Just playing some games."},
		{false, "Nice! Want to play together?"},
	}
	for i, m := range seed {
		msg := Message{
			ID:       uuid.NewString(),
			Sender:   DemoFriendID,
			Receiver: userID,
			Body:     m.body,
			SentAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if m.fromMe {
			msg.Sender, msg.Receiver = userID, DemoFriendID
		}
		s.messages = append(s.messages, msg)
	}
	return s
}

func (s *MemoryStore) Friends(ctx context.Context, userID string) ([]Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Friend, len(s.friends[userID]))
	copy(out, s.friends[userID])
	for i := range out {
		if st, ok := s.status[out[i].ID]; ok {
			out[i].Status = st
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) AddFriend(ctx context.Context, userID, friendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.friends[userID] {
		if f.ID == friendID {
			return nil
		}
	}
	s.friends[userID] = append(s.friends[userID], Friend{ID: friendID, Name: friendID, Status: StatusOffline})
	return nil
}

func (s *MemoryStore) Messages(ctx context.Context, userID, friendID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Message
	for _, m := range s.messages {
		if (m.Sender == userID && m.Receiver == friendID) || (m.Sender == friendID && m.Receiver == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) SendMessage(ctx context.Context, sender, receiver, body string) (Message, error) {
	body, err := validateBody(body)
	if err != nil {
		return Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:       uuid.NewString(),
		Sender:   sender,
		Receiver: receiver,
		Body:     body,
		SentAt:   s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, userID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[userID] = status
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
