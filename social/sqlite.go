package social

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    online_status TEXT NOT NULL DEFAULT 'offline'
);

CREATE TABLE IF NOT EXISTS friends (
    user_id TEXT NOT NULL,
    friend_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    PRIMARY KEY (user_id, friend_id)
);

CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    sender_id TEXT NOT NULL,
    receiver_id TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at INTEGER NOT NULL -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, receiver_id, created_at);
`

// SQLStore is a Store backed by a local SQLite database.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLStore opens (creating if needed) the database at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLStore{db: db, now: time.Now}, nil
}

// AddUser creates or renames a user.
func (s *SQLStore) AddUser(ctx context.Context, id, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`, id, name)
	if err != nil {
		return fmt.Errorf("add user %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Friends(ctx context.Context, userID string) ([]Friend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.friend_id, COALESCE(u.name, f.friend_id), COALESCE(u.online_status, 'offline')
		FROM friends f
		LEFT JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ?
		ORDER BY 2`, userID)
	if err != nil {
		return nil, fmt.Errorf("query friends: %w", err)
	}
	defer rows.Close()

	var out []Friend
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.ID, &f.Name, &f.Status); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLStore) AddFriend(ctx context.Context, userID, friendID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO friends (user_id, friend_id, status) VALUES (?, ?, 'pending')`,
		userID, friendID)
	if err != nil {
		return fmt.Errorf("add friend %s: %w", friendID, err)
	}
	return nil
}

func (s *SQLStore) Messages(ctx context.Context, userID, friendID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, message, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at, rowid`, userID, friendID, friendID, userID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var ts int64
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Body, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.SentAt = time.Unix(0, ts)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) SendMessage(ctx context.Context, sender, receiver, body string) (Message, error) {
	body, err := validateBody(body)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:       uuid.NewString(),
		Sender:   sender,
		Receiver: receiver,
		Body:     body,
		SentAt:   s.now(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Sender, msg.Receiver, msg.Body, msg.SentAt.UnixNano())
	if err != nil {
		return Message{}, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

func (s *SQLStore) SetStatus(ctx context.Context, userID, status string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET online_status = ? WHERE id = ?`, status, userID)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
