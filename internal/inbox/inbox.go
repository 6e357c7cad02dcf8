package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrEmptyField   = errors.New("empty field")
	ErrInvalidEmail = errors.New("invalid email")
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate trims the fields and checks that all of them are present.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name", ErrEmptyField)
	case m.Email == "":
		return fmt.Errorf("%w: email", ErrEmptyField)
	case m.Body == "":
		return fmt.Errorf("%w: message", ErrEmptyField)
	}
	if at := strings.IndexByte(m.Email, '@'); at <= 0 || at == len(m.Email)-1 {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, m.Email)
	}
	return nil
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the sqlite database at path. ":memory:" gives a
// private in-memory inbox.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open inbox: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add validates and stores m, returning the new row id.
func (s *Store) Add(ctx context.Context, m Message) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (name, email, body, created_at) VALUES (?, ?, ?, ?)`,
		m.Name, m.Email, m.Body, m.CreatedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit messages, newest first. A limit of zero or less
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Message, error) {
	query := `SELECT id, name, email, body, created_at FROM messages ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]Message, 0)
	for rows.Next() {
		var m Message
		var created int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(0, created)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}
