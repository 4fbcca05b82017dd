package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/timeutil"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("session not found")

// Session is a named, saved set of links.
type Session struct {
	SessionID   string          `json:"session_id"`
	Name        string          `json:"name"`
	Helpers     []string        `json:"helpers,omitempty"`
	LinkCount   int             `json:"link_count"`
	State       json.RawMessage `json:"state"`
	CreatedAtNs int64           `json:"created_at_ns"`
}

// SessionStore persists link sessions.
type SessionStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewSessionStore creates a SessionStore on an already migrated database.
func NewSessionStore(db *DB) *SessionStore {
	return NewSessionStoreWithClock(db, timeutil.RealClock{})
}

// NewSessionStoreWithClock is NewSessionStore with an injected clock for
// session timestamps.
func NewSessionStoreWithClock(db *DB, clock timeutil.Clock) *SessionStore {
	return &SessionStore{db: db.DB, clock: clock}
}

// SaveSession serializes links and stores them under a new id.
func (s *SessionStore) SaveSession(name string, links []*link.ComponentLink) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("session name is required")
	}
	state, err := link.MarshalLinks(links)
	if err != nil {
		return nil, fmt.Errorf("marshal links: %w", err)
	}

	session := &Session{
		SessionID:   uuid.New().String(),
		Name:        name,
		Helpers:     helperNames(links),
		LinkCount:   len(links),
		State:       state,
		CreatedAtNs: s.clock.Now().UnixNano(),
	}

	_, err = s.db.Exec(`
		INSERT INTO link_sessions (session_id, name, helpers, link_count, state_json, created_at_ns)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		session.SessionID,
		session.Name,
		nullString(strings.Join(session.Helpers, ",")),
		session.LinkCount,
		string(session.State),
		session.CreatedAtNs,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by id.
func (s *SessionStore) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(`
		SELECT session_id, name, helpers, link_count, state_json, created_at_ns
		FROM link_sessions
		WHERE session_id = ?
	`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SessionStore) ListSessions() ([]*Session, error) {
	rows, err := s.db.Query(`
		SELECT session_id, name, helpers, link_count, state_json, created_at_ns
		FROM link_sessions
		ORDER BY created_at_ns DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session.
func (s *SessionStore) DeleteSession(id string) error {
	result, err := s.db.Exec(`DELETE FROM link_sessions WHERE session_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// LoadLinks restores the links saved in a session.
func (s *SessionStore) LoadLinks(id string, resolver link.FuncResolver) ([]*link.ComponentLink, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	links, err := link.UnmarshalLinks(session.State, resolver)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return links, nil
}

func scanSession(scanner interface{ Scan(...any) error }) (*Session, error) {
	var session Session
	var helpers sql.NullString
	var state string
	if err := scanner.Scan(
		&session.SessionID,
		&session.Name,
		&helpers,
		&session.LinkCount,
		&state,
		&session.CreatedAtNs,
	); err != nil {
		return nil, err
	}
	if helpers.Valid && helpers.String != "" {
		session.Helpers = strings.Split(helpers.String, ",")
	}
	session.State = json.RawMessage(state)
	return &session, nil
}

// helperNames returns the distinct helpers referenced by links, sorted.
func helperNames(links []*link.ComponentLink) []string {
	seen := make(map[string]struct{})
	for _, l := range links {
		name := l.Using()
		if i := strings.LastIndex(name, "."); i > 0 {
			name = name[:i]
		}
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
