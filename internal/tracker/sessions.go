package tracker

import (
	"time"

	"github.com/sadopc/cardfile/internal/store"
)

// sessionDocument is the persisted shape: an append-only history plus at
// most one current session.
type sessionDocument struct {
	History []Session `json:"history"`
	Current *Session  `json:"current_session,omitempty"`
}

// Sessions tracks interactive sessions with the tracker.
type Sessions struct {
	db  *store.Store
	now func() time.Time
}

func NewSessions(db *store.Store) *Sessions {
	return &Sessions{db: db, now: time.Now}
}

func (s *Sessions) load() (sessionDocument, error) {
	doc := sessionDocument{History: []Session{}}
	err := s.db.Load(store.DocSessions, &doc)
	return doc, err
}

// Current returns the active session, or nil when none is running.
func (s *Sessions) Current() (*Session, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Current, nil
}

// Start begins a new session, archiving any session still marked current.
func (s *Sessions) Start(sessionType SessionType, context map[string]string) (*Session, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	if doc.Current != nil {
		doc.History = append(doc.History, *doc.Current)
	}

	now := s.now()
	session := Session{
		ID:           newID(now),
		StartedAt:    now,
		LastActivity: now,
		Type:         sessionType,
		Context:      context,
	}
	doc.Current = &session

	if err := s.db.Save(store.DocSessions, doc); err != nil {
		return nil, err
	}
	return &session, nil
}

// End archives the current session. Ending with no session running is a
// no-op, not an error.
func (s *Sessions) End() error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Current != nil {
		doc.History = append(doc.History, *doc.Current)
		doc.Current = nil
	}
	return s.db.Save(store.DocSessions, doc)
}

// Touch refreshes the current session's last-activity stamp.
func (s *Sessions) Touch() error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Current == nil {
		return ErrNotFound
	}
	doc.Current.LastActivity = s.now()
	return s.db.Save(store.DocSessions, doc)
}
