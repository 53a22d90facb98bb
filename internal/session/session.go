// Package session tracks per-user conversation state. Sessions live for the
// process lifetime: they are created lazily on first contact and replaced
// only when a finished conversation receives a new message.
package session

import (
	"sync"

	"github.com/dateindesert/desertbot/internal/catalog"
)

// State identifies a step of the booking dialogue.
type State string

const (
	// StateGreeting is the initial state of every new session.
	StateGreeting State = "greeting"
	// StateCollectAll waits for the four-line contact details message.
	StateCollectAll State = "collect_all"
	// StateShowEvents waits for an event selection by number or name.
	StateShowEvents State = "show_events"
	// StateVerifyAge waits for an age confirmation for a restricted event.
	StateVerifyAge State = "verify_age"
	// StateUnderage waits for the follow-up choice after an age rejection.
	StateUnderage State = "underage_response"
	// StateEventOptions waits for the book / show another / question choice.
	StateEventOptions State = "event_options"
	// StateEnd marks a finished conversation; the next inbound message
	// replaces the session with a fresh one.
	StateEnd State = "end"
)

// Valid reports whether s is a member of the dialogue state set.
func (s State) Valid() bool {
	switch s {
	case StateGreeting, StateCollectAll, StateShowEvents,
		StateVerifyAge, StateUnderage, StateEventOptions, StateEnd:
		return true
	}
	return false
}

// Session is the mutable per-user conversation record. It references the
// selected catalog event by identity and never copies event data.
type Session struct {
	UserID  string
	State   State
	Greeted bool

	Name   string
	Phone  string
	Email  string
	Gender string

	SelectedEvent *catalog.Event
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

// Store owns all sessions, keyed by the transport's user identifier.
// Acquire serializes message processing per user; distinct users never
// contend. Sessions are never evicted by timeout.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) entryFor(userID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{sess: &Session{UserID: userID, State: StateGreeting}}
		s.entries[userID] = e
	}
	return e
}

// Acquire returns the session for userID, creating it in the greeting state
// if absent, and holds the per-user lock until the returned release
// function is called. Callers must release exactly once.
func (s *Store) Acquire(userID string) (*Session, func()) {
	e := s.entryFor(userID)
	e.mu.Lock()
	return e.sess, e.mu.Unlock
}

// Reset replaces the user's session with a fresh one that has already been
// greeted, per the terminal-state rule. The caller must hold the user's
// lock obtained via Acquire; the fresh session is returned for immediate
// use within the same critical section.
func (s *Store) Reset(userID string) *Session {
	e := s.entryFor(userID)
	e.sess = &Session{UserID: userID, State: StateGreeting, Greeted: true}
	return e.sess
}

// Len reports the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
