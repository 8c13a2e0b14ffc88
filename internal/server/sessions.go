package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/conversation"
)

var (
	errUnknownSession = errors.New("unknown or expired session")
	errSessionLimit   = errors.New("too many live chat sessions, try again later")
)

type chatSession struct {
	conv     *conversation.Session
	lastSeen time.Time
}

// sessionStore maps chat session ids to conversations. A conversation is
// only touched while mu is held.
type sessionStore struct {
	mu       sync.Mutex
	cal      calendar.Provider
	limit    int
	sessions map[string]*chatSession
}

func newSessionStore(cal calendar.Provider, limit int) *sessionStore {
	return &sessionStore{
		cal:      cal,
		limit:    limit,
		sessions: make(map[string]*chatSession),
	}
}

func (st *sessionStore) setLimit(n int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.limit = n
}

// handle feeds text to the session with the given id. An empty id starts a
// new session unless limit sessions are already live.
func (st *sessionStore) handle(id, text string, defaultBuffer float64) (string, conversation.Reply, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.cal.Clock.Now()
	if id == "" {
		if len(st.sessions) >= st.limit {
			return "", conversation.Reply{}, errSessionLimit
		}
		id = uuid.NewString()
		st.sessions[id] = &chatSession{conv: conversation.NewSession(st.cal, defaultBuffer)}
	}
	cs, found := st.sessions[id]
	if !found {
		return "", conversation.Reply{}, errUnknownSession
	}

	cs.conv.SetDefaultBuffer(defaultBuffer)
	cs.lastSeen = now
	return id, cs.conv.Handle(text), nil
}

// sweep removes sessions idle for longer than ttl and returns how many it
// removed.
func (st *sessionStore) sweep(ttl time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.cal.Clock.Now().Add(-ttl)
	removed := 0
	for id, cs := range st.sessions {
		if cs.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
