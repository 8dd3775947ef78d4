package booking

import (
	"context"
	"sync"

	"allyoucangym/internal/session"
	"allyoucangym/internal/user"
)

// memStore keeps sessions and users in memory and applies the same guarded
// update the SQL repository uses, under a single lock.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	users    map[string]*user.User
}

func newMemStore() *memStore {
	return &memStore{
		sessions: map[string]*session.Session{},
		users:    map[string]*user.User{},
	}
}

func (m *memStore) addSession(id string, capacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session.Session{ID: id, Name: "session " + id, Capacity: capacity}
}

func (m *memStore) addUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = &user.User{ID: id, Username: "user " + id, Email: id + "@example.com"}
}

func copySession(s *session.Session) *session.Session {
	cp := *s
	cp.Participants = append([]string(nil), s.Participants...)
	return &cp
}

func (m *memStore) GetByID(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return copySession(s), nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	cp.BookedSessions = append([]string(nil), u.BookedSessions...)
	return &cp, nil
}

func (m *memStore) AddParticipant(_ context.Context, userID, sessionID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if s.IsFull() {
		return nil, ErrSessionFull
	}
	if s.HasParticipant(userID) {
		return nil, ErrAlreadyBooked
	}
	s.Participants = append(s.Participants, userID)
	u.BookedSessions = append(u.BookedSessions, sessionID)
	return copySession(s), nil
}

func (m *memStore) RemoveParticipant(_ context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.Participants = without(s.Participants, userID)
	}
	if u, ok := m.users[userID]; ok {
		u.BookedSessions = without(u.BookedSessions, sessionID)
	}
	return nil
}

func (m *memStore) ListUserSessions(_ context.Context, userID string) ([]session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []session.Session{}
	for _, id := range m.users[userID].BookedSessions {
		if s, ok := m.sessions[id]; ok {
			out = append(out, *copySession(s))
		}
	}
	return out, nil
}

func without(list []string, v string) []string {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// consistent reports whether every participant has the session booked and
// every booked session lists the user, and no session exceeds capacity.
func (m *memStore) consistent() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, s := range m.sessions {
		if len(s.Participants) > s.Capacity {
			return false, "session " + sid + " over capacity"
		}
		seen := map[string]bool{}
		for _, uid := range s.Participants {
			if seen[uid] {
				return false, "duplicate participant " + uid + " in " + sid
			}
			seen[uid] = true
			if !contains(m.users[uid].BookedSessions, sid) {
				return false, "user " + uid + " missing booked session " + sid
			}
		}
	}
	for uid, u := range m.users {
		for _, sid := range u.BookedSessions {
			if !m.sessions[sid].HasParticipant(uid) {
				return false, "session " + sid + " missing participant " + uid
			}
		}
	}
	return true, ""
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
