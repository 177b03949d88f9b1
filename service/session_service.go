package service

import (
	"context"
	"sync"
	"time"

	"github.com/geeta-ai/geeta-be/repository"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/google/uuid"
)

// Session is one user's working state: their document store and chat
// history. Access to the history goes through the session's own lock; the
// store synchronizes itself.
type Session struct {
	Store   *DocumentStore
	mu      sync.Mutex
	history []types.ChatEntry
}

// History returns a copy of the chat entries in insertion order.
func (s *Session) History() []types.ChatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ChatEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) appendEntry(entry types.ChatEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
}

func (s *Session) clearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// SessionService hands out per-user sessions, rehydrating them from the
// repository on first access and persisting them after mutations.
type SessionService struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	repo      repository.SessionRepo
	threshold int
}

func NewSessionService(repo repository.SessionRepo, largeFileThreshold int) *SessionService {
	return &SessionService{
		sessions:  make(map[string]*Session),
		repo:      repo,
		threshold: largeFileThreshold,
	}
}

// GetSession returns the user's session, loading persisted state on the
// first access. A user without saved state gets a fresh empty session.
func (s *SessionService) GetSession(ctx context.Context, username string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[username]; ok {
		return session, nil
	}

	session := &Session{Store: NewDocumentStore(s.threshold)}
	state, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	if state != nil {
		session.Store.Restore(state.Documents, state.Enabled)
		session.history = append(session.history, state.History...)
	}
	s.sessions[username] = session
	return session, nil
}

// SaveSession persists the session's current documents, enabled set and
// chat history.
func (s *SessionService) SaveSession(ctx context.Context, username string, session *Session) error {
	docs, enabled := session.Store.Snapshot()
	state := &types.SessionState{
		Username:  username,
		Documents: docs,
		Enabled:   enabled,
		History:   session.History(),
		UpdateAt:  time.Now().Unix(),
	}
	return s.repo.Save(ctx, state)
}

// RecordChat appends a question/answer pair to the session history and
// persists the session.
func (s *SessionService) RecordChat(ctx context.Context, username string, session *Session, question, answer string) error {
	session.appendEntry(types.ChatEntry{
		ID:               uuid.New().String(),
		Question:         question,
		Answer:           answer,
		EnabledFileCount: session.Store.EnabledCount(),
		CreatedAt:        time.Now().Unix(),
	})
	return s.SaveSession(ctx, username, session)
}

// ClearHistory drops the session's chat entries and persists the change.
func (s *SessionService) ClearHistory(ctx context.Context, username string, session *Session) error {
	session.clearHistory()
	return s.SaveSession(ctx, username, session)
}
