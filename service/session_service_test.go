package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
)

// memSessionRepo is an in-memory stand-in for the MongoDB session
// repository.
type memSessionRepo struct {
	mu     sync.Mutex
	states map[string]*types.SessionState
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{states: make(map[string]*types.SessionState)}
}

func (r *memSessionRepo) Save(ctx context.Context, state *types.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *state
	r.states[state.Username] = &copied
	return nil
}

func (r *memSessionRepo) Load(ctx context.Context, username string) (*types.SessionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[username]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func TestGetSessionFreshUser(t *testing.T) {
	sessions := service.NewSessionService(newMemSessionRepo(), 0)

	session, err := sessions.GetSession(context.Background(), "alice")
	require.NoError(t, err)
	require.Empty(t, session.Store.List())
	require.Empty(t, session.History())
}

func TestGetSessionReturnsSameInstance(t *testing.T) {
	sessions := service.NewSessionService(newMemSessionRepo(), 0)

	first, err := sessions.GetSession(context.Background(), "alice")
	require.NoError(t, err)
	second, err := sessions.GetSession(context.Background(), "alice")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestSessionsIsolatedPerUser(t *testing.T) {
	sessions := service.NewSessionService(newMemSessionRepo(), 0)
	ctx := context.Background()

	alice, err := sessions.GetSession(ctx, "alice")
	require.NoError(t, err)
	bob, err := sessions.GetSession(ctx, "bob")
	require.NoError(t, err)

	_, err = alice.Store.AddDocument("a.txt", "alice's doc")
	require.NoError(t, err)

	require.Len(t, alice.Store.List(), 1)
	require.Empty(t, bob.Store.List())
}

func TestSessionPersistAndRehydrate(t *testing.T) {
	repo := newMemSessionRepo()
	ctx := context.Background()

	sessions := service.NewSessionService(repo, 0)
	session, err := sessions.GetSession(ctx, "alice")
	require.NoError(t, err)

	_, err = session.Store.AddDocument("a.txt", "alpha")
	require.NoError(t, err)
	_, err = session.Store.AddDocument("b.txt", "beta")
	require.NoError(t, err)
	session.Store.Toggle("b.txt", false)

	require.NoError(t, sessions.RecordChat(ctx, "alice", session, "what is alpha?", "alpha is first"))

	// A new service instance simulates a restart; state must come back
	// from the repository with the combined context recomputed.
	restarted := service.NewSessionService(repo, 0)
	rehydrated, err := restarted.GetSession(ctx, "alice")
	require.NoError(t, err)

	require.Equal(t, session.Store.CombinedContext(), rehydrated.Store.CombinedContext())
	require.Equal(t, "--- Document: a.txt ---\n\nalpha", rehydrated.Store.CombinedContext())
	require.Equal(t, 1, rehydrated.Store.EnabledCount())

	history := rehydrated.History()
	require.Len(t, history, 1)
	require.Equal(t, "what is alpha?", history[0].Question)
	require.Equal(t, "alpha is first", history[0].Answer)
	require.Equal(t, 1, history[0].EnabledFileCount)
	require.NotEmpty(t, history[0].ID)
}

func TestClearHistoryPersists(t *testing.T) {
	repo := newMemSessionRepo()
	ctx := context.Background()

	sessions := service.NewSessionService(repo, 0)
	session, err := sessions.GetSession(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, sessions.RecordChat(ctx, "alice", session, "q", "a"))
	require.Len(t, session.History(), 1)

	require.NoError(t, sessions.ClearHistory(ctx, "alice", session))
	require.Empty(t, session.History())

	restarted := service.NewSessionService(repo, 0)
	rehydrated, err := restarted.GetSession(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, rehydrated.History())
}
