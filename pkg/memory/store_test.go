package memory

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTurnRepo struct {
	turns      map[ActorSession][]Turn
	insertErr  error
	recentErr  error
	insertCall int
}

func newFakeTurnRepo() *fakeTurnRepo {
	return &fakeTurnRepo{turns: make(map[ActorSession][]Turn)}
}

func (f *fakeTurnRepo) Insert(_ context.Context, as ActorSession, role, text string) error {
	f.insertCall++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.turns[as] = append(f.turns[as], Turn{Role: role, Text: text})
	return nil
}

func (f *fakeTurnRepo) RecentTurns(_ context.Context, as ActorSession, k int) ([]Turn, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	history := f.turns[as]
	if len(history) > k {
		history = history[len(history)-k:]
	}
	return history, nil
}

func TestStoreAppendAndLastK(t *testing.T) {
	repo := newFakeTurnRepo()
	store := NewStore(repo, log.New(io.Discard, "", 0))
	as := ActorSession{ActorID: "flight_agent", SessionID: "s1"}

	require.NoError(t, store.Append(context.Background(), as, "user", "Plan a trip"))
	require.NoError(t, store.Append(context.Background(), as, "assistant", "Sure"))
	require.NoError(t, store.Append(context.Background(), as, "user", "From Delhi"))

	turns := store.LastK(context.Background(), as, 2)
	require.Len(t, turns, 2)
	assert.Equal(t, "Sure", turns[0].Text)
	assert.Equal(t, "From Delhi", turns[1].Text)
}

func TestStoreAppendFailureSurfaces(t *testing.T) {
	repo := newFakeTurnRepo()
	repo.insertErr = errors.New("connection refused")
	store := NewStore(repo, log.New(io.Discard, "", 0))

	err := store.Append(context.Background(), ActorSession{ActorID: "a", SessionID: "s"}, "user", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory store unavailable")
}

func TestStoreLastKDegradesToEmptyOnReadError(t *testing.T) {
	repo := newFakeTurnRepo()
	repo.recentErr = errors.New("read timeout")
	store := NewStore(repo, log.New(io.Discard, "", 0))

	turns := store.LastK(context.Background(), ActorSession{ActorID: "a", SessionID: "s"}, 5)
	assert.Empty(t, turns)
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	repo := newFakeTurnRepo()
	store := NewStore(repo, log.New(io.Discard, "", 0))
	hotel := ActorSession{ActorID: "hotel_agent:Mumbai", SessionID: "s1"}
	flight := ActorSession{ActorID: "flight_agent", SessionID: "s1"}

	require.NoError(t, store.Append(context.Background(), hotel, "user", "Find hotels in Mumbai"))

	assert.Empty(t, store.LastK(context.Background(), flight, 5))
	assert.Len(t, store.LastK(context.Background(), hotel, 5), 1)
}

func TestFormatTranscript(t *testing.T) {
	turns := []Turn{
		{Role: "user", Text: "Plan a trip from Delhi to Goa"},
		{Role: "assistant", Text: "Here are some flights"},
	}

	want := "User: Plan a trip from Delhi to Goa\n" +
		"Assistant: Here are some flights\n"
	assert.Equal(t, want, FormatTranscript(turns))
	assert.Equal(t, "", FormatTranscript(nil))
}
