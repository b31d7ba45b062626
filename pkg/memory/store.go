package memory

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// ActorSession identifies one agent's conversational lane. Distinct actor
// sessions never observe each other's turns.
type ActorSession struct {
	ActorID   string
	SessionID string
}

// Turn is one remembered utterance.
type Turn struct {
	Role      string
	Text      string
	CreatedAt time.Time
}

// TurnRepository is the persistence boundary for turns. Implementations
// must serialize concurrent appends for the same actor session.
type TurnRepository interface {
	Insert(ctx context.Context, as ActorSession, role, text string) error
	RecentTurns(ctx context.Context, as ActorSession, k int) ([]Turn, error)
}

// Store provides durable short-term conversation memory keyed by actor
// session. Writes are at-least-once with no deduplication.
type Store struct {
	repo   TurnRepository
	logger *log.Logger
}

func NewStore(repo TurnRepository, logger *log.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
	}
}

// Append records one turn. A persistence failure is returned to the caller
// with the store marked unavailable; nothing is partially written.
func (s *Store) Append(ctx context.Context, as ActorSession, role, text string) error {
	if err := s.repo.Insert(ctx, as, role, text); err != nil {
		return fmt.Errorf("memory store unavailable: %w", err)
	}
	return nil
}

// LastK returns up to k most recent turns, oldest first. Reads are
// best-effort: a failure is logged and an empty history returned so the
// caller can proceed without context.
func (s *Store) LastK(ctx context.Context, as ActorSession, k int) []Turn {
	if k <= 0 {
		return nil
	}
	turns, err := s.repo.RecentTurns(ctx, as, k)
	if err != nil {
		s.logger.Printf("[WARN] Memory read failed for actor=%s session=%s, continuing without context: %v",
			as.ActorID, as.SessionID, err)
		return nil
	}
	return turns
}

// FormatTranscript renders turns as a "Role: text" transcript for prompt
// priming.
func FormatTranscript(turns []Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString(titleRole(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
}
