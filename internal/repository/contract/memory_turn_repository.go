package contract

import (
	"context"

	"ai-travelplanner-be/pkg/memory"
)

// MemoryTurnRepository persists conversation turns. It satisfies the turn
// store boundary in pkg/memory.
type MemoryTurnRepository interface {
	Insert(ctx context.Context, as memory.ActorSession, role, text string) error
	RecentTurns(ctx context.Context, as memory.ActorSession, k int) ([]memory.Turn, error)
}
