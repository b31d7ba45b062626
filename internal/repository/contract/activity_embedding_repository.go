package contract

import (
	"context"

	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/pkg/search"

	"github.com/google/uuid"
)

type ActivityEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ActivityEmbedding) error
	DeleteByActivityId(ctx context.Context, activityId uuid.UUID) error
	// SearchSimilar scans the vector index for a city's activities, scored
	// by cosine similarity, best first.
	SearchSimilar(ctx context.Context, city string, vector []float32, limit int) ([]search.ActivityHit, error)
}
