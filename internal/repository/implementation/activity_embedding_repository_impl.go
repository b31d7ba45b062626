package implementation

import (
	"context"

	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/mapper"
	"ai-travelplanner-be/internal/model"
	"ai-travelplanner-be/internal/repository/contract"
	"ai-travelplanner-be/pkg/search"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ActivityEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityEmbeddingMapper
}

func NewActivityEmbeddingRepository(db *gorm.DB) contract.ActivityEmbeddingRepository {
	return &ActivityEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityEmbeddingMapper(),
	}
}

func (r *ActivityEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ActivityEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ActivityEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ActivityEmbeddingRepositoryImpl) DeleteByActivityId(ctx context.Context, activityId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("activity_id = ?", activityId).
		Delete(&model.ActivityEmbedding{}).Error
}

// SearchSimilar scans the index for one city's activities. Cosine distance
// in pgvector is 1 - cosine_similarity, so 1 - (embedding_value <=> q)
// recovers the similarity score.
func (r *ActivityEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, city string, vector []float32, limit int) ([]search.ActivityHit, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		Name        string
		Category    string
		Description string
		City        string
		Rating      float64
		Similarity  float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("activity_embeddings").
		Select("activities.name, activities.category, activities.description, activities.city, activities.rating, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN activities ON activities.id = activity_embeddings.activity_id").
		Where("LOWER(activities.city) = LOWER(?)", city).
		Where("activity_embeddings.deleted_at IS NULL").
		Where("activities.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	hits := make([]search.ActivityHit, len(results))
	for i, res := range results {
		hits[i] = search.ActivityHit{
			Name:        res.Name,
			Category:    res.Category,
			Description: res.Description,
			City:        res.City,
			Rating:      res.Rating,
			Similarity:  float32(res.Similarity),
		}
	}
	return hits, nil
}
