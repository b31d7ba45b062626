package search

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"ai-travelplanner-be/pkg/embedding"
	"ai-travelplanner-be/pkg/warehouse"
)

// ActivityHit is one scored match from the vector index.
type ActivityHit struct {
	Name        string
	Category    string
	Description string
	City        string
	Rating      float64
	Similarity  float32
}

// ActivityIndex is the vector search boundary, backed by pgvector.
type ActivityIndex interface {
	SearchSimilar(ctx context.Context, city string, vector []float32, limit int) ([]ActivityHit, error)
}

// Searcher finds activities for a destination city by semantic similarity
// and flattens the hits into the canonical tabular shape.
type Searcher struct {
	index     ActivityIndex
	embedder  embedding.EmbeddingProvider
	threshold float32
	logger    *log.Logger
}

func NewSearcher(index ActivityIndex, embedder embedding.EmbeddingProvider, threshold float32, logger *log.Logger) *Searcher {
	return &Searcher{
		index:     index,
		embedder:  embedder,
		threshold: threshold,
		logger:    logger,
	}
}

// Search embeds a per-city activity prompt and scans the index. Hits below
// the similarity threshold are dropped and duplicate names deduplicated,
// keeping the highest-scoring row.
func (s *Searcher) Search(ctx context.Context, city string, duration *int, limit int) (*warehouse.ResultSet, error) {
	prompt := fmt.Sprintf("Find activities and experiences for a traveler in %s.", city)
	if duration != nil {
		prompt = fmt.Sprintf("%s Trip duration: %d days.", prompt, *duration)
	}

	embedded, err := s.embedder.Generate(prompt, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed search prompt: %w", err)
	}

	hits, err := s.index.SearchSimilar(ctx, city, embedded.Embedding.Values, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search for %s: %w", city, err)
	}

	rs := &warehouse.ResultSet{
		Columns: []string{"CITY", "NAME", "CATEGORY", "DESCRIPTION", "RATING"},
	}
	seen := make(map[string]bool)
	for _, hit := range hits {
		if hit.Similarity < s.threshold {
			continue
		}
		key := strings.ToLower(hit.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		rs.Rows = append(rs.Rows, []string{
			hit.City,
			hit.Name,
			hit.Category,
			hit.Description,
			strconv.FormatFloat(hit.Rating, 'f', 1, 64),
		})
	}

	s.logger.Printf("[SEARCH] city=%s hits=%d kept=%d", city, len(hits), len(rs.Rows))
	return rs, nil
}
