package service

import (
	"context"

	memrepo "ai-travelplanner-be/internal/repository/memory"
	"ai-travelplanner-be/pkg/extract"
)

// IntentService resolves trip intents with a short-lived cache so the
// orchestrator and any retries within a session only hit the LLM once per
// query. It satisfies the orchestrator's resolver boundary.
type IntentService struct {
	resolver *extract.Resolver
	cache    *memrepo.IntentRepository
}

func NewIntentService(resolver *extract.Resolver, cache *memrepo.IntentRepository) *IntentService {
	return &IntentService{
		resolver: resolver,
		cache:    cache,
	}
}

func (s *IntentService) TripIntent(ctx context.Context, sessionID, query string) extract.TripIntent {
	if intent, ok := s.cache.Get(sessionID, query); ok {
		return intent
	}

	intent := s.resolver.TripIntent(ctx, query)
	s.cache.Save(sessionID, query, intent)
	return intent
}
