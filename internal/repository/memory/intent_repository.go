package memory

import (
	"time"

	"ai-travelplanner-be/pkg/extract"

	"github.com/patrickmn/go-cache"
)

// IntentRepository caches the resolved trip intent per planning session so
// a re-plan within the same session skips the extraction call.
type IntentRepository struct {
	cache *cache.Cache
}

func NewIntentRepository() *IntentRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &IntentRepository{
		cache: c,
	}
}

func (r *IntentRepository) Save(sessionID, query string, intent extract.TripIntent) {
	r.cache.Set(r.key(sessionID, query), intent, cache.DefaultExpiration)
}

func (r *IntentRepository) Get(sessionID, query string) (extract.TripIntent, bool) {
	if x, found := r.cache.Get(r.key(sessionID, query)); found {
		return x.(extract.TripIntent), true
	}
	return extract.TripIntent{}, false
}

func (r *IntentRepository) Delete(sessionID, query string) {
	r.cache.Delete(r.key(sessionID, query))
}

func (r *IntentRepository) key(sessionID, query string) string {
	return sessionID + "|" + query
}
