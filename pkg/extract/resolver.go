package extract

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"ai-travelplanner-be/pkg/llm"
)

const tripIntentSystemPrompt = "You are a travel assistant. Given a user travel query, extract the following as a JSON object: " +
	"'source_city': the city the trip starts from, 'dest_cities': a list of destination cities (excluding the source), " +
	"'duration': the number of days for the trip (as an integer, or null if not specified). " +
	"Return only valid JSON, e.g. {\"source_city\": \"Delhi\", \"dest_cities\": [\"Mumbai\", \"Pune\"], \"duration\": 15}. Do not explain."

const cityListSystemPrompt = "You are a travel assistant. Given a user travel query, extract the destination cities. Skip the source city. " +
	"Return only a valid JSON list of city names, e.g. [\"Mumbai\", \"Pune\"]. Do not explain."

// Resolver performs LLM-backed structured extraction over user queries.
// Every path degrades to a default value; callers never see an error.
type Resolver struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewResolver(llmProvider llm.LLMProvider, logger *log.Logger) *Resolver {
	return &Resolver{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// TripIntent asks the model to break the query down into source city,
// destination cities and duration, then parses the answer.
func (r *Resolver) TripIntent(ctx context.Context, query string) TripIntent {
	response, err := r.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: tripIntentSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Extract the source city, destination cities, and trip duration from this travel query: %q.", query)},
	}, llm.WithTemperature(0.0), llm.WithMaxTokens(1024))
	if err != nil {
		r.logger.Printf("[ERROR] Trip intent extraction failed: %v", err)
		return DefaultTripIntent()
	}

	intent := ParseTripIntent(response)
	r.logger.Printf("[INTENT] Resolved trip: source=%q dests=%v duration=%s", intent.SourceCity, intent.DestCities, formatDuration(intent.Duration))
	return intent
}

func formatDuration(days *int) string {
	if days == nil {
		return "unset"
	}
	return strconv.Itoa(*days)
}

// DestinationCities asks the model for just the destination city list.
func (r *Resolver) DestinationCities(ctx context.Context, query string) []string {
	response, err := r.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: cityListSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Extract all destination cities from this travel query: %q.", query)},
	}, llm.WithTemperature(0.0), llm.WithMaxTokens(128))
	if err != nil {
		r.logger.Printf("[ERROR] Destination city extraction failed: %v", err)
		return []string{}
	}
	return ParseCityList(response)
}
