package rank

import (
	"context"
	"fmt"
	"strings"

	"ai-travelplanner-be/pkg/llm"
	"ai-travelplanner-be/pkg/warehouse"
)

// Ranker turns a tabular result set into a short natural-language
// recommendation via the LLM.
type Ranker struct {
	llmProvider llm.LLMProvider
}

func NewRanker(llmProvider llm.LLMProvider) *Ranker {
	return &Ranker{llmProvider: llmProvider}
}

// BestOptions asks the model for the best 3 rows of a flight or hotel
// table, described in plain english with all details.
func (r *Ranker) BestOptions(ctx context.Context, domain, query string, rs *warehouse.ResultSet) (string, error) {
	system := fmt.Sprintf(
		"You are a travel assistant. Given a table of %s options and a user query, "+
			"return the best 3 %s options as english text with all details.", domain, domain)
	user := fmt.Sprintf(
		"The user asked: %s\nHere are the available %s options in a table:\n\n%s",
		query, domain, rs.Markdown())

	response, err := r.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.2), llm.WithTopP(1), llm.WithMaxTokens(1024))
	if err != nil {
		return "", fmt.Errorf("rank %s options: %w", domain, err)
	}
	return strings.TrimSpace(response), nil
}

// DaywisePlan asks the model for a day-by-day itinerary over the
// destination cities built from an activities table.
func (r *Ranker) DaywisePlan(ctx context.Context, query, sourceCity string, destCities []string, rs *warehouse.ResultSet) (string, error) {
	system := "You are a travel assistant. Given a table of activities and a user query, create a detailed day-wise travel plan. " +
		"The trip starts in the source city and visits only the destination cities. " +
		"Do NOT include the source city plan. " +
		"Create a detailed plan for each day, suggest the activities, and present the plan as detailed as possible."
	user := fmt.Sprintf(
		"The user asked: %s\nSource city: %s\nDestination cities: %s\nHere are the available activities in a table:\n\n%s",
		query, sourceCity, strings.Join(destCities, ", "), rs.Markdown())

	response, err := r.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}, llm.WithTemperature(0.2), llm.WithTopP(1), llm.WithMaxTokens(1024))
	if err != nil {
		return "", fmt.Errorf("build daywise plan: %w", err)
	}
	return strings.TrimSpace(response), nil
}
