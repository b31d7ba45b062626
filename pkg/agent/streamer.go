package agent

import (
	"context"

	"ai-travelplanner-be/pkg/analyst"
)

type analystStreamer struct {
	client *analyst.Client
}

// NewAnalystStreamer adapts the analyst client to the pipeline's streaming
// boundary.
func NewAnalystStreamer(client *analyst.Client) QueryStreamer {
	return &analystStreamer{client: client}
}

func (a *analystStreamer) StreamQuery(ctx context.Context, query string) (EventStream, error) {
	stream, err := a.client.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
