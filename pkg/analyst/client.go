package analyst

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const toolName = "Analyst1"

// Client issues text-to-SQL requests against an analyst agent endpoint and
// exposes the response body as an event Stream.
type Client struct {
	BaseURL             string
	AuthToken           string
	Model               string
	SemanticModelFile   string
	ResponseInstruction string

	HTTPClient *http.Client
	Logger     *log.Logger
}

func NewClient(baseURL, authToken, model, semanticModelFile, responseInstruction string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		BaseURL:             baseURL,
		AuthToken:           authToken,
		Model:               model,
		SemanticModelFile:   semanticModelFile,
		ResponseInstruction: responseInstruction,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

type agentRequest struct {
	Model               string          `json:"model"`
	ResponseInstruction string          `json:"response_instruction"`
	Tools               []agentTool     `json:"tools"`
	ToolResources       map[string]any  `json:"tool_resources"`
	ToolChoice          agentToolChoice `json:"tool_choice"`
	Messages            []agentMessage  `json:"messages"`
}

type agentTool struct {
	ToolSpec agentToolSpec `json:"tool_spec"`
}

type agentToolSpec struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type agentToolChoice struct {
	Type string   `json:"type"`
	Name []string `json:"name"`
}

type agentMessage struct {
	Role    string         `json:"role"`
	Content []agentContent `json:"content"`
}

type agentContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Query posts a natural-language query and returns the decoded event
// stream. The returned stream owns the response body.
func (c *Client) Query(ctx context.Context, query string) (*Stream, error) {
	payload := agentRequest{
		Model:               c.Model,
		ResponseInstruction: c.ResponseInstruction,
		Tools: []agentTool{
			{ToolSpec: agentToolSpec{Type: "cortex_analyst_text_to_sql", Name: toolName}},
		},
		ToolResources: map[string]any{
			toolName: map[string]string{"semantic_model_file": c.SemanticModelFile},
		},
		ToolChoice: agentToolChoice{Type: "tool", Name: []string{toolName}},
		Messages: []agentMessage{
			{Role: "user", Content: []agentContent{{Type: "text", Text: query}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyst request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("analyst error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return NewStream(resp.Body, c.Logger), nil
}
