package bedrock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-travelplanner-be/pkg/llm"
)

// BedrockProvider calls an anthropic-messages compatible endpoint
// (Bedrock runtime behind an HTTP proxy, or any service speaking the
// same JSON body).
type BedrockProvider struct {
	BaseURL   string
	ModelID   string
	AuthToken string
	Client    *http.Client
}

// Ensure BedrockProvider implements LLMProvider
var _ llm.LLMProvider = &BedrockProvider{}

func NewBedrockProvider(baseURL, modelID, authToken string) *BedrockProvider {
	return &BedrockProvider{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		ModelID:   modelID,
		AuthToken: authToken,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockInvokeRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
	TopP             float64          `json:"top_p,omitempty"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bedrockInvokeResponse struct {
	Content []bedrockContentBlock `json:"content"`
}

// --- Interface Implementation ---

func (b *BedrockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.2,
		TopP:        1,
		MaxTokens:   1024,
	}
	for _, opt := range opts {
		opt(options)
	}

	// The messages API carries the system prompt out of band
	var system string
	messages := make([]bedrockMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, bedrockMessage{Role: role, Content: msg.Content})
	}

	model := b.ModelID
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := bedrockInvokeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        options.MaxTokens,
		Temperature:      options.Temperature,
		TopP:             options.TopP,
		System:           system,
		Messages:         messages,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/model/%s/invoke", b.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("bedrock request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bedrock error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var invokeResp bedrockInvokeResponse
	if err := json.Unmarshal(bodyBytes, &invokeResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(invokeResp.Content) == 0 {
		return "", nil
	}
	return strings.TrimSpace(invokeResp.Content[0].Text), nil
}

func (b *BedrockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return b.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
