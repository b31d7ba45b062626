package factory

import (
	"fmt"

	"ai-travelplanner-be/pkg/llm"
	"ai-travelplanner-be/pkg/llm/bedrock"
	"ai-travelplanner-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, authToken string) (llm.LLMProvider, error) {
	switch providerType {
	case "bedrock":
		if baseURL == "" {
			return nil, fmt.Errorf("bedrock provider requires a base URL")
		}
		return bedrock.NewBedrockProvider(baseURL, modelName, authToken), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
