package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Analyst  AnalystConfig
	Ai       AIConfig
	SMTP     SMTPConfig
	Planner  PlannerConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	AgentLogFilePath   string
	CorsAllowedOrigins string
	JWTSecret          string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AnalystConfig struct {
	URL               string
	AuthToken         string
	Model             string
	SemanticModelFile string
	TimeoutSeconds    int
}

type AIConfig struct {
	LLMProvider       string // "bedrock" or "ollama"
	LLMModel          string
	LLMBaseURL        string
	LLMAuthToken      string
	EmbeddingBaseURL  string
	EmbeddingModel    string
	EmbedTopicName    string
	SearchThreshold   float64
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PlannerConfig struct {
	ConcurrencyLimit   int
	ContextTurns       int
	SearchLimit        int
	StepTimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			AgentLogFilePath:   getEnv("AGENT_LOG_FILE_PATH", "agent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Analyst: AnalystConfig{
			URL:               getEnv("ANALYST_AGENT_URL", ""),
			AuthToken:         getEnv("ANALYST_AUTH_TOKEN", ""),
			Model:             getEnv("ANALYST_MODEL", "llama3.1-70b"),
			SemanticModelFile: getEnv("ANALYST_SEMANTIC_MODEL_FILE", ""),
			TimeoutSeconds:    getEnvAsInt("ANALYST_TIMEOUT_SECONDS", 50),
		},
		Ai: AIConfig{
			LLMProvider:      getEnv("LLM_PROVIDER", "bedrock"),
			LLMModel:         getEnv("LLM_MODEL", "anthropic.claude-3-sonnet-20240229-v1:0"),
			LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
			LLMAuthToken:     getEnv("LLM_AUTH_TOKEN", ""),
			EmbeddingBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			EmbedTopicName:   getEnv("EMBED_ACTIVITY_TOPIC_NAME", "EMBED_ACTIVITY"),
			SearchThreshold:  getEnvAsFloat("ACTIVITY_SEARCH_THRESHOLD", 0.35),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "TravelPlanner"),
		},
		Planner: PlannerConfig{
			ConcurrencyLimit:   getEnvAsInt("PLANNER_CONCURRENCY_LIMIT", 4),
			ContextTurns:       getEnvAsInt("PLANNER_CONTEXT_TURNS", 5),
			SearchLimit:        getEnvAsInt("PLANNER_SEARCH_LIMIT", 10),
			StepTimeoutSeconds: getEnvAsInt("PLANNER_STEP_TIMEOUT_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
