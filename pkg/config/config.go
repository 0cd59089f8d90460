package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Store   StoreConfig
	LiveKit LiveKitConfig
	LLM     LLMConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ShutdownTimeout int
}

// RedisConfig holds record-store connection configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StoreConfig names the per-entity table prefixes and selects the in-memory
// store for local development.
type StoreConfig struct {
	CallsTable       string
	SummariesTable   string
	TransfersTable   string
	TranscriptsTable string
	AgentsTable      string
	UseMemory        bool
}

// LiveKitConfig holds room-provider configuration
type LiveKitConfig struct {
	URL       string
	APIKey    string
	APISecret string
	UseMock   bool
	// TokenTTLSeconds is the default join-token lifetime.
	TokenTTLSeconds int
}

// LLMConfig holds summarizer configuration
type LLMConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	// Temperature stays low so summaries are near-deterministic.
	Temperature float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Store: StoreConfig{
			CallsTable:       getEnv("TABLE_CALLS", "calls"),
			SummariesTable:   getEnv("TABLE_SUMMARIES", "summaries"),
			TransfersTable:   getEnv("TABLE_TRANSFERS", "transfers"),
			TranscriptsTable: getEnv("TABLE_TRANSCRIPTS", "transcripts"),
			AgentsTable:      getEnv("TABLE_AGENTS", "agents"),
			UseMemory:        getEnvAsBool("STORE_USE_MEMORY", false),
		},
		LiveKit: LiveKitConfig{
			URL:             getEnv("LIVEKIT_API_URL", ""),
			APIKey:          getEnv("LIVEKIT_API_KEY", ""),
			APISecret:       getEnv("LIVEKIT_API_SECRET", ""),
			UseMock:         getEnvAsBool("LIVEKIT_USE_MOCK", false),
			TokenTTLSeconds: getEnvAsInt("LIVEKIT_TOKEN_TTL", 3600),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 400),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.2),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LiveKit.APIKey == "" || c.LiveKit.APISecret == "" {
		return fmt.Errorf("LIVEKIT_API_KEY and LIVEKIT_API_SECRET are required")
	}
	if c.LiveKit.URL == "" && !c.LiveKit.UseMock {
		return fmt.Errorf("LIVEKIT_API_URL is required unless LIVEKIT_USE_MOCK is set")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
