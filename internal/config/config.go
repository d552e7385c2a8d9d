package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	HTTPPort  string
	RedisAddr string // empty disables the result cache
	LogLevel  string

	// Pipeline thresholds. The chunk target, the model's hard input
	// ceiling and the absolute document ceiling are deliberately distinct
	// knobs; deployments disagree on their values.
	MaxChunkSize     int
	ModelCharCeiling int
	MaxDocumentChars int

	Concurrency     int
	SummaryMinWords int
	SummaryMaxWords int

	QuizQuestionCount int
	CacheTTL          time.Duration

	AI AIConfig
}

// AIConfig holds settings for the external text-generation capability.
type AIConfig struct {
	APIKey  string `json:"-"` // never serialize
	BaseURL string
	// SummaryModel handles segment summarization; RefineModel handles the
	// best-effort quiz phrasing pass.
	SummaryModel string
	RefineModel  string
	TimeoutMS    int
	MaxRetries   int
}

// IsEnabled returns true if the external capability is configured.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model.
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		MaxChunkSize:     getEnvInt("MAX_CHUNK_SIZE", 2000),
		ModelCharCeiling: getEnvInt("MODEL_CHAR_CEILING", 4000),
		MaxDocumentChars: getEnvInt("MAX_DOCUMENT_CHARS", 40000),

		Concurrency:     getEnvInt("SUMMARY_CONCURRENCY", 4),
		SummaryMinWords: getEnvInt("SUMMARY_MIN_WORDS", 30),
		SummaryMaxWords: getEnvInt("SUMMARY_MAX_WORDS", 512),

		QuizQuestionCount: getEnvInt("QUIZ_QUESTION_COUNT", 5),
		CacheTTL:          getEnvDuration("CACHE_TTL", 10*time.Minute),

		AI: AIConfig{
			APIKey:       os.Getenv("GEMINI_API_KEY"),
			BaseURL:      getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
			SummaryModel: getEnv("AI_SUMMARY_MODEL", "gemini-2.0-flash"),
			RefineModel:  getEnv("AI_REFINE_MODEL", "gemini-2.0-flash"),
			TimeoutMS:    getEnvInt("AI_TIMEOUT_MS", 30000),
			MaxRetries:   getEnvInt("AI_MAX_RETRIES", 2),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
