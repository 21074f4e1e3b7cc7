package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"paperrec/internal/recommend"
)

// DefaultCorpusSource is the published corpus snapshot in object storage.
const DefaultCorpusSource = "https://eppxvlmtgqclvefiwmfr.supabase.co/storage/v1/object/public/papers/papers_clean.jsonl"

// LimitPolicy controls how upstream rate-limit and quota responses reach the caller.
type LimitPolicy string

const (
	// LimitPolicyFallback answers with the fallback batch.
	LimitPolicyFallback LimitPolicy = "fallback"
	// LimitPolicyPassthrough surfaces 429/402 to the caller.
	LimitPolicyPassthrough LimitPolicy = "passthrough"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	LLMBaseURL     string
	LLMModelName   string
	LLMAPIKey      string
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration
	LLMResultCount int
	LLMRateLimit   float64
	LLMRateBurst   int
	LLMLimitPolicy LimitPolicy

	CorpusSource   string
	CorpusTimeout  time.Duration
	CorpusCacheTTL time.Duration

	TargetCount int
	MinScore    float64

	ClarifyLocale    string
	ClarifyTablePath string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// A .env file in the current directory or up to five parents is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LLMBaseURL:       strings.TrimRight(getEnv("LLM_BASE_URL", "https://ai.gateway.lovable.dev"), "/"),
		LLMModelName:     getEnv("LLM_MODEL", "google/gemini-2.5-flash"),
		LLMAPIKey:        getEnv("LLM_API_KEY", os.Getenv("LOVABLE_API_KEY")),
		LLMLimitPolicy:   LimitPolicy(strings.ToLower(getEnv("LLM_LIMIT_POLICY", string(LimitPolicyFallback)))),
		CorpusSource:     getEnv("CORPUS_SOURCE", DefaultCorpusSource),
		ClarifyLocale:    strings.ToLower(getEnv("CLARIFY_LOCALE", "en")),
		ClarifyTablePath: getEnv("CLARIFY_TABLE_PATH", ""),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	temperature, err := getFloat("LLM_TEMPERATURE", 0.3)
	if err != nil {
		return nil, err
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	cfg.LLMTemperature = float32(temperature)

	if cfg.LLMMaxTokens, err = getPositiveInt("LLM_MAX_TOKENS", 3000); err != nil {
		return nil, err
	}
	if cfg.LLMResultCount, err = getPositiveInt("LLM_RESULT_COUNT", 10); err != nil {
		return nil, err
	}
	if cfg.LLMRateBurst, err = getPositiveInt("LLM_RATE_BURST", 1); err != nil {
		return nil, err
	}
	if cfg.LLMRateLimit, err = getFloat("LLM_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.LLMRateLimit < 0 {
		return nil, fmt.Errorf("LLM_RATE_LIMIT must not be negative")
	}
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.CorpusTimeout, err = getDuration("CORPUS_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.CorpusCacheTTL, err = getDuration("CORPUS_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.TargetCount, err = getPositiveInt("TARGET_COUNT", 50); err != nil {
		return nil, err
	}
	if cfg.MinScore, err = getFloat("MIN_SCORE", 0.55); err != nil {
		return nil, err
	}
	if err := recommend.ValidateBatch(cfg.TargetCount, cfg.MinScore); err != nil {
		return nil, fmt.Errorf("TARGET_COUNT/MIN_SCORE: %w", err)
	}

	switch cfg.LLMLimitPolicy {
	case LimitPolicyFallback, LimitPolicyPassthrough:
	default:
		return nil, fmt.Errorf("LLM_LIMIT_POLICY must be fallback or passthrough, got %q", cfg.LLMLimitPolicy)
	}

	// Validate required fields
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if cfg.CorpusSource == "" {
		return nil, fmt.Errorf("CORPUS_SOURCE is required")
	}

	return cfg, nil
}

func loadDotEnv() {
	_ = godotenv.Load() // current directory

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return v, nil
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", raw)
}
