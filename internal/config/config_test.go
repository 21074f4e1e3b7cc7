package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"LLM_BASE_URL", "LLM_API_KEY", "LOVABLE_API_KEY", "LLM_MODEL",
	"LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT", "LLM_RESULT_COUNT",
	"LLM_RATE_LIMIT", "LLM_RATE_BURST", "LLM_LIMIT_POLICY",
	"CORPUS_SOURCE", "CORPUS_TIMEOUT", "CORPUS_CACHE_TTL",
	"TARGET_COUNT", "MIN_SCORE", "CLARIFY_LOCALE", "CLARIFY_TABLE_PATH",
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "defaults with api key",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8080" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.LLMBaseURL == "https://ai.gateway.lovable.dev" &&
					cfg.LLMModelName == "google/gemini-2.5-flash" &&
					cfg.LLMTemperature == 0.3 &&
					cfg.LLMMaxTokens == 3000 &&
					cfg.LLMTimeout == 60*time.Second &&
					cfg.LLMResultCount == 10 &&
					cfg.LLMRateLimit == 0 &&
					cfg.LLMLimitPolicy == LimitPolicyFallback &&
					cfg.CorpusSource == DefaultCorpusSource &&
					cfg.CorpusCacheTTL == 0 &&
					cfg.TargetCount == 50 &&
					cfg.MinScore == 0.55 &&
					cfg.ClarifyLocale == "en"
			},
		},
		{
			name:     "missing api key",
			setupEnv: func(t *testing.T) {},
			wantErr:  true,
		},
		{
			name: "legacy api key alias",
			setupEnv: func(t *testing.T) {
				setEnv("LOVABLE_API_KEY", "legacy")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMAPIKey == "legacy"
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("LLM_BASE_URL", "http://custom:9090/")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
				setEnv("LLM_TIMEOUT", "5s")
				setEnv("TARGET_COUNT", "10")
				setEnv("MIN_SCORE", "0.6")
				setEnv("LLM_LIMIT_POLICY", "passthrough")
				setEnv("CORPUS_SOURCE", "sqlite://corpus.db")
				setEnv("CORPUS_CACHE_TTL", "10m")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == "http://custom:9090" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.LLMTimeout == 5*time.Second &&
					cfg.TargetCount == 10 &&
					cfg.MinScore == 0.6 &&
					cfg.LLMLimitPolicy == LimitPolicyPassthrough &&
					cfg.CorpusSource == "sqlite://corpus.db" &&
					cfg.CorpusCacheTTL == 10*time.Minute
			},
		},
		{
			name: "invalid target count",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("TARGET_COUNT", "zero")
			},
			wantErr: true,
		},
		{
			name: "negative target count",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("TARGET_COUNT", "-1")
			},
			wantErr: true,
		},
		{
			name: "min score above padding start",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("MIN_SCORE", "0.9")
			},
			wantErr: true,
		},
		{
			name: "target count above padding room",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("TARGET_COUNT", "3301")
			},
			wantErr: true,
		},
		{
			name: "largest target count for floor",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("TARGET_COUNT", "1800")
				setEnv("MIN_SCORE", "0.7")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.TargetCount == 1800 && cfg.MinScore == 0.7
			},
		},
		{
			name: "target count above room for raised floor",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("TARGET_COUNT", "1801")
				setEnv("MIN_SCORE", "0.7")
			},
			wantErr: true,
		},
		{
			name: "invalid timeout",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("LLM_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "unknown limit policy",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("LLM_LIMIT_POLICY", "retry")
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "secret")
				setEnv("LLM_TEMPERATURE", "3")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Change to a temp directory without .env file to avoid loading it
			tmpDir := t.TempDir()
			originalWd, _ := os.Getwd()
			_ = os.Chdir(tmpDir)
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			for _, key := range envVars {
				unsetEnv(key)
			}

			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: "INFO", want: slog.LevelInfo},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "trace", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseLevel(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
