package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	LogLevel      slog.Level
	GeminiAPIKey  string
	GeminiBaseURL string
	PrimaryModel  string
	FallbackModel string
	Temperature   float64
	TopP          float64
	TopK          int
	LLMTimeout    time.Duration
	ReadingFloor  time.Duration
	ShuffleDelay  time.Duration
}

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		PrimaryModel:  envOr("PRIMARY_MODEL", "gemini-3-pro-preview"),
		FallbackModel: envOr("FALLBACK_MODEL", "gemini-2.5-flash"),
		Temperature:   0.7,
		TopP:          0.95,
		TopK:          40,
		LLMTimeout:    30 * time.Second,
		ReadingFloor:  3 * time.Second,
		ShuffleDelay:  2 * time.Second,
	}

	// A missing API key is deliberately not a load error: the server starts
	// and the reading service answers with its fixed "not configured" message.

	for _, d := range []struct {
		key string
		dst *time.Duration
	}{
		{"LLM_TIMEOUT", &c.LLMTimeout},
		{"READING_FLOOR", &c.ReadingFloor},
		{"SHUFFLE_DELAY", &c.ShuffleDelay},
	} {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s %q: %w", d.key, v, err)
			}
			*d.dst = parsed
		}
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE %q: %w", v, err)
		}
		c.Temperature = parsed
	}
	if v := os.Getenv("LLM_TOP_P"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TOP_P %q: %w", v, err)
		}
		c.TopP = parsed
	}
	if v := os.Getenv("LLM_TOP_K"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TOP_K %q: %w", v, err)
		}
		c.TopK = parsed
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

// LLMConfigured reports whether an API credential is present.
func (c Config) LLMConfigured() bool {
	return c.GeminiAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
