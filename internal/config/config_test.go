package config

import (
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_BASE_URL",
		"PRIMARY_MODEL", "FALLBACK_MODEL", "LLM_TIMEOUT", "READING_FLOOR",
		"SHUFFLE_DELAY", "LLM_TEMPERATURE", "LLM_TOP_P", "LLM_TOP_K",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.PrimaryModel != "gemini-3-pro-preview" || c.FallbackModel != "gemini-2.5-flash" {
		t.Errorf("models = %q / %q", c.PrimaryModel, c.FallbackModel)
	}
	if c.Temperature != 0.7 || c.TopP != 0.95 || c.TopK != 40 {
		t.Errorf("sampling params = %v / %v / %v", c.Temperature, c.TopP, c.TopK)
	}
	if c.ReadingFloor != 3*time.Second {
		t.Errorf("ReadingFloor = %v", c.ReadingFloor)
	}
	if c.ShuffleDelay != 2*time.Second {
		t.Errorf("ShuffleDelay = %v", c.ShuffleDelay)
	}
	if c.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", c.LogLevel)
	}
}

func TestLoad_MissingAPIKeyIsNotAnError(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.LLMConfigured() {
		t.Error("LLMConfigured must be false without GEMINI_API_KEY")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("READING_FLOOR", "1500ms")
	t.Setenv("SHUFFLE_DELAY", "500ms")
	t.Setenv("LLM_TEMPERATURE", "0.3")
	t.Setenv("LLM_TOP_K", "20")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.LLMConfigured() {
		t.Error("LLMConfigured must be true with a key set")
	}
	if c.ReadingFloor != 1500*time.Millisecond {
		t.Errorf("ReadingFloor = %v", c.ReadingFloor)
	}
	if c.ShuffleDelay != 500*time.Millisecond {
		t.Errorf("ShuffleDelay = %v", c.ShuffleDelay)
	}
	if c.Temperature != 0.3 {
		t.Errorf("Temperature = %v", c.Temperature)
	}
	if c.TopK != 20 {
		t.Errorf("TopK = %v", c.TopK)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", c.LogLevel)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"READING_FLOOR":   "soon",
		"LLM_TIMEOUT":     "10",
		"LLM_TEMPERATURE": "warm",
		"LLM_TOP_K":       "many",
		"LOG_LEVEL":       "loud",
	}

	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", key, val)
			}
		})
	}
}
