package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhairen/AItaluo/internal/adapters/llm/gemini"
	"github.com/zhairen/AItaluo/internal/domain"
)

func candidateResponse(texts ...string) map[string]any {
	parts := make([]map[string]any, len(texts))
	for i, t := range texts {
		parts[i] = map[string]any{"text": t}
	}
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/test-pro:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("bad api key header: %s", r.Header.Get("x-goog-api-key"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("一段解读文本。"))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "test-key", srv.URL, "test-pro", gemini.Params{
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	}, slog.Default())

	got, err := client.Generate(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "一段解读文本。" {
		t.Errorf("unexpected text: %q", got)
	}

	cfg, ok := gotReq["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("request missing generationConfig: %v", gotReq)
	}
	if cfg["temperature"] != 0.7 || cfg["topP"] != 0.95 || cfg["topK"] != float64(40) {
		t.Errorf("unexpected sampling params: %v", cfg)
	}
}

func TestGenerate_TemperatureOnlyOmitsOthers(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("ok"))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "test-flash", gemini.Params{Temperature: 0.7}, slog.Default())

	if _, err := client.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := gotReq["generationConfig"].(map[string]any)
	if _, present := cfg["topP"]; present {
		t.Error("topP must be omitted when unset")
	}
	if _, present := cfg["topK"]; present {
		t.Error("topK must be omitted when unset")
	}
}

func TestGenerate_MultiPartJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("第一段", "第二段"))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "m", gemini.Params{}, slog.Default())

	got, err := client.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "第一段第二段" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota"}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "m", gemini.Params{}, slog.Default())

	_, err := client.Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error for upstream 429, got nil")
	}
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Errorf("error %v does not wrap ErrUpstreamLLM", err)
	}
}

func TestGenerate_NoCandidatesIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "m", gemini.Params{}, slog.Default())

	got, err := client.Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("no candidates must not be a hard error, got: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "m", gemini.Params{}, slog.Default())

	if _, err := client.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error for malformed response body")
	}
}
