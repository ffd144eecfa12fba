// Package gemini implements ports.Generator against the Gemini generateContent
// REST API. One Client is bound to one model with fixed sampling parameters;
// the fallback chain across models lives in the reading service.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zhairen/AItaluo/internal/domain"
)

// Params are the sampling parameters sent with every request. Zero values are
// omitted from the wire, so the fallback tier can run with temperature only.
type Params struct {
	Temperature float64
	TopP        float64
	TopK        int
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	params     Params
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, params Params, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		params:     params,
		logger:     logger,
	}
}

func (c *Client) Model() string { return c.model }

// Request/response shapes mirror the generateContent wire format.
type generationConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"topP,omitempty"`
	TopK        int     `json:"topK,omitempty"`
}

type contentPart struct {
	Text string `json:"text"`
}

type requestContent struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns the completion text for prompt. A well-formed response
// with no text resolves to ("", nil): that is a soft failure the caller
// substitutes a placeholder for, not a reason to try another model.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []requestContent{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature: c.params.Temperature,
			TopP:        c.params.TopP,
			TopK:        c.params.TopK,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http call: %w", domain.ErrUpstreamLLM, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrUpstreamLLM, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d: %s", domain.ErrUpstreamLLM, resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamLLM, err)
	}

	if len(genResp.Candidates) == 0 {
		c.logger.WarnContext(ctx, "response has no candidates", "model", c.model)
		return "", nil
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}
