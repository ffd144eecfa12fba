// Package reading turns a question and three drawn cards into displayable
// interpretation text. Every failure mode resolves to a fixed string; callers
// never see an error.
package reading

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/zhairen/AItaluo/internal/domain"
	"github.com/zhairen/AItaluo/internal/metrics"
	"github.com/zhairen/AItaluo/internal/ports"
)

// Fixed user-facing strings substituted for the reading text.
const (
	MsgNotConfigured = "Error: API Key not configured. Please check environment variables."
	MsgEmptyReading  = "无法解读星象，请重试。"
	MsgUpstreamDown  = "星象连接受到干扰，请检查网络或稍后再试。 (API Error)"
)

// Service implements ports.Reader with a two-tier model fallback and a
// minimum visible latency floor.
type Service struct {
	primary    ports.Generator
	secondary  ports.Generator
	configured bool
	floor      time.Duration
	logger     *slog.Logger
	metrics    metrics.Recorder
}

func NewService(primary, secondary ports.Generator, configured bool, floor time.Duration, logger *slog.Logger, rec metrics.Recorder) *Service {
	return &Service{
		primary:    primary,
		secondary:  secondary,
		configured: configured,
		floor:      floor,
		logger:     logger,
		metrics:    rec,
	}
}

// RequestReading resolves to interpretation text, never before the configured
// floor has elapsed. The floor is a join, not an added delay: a model call
// slower than the floor sets the total latency by itself. A missing credential
// short-circuits before the floor timer starts.
func (s *Service) RequestReading(ctx context.Context, question string, cards []domain.Card) string {
	if !s.configured {
		s.metrics.RecordReading("none", "not_configured")
		return MsgNotConfigured
	}

	prompt := BuildPrompt(question, cards)
	start := time.Now()

	floor := time.After(s.floor)
	result := make(chan string, 1)
	go func() {
		result <- s.generate(ctx, prompt)
	}()

	text := <-result
	select {
	case <-floor:
	case <-ctx.Done():
	}

	s.metrics.RecordReadingLatency(time.Since(start))
	return text
}

// generate runs the fallback chain. A successful call with empty text is a
// soft failure: the placeholder is substituted without trying the next tier.
func (s *Service) generate(ctx context.Context, prompt string) string {
	text, err := s.primary.Generate(ctx, prompt)
	if err == nil {
		return s.resolve(s.primary.Model(), text)
	}

	s.logger.WarnContext(ctx, "primary model failed, falling back",
		"model", s.primary.Model(), "fallback", s.secondary.Model(), "error", err)
	s.metrics.RecordFallback()

	text, err = s.secondary.Generate(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "fallback model failed",
			"model", s.secondary.Model(), "error", err)
		s.metrics.RecordReading(s.secondary.Model(), "error")
		return MsgUpstreamDown
	}
	return s.resolve(s.secondary.Model(), text)
}

func (s *Service) resolve(model, text string) string {
	if strings.TrimSpace(text) == "" {
		s.metrics.RecordReading(model, "empty")
		return MsgEmptyReading
	}
	s.metrics.RecordReading(model, "ok")
	return text
}
