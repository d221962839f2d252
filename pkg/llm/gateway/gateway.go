package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetscribe-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

var (
	ErrNotConfigured = errors.New("generation provider is not configured")
	ErrEmptyResponse = errors.New("generation provider returned an empty response")
)

// ProviderError wraps transport, status, quota and timeout failures.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Outcome classifies a generation attempt for logs and metrics.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeEmpty         Outcome = "empty"
	OutcomeProviderError Outcome = "provider_error"
	OutcomeNotConfigured Outcome = "not_configured"
)

// Classify maps a Generate error to its outcome. Any unknown error counts as
// a provider error.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyResponse):
		return OutcomeEmpty
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	default:
		return OutcomeProviderError
	}
}

type Config struct {
	Model         string
	Timeout       time.Duration
	MaxConcurrent int64
}

// Gateway is the single entry point to the generation provider. It enforces
// the configured model, a per-call timeout and a process-wide concurrency cap.
type Gateway struct {
	provider llm.LLMProvider
	cfg      Config
	sem      *semaphore.Weighted
	tracer   trace.Tracer
}

// New builds a gateway. A nil provider yields an unconfigured gateway whose
// calls fail with ErrNotConfigured.
func New(provider llm.LLMProvider, cfg Config) *Gateway {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 8
	}
	return &Gateway{
		provider: provider,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(cfg.MaxConcurrent),
		tracer:   otel.Tracer("vetscribe-be/gateway"),
	}
}

func (g *Gateway) Configured() bool {
	return g != nil && g.provider != nil
}

func (g *Gateway) Model() string {
	if g == nil {
		return ""
	}
	return g.cfg.Model
}

func (g *Gateway) ProviderName() string {
	if !g.Configured() {
		return "none"
	}
	return g.provider.Name()
}

func (g *Gateway) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}

	ctx, span := g.tracer.Start(ctx, "gateway.Generate", trace.WithAttributes(
		attribute.String("llm.provider", g.provider.Name()),
		attribute.String("llm.model", g.cfg.Model),
		attribute.Float64("llm.temperature", temperature),
	))
	defer span.End()

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", g.fail(span, &ProviderError{Provider: g.provider.Name(), Err: fmt.Errorf("waiting for generation slot: %w", err)})
	}
	defer g.sem.Release(1)

	opts := []llm.Option{llm.WithTemperature(temperature)}
	if g.cfg.Model != "" {
		opts = append(opts, llm.WithModel(g.cfg.Model))
	}

	text, err := g.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, opts...)
	if err != nil {
		return "", g.fail(span, &ProviderError{Provider: g.provider.Name(), Err: err})
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", g.fail(span, ErrEmptyResponse)
	}

	span.SetStatus(codes.Ok, "")
	return text, nil
}

func (g *Gateway) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(Classify(err)))
	return err
}
