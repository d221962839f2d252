package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/pkg/intake"
	"vetscribe-be/pkg/llm/gateway"
	"vetscribe-be/pkg/prompt"
	"vetscribe-be/pkg/stub"

	"github.com/google/uuid"
)

var ErrEmptyDocument = errors.New("fallback renderer produced an empty document")

// TextGenerator is what the services need from the generation gateway.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
	Configured() bool
	ProviderName() string
	Model() string
}

type IGenerationService interface {
	Generate(ctx context.Context, mode string, raw map[string]interface{}) (*dto.GenerateResponse, error)
	Live() bool
}

type generationService struct {
	generator TextGenerator
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewGenerationService(generator TextGenerator, publisher IPublisherService, log logger.ILogger) IGenerationService {
	return &generationService{
		generator: generator,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *generationService) Live() bool {
	return s.generator != nil && s.generator.Configured()
}

// Generate normalizes the intake and asks the provider for a document. Any
// provider failure falls back to the deterministic stub so the caller always
// gets a usable note.
func (s *generationService) Generate(ctx context.Context, mode string, raw map[string]interface{}) (*dto.GenerateResponse, error) {
	start := s.now()

	in, err := intake.Normalize(mode, raw)
	if err != nil {
		return nil, err
	}

	p := prompt.Build(in)

	var (
		text   string
		genErr = gateway.ErrNotConfigured
	)
	if s.generator != nil {
		text, genErr = s.generator.Generate(ctx, p.System, p.User, p.Temperature)
	}
	outcome := gateway.Classify(genErr)

	source := dto.SourceProvider
	if genErr != nil {
		if outcome != gateway.OutcomeNotConfigured {
			s.logger.Warn("GENERATION", "Provider failed, serving stub document", map[string]interface{}{
				"mode":    in.Mode(),
				"outcome": outcome,
				"error":   genErr.Error(),
			})
		}
		text = stub.Render(in)
		source = dto.SourceStub
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	s.emit(ctx, dto.GenerationEventMessage{
		Kind:       dto.KindGenerate,
		Mode:       string(in.Mode()),
		Outcome:    string(outcome),
		Source:     source,
		Error:      errorText(genErr, outcome),
		DurationMs: s.now().Sub(start).Milliseconds(),
	})

	return &dto.GenerateResponse{
		OK:     true,
		Text:   text,
		Mode:   string(in.Mode()),
		Source: source,
	}, nil
}

func (s *generationService) emit(ctx context.Context, msg dto.GenerationEventMessage) {
	publishEvent(ctx, s.publisher, s.generator, s.logger, s.now, msg)
}

// publishEvent fills the common event fields and publishes. Failures are
// logged only; events never affect the response.
func publishEvent(
	ctx context.Context,
	publisher IPublisherService,
	generator TextGenerator,
	log logger.ILogger,
	now func() time.Time,
	msg dto.GenerationEventMessage,
) {
	if publisher == nil {
		return
	}
	msg.EventId = uuid.NewString()
	msg.OccurredAt = now().UTC()
	msg.Provider = "none"
	if generator != nil {
		msg.Provider = generator.ProviderName()
		msg.Model = generator.Model()
	}

	if err := publisher.PublishGeneration(ctx, msg); err != nil {
		log.Warn("EVENTS", "Failed to publish generation event", map[string]interface{}{
			"kind":  msg.Kind,
			"error": err.Error(),
		})
	}
}

func errorText(err error, outcome gateway.Outcome) string {
	if err == nil || outcome == gateway.OutcomeNotConfigured {
		return ""
	}
	return err.Error()
}
