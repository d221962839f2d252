package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/pkg/intake"
	"vetscribe-be/pkg/refine"
)

type IRefineService interface {
	Refine(ctx context.Context, req *dto.RefineRequest) (*dto.RefineResponse, error)
}

type refineService struct {
	generator TextGenerator
	pipeline  *refine.Pipeline
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewRefineService(generator TextGenerator, publisher IPublisherService, log logger.ILogger) IRefineService {
	return &refineService{
		generator: generator,
		pipeline:  refine.New(generator),
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *refineService) Refine(ctx context.Context, req *dto.RefineRequest) (*dto.RefineResponse, error) {
	kind, ok := refine.ParseKind(req.Kind)
	if !ok {
		return nil, &intake.ValidationError{Field: "kind", Message: "must be one of soap, toolbox, consult"}
	}

	start := s.now()
	res := s.pipeline.Refine(ctx, refine.Request{
		Kind:     kind,
		Original: req.Original,
		Feedback: req.Feedback,
		Extra:    extraText(req.Extra),
	})

	source := dto.SourceProvider
	if !res.Refined {
		source = dto.SourceStub
		if res.Err != nil {
			s.logger.Warn("REFINE", "Refinement skipped, returning original", map[string]interface{}{
				"kind":    kind,
				"outcome": res.Outcome,
				"error":   res.Err.Error(),
			})
		}
	}

	publishEvent(ctx, s.publisher, s.generator, s.logger, s.now, dto.GenerationEventMessage{
		Kind:       dto.KindRefine,
		Mode:       string(kind),
		Outcome:    string(res.Outcome),
		Source:     source,
		Error:      errorText(res.Err, res.Outcome),
		DurationMs: s.now().Sub(start).Milliseconds(),
	})

	return &dto.RefineResponse{
		OK:       true,
		Improved: res.Text,
		Refined:  res.Refined,
	}, nil
}

// extraText flattens the optional context field. A JSON string is unquoted,
// anything else is passed through as compact JSON.
func extraText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
