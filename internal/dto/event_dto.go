package dto

import "time"

// Generation kinds
const (
	KindGenerate = "generate"
	KindRefine   = "refine"
)

// GenerationEventMessage is published on the internal bus after every
// generate or refine request.
type GenerationEventMessage struct {
	EventId    string    `json:"event_id"`
	Kind       string    `json:"kind"` // "generate" | "refine"
	Mode       string    `json:"mode"`
	Outcome    string    `json:"outcome"`
	Source     string    `json:"source"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (m GenerationEventMessage) Payload() map[string]interface{} {
	return map[string]interface{}{
		"event_id":    m.EventId,
		"kind":        m.Kind,
		"mode":        m.Mode,
		"outcome":     m.Outcome,
		"source":      m.Source,
		"provider":    m.Provider,
		"model":       m.Model,
		"error":       m.Error,
		"duration_ms": m.DurationMs,
		"occurred_at": m.OccurredAt,
	}
}
