package dto

import (
	"encoding/json"
	"time"
)

// Generation sources
const (
	SourceProvider = "provider"
	SourceStub     = "stub"
)

type GenerateResponse struct {
	OK     bool   `json:"ok"`
	Text   string `json:"text"`
	Mode   string `json:"mode"`
	Source string `json:"source"` // "provider" | "stub"
}

type RefineRequest struct {
	Kind     string          `json:"kind"` // "soap" | "toolbox" | "consult", defaults to soap
	Original string          `json:"original" validate:"required"`
	Feedback string          `json:"feedback" validate:"required"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

type RefineResponse struct {
	OK       bool   `json:"ok"`
	Improved string `json:"improved"`
	Refined  bool   `json:"refined"`
}

type HealthResponse struct {
	OK         bool      `json:"ok"`
	Service    string    `json:"service"`
	Time       time.Time `json:"time"`
	Generation string    `json:"generation"` // "live" | "stub"
}
