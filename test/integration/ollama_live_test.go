package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"vetscribe-be/pkg/intake"
	"vetscribe-be/pkg/llm/gateway"
	"vetscribe-be/pkg/llm/ollama"
	"vetscribe-be/pkg/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a local Ollama: OLLAMA_TEST_URL=http://localhost:11434 OLLAMA_TEST_MODEL=llama3
func TestOllamaLiveAppointment(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_TEST_URL")
	if baseURL == "" {
		t.Skip("OLLAMA_TEST_URL not set")
	}
	model := os.Getenv("OLLAMA_TEST_MODEL")
	if model == "" {
		model = "llama3"
	}

	gw := gateway.New(ollama.NewOllamaProvider(baseURL, model), gateway.Config{
		Model:   model,
		Timeout: 3 * time.Minute,
	})

	in, err := intake.Normalize("appointment", map[string]interface{}{
		"reason":  "Vomiting x2 days",
		"history": "Ate part of a toy",
		"pe":      "T 102.9F, HR 120, mild cranial abdominal pain",
	})
	require.NoError(t, err)
	p := prompt.Build(in)

	start := time.Now()
	text, err := gw.Generate(context.Background(), p.System, p.User, p.Temperature)
	require.NoError(t, err)
	t.Logf("generated %d chars in %v", len(text), time.Since(start))

	assert.True(t, strings.Contains(text, "Subjective"), text)
}
