package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completionServer struct {
	*httptest.Server
	status  atomic.Int32
	reply   atomic.Value
	lastReq atomic.Value
}

// newCompletionServer fakes an OpenAI compatible chat completions endpoint.
func newCompletionServer(t *testing.T) *completionServer {
	t.Helper()

	cs := &completionServer{}
	cs.status.Store(http.StatusOK)
	cs.reply.Store("Subjective:\nGenerated by provider")

	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		cs.lastReq.Store(req)

		status := int(cs.status.Load())
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"upstream unavailable"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []interface{}{
				map[string]interface{}{"message": map[string]interface{}{"role": "assistant", "content": cs.reply.Load().(string)}},
			},
		})
	}))
	t.Cleanup(cs.Close)
	return cs
}

func TestGenerateThroughProvider(t *testing.T) {
	upstream := newCompletionServer(t)
	cfg := testConfig()
	cfg.Ai.OpenAIAPIKey = "sk-test"
	cfg.Ai.OpenAIBaseURL = upstream.URL
	app := newApp(t, cfg)

	status, body := do(t, app, "GET", "/health", "")
	mustStatus(t, http.StatusOK, status)
	assert.Equal(t, "live", body["generation"])

	status, body = do(t, app, "POST", "/generate", `{"mode":"surgery","surgeryMode":"advanced","preset":"Dental COHAT"}`)
	mustStatus(t, http.StatusOK, status)
	assert.Equal(t, "provider", body["source"])
	assert.Equal(t, "Subjective:\nGenerated by provider", body["text"])

	req := upstream.lastReq.Load().(map[string]interface{})
	assert.Equal(t, "gpt-4o-mini", req["model"])
	assert.Equal(t, 0.3, req["temperature"])
	messages := req["messages"].([]interface{})
	require.Len(t, messages, 2)
	system := messages[0].(map[string]interface{})["content"].(string)
	assert.Contains(t, system, "4 mg/kg in dogs or 2 mg/kg in cats")
}

func TestGenerateFallsBackWhenProviderFails(t *testing.T) {
	upstream := newCompletionServer(t)
	upstream.status.Store(http.StatusServiceUnavailable)
	cfg := testConfig()
	cfg.Ai.OpenAIAPIKey = "sk-test"
	cfg.Ai.OpenAIBaseURL = upstream.URL
	app := newApp(t, cfg)

	status, body := do(t, app, "POST", "/generate", `{"mode":"appointment","reason":"Cough"}`)
	mustStatus(t, http.StatusOK, status)
	assert.Equal(t, "stub", body["source"])
	assert.True(t, strings.HasPrefix(body["text"].(string), "Subjective:\nReason for visit: Cough"))
}

func TestGenerateFallsBackOnBlankCompletion(t *testing.T) {
	upstream := newCompletionServer(t)
	upstream.reply.Store("   ")
	cfg := testConfig()
	cfg.Ai.OpenAIAPIKey = "sk-test"
	cfg.Ai.OpenAIBaseURL = upstream.URL
	app := newApp(t, cfg)

	status, body := do(t, app, "POST", "/generate", `{"mode":"consult","question":"?"}`)
	mustStatus(t, http.StatusOK, status)
	assert.Equal(t, "stub", body["source"])
}

func TestRefineThroughProvider(t *testing.T) {
	upstream := newCompletionServer(t)
	cfg := testConfig()
	cfg.Ai.OpenAIAPIKey = "sk-test"
	cfg.Ai.OpenAIBaseURL = upstream.URL
	app := newApp(t, cfg)

	original := `Subjective:\nBright\n\nPlan:\nRecheck`

	t.Run("structure kept", func(t *testing.T) {
		upstream.reply.Store("Subjective:\nBright and alert\n\nPlan:\nRecheck in 2 weeks")
		status, body := do(t, app, "POST", "/refine", `{"kind":"soap","original":"`+original+`","feedback":"be specific","extra":"Dog, 12 kg"}`)
		mustStatus(t, http.StatusOK, status)
		assert.Equal(t, true, body["refined"])
		assert.Equal(t, "Subjective:\nBright and alert\n\nPlan:\nRecheck in 2 weeks", body["improved"])

		req := upstream.lastReq.Load().(map[string]interface{})
		user := req["messages"].([]interface{})[1].(map[string]interface{})["content"].(string)
		assert.Contains(t, user, "ADDITIONAL CONTEXT:\nDog, 12 kg")
	})

	t.Run("structure lost", func(t *testing.T) {
		upstream.reply.Store("Bright dog, recheck soon.")
		status, body := do(t, app, "POST", "/refine", `{"original":"`+original+`","feedback":"shorter"}`)
		mustStatus(t, http.StatusOK, status)
		assert.Equal(t, false, body["refined"])
		assert.Equal(t, "Subjective:\nBright\n\nPlan:\nRecheck", body["improved"])
	})
}

func TestMetricsExposeGenerationOutcomes(t *testing.T) {
	upstream := newCompletionServer(t)
	cfg := testConfig()
	cfg.Ai.OpenAIAPIKey = "sk-test"
	cfg.Ai.OpenAIBaseURL = upstream.URL
	app := newApp(t, cfg)

	do(t, app, "POST", "/relay/send", `{"relayId":"m","payload":1}`)

	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	mustStatus(t, http.StatusOK, resp.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `vetscribe_relay_operations_total{op="send",result="stored"} 1`)
}
