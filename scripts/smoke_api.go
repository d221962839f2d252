//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(title, method, path string, body interface{}) {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
}

func main() {
	color.Cyan("Starting VetScribe API smoke test against %s", baseURL)

	step("1. Health", "GET", "/health", nil)

	step("2. Generate appointment note", "POST", "/generate", map[string]interface{}{
		"mode":    "appointment",
		"reason":  "Limping left hind",
		"history": "Jumped off couch yesterday.",
	})

	step("3. Generate dental surgery note", "POST", "/generate", map[string]interface{}{
		"mode":       "surgery",
		"preset":     "Dental COHAT",
		"signalment": "6y MN DSH, 5.1 kg",
	})

	step("4. Refine with feedback", "POST", "/refine", map[string]interface{}{
		"kind":     "toolbox",
		"original": "Fluffy is doing great.",
		"feedback": "Make it warmer for the owner.",
	})

	relayID := fmt.Sprintf("smoke-%d", time.Now().UnixNano())
	step("5. Relay send", "POST", "/relay/send", map[string]interface{}{
		"relayId": relayID,
		"payload": map[string]interface{}{"text": "handoff"},
	})
	step("6. Relay receive", "POST", "/relay/receive", map[string]interface{}{"relayId": relayID})
	step("7. Relay receive again (expect null)", "POST", "/relay/receive", map[string]interface{}{"relayId": relayID})

	color.Cyan("\nSmoke sequence complete")
}
