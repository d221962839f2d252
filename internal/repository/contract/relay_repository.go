package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RelayTTL is how long an unread relay entry survives.
const RelayTTL = 15 * time.Minute

var ErrInvalidArgument = errors.New("invalid argument")

// RelayRepository hands a payload from one client session to another.
// Each sent payload can be received at most once.
type RelayRepository interface {
	// Send stores payload under key, replacing any previous entry, and prunes
	// expired entries.
	Send(ctx context.Context, key string, payload json.RawMessage) error

	// Receive returns and removes the payload. A missing or expired key
	// yields nil and no error.
	Receive(ctx context.Context, key string) (json.RawMessage, error)
}

// ValidateRelayEntry rejects an empty key or an empty, null or "" payload.
func ValidateRelayEntry(key string, payload json.RawMessage) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: relayId is required", ErrInvalidArgument)
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return fmt.Errorf("%w: payload is required", ErrInvalidArgument)
	}
	return nil
}
