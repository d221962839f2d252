package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vetscribe-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const relayKeyPrefix = "relay:"

// RelayRepositoryImpl stores relay entries in Redis so a handoff works across
// instances. SET with EX gives the TTL, GETDEL gives single-read delivery.
type RelayRepositoryImpl struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRelayRepository(rdb *redis.Client, ttl time.Duration) contract.RelayRepository {
	if ttl <= 0 {
		ttl = contract.RelayTTL
	}
	return &RelayRepositoryImpl{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *RelayRepositoryImpl) Send(ctx context.Context, key string, payload json.RawMessage) error {
	if err := contract.ValidateRelayEntry(key, payload); err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, relayKeyPrefix+key, []byte(payload), r.ttl).Err(); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	return nil
}

func (r *RelayRepositoryImpl) Receive(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := r.rdb.GetDel(ctx, relayKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("relay receive: %w", err)
	}
	return json.RawMessage(val), nil
}
