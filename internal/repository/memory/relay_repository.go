package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"vetscribe-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type relayEntry struct {
	payload   json.RawMessage
	createdAt time.Time
}

// RelayRepository keeps relay entries in process memory. Expiry is driven by
// the injected clock: entries are pruned on every Send and ignored by Receive
// once older than the TTL.
type RelayRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

var _ contract.RelayRepository = (*RelayRepository)(nil)

func NewRelayRepository(ttl time.Duration, now func() time.Time) *RelayRepository {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = contract.RelayTTL
	}
	return &RelayRepository{
		// No janitor: pruning follows our clock, not go-cache's.
		cache: cache.New(cache.NoExpiration, 0),
		ttl:   ttl,
		now:   now,
	}
}

func (r *RelayRepository) Send(ctx context.Context, key string, payload json.RawMessage) error {
	if err := contract.ValidateRelayEntry(key, payload); err != nil {
		return err
	}

	stored := make(json.RawMessage, len(payload))
	copy(stored, payload)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.cache.Set(key, relayEntry{payload: stored, createdAt: now}, cache.NoExpiration)
	r.prune(now)
	return nil
}

func (r *RelayRepository) Receive(ctx context.Context, key string) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(key)
	if !found {
		return nil, nil
	}
	r.cache.Delete(key)

	entry := x.(relayEntry)
	if r.expired(entry, r.now()) {
		return nil, nil
	}
	return entry.payload, nil
}

// Len reports the number of stored entries, expired ones included.
func (r *RelayRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.ItemCount()
}

func (r *RelayRepository) prune(now time.Time) {
	for key, item := range r.cache.Items() {
		if r.expired(item.Object.(relayEntry), now) {
			r.cache.Delete(key)
		}
	}
}

func (r *RelayRepository) expired(e relayEntry, now time.Time) bool {
	return now.Sub(e.createdAt) >= r.ttl
}
