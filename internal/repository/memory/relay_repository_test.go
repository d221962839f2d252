package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vetscribe-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newRepo() (*RelayRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	return NewRelayRepository(contract.RelayTTL, clock.Now), clock
}

func TestRelaySingleRead(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	require.NoError(t, repo.Send(ctx, "abc", json.RawMessage(`{"text":"hello"}`)))

	got, err := repo.Receive(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hello"}`, string(got))

	got, err = repo.Receive(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRelayUnknownKey(t *testing.T) {
	repo, _ := newRepo()

	got, err := repo.Receive(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRelaySendOverwrites(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	require.NoError(t, repo.Send(ctx, "k", json.RawMessage(`1`)))
	require.NoError(t, repo.Send(ctx, "k", json.RawMessage(`2`)))

	got, err := repo.Receive(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))
}

func TestRelayExpiry(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{name: "fresh", elapsed: 0, want: true},
		{name: "just before ttl", elapsed: contract.RelayTTL - time.Second, want: true},
		{name: "at ttl", elapsed: contract.RelayTTL, want: false},
		{name: "long after", elapsed: 2 * time.Hour, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, clock := newRepo()
			ctx := context.Background()
			require.NoError(t, repo.Send(ctx, "k", json.RawMessage(`"data"`)))

			clock.Advance(tt.elapsed)
			got, err := repo.Receive(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got != nil)
		})
	}
}

func TestRelaySendPrunesExpired(t *testing.T) {
	repo, clock := newRepo()
	ctx := context.Background()

	require.NoError(t, repo.Send(ctx, "old-1", json.RawMessage(`1`)))
	require.NoError(t, repo.Send(ctx, "old-2", json.RawMessage(`2`)))
	clock.Advance(contract.RelayTTL + time.Minute)

	require.NoError(t, repo.Send(ctx, "new", json.RawMessage(`3`)))
	assert.Equal(t, 1, repo.Len())
}

func TestRelayRejectsInvalidInput(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		payload json.RawMessage
	}{
		{name: "empty key", key: " ", payload: json.RawMessage(`{}`)},
		{name: "empty payload", key: "k", payload: nil},
		{name: "null payload", key: "k", payload: json.RawMessage(`null`)},
		{name: "empty string payload", key: "k", payload: json.RawMessage(`""`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Send(ctx, tt.key, tt.payload)
			assert.True(t, errors.Is(err, contract.ErrInvalidArgument))
		})
	}
	assert.Equal(t, 0, repo.Len())
}

func TestRelayCopiesPayload(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	payload := json.RawMessage(`"abc"`)
	require.NoError(t, repo.Send(ctx, "k", payload))
	payload[1] = 'z'

	got, err := repo.Receive(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))
}

func TestRelayConcurrentReceiveDeliversOnce(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()
	require.NoError(t, repo.Send(ctx, "k", json.RawMessage(`{"n":1}`)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.Receive(ctx, "k")
			assert.NoError(t, err)
			if got != nil {
				mu.Lock()
				delivered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, delivered)
}

func TestRelayManyKeys(t *testing.T) {
	repo, _ := newRepo()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, repo.Send(ctx, fmt.Sprintf("k-%d", i), json.RawMessage(fmt.Sprintf(`%d`, i))))
	}
	for i := 0; i < 50; i++ {
		got, err := repo.Receive(ctx, fmt.Sprintf("k-%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", i), string(got))
	}
	assert.Equal(t, 0, repo.Len())
}
