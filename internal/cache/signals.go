package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Signal kinds with independent freshness requirements. Today's slate moves
// with postponements and late scratches; expert consensus barely changes
// within a day.
const (
	KindTodayGames = "today_games"
	KindSchedule   = "schedule"
	KindStandings  = "standings"
	KindExpert     = "expert"
)

// TTLs maps a signal kind to its cache lifetime.
type TTLs map[string]time.Duration

const defaultTTL = 15 * time.Minute

// envelope wraps a cached payload with its write time, so freshness is
// checked against the cache's own clock rather than trusting Redis expiry
// alone.
type envelope struct {
	SavedAt time.Time       `json:"saved_at"`
	Payload json.RawMessage `json:"payload"`
}

// SignalCache is a Redis-backed TTL cache for collaborator signal payloads,
// stored as JSON. The clock is injectable so expiry behavior is
// deterministic in tests.
type SignalCache struct {
	client *redis.Client
	ttls   TTLs
	now    func() time.Time
	logger *zap.SugaredLogger
}

func New(client *redis.Client, ttls TTLs, logger *zap.Logger) *SignalCache {
	return &SignalCache{
		client: client,
		ttls:   ttls,
		now:    time.Now,
		logger: logger.Sugar(),
	}
}

// WithClock replaces the cache's time source. Test use only.
func (c *SignalCache) WithClock(now func() time.Time) *SignalCache {
	c.now = now
	return c
}

func (c *SignalCache) key(kind, scope string) string {
	return fmt.Sprintf("signals:%s:%s", kind, scope)
}

func (c *SignalCache) ttl(kind string) time.Duration {
	if ttl, ok := c.ttls[kind]; ok {
		return ttl
	}
	return defaultTTL
}

// Get unmarshals a fresh cached payload into dest. Returns false on miss,
// staleness or any Redis failure; a broken cache degrades to a loader call,
// never to an error.
func (c *SignalCache) Get(ctx context.Context, kind, scope string, dest any) bool {
	raw, err := c.client.Get(ctx, c.key(kind, scope)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("signal cache read failed", "kind", kind, "error", err)
		}
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warnw("signal cache payload corrupt", "kind", kind, "error", err)
		return false
	}
	if c.now().Sub(env.SavedAt) >= c.ttl(kind) {
		return false
	}
	if err := json.Unmarshal(env.Payload, dest); err != nil {
		c.logger.Warnw("signal cache payload corrupt", "kind", kind, "error", err)
		return false
	}
	return true
}

// Set stores a payload under the kind's configured TTL.
func (c *SignalCache) Set(ctx context.Context, kind, scope string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("signal cache marshal failed", "kind", kind, "error", err)
		return
	}
	raw, err := json.Marshal(envelope{SavedAt: c.now(), Payload: payload})
	if err != nil {
		c.logger.Warnw("signal cache marshal failed", "kind", kind, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(kind, scope), raw, c.ttl(kind)).Err(); err != nil {
		c.logger.Warnw("signal cache write failed", "kind", kind, "error", err)
	}
}

// GetOrLoad returns the cached payload or falls through to the loader and
// caches its result. Loader errors pass through untouched.
func GetOrLoad[T any](ctx context.Context, c *SignalCache, kind, scope string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, kind, scope, &cached) {
		return cached, nil
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}
	c.Set(ctx, kind, scope, fresh)
	return fresh, nil
}

// HealthCheck pings Redis.
func (c *SignalCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
