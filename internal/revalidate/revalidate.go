// Package revalidate tells the rendering layer which cached views depend on a
// mutated entity.
package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revalidator invalidates the views at paths after entity changed.
type Revalidator interface {
	Revalidate(ctx context.Context, entity string, paths ...string) error
}

// Event is the message published for each revalidation.
type Event struct {
	Entity string    `json:"entity"`
	Paths  []string  `json:"paths"`
	At     time.Time `json:"at"`
}

// RedisRevalidator publishes Events on a pub/sub channel.
type RedisRevalidator struct {
	client  *redis.Client
	channel string
	now     func() time.Time
}

func NewRedisRevalidator(client *redis.Client, channel string) *RedisRevalidator {
	return &RedisRevalidator{client: client, channel: channel, now: time.Now}
}

// Connect parses redisURL and pings the server before returning a client.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return client, nil
}

func (r *RedisRevalidator) Revalidate(ctx context.Context, entity string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	ev := Event{Entity: entity, Paths: paths, At: r.now().UTC()}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode revalidation event: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish revalidation for %s: %w", entity, err)
	}
	return nil
}

// NoOp discards revalidations. Used when REDIS_URL is unset.
type NoOp struct{}

func (NoOp) Revalidate(context.Context, string, ...string) error { return nil }

// Recorder keeps every revalidation in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
	Err    error
}

func (r *Recorder) Revalidate(_ context.Context, entity string, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, Event{Entity: entity, Paths: append([]string(nil), paths...), At: time.Now()})
	return nil
}

// Paths flattens every recorded path in order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.Events {
		out = append(out, e.Paths...)
	}
	return out
}
