package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// ValkeyClient caches rendered event listings in Valkey/Redis.
type ValkeyClient struct {
	client rueidis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.Addr},
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &ValkeyClient{client: client, ttl: ttl}, nil
}

func eventsListKey() string {
	return "events:list"
}

// GetEventsListRaw returns the cached event list as raw JSON, avoiding an
// unmarshal/marshal round trip on the hot path.
func (v *ValkeyClient) GetEventsListRaw(ctx context.Context) ([]byte, error) {
	raw, err := v.client.Do(ctx, v.client.B().Get().Key(eventsListKey()).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("events list not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return raw, nil
}

// SetEventsList stores the event list with the configured TTL. Errors are
// returned for logging only; callers never fail on them.
func (v *ValkeyClient) SetEventsList(ctx context.Context, list interface{}) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal events list: %w", err)
	}

	cmd := v.client.B().Set().Key(eventsListKey()).
		Value(rueidis.BinaryString(payload)).
		Ex(v.ttl).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to cache events list: %w", err)
	}
	return nil
}

// InvalidateEventsList drops the cached listing after a write.
func (v *ValkeyClient) InvalidateEventsList(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Del().Key(eventsListKey()).Build()).Error()
}

func (v *ValkeyClient) Close() error {
	v.client.Close()
	return nil
}
