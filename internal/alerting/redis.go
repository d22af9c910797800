package alerting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

// RedisStore keeps the alert history in a capped redis list so multiple
// service instances share one view of it.
type RedisStore struct {
	client   *redis.Client
	key      string
	capacity int
	ttl      time.Duration
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig, capacity int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	var ttl time.Duration
	if cfg.TTL != "" {
		d, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis ttl: %w", err)
		}
		ttl = d
	}

	if capacity <= 0 {
		capacity = 1000
	}
	return &RedisStore{client: client, key: cfg.Key, capacity: capacity, ttl: ttl}, nil
}

func (s *RedisStore) Add(ctx context.Context, alert model.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, int64(s.capacity-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store alert: %w", err)
	}
	return nil
}

func (s *RedisStore) Recent(ctx context.Context, limit int) ([]model.Alert, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	alerts := make([]model.Alert, 0, len(raw))
	for _, item := range raw {
		var a model.Alert
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			continue // skip entries written by incompatible versions
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

func (s *RedisStore) Summary(ctx context.Context) (model.AlertSummary, error) {
	alerts, err := s.Recent(ctx, 0)
	if err != nil {
		return model.AlertSummary{}, err
	}
	return Summarize(alerts, time.Now()), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
