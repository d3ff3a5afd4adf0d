// File: services/intelligence/sessionStore.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"miles/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:sess:"

// RedisSessionStore persists per-session conversation history so replies
// stay coherent across requests.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the stored history for the session, or an empty slice when
// the session is new or expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return []models.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store get: %w", err)
	}

	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("session store decode: %w", err)
	}
	return history, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, history []models.ChatMessage) error {
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("session store encode: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+sessionID, encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store set: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session store clear: %w", err)
	}
	return nil
}
