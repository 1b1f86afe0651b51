package ai

import (
	"context"
	"encoding/json"
	"time"

	"advoqat/models"

	"github.com/go-redis/redis/v8"
)

// RedisConversationStore keeps the assistant's per-user conversation state
// (practice area, booking step, selected lawyer) for the duration of a chat.
// A missing or corrupt record reads back as a fresh context, so the assistant
// degrades to intent detection instead of failing the turn.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConversationStore(client *redis.Client, ttl time.Duration) *RedisConversationStore {
	return &RedisConversationStore{client: client, ttl: ttl}
}

func (s *RedisConversationStore) key(userID string) string {
	return "assistant:conversation:" + userID
}

func (s *RedisConversationStore) Get(ctx context.Context, userID string) (*models.AIContext, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return &models.AIContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.AIContext
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		// Corrupt record: drop it and start the conversation over.
		s.client.Del(ctx, s.key(userID))
		return &models.AIContext{}, nil
	}
	return &conv, nil
}

func (s *RedisConversationStore) Set(ctx context.Context, userID string, conv *models.AIContext) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

func (s *RedisConversationStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
