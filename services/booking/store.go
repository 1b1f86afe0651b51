package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"advoqat/models"

	"github.com/go-redis/redis/v8"
)

const journeyKeyPrefix = "journey:"

// JourneyTTL is how long a saved journey stays resumable.
const JourneyTTL = 24 * time.Hour

// JourneyStore persists at most one in-progress booking journey per client.
// Save overwrites any prior entry; Load discards an expired or corrupt record
// and returns nil without error.
type JourneyStore interface {
	Save(ctx context.Context, journey *models.BookingJourney) error
	Load(ctx context.Context, clientID string) (*models.BookingJourney, error)
	Clear(ctx context.Context, clientID string) error
}

// RedisJourneyStore is the production JourneyStore. The Redis key TTL is a
// backstop; the embedded ExpiresAt is authoritative at load time.
type RedisJourneyStore struct {
	client *redis.Client
}

func NewRedisJourneyStore(client *redis.Client) *RedisJourneyStore {
	return &RedisJourneyStore{client: client}
}

func (s *RedisJourneyStore) Save(ctx context.Context, journey *models.BookingJourney) error {
	now := time.Now()
	journey.Timestamp = now
	journey.ExpiresAt = now.Add(JourneyTTL)

	data, err := json.Marshal(journey)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, journeyKeyPrefix+journey.ClientID, data, JourneyTTL).Err()
}

func (s *RedisJourneyStore) Load(ctx context.Context, clientID string) (*models.BookingJourney, error) {
	key := journeyKeyPrefix + clientID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var journey models.BookingJourney
	if err := json.Unmarshal([]byte(data), &journey); err != nil {
		// Corrupt slot: discard silently.
		s.client.Del(ctx, key)
		return nil, nil
	}
	if journey.Expired(time.Now()) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &journey, nil
}

func (s *RedisJourneyStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, journeyKeyPrefix+clientID).Err()
}

// MemoryJourneyStore is an in-memory JourneyStore for tests.
type MemoryJourneyStore struct {
	mu     sync.Mutex
	slots  map[string][]byte
	nowFun func() time.Time
}

func NewMemoryJourneyStore() *MemoryJourneyStore {
	return &MemoryJourneyStore{slots: make(map[string][]byte), nowFun: time.Now}
}

// SetClock overrides the store's clock; tests use it to force expiry.
func (s *MemoryJourneyStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFun = now
}

func (s *MemoryJourneyStore) Save(_ context.Context, journey *models.BookingJourney) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFun()
	journey.Timestamp = now
	journey.ExpiresAt = now.Add(JourneyTTL)

	data, err := json.Marshal(journey)
	if err != nil {
		return err
	}
	s.slots[journey.ClientID] = data
	return nil
}

func (s *MemoryJourneyStore) Load(_ context.Context, clientID string) (*models.BookingJourney, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.slots[clientID]
	if !ok {
		return nil, nil
	}
	var journey models.BookingJourney
	if err := json.Unmarshal(data, &journey); err != nil {
		delete(s.slots, clientID)
		return nil, nil
	}
	if journey.Expired(s.nowFun()) {
		delete(s.slots, clientID)
		return nil, nil
	}
	return &journey, nil
}

func (s *MemoryJourneyStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, clientID)
	return nil
}

// Len reports how many slots are occupied; used in tests.
func (s *MemoryJourneyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}
