// internal/dialog/store_redis.go
package dialog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

const redisKeyPrefix = "dialog:state:"

// RedisStore keeps conversation state in Redis as JSON documents, so state
// survives a process restart. The per-user mutual exclusion still lives in
// the engine; a single engine process is assumed to own the keyspace.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"store": "redis"}),
	}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.ConversationState, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+userID).Result()
	if err == redis.Nil {
		fresh := models.NewConversationState(userID)
		if err := s.Save(ctx, fresh); err != nil {
			return nil, err
		}
		return fresh, nil
	}
	if err != nil {
		return nil, cerrors.NewStateStoreFailedError(err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		// A corrupted payload should not lock a user out of the
		// assistant; start over from idle.
		s.logger.Warn("discarding corrupted state payload", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return models.NewConversationState(userID), nil
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *models.ConversationState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return cerrors.NewStateDecodeFailedError(state.UserID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+state.UserID, payload, s.ttl).Err(); err != nil {
		return cerrors.NewStateStoreFailedError(err)
	}
	return nil
}
