// Package dialog contains the conversation engine: the per-user state
// store, the intent router and the one-shot intents. The multi-turn flow
// controllers live under internal/flows and are dispatched from here.
package dialog

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"banking-assistant/internal/models"
)

// Store holds conversation state keyed by user identifier. Get never fails
// for an unknown user: a fresh idle state is created and stored instead.
// Implementations hand out copies; the engine writes changes back with Save.
type Store interface {
	Get(ctx context.Context, userID string) (*models.ConversationState, error)
	Save(ctx context.Context, state *models.ConversationState) error
}

const memoryStoreShards = 64

type memoryShard struct {
	mu     sync.RWMutex
	states map[string]*models.ConversationState
}

// MemoryStore keeps conversation state in process memory, sharded so that
// unrelated users never contend on one lock. A ttl of zero means state
// lives for the process lifetime, matching the reference behavior; a
// positive ttl lazily evicts conversations idle for longer than that.
type MemoryStore struct {
	shards [memoryStoreShards]memoryShard
	ttl    time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{ttl: ttl}
	for i := range s.shards {
		s.shards[i].states = make(map[string]*models.ConversationState)
	}
	return s
}

func (s *MemoryStore) shard(userID string) *memoryShard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.shards[h.Sum32()%memoryStoreShards]
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*models.ConversationState, error) {
	shard := s.shard(userID)

	shard.mu.RLock()
	state, ok := shard.states[userID]
	shard.mu.RUnlock()

	if ok && !s.expired(state) {
		return state.Clone(), nil
	}

	fresh := models.NewConversationState(userID)
	shard.mu.Lock()
	shard.states[userID] = fresh.Clone()
	shard.mu.Unlock()
	return fresh, nil
}

func (s *MemoryStore) Save(ctx context.Context, state *models.ConversationState) error {
	shard := s.shard(state.UserID)

	shard.mu.Lock()
	shard.states[state.UserID] = state.Clone()
	shard.mu.Unlock()
	return nil
}

func (s *MemoryStore) expired(state *models.ConversationState) bool {
	return s.ttl > 0 && time.Since(state.UpdatedAt) > s.ttl
}
