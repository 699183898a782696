package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const wizardTTL = 2 * time.Hour

func wizardKey(id string) string {
	return "wizard:" + id
}

// RedisWizardStore keeps drafts as JSON with a sliding TTL.
type RedisWizardStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisWizardStore(rdb *redis.Client) *RedisWizardStore {
	return &RedisWizardStore{rdb: rdb, ttl: wizardTTL}
}

func (s *RedisWizardStore) Save(ctx context.Context, w *Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	return s.rdb.Set(ctx, wizardKey(w.ID), raw, s.ttl).Err()
}

func (s *RedisWizardStore) Load(ctx context.Context, id string) (*Wizard, error) {
	raw, err := s.rdb.Get(ctx, wizardKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: wizard %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var w Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	return &w, nil
}

// MemoryWizardStore is the single-process fallback used when no redis is
// configured.
type MemoryWizardStore struct {
	mu      sync.RWMutex
	wizards map[string]Wizard
}

func NewMemoryWizardStore() *MemoryWizardStore {
	return &MemoryWizardStore{wizards: map[string]Wizard{}}
}

func (s *MemoryWizardStore) Save(_ context.Context, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards[w.ID] = w.clone()
	return nil
}

func (s *MemoryWizardStore) Load(_ context.Context, id string) (*Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wizards[id]
	if !ok {
		return nil, fmt.Errorf("%w: wizard %s", ErrNotFound, id)
	}
	c := w.clone()
	return &c, nil
}
