package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"

	appErrors "github.com/noah-isme/easycd-api/pkg/errors"
)

// Memory is an in-process store with the same contract as the Redis cache repository.
type Memory struct {
	c *gocache.Cache
}

// NewMemory builds a Memory store whose entries default to ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, time.Minute)}
}

// Get unmarshals the stored payload into dest or returns ErrCacheMiss.
func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := m.c.Get(key)
	if !ok {
		return appErrors.ErrCacheMiss
	}
	raw, _ := v.([]byte)
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set stores value as JSON so readers never share memory with the writer.
func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	m.c.Set(key, payload, ttl)
	return nil
}

// DeleteByPattern removes keys matching a glob pattern such as "courses:*".
func (m *Memory) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range m.c.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("match pattern %s: %w", pattern, err)
		}
		if matched {
			m.c.Delete(key)
		}
	}
	return nil
}
