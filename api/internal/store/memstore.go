package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore is the in-process projection cache used by the bot and by tests.
type MemStore struct {
	m sync.Map // key -> json.RawMessage
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Set(_ context.Context, key string, value any) error {
	js, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.m.Store(key, json.RawMessage(js))
	return nil
}

func (s *MemStore) Get(_ context.Context, key string) (json.RawMessage, bool) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(json.RawMessage), true
}

// Keys returns every stored key; order is unspecified.
func (s *MemStore) Keys() []string {
	var keys []string
	s.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}
