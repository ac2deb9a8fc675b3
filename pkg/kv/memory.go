package kv

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. It backs the ephemeral tab-session
// state and the tests. Own writes never trigger subscribers; Inject simulates
// a write arriving from another session and delivers notifications
// synchronously, so MemoryStore works without a running Watch.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	subs map[string]map[int]func(string)
	next int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		subs: make(map[string]map[int]func(string)),
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Subscribe(key string, fn func(key string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// Inject stores value as if another session wrote it and notifies
// subscribers before returning.
func (s *MemoryStore) Inject(key string, value []byte) {
	s.mu.Lock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

func (s *MemoryStore) Watch(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
