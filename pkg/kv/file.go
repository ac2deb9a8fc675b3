package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileStore keeps one JSON blob file per key under dir. Watch polls file
// modtimes so a write from another process on the same machine shows up as an
// external-change notification. Own writes record the resulting modtime and
// are skipped.
type FileStore struct {
	dir      string
	interval time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
	subs map[string]map[int]func(string)
	next int
}

func NewFileStore(dir string, pollInterval time.Duration) (*FileStore, error) {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: create data dir: %w", err)
	}
	return &FileStore{
		dir:      dir,
		interval: pollInterval,
		seen:     make(map[string]time.Time),
		subs:     make(map[string]map[int]func(string)),
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return b, nil
}

func (s *FileStore) Save(_ context.Context, key string, value []byte) error {
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("kv: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("kv: rename %s: %w", key, err)
	}

	s.mu.Lock()
	if fi, err := os.Stat(p); err == nil {
		s.seen[key] = fi.ModTime()
	}
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	// Tombstone rather than forget: a foreign recreate of this key must
	// still be reported as a change, not baselined as a first sighting.
	s.mu.Lock()
	s.seen[key] = time.Time{}
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Subscribe(key string, fn func(key string)) (cancel func()) {
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

func (s *FileStore) Watch(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweep()
		}
	}
}

func (s *FileStore) sweep() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	type hit struct {
		key string
		fns []func(string)
	}
	var hits []hit

	s.mu.Lock()
	collect := func(key string) {
		fns := make([]func(string), 0, len(s.subs[key]))
		for _, fn := range s.subs[key] {
			fns = append(fns, fn)
		}
		if len(fns) > 0 {
			hits = append(hits, hit{key: key, fns: fns})
		}
	}

	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		present[key] = struct{}{}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		prev, ok := s.seen[key]
		if ok && fi.ModTime().Equal(prev) {
			continue
		}
		s.seen[key] = fi.ModTime()
		if !ok {
			// First sighting; baseline only.
			continue
		}
		collect(key)
	}

	// A tracked file that vanished is a foreign deletion. Tombstone it so
	// the notification fires once and a later recreate still registers.
	for key, prev := range s.seen {
		if _, ok := present[key]; ok || prev.IsZero() {
			continue
		}
		s.seen[key] = time.Time{}
		collect(key)
	}
	s.mu.Unlock()

	for _, h := range hits {
		for _, fn := range h.fns {
			fn(h.key)
		}
	}
}
