package kv

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore shares blobs between sessions on different machines. Every write
// publishes the writer's id on a per-key channel; a store instance drops
// messages carrying its own id, so only foreign writes surface as
// notifications.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	id     string

	mu   sync.Mutex
	subs map[string]map[int]func(string)
	next int
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "animanga"
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		id:     uuid.NewString(),
		subs:   make(map[string]map[int]func(string)),
	}
}

func (s *RedisStore) dataKey(key string) string { return s.prefix + ":kv:" + key }
func (s *RedisStore) channel(key string) string { return s.prefix + ":notify:" + key }
func (s *RedisStore) channelPattern() string { return s.prefix + ":notify:*" }
func (s *RedisStore) keyFromChannel(ch string) string {
	return strings.TrimPrefix(ch, s.prefix+":notify:")
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.dataKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: redis get %s: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.dataKey(key), value, 0)
	pipe.Publish(ctx, s.channel(key), s.id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("kv: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.dataKey(key))
	pipe.Publish(ctx, s.channel(key), s.id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("kv: redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Subscribe(key string, fn func(key string)) (cancel func()) {
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

func (s *RedisStore) Watch(ctx context.Context) error {
	sub := s.rdb.PSubscribe(ctx, s.channelPattern())
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if msg.Payload == s.id {
				continue
			}
			s.notify(s.keyFromChannel(msg.Channel))
		}
	}
}

func (s *RedisStore) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
