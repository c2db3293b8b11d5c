package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"metahub/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const (
	modulePrefix = "module:"
	actionPrefix = "action:"
)

// RedisStore keeps module records and action reverse-mappings as expiring
// Redis keys. A registration writes all keys of one module in a single
// MULTI/EXEC so concurrent readers never observe a half-written lease.
type RedisStore struct {
	client     redis.Cmdable
	expiration time.Duration
}

func NewRedisStore(client redis.Cmdable, expiration time.Duration) *RedisStore {
	return &RedisStore{client: client, expiration: expiration}
}

func (s *RedisStore) Register(ctx context.Context, module *domain.Module) error {
	if err := module.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(module)
	if err != nil {
		return fmt.Errorf("failed to encode module record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, modulePrefix+module.Name, raw, s.expiration)
	for _, actionID := range module.Actions {
		pipe.Set(ctx, actionPrefix+actionID, module.Name, s.expiration)
	}

	// action keys dropped since the previous heartbeat are not deleted here;
	// they expire on their own TTL (see DESIGN.md on the staleness window)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to write registry entries: %w", err)
	}

	return nil
}

func (s *RedisStore) GetModule(ctx context.Context, name string) (*domain.Module, error) {
	raw, err := s.client.Get(ctx, modulePrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrModuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read module record: %w", err)
	}

	var module domain.Module
	if err := json.Unmarshal(raw, &module); err != nil {
		return nil, fmt.Errorf("failed to decode module record: %w", err)
	}

	return &module, nil
}

func (s *RedisStore) GetModuleByAction(ctx context.Context, actionID string) (*domain.Module, error) {
	name, err := s.client.Get(ctx, actionPrefix+actionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrModuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read action mapping: %w", err)
	}

	return s.GetModule(ctx, name)
}

func (s *RedisStore) ModuleNames(ctx context.Context) ([]string, error) {
	keys, err := s.moduleKeys(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = strings.TrimPrefix(key, modulePrefix)
	}

	return names, nil
}

func (s *RedisStore) AllModules(ctx context.Context) (map[string]*domain.Module, error) {
	keys, err := s.moduleKeys(ctx)
	if err != nil {
		return nil, err
	}

	modules := make(map[string]*domain.Module, len(keys))
	for _, key := range keys {
		module, err := s.GetModule(ctx, strings.TrimPrefix(key, modulePrefix))
		if errors.Is(err, domain.ErrModuleNotFound) {
			// expired between the scan and the fetch
			continue
		}
		if err != nil {
			return nil, err
		}

		modules[module.Name] = module
	}

	return modules, nil
}

func (s *RedisStore) moduleKeys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, modulePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan module keys: %w", err)
	}

	return keys, nil
}
