package storage

import (
	"context"
	"sync"
	"time"

	"metahub/internal/core/domain"
)

type memoryEntry struct {
	module    *domain.Module
	expiresAt time.Time
}

type actionEntry struct {
	moduleName string
	expiresAt  time.Time
}

// MemoryStore is a process-local ModuleStore with the same lease semantics
// as the Redis adapter. Expiry is checked lazily on read, so no reaper
// goroutine is needed. Intended for tests and single-node runs.
type MemoryStore struct {
	mu         sync.RWMutex
	modules    map[string]memoryEntry
	actions    map[string]actionEntry
	expiration time.Duration
	now        func() time.Time
}

func NewMemoryStore(expiration time.Duration) *MemoryStore {
	return &MemoryStore{
		modules:    make(map[string]memoryEntry),
		actions:    make(map[string]actionEntry),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *MemoryStore) Register(_ context.Context, module *domain.Module) error {
	if err := module.Validate(); err != nil {
		return err
	}

	expiresAt := s.now().Add(s.expiration)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.modules[module.Name] = memoryEntry{module: module, expiresAt: expiresAt}
	for _, actionID := range module.Actions {
		s.actions[actionID] = actionEntry{moduleName: module.Name, expiresAt: expiresAt}
	}

	return nil
}

func (s *MemoryStore) GetModule(_ context.Context, name string) (*domain.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getModuleLocked(name)
}

func (s *MemoryStore) GetModuleByAction(_ context.Context, actionID string) (*domain.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.actions[actionID]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, domain.ErrModuleNotFound
	}

	return s.getModuleLocked(entry.moduleName)
}

func (s *MemoryStore) ModuleNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.modules))
	for name, entry := range s.modules {
		if s.now().After(entry.expiresAt) {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

func (s *MemoryStore) AllModules(_ context.Context) (map[string]*domain.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	modules := make(map[string]*domain.Module, len(s.modules))
	for name, entry := range s.modules {
		if s.now().After(entry.expiresAt) {
			continue
		}
		modules[name] = entry.module
	}

	return modules, nil
}

func (s *MemoryStore) getModuleLocked(name string) (*domain.Module, error) {
	entry, ok := s.modules[name]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, domain.ErrModuleNotFound
	}

	return entry.module, nil
}
