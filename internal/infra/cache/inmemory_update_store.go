package cache

import (
	"context"
	"sync"
	"time"

	"tg-storefront/internal/pkg/clock"
)

// InMemoryUpdateStore is the single-instance fallback when Redis is not configured.
type InMemoryUpdateStore struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	clock     clock.Clock
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewInMemoryUpdateStore(clk clock.Clock) *InMemoryUpdateStore {
	s := &InMemoryUpdateStore{
		entries:  make(map[string]time.Time),
		clock:    clk,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *InMemoryUpdateStore) MarkProcessed(_ context.Context, id string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if expiresAt, ok := s.entries[id]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.entries[id] = now.Add(ttl)
	return true, nil
}

// Close is safe to call more than once.
func (s *InMemoryUpdateStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryUpdateStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *InMemoryUpdateStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryUpdateStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for id, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, id)
		}
	}
}
