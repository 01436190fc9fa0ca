package codestore

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/gosignin/internal/pkg/clock"
)

type memoryRecord struct {
	code      string
	expiresAt time.Time
}

// Memory is an in-process Store. Expiry is evaluated against the injected
// clock on every read, so a record past its deadline reads as absent even
// before it is swept.
type Memory struct {
	mu      sync.Mutex
	clock   clock.Clocker
	records map[string]memoryRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory(clk clock.Clocker) *Memory {
	if clk == nil {
		clk = clock.New()
	}

	return &Memory{
		clock:   clk,
		records: make(map[string]memoryRecord),
	}
}

// Put replaces the record and sweeps expired entries.
func (m *Memory) Put(_ context.Context, channel, identity, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for k, rec := range m.records {
		if !now.Before(rec.expiresAt) {
			delete(m.records, k)
		}
	}

	key := Key(channel, identity)
	if ttl <= 0 {
		delete(m.records, key)
		return nil
	}

	m.records[key] = memoryRecord{code: code, expiresAt: now.Add(ttl)}

	return nil
}

// Get returns the live code for the key.
func (m *Memory) Get(_ context.Context, channel, identity string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.live(Key(channel, identity))
	if !ok {
		return "", ErrNotFound
	}

	return rec.code, nil
}

// Delete removes the record for the key.
func (m *Memory) Delete(_ context.Context, channel, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, Key(channel, identity))

	return nil
}

// VerifyAndConsume compares and deletes under the store lock.
func (m *Memory) VerifyAndConsume(_ context.Context, channel, identity, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(channel, identity)
	rec, ok := m.live(key)
	if !ok || rec.code != code {
		return false, nil
	}

	delete(m.records, key)

	return true, nil
}

// live must be called with mu held.
func (m *Memory) live(key string) (memoryRecord, bool) {
	rec, ok := m.records[key]
	if !ok || !m.clock.Now().Before(rec.expiresAt) {
		return memoryRecord{}, false
	}

	return rec, true
}
