package cart

import (
	"context"
	"sync"
)

// Storage persists cart snapshots under a session key. The Redis-backed
// implementation lives in pkg/redis; MemoryStorage backs tests.
type Storage interface {
	// Load returns the stored snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, snapshot []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStorage keeps snapshots in a map.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[sessionID], nil
}

func (m *MemoryStorage) Save(_ context.Context, sessionID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(snapshot))
	copy(copied, snapshot)
	m.data[sessionID] = copied
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}
