package repositories

import (
	"context"
	"sync"
)

// Durable client state keys
const (
	KeyCurrentUser     = "currentUser"
	KeyDarkMode        = "darkMode"
	KeyRegisteredUsers = "registeredUsers"
)

// StateRepository is the durable key/value store for client state.
// Values are opaque strings; Get reports whether the key exists.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStateRepository keeps client state for the lifetime of the process
type MemoryStateRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStateRepository creates an empty in-memory repository
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{values: make(map[string]string)}
}

// Get returns the value stored under key
func (r *MemoryStateRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	return value, ok, nil
}

// Set stores value under key
func (r *MemoryStateRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
	return nil
}

// Remove deletes key; removing a missing key is not an error
func (r *MemoryStateRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.values, key)
	r.mu.Unlock()
	return nil
}
