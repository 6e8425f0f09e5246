// Package memory provides an in-memory config store, used by tests and
// by embedders that manage configuration themselves.
package memory

import (
	"sync"

	"github.com/octotext/octotext/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]string
	known  []string
}

// NewConfigStore creates a new in-memory config store. The known keys
// mirror the file-backed store so key validation behaves the same.
func NewConfigStore(knownKeys ...string) *ConfigStore {
	if len(knownKeys) == 0 {
		knownKeys = []string{"api_key", "base_url", "default_format"}
	}
	return &ConfigStore{
		values: make(map[string]string),
		known:  knownKeys,
	}
}

// GetString retrieves a configuration value, empty when unset.
func (s *ConfigStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a configuration value. An empty value removes the key.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.values, key)
		return nil
	}
	s.values[key] = value
	return nil
}

// Keys returns the known configuration keys in display order.
func (s *ConfigStore) Keys() []string {
	keys := make([]string, len(s.known))
	copy(keys, s.known)
	return keys
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
