// Package file provides the file-based implementation of the config
// store port. Configuration is a flat TOML file in the octotext
// config directory.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/octotext/octotext/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Known configuration keys.
const (
	KeyAPIKey        = "api_key"
	KeyBaseURL       = "base_url"
	KeyDefaultFormat = "default_format"
)

// knownKeys lists every key in display order.
var knownKeys = []string{KeyAPIKey, KeyBaseURL, KeyDefaultFormat}

// fileName is the config file inside the config directory.
const fileName = "config.toml"

// ConfigStore persists configuration as a flat TOML table of strings.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewConfigStore creates a TOML-backed config store. If configDir is
// empty, it defaults to ~/.octotext.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".octotext")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, fileName),
		data:     make(map[string]string),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// GetString retrieves a configuration value. Missing keys are empty.
func (s *ConfigStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Set stores a value and persists the file immediately. Setting a key
// to the empty string removes it.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.data, key)
	} else {
		s.data[key] = value
	}
	return s.save()
}

// Keys returns the known configuration keys in display order.
func (s *ConfigStore) Keys() []string {
	keys := make([]string, len(knownKeys))
	copy(keys, knownKeys)
	return keys
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(raw, &s.data)
}

// save writes the file with owner-only permissions: it holds the API key.
func (s *ConfigStore) save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}
