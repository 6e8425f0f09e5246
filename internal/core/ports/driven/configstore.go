package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g. TOML files).
type ConfigStore interface {
	// GetString retrieves a string configuration value.
	// Returns empty string if the key doesn't exist.
	GetString(key string) string

	// Set stores a configuration value and persists it immediately.
	Set(key, value string) error

	// Keys returns all known configuration keys in stable order.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
