package store

// Config holds configuration for the Store.
type Config struct {
	// TablePrefix is prepended to every entity's TableName.
	// Default: "stockroom_"
	TablePrefix string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TablePrefix: "stockroom_",
	}
}

// validate fills in defaults for unset values.
func (c *Config) validate() {
	if c.TablePrefix == "" {
		c.TablePrefix = "stockroom_"
	}
}
