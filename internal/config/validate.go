package config

import (
	"fmt"
	"strings"
)

// Characters MongoDB forbids in database names on every platform.
const forbiddenDatabaseChars = `/\. "$`

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Mongo.validate(); err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	return nil
}

func (m *MongoConfig) validate() error {
	if !strings.HasPrefix(m.URI, "mongodb://") && !strings.HasPrefix(m.URI, "mongodb+srv://") {
		return fmt.Errorf("uri must use the mongodb:// or mongodb+srv:// scheme (got %q)", m.URI)
	}

	if m.Database == "" {
		return fmt.Errorf("database name must not be empty")
	}
	if len(m.Database) >= 64 {
		return fmt.Errorf("database name must be shorter than 64 bytes (got %d)", len(m.Database))
	}
	if i := strings.IndexAny(m.Database, forbiddenDatabaseChars); i >= 0 {
		return fmt.Errorf("database name contains forbidden character %q", m.Database[i])
	}

	if m.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be > 0 (got %v)", m.ConnectTimeout)
	}

	return nil
}
