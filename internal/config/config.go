package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Mongo MongoConfig `yaml:"mongo"`
	Log   LogConfig   `yaml:"log"`
}

// MongoConfig holds MongoDB connection settings. Pool sizing is left to the
// driver defaults on purpose; this layer does not manage connections.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"             env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database"        env:"MONGO_DATABASE"        env-default:"metadatastore"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
