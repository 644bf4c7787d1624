package config

// Storage drivers selectable via StorageConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSAllowedOrigins lists the origins allowed by the CORS middleware.
	// The default single "*" entry allows any origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimitPerMinute caps requests per client IP per minute. Zero disables
	// the limiter.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	// Driver is the storage backend: "memory" keeps everything in process
	// memory (volatile), "postgres" uses the database configured below.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres"`

	// BcryptCost controls password hashing cost for stored user credentials.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// DatabaseConfig contains all database-related configuration settings.
// It is only consulted when the postgres driver is selected.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// UsesPostgres reports whether the postgres backend is selected.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == DriverPostgres
}
