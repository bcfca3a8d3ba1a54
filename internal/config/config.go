package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	MQTT    MQTTConfig
	Log     LogConfig
	Digest  DigestConfig
	Auth    AuthConfig
	// SeedSampleData writes the sample fleet into an empty store at startup.
	SeedSampleData bool
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig selects and configures the collection store.
type StorageConfig struct {
	Backend  string
	DataDir  string
	MongoURI string
	MongoDB  string
}

// MQTTConfig configures domain event publishing. An empty Broker disables it.
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// DigestConfig holds scheduler-related settings.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
}

// AuthConfig holds the operator credentials and token settings.
type AuthConfig struct {
	Username  string
	Password  string
	JWTSecret string
	JWTExpiry time.Duration
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Digest.Timezone)
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine, the environment may carry everything
		_ = godotenv.Load()
	}

	expiry, err := time.ParseDuration(getenvWithDefault("JWT_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}
	seed, err := strconv.ParseBool(getenvWithDefault("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend:  getenvWithDefault("STORE_BACKEND", BackendFile),
			DataDir:  getenvWithDefault("DATA_DIR", "data"),
			MongoURI: getenvWithDefault("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:  getenvWithDefault("MONGO_DB", "fleet_backoffice"),
		},
		MQTT: MQTTConfig{
			Broker:   os.Getenv("MQTT_BROKER"),
			Topic:    getenvWithDefault("MQTT_TOPIC", "fleet/events"),
			ClientID: getenvWithDefault("MQTT_CLIENT_ID", "fleet-backoffice"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "text"),
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_SCHEDULE", "0 7 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Accra"),
		},
		Auth: AuthConfig{
			Username:  getenvWithDefault("ADMIN_USERNAME", "admin"),
			Password:  os.Getenv("ADMIN_PASSWORD"),
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTExpiry: expiry,
		},
		SeedSampleData: seed,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			return errors.New("DATA_DIR must be provided for the file backend")
		}
	case BackendMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("MONGO_URI must be provided for the mongo backend")
		}
		if c.Storage.MongoDB == "" {
			return errors.New("MONGO_DB must be provided for the mongo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Storage.Backend)
	}

	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return errors.New("MQTT_TOPIC must be provided when MQTT_BROKER is set")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format)
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_SCHEDULE must be provided")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	switch {
	case c.Auth.Username == "":
		return errors.New("ADMIN_USERNAME must be provided")
	case c.Auth.Password == "":
		return errors.New("ADMIN_PASSWORD must be provided")
	case c.Auth.JWTSecret == "":
		return errors.New("JWT_SECRET must be provided")
	case c.Auth.JWTExpiry <= 0:
		return errors.New("JWT_EXPIRY must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
