package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5
	defaultRedisAddress    = "localhost:6379"
	defaultSessionTTL      = 2 * time.Hour
	defaultCollection      = "firestore_collection_category"
)

// Store backends. Memory is the default so the service runs without an
// external store; blacklist lookups then fail open.
const (
	StoreBackendMemory    = "memory"
	StoreBackendPostgres  = "postgres"
	StoreBackendFirestore = "firestore"
)

type Config struct {
	Debug    bool            `env:"APP_DEBUG" yaml:"debug"`
	Server   ServerConfig    `yaml:"server"`
	Store    StoreConfig     `yaml:"store"`
	Redis    RedisConfig     `yaml:"redis"`
	Session  SessionConfig   `yaml:"session"`
	Database DatabaseConfig  `yaml:"database"`
	Firebase FirestoreConfig `yaml:"firestore"`
}

// StoreConfig selects the category store backend.
type StoreConfig struct {
	Backend string `env:"STORE_BACKEND" yaml:"backend"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"     yaml:"host"`
	Port            int           `env:"DB_PORT"     yaml:"port"`
	User            string        `env:"DB_USER"     yaml:"user"`
	Password        string        `env:"DB_PASSWORD" yaml:"password"`
	DBName          string        `env:"DB_NAME"     yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// FirestoreConfig holds the Firestore project and collection holding
// category exclusion documents.
type FirestoreConfig struct {
	ProjectID       string `env:"FIRESTORE_PROJECT_ID"  yaml:"project_id"`
	CredentialsFile string `env:"FIRESTORE_CREDENTIALS" yaml:"credentials_file"`
	Collection      string `env:"FIRESTORE_COLLECTION"  yaml:"collection"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

// SessionConfig controls the in-memory upload session store.
type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL" yaml:"ttl"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}

	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required for the postgres backend")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required for the postgres backend")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required for the postgres backend")
		}
	case StoreBackendFirestore:
		if c.Firebase.ProjectID == "" {
			return errors.New("firestore.project_id is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	return nil
}

func Load(path string) (*Config, error) {
	cfg, err := load(path, setDefaults)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendMemory
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime * time.Minute
	}
	if cfg.Firebase.Collection == "" {
		cfg.Firebase.Collection = defaultCollection
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
}
