package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// StorageDriver selects the RecordStore backend.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StoragePostgres StorageDriver = "postgres"
)

// AuthMode selects how caller credentials are resolved to user keys.
type AuthMode string

const (
	AuthHeader   AuthMode = "header"
	AuthHMAC     AuthMode = "hmac"
	AuthFirebase AuthMode = "firebase"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Catat Usaha"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Driver StorageDriver `envconfig:"STORAGE_DRIVER" default:"memory"`
	}

	DB struct {
		Host        string `envconfig:"DB_HOST" default:"localhost"`
		Port        int    `envconfig:"DB_PORT" default:"5432"`
		User        string `envconfig:"DB_USER" default:"postgres"`
		Password    string `envconfig:"DB_PASSWORD" default:""`
		Name        string `envconfig:"DB_NAME" default:"catatusaha"`
		ApplySchema bool   `envconfig:"DB_APPLY_SCHEMA" default:"false"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Auth struct {
		Mode       AuthMode `envconfig:"AUTH_MODE" default:"header"`
		HMACSecret string   `envconfig:"AUTH_HMAC_SECRET"`
		HMACIssuer string   `envconfig:"AUTH_HMAC_ISSUER" default:"catatusaha"`
	}

	Firebase struct {
		ProjectID string `envconfig:"FIREBASE_PROJECT_ID"`
		CertsURL  string `envconfig:"FIREBASE_CERTS_URL" default:"https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`
	}

	Report struct {
		Timezone string `envconfig:"REPORT_TIMEZONE" default:"Asia/Jakarta"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location returns the time zone used to decide where a reporting day starts.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading report timezone %q: %w", c.Report.Timezone, err)
	}

	return loc, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Auth.Mode {
	case AuthHeader:
	case AuthHMAC:
		if strings.TrimSpace(c.Auth.HMACSecret) == "" {
			return fmt.Errorf("AUTH_HMAC_SECRET is required when AUTH_MODE=%s", AuthHMAC)
		}
	case AuthFirebase:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_MODE=%s", AuthFirebase)
		}
	default:
		return fmt.Errorf("unknown auth mode %q", c.Auth.Mode)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
