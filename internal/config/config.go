package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// State backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

type Config struct {
	Hevy      HevyConfig      `yaml:"hevy"`
	Notion    NotionConfig    `yaml:"notion"`
	State     StateConfig     `yaml:"state"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type HevyConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type NotionConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Version string `yaml:"version"`
	// DatabaseID is the page (database row) that receives the workout.
	DatabaseID string `yaml:"database_id"`
	Property   string `yaml:"property"`
}

// StateConfig selects where the last synced workout id is kept.
// Path is used by the file and sqlite backends, DSN by postgres,
// Bucket/Key/Region/Endpoint by s3.
type StateConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	DSN      string `yaml:"dsn"`
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Schedule is an optional cron expression; when set, serve also runs a
	// sync on that schedule.
	Schedule string `yaml:"schedule"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Addr returns host:port for a plain TCP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads config from a YAML file (skipped when path is empty), applies
// environment variable overrides, then fills defaults.
//
// Unprefixed names are honoured so existing .env files keep working:
//
//	HEVY_API_KEY, NOTION_TOKEN, DATABASE_ID, PORT
//
// Prefixed variables take precedence over them:
//
//	HEVY2NOTION_HEVY_API_KEY, HEVY2NOTION_HEVY_BASE_URL,
//	HEVY2NOTION_NOTION_TOKEN, HEVY2NOTION_NOTION_DATABASE_ID, HEVY2NOTION_NOTION_BASE_URL,
//	HEVY2NOTION_NOTION_PROPERTY, HEVY2NOTION_NOTION_VERSION,
//	HEVY2NOTION_STATE_BACKEND, HEVY2NOTION_STATE_PATH, HEVY2NOTION_STATE_DSN,
//	HEVY2NOTION_STATE_BUCKET, HEVY2NOTION_STATE_KEY, HEVY2NOTION_STATE_REGION,
//	HEVY2NOTION_STATE_ENDPOINT,
//	HEVY2NOTION_SERVER_HOST, HEVY2NOTION_SERVER_PORT, HEVY2NOTION_SERVER_SCHEDULE,
//	HEVY2NOTION_AUTH_API_KEY, HEVY2NOTION_TAILSCALE_ENABLED,
//	HEVY2NOTION_TAILSCALE_HOSTNAME, HEVY2NOTION_TAILSCALE_STATE_DIR
//
// A numeric or boolean variable that does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = "2022-02-22"
	}
	if cfg.Notion.Property == "" {
		cfg.Notion.Property = "Treino"
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = BackendFile
	}
	if cfg.State.Path == "" {
		switch cfg.State.Backend {
		case BackendFile:
			cfg.State.Path = "last_workout_id.txt"
		case BackendSQLite:
			cfg.State.Path = "workouts.db"
		}
	}
	if cfg.State.Key == "" {
		cfg.State.Key = "hevy2notion/last_workout_id"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "hevy2notion"
	}
}

// EnvVars lists every environment variable Load reads.
var EnvVars = []string{
	"HEVY_API_KEY", "NOTION_TOKEN", "DATABASE_ID", "PORT",
	"HEVY2NOTION_HEVY_API_KEY", "HEVY2NOTION_HEVY_BASE_URL",
	"HEVY2NOTION_NOTION_TOKEN", "HEVY2NOTION_NOTION_DATABASE_ID", "HEVY2NOTION_NOTION_BASE_URL",
	"HEVY2NOTION_NOTION_PROPERTY", "HEVY2NOTION_NOTION_VERSION",
	"HEVY2NOTION_STATE_BACKEND", "HEVY2NOTION_STATE_PATH", "HEVY2NOTION_STATE_DSN",
	"HEVY2NOTION_STATE_BUCKET", "HEVY2NOTION_STATE_KEY", "HEVY2NOTION_STATE_REGION",
	"HEVY2NOTION_STATE_ENDPOINT",
	"HEVY2NOTION_SERVER_HOST", "HEVY2NOTION_SERVER_PORT", "HEVY2NOTION_SERVER_SCHEDULE",
	"HEVY2NOTION_AUTH_API_KEY",
	"HEVY2NOTION_TAILSCALE_ENABLED", "HEVY2NOTION_TAILSCALE_HOSTNAME", "HEVY2NOTION_TAILSCALE_STATE_DIR",
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error

	setString := func(dst *string, names ...string) {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				*dst = v
			}
		}
	}
	setInt := func(dst *int, names ...string) {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %q is not an integer", name, v))
					continue
				}
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, names ...string) {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				b, err := strconv.ParseBool(v)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %q is not a boolean", name, v))
					continue
				}
				*dst = b
			}
		}
	}

	// Later names win.
	setString(&cfg.Hevy.APIKey, "HEVY_API_KEY", "HEVY2NOTION_HEVY_API_KEY")
	setString(&cfg.Hevy.BaseURL, "HEVY2NOTION_HEVY_BASE_URL")
	setString(&cfg.Notion.Token, "NOTION_TOKEN", "HEVY2NOTION_NOTION_TOKEN")
	setString(&cfg.Notion.DatabaseID, "DATABASE_ID", "HEVY2NOTION_NOTION_DATABASE_ID")
	setString(&cfg.Notion.BaseURL, "HEVY2NOTION_NOTION_BASE_URL")
	setString(&cfg.Notion.Property, "HEVY2NOTION_NOTION_PROPERTY")
	setString(&cfg.Notion.Version, "HEVY2NOTION_NOTION_VERSION")
	setString(&cfg.State.Backend, "HEVY2NOTION_STATE_BACKEND")
	setString(&cfg.State.Path, "HEVY2NOTION_STATE_PATH")
	setString(&cfg.State.DSN, "HEVY2NOTION_STATE_DSN")
	setString(&cfg.State.Bucket, "HEVY2NOTION_STATE_BUCKET")
	setString(&cfg.State.Key, "HEVY2NOTION_STATE_KEY")
	setString(&cfg.State.Region, "HEVY2NOTION_STATE_REGION")
	setString(&cfg.State.Endpoint, "HEVY2NOTION_STATE_ENDPOINT")
	setString(&cfg.Server.Host, "HEVY2NOTION_SERVER_HOST")
	setInt(&cfg.Server.Port, "PORT", "HEVY2NOTION_SERVER_PORT")
	setString(&cfg.Server.Schedule, "HEVY2NOTION_SERVER_SCHEDULE")
	setString(&cfg.Auth.APIKey, "HEVY2NOTION_AUTH_API_KEY")
	setBool(&cfg.Tailscale.Enabled, "HEVY2NOTION_TAILSCALE_ENABLED")
	setString(&cfg.Tailscale.Hostname, "HEVY2NOTION_TAILSCALE_HOSTNAME")
	setString(&cfg.Tailscale.StateDir, "HEVY2NOTION_TAILSCALE_STATE_DIR")

	return errors.Join(errs...)
}

func (c *Config) validate() error {
	if c.Hevy.APIKey == "" {
		return fmt.Errorf("hevy.api_key is required")
	}
	if c.Notion.Token == "" {
		return fmt.Errorf("notion.token is required")
	}
	if c.Notion.DatabaseID == "" {
		return fmt.Errorf("notion.database_id is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.State.Backend {
	case BackendFile, BackendSQLite:
		if c.State.Path == "" {
			return fmt.Errorf("state.path is required for the %s backend", c.State.Backend)
		}
	case BackendPostgres:
		if c.State.DSN == "" {
			return fmt.Errorf("state.dsn is required for the postgres backend")
		}
	case BackendS3:
		if c.State.Bucket == "" {
			return fmt.Errorf("state.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown state.backend %q", c.State.Backend)
	}
	return nil
}
