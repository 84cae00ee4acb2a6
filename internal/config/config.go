package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "CLE"
	configName     = "config"
	configType     = "toml"
	defaultDataDir = ".chatline"

	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
	BackendMemory = "memory"
)

const (
	KeyDataDir        = "data_dir"
	KeyBackend        = "store.backend"
	KeyTimezone       = "usage.timezone"
	KeyRetentionDays  = "usage.retention_days"
	KeyIdleTimeout    = "session.idle_timeout"
	KeyServerAddr     = "server.addr"
	KeyPurgeInterval  = "server.purge_interval"
	KeyAdminKey       = "server.admin_key"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyAccountsPath   = "accounts.path"
	KeySessionsPath   = "sessions.path"
	KeyUsagePath      = "usage.path"
	defaultServerAddr = "127.0.0.1:8080"
)

type Config struct {
	DataDir       string
	Backend       string
	Location      *time.Location
	RetentionDays int
	IdleTimeout   time.Duration
	Server        ServerConfig
	Log           LogConfig

	v *viper.Viper
}

type ServerConfig struct {
	Addr          string
	PurgeInterval time.Duration
	// AdminKey guards /api/admin/*. Empty disables those routes.
	AdminKey string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load resolves configuration from defaults, an optional config.toml, .env
// files and CLE_* environment variables, in increasing precedence. An empty
// configFile means $HOME/.chatline/config.toml when present.
func Load(configFile string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, defaultDataDir)
	if dir := os.Getenv(envPrefix + "_DATA_DIR"); dir != "" {
		baseDir = dir
	}

	loadDotEnv(filepath.Join(baseDir, ".env"))

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDataDir, baseDir)
	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeyTimezone, "UTC")
	v.SetDefault(KeyRetentionDays, 7)
	v.SetDefault(KeyIdleTimeout, 72*time.Hour)
	v.SetDefault(KeyServerAddr, defaultServerAddr)
	v.SetDefault(KeyPurgeInterval, 10*time.Minute)
	v.SetDefault(KeyAdminKey, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "auto")
	// Bound so that CLE_ACCOUNTS_PATH and friends work without a config file.
	for _, key := range []string{KeyAccountsPath, KeySessionsPath, KeyUsagePath} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(baseDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:       v.GetString(KeyDataDir),
		Backend:       strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		RetentionDays: v.GetInt(KeyRetentionDays),
		IdleTimeout:   v.GetDuration(KeyIdleTimeout),
		Server: ServerConfig{
			Addr:          v.GetString(KeyServerAddr),
			PurgeInterval: v.GetDuration(KeyPurgeInterval),
			AdminKey:      strings.TrimSpace(v.GetString(KeyAdminKey)),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		v: v,
	}

	loc, err := time.LoadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return nil, fmt.Errorf("load usage timezone: %w", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is empty"))
	}
	switch c.Backend {
	case BackendSQLite, BackendTOML, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported store backend %q", c.Backend))
	}
	if c.RetentionDays < 1 {
		errs = append(errs, fmt.Errorf("usage.retention_days must be at least 1, got %d", c.RetentionDays))
	}
	if c.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("session.idle_timeout must not be negative, got %s", c.IdleTimeout))
	}
	if c.Server.PurgeInterval <= 0 {
		errs = append(errs, fmt.Errorf("server.purge_interval must be positive, got %s", c.Server.PurgeInterval))
	}

	return errors.Join(errs...)
}

// Viper exposes the resolved settings to adapters that read their own keys.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Failed to load .env file")
		} else {
			log.Debug().Str("file", path).Msg("Loaded .env file")
		}
	}

	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env from current directory")
	}
}
