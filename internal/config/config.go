// Package config loads settings from an optional .env file, an optional
// pmo.yaml and PMO_* environment variables, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexanderramin/pmo/internal/db"
)

type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Graph   GraphConfig   `mapstructure:"graph"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Prefix string `mapstructure:"prefix"`
}

type GraphConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

const (
	DefaultDBPath = "pmo.db"
	DefaultPort   = 8000
	EnvProduction = "production"
)

// Options points Load at non-default files. Zero values mean ".env" and
// the current directory plus ./configs.
type Options struct {
	EnvFile     string
	ConfigPaths []string
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadWith(Options{})
}

func LoadWith(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env is normal; real environment variables still apply.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("pmo")
	v.SetConfigType("yaml")
	paths := opts.ConfigPaths
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.DB.Path = db.NormalizePath(cfg.DB.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the configuration Load yields when nothing overrides it.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.prefix", "pmo")
	v.SetDefault("graph.dir", "build")
	v.SetDefault("graph.format", "dot")
}

func bindEnvVariables(v *viper.Viper) {
	// PMO_DATABASE_URL is the older sqlite:///file form.
	v.BindEnv("db.path", "PMO_DB_PATH", "PMO_DATABASE_URL")
	v.BindEnv("server.port", "PMO_SERVER_PORT", "PORT")
	v.BindEnv("server.env", "PMO_SERVER_ENV", "PMO_ENV")
	v.BindEnv("log.level", "PMO_LOG_LEVEL")
	v.BindEnv("metrics.prefix", "PMO_METRICS_PREFIX")
	v.BindEnv("graph.dir", "PMO_GRAPH_DIR")
	v.BindEnv("graph.format", "PMO_GRAPH_FORMAT")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	if c.Metrics.Prefix == "" {
		return errors.New("metrics.prefix must not be empty")
	}
	return nil
}

// Production reports whether the server runs with production logging.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Env, EnvProduction)
}
