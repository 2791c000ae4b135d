package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Pool     PoolConfig     `mapstructure:"pool"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Share    ShareConfig    `mapstructure:"share"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// UpstreamConfig holds the base URLs of the remote services. Query strings are
// added by the callers.
type UpstreamConfig struct {
	PlayerInfoURL string        `mapstructure:"player_info_url"`
	IconURL       string        `mapstructure:"icon_url"`
	AvatarURL     string        `mapstructure:"avatar_url"`
	WeaponURL     string        `mapstructure:"weapon_url"`
	BackgroundURL string        `mapstructure:"background_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type PoolConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ShareConfig struct {
	PublicURL string `mapstructure:"public_url"`
}

// EnvPrefix is prepended to every environment override, e.g. OUTFIT_AUTH_API_KEY.
const EnvPrefix = "OUTFIT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("auth.api_key", "NARAYAN")

	v.SetDefault("upstream.player_info_url", "https://informacoes-completa-teste.vercel.app/info")
	v.SetDefault("upstream.icon_url", "https://freefireinfo.vercel.app/icon")
	v.SetDefault("upstream.avatar_url", "https://characteriroxmar.vercel.app/chars")
	v.SetDefault("upstream.weapon_url", "https://system.ffgarena.cloud/api/iconsff")
	v.SetDefault("upstream.background_url", "https://iili.io/F3cIKpp.jpg")
	v.SetDefault("upstream.timeout", 10*time.Second)

	v.SetDefault("pool.workers", 10)
	v.SetDefault("pool.queue_size", 64)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("share.public_url", "http://localhost:5000")
}

// Load reads the YAML file at path when it exists, then applies OUTFIT_*
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.APIKey == "" {
		return errors.New("config: auth.api_key must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: unknown server.mode %q", c.Server.Mode)
	}
	if c.Pool.Workers <= 0 {
		return errors.New("config: pool.workers must be positive")
	}
	if c.Pool.QueueSize <= 0 {
		return errors.New("config: pool.queue_size must be positive")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("config: upstream.timeout must be positive")
	}
	return nil
}
