package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"incomfort/internal/logger"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "INCOMFORT"

type GatewayConfig struct {
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type AuthConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
	SigningKey   string        `mapstructure:"signing_key"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	Retain      bool   `mapstructure:"retain"`
}

// Config is the full application configuration.
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	DB      DBConfig      `mapstructure:"db"`
	Poll    PollConfig    `mapstructure:"poll"`
	Auth    AuthConfig    `mapstructure:"auth"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`
}

var defaults = map[string]any{
	"gateway.host":       "",
	"gateway.timeout":    5 * time.Second,
	"log.level":          "info",
	"http.port":          8080,
	"db.path":            "incomfort.db",
	"poll.interval":      30 * time.Second,
	"auth.enabled":       false,
	"auth.username":      "",
	"auth.password_hash": "",
	"auth.signing_key":   "",
	"auth.token_ttl":     time.Hour,
	"mqtt.broker":        "",
	"mqtt.client_id":     "incomfort",
	"mqtt.topic_prefix":  "incomfort",
	"mqtt.retain":        true,
}

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"gateway":   "gateway.host",
	"timeout":   "gateway.timeout",
	"log-level": "log.level",
}

// Load reads configuration from file, environment and flags, in increasing
// order of precedence. An empty path looks for configs/config.yml and
// tolerates its absence; an explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every problem in cfg at once. It never modifies cfg.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Gateway.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("gateway.timeout must be positive, got %s", cfg.Gateway.Timeout))
	}
	if cfg.Poll.Interval <= 0 {
		errs = append(errs, fmt.Errorf("poll.interval must be positive, got %s", cfg.Poll.Interval))
	}
	if err := logger.ValidLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be in 1..65535, got %d", cfg.HTTP.Port))
	}
	if cfg.Auth.Enabled {
		if cfg.Auth.Username == "" {
			errs = append(errs, errors.New("auth.username is required when auth is enabled"))
		}
		if cfg.Auth.PasswordHash == "" {
			errs = append(errs, errors.New("auth.password_hash is required when auth is enabled"))
		}
		if cfg.Auth.SigningKey == "" {
			errs = append(errs, errors.New("auth.signing_key is required when auth is enabled"))
		}
	}
	return errors.Join(errs...)
}
