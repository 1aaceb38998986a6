package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// placeholderSecret must never ship; deployments supply JWT_SECRET.
const placeholderSecret = "change-me-in-production"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Monitors MonitorConfig
	Email    EmailConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`

	// URL, when set, overrides the discrete fields.
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	EventChannel string `mapstructure:"event_channel"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type MonitorConfig struct {
	ShiftInterval  time.Duration `mapstructure:"shift_interval"`
	IdleInterval   time.Duration `mapstructure:"idle_interval"`
	DoctorInterval time.Duration `mapstructure:"doctor_interval"`
	IdleAfter      time.Duration `mapstructure:"idle_after"`
	OfflineAfter   time.Duration `mapstructure:"offline_after"`
}

type EmailConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	AdminEmail string `mapstructure:"admin_email"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// secrets are env-only and overlay whatever the config file provides.
type secrets struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	RedisURL    string `envconfig:"REDIS_URL"`
}

// Load reads config.yaml (working directory or ./config) and overlays
// environment variables for connection strings and the token secret.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var sec secrets
	if err := envconfig.Process("", &sec); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if sec.DatabaseURL != "" {
		cfg.Database.URL = sec.DatabaseURL
	}
	if sec.JWTSecret != "" {
		cfg.JWT.Secret = sec.JWTSecret
	}
	if sec.RedisURL != "" {
		cfg.Redis.URL = sec.RedisURL
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "medipresence")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.secret", placeholderSecret)
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.event_channel", "medipresence:events")
	viper.SetDefault("monitors.shift_interval", time.Minute)
	viper.SetDefault("monitors.idle_interval", 30*time.Second)
	viper.SetDefault("monitors.doctor_interval", 2*time.Minute)
	viper.SetDefault("monitors.idle_after", 10*time.Minute)
	viper.SetDefault("monitors.offline_after", 30*time.Minute)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)
}

// DSN builds the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// UsingPlaceholderSecret reports whether the token secret is still the
// built-in placeholder.
func (c JWTConfig) UsingPlaceholderSecret() bool {
	return c.Secret == placeholderSecret
}
