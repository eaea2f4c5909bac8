package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	App      AppSettings      `mapstructure:"app"`
	Database DatabaseSettings `mapstructure:"database"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Event    EventSettings    `mapstructure:"event"`
	Errors   ErrorSettings    `mapstructure:"errors"`
	Metrics  MetricsSettings  `mapstructure:"metrics"`
	Autogen  AutogenSettings  `mapstructure:"autogen"`
}

type AppSettings struct {
	Port              string `mapstructure:"port"`
	Env               string `mapstructure:"env"`
	LogLevel          string `mapstructure:"log_level"`
	MaxRequestsPerMin int    `mapstructure:"max_requests_per_min"`
	ShutdownTimeout   int    `mapstructure:"shutdown_timeout"` // seconds
}

// DatabaseSettings selects the slot store. Driver is "mongo" or "memory".
type DatabaseSettings struct {
	Driver     string `mapstructure:"driver"`
	URL        string `mapstructure:"url"`
	Name       string `mapstructure:"name"`
	Collection string `mapstructure:"collection"`
}

type RedisSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	CacheDB  int    `mapstructure:"cache_db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// EventSettings is the business-hour window and slot granularity used when
// generating a day's slots.
type EventSettings struct {
	StartHour string `mapstructure:"start_hour"` // "HH:MM"
	EndHour   string `mapstructure:"end_hour"`   // "HH:MM"
	Duration  int    `mapstructure:"duration"`   // minutes
	Timezone  string `mapstructure:"timezone"`
}

// ClientErrorRule customises how a client error status is rendered and logged.
type ClientErrorRule struct {
	ErrorCode string `mapstructure:"error_code"`
	LogLevel  string `mapstructure:"log_level"`
}

type ErrorSettings struct {
	Debug        bool                       `mapstructure:"debug"`
	ClientErrors map[string]ClientErrorRule `mapstructure:"client_errors"`
	ServerErrors []int                      `mapstructure:"server_errors"`
}

type MetricsSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AutogenSettings drives the worker that creates day documents ahead of time.
type AutogenSettings struct {
	Enabled   bool   `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"`
	DaysAhead int    `mapstructure:"days_ahead"`
}

// TimeFormat is the layout of configured business hours.
const TimeFormat = "15:04"

// LogLevels lists the log levels accepted for client error rules.
var LogLevels = []string{"info", "crit", "error", "warning", "notice", "debug", "emerg", "alert"}

var AppConfig Config

// LoadConfig reads config.yaml from "." or "./config", applies environment
// overrides (EVENT_START_HOUR, DATABASE_URL, ...) and validates the result.
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := Load(v)
	if err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}

// SetDefaults registers every known key so that environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.max_requests_per_min", 100)
	v.SetDefault("app.shutdown_timeout", 5)

	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.url", "mongodb://localhost:27017")
	v.SetDefault("database.name", "slotbook")
	v.SetDefault("database.collection", "events")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.cache_db", 0)
	v.SetDefault("redis.ttl", 300)

	v.SetDefault("event.start_hour", "09:00")
	v.SetDefault("event.end_hour", "17:00")
	v.SetDefault("event.duration", 30)
	v.SetDefault("event.timezone", "UTC")

	v.SetDefault("errors.debug", false)
	v.SetDefault("errors.server_errors", []int{500, 502, 504})

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("autogen.enabled", false)
	v.SetDefault("autogen.schedule", "0 1 * * *")
	v.SetDefault("autogen.days_ahead", 7)
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.applyErrorDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyErrorDefaults() {
	if len(c.Errors.ClientErrors) == 0 {
		c.Errors.ClientErrors = map[string]ClientErrorRule{
			"400": {LogLevel: "error"},
			"406": {LogLevel: "error"},
			"409": {LogLevel: "error"},
		}
	}
	for status, rule := range c.Errors.ClientErrors {
		if rule.LogLevel == "" {
			rule.LogLevel = "error"
			c.Errors.ClientErrors[status] = rule
		}
	}
	if len(c.Errors.ServerErrors) == 0 {
		c.Errors.ServerErrors = []int{500, 502, 504}
	}
}

// Validate checks the values the services depend on.
func (c *Config) Validate() error {
	if _, err := time.Parse(TimeFormat, c.Event.StartHour); err != nil {
		return fmt.Errorf("config: event.start_hour %q must be HH:MM", c.Event.StartHour)
	}
	if _, err := time.Parse(TimeFormat, c.Event.EndHour); err != nil {
		return fmt.Errorf("config: event.end_hour %q must be HH:MM", c.Event.EndHour)
	}
	if c.Event.Duration <= 0 {
		return fmt.Errorf("config: event.duration must be positive, got %d", c.Event.Duration)
	}
	if _, err := time.LoadLocation(c.Event.Timezone); err != nil {
		return fmt.Errorf("config: event.timezone %q: %w", c.Event.Timezone, err)
	}

	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("config: redis.ttl must be positive when redis is enabled, got %d", c.Redis.TTL)
	}

	switch c.Database.Driver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	var invalid []string
	for status, rule := range c.Errors.ClientErrors {
		if _, err := strconv.Atoi(status); err != nil {
			invalid = append(invalid, fmt.Sprintf("client_errors key %q is not a status code", status))
			continue
		}
		if !isKnownLogLevel(rule.LogLevel) {
			invalid = append(invalid, fmt.Sprintf("Invalid log level found for %s in client errors", status))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("config: the invalid configuration has been set: %s", strings.Join(invalid, "; "))
	}

	if c.Autogen.Enabled && c.Autogen.DaysAhead < 0 {
		return fmt.Errorf("config: autogen.days_ahead must not be negative")
	}
	return nil
}

// Location returns the time zone slot times are generated in.
func (e EventSettings) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func isKnownLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

func GetEnv() string {
	return AppConfig.App.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
