// Package config loads dashboard and stub API configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	API     APIConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Query   QueryConfig
	Log     LogConfig
	Metrics MetricsConfig
	Stub    StubConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name   string
	Env    string
	Locale string // en, ar
}

// APIConfig holds the REST backend connection settings
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Token     string
	UserAgent string
	RateLimit float64 // requests per second, 0 = unlimited
	RateBurst int
}

// CacheConfig selects and tunes the query cache store
type CacheConfig struct {
	Driver          string // memory, redis, tiered
	MaxEntries      int
	CleanupInterval time.Duration
	GCTime          time.Duration
	KeyPrefix       string
	PubSubChannel   string
	Broadcast       bool
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// QueryConfig holds read cache freshness and retry settings
type QueryConfig struct {
	DefaultStaleTime time.Duration
	StaleTimes       map[string]time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	RetryMaxDelay    time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Addr    string
	Path    string
}

// StubConfig holds settings of the local stub backend
type StubConfig struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
	Seed      int64
	SeedSize  int

	// Seeded admin account for the login endpoint
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration. Priority (highest to lowest):
//  1. Environment variables with SOOQUK_ prefix (e.g. SOOQUK_API_BASE_URL)
//  2. .env file in the working directory
//  3. config.toml
//  4. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.sooquk")
	return load(v)
}

// LoadFile reads configuration from the given TOML file plus environment
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SOOQUK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:   v.GetString("app.name"),
			Env:    v.GetString("app.env"),
			Locale: v.GetString("app.locale"),
		},
		API: APIConfig{
			BaseURL:   v.GetString("api.base_url"),
			Timeout:   v.GetDuration("api.timeout"),
			Token:     v.GetString("api.token"),
			UserAgent: v.GetString("api.user_agent"),
			RateLimit: v.GetFloat64("api.rate_limit"),
			RateBurst: v.GetInt("api.rate_burst"),
		},
		Cache: CacheConfig{
			Driver:          v.GetString("cache.driver"),
			MaxEntries:      v.GetInt("cache.max_entries"),
			CleanupInterval: v.GetDuration("cache.cleanup_interval"),
			GCTime:          v.GetDuration("cache.gc_time"),
			KeyPrefix:       v.GetString("cache.key_prefix"),
			PubSubChannel:   v.GetString("cache.pubsub_channel"),
			Broadcast:       v.GetBool("cache.broadcast"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Query: QueryConfig{
			DefaultStaleTime: v.GetDuration("query.default_stale_time"),
			StaleTimes:       staleTimes(v.GetStringMapString("query.stale_times")),
			RetryAttempts:    v.GetInt("query.retry_attempts"),
			RetryDelay:       v.GetDuration("query.retry_delay"),
			RetryMaxDelay:    v.GetDuration("query.retry_max_delay"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Addr:    v.GetString("metrics.addr"),
			Path:    v.GetString("metrics.path"),
		},
		Stub: StubConfig{
			Port:      v.GetString("stub.port"),
			JWTSecret: v.GetString("stub.jwt_secret"),
			TokenTTL:  v.GetDuration("stub.token_ttl"),
			Seed:      v.GetInt64("stub.seed"),
			SeedSize:  v.GetInt("stub.seed_size"),

			AdminEmail:    v.GetString("stub.admin_email"),
			AdminPassword: v.GetString("stub.admin_password"),
		},
	}
	if !v.IsSet("query.retry_attempts") {
		cfg.Query.RetryAttempts = -1
	}

	applyDefaults(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// staleTimes parses per-resource overrides. Unparsable values become -1 so
// validate rejects them.
func staleTimes(raw map[string]string) map[string]time.Duration {
	out := make(map[string]time.Duration, len(raw))
	for resource, s := range raw {
		d, err := time.ParseDuration(s)
		if err != nil {
			d = -1
		}
		out[resource] = d
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sooquk-dashboard"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Locale == "" {
		cfg.App.Locale = "en"
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080/api"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "Sooquk-Dashboard/1.0"
	}
	if cfg.API.RateBurst == 0 {
		cfg.API.RateBurst = 10
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 1000
	}
	if cfg.Cache.CleanupInterval == 0 {
		cfg.Cache.CleanupInterval = 30 * time.Second
	}
	if cfg.Cache.GCTime == 0 {
		cfg.Cache.GCTime = 10 * time.Minute
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = "sooquk:query:"
	}
	if cfg.Cache.PubSubChannel == "" {
		cfg.Cache.PubSubChannel = "sooquk:query:invalidate"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Query.DefaultStaleTime == 0 {
		cfg.Query.DefaultStaleTime = time.Minute
	}
	if cfg.Query.RetryAttempts < 0 {
		cfg.Query.RetryAttempts = 3
	}
	if cfg.Query.RetryDelay == 0 {
		cfg.Query.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Query.RetryMaxDelay == 0 {
		cfg.Query.RetryMaxDelay = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Stub.Port == "" {
		cfg.Stub.Port = "8080"
	}
	if cfg.Stub.TokenTTL == 0 {
		cfg.Stub.TokenTTL = 12 * time.Hour
	}
	if cfg.Stub.Seed == 0 {
		cfg.Stub.Seed = 42
	}
	if cfg.Stub.SeedSize == 0 {
		cfg.Stub.SeedSize = 25
	}
	if cfg.Stub.JWTSecret == "" {
		cfg.Stub.JWTSecret = "sooquk-stub-development-secret-key"
	}
	if cfg.Stub.AdminEmail == "" {
		cfg.Stub.AdminEmail = "admin@sooquk.test"
	}
	if cfg.Stub.AdminPassword == "" {
		cfg.Stub.AdminPassword = "admin12345"
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", c.API.BaseURL)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit cannot be negative")
	}
	switch c.Cache.Driver {
	case "memory", "redis", "tiered":
	default:
		return fmt.Errorf("cache.driver must be one of memory, redis, tiered (got %q)", c.Cache.Driver)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries cannot be negative")
	}
	for resource, d := range c.Query.StaleTimes {
		if d <= 0 {
			return fmt.Errorf("query.stale_times.%s must be a positive duration", resource)
		}
	}
	switch c.App.Locale {
	case "en", "ar":
	default:
		return fmt.Errorf("app.locale must be en or ar (got %q)", c.App.Locale)
	}

	if c.App.Env == "production" {
		if u.Scheme != "https" {
			return fmt.Errorf("api.base_url must use https in production")
		}
		if c.Stub.JWTSecret != "" && len(c.Stub.JWTSecret) < 32 {
			return fmt.Errorf("stub.jwt_secret must be at least 32 characters in production")
		}
	}
	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
