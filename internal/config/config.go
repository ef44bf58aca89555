package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/engine"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	MaxTrendDays = 366
)

var (
	ErrMissingSecret   = errors.New("JWT_SECRET environment variable is required")
	ErrInvalidStorage  = errors.New("STORAGE must be postgres or memory")
	ErrInvalidTimezone = errors.New("invalid engine timezone")
	ErrInvalidEngine   = errors.New("invalid engine settings")
)

type Config struct {
	Port           string
	LogLevel       string
	Storage        string
	MigrationsPath string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Engine    EngineConfig
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// EngineConfig holds the analytics settings that may come from the YAML file.
type EngineConfig struct {
	Timezone   string `yaml:"timezone"`
	Milestones []int  `yaml:"milestones"`
	WindowDays int    `yaml:"window_days"`
	TrendDays  int    `yaml:"trend_days"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
		Storage:  StoragePostgres,
		Database: DatabaseConfig{
			User: "kanso_user",
			Host: "localhost",
			Port: "5432",
			Name: "kanso_db",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			CacheTTL: 30 * time.Minute,
		},
		Auth: AuthConfig{
			Issuer:   "kanso-habits",
			TokenTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		Engine: EngineConfig{
			Timezone:   "UTC",
			Milestones: append([]int(nil), domain.DefaultMilestones...),
			WindowDays: engine.DefaultWindowDays,
			TrendDays:  engine.DefaultTrendDays,
		},
	}
}

// Load reads an optional .env file, overlays the YAML file named by
// KANSO_CONFIG and finally applies environment variables.
func Load() (*Config, error) {
	return load(true)
}

// LoadOffline is Load for tools that never issue tokens, so JWT_SECRET is
// not required.
func LoadOffline() (*Config, error) {
	return load(false)
}

func load(requireSecret bool) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("KANSO_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(requireSecret); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var file struct {
		RateLimit *RateLimitConfig `yaml:"rate_limit"`
		Engine    *EngineConfig    `yaml:"engine"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if file.RateLimit != nil {
		if file.RateLimit.Requests != 0 {
			c.RateLimit.Requests = file.RateLimit.Requests
		}
		if file.RateLimit.Window != 0 {
			c.RateLimit.Window = file.RateLimit.Window
		}
	}

	if e := file.Engine; e != nil {
		if e.Timezone != "" {
			c.Engine.Timezone = e.Timezone
		}
		if len(e.Milestones) > 0 {
			c.Engine.Milestones = e.Milestones
		}
		if e.WindowDays != 0 {
			c.Engine.WindowDays = e.WindowDays
		}
		if e.TrendDays != 0 {
			c.Engine.TrendDays = e.TrendDays
		}
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnvOrDefault("PORT", c.Port)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.Storage = getEnvOrDefault("STORAGE", c.Storage)
	c.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", c.MigrationsPath)

	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = getEnvOrDefault("DB_PASSWORD", c.Database.Password)
	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvOrDefault("DB_PORT", c.Database.Port)
	c.Database.Name = getEnvOrDefault("DB_NAME", c.Database.Name)

	c.Redis.Host = getEnvOrDefault("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnvOrDefault("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.Enabled = os.Getenv("REDIS_HOST") != ""

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Engine.Timezone = getEnvOrDefault("KANSO_TIMEZONE", c.Engine.Timezone)

	var err error
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.RateLimit.Requests, err = getEnvInt("RATE_LIMIT_REQUESTS", c.RateLimit.Requests); err != nil {
		return err
	}
	if c.Auth.TokenTTL, err = getEnvDuration("JWT_TTL", c.Auth.TokenTTL); err != nil {
		return err
	}
	if c.Redis.CacheTTL, err = getEnvDuration("CACHE_TTL", c.Redis.CacheTTL); err != nil {
		return err
	}

	return nil
}

// Validate checks settings that would otherwise fail at request time. It
// also sorts and de-duplicates the milestone ladder.
func (c *Config) Validate() error {
	return c.validate(true)
}

func (c *Config) validate(requireSecret bool) error {
	if requireSecret && c.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("%w: got %q", ErrInvalidStorage, c.Storage)
	}
	if _, err := time.LoadLocation(c.Engine.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Engine.Timezone)
	}
	if c.Engine.WindowDays < 1 || c.Engine.WindowDays > MaxTrendDays {
		return fmt.Errorf("%w: window_days must be between 1 and %d", ErrInvalidEngine, MaxTrendDays)
	}
	if c.Engine.TrendDays < 1 || c.Engine.TrendDays > MaxTrendDays {
		return fmt.Errorf("%w: trend_days must be between 1 and %d", ErrInvalidEngine, MaxTrendDays)
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate limit must allow at least one request per window", ErrInvalidEngine)
	}

	ladder := append([]int(nil), c.Engine.Milestones...)
	sort.Ints(ladder)
	out := ladder[:0]
	for i, m := range ladder {
		if m < 1 {
			return fmt.Errorf("%w: milestones must be positive", ErrInvalidEngine)
		}
		if i > 0 && m == ladder[i-1] {
			continue
		}
		out = append(out, m)
	}
	c.Engine.Milestones = out

	return nil
}

// EngineOptions resolves the timezone and returns the analytics options.
func (c *Config) EngineOptions() (engine.Options, error) {
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return engine.Options{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Engine.Timezone)
	}

	return engine.Options{
		Location:   loc,
		Milestones: c.Engine.Milestones,
		WindowDays: c.Engine.WindowDays,
		TrendDays:  c.Engine.TrendDays,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
