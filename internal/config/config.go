// Package config loads the service configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	HTTP        struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		RateLimitRPS   float64  `yaml:"rate_limit_rps"`
		RateLimitBurst int      `yaml:"rate_limit_burst"`
	} `yaml:"http"`
	GRPC struct {
		Addr string `yaml:"addr"`
	} `yaml:"grpc"`
	Auth struct {
		Token string `yaml:"token"`
	} `yaml:"auth"`
	Database struct {
		Driver     string `yaml:"driver"`
		DSN        string `yaml:"dsn"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Chart struct {
		FrameInterval time.Duration `yaml:"frame_interval"`
		AnimationRate float64       `yaml:"animation_rate"`
	} `yaml:"chart"`
	Queue struct {
		SQSQueueURL string `yaml:"sqs_queue_url"`
		AWSRegion   string `yaml:"aws_region"`
	} `yaml:"queue"`
	Schedule struct {
		OverdueCron string `yaml:"overdue_cron"`
	} `yaml:"schedule"`
	SeedDemo bool `yaml:"seed_demo"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := map[string]*string{
		"APP_ENV":       &c.Environment,
		"LOG_LEVEL":     &c.LogLevel,
		"HTTP_ADDR":     &c.HTTP.Addr,
		"GRPC_ADDR":     &c.GRPC.Addr,
		"API_TOKEN":     &c.Auth.Token,
		"DB_DRIVER":     &c.Database.Driver,
		"DB_CONN_STR":   &c.Database.DSN,
		"SQLITE_PATH":   &c.Database.SQLitePath,
		"SQS_QUEUE_URL": &c.Queue.SQSQueueURL,
		"AWS_REGION":    &c.Queue.AWSRegion,
		"CRON_OVERDUE":  &c.Schedule.OverdueCron,
	}
	for key, dst := range setString {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.HTTP.AllowedOrigins = origins
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
		}
		c.HTTP.RateLimitRPS = rps
	}
	if v := os.Getenv("CHART_FRAME_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse CHART_FRAME_INTERVAL: %w", err)
		}
		c.Chart.FrameInterval = d
	}
	if v := os.Getenv("SEED_DEMO"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse SEED_DEMO: %w", err)
		}
		c.SeedDemo = seed
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.HTTP.RateLimitRPS == 0 {
		c.HTTP.RateLimitRPS = 20
	}
	if c.HTTP.RateLimitBurst == 0 {
		c.HTTP.RateLimitBurst = 40
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		c.Database.DSN = postgresDSNFromEnv()
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/invoicedesk.db"
	}
	if c.Chart.FrameInterval == 0 {
		c.Chart.FrameInterval = 16 * time.Millisecond
	}
	if c.Chart.AnimationRate == 0 {
		c.Chart.AnimationRate = 0.02
	}
	if c.Queue.AWSRegion == "" {
		c.Queue.AWSRegion = "us-east-1"
	}
	if c.Schedule.OverdueCron == "" {
		c.Schedule.OverdueCron = "0 0 8 * * *"
	}
}

// postgresDSNFromEnv builds a connection string from the individual DB_*
// variables, falling back to a local development database.
func postgresDSNFromEnv() string {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		get("DB_HOST", "localhost"),
		get("DB_PORT", "5432"),
		get("DB_USER", "postgres"),
		get("DB_PASSWORD", "postgres"),
		get("DB_NAME", "invoicedesk"),
	)
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be one of %q, %q, %q, got %q",
			DriverPostgres, DriverSQLite, DriverMemory, c.Database.Driver)
	}
	if c.IsProduction() && c.Auth.Token == "" {
		return fmt.Errorf("auth.token is required in production")
	}
	if c.Chart.AnimationRate <= 0 || c.Chart.AnimationRate > 1 {
		return fmt.Errorf("chart.animation_rate must be in (0, 1]")
	}
	if c.Chart.FrameInterval < 0 {
		return fmt.Errorf("chart.frame_interval must be positive")
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("http.rate_limit_rps and http.rate_limit_burst cannot be negative")
	}
	return nil
}
