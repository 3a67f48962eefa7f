package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Questions QuestionsConfig
	Session   SessionConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type QuestionsConfig struct {
	File string
}

type SessionConfig struct {
	Store      string        `mapstructure:"store"` // memory | redis
	TTL        time.Duration `mapstructure:"ttl_minutes"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Enabled   bool
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("AWS_QUIZ")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Questions
	viper.BindEnv("questions.file", "QUESTIONS_FILE")

	// Session
	viper.BindEnv("session.store", "SESSION_STORE")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Database
	viper.BindEnv("database.enabled", "DATABASE_ENABLED")
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Session.TTL = cfg.Session.TTL * time.Minute
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 2 * time.Hour
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "quiz_sid"
	}
	if cfg.Questions.File == "" {
		cfg.Questions.File = "data/questions.json"
	}

	switch cfg.Session.Store {
	case "", "memory":
		cfg.Session.Store = "memory"
	case "redis":
	default:
		return nil, fmt.Errorf("unknown session store %q, expected memory or redis", cfg.Session.Store)
	}

	return &cfg, nil
}
