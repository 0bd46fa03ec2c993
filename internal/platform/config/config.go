package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidPort is returned when PORT is outside the TCP port range.
var ErrInvalidPort = errors.New("port must be between 1 and 65535")

// Config holds runtime settings read from the environment.
type Config struct {
	Port      int    `env:"PORT"       envDefault:"3000"`
	ServerURL string `env:"SERVER_URL"`
	DocsPath  string `env:"DOCS_PATH"  envDefault:"/docs"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RequestBodyLimit   int64    `env:"REQUEST_BODY_LIMIT"   envDefault:"1048576"`

	ReadTimeout       time.Duration `env:"READ_TIMEOUT"        envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"2s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// Load reads optional dotenv files and parses the environment into a Config.
// Variables already present in the environment take precedence over dotenv values.
// With no files given, a .env file in the working directory is tried.
func Load(files ...string) (Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load(files...)
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT=%d: %w", cfg.Port, ErrInvalidPort)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
