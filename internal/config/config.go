package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv     = "dev"
	defaultAPIBaseURL = "http://localhost:3000"
	defaultAPITimeout = "10s"
	defaultDemoUserID = "user1"
	defaultLogLevel   = "info"
	defaultListenAddr = ":3000"
	defaultDSN        = ":memory:"
)

// Client configures the booking client and its terminal front-end.
type Client struct {
	AppEnv     string
	APIBaseURL string
	APITimeout time.Duration
	DemoUserID string
	Log        Log
}

// Server configures the fixture API.
type Server struct {
	AppEnv             string
	ListenAddr         string
	DatabaseURL        string
	CORSAllowedOrigins []string
	Log                Log
}

type Log struct {
	Level string
	File  string
}

// LoadDotEnv reads .env files into the process environment. Missing files are
// ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadClient() (*Client, error) {
	cfg := &Client{
		AppEnv:     appEnv(),
		APIBaseURL: strings.TrimRight(strings.TrimSpace(getEnv("API_BASE_URL", defaultAPIBaseURL)), "/"),
		DemoUserID: strings.TrimSpace(getEnv("DEMO_USER_ID", defaultDemoUserID)),
		Log:        loadLog(),
	}

	var err error
	cfg.APITimeout, err = parseDurationEnv("API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Client) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be > 0")
	}
	if c.DemoUserID == "" {
		return fmt.Errorf("DEMO_USER_ID must not be empty")
	}
	return nil
}

func LoadServer() (*Server, error) {
	cfg := &Server{
		AppEnv:      appEnv(),
		ListenAddr:  strings.TrimSpace(getEnv("MOCKAPI_ADDR", defaultListenAddr)),
		DatabaseURL: strings.TrimSpace(getEnv("DATABASE_URL", defaultDSN)),
		Log:         loadLog(),
	}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if cfg.ListenAddr == "" {
		return nil, fmt.Errorf("MOCKAPI_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must not be empty")
	}
	return cfg, nil
}

// IsProdLike reports whether env names a production deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func appEnv() string {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = strings.TrimSpace(os.Getenv("ENV"))
	}
	if env == "" {
		env = defaultAppEnv
	}
	return strings.ToLower(env)
}

func loadLog() Log {
	return Log{
		Level: strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))),
		File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
	}
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
