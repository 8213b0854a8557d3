package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort       = "3000"
	defaultRateWindow = time.Minute
)

type Config struct {
	Port           string
	GinMode        string
	Production     bool
	LogLevel       string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c Config) AllowAllOrigins() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", defaultPort),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("invalid GIN_MODE %q: must be debug, release or test", cfg.GinMode)
	}
	cfg.Production = cfg.GinMode == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, frontendURL)
	}
	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	// No origin configured means an open API.
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	// Rate limiting is opt-in.
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q: must be a non-negative integer", v)
		}
		cfg.RateLimit = n
	}

	cfg.RateWindow = defaultRateWindow
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: must be positive", v)
		}
		cfg.RateWindow = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
