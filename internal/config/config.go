package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAPIURL is the production backend consumed when no override is set.
	DefaultAPIURL = "https://empathai-backend-production-a6c7.up.railway.app"

	defaultTimeout = 120 * time.Second
)

// Config holds the client configuration, populated from the environment.
type Config struct {
	APIURL      string        // Backend base URL
	Timeout     time.Duration // HTTP timeout for API calls
	SessionPath string        // Path of the persisted session file
	LogLevel    string
	LogFormat   string
	LogFile     string
}

// Load reads configuration from the environment, with .env file support.
func Load() (*Config, error) {
	// Try loading from current directory for development overrides
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded configuration from .env in current directory")
	}

	cfg := &Config{
		APIURL:    DefaultAPIURL,
		Timeout:   defaultTimeout,
		LogLevel:  "info",
		LogFormat: "auto",
	}

	if apiURL := os.Getenv("A11YSUTRA_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}

	if timeoutStr := os.Getenv("A11YSUTRA_TIMEOUT"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			log.Warn().Str("value", timeoutStr).Msg("Invalid A11YSUTRA_TIMEOUT; using default")
		} else {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	if sessionPath := os.Getenv("A11YSUTRA_SESSION_FILE"); sessionPath != "" {
		cfg.SessionPath = sessionPath
	} else {
		path, err := defaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		cfg.SessionPath = path
	}

	return cfg, nil
}

func defaultSessionPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "a11ysutra", "session.json"), nil
}
