package indexer

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type ConfigErrorCode string

const (
	ConfigErrorMissingBaseURL ConfigErrorCode = "missing_base_url"
	ConfigErrorInvalidBaseURL ConfigErrorCode = "invalid_base_url"
	ConfigErrorInvalidTimeout ConfigErrorCode = "invalid_timeout"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid indexer config"
	}
	switch e.Code {
	case ConfigErrorMissingBaseURL:
		return "INDEXER_BASE_URL is required"
	case ConfigErrorInvalidBaseURL:
		return fmt.Sprintf(
			"invalid INDEXER_BASE_URL=%q; expected absolute URL like http://ai-runtime:8000",
			e.Value,
		)
	case ConfigErrorInvalidTimeout:
		return fmt.Sprintf(
			"invalid INDEXER_TIMEOUT_SECONDS=%q; expected positive integer",
			e.Value,
		)
	default:
		return "invalid indexer config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL: strings.TrimSpace(os.Getenv("INDEXER_BASE_URL")),
		Timeout: 60 * time.Second,
	}
	rawTimeout := strings.TrimSpace(os.Getenv("INDEXER_TIMEOUT_SECONDS"))
	if rawTimeout != "" {
		secs, err := strconv.Atoi(rawTimeout)
		if err != nil || secs <= 0 {
			return Config{}, &ConfigError{
				Code:  ConfigErrorInvalidTimeout,
				Value: rawTimeout,
				Cause: err,
			}
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.BaseURL == "" {
		return &ConfigError{Code: ConfigErrorMissingBaseURL}
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || strings.TrimSpace(parsed.Scheme) == "" || strings.TrimSpace(parsed.Host) == "" {
		return &ConfigError{
			Code:  ConfigErrorInvalidBaseURL,
			Value: cfg.BaseURL,
			Cause: err,
		}
	}
	if cfg.Timeout <= 0 {
		return &ConfigError{
			Code:  ConfigErrorInvalidTimeout,
			Value: cfg.Timeout.String(),
		}
	}
	return nil
}
