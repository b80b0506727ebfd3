package indexer

import (
	"errors"
	"testing"
	"time"
)

func configCode(t *testing.T, err error) ConfigErrorCode {
	t.Helper()
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConfigError, got %T (%v)", err, err)
	}
	return ce.Code
}

func TestResolveConfigFromEnv(t *testing.T) {
	t.Setenv("INDEXER_BASE_URL", "http://ai-runtime:8000")
	t.Setenv("INDEXER_TIMEOUT_SECONDS", "30")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.BaseURL != "http://ai-runtime:8000" {
		t.Fatalf("base url: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("timeout: %v", cfg.Timeout)
	}
}

func TestResolveConfigDefaultTimeout(t *testing.T) {
	t.Setenv("INDEXER_BASE_URL", "http://ai-runtime:8000")
	t.Setenv("INDEXER_TIMEOUT_SECONDS", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Timeout != 60*time.Second {
		t.Fatalf("default timeout: %v", cfg.Timeout)
	}
}

func TestResolveConfigMissingBaseURL(t *testing.T) {
	t.Setenv("INDEXER_BASE_URL", "")
	t.Setenv("INDEXER_TIMEOUT_SECONDS", "")

	_, err := ResolveConfigFromEnv()
	if code := configCode(t, err); code != ConfigErrorMissingBaseURL {
		t.Fatalf("code: want=%s got=%s", ConfigErrorMissingBaseURL, code)
	}
}

func TestResolveConfigBadTimeout(t *testing.T) {
	t.Setenv("INDEXER_BASE_URL", "http://ai-runtime:8000")

	for _, raw := range []string{"abc", "0", "-5"} {
		t.Setenv("INDEXER_TIMEOUT_SECONDS", raw)
		_, err := ResolveConfigFromEnv()
		if code := configCode(t, err); code != ConfigErrorInvalidTimeout {
			t.Fatalf("%q: code want=%s got=%s", raw, ConfigErrorInvalidTimeout, code)
		}
	}
}

func TestValidateConfigBadBaseURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ai-runtime:8000", "/relative/path"} {
		err := ValidateConfig(Config{BaseURL: raw, Timeout: time.Second})
		if code := configCode(t, err); code != ConfigErrorInvalidBaseURL {
			t.Fatalf("%q: code want=%s got=%s", raw, ConfigErrorInvalidBaseURL, code)
		}
	}
}
