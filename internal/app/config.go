package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/promptops/platform-api/internal/db"
	"github.com/promptops/platform-api/internal/platform/envutil"
	"github.com/promptops/platform-api/internal/platform/logger"
)

type Config struct {
	Environment    string
	Version        string
	HTTPAddr       string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	CORSOrigins    []string
	SearchCacheTTL time.Duration
	DB             db.Config
}

// fileConfig is the optional YAML overlay loaded from CONFIG_FILE. Every
// field is a pointer so an absent key leaves the env-derived value alone.
type fileConfig struct {
	Environment    *string   `yaml:"environment"`
	HTTPAddr       *string   `yaml:"http_addr"`
	JWTSecretKey   *string   `yaml:"jwt_secret_key"`
	AccessTokenTTL *int      `yaml:"access_token_ttl_seconds"`
	CORSOrigins    *[]string `yaml:"cors_origins"`
	SearchCacheTTL *int      `yaml:"search_cache_ttl_seconds"`
	DB             *struct {
		Host     *string `yaml:"host"`
		Port     *string `yaml:"port"`
		User     *string `yaml:"user"`
		Password *string `yaml:"password"`
		Name     *string `yaml:"name"`
		SSLMode  *string `yaml:"sslmode"`
	} `yaml:"db"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Environment:    envutil.String("APP_ENV", "development"),
		Version:        envutil.String("APP_VERSION", "dev"),
		HTTPAddr:       envutil.String("HTTP_ADDR", ":8080"),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		SearchCacheTTL: time.Duration(envutil.Int("SEARCH_CACHE_TTL", 60)) * time.Second,
		DB: db.Config{
			Host:     envutil.String("DB_HOST", "localhost"),
			Port:     envutil.String("DB_PORT", "5432"),
			User:     envutil.String("DB_USER", "postgres"),
			Password: envutil.String("DB_PASSWORD", "postgres"),
			Name:     envutil.String("DB_NAME", "platform"),
			SSLMode:  envutil.String("DB_SSLMODE", "disable"),
		},
	}
	if origins := strings.TrimSpace(envutil.String("CORS_ORIGINS", "")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if path := strings.TrimSpace(envutil.String("CONFIG_FILE", "")); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			log.Warn("Config file ignored", "path", path, "error", err)
		} else {
			log.Info("Config file applied", "path", path)
		}
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return cfg
}

func applyConfigFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if fc.Environment != nil {
		cfg.Environment = *fc.Environment
	}
	if fc.HTTPAddr != nil {
		cfg.HTTPAddr = *fc.HTTPAddr
	}
	if fc.JWTSecretKey != nil {
		cfg.JWTSecretKey = *fc.JWTSecretKey
	}
	if fc.AccessTokenTTL != nil {
		cfg.AccessTokenTTL = time.Duration(*fc.AccessTokenTTL) * time.Second
	}
	if fc.CORSOrigins != nil {
		cfg.CORSOrigins = *fc.CORSOrigins
	}
	if fc.SearchCacheTTL != nil {
		cfg.SearchCacheTTL = time.Duration(*fc.SearchCacheTTL) * time.Second
	}
	if fc.DB != nil {
		if fc.DB.Host != nil {
			cfg.DB.Host = *fc.DB.Host
		}
		if fc.DB.Port != nil {
			cfg.DB.Port = *fc.DB.Port
		}
		if fc.DB.User != nil {
			cfg.DB.User = *fc.DB.User
		}
		if fc.DB.Password != nil {
			cfg.DB.Password = *fc.DB.Password
		}
		if fc.DB.Name != nil {
			cfg.DB.Name = *fc.DB.Name
		}
		if fc.DB.SSLMode != nil {
			cfg.DB.SSLMode = *fc.DB.SSLMode
		}
	}
	return nil
}
