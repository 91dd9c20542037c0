// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package config loads Inkwell configuration from an optional YAML
// file overlaid with command-line flags. The data-store credentials
// are treated as opaque input; nothing validates them beyond presence.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Defaults applied when neither file nor flags set a key.
const (
	DefaultHTTPAddr    = "127.0.0.1:8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultDBPort      = 5432
	DefaultDBSSLMode   = "disable"
	DefaultSessionTTL  = 24 * time.Hour
)

// Database holds connection parameters for the backing store.
type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN renders the connection parameters as a postgres:// URL.
// User and password are URL-escaped so arbitrary credential bytes
// survive the round trip.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Config is the full Inkwell configuration.
type Config struct {
	Database Database `koanf:"database"`
	HTTP     struct {
		Addr string `koanf:"addr"`
	} `koanf:"http"`
	Metrics struct {
		Addr string `koanf:"addr"`
	} `koanf:"metrics"`
	Log struct {
		Format string `koanf:"format"`
	} `koanf:"log"`
	Session struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"session"`
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.host is required")
	}
	if c.Database.Name == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.name is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

// Load reads configuration from path (optional, YAML) and overlays any
// flags the user set. Missing keys fall back to defaults. The returned
// config is validated.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "load config file").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "load flags").
				Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").
			With("operation", "unmarshal config").
			Wrap(err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultHTTPAddr
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDBSSLMode
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = DefaultSessionTTL
	}
}
