package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the web server.
//
// Values come from an optional YAML file first; environment variables
// override whatever the file sets.
type Config struct {
	Listen  string        `yaml:"listen"`
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
}

type LogConfig struct {
	// Format is "console" (human readable) or "json".
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

type SessionConfig struct {
	CookieName   string `yaml:"cookieName"`
	SecureCookie bool   `yaml:"secureCookie"`

	// IdleTimeout drops sessions (and their trips) after this much inactivity.
	// Zero keeps them until the process exits.
	IdleTimeout   Duration `yaml:"idleTimeout"`
	SweepInterval Duration `yaml:"sweepInterval"`
}

// Duration is a time.Duration written as "30s", "12h" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Listen: ":8080",
		Log: LogConfig{
			Format: "console",
			Level:  "info",
		},
		Session: SessionConfig{
			CookieName:    "fp_session",
			IdleTimeout:   Duration(12 * time.Hour),
			SweepInterval: Duration(5 * time.Minute),
		},
	}
}

// Load reads the YAML file at path (if non-empty) over the defaults and then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv is Load without a config file.
func LoadFromEnv() (Config, error) {
	return Load("")
}

func applyEnv(cfg *Config) error {
	// PORT is honored for platforms that only hand out a port number.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Listen = ":" + v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SESSION_COOKIE_NAME"); v != "" {
		cfg.Session.CookieName = v
	}
	if v := os.Getenv("SESSION_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SESSION_COOKIE_SECURE must be a boolean: %w", err)
		}
		cfg.Session.SecureCookie = b
	}
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_IDLE_TIMEOUT must be a duration (e.g. 12h): %w", err)
		}
		cfg.Session.IdleTimeout = Duration(d)
	}
	if v := os.Getenv("SESSION_SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_SWEEP_INTERVAL must be a duration (e.g. 5m): %w", err)
		}
		cfg.Session.SweepInterval = Duration(d)
	}
	if cfg.Session.CookieName == "" {
		return fmt.Errorf("session cookie name must not be empty")
	}
	return nil
}
