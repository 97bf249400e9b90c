// Package config loads console settings from an optional YAML file, an
// optional .env file and CAFE_-prefixed environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the variables that override file settings, e.g.
// CAFE_DATA__DIR or CAFE_SESSION__DURATION.
const EnvPrefix = "CAFE_"

// DataConfig places the JSON stores; file names are joined onto Dir.
type DataConfig struct {
	Dir         string `koanf:"dir"`
	MenuFile    string `koanf:"menu_file"`
	OrdersFile  string `koanf:"orders_file"`
	UsersFile   string `koanf:"users_file"`
	SessionFile string `koanf:"session_file"`
}

// LogConfig controls the rotated JSON log file.
type LogConfig struct {
	File       string `koanf:"file"`
	Level      string `koanf:"level"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Stderr     bool   `koanf:"stderr"`
}

// SessionConfig sets how long an admin login lasts and the key that signs it.
// Duration takes a Go duration such as 30m, or a plain number of seconds.
type SessionConfig struct {
	Duration time.Duration `koanf:"duration"`
	Secret   string        `koanf:"secret"`
}

// AnalyticsConfig sizes the ranked lists in the reports.
type AnalyticsConfig struct {
	DailyTop      int `koanf:"daily_top"`
	DailyBottom   int `koanf:"daily_bottom"`
	MonthlyTop    int `koanf:"monthly_top"`
	MonthlyBottom int `koanf:"monthly_bottom"`
	CategoryTop   int `koanf:"category_top"`
}

// Config is the full settings tree.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Log       LogConfig       `koanf:"log"`
	Session   SessionConfig   `koanf:"session"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Data: DataConfig{
			Dir:         "data",
			MenuFile:    "menu.json",
			OrdersFile:  "orders.json",
			UsersFile:   "users.json",
			SessionFile: "cafe_session.json",
		},
		Log: LogConfig{
			File:       filepath.Join("logs", "cafe.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Session: SessionConfig{
			Duration: 30 * time.Minute,
			Secret:   "cafe-console-local-session",
		},
		Analytics: AnalyticsConfig{
			DailyTop:      3,
			DailyBottom:   2,
			MonthlyTop:    5,
			MonthlyBottom: 5,
			CategoryTop:   3,
		},
	}
}

// Load layers path (skipped when empty or missing), dotenv and the
// environment over Default and validates the result.
func Load(path, dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	if err := secondsToDuration(k, "session.duration"); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// secondsToDuration rewrites a bare number at key as that many seconds, so
// "1800" and "30m" both work.
func secondsToDuration(k *koanf.Koanf, key string) error {
	var raw string
	switch v := k.Get(key).(type) {
	case string:
		raw = strings.TrimSpace(v)
	case int, int64, float64:
		raw = fmt.Sprint(v)
	default:
		return nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return k.Set(key, (time.Duration(secs) * time.Second).String())
}

// Validate rejects settings the console cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Data.Dir) == "" {
		errs = append(errs, errors.New("data.dir required"))
	}
	for key, name := range map[string]string{
		"data.menu_file":    c.Data.MenuFile,
		"data.orders_file":  c.Data.OrdersFile,
		"data.users_file":   c.Data.UsersFile,
		"data.session_file": c.Data.SessionFile,
	} {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%s required", key))
		}
	}
	if c.Session.Duration <= 0 {
		errs = append(errs, errors.New("session.duration must be positive"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("session.secret required"))
	}
	for key, n := range map[string]int{
		"analytics.daily_top":      c.Analytics.DailyTop,
		"analytics.daily_bottom":   c.Analytics.DailyBottom,
		"analytics.monthly_top":    c.Analytics.MonthlyTop,
		"analytics.monthly_bottom": c.Analytics.MonthlyBottom,
		"analytics.category_top":   c.Analytics.CategoryTop,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", key))
		}
	}
	return errors.Join(errs...)
}

// MenuPath, OrdersPath, UsersPath and SessionPath locate the stores under Data.Dir.
func (c Config) MenuPath() string    { return filepath.Join(c.Data.Dir, c.Data.MenuFile) }
func (c Config) OrdersPath() string  { return filepath.Join(c.Data.Dir, c.Data.OrdersFile) }
func (c Config) UsersPath() string   { return filepath.Join(c.Data.Dir, c.Data.UsersFile) }
func (c Config) SessionPath() string { return filepath.Join(c.Data.Dir, c.Data.SessionFile) }
