package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/somoscreators/taskboard/internal/view"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportHTTP    = "http"
	TransportMCPHTTP = "mcp-http"
	TransportStdio   = "stdio"
)

// Source kinds.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceGCS    = "gcs"
	SourceSQLite = "sqlite"
)

// DefaultTimezone is used to read dates that carry no offset.
const DefaultTimezone = "America/Sao_Paulo"

// Config defines server configuration.
type Config struct {
	Server      ServerConfig            `yaml:"server" json:"server"`
	Transport   TransportConfig         `yaml:"transport" json:"transport"`
	Log         LogConfig               `yaml:"log" json:"log"`
	Source      SourceConfig            `yaml:"source" json:"source"`
	Activity    ActivityConfig          `yaml:"activity" json:"activity"`
	Timezone    string                  `yaml:"timezone" json:"timezone"`
	Views       map[string]view.Profile `yaml:"views" json:"views"`
	DefaultView string                  `yaml:"default_view" json:"default_view"`
}

type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" json:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	// Path, when set, receives the log output instead of stderr.
	Path string `yaml:"path" json:"path"`
}

// ActivityConfig enables the load and export history.
type ActivityConfig struct {
	// DB is the SQLite database of the history. Empty disables it.
	DB string `yaml:"db" json:"db"`
}

type SourceConfig struct {
	Kind   string `yaml:"kind" json:"kind"`
	Path   string `yaml:"path" json:"path"`
	URL    string `yaml:"url" json:"url"`
	Bucket string `yaml:"bucket" json:"bucket"`
	Object string `yaml:"object" json:"object"`
	Prefix string `yaml:"prefix" json:"prefix"`
	// DB is the SQLite database file for the sqlite kind.
	DB string `yaml:"db" json:"db"`
	// Timeout is the remote fetch timeout in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Log: LogConfig{
			Level: "info",
		},
		Source: SourceConfig{
			Kind:    SourceFile,
			Path:    "dados.json",
			DB:      "taskboard.db",
			Timeout: 30,
		},
		Timezone:    DefaultTimezone,
		DefaultView: view.ViewTeam,
	}
}

// Load reads configuration from the file named by TASKBOARD_CONFIG_PATH, if
// any, and environment variables.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("TASKBOARD_CONFIG_PATH"))
}

// LoadFrom reads configuration from an optional file and environment variables.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TASKBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("TASKBOARD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("TASKBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("TASKBOARD_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if kind := os.Getenv("TASKBOARD_SOURCE_KIND"); kind != "" {
		cfg.Source.Kind = kind
	}
	if srcPath := os.Getenv("TASKBOARD_SOURCE_PATH"); srcPath != "" {
		cfg.Source.Path = srcPath
	}
	if url := os.Getenv("TASKBOARD_SOURCE_URL"); url != "" {
		cfg.Source.URL = url
	}
	if bucket := os.Getenv("TASKBOARD_SOURCE_BUCKET"); bucket != "" {
		cfg.Source.Bucket = bucket
	}
	if object := os.Getenv("TASKBOARD_SOURCE_OBJECT"); object != "" {
		cfg.Source.Object = object
	}
	if prefix := os.Getenv("TASKBOARD_SOURCE_PREFIX"); prefix != "" {
		cfg.Source.Prefix = prefix
	}
	if db := os.Getenv("TASKBOARD_SOURCE_DB"); db != "" {
		cfg.Source.DB = db
	}
	if timeoutStr := os.Getenv("TASKBOARD_SOURCE_TIMEOUT"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKBOARD_SOURCE_TIMEOUT: %w", err)
		}
		cfg.Source.Timeout = timeout
	}
	if activityDB := os.Getenv("TASKBOARD_ACTIVITY_DB"); activityDB != "" {
		cfg.Activity.DB = activityDB
	}
	if tz := os.Getenv("TASKBOARD_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	if defaultView := os.Getenv("TASKBOARD_DEFAULT_VIEW"); defaultView != "" {
		cfg.DefaultView = defaultView
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("invalid source timeout %d", c.Source.Timeout)
	}
	switch c.Transport.Mode {
	case TransportHTTP, TransportMCPHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport mode %q", c.Transport.Mode)
	}
	switch c.Source.Kind {
	case SourceFile, SourceHTTP, SourceGCS, SourceSQLite:
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SourceTimeout returns the remote fetch timeout.
func (c Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.Timeout) * time.Second
}

// Location returns the configured time zone, or time.Local when it is unknown.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Profiles resolves the view profiles. Overrides are applied by name; new
// names are added in name order.
func (c Config) Profiles() ([]view.Profile, error) {
	names := make([]string, 0, len(c.Views))
	for name := range c.Views {
		names = append(names, name)
	}
	slices.Sort(names)

	overrides := make([]view.Profile, 0, len(names))
	for _, name := range names {
		p := c.Views[name]
		p.Name = name
		overrides = append(overrides, p)
	}
	profiles, err := view.ResolveProfiles(overrides)
	if err != nil {
		return nil, err
	}
	if c.DefaultView != "" && !slices.ContainsFunc(profiles, func(p view.Profile) bool { return p.Name == c.DefaultView }) {
		return nil, fmt.Errorf("default view %q is not configured", c.DefaultView)
	}
	return profiles, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
		if err := json.Unmarshal(standardized, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}
	return nil
}
