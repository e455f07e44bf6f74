package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved lectio configuration.
type Config struct {
	ServerURL       string
	SessionCookie   string
	CookieName      string
	Source          string
	DeveloperKey    string
	PickerLimit     int
	RequestTimeout  time.Duration
	GenerateTimeout time.Duration
	HealthInterval  time.Duration
	LogDir          string
	LogLevel        string
}

const (
	defaultConfigPath      = "~/.config/lectio/config.toml"
	defaultServerURL       = "http://127.0.0.1:8080"
	defaultCookieName      = "session"
	defaultSource          = "modal"
	defaultPickerLimit     = 10
	defaultRequestTimeout  = 10
	defaultGenerateTimeout = 660
	defaultHealthInterval  = 15
	defaultLogDir          = "~/.local/state/lectio"
	defaultLogLevel        = "info"
	logFileName            = "lectio.log"
)

// Environment variables that override the file. Secrets belong here rather
// than in a world-readable config.
const (
	EnvSessionCookie = "LECTIO_SESSION_COOKIE"
	EnvDeveloperKey  = "LECTIO_DEVELOPER_KEY"
	EnvServerURL     = "LECTIO_SERVER_URL"
)

type rawConfig struct {
	ServerURL       string `toml:"server_url"`
	SessionCookie   string `toml:"session_cookie"`
	CookieName      string `toml:"cookie_name"`
	Source          string `toml:"source"`
	DeveloperKey    string `toml:"developer_key"`
	PickerLimit     int    `toml:"picker_limit"`
	RequestTimeout  int    `toml:"request_timeout"`
	GenerateTimeout int    `toml:"generate_timeout"`
	HealthInterval  int    `toml:"health_interval"`
	LogDir          string `toml:"log_dir"`
	LogLevel        string `toml:"log_level"`
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path, falling back to defaults when the file is
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&raw)
	return resolve(raw)
}

func applyEnv(raw *rawConfig) {
	if v, ok := os.LookupEnv(EnvSessionCookie); ok && strings.TrimSpace(v) != "" {
		raw.SessionCookie = v
	}
	if v, ok := os.LookupEnv(EnvDeveloperKey); ok && strings.TrimSpace(v) != "" {
		raw.DeveloperKey = v
	}
	if v, ok := os.LookupEnv(EnvServerURL); ok && strings.TrimSpace(v) != "" {
		raw.ServerURL = v
	}
}

func resolve(raw rawConfig) (Config, error) {
	cfg := Config{
		ServerURL:       orDefault(raw.ServerURL, defaultServerURL),
		SessionCookie:   strings.TrimSpace(raw.SessionCookie),
		CookieName:      orDefault(raw.CookieName, defaultCookieName),
		Source:          strings.ToLower(orDefault(raw.Source, defaultSource)),
		DeveloperKey:    strings.TrimSpace(raw.DeveloperKey),
		PickerLimit:     positiveOr(raw.PickerLimit, defaultPickerLimit),
		RequestTimeout:  seconds(raw.RequestTimeout, defaultRequestTimeout),
		GenerateTimeout: seconds(raw.GenerateTimeout, defaultGenerateTimeout),
		HealthInterval:  seconds(raw.HealthInterval, defaultHealthInterval),
		LogDir:          mustExpand(orDefault(raw.LogDir, defaultLogDir)),
		LogLevel:        strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Source {
	case "modal", "picker":
	default:
		return fmt.Errorf("config: source must be \"modal\" or \"picker\", got %q", c.Source)
	}
	if c.Source == "picker" && c.DeveloperKey == "" {
		return fmt.Errorf("config: source \"picker\" needs developer_key or %s", EnvDeveloperKey)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// LogPath returns the path of the structured log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func seconds(value, fallback int) time.Duration {
	return time.Duration(positiveOr(value, fallback)) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
