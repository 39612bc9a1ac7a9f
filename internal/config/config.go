package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override, e.g.
// BOOKSEARCH_OPEN_LIBRARY_SEARCH_URL. Leaf fields carry no envconfig tag so
// that bare variables like $PATH or $PORT are never consulted.
const EnvPrefix = "BOOKSEARCH"

var (
	once     sync.Once
	instance *Config
)

// ComponentConfig содержит базовые сетевые настройки для запуска сервиса
type ComponentConfig struct {
	Protocol string `yaml:"protocol" split_words:"true"`
	Host     string `yaml:"host" split_words:"true"`
	Port     int    `yaml:"port" split_words:"true"`
	Debug    bool   `yaml:"debug" split_words:"true"`
}

// OpenLibraryConfig describes the upstream search and cover hosts.
type OpenLibraryConfig struct {
	SearchURL string        `yaml:"search_url" split_words:"true"`
	CoverURL  string        `yaml:"cover_url" split_words:"true"`
	Timeout   time.Duration `yaml:"timeout" split_words:"true"`
	Limit     int           `yaml:"limit" split_words:"true"`
}

// UIConfig настройки отображения
type UIConfig struct {
	Locale     string `yaml:"locale" split_words:"true"`
	CoverColor string `yaml:"cover_color" split_words:"true"`
}

// MetricsConfig настройки для экспортера метрик
type MetricsConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

type LogConfig struct {
	Level string `yaml:"level" split_words:"true"`
}

// Config корень дерева конфигурации, соответствующий booksearch.yaml
type Config struct {
	OpenLibrary OpenLibraryConfig `yaml:"open_library" envconfig:"OPEN_LIBRARY"`
	WebAdapter  ComponentConfig   `yaml:"web_adapter" envconfig:"WEB_ADAPTER"`
	UI          UIConfig          `yaml:"ui" envconfig:"UI"`
	Metrics     MetricsConfig     `yaml:"metrics" envconfig:"METRICS"`
	Log         LogConfig         `yaml:"log" envconfig:"LOG"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OpenLibrary: OpenLibraryConfig{
			SearchURL: "https://openlibrary.org",
			CoverURL:  "https://covers.openlibrary.org",
			Timeout:   10 * time.Second,
			Limit:     24,
		},
		WebAdapter: ComponentConfig{
			Protocol: "http",
			Host:     "127.0.0.1",
			Port:     8080,
		},
		UI: UIConfig{
			Locale:     "ro",
			CoverColor: "#3b82f6",
		},
		Metrics: MetricsConfig{Path: "/metrics"},
		Log:     LogConfig{Level: "info"},
	}
}

// Get возвращает инициализированный объект конфигурации (Singleton)
func Get() *Config {
	once.Do(func() {
		path := os.Getenv("BOOKSEARCH_CONFIG")
		if path == "" {
			path = "booksearch.yaml"
		}

		cfg, err := Load(path)
		if err != nil {
			logrus.Fatalf("[CONFIG ERROR] %v", err)
		}
		instance = cfg
	})
	return instance
}

// Load reads path on top of the defaults, then applies .env and
// BOOKSEARCH_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	f, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Debug("config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(f, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c *Config) normalize() {
	c.OpenLibrary.SearchURL = strings.TrimRight(c.OpenLibrary.SearchURL, "/")
	c.OpenLibrary.CoverURL = strings.TrimRight(c.OpenLibrary.CoverURL, "/")
	c.UI.Locale = strings.TrimSpace(c.UI.Locale)
}

func (c *Config) Validate() error {
	if c.OpenLibrary.SearchURL == "" {
		return ErrInvalid("open_library.search_url is required")
	}
	if c.OpenLibrary.CoverURL == "" {
		return ErrInvalid("open_library.cover_url is required")
	}
	if c.OpenLibrary.Limit <= 0 || c.OpenLibrary.Limit > 24 {
		return ErrInvalid("open_library.limit must be between 1 and 24")
	}
	if c.OpenLibrary.Timeout <= 0 {
		return ErrInvalid("open_library.timeout must be positive")
	}
	if c.WebAdapter.Port <= 0 {
		return ErrInvalid("web_adapter.port is required")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return ErrInvalid(fmt.Sprintf("log.level: %v", err))
	}
	return nil
}

type invalidErr string

func (e invalidErr) Error() string { return string(e) }

// ErrInvalid builds a validation error.
func ErrInvalid(msg string) error { return invalidErr(msg) }

// Address возвращает строку host:port
func (c ComponentConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FullURL возвращает строку protocol://host:port (удобно для HTTP/URL)
func (c ComponentConfig) FullURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, c.Host, c.Port)
}
