package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr    = "127.0.0.1:3000"
	DefaultDataDir       = "./files"
	DefaultAllowedOrigin = "http://localhost:8000"
	DefaultLogLevel      = "info"
	DefaultGCTTLMin      = 60
	DefaultGCIntervalMin = 10
)

type Config struct {
	ListenAddr     string   `yaml:"listen_addr" json:"listen_addr"`
	DataDir        string   `yaml:"data_dir" json:"data_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`
	// MaxUploadBytes ограничивает тело POST /files; 0 — без ограничения.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	GCTTLMin       int   `yaml:"gc_ttl_minutes" json:"gc_ttl_minutes"`
	GCIntervalMin  int   `yaml:"gc_interval_minutes" json:"gc_interval_minutes"`
	Gops           bool  `yaml:"gops" json:"gops"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr:     DefaultListenAddr,
		DataDir:        DefaultDataDir,
		AllowedOrigins: []string{DefaultAllowedOrigin},
		LogLevel:       DefaultLogLevel,
		GCTTLMin:       DefaultGCTTLMin,
		GCIntervalMin:  DefaultGCIntervalMin,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла не ошибка — берутся значения по умолчанию.
func Load() (*Config, error) {
	c := Default()

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return c, c.Validate()
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitComma(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("GC_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GC_TTL_MINUTES: %w", err)
		}
		c.GCTTLMin = n
	}
	if v := os.Getenv("GC_INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GC_INTERVAL_MINUTES: %w", err)
		}
		c.GCIntervalMin = n
	}
	if v := os.Getenv("GOPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GOPS: %w", err)
		}
		c.Gops = b
	}

	return nil
}

// Validate проверяет обязательные поля и числовые ограничения.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is not configured")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is not configured")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be >= 0")
	}
	if c.GCTTLMin < 0 || c.GCIntervalMin < 0 {
		return fmt.Errorf("gc settings must be >= 0")
	}

	return nil
}

func (c *Config) GCTTL() time.Duration {
	return time.Duration(c.GCTTLMin) * time.Minute
}

func (c *Config) GCInterval() time.Duration {
	return time.Duration(c.GCIntervalMin) * time.Minute
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
