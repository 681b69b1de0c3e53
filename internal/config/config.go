package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Storage    StorageConfig    `yaml:"storage"`
	Cleanup    CleanupConfig    `yaml:"cleanup"`
	Limits     LimitsConfig     `yaml:"limits"`
	Logging    LoggingConfig    `yaml:"logging"`
	Export     ExportConfig     `yaml:"export"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type OpenAIConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	TranscribeModel string `yaml:"transcribe_model"`
	SummaryModel    string `yaml:"summary_model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type SummarizerConfig struct {
	Provider string `yaml:"provider"`
}

type UpstreamConfig struct {
	ProxyURL       string `yaml:"proxy_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type StorageConfig struct {
	TempDir string `yaml:"temp_dir"`
}

type CleanupConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
	MaxAgeMinutes   int `yaml:"max_age_minutes"`
}

type LimitsConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ExportConfig struct {
	ChromePath string `yaml:"chrome_path"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads the optional YAML file at path, applies environment overrides
// (including a local .env file) and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.OpenAI.TranscribeModel, "OPENAI_MODEL_TRANSCRIBE")
	setString(&c.OpenAI.SummaryModel, "OPENAI_MODEL_SUMMARY")
	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	setString(&c.Summarizer.Provider, "SUMMARIZER_PROVIDER")
	setString(&c.Upstream.ProxyURL, "PROXY_URL")
	setString(&c.Server.Host, "HOST")
	setString(&c.Server.StaticDir, "STATIC_DIR")
	setString(&c.Storage.TempDir, "TEMP_DIR")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Export.ChromePath, "CHROME_PATH")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Server.Port, "PORT"},
		{&c.Upstream.TimeoutSeconds, "UPSTREAM_TIMEOUT_SECONDS"},
		{&c.Limits.MaxFileSizeMB, "MAX_FILE_SIZE_MB"},
	}
	for _, v := range ints {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}
	return nil
}

// Validate fills defaults and rejects unusable configurations.
// A missing OpenAI credential is fatal.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		return fmt.Errorf("openai.api_key (OPENAI_API_KEY) is required")
	}

	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = ProviderOpenAI
	}
	c.Summarizer.Provider = strings.ToLower(c.Summarizer.Provider)
	switch c.Summarizer.Provider {
	case ProviderOpenAI:
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key (GEMINI_API_KEY) is required when summarizer.provider is gemini")
		}
	default:
		return fmt.Errorf("unknown summarizer.provider %q", c.Summarizer.Provider)
	}

	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "web"
	}
	if c.OpenAI.TranscribeModel == "" {
		c.OpenAI.TranscribeModel = "whisper-1"
	}
	if c.OpenAI.SummaryModel == "" {
		c.OpenAI.SummaryModel = "gpt-4o-mini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Upstream.TimeoutSeconds == 0 {
		c.Upstream.TimeoutSeconds = 300
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = "uploads"
	}
	if c.Cleanup.IntervalMinutes == 0 {
		c.Cleanup.IntervalMinutes = 10
	}
	if c.Cleanup.MaxAgeMinutes == 0 {
		c.Cleanup.MaxAgeMinutes = 60
	}
	if c.Limits.MaxFileSizeMB == 0 {
		c.Limits.MaxFileSizeMB = 25
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"limits.max_file_size_mb", c.Limits.MaxFileSizeMB},
		{"upstream.timeout_seconds", c.Upstream.TimeoutSeconds},
		{"cleanup.interval_minutes", c.Cleanup.IntervalMinutes},
		{"cleanup.max_age_minutes", c.Cleanup.MaxAgeMinutes},
	} {
		if v.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", v.name, v.value)
		}
	}

	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UpstreamTimeout is the ceiling applied to every provider call
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// MaxUploadBytes is the upload ceiling in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Limits.MaxFileSizeMB) * 1024 * 1024
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}
