package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL_TRANSCRIBE", "OPENAI_MODEL_SUMMARY",
		"GEMINI_API_KEY", "GEMINI_MODEL", "SUMMARIZER_PROVIDER", "PROXY_URL", "HOST",
		"STATIC_DIR", "TEMP_DIR", "LOG_LEVEL", "CHROME_PATH", "PORT",
		"UPSTREAM_TIMEOUT_SECONDS", "MAX_FILE_SIZE_MB",
	} {
		t.Setenv(key, "")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "missing api key",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "whitespace api key",
			config:  Config{OpenAI: OpenAIConfig{APIKey: "   "}},
			wantErr: true,
		},
		{
			name: "gemini without key",
			config: Config{
				OpenAI:     OpenAIConfig{APIKey: "sk-test"},
				Summarizer: SummarizerConfig{Provider: "gemini"},
			},
			wantErr: true,
		},
		{
			name: "gemini with key",
			config: Config{
				OpenAI:     OpenAIConfig{APIKey: "sk-test"},
				Gemini:     GeminiConfig{APIKey: "g-test"},
				Summarizer: SummarizerConfig{Provider: "Gemini"},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				OpenAI:     OpenAIConfig{APIKey: "sk-test"},
				Summarizer: SummarizerConfig{Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				Server: ServerConfig{Port: 70000},
			},
			wantErr: true,
		},
		{
			name: "negative cleanup interval",
			config: Config{
				OpenAI:  OpenAIConfig{APIKey: "sk-test"},
				Cleanup: CleanupConfig{IntervalMinutes: -5},
			},
			wantErr: true,
		},
		{
			name: "negative max age",
			config: Config{
				OpenAI:  OpenAIConfig{APIKey: "sk-test"},
				Cleanup: CleanupConfig{MaxAgeMinutes: -1},
			},
			wantErr: true,
		},
		{
			name: "negative upstream timeout",
			config: Config{
				OpenAI:   OpenAIConfig{APIKey: "sk-test"},
				Upstream: UpstreamConfig{TimeoutSeconds: -30},
			},
			wantErr: true,
		},
		{
			name: "negative file size",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				Limits: LimitsConfig{MaxFileSizeMB: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Limits.MaxFileSizeMB != 25 {
		t.Errorf("MaxFileSizeMB = %d, want 25", cfg.Limits.MaxFileSizeMB)
	}
	if cfg.MaxUploadBytes() != 25*1024*1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes())
	}
	if cfg.OpenAI.TranscribeModel != "whisper-1" {
		t.Errorf("TranscribeModel = %q", cfg.OpenAI.TranscribeModel)
	}
	if cfg.Summarizer.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Summarizer.Provider)
	}
	if cfg.UpstreamTimeout() != 5*time.Minute {
		t.Errorf("UpstreamTimeout = %v", cfg.UpstreamTimeout())
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8081
  static_dir: "frontend/dist"

openai:
  api_key: "sk-from-file"
  summary_model: "gpt-4o"

upstream:
  proxy_url: "http://127.0.0.1:7890"
  timeout_seconds: 60

limits:
  max_file_size_mb: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Errorf("Port = %v, want %v", cfg.Server.Port, 8081)
	}
	if cfg.OpenAI.SummaryModel != "gpt-4o" {
		t.Errorf("SummaryModel = %v, want %v", cfg.OpenAI.SummaryModel, "gpt-4o")
	}
	if cfg.Upstream.ProxyURL != "http://127.0.0.1:7890" {
		t.Errorf("ProxyURL = %v", cfg.Upstream.ProxyURL)
	}
	if cfg.MaxUploadBytes() != 10*1024*1024 {
		t.Errorf("MaxUploadBytes = %v", cfg.MaxUploadBytes())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("PROXY_URL", "http://proxy.internal:3128")
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8081\nopenai:\n  api_key: sk-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want env value", cfg.OpenAI.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.OpenAI.BaseURL != "https://gateway.example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.Upstream.ProxyURL != "http://proxy.internal:3128" {
		t.Errorf("ProxyURL = %q", cfg.Upstream.ProxyURL)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want default", cfg.Server.Port)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Error("Load() should fail without OPENAI_API_KEY")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PORT", "eighty")

	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Error("Load() should fail on non-numeric PORT")
	}
}
