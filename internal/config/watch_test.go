package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcherReloads(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	write := func(level string) {
		t.Helper()
		data := "openai:\n  api_key: sk-test\nlogging:\n  level: " + level + "\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("info")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Stop()
	})

	write("debug")

	select {
	case cfg := <-changes:
		if cfg.Logging.Level != "debug" {
			t.Errorf("level = %q, want debug", cfg.Logging.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherKeepsSettingsOnBadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("openai:\n  api_key: sk-test\n"), 0644); err != nil {
		t.Fatal(err)
	}

	called := false
	w, err := NewWatcher(path, func(*Config) { called = true }, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// missing credential fails validation
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w.reload()
	if called {
		t.Error("invalid config must not be applied")
	}
}
