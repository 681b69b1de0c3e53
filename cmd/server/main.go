package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/cleanup"
	"github.com/codebuildervaibhav/meeting-minutes/internal/config"
	"github.com/codebuildervaibhav/meeting-minutes/internal/export"
	"github.com/codebuildervaibhav/meeting-minutes/internal/handlers"
	"github.com/codebuildervaibhav/meeting-minutes/internal/logger"
	"github.com/codebuildervaibhav/meeting-minutes/internal/pipeline"
	"github.com/codebuildervaibhav/meeting-minutes/internal/provider"
	"github.com/codebuildervaibhav/meeting-minutes/internal/storage"
	"github.com/codebuildervaibhav/meeting-minutes/internal/summary"
	"github.com/codebuildervaibhav/meeting-minutes/internal/transcription"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := logger.NewLevel(cfg.Logging.Level)
	zl, err := logger.NewWithLevel(level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if _, err := os.Stat(configPath); err == nil {
		stop := watchConfig(configPath, level, zl.Named("config"))
		defer stop()
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	zl.Info("initializing components")

	client, err := provider.New(provider.Options{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		ProxyURL: cfg.Upstream.ProxyURL,
		Timeout:  cfg.UpstreamTimeout(),
	})
	if err != nil {
		return err
	}
	zl.Info("provider client ready",
		zap.String("base_url", client.BaseURL()),
		zap.Bool("proxy", client.ProxyURL() != ""),
		zap.Duration("timeout", client.Timeout()),
	)

	transcriber := transcription.NewWhisperTranscriber(client, cfg.OpenAI.TranscribeModel, zl.Named("transcription"))

	summarizer, err := newSummarizer(cfg, client, zl.Named("summary"))
	if err != nil {
		return err
	}

	scratch, err := storage.NewScratchStore(cfg.Storage.TempDir, zl.Named("scratch"))
	if err != nil {
		return err
	}

	sweeper := cleanup.NewScheduler(
		cfg.Storage.TempDir,
		time.Duration(cfg.Cleanup.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Cleanup.MaxAgeMinutes)*time.Minute,
		zl.Named("cleanup"),
	)
	sweeper.Start()
	defer sweeper.Stop()

	app := handlers.NewApp(handlers.Deps{
		Processor: pipeline.NewProcessor(transcriber, summarizer, scratch, zl.Named("pipeline")),
		Scratch:   scratch,
		Exporter: export.New(export.Options{
			ChromePath: cfg.Export.ChromePath,
		}, zl.Named("export")),
		MaxUploadBytes: cfg.MaxUploadBytes(),
		StaticDir:      cfg.Server.StaticDir,
		Logger:         zl.Named("http"),
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		zl.Info("shutting down gracefully")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("summarizer", cfg.Summarizer.Provider),
		zap.Int("max_file_size_mb", cfg.Limits.MaxFileSizeMB),
	)
	return app.Listen(cfg.Addr())
}

// watchConfig applies logging.level changes without a restart
func watchConfig(path string, level zap.AtomicLevel, zl *zap.Logger) func() {
	w, err := config.NewWatcher(path, func(c *config.Config) {
		logger.SetLevel(level, c.Logging.Level)
		zl.Info("log level updated", zap.String("level", level.String()))
	}, zl)
	if err != nil {
		zl.Warn("config watcher disabled", zap.Error(err))
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			zl.Warn("config watcher stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		w.Stop()
	}
}

func newSummarizer(cfg *config.Config, client *provider.Client, zl *zap.Logger) (summary.Summarizer, error) {
	if cfg.Summarizer.Provider == config.ProviderGemini {
		return summary.NewGeminiSummarizer(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, "", client.HTTPClient(), zl)
	}
	return summary.NewOpenAISummarizer(client, cfg.OpenAI.SummaryModel, zl), nil
}
