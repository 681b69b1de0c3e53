// Command diagnose checks configuration, the local server and provider
// connectivity, in that order, and exits non-zero on the first failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/codebuildervaibhav/meeting-minutes/internal/config"
	"github.com/codebuildervaibhav/meeting-minutes/internal/provider"
)

const (
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
	reset  = "\x1b[0m"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "config file path")
	serverURL := flag.String("server", "", "server base URL (default http://localhost:<port>)")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout for each check")
	flag.Parse()

	fmt.Printf("%s=== diagnostics ===%s\n\n", yellow, reset)

	cfg, ok := checkConfig(*configPath)
	if !ok {
		os.Exit(1)
	}

	base := *serverURL
	if base == "" {
		base = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if !checkServer(base, *timeout) {
		fmt.Printf("\n%sdiagnostics stopped: the local server is not healthy%s\n", red, reset)
		os.Exit(1)
	}

	if !checkProvider(cfg, *timeout) {
		fmt.Printf("\n%sdiagnostics failed: check the proxy address and the API key%s\n", red, reset)
		os.Exit(1)
	}

	fmt.Printf("\n%s=== all checks passed ===%s\n", green, reset)
}

func checkConfig(path string) (*config.Config, bool) {
	fmt.Printf("%s[1/3] configuration%s\n", yellow, reset)

	cfg, err := config.Load(path)
	if err != nil {
		fail("configuration invalid: %v", err)
		return nil, false
	}

	pass("OPENAI_API_KEY configured (%s)", mask(cfg.OpenAI.APIKey))
	if cfg.Upstream.ProxyURL != "" {
		pass("proxy configured: %s", cfg.Upstream.ProxyURL)
	} else {
		warn("no proxy configured (PROXY_URL); direct connections to the provider may fail in restricted networks")
	}
	if cfg.OpenAI.BaseURL != "" {
		pass("base URL override: %s", cfg.OpenAI.BaseURL)
	}
	pass("summarizer provider: %s", cfg.Summarizer.Provider)
	return cfg, true
}

func checkServer(base string, timeout time.Duration) bool {
	url := base + "/api/health"
	fmt.Printf("\n%s[2/3] local server (%s)%s\n", yellow, url, reset)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fail("cannot reach server: %v", err)
		warn("make sure the server is running")
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		fail("server returned status %d", resp.StatusCode)
		return false
	}
	pass("server healthy: %s", body)
	return true
}

func checkProvider(cfg *config.Config, timeout time.Duration) bool {
	fmt.Printf("\n%s[3/3] provider connectivity%s\n", yellow, reset)

	client, err := provider.New(provider.Options{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		ProxyURL: cfg.Upstream.ProxyURL,
		Timeout:  timeout,
	})
	if err != nil {
		fail("cannot build provider client: %v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Println("listing models (verifies the API key and the network path)...")
	models, err := client.OpenAI().ListModels(ctx)
	if err != nil {
		fail("provider connection failed: %s", provider.Describe(err))
		return false
	}
	pass("provider reachable, %d models available", len(models.Models))
	return true
}

func pass(format string, args ...any) {
	fmt.Printf("%s✔ %s%s\n", green, fmt.Sprintf(format, args...), reset)
}

func warn(format string, args ...any) {
	fmt.Printf("%s! %s%s\n", yellow, fmt.Sprintf(format, args...), reset)
}

func fail(format string, args ...any) {
	fmt.Printf("%s✘ %s%s\n", red, fmt.Sprintf(format, args...), reset)
}

func mask(key string) string {
	if len(key) <= 10 {
		return "***"
	}
	return key[:10] + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
