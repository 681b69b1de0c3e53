package provider

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a single upstream call when none is configured.
// Audio uploads can be large, so this is generous.
const DefaultTimeout = 5 * time.Minute

// Options enumerates everything needed to reach an upstream provider
type Options struct {
	APIKey   string
	BaseURL  string
	ProxyURL string
	Timeout  time.Duration
}

// Client is an explicitly constructed upstream client shared by the
// transcription and summarization services.
type Client struct {
	opts       Options
	httpClient *http.Client
	openai     *openai.Client
}

// New validates opts and builds the HTTP and OpenAI clients
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient, err := NewHTTPClient(opts.ProxyURL, opts.Timeout)
	if err != nil {
		return nil, err
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = httpClient

	return &Client{
		opts:       opts,
		httpClient: httpClient,
		openai:     openai.NewClientWithConfig(cfg),
	}, nil
}

// NewHTTPClient returns an *http.Client that routes through proxyURL when set
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("proxy url %q has no host", proxyURL)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// OpenAI returns the configured go-openai client
func (c *Client) OpenAI() *openai.Client {
	return c.openai
}

// HTTPClient returns the proxy-aware client for SDKs that accept one
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Timeout is the per-call ceiling
func (c *Client) Timeout() time.Duration {
	return c.opts.Timeout
}

// ProxyURL reports the configured proxy, empty when direct
func (c *Client) ProxyURL() string {
	return c.opts.ProxyURL
}

// BaseURL reports the configured base URL override
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}
