package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// GeminiSummarizer is the alternative chat provider, selected with
// summarizer.provider: gemini
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiSummarizer builds a genai client over the shared proxy-aware
// httpClient. baseURL may be empty.
func NewGeminiSummarizer(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client, logger *zap.Logger) (*GeminiSummarizer, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiSummarizer{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript string, opts types.SummaryOptions) (*types.SummaryResult, error) {
	if err := validateTranscript(transcript); err != nil {
		return nil, err
	}

	model := s.model
	if opts.Model != "" && strings.HasPrefix(opts.Model, "gemini") {
		model = opts.Model
	}

	content, err := s.generate(ctx, model, systemPrompt, userPrompt(transcript), maxTokens, "application/json")
	if err != nil {
		return nil, err
	}

	result, err := parseSummary(content, opts)
	if err != nil {
		s.logger.Error("summary reply rejected", zap.String("model", model), zap.Error(err))
		return nil, err
	}

	s.logger.Info("summary generated",
		zap.String("model", model),
		zap.Int("action_items", len(result.Actions())),
		zap.Int("dialogue_turns", len(result.Dialogue)),
	)
	return result, nil
}

func (s *GeminiSummarizer) Brief(ctx context.Context, text string, maxLength int) (string, error) {
	if err := validateTranscript(text); err != nil {
		return "", err
	}
	if maxLength <= 0 {
		maxLength = DefaultBriefSize
	}

	content, err := s.generate(ctx, s.model, briefPrompt(maxLength), text, briefMaxTokens, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (s *GeminiSummarizer) generate(ctx context.Context, model, system, prompt string, tokens int32, mime string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   tokens,
		ResponseMIMEType:  mime,
	}

	result, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		s.logger.Error("gemini generate content failed", zap.String("model", model), zap.Error(err))
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", types.UpstreamError(fmt.Sprintf("api error: %d - %s", apiErr.Code, apiErr.Message), nil)
		}
		return "", types.UpstreamError(fmt.Sprintf("connection to provider failed: %v", err), nil)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", types.ParseError("empty response from Gemini", nil)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
