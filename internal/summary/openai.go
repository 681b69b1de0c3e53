package summary

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/provider"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// OpenAISummarizer uses the chat completions API in JSON mode
type OpenAISummarizer struct {
	client *provider.Client
	model  string
	logger *zap.Logger
}

func NewOpenAISummarizer(client *provider.Client, model string, logger *zap.Logger) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Summarize sends one chat completion; opts.Model overrides the default model
func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript string, opts types.SummaryOptions) (*types.SummaryResult, error) {
	if err := validateTranscript(transcript); err != nil {
		return nil, err
	}

	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}

	content, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(transcript)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
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

// Brief returns a short plain-text summary
func (s *OpenAISummarizer) Brief(ctx context.Context, text string, maxLength int) (string, error) {
	if err := validateTranscript(text); err != nil {
		return "", err
	}
	if maxLength <= 0 {
		maxLength = DefaultBriefSize
	}

	content, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: briefPrompt(maxLength)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: temperature,
		MaxTokens:   briefMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (s *OpenAISummarizer) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.client.Timeout())
	defer cancel()

	resp, err := s.client.OpenAI().CreateChatCompletion(ctx, req)
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("model", req.Model),
			zap.Int("status", provider.StatusCode(err)),
			zap.Error(err),
		)
		return "", types.UpstreamError(provider.Describe(err), nil)
	}
	if len(resp.Choices) == 0 {
		return "", types.ParseError("no choices returned by summarization provider", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
