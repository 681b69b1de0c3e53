package transcription

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/provider"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Transcriber converts an audio file into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*types.TranscriptionResult, error)
}

// WhisperTranscriber calls the provider's /audio/transcriptions endpoint
type WhisperTranscriber struct {
	client *provider.Client
	model  string
	logger *zap.Logger
}

// NewWhisperTranscriber creates a new transcriber on top of an upstream client
func NewWhisperTranscriber(client *provider.Client, model string, logger *zap.Logger) *WhisperTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperTranscriber{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Transcribe sends the audio file once, no retries. language is an optional
// ISO-639-1 hint.
func (wt *WhisperTranscriber) Transcribe(ctx context.Context, audioPath, language string) (*types.TranscriptionResult, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, types.InternalError("failed to open audio file", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, wt.client.Timeout())
	defer cancel()

	wt.logger.Info("sending audio to transcription provider",
		zap.String("file", filepath.Base(audioPath)),
		zap.String("model", wt.model),
		zap.String("language", language),
		zap.Bool("proxy", wt.client.ProxyURL() != ""),
	)

	resp, err := wt.client.OpenAI().CreateTranscription(ctx, openai.AudioRequest{
		Model:    wt.model,
		FilePath: filepath.Base(audioPath),
		Reader:   file,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		wt.logger.Error("transcription request failed",
			zap.Int("status", provider.StatusCode(err)),
			zap.Error(err),
		)
		return nil, types.UpstreamError(provider.Describe(err), nil)
	}

	result := &types.TranscriptionResult{
		Text:     strings.TrimSpace(resp.Text),
		Duration: resp.Duration,
		Language: resp.Language,
	}

	wt.logger.Info("transcription completed",
		zap.Float64("duration", result.Duration),
		zap.String("language", result.Language),
		zap.Int("chars", len(result.Text)),
	)
	return result, nil
}
