package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/summary"
	"github.com/codebuildervaibhav/meeting-minutes/internal/transcription"
	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Remover deletes scratch files
type Remover interface {
	Remove(path string)
}

// Processor runs transcribe -> summarize for one upload
type Processor struct {
	transcriber transcription.Transcriber
	summarizer  summary.Summarizer
	scratch     Remover
	logger      *zap.Logger
}

// NewProcessor creates a new processor
func NewProcessor(t transcription.Transcriber, s summary.Summarizer, scratch Remover, logger *zap.Logger) *Processor {
	return &Processor{
		transcriber: t,
		summarizer:  s,
		scratch:     scratch,
		logger:      logger,
	}
}

// Transcribe runs the transcription step only. The scratch file is removed
// as soon as the provider call returns, whatever the outcome.
func (p *Processor) Transcribe(ctx context.Context, audio *types.UploadedAudio, language string) (*types.TranscriptionResult, error) {
	defer p.scratch.Remove(audio.Path)

	return p.transcriber.Transcribe(ctx, audio.Path, language)
}

// Summarize runs the summarization step only
func (p *Processor) Summarize(ctx context.Context, text string, opts types.SummaryOptions) (*types.SummaryResult, error) {
	return p.summarizer.Summarize(ctx, text, opts)
}

// Brief produces a short plain-text summary
func (p *Processor) Brief(ctx context.Context, text string, maxLength int) (string, error) {
	return p.summarizer.Brief(ctx, text, maxLength)
}

// Process transcribes then summarizes, sequentially. Summarization is only
// attempted after a successful transcription. Errors are tagged with the
// failing step. When summarization fails the returned result still carries
// the transcription, alongside the error.
func (p *Processor) Process(ctx context.Context, audio *types.UploadedAudio, language string) (*types.MeetingResult, error) {
	start := time.Now()
	log := p.logger.With(zap.String("file", audio.OriginalName), zap.Int64("size", audio.Size))
	log.Info("processing started")

	transcript, err := p.Transcribe(ctx, audio, language)
	if err != nil {
		log.Error("transcription step failed", zap.Error(err))
		return nil, types.WithStep(err, types.StepTranscribe)
	}

	minutes, err := p.Summarize(ctx, transcript.Text, types.SummaryOptions{})
	if err != nil {
		log.Error("summarization step failed", zap.Error(err))
		return &types.MeetingResult{Transcription: transcript}, types.WithStep(err, types.StepSummarize)
	}

	log.Info("processing completed", zap.Duration("elapsed", time.Since(start)))
	return &types.MeetingResult{
		Transcription: transcript,
		Summary:       minutes,
	}, nil
}
