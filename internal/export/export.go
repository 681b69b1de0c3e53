package export

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Format is an export target
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// ParseFormat maps a route parameter to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", types.ValidationError(fmt.Sprintf("unsupported export format %q, use markdown, pdf or docx", s))
}

// Document is what gets rendered
type Document struct {
	Transcription *types.TranscriptionResult `json:"transcription"`
	Summary       *types.SummaryResult       `json:"summary"`
	GeneratedAt   time.Time                  `json:"-"`
}

// Validate rejects an empty document
func (d *Document) Validate() error {
	if d == nil || (d.Transcription == nil && d.Summary == nil) {
		return types.ValidationError("nothing to export, transcription or summary is required")
	}
	return nil
}

// DurationSeconds is the audio duration rounded to whole seconds
func (d *Document) DurationSeconds() int {
	if d.Transcription == nil {
		return 0
	}
	return int(math.Round(d.Transcription.Duration))
}

// File is a rendered download
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Options configures the exporter
type Options struct {
	// ChromePath overrides the headless Chrome binary used for PDF
	ChromePath string
	Timeout    time.Duration
}

// Exporter renders meeting results into downloadable files
type Exporter struct {
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// New creates an exporter
func New(opts Options, logger *zap.Logger) *Exporter {
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	return &Exporter{opts: opts, logger: logger, now: time.Now}
}

// Render produces a file in the given format
func (e *Exporter) Render(ctx context.Context, format Format, doc *Document) (*File, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = e.now()
	}

	start := time.Now()
	var (
		file *File
		err  error
	)
	switch format {
	case FormatMarkdown:
		file = &File{
			Name:        fileName(doc.GeneratedAt, "md"),
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(Markdown(doc)),
		}
	case FormatPDF:
		file, err = e.pdf(ctx, doc)
	case FormatDOCX:
		file, err = e.docx(doc)
	default:
		return nil, types.ValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		e.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}

	e.logger.Info("export rendered",
		zap.String("format", string(format)),
		zap.Int("bytes", len(file.Data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return file, nil
}

func fileName(at time.Time, ext string) string {
	return fmt.Sprintf("meeting-minutes_%s.%s", at.Format("2006-01-02"), ext)
}
