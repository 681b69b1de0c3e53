package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

type fakeTranscriber struct {
	result *types.TranscriptionResult
	err    error
	calls  int
	// fileExisted records whether the scratch file was present during the call
	fileExisted bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path, language string) (*types.TranscriptionResult, error) {
	f.calls++
	_, err := os.Stat(path)
	f.fileExisted = err == nil
	return f.result, f.err
}

type fakeSummarizer struct {
	result *types.SummaryResult
	err    error
	calls  int
	got    string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, opts types.SummaryOptions) (*types.SummaryResult, error) {
	f.calls++
	f.got = text
	return f.result, f.err
}

func (f *fakeSummarizer) Brief(ctx context.Context, text string, maxLength int) (string, error) {
	return "brief", nil
}

type fileRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *fileRemover) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	os.Remove(path)
	r.removed = append(r.removed, path)
}

func scratchFile(t *testing.T) *types.UploadedAudio {
	t.Helper()
	path := filepath.Join(t.TempDir(), "b7e2.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return &types.UploadedAudio{Path: path, OriginalName: "standup.mp3", Extension: "mp3", Size: 5}
}

func TestProcessSuccess(t *testing.T) {
	transcript := &types.TranscriptionResult{Text: "hello team", Duration: 42, Language: "english"}
	minutes := &types.SummaryResult{Summary: "greeting"}
	tr := &fakeTranscriber{result: transcript}
	su := &fakeSummarizer{result: minutes}
	rm := &fileRemover{}

	audio := scratchFile(t)
	got, err := NewProcessor(tr, su, rm, zap.NewNop()).Process(context.Background(), audio, "en")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if diff := cmp.Diff(&types.MeetingResult{Transcription: transcript, Summary: minutes}, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if !tr.fileExisted {
		t.Error("scratch file should exist while transcribing")
	}
	if su.got != "hello team" {
		t.Errorf("summarizer got %q", su.got)
	}
	if _, err := os.Stat(audio.Path); !os.IsNotExist(err) {
		t.Error("scratch file should be removed")
	}
}

func TestProcessTranscriptionFailure(t *testing.T) {
	tr := &fakeTranscriber{err: types.UpstreamError("api error: 500 - boom", nil)}
	su := &fakeSummarizer{}
	rm := &fileRemover{}

	audio := scratchFile(t)
	got, err := NewProcessor(tr, su, rm, zap.NewNop()).Process(context.Background(), audio, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("result should be nil, got %+v", got)
	}

	var appErr *types.Error
	if !errors.As(err, &appErr) || appErr.Step != types.StepTranscribe {
		t.Fatalf("expected transcribe step, got %#v", err)
	}
	if appErr.Kind != types.KindUpstream {
		t.Errorf("kind = %v", appErr.Kind)
	}
	if su.calls != 0 {
		t.Errorf("summarizer called %d times after transcription failure", su.calls)
	}
	if _, err := os.Stat(audio.Path); !os.IsNotExist(err) {
		t.Error("scratch file should be removed after failure")
	}
	if len(rm.removed) != 1 || rm.removed[0] != audio.Path {
		t.Errorf("removed = %v", rm.removed)
	}
}

func TestProcessSummarizationFailureKeepsTranscription(t *testing.T) {
	transcript := &types.TranscriptionResult{Text: "we decided to ship", Duration: 61.2, Language: "english"}
	tr := &fakeTranscriber{result: transcript}
	su := &fakeSummarizer{err: types.ParseError("summarization reply is not valid JSON", errors.New("invalid character"))}
	rm := &fileRemover{}

	got, err := NewProcessor(tr, su, rm, zap.NewNop()).Process(context.Background(), scratchFile(t), "")
	var appErr *types.Error
	if !errors.As(err, &appErr) || appErr.Step != types.StepSummarize {
		t.Fatalf("expected summarize step, got %#v", err)
	}
	if appErr.Kind != types.KindParse {
		t.Errorf("kind = %v", appErr.Kind)
	}
	if got == nil {
		t.Fatal("result should carry the transcription")
	}
	if diff := cmp.Diff(transcript, got.Transcription); diff != "" {
		t.Errorf("transcription modified (-want +got):\n%s", diff)
	}
	if got.Summary != nil {
		t.Error("summary should be nil")
	}
}

func TestTranscribeRemovesFile(t *testing.T) {
	tr := &fakeTranscriber{result: &types.TranscriptionResult{Text: "x"}}
	rm := &fileRemover{}
	audio := scratchFile(t)

	if _, err := NewProcessor(tr, &fakeSummarizer{}, rm, zap.NewNop()).Transcribe(context.Background(), audio, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(audio.Path); !os.IsNotExist(err) {
		t.Error("scratch file should be removed")
	}
}

func TestSingleStepsLeaveStepUnset(t *testing.T) {
	p := NewProcessor(
		&fakeTranscriber{err: types.UpstreamError("api error: 500", nil)},
		&fakeSummarizer{err: types.ValidationError("please provide text to analyze")},
		&fileRemover{},
		zap.NewNop(),
	)

	_, err := p.Summarize(context.Background(), " ", types.SummaryOptions{})
	if appErr := types.AsError(err); appErr.Step != "" || appErr.Kind != types.KindValidation {
		t.Errorf("Summarize() error = %#v", appErr)
	}

	_, err = p.Transcribe(context.Background(), scratchFile(t), "")
	if appErr := types.AsError(err); appErr.Step != "" || appErr.Kind != types.KindUpstream {
		t.Errorf("Transcribe() error = %#v", appErr)
	}
}
