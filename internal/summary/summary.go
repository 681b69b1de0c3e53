package summary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

const (
	temperature      = 0.3
	maxTokens        = 2000
	briefMaxTokens   = 500
	DefaultBriefSize = 200
)

// Summarizer turns a transcript into structured meeting minutes
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, opts types.SummaryOptions) (*types.SummaryResult, error)
	Brief(ctx context.Context, text string, maxLength int) (string, error)
}

// parseSummary decodes the model reply and strips the fields the caller
// opted out of. Any decode failure fails the whole call.
func parseSummary(content string, opts types.SummaryOptions) (*types.SummaryResult, error) {
	content = stripCodeFence(content)
	if content == "" {
		return nil, types.ParseError("empty reply from summarization provider", nil)
	}

	var result types.SummaryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, types.ParseError("summarization reply is not valid JSON", err)
	}

	if opts.WantDecisions() {
		if result.KeyDecisions == nil {
			result.KeyDecisions = &[]string{}
		}
	} else {
		result.KeyDecisions = nil
	}

	if opts.WantActionItems() {
		if result.ActionItems == nil {
			result.ActionItems = &[]types.ActionItem{}
		}
	} else {
		result.ActionItems = nil
	}

	if result.Participants == nil {
		result.Participants = []string{}
	}
	if result.TopicsDiscussed == nil {
		result.TopicsDiscussed = []string{}
	}
	if result.Dialogue == nil {
		result.Dialogue = []types.DialogueTurn{}
	}

	return &result, nil
}

// stripCodeFence tolerates replies wrapped in a ```json fence
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func validateTranscript(text string) error {
	if strings.TrimSpace(text) == "" {
		return types.ValidationError("please provide the text to analyse")
	}
	return nil
}
