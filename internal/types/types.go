package types

// Processing steps reported on failure
const (
	StepTranscribe = "transcribe"
	StepSummarize  = "summarize"
)

// TranscriptionResult represents the output from the speech-to-text provider
type TranscriptionResult struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}

// ActionItem is a single follow-up extracted from the meeting
type ActionItem struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
	Deadline string `json:"deadline"`
}

// DialogueTurn is one attributed statement
type DialogueTurn struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// SummaryResult is the structured meeting minutes.
// KeyDecisions and ActionItems are nil when the caller opted out, which
// drops the key from the JSON entirely.
type SummaryResult struct {
	Summary         string         `json:"summary"`
	KeyDecisions    *[]string      `json:"key_decisions,omitempty"`
	ActionItems     *[]ActionItem  `json:"action_items,omitempty"`
	Participants    []string       `json:"participants"`
	TopicsDiscussed []string       `json:"topics_discussed"`
	Dialogue        []DialogueTurn `json:"dialogue"`
}

// Decisions returns the key decisions or nil when stripped
func (s *SummaryResult) Decisions() []string {
	if s == nil || s.KeyDecisions == nil {
		return nil
	}
	return *s.KeyDecisions
}

// Actions returns the action items or nil when stripped
func (s *SummaryResult) Actions() []ActionItem {
	if s == nil || s.ActionItems == nil {
		return nil
	}
	return *s.ActionItems
}

// SummaryOptions controls summarization
type SummaryOptions struct {
	Model              string `json:"model,omitempty"`
	IncludeActionItems *bool  `json:"include_action_items,omitempty"`
	IncludeDecisions   *bool  `json:"include_decisions,omitempty"`
}

// WantActionItems defaults to true when unset
func (o SummaryOptions) WantActionItems() bool {
	return o.IncludeActionItems == nil || *o.IncludeActionItems
}

// WantDecisions defaults to true when unset
func (o SummaryOptions) WantDecisions() bool {
	return o.IncludeDecisions == nil || *o.IncludeDecisions
}

// MeetingResult is the combined outcome of a processed upload
type MeetingResult struct {
	Transcription *TranscriptionResult `json:"transcription"`
	Summary       *SummaryResult       `json:"summary"`
}

// UploadedAudio describes a received file sitting in the scratch directory
type UploadedAudio struct {
	Path         string
	OriginalName string
	Extension    string
	Size         int64
}
