package export

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

var generated = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fullDocument() *Document {
	decisions := []string{"Ship v2 on Friday", "Freeze the API"}
	items := []types.ActionItem{
		{Assignee: "Alice", Task: "Write release notes", Deadline: "Thursday"},
		{Assignee: "", Task: "Update dashboards | alerts", Deadline: ""},
		{Assignee: "Bob", Task: "Tag the release", Deadline: ""},
	}
	return &Document{
		Transcription: &types.TranscriptionResult{Text: "Alice: let's ship.\nBob: agreed.", Duration: 61.6, Language: "english"},
		Summary: &types.SummaryResult{
			Summary:         "Release planning for v2.",
			KeyDecisions:    &decisions,
			ActionItems:     &items,
			Participants:    []string{"Alice", "Bob"},
			TopicsDiscussed: []string{"Release", "Monitoring"},
			Dialogue: []types.DialogueTurn{
				{Speaker: "Alice", Content: "let's ship."},
				{Speaker: "Bob", Content: "agreed."},
			},
		},
		GeneratedAt: generated,
	}
}

func TestMarkdownSectionOrder(t *testing.T) {
	md := Markdown(fullDocument())

	want := []string{
		headingSummary,
		headingTopics,
		headingDecisions,
		headingActionItems,
		headingParticipants,
		headingDialogue,
		headingTranscript,
	}
	if diff := cmp.Diff(want, Headings(md)); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}

	for _, s := range []string{
		"# Meeting Minutes\n",
		"**Generated**: 2025-03-14 09:30:00",
		"**Duration**: 62 seconds",
		"- Monitoring\n",
		"Alice, Bob\n",
		"**Bob**: agreed.\n",
		"| Assignee | Task | Deadline |",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q", s)
		}
	}
	if !strings.HasSuffix(md, "Alice: let's ship.\nBob: agreed.\n") {
		t.Error("transcript should close the document")
	}
}

func TestMarkdownActionItemsRoundTrip(t *testing.T) {
	doc := fullDocument()
	md := Markdown(doc)

	if !strings.Contains(md, "| Unassigned | Update dashboards \\| alerts | Not specified |") {
		t.Errorf("placeholders or escaping missing:\n%s", md)
	}
	if diff := cmp.Diff(doc.Summary.Actions(), ParseActionItems(md)); diff != "" {
		t.Errorf("action items mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownActionItemsRoundTripEdgeCases(t *testing.T) {
	items := []types.ActionItem{
		{Assignee: "Carol", Task: "line one\nline two", Deadline: "Friday"},
		{Assignee: "  padded  ", Task: " lead", Deadline: "trail "},
		{Assignee: "Unassigned", Task: "literal placeholder", Deadline: "Not specified"},
		{Assignee: `C:\share\`, Task: `a \| b`, Deadline: "use <br> tags"},
		{Assignee: "Dan", Task: "", Deadline: ""},
	}
	doc := fullDocument()
	doc.Summary.ActionItems = &items

	md := Markdown(doc)
	if diff := cmp.Diff(items, ParseActionItems(md)); diff != "" {
		t.Errorf("action items mismatch (-want +got):\n%s\n%s", diff, md)
	}
	if !strings.Contains(md, "| Carol | line one<br>line two | Friday |") {
		t.Errorf("newline should render as a line break:\n%s", md)
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	doc := &Document{
		Transcription: &types.TranscriptionResult{Text: ""},
		Summary:       &types.SummaryResult{},
		GeneratedAt:   generated,
	}
	md := Markdown(doc)

	if diff := cmp.Diff([]string{headingSummary, headingTranscript}, Headings(md)); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(md, "**Duration**") {
		t.Error("zero duration should be omitted")
	}
	if strings.Count(md, "None") != 2 {
		t.Errorf("empty summary and transcript should read None:\n%s", md)
	}
	if items := ParseActionItems(md); len(items) != 0 {
		t.Errorf("items = %v", items)
	}
}

func TestMarkdownStrippedFields(t *testing.T) {
	doc := fullDocument()
	doc.Summary.KeyDecisions = nil
	doc.Summary.ActionItems = nil

	for _, h := range Headings(Markdown(doc)) {
		if h == headingDecisions || h == headingActionItems {
			t.Errorf("stripped section %q rendered", h)
		}
	}
}

func TestHTMLEscapesAndLayout(t *testing.T) {
	doc := fullDocument()
	doc.Summary.Summary = "<script>alert(1)</script>"

	html, err := HTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("summary must be escaped")
	}

	order := []string{"<h2>Summary</h2>", "<h2>Topics Discussed</h2>", "<h2>Key Decisions</h2>",
		"<h2>Action Items</h2>", "<h2>Participants</h2>", "<h2>Dialogue</h2>", "<h2>Transcript</h2>"}
	last := -1
	for _, h := range order {
		i := strings.Index(html, h)
		if i < 0 {
			t.Fatalf("missing %s", h)
		}
		if i < last {
			t.Errorf("%s out of order", h)
		}
		last = i
	}
	if !strings.Contains(html, "<td>Unassigned</td>") || !strings.Contains(html, "<td>Not specified</td>") {
		t.Error("action-item placeholders missing")
	}
	if !strings.Contains(html, "Duration: 62 seconds") {
		t.Error("duration missing")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"markdown", FormatMarkdown, true},
		{"md", FormatMarkdown, true},
		{"pdf", FormatPDF, true},
		{"docx", FormatDOCX, true},
		{"txt", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil {
			var appErr *types.Error
			if !errors.As(err, &appErr) || appErr.Kind != types.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	e := New(Options{}, zap.NewNop())
	f, err := e.Render(context.Background(), FormatMarkdown, fullDocument())
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "meeting-minutes_2025-03-14.md" {
		t.Errorf("Name = %q", f.Name)
	}
	if !strings.HasPrefix(f.ContentType, "text/markdown") {
		t.Errorf("ContentType = %q", f.ContentType)
	}
}

func TestRenderRejectsEmpty(t *testing.T) {
	e := New(Options{}, zap.NewNop())
	_, err := e.Render(context.Background(), FormatMarkdown, &Document{})
	var appErr *types.Error
	if !errors.As(err, &appErr) || appErr.Kind != types.KindValidation {
		t.Fatalf("err = %v", err)
	}
}

func TestRenderDOCX(t *testing.T) {
	e := New(Options{}, zap.NewNop())

	f, err := e.Render(context.Background(), FormatDOCX, fullDocument())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(f.Data, []byte("PK")) {
		t.Error("docx should be a zip archive")
	}
	if f.Name != "meeting-minutes_2025-03-14.docx" {
		t.Errorf("Name = %q", f.Name)
	}
	if f.ContentType != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Errorf("ContentType = %q", f.ContentType)
	}
}

func TestRenderPDF(t *testing.T) {
	chrome := ""
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			chrome = p
			break
		}
	}
	if chrome == "" {
		t.Skip("no chrome binary available")
	}

	e := New(Options{ChromePath: chrome, Timeout: 30 * time.Second}, zap.NewNop())
	f, err := e.Render(context.Background(), FormatPDF, fullDocument())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(f.Data, []byte("%PDF")) {
		t.Error("output is not a pdf")
	}
}
