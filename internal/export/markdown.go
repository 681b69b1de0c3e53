package export

import (
	"fmt"
	"strings"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Section headings, in rendering order
const (
	headingTitle        = "Meeting Minutes"
	headingSummary      = "Summary"
	headingTopics       = "Topics Discussed"
	headingDecisions    = "Key Decisions"
	headingActionItems  = "Action Items"
	headingParticipants = "Participants"
	headingDialogue     = "Dialogue"
	headingTranscript   = "Transcript"
)

const (
	unassigned   = "Unassigned"
	notSpecified = "Not specified"
	none         = "None"
	timeLayout   = "2006-01-02 15:04:05"
)

// Markdown renders the document. Optional sections are omitted when empty;
// summary and transcript are always present.
func Markdown(doc *Document) string {
	var b strings.Builder
	s := doc.Summary

	fmt.Fprintf(&b, "# %s\n\n", headingTitle)
	fmt.Fprintf(&b, "**Generated**: %s\n\n", doc.GeneratedAt.Format(timeLayout))
	if doc.Transcription != nil && doc.Transcription.Duration > 0 {
		fmt.Fprintf(&b, "**Duration**: %d seconds\n\n", doc.DurationSeconds())
	}

	fmt.Fprintf(&b, "## %s\n\n%s\n\n", headingSummary, orNone(summaryText(s)))

	if s != nil {
		writeList(&b, headingTopics, s.TopicsDiscussed)
		writeList(&b, headingDecisions, s.Decisions())

		if items := s.Actions(); len(items) > 0 {
			fmt.Fprintf(&b, "## %s\n\n", headingActionItems)
			b.WriteString("| Assignee | Task | Deadline |\n")
			b.WriteString("|----------|------|----------|\n")
			for _, item := range items {
				fmt.Fprintf(&b, "| %s | %s | %s |\n",
					encodeCell(item.Assignee, unassigned),
					encodeCell(item.Task, ""),
					encodeCell(item.Deadline, notSpecified),
				)
			}
			b.WriteString("\n")
		}

		if len(s.Participants) > 0 {
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", headingParticipants, strings.Join(s.Participants, ", "))
		}

		if len(s.Dialogue) > 0 {
			fmt.Fprintf(&b, "## %s\n\n", headingDialogue)
			for _, turn := range s.Dialogue {
				fmt.Fprintf(&b, "**%s**: %s\n\n", turn.Speaker, turn.Content)
			}
		}
	}

	fmt.Fprintf(&b, "## %s\n\n%s\n", headingTranscript, orNone(transcriptText(doc.Transcription)))
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func summaryText(s *types.SummaryResult) string {
	if s == nil {
		return ""
	}
	return s.Summary
}

func transcriptText(t *types.TranscriptionResult) string {
	if t == nil {
		return ""
	}
	return t.Text
}

func orNone(s string) string {
	return defaultTo(s, none)
}

func defaultTo(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// cellBreak stands for a newline inside a table cell
const cellBreak = "<br>"

// encodeCell keeps a value inside one table cell so that decodeCell can
// restore it exactly. An empty value becomes the placeholder; a value that
// happens to equal the placeholder is escaped.
func encodeCell(s, placeholder string) string {
	if s == "" {
		return placeholder
	}

	var b strings.Builder
	if placeholder != "" && s == placeholder {
		b.WriteByte('\\')
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' || s[i] == '|':
			b.WriteByte('\\')
			b.WriteByte(s[i])
		case s[i] == '\n':
			b.WriteString(cellBreak)
		case strings.HasPrefix(s[i:], cellBreak):
			b.WriteByte('\\')
			b.WriteByte('<')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
