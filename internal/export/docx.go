package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

const (
	docxFont     = "Calibri"
	docxBodySize = 11
	docxH1Size   = 18
	docxH2Size   = 14
	docxColor    = "000000"
)

// docx builds a Word document with the Markdown layout, in memory
func (e *Exporter) docx(doc *Document) (*File, error) {
	d, err := godocx.NewDocument()
	if err != nil {
		return nil, types.InternalError("failed to create docx", err)
	}

	heading(d.AddParagraph(""), headingTitle, docxH1Size)
	meta := "Generated: " + doc.GeneratedAt.Format(timeLayout)
	if doc.Transcription != nil && doc.Transcription.Duration > 0 {
		meta += fmt.Sprintf(" | Duration: %d seconds", doc.DurationSeconds())
	}
	body(d.AddParagraph(""), meta)

	s := doc.Summary
	heading(d.AddParagraph(""), headingSummary, docxH2Size)
	body(d.AddParagraph(""), orNone(summaryText(s)))

	if s != nil {
		bullets(d, headingTopics, s.TopicsDiscussed)
		bullets(d, headingDecisions, s.Decisions())

		if items := s.Actions(); len(items) > 0 {
			heading(d.AddParagraph(""), headingActionItems, docxH2Size)
			for _, item := range items {
				p := d.AddParagraph("")
				p.AddText(defaultTo(item.Assignee, unassigned)+": ").Font(docxFont).Size(docxBodySize).Color(docxColor).Bold(true)
				p.AddText(item.Task).Font(docxFont).Size(docxBodySize).Color(docxColor)
				p.AddText(" (deadline: " + defaultTo(item.Deadline, notSpecified) + ")").Font(docxFont).Size(docxBodySize).Color(docxColor)
			}
		}

		if len(s.Participants) > 0 {
			heading(d.AddParagraph(""), headingParticipants, docxH2Size)
			body(d.AddParagraph(""), strings.Join(s.Participants, ", "))
		}

		if len(s.Dialogue) > 0 {
			heading(d.AddParagraph(""), headingDialogue, docxH2Size)
			for _, turn := range s.Dialogue {
				p := d.AddParagraph("")
				p.AddText(turn.Speaker+": ").Font(docxFont).Size(docxBodySize).Color(docxColor).Bold(true)
				p.AddText(turn.Content).Font(docxFont).Size(docxBodySize).Color(docxColor)
			}
		}
	}

	heading(d.AddParagraph(""), headingTranscript, docxH2Size)
	for _, para := range strings.Split(orNone(transcriptText(doc.Transcription)), "\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		body(d.AddParagraph(""), para)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, types.InternalError("failed to write docx", err)
	}

	return &File{
		Name:        fileName(doc.GeneratedAt, "docx"),
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:        buf.Bytes(),
	}, nil
}

func heading(p *docx.Paragraph, text string, size uint64) {
	p.AddText(text).Font(docxFont).Size(size).Color(docxColor).Bold(true)
}

func body(p *docx.Paragraph, text string) {
	p.AddText(text).Font(docxFont).Size(docxBodySize).Color(docxColor)
}

func bullets(d *docx.RootDoc, title string, items []string) {
	if len(items) == 0 {
		return
	}
	heading(d.AddParagraph(""), title, docxH2Size)
	for _, item := range items {
		body(d.AddParagraph(""), "• "+item)
	}
}
