package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var htmlTemplate = template.Must(template.New("minutes").Funcs(template.FuncMap{
	"join":      strings.Join,
	"orDefault": defaultTo,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, "Noto Sans", sans-serif; color: #333; padding: 20px; }
h1 { font-size: 24px; border-bottom: 2px solid #333; padding-bottom: 10px; }
h2 { font-size: 18px; margin-top: 20px; color: #1a1a1a; }
p, li { line-height: 1.6; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
thead tr { background: #f5f5f5; }
.meta { color: #666; }
.transcript { white-space: pre-wrap; background: #f9f9f9; padding: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated: {{.Generated}}{{if .Duration}} | Duration: {{.Duration}} seconds{{end}}</p>

<h2>Summary</h2>
<p>{{orDefault .Summary "None"}}</p>
{{with .Topics}}
<h2>Topics Discussed</h2>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
{{end}}{{with .Decisions}}
<h2>Key Decisions</h2>
<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
{{end}}{{with .ActionItems}}
<h2>Action Items</h2>
<table>
<thead><tr><th>Assignee</th><th>Task</th><th>Deadline</th></tr></thead>
<tbody>{{range .}}
<tr><td>{{orDefault .Assignee "Unassigned"}}</td><td>{{.Task}}</td><td>{{orDefault .Deadline "Not specified"}}</td></tr>{{end}}
</tbody>
</table>
{{end}}{{with .Participants}}
<h2>Participants</h2>
<p>{{join . ", "}}</p>
{{end}}{{with .Dialogue}}
<h2>Dialogue</h2>
{{range .}}<p><strong>{{.Speaker}}</strong>: {{.Content}}</p>
{{end}}{{end}}
<h2>Transcript</h2>
<div class="transcript">{{orDefault .Transcript "None"}}</div>
</body>
</html>
`))

type htmlView struct {
	Title        string
	Generated    string
	Duration     int
	Summary      string
	Topics       []string
	Decisions    []string
	ActionItems  any
	Participants []string
	Dialogue     any
	Transcript   string
}

// HTML renders the same layout as Markdown, escaped for the browser
func HTML(doc *Document) (string, error) {
	view := htmlView{
		Title:      headingTitle,
		Generated:  doc.GeneratedAt.Format(timeLayout),
		Duration:   doc.DurationSeconds(),
		Transcript: transcriptText(doc.Transcription),
	}
	if s := doc.Summary; s != nil {
		view.Summary = s.Summary
		view.Topics = s.TopicsDiscussed
		view.Decisions = s.Decisions()
		view.Participants = s.Participants
		if items := s.Actions(); len(items) > 0 {
			view.ActionItems = items
		}
		if len(s.Dialogue) > 0 {
			view.Dialogue = s.Dialogue
		}
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}
