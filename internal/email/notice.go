package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/perbu/adsvideo/internal/db"
)

// NoticeData holds all data needed to render a render-job completion notice
type NoticeData struct {
	SubjectPrefix  string
	JobID          int64
	Product        string
	Tags           []string
	Status         string
	StoryboardHTML template.HTML
	Storyboard     string
	FinalURI       string
	SceneURIs      []string
	ImageURI       string
	Error          string
	CompletedAt    string
}

// Subject generates the email subject line
func (n *NoticeData) Subject() string {
	prefix := n.SubjectPrefix
	if prefix != "" {
		prefix += " "
	}
	if n.Status == db.JobDone {
		return fmt.Sprintf("%sAdvertisement ready: %s", prefix, truncate(n.Product, 60))
	}
	return fmt.Sprintf("%sRender job %d failed: %s", prefix, n.JobID, truncate(n.Product, 60))
}

var noticeHTMLTemplate = template.Must(template.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Render Notice</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 700px;
            margin: 0 auto;
            padding: 20px;
        }
        h1 {
            color: #2c3e50;
            border-bottom: 2px solid #3498db;
            padding-bottom: 10px;
        }
        .meta {
            color: #666;
            font-size: 0.9em;
            margin-bottom: 15px;
        }
        .assets {
            background: #f8f9fa;
            border-left: 4px solid #3498db;
            padding: 15px 20px;
            margin: 20px 0;
        }
        .assets code {
            font-size: 0.9em;
        }
        .error {
            background: #fdf2f2;
            border-left: 4px solid #e74c3c;
            padding: 15px 20px;
            margin: 20px 0;
        }
        .storyboard {
            margin-top: 20px;
        }
        .storyboard h1, .storyboard h2, .storyboard h3 {
            margin-top: 15px;
            margin-bottom: 10px;
            border: none;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #ddd;
            color: #666;
            font-size: 0.85em;
        }
    </style>
</head>
<body>
    <h1>Render Job #{{.JobID}}</h1>
    <div class="meta">
        Product: {{.Product}}<br>
        {{if .Tags}}Tags: {{range $i, $t := .Tags}}{{if $i}}, {{end}}{{$t}}{{end}}<br>{{end}}
        Status: {{.Status}}<br>
        {{if .CompletedAt}}Completed: {{.CompletedAt}}{{end}}
    </div>
    {{if .Error}}
    <div class="error">{{.Error}}</div>
    {{end}}
    {{if .FinalURI}}
    <div class="assets">
        <strong>Final video:</strong> <code>{{.FinalURI}}</code><br>
        {{if .ImageURI}}First frame: <code>{{.ImageURI}}</code><br>{{end}}
        {{range .SceneURIs}}Scene clip: <code>{{.}}</code><br>{{end}}
    </div>
    {{end}}
    {{if .StoryboardHTML}}
    <div class="storyboard">
        {{.StoryboardHTML}}
    </div>
    {{end}}
    <div class="footer">
        <p>This email was sent by Adsvideo - Advertising Creative Agent</p>
    </div>
</body>
</html>`))

var noticeTextTemplate = template.Must(template.New("text").Parse(`RENDER JOB #{{.JobID}}
=================

Product: {{.Product}}
{{if .Tags}}Tags: {{range $i, $t := .Tags}}{{if $i}}, {{end}}{{$t}}{{end}}
{{end}}Status: {{.Status}}
{{if .CompletedAt}}Completed: {{.CompletedAt}}
{{end}}{{if .Error}}
Error: {{.Error}}
{{end}}{{if .FinalURI}}
Final video: {{.FinalURI}}
{{if .ImageURI}}First frame: {{.ImageURI}}
{{end}}{{range .SceneURIs}}Scene clip: {{.}}
{{end}}{{end}}{{if .Storyboard}}
{{.Storyboard}}
{{end}}
This email was sent by Adsvideo - Advertising Creative Agent
`))

// ComposeNotice builds a completion notice email for a finished render job
func ComposeNotice(to, subjectPrefix string, job *db.RenderJob, sceneURIs []string) (*Email, error) {
	data := &NoticeData{
		SubjectPrefix: subjectPrefix,
		JobID:         job.ID,
		Product:       job.Product,
		Status:        job.Status,
		SceneURIs:     sceneURIs,
	}
	if job.Tags != "" {
		data.Tags = strings.Split(job.Tags, ",")
	}
	if job.Storyboard.Valid {
		data.Storyboard = job.Storyboard.String
		html, err := MarkdownToHTML(job.Storyboard.String)
		if err == nil {
			data.StoryboardHTML = html
		}
	}
	if job.FinalURI.Valid {
		data.FinalURI = job.FinalURI.String
	}
	if job.ImageURI.Valid {
		data.ImageURI = job.ImageURI.String
	}
	if job.Error.Valid {
		data.Error = job.Error.String
	}
	if job.CompletedAt.Valid {
		data.CompletedAt = job.CompletedAt.Time.Format("2006-01-02 15:04")
	}

	var htmlBuf bytes.Buffer
	if err := noticeHTMLTemplate.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	var textBuf bytes.Buffer
	if err := noticeTextTemplate.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render text: %w", err)
	}

	return &Email{
		To:          to,
		Subject:     data.Subject(),
		HTMLContent: htmlBuf.String(),
		TextContent: textBuf.String(),
	}, nil
}

// MarkdownToHTML converts markdown text to HTML
func MarkdownToHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
