package email

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/perbu/adsvideo/internal/db"
)

func TestComposeNoticeDone(t *testing.T) {
	job := &db.RenderJob{
		ID:          7,
		Product:     "A solar-powered lantern",
		Tags:        "eco-friendly,outdoors",
		Status:      db.JobDone,
		Storyboard:  sql.NullString{String: "# Storyboard\n\nScene one.", Valid: true},
		ImageURI:    sql.NullString{String: "gs://b/images/frame.png", Valid: true},
		FinalURI:    sql.NullString{String: "gs://b/videos/final_x.mp4", Valid: true},
		CompletedAt: sql.NullTime{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), Valid: true},
	}

	msg, err := ComposeNotice("ops@example.com", "[adsvideo]", job, []string{"gs://b/videos/s1.mp4", "gs://b/videos/s2.mp4"})
	if err != nil {
		t.Fatalf("ComposeNotice() error = %v", err)
	}

	if msg.To != "ops@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "[adsvideo] Advertisement ready") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLContent, "gs://b/videos/final_x.mp4") {
		t.Error("HTML should contain the final video URI")
	}
	if !strings.Contains(msg.HTMLContent, "<h1>Storyboard</h1>") {
		t.Error("HTML should contain the rendered storyboard markdown")
	}
	if !strings.Contains(msg.TextContent, "gs://b/videos/s2.mp4") {
		t.Error("text should list the scene clips")
	}
	if !strings.Contains(msg.TextContent, "eco-friendly, outdoors") {
		t.Error("text should list the tags")
	}
}

func TestComposeNoticeFailed(t *testing.T) {
	job := &db.RenderJob{
		ID:      9,
		Product: "A lamp",
		Status:  db.JobFailed,
		Error:   sql.NullString{String: "veo operation timed out", Valid: true},
	}

	msg, err := ComposeNotice("ops@example.com", "", job, nil)
	if err != nil {
		t.Fatalf("ComposeNotice() error = %v", err)
	}

	if !strings.Contains(msg.Subject, "failed") {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLContent, "veo operation timed out") {
		t.Error("HTML should contain the error message")
	}
	if strings.Contains(msg.HTMLContent, "Final video") {
		t.Error("HTML should not advertise a final video on failure")
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("**bold** text")
	if err != nil {
		t.Fatalf("MarkdownToHTML() error = %v", err)
	}
	if !strings.Contains(string(html), "<strong>bold</strong>") {
		t.Errorf("html = %q", html)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a very long product description", 10); got != "a very lon..." {
		t.Errorf("truncate = %q", got)
	}
}
