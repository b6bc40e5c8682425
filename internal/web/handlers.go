package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/perbu/adsvideo/internal/db"
)

// handleIndex serves the dashboard with recent render jobs
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.db.ListRenderJobs("", 20)
	if err != nil {
		s.renderError(w, "Failed to load render jobs", err)
		return
	}

	counts, err := s.db.CountJobsByStatus()
	if err != nil {
		s.renderError(w, "Failed to count render jobs", err)
		return
	}

	summaries := make([]JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, toJobSummary(job))
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	data := PageData{
		Title:     "Render Jobs",
		ActiveNav: "jobs",
		Content: DashboardData{
			Jobs:       summaries,
			TotalCount: total,
			Running:    counts[db.JobRunning],
			Failed:     counts[db.JobFailed],
		},
		User: GetUser(r),
	}

	s.render(w, s.templates.index, data)
}

// handleJobView serves a single render job detail page
func (s *Server) handleJobView(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.renderError(w, "Invalid job ID", err)
		return
	}

	job, err := s.db.GetRenderJob(id)
	if err != nil {
		s.renderError(w, "Render job not found", err)
		return
	}

	data := PageData{
		Title:     "Job #" + idStr,
		ActiveNav: "jobs",
		Content: JobViewData{
			Job: toJobDetail(job),
		},
		User: GetUser(r),
	}

	s.render(w, s.templates.job, data)
}

// handleAdTags serves the Firestore ad tag listing
func (s *Server) handleAdTags(w http.ResponseWriter, r *http.Request) {
	content := AdTagsData{Configured: s.campaigns != nil}

	if s.campaigns != nil {
		docs, err := s.campaigns.ListDocuments(r.Context(), "ad_tags")
		if err != nil {
			s.renderError(w, "Failed to load ad tags", err)
			return
		}
		for _, doc := range docs {
			content.Tags = append(content.Tags, toAdTagRow(doc.ID, doc.Data))
		}
	}

	data := PageData{
		Title:     "Ad Tags",
		ActiveNav: "tags",
		Content:   content,
		User:      GetUser(r),
	}

	s.render(w, s.templates.tags, data)
}

// render executes a template and writes to the response
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// renderError renders an error page
func (s *Server) renderError(w http.ResponseWriter, message string, err error) {
	errMsg := message
	if err != nil {
		errMsg = message + ": " + err.Error()
	}

	data := PageData{
		Title:   "Error",
		Error:   errMsg,
		Content: DashboardData{},
	}

	w.WriteHeader(http.StatusInternalServerError)
	s.render(w, s.templates.index, data)
}

// toJobSummary converts a db.RenderJob to a JobSummary view model
func toJobSummary(job *db.RenderJob) JobSummary {
	preview := ""
	if job.Storyboard.Valid && job.Storyboard.String != "" {
		preview = job.Storyboard.String
		if idx := strings.Index(preview, "\n"); idx > 0 {
			preview = preview[:idx]
		}
		preview = strings.TrimPrefix(preview, "# ")
		preview = strings.TrimPrefix(preview, "## ")
		if len(preview) > 60 {
			preview = preview[:57] + "..."
		}
	}

	summary := JobSummary{
		ID:          job.ID,
		Product:     job.Product,
		Status:      job.Status,
		CreatedAt:   job.CreatedAt.Format("2006-01-02 15:04"),
		CompletedAt: "-",
		Preview:     preview,
	}
	if job.Tags != "" {
		summary.Tags = strings.Split(job.Tags, ",")
	}
	if job.FinalURI.Valid {
		summary.FinalURI = job.FinalURI.String
	}
	if job.CompletedAt.Valid {
		summary.CompletedAt = job.CompletedAt.Time.Format("2006-01-02 15:04")
	}
	return summary
}

// toJobDetail converts a db.RenderJob to a JobDetail view model
func toJobDetail(job *db.RenderJob) JobDetail {
	detail := JobDetail{
		ID:        job.ID,
		Product:   job.Product,
		Status:    job.Status,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04"),
	}
	if job.Tags != "" {
		detail.Tags = strings.Split(job.Tags, ",")
	}
	if job.ImageURI.Valid {
		detail.ImageURI = job.ImageURI.String
	}
	if job.FinalURI.Valid {
		detail.FinalURI = job.FinalURI.String
	}
	if job.TagDocID.Valid {
		detail.TagDocID = job.TagDocID.String
	}
	if job.Error.Valid {
		detail.Error = job.Error.String
	}
	if job.StartedAt.Valid {
		detail.StartedAt = job.StartedAt.Time.Format("2006-01-02 15:04")
	}
	if job.CompletedAt.Valid {
		detail.CompletedAt = job.CompletedAt.Time.Format("2006-01-02 15:04")
	}

	if job.SceneURIs.Valid && job.SceneURIs.String != "" {
		var uris []string
		if err := json.Unmarshal([]byte(job.SceneURIs.String), &uris); err == nil {
			detail.SceneURIs = uris
		}
	}

	// Budget metadata recorded at completion
	if job.BudgetStats.Valid && job.BudgetStats.String != "" {
		var stats struct {
			VideoJobs   int `json:"video_jobs"`
			ImageJobs   int `json:"image_jobs"`
			PollSeconds int `json:"poll_seconds"`
		}
		if err := json.Unmarshal([]byte(job.BudgetStats.String), &stats); err == nil {
			detail.VideoJobs = stats.VideoJobs
			detail.ImageJobs = stats.ImageJobs
			detail.PollSeconds = stats.PollSeconds
		}
	}

	if job.Storyboard.Valid && job.Storyboard.String != "" {
		detail.Storyboard = job.Storyboard.String
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(job.Storyboard.String), &buf); err == nil {
			detail.StoryboardHTML = template.HTML(buf.String())
		}
	}

	return detail
}

// toAdTagRow converts a Firestore document to an AdTagRow view model
func toAdTagRow(id string, data map[string]any) AdTagRow {
	row := AdTagRow{
		ID:            id,
		VideoURI:      stringField(data, "videoUri"),
		ContentTags:   stringSlice(data, "contentTags"),
		EmotionalTags: stringSlice(data, "emotionalTags"),
		StylisticTags: stringSlice(data, "stylisticTags"),
	}
	if t, ok := data["createdAt"].(time.Time); ok {
		row.CreatedAt = t.Format("2006-01-02 15:04")
	}
	return row
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func stringSlice(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
