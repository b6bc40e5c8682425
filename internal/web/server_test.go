package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/perbu/adsvideo/internal/config"
	"github.com/perbu/adsvideo/internal/db"
)

func setupTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "adsvideo-web-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	database, err := db.Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.Web.DevMode = true

	srv, err := NewServer(database, nil, cfg, "localhost", 0)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	return srv, database
}

func TestHandleIndexEmpty(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "No render jobs yet") {
		t.Error("empty dashboard should show the empty state")
	}
}

func TestHandleIndexWithJobs(t *testing.T) {
	srv, database := setupTestServer(t)

	job, err := database.CreateRenderJob("A solar-powered lantern", "eco-friendly,outdoors")
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if err := database.MarkJobRunning(job.ID); err != nil {
		t.Fatalf("failed to mark running: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "A solar-powered lantern") {
		t.Error("dashboard should list the job product")
	}
	if !strings.Contains(body, "1 running") {
		t.Error("dashboard should count running jobs")
	}
	if !strings.Contains(body, "dev@localhost") {
		t.Error("dashboard should show the dev mode user")
	}
}

func TestHandleJobView(t *testing.T) {
	srv, database := setupTestServer(t)

	job, err := database.CreateRenderJob("A lamp", "")
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	sceneURIs := `["gs://b/videos/s1.mp4","gs://b/videos/s2.mp4"]`
	budget := `{"video_jobs":2,"image_jobs":1,"poll_seconds":120}`
	err = database.MarkJobDone(job.ID, "# Storyboard\n\nScene one.",
		"gs://b/images/frame.png", sceneURIs, "gs://b/videos/final_x.mp4", "doc123", budget)
	if err != nil {
		t.Fatalf("failed to mark done: %v", err)
	}

	req := httptest.NewRequest("GET", fmt.Sprintf("/jobs/%d", job.ID), nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "gs://b/videos/final_x.mp4") {
		t.Error("job page should show the final video URI")
	}
	if !strings.Contains(body, "gs://b/videos/s2.mp4") {
		t.Error("job page should list the scene clips")
	}
	if !strings.Contains(body, "<h1>Storyboard</h1>") {
		t.Error("job page should render the storyboard markdown")
	}
	if !strings.Contains(body, "2 video generations") {
		t.Error("job page should show render usage")
	}
}

func TestHandleJobViewInvalidID(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/jobs/nope", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestHandleAdTagsUnconfigured(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/tags", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Firestore is not configured") {
		t.Error("tags page should explain missing Firestore config")
	}
}

func TestAuthMiddlewareHeader(t *testing.T) {
	srv, _ := setupTestServer(t)
	srv.auth.devMode = false
	srv.auth.headerName = "oidc-email"

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("oidc-email", "ops@example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "ops@example.com") {
		t.Error("authenticated user should appear in the nav")
	}
}
