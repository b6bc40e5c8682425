package db

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "adsvideo-db-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	db, err := Open(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestOpen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "adsvideo-db-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	// Verify database file was created
	dbPath := filepath.Join(tmpDir, "adsvideo.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	// Verify migrations ran by checking tables exist
	tables := []string{"goose_db_version", "render_jobs"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q does not exist: %v", table, err)
		}
	}
}

func TestRenderJobLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	job, err := db.CreateRenderJob("A reusable water bottle", "eco-friendly,outdoors")
	if err != nil {
		t.Fatalf("CreateRenderJob() error = %v", err)
	}
	if job.Status != JobPending {
		t.Errorf("new job status = %q, want %q", job.Status, JobPending)
	}
	if job.Product != "A reusable water bottle" {
		t.Errorf("job product = %q", job.Product)
	}

	if err := db.MarkJobRunning(job.ID); err != nil {
		t.Fatalf("MarkJobRunning() error = %v", err)
	}
	job, err = db.GetRenderJob(job.ID)
	if err != nil {
		t.Fatalf("GetRenderJob() error = %v", err)
	}
	if job.Status != JobRunning {
		t.Errorf("job status = %q, want %q", job.Status, JobRunning)
	}
	if !job.StartedAt.Valid {
		t.Error("StartedAt should be set after MarkJobRunning")
	}

	err = db.MarkJobDone(job.ID,
		"# Storyboard\nscene one...",
		"gs://b/images/frame.png",
		`["gs://b/videos/s1.mp4","gs://b/videos/s2.mp4"]`,
		"gs://b/videos/final_x.mp4",
		"tagdoc123",
		`{"video_jobs":2}`,
	)
	if err != nil {
		t.Fatalf("MarkJobDone() error = %v", err)
	}
	job, err = db.GetRenderJob(job.ID)
	if err != nil {
		t.Fatalf("GetRenderJob() error = %v", err)
	}
	if job.Status != JobDone {
		t.Errorf("job status = %q, want %q", job.Status, JobDone)
	}
	if !job.FinalURI.Valid || job.FinalURI.String != "gs://b/videos/final_x.mp4" {
		t.Errorf("FinalURI = %+v", job.FinalURI)
	}
	if !job.CompletedAt.Valid {
		t.Error("CompletedAt should be set after MarkJobDone")
	}
}

func TestMarkJobFailed(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	job, err := db.CreateRenderJob("A lamp", "")
	if err != nil {
		t.Fatalf("CreateRenderJob() error = %v", err)
	}

	if err := db.MarkJobFailed(job.ID, "veo operation failed"); err != nil {
		t.Fatalf("MarkJobFailed() error = %v", err)
	}

	job, err = db.GetRenderJob(job.ID)
	if err != nil {
		t.Fatalf("GetRenderJob() error = %v", err)
	}
	if job.Status != JobFailed {
		t.Errorf("job status = %q, want %q", job.Status, JobFailed)
	}
	if !job.Error.Valid || job.Error.String != "veo operation failed" {
		t.Errorf("job error = %+v", job.Error)
	}
}

func TestListRenderJobs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		if _, err := db.CreateRenderJob("product", ""); err != nil {
			t.Fatalf("CreateRenderJob() error = %v", err)
		}
	}
	job, _ := db.CreateRenderJob("failing product", "")
	if err := db.MarkJobFailed(job.ID, "boom"); err != nil {
		t.Fatalf("MarkJobFailed() error = %v", err)
	}

	all, err := db.ListRenderJobs("", 0)
	if err != nil {
		t.Fatalf("ListRenderJobs() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListRenderJobs() returned %d jobs, want 4", len(all))
	}
	// Newest first
	if all[0].ID != job.ID {
		t.Errorf("first job ID = %d, want %d", all[0].ID, job.ID)
	}

	failed, err := db.ListRenderJobs(JobFailed, 0)
	if err != nil {
		t.Fatalf("ListRenderJobs(failed) error = %v", err)
	}
	if len(failed) != 1 {
		t.Errorf("ListRenderJobs(failed) returned %d jobs, want 1", len(failed))
	}

	limited, err := db.ListRenderJobs("", 2)
	if err != nil {
		t.Fatalf("ListRenderJobs(limit) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListRenderJobs(limit 2) returned %d jobs", len(limited))
	}

	counts, err := db.CountJobsByStatus()
	if err != nil {
		t.Fatalf("CountJobsByStatus() error = %v", err)
	}
	if counts[JobPending] != 3 || counts[JobFailed] != 1 {
		t.Errorf("CountJobsByStatus() = %v", counts)
	}
}
