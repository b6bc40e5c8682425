package tools

import (
	"testing"
)

func TestRenderBudgetLimits(t *testing.T) {
	b := NewRenderBudget(2, 1, 1, 60)

	// Video jobs
	for i := 0; i < 2; i++ {
		ok, _ := b.CanStartVideo()
		if !ok {
			t.Fatalf("video job %d should be allowed", i+1)
		}
		b.RecordVideoJob("scene", "gs://b/videos/x.mp4")
	}
	ok, msg := b.CanStartVideo()
	if ok {
		t.Error("third video job should be denied")
	}
	if msg == "" {
		t.Error("denial should carry a reason")
	}

	// Image jobs
	ok, _ = b.CanStartImage()
	if !ok {
		t.Fatal("first image job should be allowed")
	}
	b.RecordImageJob("frame", "gs://b/images/x.png")
	if ok, _ := b.CanStartImage(); ok {
		t.Error("second image job should be denied")
	}

	// Merge jobs
	ok, _ = b.CanStartMerge()
	if !ok {
		t.Fatal("first merge should be allowed")
	}
	b.RecordMergeJob("a + b", "gs://b/videos/final.mp4")
	if ok, _ := b.CanStartMerge(); ok {
		t.Error("second merge should be denied")
	}
}

func TestRenderBudgetPolling(t *testing.T) {
	b := NewRenderBudget(1, 1, 1, 30)

	if !b.ConsumePoll(15) {
		t.Error("first poll should fit")
	}
	if !b.ConsumePoll(15) {
		t.Error("second poll should fit")
	}
	if b.ConsumePoll(15) {
		t.Error("third poll should exceed the allowance")
	}
}

func TestRenderBudgetMetadata(t *testing.T) {
	b := NewRenderBudget(5, 5, 5, 600)
	b.RecordImageJob("first frame", "gs://b/images/a.png")
	b.RecordVideoJob("scene one", "gs://b/videos/a.mp4")
	b.RecordVideoJob("scene two", "gs://b/videos/b.mp4")
	b.RecordTagDoc("gs://b/videos/final.mp4", "doc42")
	b.ConsumePoll(15)

	meta := b.GetMetadata()
	if meta["video_jobs"] != 2 {
		t.Errorf("video_jobs = %v, want 2", meta["video_jobs"])
	}
	if meta["image_jobs"] != 1 {
		t.Errorf("image_jobs = %v, want 1", meta["image_jobs"])
	}
	if meta["poll_seconds"] != 15 {
		t.Errorf("poll_seconds = %v, want 15", meta["poll_seconds"])
	}
	log, ok := meta["job_log"].([]JobRecord)
	if !ok {
		t.Fatalf("job_log has unexpected type %T", meta["job_log"])
	}
	if len(log) != 4 {
		t.Errorf("job_log has %d entries, want 4", len(log))
	}
	last := log[len(log)-1]
	if last.Kind != "tags" || last.URI != "doc42" {
		t.Errorf("tag record = %+v, want kind tags with the document ID", last)
	}

	if b.VideoJobs() != 2 {
		t.Errorf("VideoJobs() = %d, want 2", b.VideoJobs())
	}
	if b.ImageJobs() != 1 {
		t.Errorf("ImageJobs() = %d, want 1", b.ImageJobs())
	}
}
