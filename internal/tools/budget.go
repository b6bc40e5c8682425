package tools

import (
	"fmt"
	"sync"
	"time"
)

// JobRecord records a single generation operation
type JobRecord struct {
	Kind      string    `json:"kind"` // "image", "video", "merge", "tags"
	Detail    string    `json:"detail"`
	URI       string    `json:"uri,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RenderBudget bounds what a single agent session may spend on generation.
// Video generation is the expensive operation; the budget keeps a runaway
// agent from queueing Veo jobs indefinitely. Tools consult it before acting
// and report refusals in-band so the model can adjust its plan.
type RenderBudget struct {
	mu sync.Mutex

	maxVideoJobs   int
	maxImageJobs   int
	maxMergeJobs   int
	maxPollSeconds int

	// Runtime tracking
	videoJobs   int
	imageJobs   int
	mergeJobs   int
	pollSeconds int
	jobLog      []JobRecord
}

// NewRenderBudget creates a render budget with the specified limits
func NewRenderBudget(maxVideoJobs, maxImageJobs, maxMergeJobs, maxPollSeconds int) *RenderBudget {
	return &RenderBudget{
		maxVideoJobs:   maxVideoJobs,
		maxImageJobs:   maxImageJobs,
		maxMergeJobs:   maxMergeJobs,
		maxPollSeconds: maxPollSeconds,
		jobLog:         make([]JobRecord, 0),
	}
}

// CanStartVideo checks whether another Veo job fits in the budget
func (b *RenderBudget) CanStartVideo() (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.videoJobs >= b.maxVideoJobs {
		return false, fmt.Sprintf("reached maximum video generations (%d)", b.maxVideoJobs)
	}
	return true, ""
}

// CanStartImage checks whether another Imagen job fits in the budget
func (b *RenderBudget) CanStartImage() (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.imageJobs >= b.maxImageJobs {
		return false, fmt.Sprintf("reached maximum image generations (%d)", b.maxImageJobs)
	}
	return true, ""
}

// CanStartMerge checks whether another merge fits in the budget
func (b *RenderBudget) CanStartMerge() (bool, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mergeJobs >= b.maxMergeJobs {
		return false, fmt.Sprintf("reached maximum video merges (%d)", b.maxMergeJobs)
	}
	return true, ""
}

// RecordVideoJob records a completed or attempted Veo job
func (b *RenderBudget) RecordVideoJob(detail, uri string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.videoJobs++
	b.jobLog = append(b.jobLog, JobRecord{Kind: "video", Detail: detail, URI: uri, Timestamp: time.Now()})
}

// RecordImageJob records an Imagen job
func (b *RenderBudget) RecordImageJob(detail, uri string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.imageJobs++
	b.jobLog = append(b.jobLog, JobRecord{Kind: "image", Detail: detail, URI: uri, Timestamp: time.Now()})
}

// RecordMergeJob records a merge operation
func (b *RenderBudget) RecordMergeJob(detail, uri string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mergeJobs++
	b.jobLog = append(b.jobLog, JobRecord{Kind: "merge", Detail: detail, URI: uri, Timestamp: time.Now()})
}

// RecordTagDoc records a stored ad tag document. Tag storage is cheap and
// not limited; the record lets the pipeline recover the document ID.
func (b *RenderBudget) RecordTagDoc(videoURI, docID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobLog = append(b.jobLog, JobRecord{Kind: "tags", Detail: videoURI, URI: docID, Timestamp: time.Now()})
}

// ConsumePoll accounts for one poll interval. Returns false once the
// session's total polling allowance is exhausted.
func (b *RenderBudget) ConsumePoll(seconds int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pollSeconds+seconds > b.maxPollSeconds {
		return false
	}
	b.pollSeconds += seconds
	return true
}

// VideoJobs returns the number of video generations so far
func (b *RenderBudget) VideoJobs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.videoJobs
}

// ImageJobs returns the number of image generations so far
func (b *RenderBudget) ImageJobs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.imageJobs
}

// GetMetadata returns budget usage for persisting with the render job
func (b *RenderBudget) GetMetadata() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]interface{}{
		"video_jobs":   b.videoJobs,
		"image_jobs":   b.imageJobs,
		"merge_jobs":   b.mergeJobs,
		"poll_seconds": b.pollSeconds,
		"job_log":      b.jobLog,
	}
}
