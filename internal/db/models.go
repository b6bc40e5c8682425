package db

import (
	"database/sql"
	"time"
)

// Render job lifecycle states
const (
	JobPending = "pending"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// RenderJob represents one end-to-end advertisement generation run
type RenderJob struct {
	ID          int64
	Product     string // Product description supplied by the operator
	Tags        string // Comma-separated product tags
	Status      string
	Storyboard  sql.NullString // Markdown storyboard and script
	ImageURI    sql.NullString // First-frame image gs:// URI
	SceneURIs   sql.NullString // JSON array of scene clip gs:// URIs
	FinalURI    sql.NullString // Merged advertisement gs:// URI
	TagDocID    sql.NullString // Firestore ad_tags document ID
	BudgetStats sql.NullString // JSON: render budget metadata
	Error       sql.NullString
	StartedAt   sql.NullTime
	CompletedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
