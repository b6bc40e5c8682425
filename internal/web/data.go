package web

import "html/template"

// PageData is the common data structure for all pages
type PageData struct {
	Title     string
	ActiveNav string // "jobs", "tags", ""
	Content   any
	Error     string
	User      *AuthUser
}

// JobSummary is a lightweight view model for render job listings
type JobSummary struct {
	ID          int64
	Product     string
	Tags        []string
	Status      string
	FinalURI    string
	CreatedAt   string // formatted date
	CompletedAt string // formatted date or "-"
	Preview     string // first line of storyboard, truncated
}

// JobDetail is a full view model for a single render job
type JobDetail struct {
	ID             int64
	Product        string
	Tags           []string
	Status         string
	ImageURI       string
	SceneURIs      []string
	FinalURI       string
	TagDocID       string
	Error          string
	StartedAt      string
	CompletedAt    string
	CreatedAt      string
	VideoJobs      int
	ImageJobs      int
	PollSeconds    int
	Storyboard     string
	StoryboardHTML template.HTML
}

// DashboardData is the view model for the dashboard/index page
type DashboardData struct {
	Jobs       []JobSummary
	TotalCount int
	Running    int
	Failed     int
}

// JobViewData is the view model for a single job detail page
type JobViewData struct {
	Job JobDetail
}

// AdTagRow is a view model for Firestore ad tag listings
type AdTagRow struct {
	ID            string
	VideoURI      string
	ContentTags   []string
	EmotionalTags []string
	StylisticTags []string
	CreatedAt     string
}

// AdTagsData is the view model for the ad tags page
type AdTagsData struct {
	Tags       []AdTagRow
	Configured bool
}
