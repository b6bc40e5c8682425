package cli

import "github.com/alecthomas/kong"

// CLI is the root command structure for kong
type CLI struct {
	Config  string           `short:"c" help:"Config file path" type:"path"`
	DataDir string           `short:"d" name:"data-dir" help:"Data directory" type:"path"`
	Verbose bool             `short:"v" help:"Verbose output"`
	Quiet   bool             `short:"q" help:"Minimal output"`
	Debug   bool             `help:"Enable debug logging"`
	Version kong.VersionFlag `short:"V" help:"Show version"`

	Serve       ServeCmd       `cmd:"" help:"Run the creative agent under the ADK launcher"`
	Generate    GenerateCmd    `cmd:"" help:"Generate an advertisement video end to end"`
	Job         JobCmd         `cmd:"" help:"Inspect render jobs"`
	Campaign    CampaignCmd    `cmd:"" help:"Manage campaign documents in Firestore"`
	Asset       AssetCmd       `cmd:"" help:"Browse generated assets in Cloud Storage"`
	Dashboard   DashboardCmd   `cmd:"" help:"Start the render dashboard web server"`
	ShowPrompts ShowPromptsCmd `cmd:"" name:"show-prompts" help:"Show agent instructions"`
}

// ServeCmd runs the interactive agent through the ADK launcher (console or web UI)
type ServeCmd struct {
	Pipeline bool     `help:"Serve the full storyboard-to-video pipeline instead of the production agent"`
	Args     []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the ADK launcher (e.g. 'web', 'console')"`
}

// GenerateCmd runs a one-shot render job
type GenerateCmd struct {
	Product string   `arg:"" help:"Product description to advertise"`
	Tags    []string `short:"t" help:"Product tags for the storyboard"`
	Notify  bool     `help:"Send a completion email when done"`
	DryRun  bool     `help:"With --notify, compose the completion email without sending it"`
}

// JobCmd is the parent command for render job inspection
type JobCmd struct {
	List JobListCmd `cmd:"" help:"List render jobs"`
	Show JobShowCmd `cmd:"" help:"Show a render job"`
}

// JobListCmd lists render jobs
type JobListCmd struct {
	Status string `help:"Filter by status" enum:",pending,running,done,failed" default:""`
	Limit  int    `short:"n" help:"Maximum jobs to show" default:"20"`
	Format string `help:"Output format" enum:"table,json" default:"table"`
}

// JobShowCmd shows a single render job
type JobShowCmd struct {
	ID int64 `arg:"" help:"Render job ID"`
}

// CampaignCmd is the parent command for campaign data management
type CampaignCmd struct {
	List CampaignListCmd `cmd:"" help:"List documents in a collection"`
	Get  CampaignGetCmd  `cmd:"" help:"Read a document"`
	Put  CampaignPutCmd  `cmd:"" help:"Store a document"`
}

// CampaignListCmd lists documents in a Firestore collection
type CampaignListCmd struct {
	Collection string `arg:"" optional:"" help:"Collection name" default:"ad_tags"`
}

// CampaignGetCmd reads a single document
type CampaignGetCmd struct {
	Collection string `arg:"" help:"Collection name"`
	ID         string `arg:"" help:"Document ID"`
}

// CampaignPutCmd stores a document from JSON
type CampaignPutCmd struct {
	Collection string `arg:"" help:"Collection name"`
	Data       string `arg:"" help:"Document data as JSON"`
	ID         string `help:"Document ID (generated when omitted)"`
}

// AssetCmd is the parent command for asset browsing
type AssetCmd struct {
	Ls    AssetLsCmd    `cmd:"" help:"List assets in the bucket"`
	Fetch AssetFetchCmd `cmd:"" help:"Download an asset"`
}

// AssetLsCmd lists objects in the asset bucket
type AssetLsCmd struct {
	Prefix string `arg:"" optional:"" help:"Object prefix (e.g. videos/)"`
}

// AssetFetchCmd downloads an asset to a local file
type AssetFetchCmd struct {
	URI  string `arg:"" help:"Asset gs:// URI"`
	Dest string `arg:"" optional:"" help:"Destination path (defaults to the object basename)"`
}

// DashboardCmd starts the web dashboard
type DashboardCmd struct {
	Port int    `short:"p" help:"Port to listen on" default:"8080"`
	Host string `help:"Host to bind to" default:"localhost"`
}

// ShowPromptsCmd displays the agent instructions
type ShowPromptsCmd struct {
	Defaults bool `help:"Show default instructions even if custom ones are configured"`
}
