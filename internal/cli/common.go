package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perbu/adsvideo/internal/campaign"
	"github.com/perbu/adsvideo/internal/config"
	"github.com/perbu/adsvideo/internal/db"
	"github.com/perbu/adsvideo/internal/gcs"
)

// Context holds common dependencies for CLI commands
type Context struct {
	DB      *db.DB
	Config  *config.Config
	Verbose bool
	Quiet   bool
}

// openAssets connects to the configured asset bucket
func (c *Context) openAssets(ctx context.Context) (*gcs.Store, error) {
	return gcs.NewStore(ctx, c.Config.GetBucket())
}

// openCampaigns connects to the configured Firestore database
func (c *Context) openCampaigns(ctx context.Context) (*campaign.Store, error) {
	project := c.Config.GetProject()
	if project == "" {
		return nil, fmt.Errorf("Firestore requires a project; set GOOGLE_CLOUD_PROJECT or cloud.project in config")
	}
	return campaign.NewStore(ctx, project, c.Config.GetDatabase())
}

// openCampaignsOptional connects to Firestore if it is reachable, returning
// nil when it is not. Callers that can run without campaign data use this so
// a missing Firestore setup degrades instead of failing the command.
func (c *Context) openCampaignsOptional(ctx context.Context) *campaign.Store {
	campaigns, err := c.openCampaigns(ctx)
	if err != nil {
		slog.Warn("Firestore unavailable, campaign data disabled", "error", err)
		return nil
	}
	return campaigns
}
