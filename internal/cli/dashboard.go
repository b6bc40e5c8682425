package cli

import (
	"context"
	"fmt"

	"github.com/perbu/adsvideo/internal/web"
)

// Run executes the dashboard command
func (c *DashboardCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	// The dashboard is useful without Firestore; the ad tags page just
	// shows a notice when it is not configured.
	campaigns := cmdCtx.openCampaignsOptional(ctx)
	if campaigns != nil {
		defer campaigns.Close()
	}

	server, err := web.NewServer(cmdCtx.DB, campaigns, cmdCtx.Config, c.Host, c.Port)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if !cmdCtx.Quiet {
		fmt.Printf("Starting dashboard at %s\n", server.Address())
		fmt.Printf("Press Ctrl+C to stop\n")
	}

	return server.Start()
}
