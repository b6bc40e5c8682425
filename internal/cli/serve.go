package cli

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	"github.com/perbu/adsvideo/internal/av"
	"github.com/perbu/adsvideo/internal/creative"
	"github.com/perbu/adsvideo/internal/llm"
	"github.com/perbu/adsvideo/internal/tools"
)

// Run executes the serve command. The trailing arguments go straight to the
// ADK launcher, so `adsvideo serve web --port 8000` serves the dev UI and
// `adsvideo serve console` gives an interactive console session.
func (c *ServeCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	if err := cmdCtx.Config.Validate(); err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, cmdCtx.Config)
	if err != nil {
		return fmt.Errorf("failed to create GenAI client: %w", err)
	}
	defer client.Close()

	deps, cleanup, err := buildAgentDeps(ctx, cmdCtx, client)
	if err != nil {
		return err
	}
	defer cleanup()

	var a agent.Agent
	if c.Pipeline {
		a, err = creative.NewPipelineAgent(ctx, client, cmdCtx.Config, deps)
	} else {
		a, err = creative.NewProductionAgent(ctx, client, cmdCtx.Config, deps, false)
	}
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	config := &launcher.Config{
		AgentLoader: agent.NewSingleLoader(a),
	}

	l := full.NewLauncher()
	if err := l.Execute(ctx, config, c.Args); err != nil {
		return fmt.Errorf("launcher failed: %w\n\n%s", err, l.CommandLineSyntax())
	}
	return nil
}

// buildAgentDeps wires the tool dependencies shared by serve and generate.
// Firestore is optional; the cleanup closes whatever was opened.
func buildAgentDeps(ctx context.Context, cmdCtx *Context, client *llm.Client) (creative.Deps, func(), error) {
	if !av.Available() {
		slog.Warn("ffmpeg not found on PATH, video merging will fail")
	}

	assets, err := cmdCtx.openAssets(ctx)
	if err != nil {
		return creative.Deps{}, nil, fmt.Errorf("failed to open asset bucket: %w", err)
	}

	deps := creative.Deps{
		GenAI:  client.GenAI(),
		Assets: assets,
		Budget: tools.NewRenderBudget(
			cmdCtx.Config.Render.MaxVideoJobs,
			cmdCtx.Config.Render.MaxImageJobs,
			cmdCtx.Config.Render.MaxMergeJobs,
			cmdCtx.Config.Render.MaxPollSeconds,
		),
		Config: cmdCtx.Config,
	}

	// The toolset simply omits the campaign data tools when Firestore is
	// not reachable.
	deps.Campaigns = cmdCtx.openCampaignsOptional(ctx)

	cleanup := func() {
		if deps.Campaigns != nil {
			deps.Campaigns.Close()
		}
		assets.Close()
	}
	return deps, cleanup, nil
}
