package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/perbu/adsvideo/internal/creative"
	"github.com/perbu/adsvideo/internal/email"
	"github.com/perbu/adsvideo/internal/llm"
)

// Run executes the generate command
func (c *GenerateCmd) Run(cmdCtx *Context) error {
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

	a, err := creative.NewPipelineAgent(ctx, client, cmdCtx.Config, deps)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	pipeline := creative.NewPipeline(a, deps.Budget, cmdCtx.DB, cmdCtx.Config.GetAppName())

	if !cmdCtx.Quiet {
		fmt.Printf("Generating advertisement for: %s\n", c.Product)
	}

	job, result, runErr := pipeline.Run(ctx, c.Product, c.Tags)

	if c.Notify && job != nil {
		c.sendNotice(ctx, cmdCtx, job.ID, result)
	}

	if runErr != nil {
		if job == nil {
			return runErr
		}
		return fmt.Errorf("generation failed (job %d): %w", job.ID, runErr)
	}

	if cmdCtx.Quiet {
		fmt.Println(result.FinalURI)
		return nil
	}

	fmt.Printf("\nRender job #%d complete\n", job.ID)
	if result.ImageURI != "" {
		fmt.Printf("  First frame:  %s\n", result.ImageURI)
	}
	for i, uri := range result.SceneURIs {
		fmt.Printf("  Scene %d:      %s\n", i+1, uri)
	}
	if result.FinalURI != "" {
		fmt.Printf("  Final video:  %s\n", result.FinalURI)
	} else {
		fmt.Println("  No final video was produced; inspect the job transcript with 'adsvideo job show'")
	}

	if cmdCtx.Verbose && result.Budget != nil {
		stats, err := json.MarshalIndent(result.Budget, "  ", "  ")
		if err == nil {
			fmt.Printf("\nRender usage:\n  %s\n", stats)
		}
	}

	return nil
}

// sendNotice emails the completion notice for a finished job. Failures are
// logged, not fatal; the render result already exists.
func (c *GenerateCmd) sendNotice(ctx context.Context, cmdCtx *Context, jobID int64, result *creative.Result) {
	// A dry run only composes the message, so it needs a recipient but
	// no SendGrid credentials.
	if c.DryRun {
		if cmdCtx.Config.Notify.ToEmail == "" {
			slog.Warn("notification dry run requested but notify.to_email is not set")
			return
		}
	} else if !cmdCtx.Config.NotifyConfigured() {
		slog.Warn("notification requested but notify config is incomplete")
		return
	}

	job, err := cmdCtx.DB.GetRenderJob(jobID)
	if err != nil {
		slog.Error("failed to load job for notification", "job", jobID, "error", err)
		return
	}

	var sceneURIs []string
	if result != nil {
		sceneURIs = result.SceneURIs
	}

	msg, err := email.ComposeNotice(cmdCtx.Config.Notify.ToEmail, cmdCtx.Config.Notify.SubjectPrefix, job, sceneURIs)
	if err != nil {
		slog.Error("failed to compose notification", "job", jobID, "error", err)
		return
	}

	var sender email.Sender = email.NewClient(cmdCtx.Config.GetSendGridAPIKey(),
		cmdCtx.Config.Notify.FromEmail, cmdCtx.Config.Notify.FromName)
	if c.DryRun {
		sender = &email.DryRunClient{}
	}

	messageID, err := sender.Send(ctx, *msg)
	if err != nil {
		slog.Error("failed to send notification", "job", jobID, "error", err)
		return
	}
	if c.DryRun {
		slog.Info("notification composed (dry run, not sent)", "job", jobID, "subject", msg.Subject)
		return
	}
	slog.Info("notification sent", "job", jobID, "message_id", messageID)
}
