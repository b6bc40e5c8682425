// Package creative defines the advertising agents and the one-shot
// generation pipeline built on top of them.
package creative

import (
	"context"
	"fmt"

	"github.com/perbu/adsvideo/internal/campaign"
	"github.com/perbu/adsvideo/internal/config"
	"github.com/perbu/adsvideo/internal/gcs"
	"github.com/perbu/adsvideo/internal/llm"
	"github.com/perbu/adsvideo/internal/tools"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/agent/workflowagents/sequentialagent"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// StoryboardKey is the session state key the storyboard agent writes and the
// pipeline's production agent reads.
const StoryboardKey = "storyboard_and_script"

// Deps carries the shared clients the tools are wired to
type Deps struct {
	GenAI     *genai.Client
	Assets    *gcs.Store
	Campaigns *campaign.Store
	Budget    *tools.RenderBudget
	Config    *config.Config
}

// NewToolset builds the production agent's tools. The campaign store may be
// nil when Firestore is not configured; the data tools are then omitted.
func NewToolset(d Deps) []tool.Tool {
	ts := []tool.Tool{
		tools.NewGenerateImageTool(d.GenAI, d.Assets, d.Config.Models.Image, d.Budget),
		tools.NewGenerateVideoTool(d.GenAI, d.Assets, d.Config.Models.Video, d.Budget,
			d.Config.Render.SceneSeconds, d.Config.Render.PollSeconds),
		tools.NewMergeVideosTool(d.Assets, d.Budget),
	}
	if d.Campaigns != nil {
		ts = append(ts,
			tools.NewSaveAdTagsTool(d.Campaigns, d.Budget),
			tools.NewStoreCampaignDataTool(d.Campaigns),
			tools.NewReadCampaignDataTool(d.Campaigns),
		)
	}
	return ts
}

// NewStoryboardAgent creates the storyboard drafting agent. Its output is
// published under StoryboardKey for downstream agents.
func NewStoryboardAgent(ctx context.Context, client *llm.Client, cfg *config.Config) (agent.Agent, error) {
	model, err := client.GeminiModel(ctx, cfg.Models.Storyboard)
	if err != nil {
		return nil, err
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        "storyboard_agent",
		Model:       model,
		Description: "Generates a creative video design storyboard and narration script",
		Instruction: cfg.GetStoryboardPrompt(),
		OutputKey:   StoryboardKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storyboard agent: %w", err)
	}
	return a, nil
}

// NewProductionAgent creates the root creative production agent with the
// generation toolset. When pipelined is true the instruction references the
// storyboard produced by the upstream agent via session state templating.
func NewProductionAgent(ctx context.Context, client *llm.Client, cfg *config.Config, d Deps, pipelined bool) (agent.Agent, error) {
	model, err := client.GeminiModel(ctx, cfg.Models.Agent)
	if err != nil {
		return nil, err
	}

	instruction := cfg.ProductionInstruction()
	if pipelined {
		instruction += "\n\nThe storyboard and script have already been drafted:\n{" + StoryboardKey + "}\n" +
			"Proceed through the remaining workflow steps without waiting for user confirmation."
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        "ads_creative_video_agent",
		Model:       model,
		Description: "Turns product descriptions into complete advertising videos",
		Instruction: instruction,
		Tools:       NewToolset(d),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create production agent: %w", err)
	}
	return a, nil
}

// NewPipelineAgent chains the storyboard and production agents for
// non-interactive generation runs.
func NewPipelineAgent(ctx context.Context, client *llm.Client, cfg *config.Config, d Deps) (agent.Agent, error) {
	storyboard, err := NewStoryboardAgent(ctx, client, cfg)
	if err != nil {
		return nil, err
	}
	production, err := NewProductionAgent(ctx, client, cfg, d, true)
	if err != nil {
		return nil, err
	}

	a, err := sequentialagent.New(sequentialagent.Config{
		AgentConfig: agent.Config{
			Name:        "ads_video_pipeline",
			Description: "Drafts a storyboard, then produces the advertisement",
			SubAgents:   []agent.Agent{storyboard, production},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline agent: %w", err)
	}
	return a, nil
}
