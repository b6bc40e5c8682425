package creative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/perbu/adsvideo/internal/db"
	"github.com/perbu/adsvideo/internal/tools"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// Result holds the artifacts of a completed pipeline run
type Result struct {
	Transcript string   // Everything the agents said
	ImageURI   string   // First-frame image, if one was generated
	SceneURIs  []string // Scene clips in generation order
	FinalURI   string   // Merged advertisement, if produced
	TagDocID   string   // Firestore ad tag document, if stored
	Budget     map[string]interface{}
}

// buildRenderPrompt creates the user prompt for a pipeline run
func buildRenderPrompt(product string, tags []string) string {
	var sb strings.Builder

	sb.WriteString("Create an advertising video for the following product.\n\n")
	sb.WriteString(fmt.Sprintf("Product description: %s\n", product))
	if len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("Product tags: %s\n", strings.Join(tags, ", ")))
	}
	sb.WriteString("\nRun the full workflow end to end and report the final video's GCS URI.\n")
	return sb.String()
}

// collectArtifacts recovers asset URIs from the render budget's job log.
// The transcript is model prose; the budget log is the ground truth for
// which assets were actually produced.
func collectArtifacts(budget *tools.RenderBudget, result *Result) {
	meta := budget.GetMetadata()
	result.Budget = meta

	log, ok := meta["job_log"].([]tools.JobRecord)
	if !ok {
		return
	}
	for _, rec := range log {
		switch rec.Kind {
		case "image":
			result.ImageURI = rec.URI
		case "video":
			result.SceneURIs = append(result.SceneURIs, rec.URI)
		case "merge":
			result.FinalURI = rec.URI
		case "tags":
			result.TagDocID = rec.URI
		}
	}
}

// Pipeline executes one-shot advertisement generation runs and records them
// in the job store.
type Pipeline struct {
	agent   agent.Agent
	budget  *tools.RenderBudget
	jobs    *db.DB
	appName string
}

// NewPipeline creates a pipeline around a prepared agent and its budget
func NewPipeline(a agent.Agent, budget *tools.RenderBudget, jobs *db.DB, appName string) *Pipeline {
	return &Pipeline{
		agent:   a,
		budget:  budget,
		jobs:    jobs,
		appName: appName,
	}
}

// Run generates an advertisement for the product and persists a render job.
// The returned job reflects the final state; the error covers run failures
// after the job row exists.
func (p *Pipeline) Run(ctx context.Context, product string, tags []string) (*db.RenderJob, *Result, error) {
	job, err := p.jobs.CreateRenderJob(product, strings.Join(tags, ","))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create render job: %w", err)
	}
	if err := p.jobs.MarkJobRunning(job.ID); err != nil {
		return nil, nil, err
	}

	result, runErr := p.execute(ctx, job.ID, product, tags)
	if runErr != nil {
		if dbErr := p.jobs.MarkJobFailed(job.ID, runErr.Error()); dbErr != nil {
			slog.Error("failed to record job failure", "job", job.ID, "error", dbErr)
		}
		job, _ = p.jobs.GetRenderJob(job.ID)
		return job, nil, runErr
	}

	sceneJSON, _ := json.Marshal(result.SceneURIs)
	budgetJSON, _ := json.Marshal(result.Budget)
	storyboard := extractStoryboard(result.Transcript)

	if err := p.jobs.MarkJobDone(job.ID, storyboard, result.ImageURI,
		string(sceneJSON), result.FinalURI, result.TagDocID, string(budgetJSON)); err != nil {
		return nil, nil, err
	}

	job, err = p.jobs.GetRenderJob(job.ID)
	if err != nil {
		return nil, nil, err
	}
	return job, result, nil
}

// execute runs the agent session and gathers the transcript and artifacts
func (p *Pipeline) execute(ctx context.Context, jobID int64, product string, tags []string) (*Result, error) {
	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        p.appName,
		Agent:          p.agent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	userID := "operator"
	sessionID := fmt.Sprintf("render-%d", jobID)
	_, err = sessionService.Create(ctx, &session.CreateRequest{
		AppName:   p.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	userMessage := genai.NewContentFromText(buildRenderPrompt(product, tags), genai.RoleUser)

	slog.Debug("pipeline starting", "job", jobID, "product_len", len(product))

	var transcript strings.Builder
	for event, err := range r.Run(ctx, userID, sessionID, userMessage, agent.RunConfig{}) {
		if err != nil {
			return nil, fmt.Errorf("agent execution failed: %w", err)
		}
		if event != nil && event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					transcript.WriteString(part.Text)
				}
			}
		}
	}

	result := &Result{Transcript: transcript.String()}
	collectArtifacts(p.budget, result)

	slog.Info("pipeline complete", "job", jobID,
		"scenes", len(result.SceneURIs), "final", result.FinalURI != "")

	return result, nil
}

// extractStoryboard pulls the storyboard section out of the transcript.
// The storyboard agent speaks first, so everything up to the production
// agent's progress reporting is the storyboard; fall back to the whole
// transcript when the boundary is unclear.
func extractStoryboard(transcript string) string {
	markers := []string{"First-frame Image Generation", "Step 2", "generate_image"}
	for _, m := range markers {
		if idx := strings.Index(transcript, m); idx > 0 {
			return strings.TrimSpace(transcript[:idx])
		}
	}
	return strings.TrimSpace(transcript)
}
