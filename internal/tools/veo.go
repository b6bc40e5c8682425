package tools

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/perbu/adsvideo/internal/gcs"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// GenerateVideoTool generates a scene clip with the Veo model. The underlying
// operation is long-running on the service side; the tool polls it to
// completion within the session's polling allowance.
type GenerateVideoTool struct {
	genaiClient  *genai.Client
	assets       *gcs.Store
	model        string
	budget       *RenderBudget
	sceneSeconds int
	pollInterval time.Duration
}

// NewGenerateVideoTool creates a new GenerateVideoTool
func NewGenerateVideoTool(client *genai.Client, assets *gcs.Store, modelName string, budget *RenderBudget, sceneSeconds, pollSeconds int) *GenerateVideoTool {
	return &GenerateVideoTool{
		genaiClient:  client,
		assets:       assets,
		model:        modelName,
		budget:       budget,
		sceneSeconds: sceneSeconds,
		pollInterval: time.Duration(pollSeconds) * time.Second,
	}
}

// Name returns the tool name
func (t *GenerateVideoTool) Name() string {
	return "generate_video"
}

// Description returns the tool description
func (t *GenerateVideoTool) Description() string {
	return "Generates a video clip with the Veo model from a text prompt. Optionally accepts the GCS URI of a first-frame image to animate from. This is an expensive, slow operation (minutes); generate one clip per storyboard scene. Returns the GCS URI of the generated clip on success."
}

// IsLongRunning returns false: the tool blocks until the Veo operation
// settles, so from the agent's perspective the call is synchronous.
func (t *GenerateVideoTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *GenerateVideoTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *GenerateVideoTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"prompt": {
					Type:        "string",
					Description: "Text description of the video scene to generate, from the storyboard",
				},
				"duration_seconds": {
					Type:        "integer",
					Description: "Desired clip duration in seconds (defaults to the configured scene length)",
				},
				"image_gcs_uri": {
					Type:        "string",
					Description: "Optional GCS URI of a first-frame image to animate from",
				},
			},
			Required: []string{"prompt"},
		},
	}
}

// Run executes the tool
func (t *GenerateVideoTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	prompt, ok := stringArg(argsMap, "prompt")
	if !ok {
		return map[string]any{"error": "prompt must be a string"}, nil
	}

	duration := t.sceneSeconds
	if d, ok := intArg(argsMap, "duration_seconds"); ok && d > 0 {
		duration = d
	}

	slog.Debug("tool call", "tool", "generate_video", "duration", duration, "prompt_len", len(prompt))

	// Pre-flight check against the render budget
	canStart, msg := t.budget.CanStartVideo()
	if !canStart {
		slog.Debug("video generation denied", "reason", msg)
		return map[string]any{
			"error":   msg,
			"message": "Cannot generate more video clips this session. Work with the clips already produced.",
		}, nil
	}

	var image *genai.Image
	if imageURI, ok := stringArg(argsMap, "image_gcs_uri"); ok && imageURI != "" {
		if _, _, err := gcs.ParseURI(imageURI); err != nil {
			return map[string]any{"error": fmt.Sprintf("Invalid image URI: %v", err)}, nil
		}
		image = &genai.Image{GCSURI: imageURI, MIMEType: "image/png"}
	}

	outputURI := t.assets.URI(gcs.VideoObject(time.Now()))
	op, err := t.genaiClient.Models.GenerateVideos(ctx, t.model, prompt, image, videoConfig(outputURI, duration))
	if err != nil {
		slog.Debug("video generation error", "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error starting video generation: %v", err),
		}, nil
	}

	// Poll the long-running operation until it settles or the polling
	// allowance for the session runs out.
	for !op.Done {
		if !t.budget.ConsumePoll(int(t.pollInterval.Seconds())) {
			return map[string]any{
				"error":   "polling allowance exhausted",
				"message": "The video operation is still running on the service. Report partial progress to the user.",
			}, nil
		}

		select {
		case <-ctx.Done():
			return map[string]any{
				"error": fmt.Sprintf("video generation canceled: %v", ctx.Err()),
			}, nil
		case <-time.After(t.pollInterval):
		}

		op, err = t.genaiClient.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			slog.Debug("video operation poll error", "error", err)
			return map[string]any{
				"error": fmt.Sprintf("Error while polling operation status: %v", err),
			}, nil
		}
	}

	return t.finishVideo(op, outputURI, prompt, duration), nil
}

// videoConfig builds the Veo request config. FPS and DurationSeconds are
// optional fields on the wire and take pointers.
func videoConfig(outputURI string, duration int) *genai.GenerateVideosConfig {
	return &genai.GenerateVideosConfig{
		NumberOfVideos:  1,
		FPS:             genai.Ptr[int32](24),
		DurationSeconds: genai.Ptr(int32(duration)),
		EnhancePrompt:   true,
		OutputGCSURI:    outputURI,
	}
}

// finishVideo turns a settled Veo operation into the tool result. A failed
// operation carries its service error; only a genuinely successful one is
// charged against the budget.
func (t *GenerateVideoTool) finishVideo(op *genai.GenerateVideosOperation, outputURI, prompt string, duration int) map[string]any {
	if op.Error != nil {
		slog.Debug("video operation failed", "error", op.Error)
		msg, ok := op.Error["message"].(string)
		if !ok {
			msg = fmt.Sprintf("%v", op.Error)
		}
		return map[string]any{
			"error": fmt.Sprintf("Operation failed: %s", msg),
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return map[string]any{
			"error": "Operation complete, but no video was returned",
		}
	}

	videoURI := outputURI
	if v := op.Response.GeneratedVideos[0].Video; v != nil && v.URI != "" {
		videoURI = v.URI
	}

	t.budget.RecordVideoJob(prompt, videoURI)
	slog.Info("video generated", "model", t.model, "uri", videoURI, "duration", duration)

	return map[string]any{
		"gcs_uri":          videoURI,
		"duration_seconds": duration,
		"prompt":           prompt,
	}
}
