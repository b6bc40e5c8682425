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

// GenerateImageTool generates a first-frame image with Imagen and stores it
// in the asset bucket.
type GenerateImageTool struct {
	genaiClient *genai.Client
	assets      *gcs.Store
	model       string
	budget      *RenderBudget
}

// NewGenerateImageTool creates a new GenerateImageTool
func NewGenerateImageTool(client *genai.Client, assets *gcs.Store, modelName string, budget *RenderBudget) *GenerateImageTool {
	return &GenerateImageTool{
		genaiClient: client,
		assets:      assets,
		model:       modelName,
		budget:      budget,
	}
}

// Name returns the tool name
func (t *GenerateImageTool) Name() string {
	return "generate_image"
}

// Description returns the tool description
func (t *GenerateImageTool) Description() string {
	return "Generates an image with the Imagen model from a text prompt and stores it in the asset bucket. Use this for the advertisement's first-frame image. Returns the GCS URI of the generated image on success."
}

// IsLongRunning returns false; image generation completes within the request
func (t *GenerateImageTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *GenerateImageTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *GenerateImageTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"prompt": {
					Type:        "string",
					Description: "Text description of the image content to generate",
				},
			},
			Required: []string{"prompt"},
		},
	}
}

// Run executes the tool
func (t *GenerateImageTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	prompt, ok := stringArg(argsMap, "prompt")
	if !ok {
		return map[string]any{"error": "prompt must be a string"}, nil
	}

	slog.Debug("tool call", "tool", "generate_image", "prompt_len", len(prompt))

	// Pre-flight check against the render budget
	canStart, msg := t.budget.CanStartImage()
	if !canStart {
		slog.Debug("image generation denied", "reason", msg)
		return map[string]any{
			"error":   msg,
			"message": "Cannot generate more images this session. Reuse an existing frame or report partial progress.",
		}, nil
	}

	resp, err := t.genaiClient.Models.GenerateImages(ctx, t.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "16:9",
	})
	if err != nil {
		slog.Debug("image generation error", "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error generating image: %v", err),
		}, nil
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return map[string]any{
			"error": "Image generation returned no images",
		}, nil
	}

	object := gcs.ImageObject(time.Now())
	uri, err := t.assets.Upload(ctx, object, "image/png", resp.GeneratedImages[0].Image.ImageBytes)
	if err != nil {
		slog.Debug("image upload error", "object", object, "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error storing image: %v", err),
		}, nil
	}

	t.budget.RecordImageJob(prompt, uri)
	slog.Info("image generated", "model", t.model, "uri", uri)

	return map[string]any{
		"gcs_uri": uri,
		"prompt":  prompt,
	}, nil
}
