package tools

import (
	"fmt"
	"log/slog"

	"github.com/perbu/adsvideo/internal/campaign"
	"github.com/perbu/adsvideo/internal/gcs"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// SaveAdTagsTool stores the placement tag set for a finished video. Unlike
// the generic store_campaign_data tool it writes a typed document, and it
// records the document ID so the render job can reference it.
type SaveAdTagsTool struct {
	store  *campaign.Store
	budget *RenderBudget
}

// NewSaveAdTagsTool creates a new SaveAdTagsTool
func NewSaveAdTagsTool(store *campaign.Store, budget *RenderBudget) *SaveAdTagsTool {
	return &SaveAdTagsTool{store: store, budget: budget}
}

// Name returns the tool name
func (t *SaveAdTagsTool) Name() string {
	return "save_ad_tags"
}

// Description returns the tool description
func (t *SaveAdTagsTool) Description() string {
	return "Stores the ad placement tags generated for a final video. Provide the video's GCS URI and the three tag categories: content, emotional/thematic, and stylistic. Returns the ID of the stored tag document."
}

// IsLongRunning returns false as this is a quick operation
func (t *SaveAdTagsTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *SaveAdTagsTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *SaveAdTagsTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"video_gcs_uri": {
					Type:        "string",
					Description: "GCS URI of the final video the tags describe",
				},
				"content_tags": {
					Type:        "array",
					Items:       &genai.Schema{Type: "string"},
					Description: "Visible objects, people, and locations (e.g., 'car', 'city street')",
				},
				"emotional_tags": {
					Type:        "array",
					Items:       &genai.Schema{Type: "string"},
					Description: "Mood and underlying message (e.g., 'thrilling', 'nostalgic')",
				},
				"stylistic_tags": {
					Type:        "array",
					Items:       &genai.Schema{Type: "string"},
					Description: "Visual and auditory aesthetic (e.g., 'vintage film look')",
				},
			},
			Required: []string{"video_gcs_uri", "content_tags", "emotional_tags", "stylistic_tags"},
		},
	}
}

// Run executes the tool
func (t *SaveAdTagsTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	videoURI, ok := stringArg(argsMap, "video_gcs_uri")
	if !ok {
		return map[string]any{"error": "video_gcs_uri must be a string"}, nil
	}
	if _, _, err := gcs.ParseURI(videoURI); err != nil {
		return map[string]any{"error": fmt.Sprintf("Invalid video URI: %v", err)}, nil
	}

	contentTags, ok := stringSliceArg(argsMap, "content_tags")
	if !ok {
		return map[string]any{"error": "content_tags must be a list of strings"}, nil
	}
	emotionalTags, ok := stringSliceArg(argsMap, "emotional_tags")
	if !ok {
		return map[string]any{"error": "emotional_tags must be a list of strings"}, nil
	}
	stylisticTags, ok := stringSliceArg(argsMap, "stylistic_tags")
	if !ok {
		return map[string]any{"error": "stylistic_tags must be a list of strings"}, nil
	}

	slog.Debug("tool call", "tool", "save_ad_tags", "video", videoURI,
		"content", len(contentTags), "emotional", len(emotionalTags), "stylistic", len(stylisticTags))

	docID, err := t.store.SaveAdTags(ctx, campaign.AdTagSet{
		VideoURI:      videoURI,
		ContentTags:   contentTags,
		EmotionalTags: emotionalTags,
		StylisticTags: stylisticTags,
	})
	if err != nil {
		slog.Debug("ad tag store error", "video", videoURI, "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error storing ad tags: %v", err),
		}, nil
	}

	t.budget.RecordTagDoc(videoURI, docID)
	slog.Info("ad tags stored", "video", videoURI, "doc_id", docID)

	return map[string]any{
		"document_id": docID,
		"video_uri":   videoURI,
		"message":     fmt.Sprintf("Ad tags stored with document ID %q.", docID),
	}, nil
}
