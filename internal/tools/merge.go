package tools

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/perbu/adsvideo/internal/av"
	"github.com/perbu/adsvideo/internal/gcs"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// MergeVideosTool downloads two scene clips from GCS, concatenates them with
// ffmpeg, and uploads the final advertisement back to the asset bucket.
type MergeVideosTool struct {
	assets *gcs.Store
	budget *RenderBudget
}

// NewMergeVideosTool creates a new MergeVideosTool
func NewMergeVideosTool(assets *gcs.Store, budget *RenderBudget) *MergeVideosTool {
	return &MergeVideosTool{
		assets: assets,
		budget: budget,
	}
}

// Name returns the tool name
func (t *MergeVideosTool) Name() string {
	return "merge_videos"
}

// Description returns the tool description
func (t *MergeVideosTool) Description() string {
	return "Concatenates two video clips into one final advertisement. Pass the GCS URIs of the clips in playback order. The merged video is stored in the asset bucket with 'final' in its name. Returns the GCS URI of the final video."
}

// IsLongRunning returns false as the merge completes within the request
func (t *MergeVideosTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *MergeVideosTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *MergeVideosTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"gcs_video_uri_1": {
					Type:        "string",
					Description: "GCS URI of the first clip (e.g., 'gs://bucket/videos/scene1.mp4')",
				},
				"gcs_video_uri_2": {
					Type:        "string",
					Description: "GCS URI of the second clip",
				},
			},
			Required: []string{"gcs_video_uri_1", "gcs_video_uri_2"},
		},
	}
}

// Run executes the tool
func (t *MergeVideosTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	uri1, ok := stringArg(argsMap, "gcs_video_uri_1")
	if !ok {
		return map[string]any{"error": "gcs_video_uri_1 must be a string"}, nil
	}
	uri2, ok := stringArg(argsMap, "gcs_video_uri_2")
	if !ok {
		return map[string]any{"error": "gcs_video_uri_2 must be a string"}, nil
	}

	slog.Debug("tool call", "tool", "merge_videos", "uri1", uri1, "uri2", uri2)

	canStart, msg := t.budget.CanStartMerge()
	if !canStart {
		slog.Debug("merge denied", "reason", msg)
		return map[string]any{
			"error":   msg,
			"message": "Cannot merge more videos this session.",
		}, nil
	}

	for _, uri := range []string{uri1, uri2} {
		if _, _, err := gcs.ParseURI(uri); err != nil {
			return map[string]any{"error": fmt.Sprintf("Invalid video URI: %v", err)}, nil
		}
	}

	workDir, err := os.MkdirTemp("", "adsvideo-merge-*")
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("Error creating work directory: %v", err)}, nil
	}
	defer os.RemoveAll(workDir)

	// Download both clips
	local := make([]string, 2)
	for i, uri := range []string{uri1, uri2} {
		local[i] = filepath.Join(workDir, fmt.Sprintf("scene%d.mp4", i+1))
		if err := t.assets.Download(ctx, uri, local[i]); err != nil {
			slog.Debug("clip download error", "uri", uri, "error", err)
			return map[string]any{
				"error": fmt.Sprintf("Error downloading clip: %v", err),
			}, nil
		}
	}

	// Concatenate with ffmpeg
	outPath := filepath.Join(workDir, "final.mp4")
	if err := av.Concat(ctx, local, outPath); err != nil {
		slog.Debug("concat error", "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error merging videos: %v", err),
		}, nil
	}

	// Upload the final advertisement
	object := gcs.FinalObject(time.Now())
	finalURI, err := t.assets.UploadFile(ctx, object, "video/mp4", outPath)
	if err != nil {
		slog.Debug("final upload error", "object", object, "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error uploading final video: %v", err),
		}, nil
	}

	t.budget.RecordMergeJob(fmt.Sprintf("%s + %s", uri1, uri2), finalURI)
	slog.Info("videos merged", "uri", finalURI)

	return map[string]any{
		"gcs_uri": finalURI,
		"inputs":  []string{uri1, uri2},
	}, nil
}
