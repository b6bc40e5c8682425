package creative

import (
	"strings"
	"testing"

	"github.com/perbu/adsvideo/internal/tools"
)

func TestBuildRenderPrompt(t *testing.T) {
	prompt := buildRenderPrompt("A solar-powered lantern for campers", []string{"eco-friendly", "outdoors"})

	if !strings.Contains(prompt, "A solar-powered lantern for campers") {
		t.Error("prompt should contain the product description")
	}
	if !strings.Contains(prompt, "eco-friendly, outdoors") {
		t.Error("prompt should contain the joined tags")
	}
	if !strings.Contains(prompt, "GCS URI") {
		t.Error("prompt should ask for the final video URI")
	}
}

func TestBuildRenderPromptNoTags(t *testing.T) {
	prompt := buildRenderPrompt("A lamp", nil)
	if strings.Contains(prompt, "Product tags") {
		t.Error("prompt should omit the tags line when no tags are given")
	}
}

func TestCollectArtifacts(t *testing.T) {
	b := tools.NewRenderBudget(4, 3, 2, 900)
	b.RecordImageJob("first frame", "gs://b/images/frame.png")
	b.RecordVideoJob("scene one", "gs://b/videos/s1.mp4")
	b.RecordVideoJob("scene two", "gs://b/videos/s2.mp4")
	b.RecordMergeJob("s1 + s2", "gs://b/videos/final_x.mp4")
	b.RecordTagDoc("gs://b/videos/final_x.mp4", "tagdoc123")

	result := &Result{}
	collectArtifacts(b, result)

	if result.ImageURI != "gs://b/images/frame.png" {
		t.Errorf("ImageURI = %q", result.ImageURI)
	}
	if len(result.SceneURIs) != 2 || result.SceneURIs[1] != "gs://b/videos/s2.mp4" {
		t.Errorf("SceneURIs = %v", result.SceneURIs)
	}
	if result.FinalURI != "gs://b/videos/final_x.mp4" {
		t.Errorf("FinalURI = %q", result.FinalURI)
	}
	if result.TagDocID != "tagdoc123" {
		t.Errorf("TagDocID = %q", result.TagDocID)
	}
	if result.Budget == nil {
		t.Error("Budget metadata should be captured")
	}
}

func TestExtractStoryboard(t *testing.T) {
	transcript := "Metadata:\nprompt_name: \"Test\"\ntimeline: ...\n\nStep 2: First-frame Image Generation underway"
	got := extractStoryboard(transcript)
	if strings.Contains(got, "underway") {
		t.Errorf("storyboard should stop at the production boundary, got %q", got)
	}
	if !strings.Contains(got, "prompt_name") {
		t.Errorf("storyboard should keep the drafted content, got %q", got)
	}

	// No boundary marker: keep everything
	plain := "just a storyboard"
	if got := extractStoryboard(plain); got != plain {
		t.Errorf("extractStoryboard(%q) = %q", plain, got)
	}
}
