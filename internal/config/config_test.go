package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home directory: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "tilde alone",
			input: "~",
			want:  homeDir,
		},
		{
			name:  "tilde with path",
			input: "~/Documents",
			want:  filepath.Join(homeDir, "Documents"),
		},
		{
			name:  "absolute path unchanged",
			input: "/usr/local/bin",
			want:  "/usr/local/bin",
		},
		{
			name:  "relative path unchanged",
			input: "relative/path",
			want:  "relative/path",
		},
		{
			name:  "tilde in middle not expanded",
			input: "/some/path/~user/file",
			want:  "/some/path/~user/file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Check model defaults
	if cfg.Models.Storyboard != "gemini-2.5-pro" {
		t.Errorf("default Models.Storyboard = %q, want %q", cfg.Models.Storyboard, "gemini-2.5-pro")
	}
	if cfg.Models.Video != "veo-3.0-generate-001" {
		t.Errorf("default Models.Video = %q, want %q", cfg.Models.Video, "veo-3.0-generate-001")
	}

	// Check render defaults
	if cfg.Render.SceneSeconds != 8 {
		t.Errorf("default Render.SceneSeconds = %d, want 8", cfg.Render.SceneSeconds)
	}
	if cfg.Render.SceneCount != 2 {
		t.Errorf("default Render.SceneCount = %d, want 2", cfg.Render.SceneCount)
	}
	if cfg.Render.PollSeconds != 15 {
		t.Errorf("default Render.PollSeconds = %d, want 15", cfg.Render.PollSeconds)
	}

	// Check notify defaults
	if cfg.Notify.Enabled {
		t.Error("default Notify.Enabled should be false")
	}
	if cfg.Notify.SendGridKeyEnv != "SENDGRID_API_KEY" {
		t.Errorf("default Notify.SendGridKeyEnv = %q, want %q",
			cfg.Notify.SendGridKeyEnv, "SENDGRID_API_KEY")
	}
}

func TestGetProject(t *testing.T) {
	// Config value takes precedence
	cfg := &Config{Cloud: CloudConfig{Project: "from-config"}}
	t.Setenv("GOOGLE_CLOUD_PROJECT", "from-env")
	if got := cfg.GetProject(); got != "from-config" {
		t.Errorf("GetProject() = %q, want %q", got, "from-config")
	}

	// Environment fallback
	cfg = &Config{}
	if got := cfg.GetProject(); got != "from-env" {
		t.Errorf("GetProject() = %q, want %q", got, "from-env")
	}
}

func TestGetDatabase(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDatabase(); got != "(default)" {
		t.Errorf("GetDatabase() with nothing configured = %q, want %q", got, "(default)")
	}

	t.Setenv("FIRESTORE_DATABASE_ID", "ads-db")
	if got := cfg.GetDatabase(); got != "ads-db" {
		t.Errorf("GetDatabase() from env = %q, want %q", got, "ads-db")
	}

	cfg.Cloud.Database = "from-config"
	if got := cfg.GetDatabase(); got != "from-config" {
		t.Errorf("GetDatabase() from config = %q, want %q", got, "from-config")
	}
}

func TestUseVertex(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("env="+tt.env, func(t *testing.T) {
			t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", tt.env)
			cfg := &Config{}
			if got := cfg.UseVertex(); got != tt.want {
				t.Errorf("UseVertex() with env %q = %v, want %v", tt.env, got, tt.want)
			}
		})
	}

	// Config value overrides the environment
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "1")
	no := false
	cfg := &Config{Cloud: CloudConfig{UseVertex: &no}}
	if cfg.UseVertex() {
		t.Error("UseVertex() should honor the explicit config value")
	}
}

func TestGetStoryboardPrompt(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetStoryboardPrompt(); got != DefaultStoryboardPrompt {
		t.Error("GetStoryboardPrompt() with no custom prompt should return the default")
	}

	customPrompt := "My custom storyboard prompt"
	cfg.Render.StoryboardPrompt = customPrompt
	if got := cfg.GetStoryboardPrompt(); got != customPrompt {
		t.Errorf("GetStoryboardPrompt() with custom prompt = %q, want %q", got, customPrompt)
	}
}

func TestProductionInstruction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.SceneCount = 3
	cfg.Render.SceneSeconds = 6

	got := cfg.ProductionInstruction()
	if !strings.Contains(got, "3 distinct 6-second scenes") {
		t.Errorf("ProductionInstruction() should format the scene parameters into the default, got %q", got)
	}
	if strings.Contains(got, "%d") || strings.Contains(got, "%!") {
		t.Errorf("ProductionInstruction() left formatting artifacts in the default: %q", got)
	}
}

func TestProductionInstructionCustomVerbatim(t *testing.T) {
	cfg := DefaultConfig()
	custom := "Make a 100% family-friendly ad and report progress."
	cfg.Render.ProductionPrompt = custom

	if got := cfg.ProductionInstruction(); got != custom {
		t.Errorf("ProductionInstruction() with custom prompt = %q, want it verbatim", got)
	}
}

func TestGetSendGridAPIKey(t *testing.T) {
	// Direct key takes precedence
	cfg := &Config{
		Notify: NotifyConfig{
			SendGridAPIKey: "direct-key",
			SendGridKeyEnv: "TEST_SENDGRID_KEY",
		},
	}
	if got := cfg.GetSendGridAPIKey(); got != "direct-key" {
		t.Errorf("GetSendGridAPIKey() with direct key = %q, want %q", got, "direct-key")
	}

	// Env var fallback
	cfg = &Config{
		Notify: NotifyConfig{
			SendGridKeyEnv: "TEST_SENDGRID_KEY_FOR_TEST",
		},
	}
	t.Setenv("TEST_SENDGRID_KEY_FOR_TEST", "env-key")
	if got := cfg.GetSendGridAPIKey(); got != "env-key" {
		t.Errorf("GetSendGridAPIKey() with env var = %q, want %q", got, "env-key")
	}

	// Empty when nothing configured
	cfg = &Config{}
	if got := cfg.GetSendGridAPIKey(); got != "" {
		t.Errorf("GetSendGridAPIKey() with nothing configured = %q, want empty string", got)
	}
}

func TestNotifyConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.NotifyConfigured() {
		t.Error("NotifyConfigured() should be false with nothing set")
	}

	cfg.Notify.Enabled = true
	cfg.Notify.SendGridAPIKey = "key"
	if cfg.NotifyConfigured() {
		t.Error("NotifyConfigured() should require a recipient")
	}

	cfg.Notify.ToEmail = "ops@example.com"
	if !cfg.NotifyConfigured() {
		t.Error("NotifyConfigured() should be true when enabled with key and recipient")
	}
}
