package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DataDir string       `yaml:"data_dir"`
	Debug   bool         `yaml:"debug"` // Enable debug logging
	Cloud   CloudConfig  `yaml:"cloud"`
	Models  ModelConfig  `yaml:"models"`
	Render  RenderConfig `yaml:"render"`
	Notify  NotifyConfig `yaml:"notify"`
	Web     WebConfig    `yaml:"web"`
}

// CloudConfig represents Google Cloud project and storage configuration.
// Every field falls back to the conventional environment variable so a bare
// .env file is enough to run the agent.
type CloudConfig struct {
	Project     string `yaml:"project"`      // GOOGLE_CLOUD_PROJECT
	Location    string `yaml:"location"`     // GOOGLE_CLOUD_LOCATION
	Bucket      string `yaml:"bucket"`       // GCS_BUCKET_NAME
	Database    string `yaml:"database"`     // FIRESTORE_DATABASE_ID
	UseVertex   *bool  `yaml:"use_vertex"`   // GOOGLE_GENAI_USE_VERTEXAI
	APIKeyEnv   string `yaml:"api_key_env"`  // Env var with Gemini API key
	ServiceName string `yaml:"service_name"` // SERVICE_NAME
	AppName     string `yaml:"app_name"`     // APP_NAME
}

// ModelConfig names the generative models used by the agents and tools
type ModelConfig struct {
	Agent      string `yaml:"agent"`      // Chat/orchestration model
	Storyboard string `yaml:"storyboard"` // Storyboard drafting model
	Image      string `yaml:"image"`      // Imagen model for first frames
	Video      string `yaml:"video"`      // Veo model for scene clips
}

// RenderConfig bounds what a single agent session may spend on generation
type RenderConfig struct {
	SceneSeconds   int `yaml:"scene_seconds"`    // Duration of each scene clip
	SceneCount     int `yaml:"scene_count"`      // Scenes per advertisement
	MaxVideoJobs   int `yaml:"max_video_jobs"`   // Veo invocations per session
	MaxImageJobs   int `yaml:"max_image_jobs"`   // Imagen invocations per session
	MaxMergeJobs   int `yaml:"max_merge_jobs"`   // ffmpeg merges per session
	PollSeconds    int `yaml:"poll_seconds"`     // Veo operation poll interval
	MaxPollSeconds int `yaml:"max_poll_seconds"` // Total polling allowance

	// Prompt customization (optional overrides)
	StoryboardPrompt string `yaml:"storyboard_prompt"` // Storyboard agent instruction
	ProductionPrompt string `yaml:"production_prompt"` // Production agent instruction
}

// NotifyConfig represents completion notification configuration
type NotifyConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SendGridAPIKey string `yaml:"sendgrid_api_key"`     // Direct API key
	SendGridKeyEnv string `yaml:"sendgrid_api_key_env"` // Environment variable name
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	ToEmail        string `yaml:"to_email"`
	SubjectPrefix  string `yaml:"subject_prefix"`
}

// WebConfig represents the dashboard server configuration
type WebConfig struct {
	AuthHeader string `yaml:"auth_header"` // HTTP header containing user email (default: "oidc-email")
	DevMode    bool   `yaml:"dev_mode"`    // Bypass auth, use dev_user (for local development)
	DevUser    string `yaml:"dev_user"`    // Email to use in dev mode (default: "dev@localhost")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "", // Must be specified by user
		Cloud: CloudConfig{
			Location:  "us-central1",
			APIKeyEnv: "GOOGLE_API_KEY",
			AppName:   "adsvideo",
		},
		Models: ModelConfig{
			Agent:      "gemini-2.5-pro",
			Storyboard: "gemini-2.5-pro",
			Image:      "imagen-4.0-generate-preview-06-06",
			Video:      "veo-3.0-generate-001",
		},
		Render: RenderConfig{
			SceneSeconds:   8,
			SceneCount:     2,
			MaxVideoJobs:   4, // Two scenes plus retries
			MaxImageJobs:   3,
			MaxMergeJobs:   2,
			PollSeconds:    15, // Veo operations take minutes to settle
			MaxPollSeconds: 900,
		},
		Notify: NotifyConfig{
			Enabled:        false,
			SendGridKeyEnv: "SENDGRID_API_KEY",
			FromEmail:      "adsvideo@example.com",
			FromName:       "Ads Video Agent",
			SubjectPrefix:  "[adsvideo]",
		},
		Web: WebConfig{
			AuthHeader: "oidc-email",
			DevUser:    "dev@localhost",
		},
	}
}

// Load loads configuration from the specified path, falling back to defaults
func Load(configPath string) (*Config, error) {
	// If no path specified, use default location
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".config", "adsvideo", "config.yaml")
	}

	// Expand ~ in path
	configPath = expandPath(configPath)

	// Start with defaults
	cfg := DefaultConfig()

	// Try to load from file
	data, err := os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, return defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand ~ in data_dir if present
	cfg.DataDir = expandPath(cfg.DataDir)

	return cfg, nil
}

// expandPath expands ~ to home directory in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}

	return path
}

// EnsureDataDir creates the data directory if it doesn't exist
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// GetProject returns the GCP project, checking config first then environment
func (c *Config) GetProject() string {
	if c.Cloud.Project != "" {
		return c.Cloud.Project
	}
	return os.Getenv("GOOGLE_CLOUD_PROJECT")
}

// GetLocation returns the Vertex AI region
func (c *Config) GetLocation() string {
	if c.Cloud.Location != "" {
		return c.Cloud.Location
	}
	if loc := os.Getenv("GOOGLE_CLOUD_LOCATION"); loc != "" {
		return loc
	}
	return "us-central1"
}

// GetBucket returns the GCS bucket for generated assets
func (c *Config) GetBucket() string {
	if c.Cloud.Bucket != "" {
		return c.Cloud.Bucket
	}
	return os.Getenv("GCS_BUCKET_NAME")
}

// GetDatabase returns the Firestore database ID. Empty selects "(default)".
func (c *Config) GetDatabase() string {
	if c.Cloud.Database != "" {
		return c.Cloud.Database
	}
	if db := os.Getenv("FIRESTORE_DATABASE_ID"); db != "" {
		return db
	}
	return "(default)"
}

// UseVertex reports whether the Vertex AI backend should be used.
// GOOGLE_GENAI_USE_VERTEXAI follows the genai SDK convention: "1" or "true".
func (c *Config) UseVertex() bool {
	if c.Cloud.UseVertex != nil {
		return *c.Cloud.UseVertex
	}
	v := strings.ToLower(os.Getenv("GOOGLE_GENAI_USE_VERTEXAI"))
	return v == "1" || v == "true"
}

// GetAPIKey returns the Gemini API key for the non-Vertex backend
func (c *Config) GetAPIKey() string {
	if c.Cloud.APIKeyEnv != "" {
		return os.Getenv(c.Cloud.APIKeyEnv)
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// GetAppName returns the ADK application name used for sessions and the UI
func (c *Config) GetAppName() string {
	if c.Cloud.AppName != "" {
		return c.Cloud.AppName
	}
	if app := os.Getenv("APP_NAME"); app != "" {
		return app
	}
	return "adsvideo"
}

// GetServiceName returns the service identity, for logs and notifications
func (c *Config) GetServiceName() string {
	if c.Cloud.ServiceName != "" {
		return c.Cloud.ServiceName
	}
	if svc := os.Getenv("SERVICE_NAME"); svc != "" {
		return svc
	}
	return c.GetAppName()
}

// GetSendGridAPIKey returns the SendGrid API key, checking direct key first then env var
func (c *Config) GetSendGridAPIKey() string {
	if c.Notify.SendGridAPIKey != "" {
		return c.Notify.SendGridAPIKey
	}
	if c.Notify.SendGridKeyEnv != "" {
		return os.Getenv(c.Notify.SendGridKeyEnv)
	}
	return ""
}

// NotifyConfigured reports whether completion emails can be sent
func (c *Config) NotifyConfigured() bool {
	return c.Notify.Enabled && c.GetSendGridAPIKey() != "" && c.Notify.ToEmail != ""
}

// GetAuthHeader returns the configured auth header name
func (c *Config) GetAuthHeader() string {
	if c.Web.AuthHeader != "" {
		return c.Web.AuthHeader
	}
	return "oidc-email"
}

// GetDevUser returns the dev mode user email
func (c *Config) GetDevUser() string {
	if c.Web.DevUser != "" {
		return c.Web.DevUser
	}
	return "dev@localhost"
}

// GetStoryboardPrompt returns the storyboard agent instruction, either custom or default
func (c *Config) GetStoryboardPrompt() string {
	if c.Render.StoryboardPrompt != "" {
		return c.Render.StoryboardPrompt
	}
	return DefaultStoryboardPrompt
}

// GetProductionPrompt returns the production agent instruction, either custom or default
func (c *Config) GetProductionPrompt() string {
	if c.Render.ProductionPrompt != "" {
		return c.Render.ProductionPrompt
	}
	return DefaultProductionPrompt
}

// ProductionInstruction returns the production agent instruction with the
// scene parameters applied. Only the default prompt carries formatting verbs;
// a custom production_prompt is used verbatim, so overrides containing
// literal percent signs survive intact.
func (c *Config) ProductionInstruction() string {
	if c.Render.ProductionPrompt != "" {
		return c.Render.ProductionPrompt
	}
	return fmt.Sprintf(DefaultProductionPrompt, c.Render.SceneCount, c.Render.SceneSeconds)
}

// Validate checks that the cloud settings required by the tools are present
func (c *Config) Validate() error {
	if c.GetProject() == "" {
		return fmt.Errorf("GCP project must be set via config or GOOGLE_CLOUD_PROJECT")
	}
	if c.GetBucket() == "" {
		return fmt.Errorf("asset bucket must be set via config or GCS_BUCKET_NAME")
	}
	if !c.UseVertex() && c.GetAPIKey() == "" {
		return fmt.Errorf("API key not found in environment variable: %s", c.Cloud.APIKeyEnv)
	}
	return nil
}
