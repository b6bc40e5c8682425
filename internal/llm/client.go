// Package llm wraps the genai client and hands out ADK model handles.
package llm

import (
	"context"
	"fmt"

	"github.com/perbu/adsvideo/internal/config"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

type Client struct {
	genaiClient *genai.Client
	clientCfg   *genai.ClientConfig
	model       string
}

// NewClient creates a new LLM client based on config. The backend is either
// Vertex AI (project/location) or the Gemini API (key), mirroring the
// GOOGLE_GENAI_USE_VERTEXAI toggle.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientCfg, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		genaiClient: client,
		clientCfg:   clientCfg,
		model:       cfg.Models.Agent,
	}, nil
}

// clientConfig builds the genai client configuration for the selected backend
func clientConfig(cfg *config.Config) (*genai.ClientConfig, error) {
	if cfg.UseVertex() {
		project := cfg.GetProject()
		if project == "" {
			return nil, fmt.Errorf("vertex backend requires GOOGLE_CLOUD_PROJECT")
		}
		return &genai.ClientConfig{
			Project:  project,
			Location: cfg.GetLocation(),
			Backend:  genai.BackendVertexAI,
		}, nil
	}

	apiKey := cfg.GetAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.Cloud.APIKeyEnv)
	}
	return &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, nil
}

// Close is a no-op for genai.Client (no cleanup needed)
func (c *Client) Close() error {
	return nil
}

// GenAI exposes the underlying genai client for the generation tools
func (c *Client) GenAI() *genai.Client {
	return c.genaiClient
}

// GeminiModel returns a model.LLM instance for use with ADK agents
func (c *Client) GeminiModel(ctx context.Context, name string) (model.LLM, error) {
	if name == "" {
		name = c.model
	}
	llmModel, err := gemini.NewModel(ctx, name, c.clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini model: %w", err)
	}
	return llmModel, nil
}
