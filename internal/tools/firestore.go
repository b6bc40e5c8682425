package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/perbu/adsvideo/internal/campaign"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// StoreCampaignDataTool writes structured data (products, campaigns, ad tags)
// into a Firestore collection.
type StoreCampaignDataTool struct {
	store *campaign.Store
}

// NewStoreCampaignDataTool creates a new StoreCampaignDataTool
func NewStoreCampaignDataTool(store *campaign.Store) *StoreCampaignDataTool {
	return &StoreCampaignDataTool{store: store}
}

// Name returns the tool name
func (t *StoreCampaignDataTool) Name() string {
	return "store_campaign_data"
}

// Description returns the tool description
func (t *StoreCampaignDataTool) Description() string {
	return "Stores structured data (like product details, ad campaign tags, or customer feedback) as a document in a campaign database collection. Provide a specific document ID to overwrite, or omit it to have one generated automatically."
}

// IsLongRunning returns false as this is a quick operation
func (t *StoreCampaignDataTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *StoreCampaignDataTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *StoreCampaignDataTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"collection_name": {
					Type:        "string",
					Description: "The collection for the data (e.g., 'products', 'ad_campaigns', 'ad_tags')",
				},
				"document_data": {
					Type:        "object",
					Description: "The data to store as a new document, as key-value pairs",
				},
				"document_id": {
					Type:        "string",
					Description: "Optional: a specific ID for the document. If not provided, one is generated.",
				},
			},
			Required: []string{"collection_name", "document_data"},
		},
	}
}

// Run executes the tool
func (t *StoreCampaignDataTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	collection, ok := stringArg(argsMap, "collection_name")
	if !ok {
		return map[string]any{"error": "collection_name must be a string"}, nil
	}

	data, ok := argsMap["document_data"].(map[string]any)
	if !ok {
		return map[string]any{"error": "document_data must be an object of key-value pairs"}, nil
	}

	docID, _ := stringArg(argsMap, "document_id")

	slog.Debug("tool call", "tool", "store_campaign_data", "collection", collection, "doc_id", docID)

	id, err := t.store.StoreDocument(ctx, collection, data, docID)
	if err != nil {
		slog.Debug("campaign store error", "collection", collection, "error", err)
		return map[string]any{
			"error": fmt.Sprintf("Error storing data: %v", err),
		}, nil
	}

	slog.Info("campaign data stored", "collection", collection, "doc_id", id)

	return map[string]any{
		"collection":  collection,
		"document_id": id,
		"message":     fmt.Sprintf("Data successfully stored in collection %q with document ID %q.", collection, id),
	}, nil
}

// ReadCampaignDataTool reads one or all documents from a Firestore collection.
type ReadCampaignDataTool struct {
	store *campaign.Store
}

// NewReadCampaignDataTool creates a new ReadCampaignDataTool
func NewReadCampaignDataTool(store *campaign.Store) *ReadCampaignDataTool {
	return &ReadCampaignDataTool{store: store}
}

// Name returns the tool name
func (t *ReadCampaignDataTool) Name() string {
	return "read_campaign_data"
}

// Description returns the tool description
func (t *ReadCampaignDataTool) Description() string {
	return "Reads documents from a campaign database collection. With a document ID it reads that document; without one it reads every document in the collection."
}

// IsLongRunning returns false as this is a quick operation
func (t *ReadCampaignDataTool) IsLongRunning() bool {
	return false
}

// ProcessRequest adds this tool to the LLM request
func (t *ReadCampaignDataTool) ProcessRequest(ctx tool.Context, req *model.LLMRequest) error {
	return addFunctionTool(req, t)
}

// Declaration returns the function declaration for the tool
func (t *ReadCampaignDataTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"collection_name": {
					Type:        "string",
					Description: "The collection to read from",
				},
				"document_id": {
					Type:        "string",
					Description: "Optional: the ID of a specific document to read",
				},
			},
			Required: []string{"collection_name"},
		},
	}
}

// Run executes the tool
func (t *ReadCampaignDataTool) Run(ctx tool.Context, args any) (map[string]any, error) {
	argsMap, ok := parseArgs(args)
	if !ok {
		return map[string]any{"error": "invalid arguments format"}, nil
	}

	collection, ok := stringArg(argsMap, "collection_name")
	if !ok {
		return map[string]any{"error": "collection_name must be a string"}, nil
	}

	docID, _ := stringArg(argsMap, "document_id")

	slog.Debug("tool call", "tool", "read_campaign_data", "collection", collection, "doc_id", docID)

	if docID != "" {
		data, err := t.store.ReadDocument(ctx, collection, docID)
		if errors.Is(err, campaign.ErrNotFound) {
			return map[string]any{
				"message": fmt.Sprintf("Document %q not found in collection %q.", docID, collection),
			}, nil
		}
		if err != nil {
			return map[string]any{
				"error": fmt.Sprintf("Error reading data: %v", err),
			}, nil
		}
		return map[string]any{
			"collection":  collection,
			"document_id": docID,
			"data":        data,
		}, nil
	}

	docs, err := t.store.ListDocuments(ctx, collection)
	if err != nil {
		return map[string]any{
			"error": fmt.Sprintf("Error reading data: %v", err),
		}, nil
	}
	if len(docs) == 0 {
		return map[string]any{
			"message": fmt.Sprintf("No documents found in collection %q.", collection),
		}, nil
	}

	// Flatten to a JSON-friendly list for the model
	results := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		results = append(results, map[string]any{"id": doc.ID, "data": doc.Data})
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return map[string]any{
			"error": fmt.Sprintf("Error encoding documents: %v", err),
		}, nil
	}

	return map[string]any{
		"collection": collection,
		"count":      len(docs),
		"documents":  json.RawMessage(encoded),
	}, nil
}
