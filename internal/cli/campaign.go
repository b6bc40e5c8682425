package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/perbu/adsvideo/internal/campaign"
)

// Run executes the campaign list command
func (c *CampaignListCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	store, err := cmdCtx.openCampaigns(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.ListDocuments(ctx, c.Collection)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", c.Collection, err)
	}

	if len(docs) == 0 {
		if !cmdCtx.Quiet {
			fmt.Printf("No documents in collection %q\n", c.Collection)
		}
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, doc := range docs {
		fmt.Printf("%s:\n", doc.ID)
		if err := enc.Encode(doc.Data); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the campaign get command
func (c *CampaignGetCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	store, err := cmdCtx.openCampaigns(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.ReadDocument(ctx, c.Collection, c.ID)
	if errors.Is(err, campaign.ErrNotFound) {
		return fmt.Errorf("document %s/%s not found", c.Collection, c.ID)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Run executes the campaign put command
func (c *CampaignPutCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	var data map[string]any
	if err := json.Unmarshal([]byte(c.Data), &data); err != nil {
		return fmt.Errorf("document data must be a JSON object: %w", err)
	}

	store, err := cmdCtx.openCampaigns(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	docID, err := store.StoreDocument(ctx, c.Collection, data, c.ID)
	if err != nil {
		return err
	}

	if !cmdCtx.Quiet {
		fmt.Printf("Stored %s/%s\n", c.Collection, docID)
	}
	return nil
}
