package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"text/tabwriter"

	"github.com/perbu/adsvideo/internal/gcs"
)

// Run executes the asset ls command
func (c *AssetLsCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	store, err := cmdCtx.openAssets(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	assets, err := store.List(ctx, c.Prefix)
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if len(assets) == 0 {
		if !cmdCtx.Quiet {
			fmt.Println("No assets found")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "URI\tSIZE\tUPDATED")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			store.URI(a.Name), formatSize(a.Size), a.Updated.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// Run executes the asset fetch command
func (c *AssetFetchCmd) Run(cmdCtx *Context) error {
	ctx := context.Background()

	dest := c.Dest
	if dest == "" {
		_, object, err := gcs.ParseURI(c.URI)
		if err != nil {
			return err
		}
		dest = path.Base(object)
	}

	store, err := cmdCtx.openAssets(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Download(ctx, c.URI, dest); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", c.URI, err)
	}

	if !cmdCtx.Quiet {
		fmt.Printf("Fetched %s -> %s\n", c.URI, dest)
	}
	return nil
}

// formatSize renders a byte count in human units
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
