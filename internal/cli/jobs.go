package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/perbu/adsvideo/internal/db"
)

// Run executes the job list command
func (c *JobListCmd) Run(cmdCtx *Context) error {
	jobs, err := cmdCtx.DB.ListRenderJobs(c.Status, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list render jobs: %w", err)
	}

	if len(jobs) == 0 {
		if !cmdCtx.Quiet {
			fmt.Println("No render jobs found")
		}
		return nil
	}

	switch c.Format {
	case "json":
		return outputJobsJSON(jobs)
	case "table":
		return outputJobsTable(jobs)
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
}

func outputJobsTable(jobs []*db.RenderJob) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRODUCT\tFINAL\tCREATED")
	for _, job := range jobs {
		final := "-"
		if job.FinalURI.Valid {
			final = job.FinalURI.String
		}
		product := job.Product
		if len(product) > 40 {
			product = product[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			job.ID, job.Status, product, final, job.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func outputJobsJSON(jobs []*db.RenderJob) error {
	type jobOut struct {
		ID        int64  `json:"id"`
		Product   string `json:"product"`
		Tags      string `json:"tags,omitempty"`
		Status    string `json:"status"`
		FinalURI  string `json:"final_uri,omitempty"`
		Error     string `json:"error,omitempty"`
		CreatedAt string `json:"created_at"`
	}

	out := make([]jobOut, 0, len(jobs))
	for _, job := range jobs {
		j := jobOut{
			ID:        job.ID,
			Product:   job.Product,
			Tags:      job.Tags,
			Status:    job.Status,
			CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if job.FinalURI.Valid {
			j.FinalURI = job.FinalURI.String
		}
		if job.Error.Valid {
			j.Error = job.Error.String
		}
		out = append(out, j)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Run executes the job show command
func (c *JobShowCmd) Run(cmdCtx *Context) error {
	job, err := cmdCtx.DB.GetRenderJob(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load render job %d: %w", c.ID, err)
	}

	fmt.Printf("Render job #%d\n", job.ID)
	fmt.Printf("  Product:   %s\n", job.Product)
	if job.Tags != "" {
		fmt.Printf("  Tags:      %s\n", strings.ReplaceAll(job.Tags, ",", ", "))
	}
	fmt.Printf("  Status:    %s\n", job.Status)
	fmt.Printf("  Created:   %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))
	if job.StartedAt.Valid {
		fmt.Printf("  Started:   %s\n", job.StartedAt.Time.Format("2006-01-02 15:04:05"))
	}
	if job.CompletedAt.Valid {
		fmt.Printf("  Completed: %s\n", job.CompletedAt.Time.Format("2006-01-02 15:04:05"))
	}
	if job.Error.Valid {
		fmt.Printf("  Error:     %s\n", job.Error.String)
	}

	if job.ImageURI.Valid || job.FinalURI.Valid {
		fmt.Println("\nAssets:")
		if job.ImageURI.Valid {
			fmt.Printf("  First frame: %s\n", job.ImageURI.String)
		}
		if job.SceneURIs.Valid && job.SceneURIs.String != "" {
			var uris []string
			if err := json.Unmarshal([]byte(job.SceneURIs.String), &uris); err == nil {
				for i, uri := range uris {
					fmt.Printf("  Scene %d:     %s\n", i+1, uri)
				}
			}
		}
		if job.FinalURI.Valid {
			fmt.Printf("  Final video: %s\n", job.FinalURI.String)
		}
		if job.TagDocID.Valid {
			fmt.Printf("  Ad tags doc: %s\n", job.TagDocID.String)
		}
	}

	if job.Storyboard.Valid && job.Storyboard.String != "" {
		fmt.Println("\nStoryboard:")
		fmt.Println(indentText(job.Storyboard.String, "  "))
	}

	return nil
}

// indentText adds indentation to each line of text
func indentText(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
