package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/perbu/adsvideo/internal/config"
)

// Run executes the show-prompts command, displaying the agent instructions
// in use (custom or default)
func (c *ShowPromptsCmd) Run(cmdCtx *Context) error {
	return c.render(cmdCtx, os.Stdout)
}

func (c *ShowPromptsCmd) render(cmdCtx *Context, w io.Writer) error {
	storyboardPrompt := cmdCtx.Config.GetStoryboardPrompt()
	productionPrompt := cmdCtx.Config.GetProductionPrompt()

	isStoryboardCustom := cmdCtx.Config.Render.StoryboardPrompt != ""
	isProductionCustom := cmdCtx.Config.Render.ProductionPrompt != ""

	fmt.Fprintln(w, "Current Agent Instructions")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Storyboard Agent Instruction:")
	if isStoryboardCustom && !c.Defaults {
		fmt.Fprintln(w, "  Source: Custom (from config)")
	} else if c.Defaults {
		fmt.Fprintln(w, "  Source: Default")
		storyboardPrompt = config.DefaultStoryboardPrompt
	} else {
		fmt.Fprintln(w, "  Source: Default (no custom instruction configured)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, indentText(storyboardPrompt, "  "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Production Agent Instruction:")
	if isProductionCustom && !c.Defaults {
		fmt.Fprintln(w, "  Source: Custom (from config)")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Note: Custom instructions are used verbatim")
	} else {
		if c.Defaults {
			fmt.Fprintln(w, "  Source: Default")
			productionPrompt = config.DefaultProductionPrompt
		} else {
			fmt.Fprintln(w, "  Source: Default (no custom instruction configured)")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Note: The numeric placeholders are filled with scene count and scene seconds at runtime")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, indentText(productionPrompt, "  "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Storyboard model: %s\n", cmdCtx.Config.Models.Storyboard)
	fmt.Fprintf(w, "  Image model:      %s\n", cmdCtx.Config.Models.Image)
	fmt.Fprintf(w, "  Video model:      %s\n", cmdCtx.Config.Models.Video)
	fmt.Fprintf(w, "  Scenes:           %d x %ds\n", cmdCtx.Config.Render.SceneCount, cmdCtx.Config.Render.SceneSeconds)
	fmt.Fprintln(w)

	if !isStoryboardCustom && !isProductionCustom {
		fmt.Fprintln(w, "To customize instructions, add to your config.yaml:")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  render:")
		fmt.Fprintln(w, "    storyboard_prompt: |")
		fmt.Fprintln(w, "      Your custom storyboard instruction here...")
		fmt.Fprintln(w, "    production_prompt: |")
		fmt.Fprintln(w, "      Your custom production instruction here...")
		fmt.Fprintln(w)
	}

	return nil
}
