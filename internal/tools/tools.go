// Package tools implements the ADK tools the production agent calls to
// generate, assemble, and catalog advertising creative assets.
package tools

import (
	"encoding/json"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

// functionTool is an interface for tools that provide function declarations
type functionTool interface {
	tool.Tool
	Declaration() *genai.FunctionDeclaration
}

// addFunctionTool adds a function tool to the LLM request
func addFunctionTool(req *model.LLMRequest, t functionTool) error {
	if req.Config == nil {
		req.Config = &genai.GenerateContentConfig{}
	}

	decl := t.Declaration()
	if decl == nil {
		return fmt.Errorf("tool %q has no declaration", t.Name())
	}

	// Add to tools map for execution lookup
	if req.Tools == nil {
		req.Tools = make(map[string]any)
	}
	req.Tools[t.Name()] = t

	// Add function declaration to config
	req.Config.Tools = append(req.Config.Tools, &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{decl},
	})

	return nil
}

// parseArgs normalizes tool arguments into a map. The ADK delivers them as
// map[string]any, but some models hand back a JSON-encoded string.
func parseArgs(args any) (map[string]any, bool) {
	if argsMap, ok := args.(map[string]any); ok {
		return argsMap, true
	}
	if argsStr, ok := args.(string); ok {
		var argsMap map[string]any
		if err := json.Unmarshal([]byte(argsStr), &argsMap); err == nil {
			return argsMap, true
		}
	}
	return nil, false
}

// stringArg extracts a required string argument
func stringArg(argsMap map[string]any, key string) (string, bool) {
	v, ok := argsMap[key].(string)
	return v, ok
}

// intArg extracts an optional integer argument; JSON numbers arrive as float64
func intArg(argsMap map[string]any, key string) (int, bool) {
	switch v := argsMap[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// stringSliceArg extracts a list-of-strings argument; JSON arrays arrive as
// []any. Non-string elements are skipped.
func stringSliceArg(argsMap map[string]any, key string) ([]string, bool) {
	items, ok := argsMap[key].([]any)
	if !ok {
		if strs, ok := argsMap[key].([]string); ok {
			return strs, true
		}
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
