// Package tools manages the catalog of AI tools: registration, input schema
// validation, and dispatch to the executor behind each tool.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/xeipuuv/gojsonschema"

	"github.com/voyago/tripdesk/log"
)

// ToolPlugin defines the interface for plugins that provide tools
type ToolPlugin interface {
	RegisterTools(gk *genkit.Genkit, registry *Registry)
}

// ToolExecutor is the function signature for executing a tool
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry manages the registration and dispatch of AI tools. Arguments are
// validated against the tool's declared input schema before the executor runs.
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
	schemas   map[string]*gojsonschema.Schema
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
		schemas:   make(map[string]*gojsonschema.Schema),
	}
}

// Register adds a tool to the registry with its executor. A tool whose input
// schema fails to compile is registered without validation.
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) {
	def := tool.Definition()
	r.tools = append(r.tools, tool)
	r.executors[def.Name] = executor

	raw, err := json.Marshal(def.InputSchema)
	if err != nil {
		log.Warnf(context.Background(), "tool %s: cannot marshal input schema: %v", def.Name, err)
		return
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		log.Warnf(context.Background(), "tool %s: cannot compile input schema: %v", def.Name, err)
		return
	}
	r.schemas[def.Name] = schema
}

// GetTools returns all registered tools
func (r *Registry) GetTools() []ai.Tool {
	return r.tools
}

// Lookup returns the definition of a registered tool
func (r *Registry) Lookup(name string) (*ai.ToolDefinition, bool) {
	for _, tool := range r.tools {
		if tool.Definition().Name == name {
			return tool.Definition(), true
		}
	}
	return nil, false
}

// ExecuteTool validates args against the tool's input schema and runs the
// executor. Schema violations never reach the executor.
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	if schema, ok := r.schemas[name]; ok {
		result, err := schema.Validate(gojsonschema.NewGoLoader(args))
		if err != nil {
			return nil, fmt.Errorf("validating arguments for tool %s: %w", name, err)
		}
		if !result.Valid() {
			issues := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				issues = append(issues, desc.String())
			}
			return nil, &InvalidArgumentsError{Tool: name, Issues: issues}
		}
	}

	return executor(ctx, args)
}
