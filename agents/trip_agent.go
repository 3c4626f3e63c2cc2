package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voyago/tripdesk/log"
	"github.com/voyago/tripdesk/plugins"
	"github.com/voyago/tripdesk/tools"
)

const systemPromptTemplate = `You are a helpful travel assistant. You have access to the following tools:

%s

Protocol:
1. To call a tool, output ONLY a JSON object in this format: {"tool": "toolName", "input": {...}}
2. Do not add any text before or after the JSON when calling a tool.
3. When you receive a Tool Result, use it to proceed.
4. If you have the final answer, output the text directly (no JSON).

Current Date: %s
User Query: %s`

const defaultMaxSteps = 12

// ToolCallResult stores the result of one tool call
type ToolCallResult struct {
	ToolName  string      `json:"tool_name"`
	Input     interface{} `json:"input"`
	Output    interface{} `json:"output"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// TripData accumulates everything the agent gathered while answering
type TripData struct {
	Query      string           `json:"query"`
	Flights    []interface{}    `json:"flights,omitempty"`
	Hotels     []interface{}    `json:"hotels,omitempty"`
	Weather    []interface{}    `json:"weather,omitempty"`
	RawResults []ToolCallResult `json:"raw_results"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ToJSON exports the trip data as JSON
func (td *TripData) ToJSON() ([]byte, error) {
	return json.MarshalIndent(td, "", "  ")
}

// TripAgent answers free-form travel questions by looping an LLM over the
// tool registry until it produces a final text answer. The loop is bounded;
// a model that never stops calling tools gets cut off. The agent itself
// holds no per-conversation state, so one instance can serve concurrent
// requests.
type TripAgent struct {
	llm      plugins.LLMClient
	registry *tools.Registry
	maxSteps int
}

// NewTripAgent creates an agent over a registry and a language model
func NewTripAgent(registry *tools.Registry, llm plugins.LLMClient, maxSteps int) (*TripAgent, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	return &TripAgent{llm: llm, registry: registry, maxSteps: maxSteps}, nil
}

// toolCatalog renders every registered tool for the system prompt
func (a *TripAgent) toolCatalog() string {
	var sb strings.Builder
	for _, t := range a.registry.GetTools() {
		def := t.Definition()
		schemaBytes, _ := json.Marshal(def.InputSchema)
		fmt.Fprintf(&sb, "Tool: %s\nDescription: %s\nInput Schema: %s\n\n", def.Name, def.Description, string(schemaBytes))
	}
	return sb.String()
}

// Run answers a query, calling tools as the model asks for them, and
// returns the answer alongside the data the tools gathered on the way. Tool
// failures, including unknown tools and rejected arguments, are reported
// back to the model so it can adjust rather than aborting the conversation.
func (a *TripAgent) Run(ctx context.Context, query string) (string, *TripData, error) {
	tripData := &TripData{Query: query, CreatedAt: time.Now()}

	history := fmt.Sprintf(systemPromptTemplate, a.toolCatalog(), time.Now().Format(time.RFC3339), query)

	for step := 0; step < a.maxSteps; step++ {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		default:
		}

		log.Debugf(ctx, "agent step %d/%d", step+1, a.maxSteps)

		resp, err := a.llm.GenerateContent(ctx, history)
		if err != nil {
			return "", nil, fmt.Errorf("llm generation failed: %w", err)
		}

		toolCall, ok := parseToolCall(resp)
		if !ok {
			log.Debugf(ctx, "agent final answer after %d steps", step+1)
			return resp, tripData, nil
		}

		// The model's own request joins the history so it remembers
		// asking for the tool.
		history += fmt.Sprintf("\nModel Response: %s\n", resp)

		log.Infof(ctx, "agent calling tool %s", toolCall.Tool)
		out, toolErr := a.registry.ExecuteTool(ctx, toolCall.Tool, toolCall.Input)

		result := ToolCallResult{ToolName: toolCall.Tool, Input: toolCall.Input, Timestamp: time.Now()}
		if toolErr != nil {
			log.Warnf(ctx, "tool %s failed: %v", toolCall.Tool, toolErr)
			result.Error = toolErr.Error()
			history += fmt.Sprintf("\nTool '%s' Error: %v\n", toolCall.Tool, toolErr)
		} else {
			result.Output = out
			history += fmt.Sprintf("\nTool '%s' Output: %v\n", toolCall.Tool, out)

			switch toolCall.Tool {
			case "flights_tool":
				tripData.Flights = append(tripData.Flights, out)
			case "hotels_tool":
				tripData.Hotels = append(tripData.Hotels, out)
			case "weather_tool":
				tripData.Weather = append(tripData.Weather, out)
			}
		}
		tripData.RawResults = append(tripData.RawResults, result)
	}

	return "", nil, fmt.Errorf("max steps (%d) exceeded", a.maxSteps)
}

type toolCall struct {
	Tool  string                 `json:"tool"`
	Input map[string]interface{} `json:"input"`
}

// parseToolCall scans a model response for a tool-call JSON object. The
// first '{' and last '}' bound the candidate, which tolerates markdown
// fences and preambles.
func parseToolCall(resp string) (toolCall, bool) {
	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start == -1 || end == -1 || end <= start {
		return toolCall{}, false
	}

	var call toolCall
	if err := json.Unmarshal([]byte(resp[start:end+1]), &call); err != nil {
		return toolCall{}, false
	}
	if call.Tool == "" {
		return toolCall{}, false
	}
	return call, true
}
