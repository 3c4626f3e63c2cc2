package tools

import (
	"fmt"
	"strings"
)

// UnknownToolError reports a dispatch against a name the registry never saw
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}

// InvalidArgumentsError reports arguments rejected by a tool's input schema.
// The executor is never invoked when this is returned.
type InvalidArgumentsError struct {
	Tool   string
	Issues []string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, strings.Join(e.Issues, "; "))
}
