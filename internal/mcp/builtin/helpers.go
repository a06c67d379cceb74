package builtin

import (
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// GetArgs extracts the arguments map from a CallToolRequest.
// Missing arguments yield an empty map; any other non-object value is an
// error.
func GetArgs(req mcplib.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil {
		return map[string]any{}, nil
	}
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid arguments format")
	}
	return args, nil
}

// GetOptionalIntArg extracts an optional integer argument. JSON numbers and
// numeric strings are accepted; the default is returned when the argument
// is absent.
func GetOptionalIntArg(args map[string]any, name string, defaultVal int) (int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return defaultVal, nil
	}
	switch raw.(type) {
	case bool:
		return 0, fmt.Errorf("%s argument must be a number", name)
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s argument must be a number: %w", name, err)
	}
	return v, nil
}

// GetOptionalMapArg extracts an optional object argument.
func GetOptionalMapArg(args map[string]any, name string) (map[string]any, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s argument must be an object", name)
	}
	return m, nil
}
