// Package builtin provides the builtin in-process MCP tools of circprog.
// Tools register with mcp.DefaultToolRegistry and render indicator frames
// without a terminal.
package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"circprog/internal/config"
	"circprog/internal/mcp"
	"circprog/internal/preview"
)

// Canvas size limits, in braille cells.
const maxCells = 200

func init() {
	mcp.DefaultToolRegistry.Register(
		frameTool("render_progress_frame",
			"Renders the progress indicator at a moment of its animation as braille text"),
		func(base *config.Config) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				res, err := simulate(base, req)
				if err != nil {
					return mcplib.NewToolResultError(err.Error()), nil
				}
				return mcplib.NewToolResultText(res.Canvas.String()), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		frameTool("describe_progress_frame",
			"Describes the progress indicator state and draw operations at a moment of its animation as JSON"),
		func(base *config.Config) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				res, err := simulate(base, req)
				if err != nil {
					return mcplib.NewToolResultError(err.Error()), nil
				}
				data, err := json.MarshalIndent(res.Summarize(), "", "  ")
				if err != nil {
					return nil, fmt.Errorf("failed to encode frame: %w", err)
				}
				return mcplib.NewToolResultText(string(data)), nil
			}
		},
	)
}

// frameTool declares the arguments shared by the frame tools.
func frameTool(name, description string) mcplib.Tool {
	return mcplib.NewTool(name,
		mcplib.WithDescription(description),
		mcplib.WithNumber("elapsed_ms",
			mcplib.Description("Milliseconds since the indicator was started. Default: 0"),
		),
		mcplib.WithNumber("stop_after_ms",
			mcplib.Description("Stop the indicator this many milliseconds after start (optional)"),
		),
		mcplib.WithNumber("progress",
			mcplib.Description("Progress percentage, 0 to 100, for determinate mode (optional)"),
		),
		mcplib.WithNumber("cols",
			mcplib.Description(fmt.Sprintf("Canvas width in characters. Default: %d", preview.DefaultCols)),
		),
		mcplib.WithNumber("rows",
			mcplib.Description(fmt.Sprintf("Canvas height in characters. Default: %d", preview.DefaultRows)),
		),
		mcplib.WithObject("options",
			mcplib.Description("Indicator options overriding the server configuration, e.g. {\"mode\": \"determinate\", \"strokeColors\": [\"#FF0000\"]}"),
		),
	)
}

// simulate parses the frame arguments and renders the requested frame.
func simulate(base *config.Config, req mcplib.CallToolRequest) (*preview.Result, error) {
	args, err := GetArgs(req)
	if err != nil {
		return nil, err
	}

	cfg := base.Clone()
	overrides, err := GetOptionalMapArg(args, "options")
	if err != nil {
		return nil, err
	}
	if err := config.ValidateOptions(overrides); err != nil {
		return nil, err
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}

	var opts preview.Options
	elapsed, err := GetOptionalIntArg(args, "elapsed_ms", 0)
	if err != nil {
		return nil, err
	}
	stopAfter, err := GetOptionalIntArg(args, "stop_after_ms", 0)
	if err != nil {
		return nil, err
	}
	if limit := preview.MaxElapsed.Milliseconds(); int64(elapsed) > limit || int64(stopAfter) > limit {
		return nil, fmt.Errorf("elapsed_ms and stop_after_ms must not exceed %d", limit)
	}
	opts.Elapsed = time.Duration(elapsed) * time.Millisecond
	opts.StopAfter = time.Duration(stopAfter) * time.Millisecond

	if _, ok := args["progress"]; ok {
		p, err := GetOptionalIntArg(args, "progress", 0)
		if err != nil {
			return nil, err
		}
		opts.Progress = &p
	}

	if opts.Cols, err = GetOptionalIntArg(args, "cols", preview.DefaultCols); err != nil {
		return nil, err
	}
	if opts.Rows, err = GetOptionalIntArg(args, "rows", preview.DefaultRows); err != nil {
		return nil, err
	}
	if opts.Cols > maxCells || opts.Rows > maxCells {
		return nil, fmt.Errorf("canvas is limited to %dx%d characters", maxCells, maxCells)
	}

	return preview.Simulate(cfg, opts)
}
