// Package mcp exposes circprog's previews as MCP (Model Context Protocol)
// tools, served in-process with github.com/mark3labs/mcp-go.
package mcp

import (
	"context"
	"sort"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"circprog/internal/config"
)

// ToolHandler is the function signature for MCP tool handlers.
type ToolHandler func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error)

// ToolHandlerFactory creates a tool handler bound to the base configuration
// that tool arguments are applied on top of.
type ToolHandlerFactory func(base *config.Config) ToolHandler

// ToolRegistration holds a tool definition and its handler factory.
type ToolRegistration struct {
	Tool           mcplib.Tool
	HandlerFactory ToolHandlerFactory
}

// ToolRegistry holds all available builtin tools.
// Builtin tools register themselves using init() functions.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]ToolRegistration
}

// NewToolRegistry creates a new empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]ToolRegistration),
	}
}

// Register adds a builtin tool to the registry.
// If a tool with the same name already exists, it will be replaced.
func (r *ToolRegistry) Register(tool mcplib.Tool, handlerFactory ToolHandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = ToolRegistration{
		Tool:           tool,
		HandlerFactory: handlerFactory,
	}
}

// Get returns a tool registration by name.
func (r *ToolRegistry) Get(name string) (ToolRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	return reg, ok
}

// All returns all registered tool registrations, sorted by name.
func (r *ToolRegistry) All() []ToolRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]ToolRegistration, 0, len(r.tools))
	for _, reg := range r.tools {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Tool.Name < regs[j].Tool.Name })
	return regs
}

// Names returns the names of all registered tools, sorted.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// DefaultToolRegistry is the global tool registry instance.
// Builtin tools should register themselves here using init() functions.
var DefaultToolRegistry = NewToolRegistry()

// Setup adds every tool of reg to srv. A nil base means the default
// configuration.
func Setup(srv *server.MCPServer, reg *ToolRegistry, base *config.Config) {
	if base == nil {
		base = config.Default()
	}
	for _, r := range reg.All() {
		handler := r.HandlerFactory(base.Clone())
		srv.AddTool(r.Tool, func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			return handler(ctx, req)
		})
	}
}

// NewServer creates an MCP server hosting the tools of DefaultToolRegistry.
func NewServer(version string, base *config.Config) *server.MCPServer {
	srv := server.NewMCPServer("circprog", version, server.WithToolCapabilities(false))
	Setup(srv, DefaultToolRegistry, base)
	return srv
}

// ServeStdio serves srv over standard input and output until the input is
// closed.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}
