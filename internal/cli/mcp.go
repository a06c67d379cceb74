package cli

import (
	"github.com/spf13/cobra"

	"circprog/internal/mcp"
	_ "circprog/internal/mcp/builtin" // registers the frame tools
)

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the frame tools over MCP on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			log := a.newLogger(cmd)
			log.WithFields(map[string]any{"tools": mcp.DefaultToolRegistry.Names()}).Debug("serving mcp")
			return mcp.ServeStdio(mcp.NewServer(a.version, cfg))
		},
	}
}
