package cmd

import (
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/github"
	"github.com/huangsam/commitlog/internal/gitlocal"
	"github.com/huangsam/commitlog/internal/mcp"
	"github.com/huangsam/commitlog/schema"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the commitlog MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents read normalized commit histories via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Tool calls choose their own source; the flags only provide defaults.
		// Logs go to stderr so stdio stays reserved for the protocol.
		return sharedSetup(schema.LocalSource, nil)
	},
	Run: func(_ *cobra.Command, _ []string) {
		client := github.NewClient(cfg.History, version)
		if err := mcp.StartMCPServer(rootCtx, cfg, gitlocal.NewReader(), client, version); err != nil {
			contract.LogFatal("Cannot run MCP server", err)
		}
	},
}
