package cmd

import (
	"github.com/huangsam/commitlog/core"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/github"
	"github.com/huangsam/commitlog/schema"
	"github.com/spf13/cobra"
)

// remoteCmd reads history from the GitHub API.
var remoteCmd = &cobra.Command{
	Use:   "remote <github-url>",
	Short: "Read the latest commits of a GitHub repository.",
	Long: `Read the most recent commits of a branch through the GitHub REST API.

The commit listing is fetched first, then every commit's diff is fetched
concurrently (see --workers). Use --api-url for GitHub Enterprise hosts
and --max-retries to retry transient failures.

Examples:
  # Show the last 10 commits on main
  commitlog remote https://github.com/owner/repo

  # Read a feature branch with retries enabled
  commitlog remote https://github.com/owner/repo -b feature --max-retries 3

  # Export to Parquet (writes history.parquet and history_diffs.parquet)
  commitlog remote https://github.com/owner/repo -n 30 -o parquet --output-file history.parquet`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(schema.RemoteSource, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		client := github.NewClient(cfg.History, version)
		if err := core.ExecuteHistory(rootCtx, cfg, nil, client); err != nil {
			contract.LogFatal("Cannot read remote history", err)
		}
	},
}
