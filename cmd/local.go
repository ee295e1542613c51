package cmd

import (
	"github.com/huangsam/commitlog/core"
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/gitlocal"
	"github.com/huangsam/commitlog/schema"
	"github.com/spf13/cobra"
)

// localCmd reads history from a repository on disk.
var localCmd = &cobra.Command{
	Use:   "local [repo-path]",
	Short: "Read the latest commits of a local repository.",
	Long: `Read the most recent commits reachable from HEAD of a local Git repository.

Each commit carries its hash, author, date, message, per-file line stats
and per-file unified diffs. Renames are detected. The path must be the
repository root; subdirectories are rejected.

Examples:
  # Show the last 10 commits of the current repository
  commitlog local

  # Show the last 5 commits of another repository, with diffs
  commitlog local ~/src/project -n 5 --diffs

  # Export the last 50 commits for a summarizer
  commitlog local -n 50 --output json --output-file history.json`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(schema.LocalSource, args)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, gitlocal.NewReader(), nil); err != nil {
			contract.LogFatal("Cannot read local history", err)
		}
	},
}
