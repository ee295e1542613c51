// Package cmd defines the command-line interface for commitlog.
package cmd

import (
	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("num-commits", "n", contract.DefaultNumCommits, "Number of most recent commits to read")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or csv or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Write output to this file instead of stdout (required for parquet)")
	rootCmd.PersistentFlags().Bool("diffs", false, "Print every file diff after the commit table")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent diff fetches in remote mode")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of remoteCmd to Viper
	remoteCmd.Flags().StringP("branch", "b", "", "Branch to read (defaults to default-branch)")
	remoteCmd.Flags().String("default-branch", contract.DefaultBranch, "Branch used when --branch is not given")
	remoteCmd.Flags().String("request-timeout", contract.DefaultRequestTimeout.String(), "Timeout for each GitHub API request")
	remoteCmd.Flags().Int("max-retries", contract.DefaultMaxRetries, "Retries for transient GitHub API failures (0 disables retrying)")
	remoteCmd.Flags().String("api-url", schema.DefaultAPIURL, "GitHub API base URL")
	if err := viper.BindPFlags(remoteCmd.Flags()); err != nil {
		contract.LogFatal("Error binding remote flags", err)
	}
}
