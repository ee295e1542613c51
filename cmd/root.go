package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/commitlog/internal/contract"
	"github.com/huangsam/commitlog/internal/logger"
	"github.com/huangsam/commitlog/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
// Execute replaces it with a signal-aware context.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "commitlog",
	Short:              "Normalize recent Git commit history into structured records.",
	Long:               `Commitlog reads the latest commits of a local repository or a GitHub repository and emits them with per-file stats and diffs.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in the .env file, config file and ENV variables if set.
func initConfig() {
	// A missing .env file is the common case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Cannot load .env file", err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".commitlog") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("COMMITLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("num-commits", contract.DefaultNumCommits)
	viper.SetDefault("default-branch", contract.DefaultBranch)
	viper.SetDefault("request-timeout", contract.DefaultRequestTimeout.String())
	viper.SetDefault("max-retries", contract.DefaultMaxRetries)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("api-url", schema.DefaultAPIURL)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "warn")
	viper.SetDefault("log-format", "text")
}

// sharedSetup unmarshals config, runs validation and installs the logger.
func sharedSetup(source schema.SourceMode, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return contract.WrapError(err, contract.InvalidInput, "error reading config file")
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return contract.WrapError(err, contract.InvalidInput, "unable to unmarshal config")
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.Source = string(source)
	input.TargetStr = ""
	if len(args) == 1 {
		input.TargetStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	logger.Debugf("config resolved: source=%s n=%d output=%s workers=%d", cfg.Source, cfg.NumCommits, cfg.Output, cfg.History.Workers)
	return nil
}

// Execute runs the root command, canceling in-flight work on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}
