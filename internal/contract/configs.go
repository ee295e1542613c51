package contract

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/commitlog/schema"
)

// Default values for configuration.
const (
	DefaultNumCommits     = 10
	DefaultBranch         = "main"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 0
	MaxRetriesLimit       = 10
)

// DefaultWorkers is the default number of concurrent detail fetches.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the date representation used for local commits.
var DateTimeFormat = time.RFC3339

// HistoryConfig holds the settings of the acquisition paths. It is passed
// explicitly to whatever needs it instead of living in package state.
type HistoryConfig struct {
	DefaultBranch  string        // Branch used by remote mode when none is given
	RequestTimeout time.Duration // Per-request timeout for remote calls
	MaxRetries     int           // Retries for transient remote failures (0 = fail fast)
	APIURL         string        // Base URL of the GitHub REST API
	Workers        int           // Concurrent detail fetches
}

// DefaultHistoryConfig returns the settings used when nothing is configured.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		DefaultBranch:  DefaultBranch,
		RequestTimeout: DefaultRequestTimeout,
		MaxRetries:     DefaultMaxRetries,
		APIURL:         schema.DefaultAPIURL,
		Workers:        DefaultWorkers,
	}
}

// Config holds the runtime configuration for a history run.
// This struct is the "final, validated" config.
type Config struct {
	Source     schema.SourceMode
	RepoPath   string // Absolute path, local mode only
	RepoURL    string // Raw repository URL, remote mode only
	NumCommits int
	Branch     string // Explicit branch override; empty means History.DefaultBranch

	History HistoryConfig

	Output     schema.OutputMode
	OutputFile string
	ShowDiffs  bool
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	LogLevel  string
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually by the subcommand, so no tag
	Source    string
	TargetStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	NumCommits     int    `mapstructure:"num-commits"`
	DefaultBranch  string `mapstructure:"default-branch"`
	RequestTimeout string `mapstructure:"request-timeout"`
	MaxRetries     int    `mapstructure:"max-retries"`
	Workers        int    `mapstructure:"workers"`
	APIURL         string `mapstructure:"api-url"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Diffs          bool   `mapstructure:"diffs"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	LogLevel       string `mapstructure:"log-level"`
	LogFormat      string `mapstructure:"log-format"`

	// --- Fields from remoteCmd.Flags() ---
	Branch string `mapstructure:"branch"`
}

// ResolvedBranch returns the branch remote mode should read.
func (c *Config) ResolvedBranch() string {
	if c.Branch != "" {
		return c.Branch
	}
	if c.History.DefaultBranch != "" {
		return c.History.DefaultBranch
	}
	return DefaultBranch
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every failure is an InvalidInput error.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processHistoryConfig(cfg, input); err != nil {
		return err
	}
	return resolveTarget(cfg, input)
}

// validateSimpleInputs processes and validates the output and logging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.ShowDiffs = input.Diffs
	cfg.Width = input.Width
	cfg.LogLevel = strings.ToLower(input.LogLevel)
	cfg.LogFormat = strings.ToLower(input.LogFormat)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return WrapError(err, InvalidInput, "invalid --color value")
	}
	cfg.UseColors = colors

	if input.NumCommits <= 0 {
		return NewError(InvalidInput, "num-commits must be greater than 0 (received %d)", input.NumCommits)
	}
	cfg.NumCommits = input.NumCommits

	if input.Width < 0 {
		return NewError(InvalidInput, "width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return NewError(InvalidInput, "invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return NewError(InvalidInput, "parquet output requires --output-file")
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return NewError(InvalidInput, "invalid log format '%s'. must be text, json", input.LogFormat)
	}
	return nil
}

// processHistoryConfig fills the acquisition settings, falling back to defaults for zero values.
func processHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	hc := DefaultHistoryConfig()

	if b := strings.TrimSpace(input.DefaultBranch); b != "" {
		hc.DefaultBranch = b
	}

	if input.RequestTimeout != "" {
		timeout, err := time.ParseDuration(input.RequestTimeout)
		if err != nil {
			return WrapError(err, InvalidInput, "invalid request-timeout '%s'", input.RequestTimeout)
		}
		if timeout <= 0 {
			return NewError(InvalidInput, "request-timeout must be positive (received %s)", input.RequestTimeout)
		}
		hc.RequestTimeout = timeout
	}

	if input.MaxRetries < 0 || input.MaxRetries > MaxRetriesLimit {
		return NewError(InvalidInput, "max-retries must be between 0 and %d (received %d)", MaxRetriesLimit, input.MaxRetries)
	}
	hc.MaxRetries = input.MaxRetries

	if input.Workers < 0 {
		return NewError(InvalidInput, "workers must be greater than 0 (received %d)", input.Workers)
	}
	if input.Workers > 0 {
		hc.Workers = input.Workers
	}

	if u := strings.TrimSpace(input.APIURL); u != "" {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return NewError(InvalidInput, "api-url must be an http(s) URL (received %s)", input.APIURL)
		}
		hc.APIURL = strings.TrimRight(u, "/")
	}

	cfg.History = hc
	cfg.Branch = strings.TrimSpace(input.Branch)
	return nil
}

// resolveTarget validates the source mode and its positional target.
func resolveTarget(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceMode(strings.ToLower(input.Source))
	if _, ok := schema.ValidSourceModes[cfg.Source]; !ok {
		return NewError(InvalidInput, "invalid source '%s'. must be local, remote", input.Source)
	}

	target := strings.TrimSpace(input.TargetStr)
	switch cfg.Source {
	case schema.LocalSource:
		if target == "" {
			target = "."
		}
		absPath, err := filepath.Abs(ExpandHome(target))
		if err != nil {
			return WrapError(err, InvalidInput, "failed to resolve repository path").WithContext(target)
		}
		cfg.RepoPath = absPath
	case schema.RemoteSource:
		if target == "" {
			return NewError(InvalidInput, "a GitHub repository URL is required")
		}
		cfg.RepoURL = target
	}
	return nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
