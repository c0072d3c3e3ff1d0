// Package cli implements the stadump command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/buildinfo"
	"github.com/matzehuels/stadump/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stadump"

	// stdinArg selects standard input as the snapshot source.
	stdinArg = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "stadump writes deterministic text dumps of static timing analysis state",
		Long: `stadump serializes a timing graph, its constraints, and setup/hold analysis
results into a stable line-oriented text format for regression tests and
debugging, and compares dumps against stored baselines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $STADUMP_CONFIG, ./stadump.toml, ~/.config/stadump/config.toml)")

	// Register all subcommands
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.baselineCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path, explicit := configPath(c.configPath)
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	if path != "" {
		c.Logger.Debug("config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured baseline store.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := baseline.Open(ctx, c.Config.Baseline)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("baseline store", "backend", backendName(c.Config.Baseline))
	return pipeline.NewRunner(store, c.Logger), nil
}

// localRunner creates a runner without a baseline store, for commands that
// only read snapshots.
func (c *CLI) localRunner() *pipeline.Runner {
	return pipeline.NewRunner(nil, c.Logger)
}

func backendName(cfg baseline.Config) string {
	if cfg.Backend == "" {
		return baseline.BackendFile
	}
	return cfg.Backend
}
