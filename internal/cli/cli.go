package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodegraph/pkg/buildinfo"
	"github.com/matzehuels/nodegraph/pkg/config"
	"github.com/matzehuels/nodegraph/pkg/graph"
	"github.com/matzehuels/nodegraph/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "nodegraph"

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

	out        *output
	configPath string
	config     config.Config
	registry   *layout.Registry
}

// New creates a CLI that logs to w and prints results to stdout, with the
// built-in engine configuration.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:     newLogger(w, level),
		out:        newOutput(os.Stdout),
		configPath: config.DefaultFile,
		config:     config.Default(),
		registry:   layout.NewRegistry(),
	}
	c.config.Register(c.registry)
	return c
}

// SetOutput redirects command results to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = newOutput(w)
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "nodegraph groups and lays out dataflow node graphs",
		Long:         `nodegraph is a CLI tool for node graph snapshots: it computes automatic layouts, groups nodes into sub-graphs and reports on graph structure.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.enginesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and re-registers the built-in engines
// with the configured options.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = cfg
	cfg.Register(c.registry)
	c.Logger.Debug("config loaded", "path", c.configPath, "engine", cfg.Layout.Engine)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// engineOrDefault returns name, or the configured default engine when empty.
func (c *CLI) engineOrDefault(name string) string {
	if name == "" {
		return c.config.Layout.Engine
	}
	return name
}

// readSnapshot loads a snapshot file.
func readSnapshot(path string) (graph.Snapshot, error) {
	snap, err := graph.ReadSnapshotFile(path)
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return snap, nil
}

// outputPath returns output, or input with its extension replaced by suffix.
func outputPath(input, output, suffix string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// parseIDs splits a comma-separated id list, dropping empty entries.
func parseIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
