// Package cli implements the pydepviz command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pydepviz/pydepviz/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "pydepviz"

	// defaultOutputPrefix is the base name for the generated artifacts.
	defaultOutputPrefix = "dependency_graph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command tree.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command. Running it with no
// subcommand executes the full visualization pipeline.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pydepviz renders Python dependency trees as interactive 3D graphs",
		Long:         `pydepviz resolves the installed Python dependency tree, lays it out as a 3D force-directed graph with community-based coloring, and writes an interactive HTML document plus a static PNG preview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE:         c.runGenerate,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.registerGenerateFlags(root)

	return root
}

// defaultProjectName derives the project name from the working directory,
// matching how the tool labels a project when none is given.
func defaultProjectName() string {
	wd, err := os.Getwd()
	if err != nil || wd == "" {
		return appName
	}
	name := filepath.Base(wd)
	if name == "." || name == string(filepath.Separator) {
		return appName
	}
	return name
}
