package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:   "retain",
		Short: "Serve and render retained-mode component trees",
		Long: `retain drives a tree of stateful components against a document.

The serve command runs one live tree per visitor over a WebSocket. The
render command settles a tree once and writes the HTML to a file or to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing "+config.ConfigFileName)

	load := func() (*config.Config, error) {
		return config.Load(configDir)
	}

	root.AddCommand(
		initCmd(&configDir),
		renderCmd(load),
		serveCmd(load),
		versionCmd(),
	)
	return root
}

// newLogger builds the process logger from cfg, writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format, w)
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
