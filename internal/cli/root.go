// Package cli implements the facekey command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"facekey/internal/config"
)

// Version is set at build time with -ldflags "-X facekey/internal/cli.Version=...".
var Version = "dev"

// TrayRunner is a tray icon event loop. Run blocks on the main goroutine
// until Stop is called or the user quits from the menu.
type TrayRunner interface {
	Run()
	Stop()
}

// TrayFactory builds the tray for a running host. onQuit is called when the
// user quits from the menu.
type TrayFactory func(cfg *config.Config, onQuit func()) TrayRunner

// Option configures the root command.
type Option func(*options)

type options struct {
	tray TrayFactory
}

// WithTray enables "serve --tray".
func WithTray(f TrayFactory) Option {
	return func(o *options) {
		o.tray = f
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	verbosity  int
	configFile string
	dataDir    string
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "facekey",
		Short: "Face-tracking input host",
		Long: `facekey runs next to the face-tracking UI. It injects the keyboard and
mouse actions the UI asks for and stores the UI's settings and profiles.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/facekey/config.toml)")
	rootCmd.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "directory holding settings.json and profiles.json")

	rootCmd.AddCommand(
		newServeCmd(g, o),
		newExecCmd(g),
		newDocumentCmd(g, "settings"),
		newDocumentCmd(g, "profiles"),
		newAutostartCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "facekey version %s\n", Version)
		},
	}
}

// loadConfig layers the persistent flags and the given overrides on top of
// the configuration file and environment.
func (g *globalFlags) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if g.dataDir != "" {
		overrides["data_dir"] = g.dataDir
	}
	return config.Load(g.configFile, overrides)
}
