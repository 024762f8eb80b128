package cli

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"facekey/internal/api"
	"facekey/internal/config"
	"facekey/internal/input"
	"facekey/internal/osutils"
)

type serveFlags struct {
	listen string
	tray   bool
	dryRun bool
}

func newServeCmd(g *globalFlags, o options) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the host API to the UI",
		Long: `serve listens on loopback for the UI's commands: action execution over
/api/actions and /ws, and the settings and profiles documents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("listen") {
				overrides["listen"] = f.listen
			}
			if cmd.Flags().Changed("tray") {
				overrides["tray"] = f.tray
			}
			if f.dryRun {
				overrides["input.backend"] = input.BackendDryRun
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if runtime.GOOS == "windows" && !osutils.IsAdmin() {
				log.Warn().Msg("Not running as administrator: input cannot reach elevated windows")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.NewServer(a.disp, api.WithToken(cfg.Token), api.WithAllowedOrigins(cfg.AllowedOrigins))
			if !cfg.Tray {
				return srv.ListenAndServe(ctx, cfg.Listen)
			}
			if o.tray == nil {
				return errors.New("tray support is not available in this build")
			}
			return serveWithTray(ctx, stop, srv, a, o.tray)
		},
	}

	cmd.Flags().StringVar(&f.listen, "listen", "", "API listen address (default "+config.DefaultListen+")")
	cmd.Flags().BoolVar(&f.tray, "tray", false, "Show a system tray icon")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Log actions instead of injecting them")
	return cmd
}

// serveWithTray runs the tray on the calling goroutine and the API server
// beside it. Either one stopping stops the other.
func serveWithTray(ctx context.Context, stop context.CancelFunc, srv *api.Server, a *app, newTray TrayFactory) error {
	t := newTray(a.cfg, stop)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, a.cfg.Listen)
		t.Stop()
	}()

	t.Run()
	stop()
	return <-errCh
}
