package cli

import (
	"github.com/spf13/cobra"

	"facekey/internal/input"
)

func newExecCmd(g *globalFlags) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "exec <action>",
		Short: "Execute one action",
		Long: `exec decodes and injects a single action, for example:

  facekey exec 'Key(Unicode('"'"'a'"'"'), Click)'
  facekey exec 'MoveMouse(10, -5, Rel)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if dryRun {
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

			return a.disp.ExecuteAction(args[0])
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the action instead of injecting it")
	return cmd
}
