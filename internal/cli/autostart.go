package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"facekey/internal/autostart"
)

func newAutostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage starting facekey at login",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start facekey with the tray at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return autostart.Enable()
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting facekey at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return autostart.Disable()
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether facekey starts at login",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				if autostart.IsEnabled() {
					fmt.Fprintln(cmd.OutOrStdout(), "enabled")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "disabled")
				}
			},
		},
	)
	return cmd
}
