package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newDocumentCmd builds the get/set/path commands for one stored document.
func newDocumentCmd(g *globalFlags, name string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Read or replace the %s document", name),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: fmt.Sprintf("Print the %s document", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app()
			if err != nil {
				return err
			}
			defer a.Close()

			doc := a.document(name).Get()
			if !strings.HasSuffix(doc, "\n") {
				doc += "\n"
			}
			_, err = io.WriteString(cmd.OutOrStdout(), doc)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [document|-]",
		Short: fmt.Sprintf("Replace the %s document", name),
		Long: fmt.Sprintf(`set stores the %s document verbatim. With "-" or no argument the
document is read from standard input.`, name),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc string
			if len(args) == 1 && args[0] != "-" {
				doc = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "reading document from stdin")
				}
				doc = string(data)
			}

			a, err := g.app()
			if err != nil {
				return err
			}
			defer a.Close()

			return a.document(name).Set(doc)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: fmt.Sprintf("Print the %s file path", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app()
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), a.document(name).Path())
			return nil
		},
	})
	return cmd
}

// app loads the configuration with only the persistent flags applied.
func (g *globalFlags) app() (*app, error) {
	cfg, err := g.loadConfig(nil)
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}
