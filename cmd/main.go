// facekey - host process for the face-tracking input UI.
// Injects keyboard and mouse actions and stores the UI's documents.
package main

import (
	"fmt"
	"os"

	"facekey/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd(cli.WithTray(newTray))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
