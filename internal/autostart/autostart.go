// Package autostart registers facekey to start at user login.
package autostart

import (
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Label identifies the login item on every platform.
const Label = "com.facekey.agent"

// launchArgs are passed to the executable when started at login.
var launchArgs = []string{"serve", "--tray"}

// Enable enables auto-start on login for the running executable.
func Enable() error {
	execPath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "failed to get executable path")
	}
	return enable(execPath)
}

// Disable disables auto-start on login. Disabling when not enabled is not
// an error.
func Disable() error {
	return disable()
}

// IsEnabled checks if auto-start is enabled
func IsEnabled() bool {
	return isEnabled()
}

func render(tmpl *template.Template, path string, data interface{}) error {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
