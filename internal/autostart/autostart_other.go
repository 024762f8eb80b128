//go:build !darwin && !windows

package autostart

import (
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"

	"facekey/internal/paths"
)

var desktopEntry = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name=facekey
Comment=Face-tracking input host
Exec="{{.ExecutablePath}}"{{range .Args}} {{.}}{{end}}
Terminal=false
X-GNOME-Autostart-enabled=true
`))

func entryPath() string {
	return filepath.Join(paths.AutostartDir(), Label+".desktop")
}

func enable(execPath string) error {
	path := entryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating autostart directory")
	}
	return render(desktopEntry, path, struct {
		ExecutablePath string
		Args           []string
	}{execPath, launchArgs})
}

func disable() error {
	if err := os.Remove(entryPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isEnabled() bool {
	_, err := os.Stat(entryPath())
	return err == nil
}
