// Package osutils holds small platform helpers for the desktop host.
package osutils

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// openCommand returns the program and arguments that open target (a path or
// URL) with the desktop's default handler.
func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// Open opens target with the default handler and does not wait for it.
func Open(target string) error {
	name, args := openCommand(runtime.GOOS, target)
	if _, err := startDetached(name, args...); err != nil {
		return errors.Wrapf(err, "opening %s", target)
	}
	return nil
}

// startDetached starts the command and reaps it in the background. The
// returned channel receives the exit result once.
func startDetached(name string, args ...string) (<-chan error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}
