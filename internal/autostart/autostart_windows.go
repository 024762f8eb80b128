//go:build windows

package autostart

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// valueName is the Run key entry, shown in Task Manager's startup list.
const valueName = "facekey"

func enable(execPath string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return errors.Wrap(err, "opening Run key")
	}
	defer k.Close()

	command := `"` + execPath + `" ` + strings.Join(launchArgs, " ")
	return errors.Wrap(k.SetStringValue(valueName, command), "writing Run key")
}

func disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "opening Run key")
	}
	defer k.Close()

	if err := k.DeleteValue(valueName); err != nil && err != registry.ErrNotExist {
		return errors.Wrap(err, "deleting Run key value")
	}
	return nil
}

func isEnabled() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	_, _, err = k.GetStringValue(valueName)
	return err == nil
}
