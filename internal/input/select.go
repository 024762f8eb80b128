package input

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Backend names accepted by OpenerFor.
const (
	BackendAuto    = "auto"
	BackendXdotool = "xdotool"
	BackendDryRun  = "dryrun"
)

// OpenerFor returns the Opener for a configured backend name.
func OpenerFor(name string, log zerolog.Logger) (Opener, error) {
	switch name {
	case "", BackendAuto:
		return openPlatform, nil
	case BackendXdotool:
		return OpenXdotool, nil
	case BackendDryRun:
		return func() (Backend, error) { return NewDryRun(log), nil }, nil
	default:
		return nil, errors.Errorf("unknown input backend %q", name)
	}
}
