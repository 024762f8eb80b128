//go:build !windows && !(darwin && cgo)

package input

import "runtime"

// openPlatform uses xdotool on X11 systems. Elsewhere there is no
// injection mechanism and every open fails with ErrUnsupported.
func openPlatform() (Backend, error) {
	switch runtime.GOOS {
	case "darwin", "android", "ios", "js", "wasip1", "plan9":
		return nil, ErrUnsupported
	}
	return OpenXdotool()
}
