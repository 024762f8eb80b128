// Package input owns the platform input-injection handle and applies decoded
// actions to it one at a time.
package input

import (
	"errors"
	"fmt"

	"facekey/internal/action"
)

// ErrUnsupported is returned by backends for operations the platform cannot
// perform.
var ErrUnsupported = errors.New("input injection not supported on this platform")

// Backend is the platform input-injection channel. Implementations are not
// safe for concurrent use; the Executor serializes every call.
type Backend interface {
	Text(text string) error
	Key(key action.KeyCode, dir action.Direction) error
	Raw(code uint16, dir action.Direction) error
	Button(button action.MouseButton, dir action.Direction) error
	MoveMouse(x, y int32, coord action.Coordinate) error
	Scroll(length int32, axis action.Axis) error
	Close() error
}

// Opener creates the Backend. It is called at most once per successful open.
type Opener func() (Backend, error)

// ExecutionError reports a platform failure while applying an action. The
// Executor stays usable after it is returned.
type ExecutionError struct {
	Action action.Action
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Action == nil {
		return fmt.Sprintf("execute action: %v", e.Err)
	}
	return fmt.Sprintf("execute %s: %v", e.Action, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
