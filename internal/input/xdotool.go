package input

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"facekey/internal/action"
)

// commandRunner runs an external program and returns its failure, if any.
type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return errors.Wrapf(err, "%s %s: %s", name, args[0], msg)
		}
		return errors.Wrapf(err, "%s %s", name, args[0])
	}
	return nil
}

// Xdotool injects input on X11 desktops through the xdotool program.
type Xdotool struct {
	path string
	run  commandRunner
}

// OpenXdotool locates xdotool on PATH.
func OpenXdotool() (Backend, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, errors.Wrap(ErrUnsupported, "xdotool not found on PATH")
	}
	return &Xdotool{path: path, run: runCommand}, nil
}

// xdotool button numbers
var xButtons = map[action.MouseButton]int{
	action.Left:        1,
	action.Middle:      2,
	action.Right:       3,
	action.ScrollUp:    4,
	action.ScrollDown:  5,
	action.ScrollLeft:  6,
	action.ScrollRight: 7,
	action.Back:        8,
	action.Forward:     9,
}

func (x *Xdotool) Text(text string) error {
	if text == "" {
		return nil
	}
	return x.run(x.path, "type", "--", text)
}

func (x *Xdotool) Key(key action.KeyCode, dir action.Direction) error {
	sym, err := keysym(key)
	if err != nil {
		return err
	}
	return x.run(x.path, directionVerb(dir, "keydown", "keyup", "key"), "--", sym)
}

func (x *Xdotool) Raw(code uint16, dir action.Direction) error {
	return errors.Wrapf(ErrUnsupported, "raw keycode %d via xdotool", code)
}

func (x *Xdotool) Button(button action.MouseButton, dir action.Direction) error {
	n, ok := xButtons[button]
	if !ok {
		return errors.Errorf("unknown button %s", button)
	}
	return x.run(x.path, directionVerb(dir, "mousedown", "mouseup", "click"), strconv.Itoa(n))
}

func (x *Xdotool) MoveMouse(px, py int32, coord action.Coordinate) error {
	verb := "mousemove"
	if coord == action.Rel {
		verb = "mousemove_relative"
	}
	return x.run(x.path, verb, "--", strconv.Itoa(int(px)), strconv.Itoa(int(py)))
}

func (x *Xdotool) Scroll(length int32, axis action.Axis) error {
	if length == 0 {
		return nil
	}
	var button int
	switch {
	case axis == action.Vertical && length > 0:
		button = xButtons[action.ScrollDown]
	case axis == action.Vertical:
		button = xButtons[action.ScrollUp]
	case length > 0:
		button = xButtons[action.ScrollRight]
	default:
		button = xButtons[action.ScrollLeft]
	}
	n := int64(length)
	if n < 0 {
		n = -n
	}
	return x.run(x.path, "click", "--repeat", strconv.FormatInt(n, 10), strconv.Itoa(button))
}

func (x *Xdotool) Close() error {
	return nil
}

func directionVerb(dir action.Direction, press, release, click string) string {
	switch dir {
	case action.Press:
		return press
	case action.Release:
		return release
	default:
		return click
	}
}

func keysym(k action.KeyCode) (string, error) {
	switch k.Kind {
	case action.KeyNamed:
		if n, ok := k.FunctionKey(); ok {
			return "F" + strconv.Itoa(n), nil
		}
		if sym, ok := keysyms[k.Name]; ok {
			return sym, nil
		}
		return "", errors.Errorf("no keysym for key %s", k.Name)
	case action.KeyUnicode:
		r := k.Char
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return string(r), nil
		}
		return fmt.Sprintf("U%04X", r), nil
	default:
		return fmt.Sprintf("0x%x", k.Code), nil
	}
}
