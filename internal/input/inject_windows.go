//go:build windows

package input

import (
	"unicode/utf16"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"facekey/internal/action"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfXDown      = 0x0080
	mouseeventfXUp        = 0x0100
	mouseeventfWheel      = 0x0800
	mouseeventfHWheel     = 0x1000

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004

	xbutton1   = 0x0001
	xbutton2   = 0x0002
)

type mouseInput struct {
	dx, dy      int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// INPUT is a tagged union sized by its largest member, MOUSEINPUT. The
// keyboard variant is padded to the same size.
type mouseEvent struct {
	inputType uint32
	mi        mouseInput
}

type keyEvent struct {
	inputType uint32
	ki        keybdInput
	_         [8]byte
}

// SendInputBackend injects input through user32 SendInput.
type SendInputBackend struct{}

func openPlatform() (Backend, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, errors.Wrap(err, "loading SendInput")
	}
	return &SendInputBackend{}, nil
}

func sendMouse(events ...mouseInput) error {
	in := make([]mouseEvent, len(events))
	for i, e := range events {
		in[i] = mouseEvent{inputType: inputMouse, mi: e}
	}
	return sendInput(len(in), unsafe.Pointer(&in[0]), unsafe.Sizeof(in[0]))
}

func sendKeys(events ...keybdInput) error {
	in := make([]keyEvent, len(events))
	for i, e := range events {
		in[i] = keyEvent{inputType: inputKeyboard, ki: e}
	}
	return sendInput(len(in), unsafe.Pointer(&in[0]), unsafe.Sizeof(in[0]))
}

func sendInput(n int, ptr unsafe.Pointer, size uintptr) error {
	sent, _, err := procSendInput.Call(uintptr(n), uintptr(ptr), size)
	if int(sent) != n {
		// SendInput is blocked by UIPI when the target runs elevated.
		return errors.Errorf("SendInput sent %d of %d events: %v", sent, n, err)
	}
	return nil
}

func (b *SendInputBackend) Text(text string) error {
	units := utf16.Encode([]rune(text))
	if len(units) == 0 {
		return nil
	}
	events := make([]keybdInput, 0, 2*len(units))
	for _, u := range units {
		events = append(events,
			keybdInput{wScan: u, dwFlags: keyeventfUnicode},
			keybdInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyUp})
	}
	return sendKeys(events...)
}

func (b *SendInputBackend) Key(key action.KeyCode, dir action.Direction) error {
	if vk, ok := virtualKey(key); ok {
		return b.virtualKey(vk, dir)
	}
	if key.Kind != action.KeyUnicode {
		return errors.Errorf("no virtual-key code for key %s", key)
	}

	var events []keybdInput
	for _, u := range utf16.Encode([]rune{key.Char}) {
		if dir != action.Release {
			events = append(events, keybdInput{wScan: u, dwFlags: keyeventfUnicode})
		}
		if dir != action.Press {
			events = append(events, keybdInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyUp})
		}
	}
	return sendKeys(events...)
}

func (b *SendInputBackend) Raw(code uint16, dir action.Direction) error {
	return b.virtualKey(code, dir)
}

func (b *SendInputBackend) virtualKey(vk uint16, dir action.Direction) error {
	var events []keybdInput
	if dir != action.Release {
		events = append(events, keybdInput{wVk: vk})
	}
	if dir != action.Press {
		events = append(events, keybdInput{wVk: vk, dwFlags: keyeventfKeyUp})
	}
	return sendKeys(events...)
}

func (b *SendInputBackend) Button(button action.MouseButton, dir action.Direction) error {
	var down, up, data uint32
	switch button {
	case action.Left:
		down, up = mouseeventfLeftDown, mouseeventfLeftUp
	case action.Right:
		down, up = mouseeventfRightDown, mouseeventfRightUp
	case action.Middle:
		down, up = mouseeventfMiddleDown, mouseeventfMiddleUp
	case action.Back:
		down, up, data = mouseeventfXDown, mouseeventfXUp, xbutton1
	case action.Forward:
		down, up, data = mouseeventfXDown, mouseeventfXUp, xbutton2
	case action.ScrollUp:
		return b.Scroll(-1, action.Vertical)
	case action.ScrollDown:
		return b.Scroll(1, action.Vertical)
	case action.ScrollLeft:
		return b.Scroll(-1, action.Horizontal)
	case action.ScrollRight:
		return b.Scroll(1, action.Horizontal)
	default:
		return errors.Errorf("unknown button %s", button)
	}

	var events []mouseInput
	if dir != action.Release {
		events = append(events, mouseInput{dwFlags: down, mouseData: data})
	}
	if dir != action.Press {
		events = append(events, mouseInput{dwFlags: up, mouseData: data})
	}
	return sendMouse(events...)
}

func (b *SendInputBackend) MoveMouse(x, y int32, coord action.Coordinate) error {
	if coord == action.Rel {
		return sendMouse(mouseInput{dx: x, dy: y, dwFlags: mouseeventfMove})
	}
	ok, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ok == 0 {
		return errors.Errorf("SetCursorPos(%d, %d): %v", x, y, err)
	}
	return nil
}

// Scroll uses positive lengths for down and right. Windows wheel deltas are
// positive for up and right.
func (b *SendInputBackend) Scroll(length int32, axis action.Axis) error {
	if length == 0 {
		return nil
	}
	if axis == action.Horizontal {
		return sendMouse(mouseInput{dwFlags: mouseeventfHWheel, mouseData: wheelData(int64(length))})
	}
	return sendMouse(mouseInput{dwFlags: mouseeventfWheel, mouseData: wheelData(-int64(length))})
}

func (b *SendInputBackend) Close() error {
	return nil
}
