//go:build darwin && cgo

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <stdbool.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

static bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

static CGPoint currentMousePosition() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    return cursor;
}

static void postMouseMove(CGFloat x, CGFloat y) {
    CGEventRef event = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void injectMouseMove(CGFloat dx, CGFloat dy) {
    CGPoint pos = currentMousePosition();
    postMouseMove(pos.x + dx, pos.y + dy);
}

// button: 0 left, 1 right, 2 middle, 3 back, 4 forward
static void injectMouseButton(int button, bool pressed) {
    CGEventType eventType;
    CGMouseButton cgButton;

    switch (button) {
        case 0:
            cgButton = kCGMouseButtonLeft;
            eventType = pressed ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
        case 1:
            cgButton = kCGMouseButtonRight;
            eventType = pressed ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        default:
            cgButton = (CGMouseButton)button;
            eventType = pressed ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
    }

    CGEventRef event = CGEventCreateMouseEvent(NULL, eventType, currentMousePosition(), cgButton);
    CGEventSetIntegerValueField(event, kCGMouseEventButtonNumber, button);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void injectScroll(int32_t vertical, int32_t horizontal) {
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 2, vertical, horizontal);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void injectKey(CGKeyCode keyCode, bool pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, keyCode, pressed);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void injectUnicode(const UniChar *chars, int length, bool pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, 0, pressed);
    CGEventKeyboardSetUnicodeString(event, length, chars);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}
*/
import "C"

import (
	"unicode/utf16"
	"unsafe"

	"github.com/pkg/errors"

	"facekey/internal/action"
)

// CoreGraphics accepts at most 20 UTF-16 units per keyboard event.
const maxUnicodeChunk = 20

// Windows VK code to macOS CGKeyCode mapping
// Reference: https://developer.apple.com/documentation/coregraphics/cgkeycode
var windowsToMacKeyMap = map[uint16]uint16{
	// Letters A-Z (Windows VK_A = 0x41, macOS kVK_ANSI_A = 0x00)
	0x41: 0x00, // A
	0x42: 0x0B, // B
	0x43: 0x08, // C
	0x44: 0x02, // D
	0x45: 0x0E, // E
	0x46: 0x03, // F
	0x47: 0x05, // G
	0x48: 0x04, // H
	0x49: 0x22, // I
	0x4A: 0x26, // J
	0x4B: 0x28, // K
	0x4C: 0x25, // L
	0x4D: 0x2E, // M
	0x4E: 0x2D, // N
	0x4F: 0x1F, // O
	0x50: 0x23, // P
	0x51: 0x0C, // Q
	0x52: 0x0F, // R
	0x53: 0x01, // S
	0x54: 0x11, // T
	0x55: 0x20, // U
	0x56: 0x09, // V
	0x57: 0x0D, // W
	0x58: 0x07, // X
	0x59: 0x10, // Y
	0x5A: 0x06, // Z

	// Numbers 0-9 (Windows VK_0 = 0x30, macOS kVK_ANSI_0 = 0x1D)
	0x30: 0x1D, // 0
	0x31: 0x12, // 1
	0x32: 0x13, // 2
	0x33: 0x14, // 3
	0x34: 0x15, // 4
	0x35: 0x17, // 5
	0x36: 0x16, // 6
	0x37: 0x1A, // 7
	0x38: 0x1C, // 8
	0x39: 0x19, // 9

	// Function keys (Windows VK_F1 = 0x70, macOS kVK_F1 = 0x7A)
	0x70: 0x7A, // F1
	0x71: 0x78, // F2
	0x72: 0x63, // F3
	0x73: 0x76, // F4
	0x74: 0x60, // F5
	0x75: 0x61, // F6
	0x76: 0x62, // F7
	0x77: 0x64, // F8
	0x78: 0x65, // F9
	0x79: 0x6D, // F10
	0x7A: 0x67, // F11
	0x7B: 0x6F, // F12

	// Special keys
	0x08: 0x33, // Backspace -> Delete
	0x09: 0x30, // Tab
	0x0D: 0x24, // Enter/Return
	0x10: 0x38, // Shift (left)
	0x11: 0x3B, // Control (left)
	0x12: 0x3A, // Alt -> Option
	0x14: 0x39, // Caps Lock
	0x1B: 0x35, // Escape
	0x20: 0x31, // Space

	// Arrow keys
	0x25: 0x7B, // Left Arrow
	0x26: 0x7E, // Up Arrow
	0x27: 0x7C, // Right Arrow
	0x28: 0x7D, // Down Arrow

	// Navigation keys
	0x21: 0x74, // Page Up
	0x22: 0x79, // Page Down
	0x23: 0x77, // End
	0x24: 0x73, // Home
	0x2D: 0x72, // Insert -> Help
	0x2E: 0x75, // Delete -> Forward Delete

	// Modifier keys
	0x5B: 0x37, // Left Windows -> Left Command
	0x5C: 0x36, // Right Windows -> Right Command
	0xA0: 0x38, // Left Shift
	0xA1: 0x3C, // Right Shift
	0xA2: 0x3B, // Left Control
	0xA3: 0x3E, // Right Control
	0xA4: 0x3A, // Left Alt -> Left Option
	0xA5: 0x3D, // Right Alt -> Right Option

	// Punctuation and symbols
	0xBA: 0x29, // ; -> ;
	0xBB: 0x18, // = -> =
	0xBC: 0x2B, // , -> ,
	0xBD: 0x1B, // - -> -
	0xBE: 0x2F, // . -> .
	0xBF: 0x2C, // / -> /
	0xC0: 0x32, // ` -> `
	0xDB: 0x21, // [ -> [
	0xDC: 0x2A, // \\ -> \\
	0xDD: 0x1E, // ] -> ]
	0xDE: 0x27, // ' -> '

	// Numpad
	0x60: 0x52, // Numpad 0
	0x61: 0x53, // Numpad 1
	0x62: 0x54, // Numpad 2
	0x63: 0x55, // Numpad 3
	0x64: 0x56, // Numpad 4
	0x65: 0x57, // Numpad 5
	0x66: 0x58, // Numpad 6
	0x67: 0x59, // Numpad 7
	0x68: 0x5B, // Numpad 8
	0x69: 0x5C, // Numpad 9
	0x6A: 0x43, // Numpad *
	0x6B: 0x45, // Numpad +
	0x6D: 0x4E, // Numpad -
	0x6E: 0x41, // Numpad .
	0x6F: 0x4B, // Numpad /

	// F13-F20
	0x7C: 0x69,
	0x7D: 0x6B,
	0x7E: 0x71,
	0x7F: 0x6A,
	0x80: 0x40,
	0x81: 0x4F,
	0x82: 0x50,
	0x83: 0x5A,

	0x90: 0x47, // Num Lock -> Keypad Clear
}

// Quartz injects input through CoreGraphics events.
type Quartz struct{}

func openPlatform() (Backend, error) {
	if !bool(C.hasAccessibilityPermissions()) {
		return nil, errors.New("accessibility permission not granted; enable facekey in System Settings > Privacy & Security > Accessibility")
	}
	return &Quartz{}, nil
}

func (q *Quartz) Text(text string) error {
	for _, chunk := range chunkUTF16(utf16.Encode([]rune(text)), maxUnicodeChunk) {
		ptr := (*C.UniChar)(unsafe.Pointer(&chunk[0]))
		C.injectUnicode(ptr, C.int(len(chunk)), C.bool(true))
		C.injectUnicode(ptr, C.int(len(chunk)), C.bool(false))
	}
	return nil
}

func (q *Quartz) Key(key action.KeyCode, dir action.Direction) error {
	// Other carries a native macOS keycode.
	if key.Kind == action.KeyOther {
		if key.Code > 0xFFFF {
			return errors.Errorf("macOS keycode %d out of range", key.Code)
		}
		return q.keyCode(uint16(key.Code), dir)
	}
	if vk, ok := virtualKey(key); ok {
		if code, ok := windowsToMacKeyMap[vk]; ok {
			return q.keyCode(code, dir)
		}
	}
	if key.Kind != action.KeyUnicode {
		return errors.Errorf("no macOS keycode for key %s", key)
	}

	units := utf16.Encode([]rune{key.Char})
	ptr := (*C.UniChar)(unsafe.Pointer(&units[0]))
	if dir != action.Release {
		C.injectUnicode(ptr, C.int(len(units)), C.bool(true))
	}
	if dir != action.Press {
		C.injectUnicode(ptr, C.int(len(units)), C.bool(false))
	}
	return nil
}

func (q *Quartz) Raw(code uint16, dir action.Direction) error {
	return q.keyCode(code, dir)
}

func (q *Quartz) keyCode(code uint16, dir action.Direction) error {
	if dir != action.Release {
		C.injectKey(C.CGKeyCode(code), C.bool(true))
	}
	if dir != action.Press {
		C.injectKey(C.CGKeyCode(code), C.bool(false))
	}
	return nil
}

func (q *Quartz) Button(button action.MouseButton, dir action.Direction) error {
	var n int
	switch button {
	case action.Left:
		n = 0
	case action.Right:
		n = 1
	case action.Middle:
		n = 2
	case action.Back:
		n = 3
	case action.Forward:
		n = 4
	case action.ScrollUp:
		return q.Scroll(-1, action.Vertical)
	case action.ScrollDown:
		return q.Scroll(1, action.Vertical)
	case action.ScrollLeft:
		return q.Scroll(-1, action.Horizontal)
	case action.ScrollRight:
		return q.Scroll(1, action.Horizontal)
	default:
		return errors.Errorf("unknown button %s", button)
	}

	if dir != action.Release {
		C.injectMouseButton(C.int(n), C.bool(true))
	}
	if dir != action.Press {
		C.injectMouseButton(C.int(n), C.bool(false))
	}
	return nil
}

func (q *Quartz) MoveMouse(x, y int32, coord action.Coordinate) error {
	if coord == action.Rel {
		C.injectMouseMove(C.CGFloat(x), C.CGFloat(y))
		return nil
	}
	C.postMouseMove(C.CGFloat(x), C.CGFloat(y))
	return nil
}

// Scroll uses positive lengths for down and right; CoreGraphics uses the
// opposite sign on both axes.
func (q *Quartz) Scroll(length int32, axis action.Axis) error {
	if axis == action.Horizontal {
		C.injectScroll(0, C.int32_t(-length))
		return nil
	}
	C.injectScroll(C.int32_t(-length), 0)
	return nil
}

func (q *Quartz) Close() error {
	return nil
}
