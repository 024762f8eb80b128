package input

import (
	"math"
	"unicode/utf16"

	"facekey/internal/action"
)

// Windows virtual-key codes for named keys. The Windows backend sends them
// directly; the macOS backend translates them through windowsToMacKeyMap.
// Reference: https://docs.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
var virtualKeys = map[string]uint16{
	action.KeyAlt:        0x12,
	action.KeyBackspace:  0x08,
	action.KeyCapsLock:   0x14,
	action.KeyControl:    0x11,
	action.KeyDelete:     0x2E,
	action.KeyDownArrow:  0x28,
	action.KeyEnd:        0x23,
	action.KeyEscape:     0x1B,
	action.KeyHome:       0x24,
	action.KeyInsert:     0x2D,
	action.KeyLControl:   0xA2,
	action.KeyLeftArrow:  0x25,
	action.KeyLShift:     0xA0,
	action.KeyMeta:       0x5B,
	action.KeyNumlock:    0x90,
	action.KeyOption:     0x12,
	action.KeyPageDown:   0x22,
	action.KeyPageUp:     0x21,
	action.KeyPrintScr:   0x2C,
	action.KeyRControl:   0xA3,
	action.KeyReturn:     0x0D,
	action.KeyRightArrow: 0x27,
	action.KeyRShift:     0xA1,
	action.KeyShift:      0x10,
	action.KeySpace:      0x20,
	action.KeyTab:        0x09,
	action.KeyUpArrow:    0x26,
}

// virtualKey returns the Windows virtual-key code for a named key or for
// a lowercase ASCII letter or digit.
func virtualKey(k action.KeyCode) (uint16, bool) {
	switch k.Kind {
	case action.KeyNamed:
		if n, ok := k.FunctionKey(); ok {
			return uint16(0x70 + n - 1), true // VK_F1..VK_F20 are contiguous
		}
		vk, ok := virtualKeys[k.Name]
		return vk, ok
	case action.KeyUnicode:
		// Uppercase letters have no unshifted VK and go through the
		// Unicode path so the case survives.
		switch r := k.Char; {
		case r >= 'a' && r <= 'z':
			return uint16(r - 'a' + 'A'), true
		case r >= '0' && r <= '9':
			return uint16(r), true
		}
	case action.KeyOther:
		if k.Code <= 0xFFFF {
			return uint16(k.Code), true
		}
	}
	return 0, false
}

// X11 keysym names for named keys, as understood by xdotool.
var keysyms = map[string]string{
	action.KeyAlt:        "Alt_L",
	action.KeyBackspace:  "BackSpace",
	action.KeyCapsLock:   "Caps_Lock",
	action.KeyControl:    "Control_L",
	action.KeyDelete:     "Delete",
	action.KeyDownArrow:  "Down",
	action.KeyEnd:        "End",
	action.KeyEscape:     "Escape",
	action.KeyHome:       "Home",
	action.KeyInsert:     "Insert",
	action.KeyLControl:   "Control_L",
	action.KeyLeftArrow:  "Left",
	action.KeyLShift:     "Shift_L",
	action.KeyMeta:       "Super_L",
	action.KeyNumlock:    "Num_Lock",
	action.KeyOption:     "Alt_L",
	action.KeyPageDown:   "Page_Down",
	action.KeyPageUp:     "Page_Up",
	action.KeyPrintScr:   "Print",
	action.KeyRControl:   "Control_R",
	action.KeyReturn:     "Return",
	action.KeyRightArrow: "Right",
	action.KeyRShift:     "Shift_R",
	action.KeyShift:      "Shift_L",
	action.KeySpace:      "space",
	action.KeyTab:        "Tab",
	action.KeyUpArrow:    "Up",
}

const wheelDelta = 120

// wheelData scales notches to a wheel delta, clamped to int32 and encoded
// as the unsigned mouseData field.
func wheelData(notches int64) uint32 {
	d := notches * wheelDelta
	d = max(min(d, math.MaxInt32), math.MinInt32)
	return uint32(int32(d))
}

// chunkUTF16 splits units into runs of at most limit code units without
// separating a surrogate pair.
func chunkUTF16(units []uint16, limit int) [][]uint16 {
	var chunks [][]uint16
	for len(units) > 0 {
		n := min(len(units), limit)
		if n < len(units) && n > 1 && utf16.IsSurrogate(rune(units[n-1])) && units[n-1] < 0xDC00 {
			n--
		}
		chunks = append(chunks, units[:n])
		units = units[n:]
	}
	return chunks
}
