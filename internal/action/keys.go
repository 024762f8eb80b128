package action

import (
	"fmt"
	"strconv"
)

// KeyKind tells which field of a KeyCode is meaningful.
type KeyKind int

const (
	KeyNamed KeyKind = iota
	KeyUnicode
	KeyOther
)

// KeyCode is a logical key: a named key, a Unicode character, or a
// platform-specific code passed through as is.
type KeyCode struct {
	Kind KeyKind
	Name string
	Char rune
	Code uint32
}

// Named key identifiers as they appear in action tokens.
const (
	KeyAlt        = "Alt"
	KeyBackspace  = "Backspace"
	KeyCapsLock   = "CapsLock"
	KeyControl    = "Control"
	KeyDelete     = "Delete"
	KeyDownArrow  = "DownArrow"
	KeyEnd        = "End"
	KeyEscape     = "Escape"
	KeyHome       = "Home"
	KeyInsert     = "Insert"
	KeyLControl   = "LControl"
	KeyLeftArrow  = "LeftArrow"
	KeyLShift     = "LShift"
	KeyMeta       = "Meta"
	KeyNumlock    = "Numlock"
	KeyOption     = "Option"
	KeyPageDown   = "PageDown"
	KeyPageUp     = "PageUp"
	KeyPrintScr   = "PrintScr"
	KeyRControl   = "RControl"
	KeyReturn     = "Return"
	KeyRightArrow = "RightArrow"
	KeyRShift     = "RShift"
	KeyShift      = "Shift"
	KeySpace      = "Space"
	KeyTab        = "Tab"
	KeyUpArrow    = "UpArrow"
)

var namedKeys = map[string]string{
	KeyAlt: KeyAlt, KeyBackspace: KeyBackspace, KeyCapsLock: KeyCapsLock,
	KeyControl: KeyControl, KeyDelete: KeyDelete, KeyDownArrow: KeyDownArrow,
	KeyEnd: KeyEnd, KeyEscape: KeyEscape, KeyHome: KeyHome, KeyInsert: KeyInsert,
	KeyLControl: KeyLControl, KeyLeftArrow: KeyLeftArrow, KeyLShift: KeyLShift,
	KeyMeta: KeyMeta, KeyNumlock: KeyNumlock, KeyOption: KeyOption,
	KeyPageDown: KeyPageDown, KeyPageUp: KeyPageUp, KeyPrintScr: KeyPrintScr,
	KeyRControl: KeyRControl, KeyReturn: KeyReturn, KeyRightArrow: KeyRightArrow,
	KeyRShift: KeyRShift, KeyShift: KeyShift, KeySpace: KeySpace, KeyTab: KeyTab,
	KeyUpArrow: KeyUpArrow,

	// aliases
	"Command": KeyMeta,
	"Super":   KeyMeta,
	"Windows": KeyMeta,
	"Enter":   KeyReturn,
}

func init() {
	for i := 1; i <= 20; i++ {
		name := "F" + strconv.Itoa(i)
		namedKeys[name] = name
	}
}

// Named returns the KeyCode for a named key, resolving aliases. ok is false
// for unknown names.
func Named(name string) (k KeyCode, ok bool) {
	canonical, ok := namedKeys[name]
	if !ok {
		return KeyCode{}, false
	}
	return KeyCode{Kind: KeyNamed, Name: canonical}, true
}

// Unicode returns the KeyCode typing r.
func Unicode(r rune) KeyCode {
	return KeyCode{Kind: KeyUnicode, Char: r}
}

// Other returns a KeyCode carrying a platform keycode.
func Other(code uint32) KeyCode {
	return KeyCode{Kind: KeyOther, Code: code}
}

// FunctionKey reports the number n of an F<n> key.
func (k KeyCode) FunctionKey() (int, bool) {
	if k.Kind != KeyNamed || len(k.Name) < 2 || k.Name[0] != 'F' {
		return 0, false
	}
	n, err := strconv.Atoi(k.Name[1:])
	if err != nil || n < 1 || n > 20 {
		return 0, false
	}
	return n, true
}

func (k KeyCode) String() string {
	switch k.Kind {
	case KeyUnicode:
		return fmt.Sprintf("Unicode(%s)", quoteChar(k.Char))
	case KeyOther:
		return fmt.Sprintf("Other(%d)", k.Code)
	default:
		return k.Name
	}
}

func quoteChar(r rune) string {
	switch r {
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	case 0:
		return `'\0'`
	}
	if r < 0x20 {
		return fmt.Sprintf(`'\u{%x}'`, r)
	}
	return "'" + string(r) + "'"
}
