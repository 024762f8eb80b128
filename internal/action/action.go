// Package action defines the typed input actions the host can inject and the
// decoder for their serialized token form.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names the discriminant of an Action.
type Kind string

const (
	KindText      Kind = "Text"
	KindKey       Kind = "Key"
	KindRaw       Kind = "Raw"
	KindButton    Kind = "Button"
	KindMoveMouse Kind = "MoveMouse"
	KindScroll    Kind = "Scroll"
)

// Action is one decoded input-device operation. The set of implementations
// is closed: Text, Key, Raw, Button, MoveMouse and Scroll.
type Action interface {
	Kind() Kind
	String() string
	isAction()
}

// Direction of a key or button action
type Direction int

const (
	Press Direction = iota
	Release
	Click
)

var directionNames = map[Direction]string{
	Press:   "Press",
	Release: "Release",
	Click:   "Click",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// Coordinate selects absolute or relative pointer movement.
type Coordinate int

const (
	Abs Coordinate = iota
	Rel
)

func (c Coordinate) String() string {
	if c == Rel {
		return "Rel"
	}
	return "Abs"
}

// Axis of a scroll action
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	Left MouseButton = iota
	Middle
	Right
	Back
	Forward
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

var buttonNames = []string{"Left", "Middle", "Right", "Back", "Forward", "ScrollUp", "ScrollDown", "ScrollLeft", "ScrollRight"}

func (b MouseButton) String() string {
	if int(b) >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "MouseButton(" + strconv.Itoa(int(b)) + ")"
}

// Text types a string.
type Text struct {
	Text string
}

// Key presses, releases or clicks a logical key.
type Key struct {
	Key       KeyCode
	Direction Direction
}

// Raw sends a platform keycode without translation.
type Raw struct {
	Code      uint16
	Direction Direction
}

// Button presses, releases or clicks a pointer button.
type Button struct {
	Button    MouseButton
	Direction Direction
}

// MoveMouse moves the pointer to (X, Y) or by (X, Y).
type MoveMouse struct {
	X, Y       int32
	Coordinate Coordinate
}

// MaxScroll bounds the magnitude of Scroll.Length.
const MaxScroll = 10000

// Scroll scrolls Length notches along Axis. Positive values scroll down or
// right.
type Scroll struct {
	Length int32
	Axis   Axis
}

func (Text) Kind() Kind      { return KindText }
func (Key) Kind() Kind       { return KindKey }
func (Raw) Kind() Kind       { return KindRaw }
func (Button) Kind() Kind    { return KindButton }
func (MoveMouse) Kind() Kind { return KindMoveMouse }
func (Scroll) Kind() Kind    { return KindScroll }

func (Text) isAction()      {}
func (Key) isAction()       {}
func (Raw) isAction()       {}
func (Button) isAction()    {}
func (MoveMouse) isAction() {}
func (Scroll) isAction()    {}

func (a Text) String() string { return fmt.Sprintf("Text(%s)", quote(a.Text)) }
func (a Key) String() string  { return fmt.Sprintf("Key(%s, %s)", a.Key, a.Direction) }
func (a Raw) String() string  { return fmt.Sprintf("Raw(%d, %s)", a.Code, a.Direction) }
func (a Button) String() string {
	return fmt.Sprintf("Button(%s, %s)", a.Button, a.Direction)
}
func (a MoveMouse) String() string {
	return fmt.Sprintf("MoveMouse(%d, %d, %s)", a.X, a.Y, a.Coordinate)
}
func (a Scroll) String() string { return fmt.Sprintf("Scroll(%d, %s)", a.Length, a.Axis) }

// quote renders s as a token string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
