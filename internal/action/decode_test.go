package action

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Action
	}{
		{"text", `Text("hello")`, Text{Text: "hello"}},
		{"text escapes", `Text("a\"b\\c\n\u{1F600}")`, Text{Text: "a\"b\\c\n\U0001F600"}},
		{"empty text", `Text("")`, Text{}},
		{"unicode key", `Key(Unicode('a'), Click)`, Key{Key: Unicode('a'), Direction: Click}},
		{"unicode key double quoted", `Key(Unicode("é"), Press)`, Key{Key: Unicode('é'), Direction: Press}},
		{"named key", `Key(Return, Release)`, Key{Key: KeyCode{Kind: KeyNamed, Name: KeyReturn}, Direction: Release}},
		{"key alias", `Key(Command, Press)`, Key{Key: KeyCode{Kind: KeyNamed, Name: KeyMeta}, Direction: Press}},
		{"function key", `Key(F12, Click)`, Key{Key: KeyCode{Kind: KeyNamed, Name: "F12"}, Direction: Click}},
		{"other key", `Key(Other(4294967295), Click)`, Key{Key: Other(4294967295), Direction: Click}},
		{"raw", `Raw(65535, Press)`, Raw{Code: 65535, Direction: Press}},
		{"button", `Button(Left, Click)`, Button{Button: Left, Direction: Click}},
		{"scroll button", `Button(ScrollDown, Click)`, Button{Button: ScrollDown, Direction: Click}},
		{"move abs", `MoveMouse(100, 200, Abs)`, MoveMouse{X: 100, Y: 200, Coordinate: Abs}},
		{"move rel negative", `MoveMouse(-5, +3, Rel)`, MoveMouse{X: -5, Y: 3, Coordinate: Rel}},
		{"move bounds", `MoveMouse(-2147483648, 2147483647, Rel)`, MoveMouse{X: -2147483648, Y: 2147483647, Coordinate: Rel}},
		{"scroll", `Scroll(-3, Vertical)`, Scroll{Length: -3, Axis: Vertical}},
		{"scroll horizontal", `Scroll(2, Horizontal)`, Scroll{Length: 2, Axis: Horizontal}},
		{"scroll max", `Scroll(10000, Vertical)`, Scroll{Length: MaxScroll, Axis: Vertical}},
		{"scroll min", `Scroll(-10000, Horizontal)`, Scroll{Length: -MaxScroll, Axis: Horizontal}},
		{"whitespace and trailing comma", "  Key ( Unicode ( 'x' , ) ,\n Click , )\t", Key{Key: Unicode('x'), Direction: Click}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.payload)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tt.payload, diff)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantCause string
	}{
		{"empty", "", "empty payload"},
		{"blank", "   ", "empty payload"},
		{"unknown kind", `Jump(1)`, `unknown action kind "Jump"`},
		{"unknown key", `Key(Hyper, Click)`, `unknown key "Hyper"`},
		{"unknown direction", `Key(Tab, Hold)`, `unknown direction "Hold"`},
		{"unknown button", `Button(Thumb, Click)`, `unknown button "Thumb"`},
		{"unknown coordinate", `MoveMouse(1, 2, Screen)`, `unknown coordinate "Screen"`},
		{"unknown axis", `Scroll(1, Diagonal)`, `unknown axis "Diagonal"`},
		{"raw out of range", `Raw(65536, Press)`, "Raw keycode 65536 out of range"},
		{"raw negative", `Raw(-1, Press)`, "Raw keycode -1 out of range"},
		{"move out of range", `MoveMouse(2147483648, 0, Abs)`, "MoveMouse x 2147483648 out of range"},
		{"huge number", `Scroll(99999999999999999999, Vertical)`, "Scroll length 99999999999999999999 out of range"},
		{"scroll too far", `Scroll(10001, Vertical)`, "Scroll length 10001 out of range [-10000, 10000]"},
		{"scroll int32 max", `Scroll(2147483647, Vertical)`, "Scroll length 2147483647 out of range"},
		{"scroll too far back", `Scroll(-10001, Horizontal)`, "Scroll length -10001 out of range"},
		{"multi char unicode", `Key(Unicode("ab"), Click)`, "exactly one character"},
		{"missing paren", `Text("x"`, "expected ')'"},
		{"trailing input", `Text("x") Text("y")`, "unexpected identifier after action"},
		{"unterminated string", `Text("abc)`, "unterminated literal"},
		{"bad escape", `Text("\q")`, `unknown escape \q`},
		{"bad unicode escape", `Text("\u{110000}")`, `invalid \u{110000} escape`},
		{"json is not a token", `{"Text":"x"}`, "unexpected character '{'"},
		{"lone sign", `Scroll(-, Vertical)`, "sign without digits"},
		{"text needs string", `Text(5)`, "expected string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.payload)
			require.Error(t, err)
			assert.Nil(t, got)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "error %v is not a DecodeError", err)
			assert.Contains(t, decodeErr.Cause, tt.wantCause)
			assert.Equal(t, tt.payload, decodeErr.Payload)
		})
	}
}

func TestDecodeErrorOffset(t *testing.T) {
	_, err := Decode(`Key(Tab, Hold)`)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 9, decodeErr.Offset)
	assert.Contains(t, err.Error(), "offset 9")
}

func TestStringRoundTrip(t *testing.T) {
	actions := []Action{
		Text{Text: "quote \" tab \t nul \x00 bell \x07"},
		Key{Key: Unicode('\''), Direction: Press},
		Key{Key: Unicode('\\'), Direction: Release},
		Key{Key: KeyCode{Kind: KeyNamed, Name: KeyLeftArrow}, Direction: Click},
		Key{Key: Other(42), Direction: Click},
		Raw{Code: 30, Direction: Release},
		Button{Button: Forward, Direction: Press},
		MoveMouse{X: -1, Y: 1, Coordinate: Rel},
		Scroll{Length: 7, Axis: Horizontal},
	}

	for _, a := range actions {
		t.Run(a.String(), func(t *testing.T) {
			got, err := Decode(a.String())
			require.NoError(t, err)
			if diff := cmp.Diff(a, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", a.String(), diff)
			}
		})
	}
}

func TestFunctionKey(t *testing.T) {
	k, ok := Named("F7")
	require.True(t, ok)
	n, ok := k.FunctionKey()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = Unicode('F').FunctionKey()
	assert.False(t, ok)

	_, ok = Named("F21")
	assert.False(t, ok)
}
