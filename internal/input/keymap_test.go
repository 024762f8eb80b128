package input

import (
	"math"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facekey/internal/action"
)

func TestVirtualKey(t *testing.T) {
	tests := []struct {
		name   string
		key    action.KeyCode
		want   uint16
		wantOK bool
	}{
		{"named return", named(t, action.KeyReturn), 0x0D, true},
		{"function key", named(t, "F7"), 0x76, true},
		{"lowercase letter", action.Unicode('a'), 0x41, true},
		{"last lowercase letter", action.Unicode('z'), 0x5A, true},
		{"digit", action.Unicode('5'), 0x35, true},
		{"uppercase letter keeps its case", action.Unicode('A'), 0, false},
		{"non-ascii", action.Unicode('é'), 0, false},
		{"other passes through", action.Other(0x7E), 0x7E, true},
		{"other upper bound", action.Other(0xFFFF), 0xFFFF, true},
		{"other out of range", action.Other(0x10000), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := virtualKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeysym(t *testing.T) {
	tests := []struct {
		name string
		key  action.KeyCode
		want string
	}{
		{"named", named(t, action.KeyReturn), "Return"},
		{"uppercase", action.Unicode('A'), "A"},
		{"symbol", action.Unicode('€'), "U20AC"},
		{"other is a raw keysym", action.Other(0x7E), "0x7e"},
		{"large other", action.Other(0x1008FF11), "0x1008ff11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keysym(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWheelData(t *testing.T) {
	assert.Equal(t, uint32(120), wheelData(1))
	assert.Equal(t, uint32(0xFFFFFF88), wheelData(-1), "-120 as two's complement")
	assert.Equal(t, uint32(action.MaxScroll*wheelDelta), wheelData(action.MaxScroll))
	assert.Equal(t, uint32(math.MaxInt32), wheelData(math.MaxInt32))
	assert.Equal(t, uint32(0x80000000), wheelData(math.MinInt32), "clamped to MinInt32")
}

func TestChunkUTF16(t *testing.T) {
	t.Run("splits at the limit", func(t *testing.T) {
		units := utf16.Encode([]rune("abcdefg"))
		chunks := chunkUTF16(units, 3)
		require.Len(t, chunks, 3)
		assert.Equal(t, "abc", string(utf16.Decode(chunks[0])))
		assert.Equal(t, "g", string(utf16.Decode(chunks[2])))
	})

	t.Run("keeps surrogate pairs together", func(t *testing.T) {
		// 19 ASCII units then an emoji straddling the 20-unit boundary.
		text := "abcdefghijklmnopqrs😀tail"
		units := utf16.Encode([]rune(text))
		chunks := chunkUTF16(units, 20)

		var joined string
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 20)
			last := rune(c[len(c)-1])
			assert.False(t, last >= 0xD800 && last < 0xDC00, "chunk ends in a high surrogate")
			joined += string(utf16.Decode(c))
		}
		assert.Equal(t, text, joined)
		assert.Equal(t, "abcdefghijklmnopqrs", string(utf16.Decode(chunks[0])))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, chunkUTF16(nil, 20))
	})
}
