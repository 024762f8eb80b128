package osutils

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"/data"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "/data"}},
		{"linux", "xdg-open", []string{"/data"}},
		{"freebsd", "xdg-open", []string{"/data"}},
	}
	for _, tt := range tests {
		name, args := openCommand(tt.goos, "/data")
		assert.Equal(t, tt.wantName, name, tt.goos)
		assert.Equal(t, tt.wantArgs, args, tt.goos)
	}
}

func TestStartDetachedReapsChild(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}

	done, err := startDetached(path)
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("child was not waited on")
	}
}

func TestStartDetachedMissingProgram(t *testing.T) {
	_, err := startDetached("facekey-no-such-program")
	assert.Error(t, err)
}
