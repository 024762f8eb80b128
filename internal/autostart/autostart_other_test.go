//go:build !darwin && !windows

package autostart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntryLifecycle(t *testing.T) {
	root := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", root)
	xdg.Reload()

	assert.False(t, IsEnabled())
	require.NoError(t, Disable(), "disabling when not enabled")

	require.NoError(t, enable("/opt/facekey/bin/facekey"))
	assert.True(t, IsEnabled())

	data, err := os.ReadFile(filepath.Join(root, "autostart", "com.facekey.agent.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/opt/facekey/bin/facekey" serve --tray`+"\n")
	assert.Contains(t, string(data), "[Desktop Entry]\n")

	require.NoError(t, Disable())
	assert.False(t, IsEnabled())
}
