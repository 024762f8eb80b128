package paths

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestPathsFollowXDG(t *testing.T) {
	root := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	xdg.Reload()

	assert.Equal(t, filepath.Join(root, "data", "facekey"), DataDir())
	assert.Equal(t, filepath.Join(root, "config", "facekey", "config.toml"), ConfigFile())
	assert.Equal(t, filepath.Join(root, "state", "facekey", "facekey.log"), LogFile())
	assert.Equal(t, filepath.Join(root, "config", "autostart"), AutostartDir())
}
