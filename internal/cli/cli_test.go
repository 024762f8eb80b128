package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facekey/internal/action"
)

func TestMain(m *testing.M) {
	setupLogger = func(int) {}
	os.Exit(m.Run())
}

// isolate points the XDG directories at a temp root and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	xdg.Reload()
	return root
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "facekey version "+Version+"\n", out)
}

func TestDocumentCommands(t *testing.T) {
	root := isolate(t)
	dataDir := filepath.Join(root, "docs")

	out, err := run(t, "", "--data-dir", dataDir, "settings", "get")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)

	_, err = run(t, "", "--data-dir", dataDir, "settings", "set", `{"theme":"dark"}`)
	require.NoError(t, err)

	out, err = run(t, "", "--data-dir", dataDir, "settings", "get")
	require.NoError(t, err)
	assert.Equal(t, "{\"theme\":\"dark\"}\n", out)

	_, err = run(t, `{"profiles":[]}`, "--data-dir", dataDir, "profiles", "set", "-")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dataDir, "profiles.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"profiles":[]}`, string(raw))

	out, err = run(t, "", "--data-dir", dataDir, "profiles", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "profiles.json")+"\n", out)
}

func TestDocumentDefaultDataDir(t *testing.T) {
	root := isolate(t)

	_, err := run(t, "", "profiles", "set", `{"p":1}`)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "data", "facekey", "profiles.json"))
}

func TestDocumentSetFailure(t *testing.T) {
	root := isolate(t)
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := run(t, "", "--data-dir", blocker, "settings", "set", "{}")
	assert.Error(t, err)
}

func TestExec(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "exec", "--dry-run", `Key(Unicode('a'), Click)`)
	require.NoError(t, err)

	_, err = run(t, "", "exec", "--dry-run", `Key(Unicode('a'), Hold)`)
	var decodeErr *action.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestExecUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("FACEKEY_INPUT_BACKEND", "uinput")

	_, err := run(t, "", "exec", `Text("x")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input backend")
}

func TestServeTrayUnavailable(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "serve", "--tray", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tray support")
}

func TestAutostartStatus(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "autostart", "status")
	require.NoError(t, err)
	assert.Contains(t, []string{"enabled\n", "disabled\n"}, out)
}
