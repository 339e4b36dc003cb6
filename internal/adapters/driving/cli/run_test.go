package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkspace writes a config file pointing every path at temp
// directories and returns them.
func setupWorkspace(t *testing.T) (configDir, knowledge, archive string) {
	t.Helper()

	configDir = t.TempDir()
	knowledge = t.TempDir()
	archive = t.TempDir()

	config := fmt.Sprintf(
		"[paths]\nknowledge = %q\narchive = %q\noutput = %q\nstorage = %q\n",
		knowledge, archive, t.TempDir(), t.TempDir(),
	)
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))
	return configDir, knowledge, archive
}

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	t.Run("ingests and archives files", func(t *testing.T) {
		configDir, knowledge, archive := setupWorkspace(t)
		require.NoError(t, os.WriteFile(filepath.Join(knowledge, "notes.txt"), []byte("some notes"), 0o600))

		out, err := executeCLI(t, "--config", configDir, "run")
		require.NoError(t, err)

		assert.Contains(t, out, "notes.txt")
		assert.Contains(t, out, "1 processed, 0 failed")

		_, statErr := os.Stat(filepath.Join(archive, "notes.txt"))
		assert.NoError(t, statErr, "processed file should be archived")
	})

	t.Run("empty knowledge tree", func(t *testing.T) {
		configDir, _, _ := setupWorkspace(t)

		out, err := executeCLI(t, "--config", configDir, "run")
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing to process.")
	})

	t.Run("failed files are reported and kept", func(t *testing.T) {
		configDir, knowledge, archive := setupWorkspace(t)
		// A pptx that is not a zip archive fails extraction.
		require.NoError(t, os.WriteFile(filepath.Join(knowledge, "broken.pptx"), []byte("not a deck"), 0o600))

		out, err := executeCLI(t, "--config", configDir, "run")
		require.NoError(t, err, "per-file failures must not fail the command")

		assert.Contains(t, out, "0 processed, 1 failed")
		_, statErr := os.Stat(filepath.Join(knowledge, "broken.pptx"))
		assert.NoError(t, statErr, "failed file stays for retry")
		_, statErr = os.Stat(filepath.Join(archive, "broken.pptx"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reset refused unless enabled", func(t *testing.T) {
		configDir, _, _ := setupWorkspace(t)

		_, err := executeCLI(t, "--config", configDir, "run", "--reset")
		require.Error(t, err)

		f, openErr := os.OpenFile(filepath.Join(configDir, "config.toml"), os.O_APPEND|os.O_WRONLY, 0o600)
		require.NoError(t, openErr)
		_, writeErr := f.WriteString("\n[rag]\nallow_reset = true\n")
		require.NoError(t, writeErr)
		require.NoError(t, f.Close())

		out, err := executeCLI(t, "--config", configDir, "run", "--reset")
		require.NoError(t, err)
		assert.Contains(t, out, "Collection reset.")
	})
}
