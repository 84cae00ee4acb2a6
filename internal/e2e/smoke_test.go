package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runCLE(t, binaryPath, home, "account", "create", "smoke@example.com")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runCLE(t, binaryPath, home, "session", "create", "smoke@example.com")
	require.NoError(t, err, "stderr: %s", stderr)
	token := strings.TrimSpace(stdout)
	require.NotEmpty(t, token)

	_, stderr, err = runCLE(t, binaryPath, home, "usage", "record", "smoke@example.com")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runCLE(t, binaryPath, home, "account", "get", "smoke@example.com")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Account: smoke@example.com (Free)")
	assert.Contains(t, stdout, "9/10 left")

	_, stderr, err = runCLE(t, binaryPath, home, "session", "end", token)
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runCLE(t, binaryPath, home, "session", "validate", token)
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "cle-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/cle")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build cle binary: %s", string(output))
	return binaryPath
}

func runCLE(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "CLE_LOG_LEVEL=warn")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
