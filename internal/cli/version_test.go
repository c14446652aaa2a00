package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Structure(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	rootCmd := newRootCmd(flags, BuildInfo{})

	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Name())
}

func TestRunVersion_TextOutput(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	rootCmd := newRootCmd(flags, BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})

	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runVersion(cmd, &buf))

	assert.Equal(t, "seqgate 1.2.3 (commit: abc123, built: 2026-01-01)\n", buf.String())
}

func TestRunVersion_DefaultBuildInfo(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	rootCmd := newRootCmd(flags, BuildInfo{})

	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runVersion(cmd, &buf))

	assert.Equal(t, "seqgate dev (commit: none, built: unknown)\n", buf.String())
}

func TestRunVersion_JSONOutput(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	rootCmd := newRootCmd(flags, BuildInfo{Version: "1.2.3"})

	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)
	require.NoError(t, cmd.Flag("output").Value.Set(OutputJSON))

	var buf bytes.Buffer
	require.NoError(t, runVersion(cmd, &buf))

	var result versionResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "1.2.3 (commit: none, built: unknown)", result.Version)
}
