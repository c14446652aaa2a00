package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddCompletionCommand verifies the custom completion command replaces
// cobra's default and carries all five subcommands.
func TestAddCompletionCommand(t *testing.T) {
	t.Parallel()

	rootCmd := &cobra.Command{Use: "seqgate"}
	AddCompletionCommand(rootCmd)

	completionCmd, _, err := rootCmd.Find([]string{"completion"})
	require.NoError(t, err)
	require.NotNil(t, completionCmd)
	assert.Equal(t, "completion", completionCmd.Use)

	assert.True(t, rootCmd.CompletionOptions.DisableDefaultCmd)

	for _, subcmd := range []string{"bash", "zsh", "fish", "powershell", "install"} {
		t.Run("has_"+subcmd+"_subcommand", func(t *testing.T) {
			cmd, _, err := completionCmd.Find([]string{subcmd})
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, subcmd, cmd.Use)
		})
	}
}

// TestCompletionScriptGeneration runs each generator subcommand and checks
// the emitted script mentions the binary and its shell's registration hook.
func TestCompletionScriptGeneration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell        string
		wantContains []string
	}{
		{shell: "bash", wantContains: []string{"bash completion", "seqgate"}},
		{shell: "zsh", wantContains: []string{"#compdef", "seqgate"}},
		{shell: "fish", wantContains: []string{"complete", "seqgate"}},
		{shell: "powershell", wantContains: []string{"Register-ArgumentCompleter", "seqgate"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()

			rootCmd := &cobra.Command{Use: "seqgate"}
			AddCompletionCommand(rootCmd)

			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs([]string{"completion", tt.shell})

			require.NoError(t, rootCmd.Execute())

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

// TestDetectShell covers the $SHELL basename mapping, including an empty
// variable standing in for an unset one.
func TestDetectShell(t *testing.T) {
	tests := []struct {
		name      string
		shellPath string
		want      shellType
	}{
		{name: "zsh", shellPath: "/bin/zsh", want: shellZsh},
		{name: "zsh from usr bin", shellPath: "/usr/bin/zsh", want: shellZsh},
		{name: "bash", shellPath: "/bin/bash", want: shellBash},
		{name: "fish", shellPath: "/usr/local/bin/fish", want: shellFish},
		{name: "unrecognized shell", shellPath: "/bin/ksh", want: shellUnknown},
		{name: "SHELL unset", shellPath: "", want: shellUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Can't use t.Parallel() with t.Setenv()
			t.Setenv("SHELL", tt.shellPath)

			assert.Equal(t, tt.want, detectShell())
		})
	}
}

// TestResolveShell checks flag values beat $SHELL detection and that both
// failure modes map to their sentinels.
func TestResolveShell(t *testing.T) {
	t.Run("explicit flag wins over environment", func(t *testing.T) {
		// Can't use t.Parallel() with t.Setenv()
		t.Setenv("SHELL", "/bin/zsh")

		shell, err := resolveShell("bash")
		require.NoError(t, err)
		assert.Equal(t, shellBash, shell)
	})

	t.Run("empty flag falls back to detection", func(t *testing.T) {
		t.Setenv("SHELL", "/usr/bin/fish")

		shell, err := resolveShell("")
		require.NoError(t, err)
		assert.Equal(t, shellFish, shell)
	})

	t.Run("unsupported flag value", func(t *testing.T) {
		_, err := resolveShell("cmd")
		require.Error(t, err)
		assert.ErrorIs(t, err, errUnsupportedShell)
	})

	t.Run("nothing to detect", func(t *testing.T) {
		t.Setenv("SHELL", "")

		_, err := resolveShell("")
		require.Error(t, err)
		assert.ErrorIs(t, err, errNoShellDetected)
	})
}

// TestGetShellRCFile checks each shell maps to its startup file.
func TestGetShellRCFile(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		shell    shellType
		expected string
	}{
		{name: "zsh", shell: shellZsh, expected: filepath.Join(home, ".zshrc")},
		{name: "bash", shell: shellBash, expected: filepath.Join(home, ".bashrc")},
		{name: "fish", shell: shellFish, expected: filepath.Join(home, ".config", "fish", "config.fish")},
		{name: "unknown", shell: shellUnknown, expected: ""},
		{name: "bogus value", shell: shellType("invalid"), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, getShellRCFile(tt.shell))
		})
	}
}

// TestRunCompletionInstall_Errors exercises the install command's rejection
// paths end to end through cobra.
func TestRunCompletionInstall_Errors(t *testing.T) {
	tests := []struct {
		name        string
		shellFlag   string
		shellEnv    string
		expectedErr error
	}{
		{
			name:        "unsupported shell flag",
			shellFlag:   "cmd",
			expectedErr: errUnsupportedShell,
		},
		{
			name:        "no shell detected",
			expectedErr: errNoShellDetected,
		},
		{
			name:        "unrecognized shell in environment",
			shellEnv:    "/bin/ksh",
			expectedErr: errNoShellDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Can't use t.Parallel() with t.Setenv()
			t.Setenv("SHELL", tt.shellEnv)

			rootCmd := &cobra.Command{Use: "seqgate"}
			AddCompletionCommand(rootCmd)

			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)

			args := []string{"completion", "install"}
			if tt.shellFlag != "" {
				args = append(args, "--shell", tt.shellFlag)
			}
			rootCmd.SetArgs(args)

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

// TestRunCompletionInstall_Quiet runs a full install against a scratch HOME
// and checks --quiet suppresses all progress output.
func TestRunCompletionInstall_Quiet(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("SHELL", "/bin/zsh")

	rootCmd := &cobra.Command{Use: "seqgate"}
	AddGlobalFlags(rootCmd, &GlobalFlags{})
	AddCompletionCommand(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"completion", "install", "--quiet"})

	require.NoError(t, rootCmd.Execute())

	assert.Empty(t, buf.String())
	assert.FileExists(t, filepath.Join(tmpHome, ".zsh", "completions", "_seqgate"))
}

// TestRunCompletionInstall_ReportsProgress runs a full install against a
// scratch HOME and checks the default chatty output.
func TestRunCompletionInstall_ReportsProgress(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("SHELL", "/bin/zsh")

	rootCmd := &cobra.Command{Use: "seqgate"}
	AddGlobalFlags(rootCmd, &GlobalFlags{})
	AddCompletionCommand(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"completion", "install"})

	require.NoError(t, rootCmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Detected shell: zsh")
	assert.Contains(t, output, "Created "+filepath.Join(tmpHome, ".zsh", "completions", "_seqgate"))
	assert.Contains(t, output, "Updated "+filepath.Join(tmpHome, ".zshrc"))
	assert.Contains(t, output, "Done!")
}

// TestInstallZshCompletions covers script generation plus the .zshrc edit.
func TestInstallZshCompletions(t *testing.T) {
	t.Parallel()

	tmpHome := t.TempDir()
	rootCmd := &cobra.Command{Use: "seqgate"}

	completionPath, rcUpdated, err := installZshCompletionsToDir(rootCmd, tmpHome)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, ".zsh", "completions", "_seqgate"), completionPath)
	require.FileExists(t, completionPath)

	content, err := os.ReadFile(completionPath) // #nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	assert.Contains(t, string(content), "#compdef seqgate")

	assert.True(t, rcUpdated)
	zshrcContent, err := os.ReadFile(filepath.Join(tmpHome, ".zshrc")) // #nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	zshrcStr := string(zshrcContent)
	assert.Contains(t, zshrcStr, "fpath=")
	assert.Contains(t, zshrcStr, "compinit")
	assert.Contains(t, zshrcStr, "seqgate shell completions")
}

// TestInstallZshCompletions_FullyConfigured leaves a .zshrc that already
// has fpath and compinit untouched.
func TestInstallZshCompletions_FullyConfigured(t *testing.T) {
	t.Parallel()

	tmpHome := t.TempDir()
	completionsDir := filepath.Join(tmpHome, ".zsh", "completions")

	existing := "# Existing config\nfpath=(" + completionsDir + " $fpath)\nautoload -U compinit && compinit\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpHome, ".zshrc"), []byte(existing), 0o600))

	rootCmd := &cobra.Command{Use: "seqgate"}

	completionPath, rcUpdated, err := installZshCompletionsToDir(rootCmd, tmpHome)
	require.NoError(t, err)

	assert.FileExists(t, completionPath)
	assert.False(t, rcUpdated)
}

// TestInstallBashCompletions covers script generation plus the .bashrc edit.
func TestInstallBashCompletions(t *testing.T) {
	t.Parallel()

	tmpHome := t.TempDir()
	rootCmd := &cobra.Command{Use: "seqgate"}

	completionPath, rcUpdated, err := installBashCompletionsToDir(rootCmd, tmpHome)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, ".bash_completion.d", "seqgate"), completionPath)
	require.FileExists(t, completionPath)

	content, err := os.ReadFile(completionPath) // #nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	assert.Contains(t, string(content), "bash completion")

	assert.True(t, rcUpdated)
	bashrcContent, err := os.ReadFile(filepath.Join(tmpHome, ".bashrc")) // #nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	bashrcStr := string(bashrcContent)
	assert.Contains(t, bashrcStr, ".bash_completion.d")
	assert.Contains(t, bashrcStr, "seqgate shell completions")
}

// TestInstallBashCompletions_ExistingRC leaves a .bashrc that already
// sources the completions directory untouched.
func TestInstallBashCompletions_ExistingRC(t *testing.T) {
	t.Parallel()

	tmpHome := t.TempDir()

	existing := "# Existing config\nfor f in ~/.bash_completion.d/*; do source \"$f\"; done\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpHome, ".bashrc"), []byte(existing), 0o600))

	rootCmd := &cobra.Command{Use: "seqgate"}

	completionPath, rcUpdated, err := installBashCompletionsToDir(rootCmd, tmpHome)
	require.NoError(t, err)

	assert.FileExists(t, completionPath)
	assert.False(t, rcUpdated)
}

// TestInstallFishCompletions checks the script lands where fish auto-loads
// it. No startup file should appear.
func TestInstallFishCompletions(t *testing.T) {
	t.Parallel()

	tmpHome := t.TempDir()
	rootCmd := &cobra.Command{Use: "seqgate"}

	completionPath, err := installFishCompletionsToDir(rootCmd, tmpHome)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpHome, ".config", "fish", "completions", "seqgate.fish"), completionPath)
	require.FileExists(t, completionPath)

	content, err := os.ReadFile(completionPath) // #nosec G304 -- path under t.TempDir()
	require.NoError(t, err)
	assert.Contains(t, string(content), "seqgate")
	assert.Contains(t, string(content), "complete")

	assert.NoFileExists(t, filepath.Join(tmpHome, ".config", "fish", "config.fish"))
}

// TestUpdateZshRC covers each combination of fpath and compinit already
// being present.
func TestUpdateZshRC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		existingContent string
		completionsDir  string
		expectUpdated   bool
		expectFpath     bool
		expectCompinit  bool
	}{
		{
			name:           "fresh zshrc gets both lines",
			completionsDir: "/home/user/.zsh/completions",
			expectUpdated:  true,
			expectFpath:    true,
			expectCompinit: true,
		},
		{
			name:            "compinit present, fpath missing",
			existingContent: "autoload -U compinit && compinit\n",
			completionsDir:  "/home/user/.zsh/completions",
			expectUpdated:   true,
			expectFpath:     true,
		},
		{
			name:            "fpath present, compinit missing",
			existingContent: "fpath=(/home/user/.zsh/completions $fpath)\n",
			completionsDir:  "/home/user/.zsh/completions",
			expectUpdated:   true,
			expectCompinit:  true,
		},
		{
			name:            "fully configured",
			existingContent: "fpath=(/home/user/.zsh/completions $fpath)\nautoload -U compinit && compinit\n",
			completionsDir:  "/home/user/.zsh/completions",
			expectUpdated:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpHome := t.TempDir()
			zshrcPath := filepath.Join(tmpHome, ".zshrc")
			if tt.existingContent != "" {
				require.NoError(t, os.WriteFile(zshrcPath, []byte(tt.existingContent), 0o600))
			}

			updated, err := updateZshRC(tmpHome, tt.completionsDir)
			require.NoError(t, err)
			assert.Equal(t, tt.expectUpdated, updated)

			if !tt.expectUpdated {
				return
			}

			content, err := os.ReadFile(zshrcPath) // #nosec G304 -- path under t.TempDir()
			require.NoError(t, err)
			if tt.expectFpath {
				assert.Contains(t, string(content), "fpath=")
			}
			if tt.expectCompinit {
				assert.Contains(t, string(content), "compinit")
			}
		})
	}
}

// TestUpdateBashRC covers the presence check for the sourcing loop.
func TestUpdateBashRC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		existingContent string
		completionsDir  string
		expectUpdated   bool
	}{
		{
			name:           "fresh bashrc gets the loop",
			completionsDir: "/home/user/.bash_completion.d",
			expectUpdated:  true,
		},
		{
			name:            "already sourced",
			existingContent: "for f in ~/.bash_completion.d/*; do source \"$f\"; done\n",
			completionsDir:  "/home/user/.bash_completion.d",
			expectUpdated:   false,
		},
		{
			name:            "unrelated content does not count",
			existingContent: "# Some other config\n",
			completionsDir:  "/home/user/.bash_completion.d",
			expectUpdated:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpHome := t.TempDir()
			bashrcPath := filepath.Join(tmpHome, ".bashrc")
			if tt.existingContent != "" {
				require.NoError(t, os.WriteFile(bashrcPath, []byte(tt.existingContent), 0o600))
			}

			updated, err := updateBashRC(tmpHome, tt.completionsDir)
			require.NoError(t, err)
			assert.Equal(t, tt.expectUpdated, updated)

			if updated {
				content, err := os.ReadFile(bashrcPath) // #nosec G304 -- path under t.TempDir()
				require.NoError(t, err)
				assert.Contains(t, string(content), ".bash_completion.d")
			}
		})
	}
}

// TestCompletionCmdStructure pins the Use and Short strings of the four
// generator subcommands.
func TestCompletionCmdStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cmdFunc       func() *cobra.Command
		expectedUse   string
		expectedShort string
	}{
		{
			name:          "bash",
			cmdFunc:       newBashCompletionCmd,
			expectedUse:   "bash",
			expectedShort: "Generate bash completion script",
		},
		{
			name:          "zsh",
			cmdFunc:       newZshCompletionCmd,
			expectedUse:   "zsh",
			expectedShort: "Generate zsh completion script",
		},
		{
			name:          "fish",
			cmdFunc:       newFishCompletionCmd,
			expectedUse:   "fish",
			expectedShort: "Generate fish completion script",
		},
		{
			name:          "powershell",
			cmdFunc:       newPowershellCompletionCmd,
			expectedUse:   "powershell",
			expectedShort: "Generate powershell completion script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := tt.cmdFunc()
			assert.Equal(t, tt.expectedUse, cmd.Use)
			assert.Equal(t, tt.expectedShort, cmd.Short)
			assert.NotEmpty(t, cmd.Long)
		})
	}
}
