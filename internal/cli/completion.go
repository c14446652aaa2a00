// Package cli provides the command-line interface for seqgate.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// shellType names a shell the install subcommand knows how to configure.
type shellType string

const (
	shellZsh     shellType = "zsh"
	shellBash    shellType = "bash"
	shellFish    shellType = "fish"
	shellUnknown shellType = "unknown"
)

var (
	errUnsupportedShell = errors.New("unsupported shell (choose zsh, bash, or fish)")
	errNoShellDetected  = errors.New("could not detect a shell from $SHELL; pass --shell")
)

// AddCompletionCommand replaces cobra's stock completion command with one
// that also offers an install subcommand for one-step setup.
func AddCompletionCommand(rootCmd *cobra.Command) {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for seqgate.

Run "seqgate completion install" to set completions up automatically, or
generate a script for manual installation:

  seqgate completion bash
  seqgate completion zsh
  seqgate completion fish
  seqgate completion powershell`,
	}

	completionCmd.AddCommand(
		newBashCompletionCmd(),
		newZshCompletionCmd(),
		newFishCompletionCmd(),
		newPowershellCompletionCmd(),
		newInstallCompletionCmd(),
	)

	rootCmd.AddCommand(completionCmd)
}

// genCompletionCmd builds one script-generating subcommand. All four shells
// share the "Generate <shell> completion script" phrasing.
func genCompletionCmd(shell, loadHint string, gen func(*cobra.Command, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Generate %s completion script", shell),
		Long: fmt.Sprintf(`Generate %s completion script for seqgate.

To load completions in current session:
  %s

To install completions permanently:
  seqgate completion install --shell %s`, shell, loadHint, shell),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

func newBashCompletionCmd() *cobra.Command {
	return genCompletionCmd("bash", "source <(seqgate completion bash)",
		func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		})
}

func newZshCompletionCmd() *cobra.Command {
	return genCompletionCmd("zsh", "source <(seqgate completion zsh)",
		func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		})
}

func newFishCompletionCmd() *cobra.Command {
	return genCompletionCmd("fish", "seqgate completion fish | source",
		func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		})
}

func newPowershellCompletionCmd() *cobra.Command {
	cmd := genCompletionCmd("powershell", "seqgate completion powershell | Out-String | Invoke-Expression",
		func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		})

	// install does not handle powershell, so its help drops that hint.
	cmd.Long = `Generate powershell completion script for seqgate.

To load completions in current session:
  seqgate completion powershell | Out-String | Invoke-Expression`

	return cmd
}

func newInstallCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions automatically",
		Long: `Install shell completions for seqgate.

The shell is detected from $SHELL and can be overridden with --shell.
Supported shells: zsh, bash, fish

Examples:
  seqgate completion install              # Auto-detect shell
  seqgate completion install --shell zsh  # Force zsh`,
		RunE: runCompletionInstall,
	}

	cmd.Flags().String("shell", "", "Shell to install completions for (zsh, bash, fish)")
	return cmd
}

// runCompletionInstall writes the completion script for the chosen shell
// and wires it into the shell's startup file when needed.
func runCompletionInstall(cmd *cobra.Command, _ []string) error {
	shellFlag, _ := cmd.Flags().GetString("shell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	shell, err := resolveShell(shellFlag)
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("Detected shell: %s\n\n", shell)
		cmd.Println("Installing completions...")
	}

	rootCmd := cmd.Root()

	var completionPath string
	var rcUpdated bool

	switch shell {
	case shellZsh:
		completionPath, rcUpdated, err = installZshCompletions(rootCmd)
	case shellBash:
		completionPath, rcUpdated, err = installBashCompletions(rootCmd)
	case shellFish:
		completionPath, err = installFishCompletions(rootCmd)
	case shellUnknown:
		return errNoShellDetected
	}
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("  Created %s\n", completionPath)
		if rcUpdated {
			cmd.Printf("  Updated %s\n", getShellRCFile(shell))
		}
		cmd.Println()
		cmd.Printf("Done! Restart your shell or run: source %s\n", getShellRCFile(shell))
	}

	return nil
}

// resolveShell picks the target shell from the flag value, falling back to
// $SHELL detection when the flag is empty.
func resolveShell(flag string) (shellType, error) {
	if flag == "" {
		shell := detectShell()
		if shell == shellUnknown {
			return shellUnknown, errNoShellDetected
		}
		return shell, nil
	}

	shell := shellType(flag)
	switch shell {
	case shellZsh, shellBash, shellFish:
		return shell, nil
	default:
		return shellUnknown, fmt.Errorf("%s: %w", flag, errUnsupportedShell)
	}
}

// detectShell maps the basename of $SHELL to a supported shell.
func detectShell() shellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return shellUnknown
	}

	switch filepath.Base(shellPath) {
	case "zsh":
		return shellZsh
	case "bash":
		return shellBash
	case "fish":
		return shellFish
	default:
		return shellUnknown
	}
}

// getShellRCFile returns the startup file a shell sources, or "" for a
// shell it does not recognize.
func getShellRCFile(shell shellType) string {
	home, _ := os.UserHomeDir()
	switch shell {
	case shellZsh:
		return filepath.Join(home, ".zshrc")
	case shellBash:
		return filepath.Join(home, ".bashrc")
	case shellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return ""
	}
}

// writeCompletionScript generates a completion script into dir/name,
// creating dir first. Shared by the three shell installers.
func writeCompletionScript(dir, name string, gen func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("could not create %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := gen(&buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}

	return path, nil
}

// installZshCompletions writes ~/.zsh/completions/_seqgate and wires fpath
// plus compinit into ~/.zshrc when missing.
func installZshCompletions(rootCmd *cobra.Command) (string, bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("could not determine home directory: %w", err)
	}
	return installZshCompletionsToDir(rootCmd, home)
}

// installZshCompletionsToDir is the home-parameterized body of
// installZshCompletions so tests can aim it at a scratch directory.
func installZshCompletionsToDir(rootCmd *cobra.Command, home string) (string, bool, error) {
	completionsDir := filepath.Join(home, ".zsh", "completions")

	completionPath, err := writeCompletionScript(completionsDir, "_seqgate", rootCmd.GenZshCompletion)
	if err != nil {
		return "", false, err
	}

	rcUpdated, err := updateZshRC(home, completionsDir)
	if err != nil {
		return completionPath, false, fmt.Errorf("could not update .zshrc: %w", err)
	}

	return completionPath, rcUpdated, nil
}

// updateZshRC adds fpath and compinit lines to .zshrc unless both are
// already present. Reports whether the file changed.
func updateZshRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".zshrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	var additions []string
	if !strings.Contains(string(content), completionsDir) {
		additions = append(additions, fmt.Sprintf("fpath=(%s $fpath)", completionsDir))
	}
	if !strings.Contains(string(content), "compinit") {
		additions = append(additions, "autoload -U compinit && compinit")
	}
	if len(additions) == 0 {
		return false, nil
	}

	block := "\n# seqgate shell completions\n" + strings.Join(additions, "\n") + "\n"
	if err := appendToRC(rcPath, block); err != nil {
		return false, err
	}

	return true, nil
}

// installBashCompletions writes ~/.bash_completion.d/seqgate and makes
// ~/.bashrc source that directory.
func installBashCompletions(rootCmd *cobra.Command) (string, bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("could not determine home directory: %w", err)
	}
	return installBashCompletionsToDir(rootCmd, home)
}

// installBashCompletionsToDir is the home-parameterized body of
// installBashCompletions so tests can aim it at a scratch directory.
func installBashCompletionsToDir(rootCmd *cobra.Command, home string) (string, bool, error) {
	completionsDir := filepath.Join(home, ".bash_completion.d")

	completionPath, err := writeCompletionScript(completionsDir, "seqgate", rootCmd.GenBashCompletion)
	if err != nil {
		return "", false, err
	}

	rcUpdated, err := updateBashRC(home, completionsDir)
	if err != nil {
		return completionPath, false, fmt.Errorf("could not update .bashrc: %w", err)
	}

	return completionPath, rcUpdated, nil
}

// updateBashRC appends a loop that sources every file in the completions
// directory, unless .bashrc already references one.
func updateBashRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".bashrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if strings.Contains(string(content), ".bash_completion.d") {
		return false, nil
	}

	block := fmt.Sprintf(`
# seqgate shell completions
for f in %s/*; do
  [ -f "$f" ] && source "$f"
done
`, completionsDir)

	if err := appendToRC(rcPath, block); err != nil {
		return false, err
	}

	return true, nil
}

// installFishCompletions writes ~/.config/fish/completions/seqgate.fish.
// Fish auto-loads that directory, so no startup-file edit is needed.
func installFishCompletions(rootCmd *cobra.Command) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return installFishCompletionsToDir(rootCmd, home)
}

// installFishCompletionsToDir is the home-parameterized body of
// installFishCompletions so tests can aim it at a scratch directory.
func installFishCompletionsToDir(rootCmd *cobra.Command, home string) (string, error) {
	dir := filepath.Join(home, ".config", "fish", "completions")
	return writeCompletionScript(dir, "seqgate.fish", func(w io.Writer) error {
		return rootCmd.GenFishCompletion(w, true)
	})
}

// appendToRC appends a labeled block to a shell startup file, creating the
// file when absent.
func appendToRC(rcPath, block string) error {
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path built from the user's home directory
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteString(block)
	return err
}
