// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for ganttkit.

Install instructions:
  Bash:       ganttkit completion bash > /etc/bash_completion.d/ganttkit
              echo 'source <(ganttkit completion bash)' >> ~/.bashrc
  Zsh:        ganttkit completion zsh > ~/.zsh/completions/_ganttkit
  Fish:       ganttkit completion fish > ~/.config/fish/completions/ganttkit.fish
  PowerShell: ganttkit completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# ganttkit bash completion")
				fmt.Fprintln(os.Stdout, "# Install: ganttkit completion bash > /etc/bash_completion.d/ganttkit")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# ganttkit zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: ganttkit completion zsh > ~/.zsh/completions/_ganttkit")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# ganttkit fish completion")
				fmt.Fprintln(os.Stdout, "# Install: ganttkit completion fish > ~/.config/fish/completions/ganttkit.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# ganttkit PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: ganttkit completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
