// Package shell provides the command that starts the interactive REPL.
package shell

import (
	"github.com/spf13/cobra"

	ishell "github.com/sandrine-crypto/ganttkit/internal/shell"
)

// NewCommand returns the shell subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive ganttkit session",
		Long: `Starts a readline shell with history and tab completion. Load a project
file once, then inspect its categories and tasks and write exports
without re-parsing it each time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ishell.NewSession()
			if err != nil {
				return err
			}
			return session.Run(cmd.Context())
		},
	}
}
