// Package template provides the command that writes a starter project file.
package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandrine-crypto/ganttkit/internal/export"
	"github.com/sandrine-crypto/ganttkit/internal/output"
)

// NewCommand returns the template subcommand.
func NewCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "template <out.xlsx|out.csv>",
		Short: "Write a starter project file with example tasks",
		Long: `Writes a project template with the expected columns (catégorie, tâche,
début, fin) and a few example rows. The output format follows the file
extension: .xlsx or .csv.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			path := args[0]
			switch filepath.Ext(path) {
			case ".xlsx", ".csv":
			default:
				return fmt.Errorf("unsupported template extension %q — use .xlsx or .csv", filepath.Ext(path))
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists — use --force to overwrite", path)
				}
			}

			if err := export.WriteTemplate(path); err != nil {
				return output.System(err)
			}

			if jsonFlag {
				return output.PrintJSON("template", map[string]string{"output": path})
			}
			fmt.Printf("Wrote template %s.\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
