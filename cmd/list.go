package cmd

import (
	"fmt"
	"strings"

	"github.com/getlawrence/antiplag/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported languages",
	Long: `List displays information about the languages antiplag accepts.

Available subcommands:
  languages   List supported programming languages`,
}

var listLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported programming languages",
	Long:  `List every accepted language id with the checker that handles it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appConfig(cmd)
		tools := make(map[string]string, len(app.Config.Tools))
		for id, t := range app.Config.Tools {
			tools[id] = strings.TrimSpace(t.Command + " " + strings.Join(t.Args, " "))
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), ui.RenderLanguages(app.Registry, tools))
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listLanguagesCmd)
}
