package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchtree/internal/adapters/filesystem"
	"launchtree/internal/application/commands"
)

var importAt string

var importCmd = &cobra.Command{
	Use:   "import <path-or-url>...",
	Short: "Add paths, URLs and .url shortcut files as launchers",
	Long: `Import values the way a drag and drop would: http(s) URLs become url
nodes, .url Internet Shortcut files become url nodes for the link they hold,
and anything else becomes a path node named after its last element.

Nodes are placed relative to --at like "add" does, keeping their order.

Examples:
  launchtree-cli import ~/Downloads/report.pdf https://go.dev
  launchtree-cli import ~/Desktop/*.url --at <group-id>`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		importDropCmd := commands.NewImportDropCommand(GetSession(), filesystem.NewDropImporter(), importAt, args)
		result, err := importDropCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		for _, n := range result.Nodes {
			fmt.Println(formatNode(n))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importAt, "at", "", "id of the node to insert relative to")
	rootCmd.AddCommand(importCmd)
}
