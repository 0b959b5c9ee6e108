package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
)

var addAt string

var addCmd = &cobra.Command{
	Use:   "add <type> <name> [target]",
	Short: "Add a group, path, url or separator",
	Long: `Add a node to the launcher tree.

The new node is placed relative to --at: inside it (last child) when it is
a group, right after it when it is a leaf, and at the end of the root when
--at is omitted.

Examples:
  launchtree-cli add group "Tools"
  launchtree-cli add path "Notes" ~/notes.txt --at <group-id>
  launchtree-cli add url "Docs" https://go.dev/doc/
  launchtree-cli add separator "----" --at <node-id>`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target string
		if len(args) == 3 {
			target = args[2]
		}
		ctx := context.Background()

		addNodeCmd := commands.NewAddNodeCommand(GetSession(), addAt, args[0], args[1], target)
		result, err := addNodeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		fmt.Println(result.Node.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "id of the node to insert relative to")
	rootCmd.AddCommand(addCmd)
}
