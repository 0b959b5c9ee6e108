package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a node and its subtree",
	Long: `Delete a node from the tree. Groups are removed with everything in them.

Example:
  launchtree-cli delete <id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deleteNodeCmd := commands.NewDeleteCommand(GetSession(), args[0])
		result, err := deleteNodeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
