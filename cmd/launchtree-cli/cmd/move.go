package cmd

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
)

var moveRow int

var moveCmd = &cobra.Command{
	Use:   "move <id> <parent-id>",
	Short: "Move a node under another group",
	Long: `Move a node, with its subtree, under another group.

--row is the position among the destination's children, counted before the
node is removed. It is clamped; omit it to append.

Examples:
  launchtree-cli move <id> root
  launchtree-cli move <id> <group-id> --row 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		row := moveRow
		if row < 0 {
			row = math.MaxInt32
		}
		ctx := context.Background()

		moveNodeCmd := commands.NewMoveNodeCommand(GetSession(), args[0], args[1], row)
		result, err := moveNodeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var reorderBy int

var reorderCmd = &cobra.Command{
	Use:   "reorder <id>",
	Short: "Shift a node among its siblings",
	Long: `Shift a node up (negative --by) or down (positive --by) among its siblings.
Moving past either end leaves the node where it is.

Examples:
  launchtree-cli reorder <id> --by -1
  launchtree-cli reorder <id> --by 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewReorderCommand(GetSession(), args[0], reorderBy).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	moveCmd.Flags().IntVar(&moveRow, "row", -1, "position among the new siblings")
	reorderCmd.Flags().IntVar(&reorderBy, "by", 1, "rows to shift, negative moves up")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(reorderCmd)
}
