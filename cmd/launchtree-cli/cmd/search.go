package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search nodes by name, target or type",
	Long: `Search the launcher tree. Results are ranked by relevance, best first.

Examples:
  launchtree-cli search docs
  launchtree-cli search "release notes"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		ctx := context.Background()

		searchNodesCmd := commands.NewSearchCommand(GetSession(), query)
		result, err := searchNodesCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Matches) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		for _, m := range result.Matches {
			fmt.Println(formatNode(m.Node))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
