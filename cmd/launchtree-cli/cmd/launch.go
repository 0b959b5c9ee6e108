package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
)

var launchCmd = &cobra.Command{
	Use:   "launch <id>",
	Short: "Open a path or url node",
	Long: `Open a node's target with the operating system and record it as recent.

Example:
  launchtree-cli launch <id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		launchNodeCmd := commands.NewLaunchCommand(GetSession(), GetLauncher(), GetHistory(), args[0])
		result, err := launchNodeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var (
	historyLimit int
	historyTop   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show launch history",
	Long: `Show recorded launch attempts, newest first, or the most launched
entries with --top.

Examples:
  launchtree-cli history --limit 10
  launchtree-cli history --top`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if history == nil {
			return fmt.Errorf("launch history is disabled (history_db is empty or unavailable)")
		}
		ctx := context.Background()

		if historyTop {
			counts, err := history.TopLaunched(ctx, historyLimit)
			if err != nil {
				return err
			}
			for _, c := range counts {
				fmt.Printf("%4d  %s  %s (last %s)\n", c.Count, c.NodeID, c.Name, c.Last.Format(time.DateTime))
			}
			return nil
		}

		records, err := commands.NewListHistoryCommand(GetHistory(), historyLimit).Execute(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No launches recorded.")
			return nil
		}
		for _, r := range records {
			status := "ok"
			if !r.OK {
				status = "failed: " + r.Error
			}
			fmt.Printf("%s  %s  [%s] %s -> %s  %s\n",
				r.At.Format(time.DateTime), r.NodeID, r.Type, r.Name, r.Target, status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of rows")
	historyCmd.Flags().BoolVar(&historyTop, "top", false, "show the most launched entries")
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(historyCmd)
}
