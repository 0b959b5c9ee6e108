package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
)

var (
	favOn  bool
	favOff bool
)

var favCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle a launcher as favorite",
	Long: `Toggle the favorite flag of a path or url node, or force it with --on/--off.

Examples:
  launchtree-cli fav <id>
  launchtree-cli fav <id> --off`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if favOn && favOff {
			return fmt.Errorf("--on and --off are mutually exclusive")
		}

		favoriteCmd := commands.NewToggleFavoriteCommand(GetSession(), args[0])
		if favOn || favOff {
			favoriteCmd = commands.NewSetFavoriteCommand(GetSession(), args[0], favOn)
		}

		ctx := context.Background()
		result, err := favoriteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites [query]",
	Short: "List favorite launchers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMode(domain.ViewFavorites, args, "No favorites.")
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent [query]",
	Short: "List recently launched entries, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listMode(domain.ViewRecent, args, "Nothing launched yet.")
	},
}

func listMode(mode domain.ViewMode, args []string, empty string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}
	ctx := context.Background()

	result, err := commands.NewListViewCommand(GetSession(), mode, query).Execute(ctx)
	if err != nil {
		return err
	}
	printNodes(result.Nodes, empty)
	return nil
}

var viewCmd = &cobra.Command{
	Use:   "view [mode]",
	Short: "Show or set the saved view mode (all, favorites, recent)",
	Long: `Show the view mode the TUI opens with, or persist a new one.

Examples:
  launchtree-cli view
  launchtree-cli view favorites`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(GetSession().State().ViewMode())
			return nil
		}
		ctx := context.Background()

		mode, err := commands.NewSetViewModeCommand(GetSession(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("View mode set to %s\n", mode)
		return nil
	},
}

func init() {
	favCmd.Flags().BoolVar(&favOn, "on", false, "mark as favorite")
	favCmd.Flags().BoolVar(&favOff, "off", false, "remove from favorites")
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(viewCmd)
}
