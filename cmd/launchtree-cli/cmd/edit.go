package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"launchtree/internal/application"
	"launchtree/internal/application/commands"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a node's name, type or target",
	Long: `Edit a node. Only the flags that are given are changed.

Changing a node to group or separator clears its target; path and url
require one. A group with children cannot change type.

Examples:
  launchtree-cli edit <id> --name "New name"
  launchtree-cli edit <id> --type url --target https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update application.NodeUpdate
		for flag, field := range map[string]**string{
			"name":   &update.Name,
			"type":   &update.Type,
			"target": &update.Target,
		} {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag)
				*field = &value
			}
		}
		ctx := context.Background()

		editNodeCmd := commands.NewEditNodeCommand(GetSession(), args[0], update)
		result, err := editNodeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	editCmd.Flags().String("name", "", "new name")
	editCmd.Flags().String("type", "", "new type (group, path, url, separator)")
	editCmd.Flags().String("target", "", "new target path or URL")
	rootCmd.AddCommand(editCmd)
}
