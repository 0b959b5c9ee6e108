package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"launchtree/internal/application/commands"
	"launchtree/internal/domain"
)

var treeQuery string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the launcher tree",
	Long: `Display the launcher tree with node IDs.

With --query only matching nodes, their ancestors and, for matching groups,
their whole subtree are shown.

Examples:
  launchtree-cli tree
  launchtree-cli tree --query docs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		listCmd := commands.NewListViewCommand(GetSession(), domain.ViewAll, treeQuery)
		result, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}

		root := GetSession().Root()
		if treeQuery == "" {
			fmt.Println(root.Name)
		}
		for _, child := range root.Children {
			printTree(child, result.Visible, 0)
		}
		return nil
	},
}

func printTree(node *domain.Node, visible domain.IDSet, depth int) {
	if !visible.Has(node.ID) {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s\n", indent, formatNode(node))

	for _, child := range node.Children {
		printTree(child, visible, depth+1)
	}
}

// formatNode renders "id  [type] name -> target" with a star for favorites
func formatNode(node *domain.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s] %s", node.ID, node.Type, domain.DisplayName(node))
	if node.Target != "" {
		fmt.Fprintf(&b, " -> %s", node.Target)
	}
	if GetSession().State().IsFavorite(node.ID) {
		b.WriteString(" *")
	}
	return b.String()
}

func printNodes(nodes []*domain.Node, empty string) {
	if len(nodes) == 0 {
		fmt.Println(empty)
		return
	}
	for _, n := range nodes {
		fmt.Println(formatNode(n))
	}
}

func init() {
	treeCmd.Flags().StringVarP(&treeQuery, "query", "q", "", "filter by name, target or type")
	rootCmd.AddCommand(treeCmd)
}
