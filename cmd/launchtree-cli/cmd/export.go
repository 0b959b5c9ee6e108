package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"launchtree/internal/domain"
)

var (
	exportFormat string
	exportOutput string
)

// exportNode is the YAML shape of a node; empty fields are left out
type exportNode struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Target   string        `yaml:"target,omitempty"`
	Favorite bool          `yaml:"favorite,omitempty"`
	Children []*exportNode `yaml:"children,omitempty"`
}

func toExport(node *domain.Node, state domain.UserState) *exportNode {
	out := &exportNode{
		ID:       node.ID,
		Name:     node.Name,
		Type:     node.Type.String(),
		Target:   node.Target,
		Favorite: state.IsFavorite(node.ID),
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, toExport(child, state))
	}
	return out
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tree as YAML or JSON",
	Long: `Export the whole tree. YAML output also marks favorites; JSON output is
the exact storage format and can be used as a tree file.

Examples:
  launchtree-cli export
  launchtree-cli export --format json -o launcher.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := GetSession().Root()

		var (
			data []byte
			err  error
		)
		switch exportFormat {
		case "yaml":
			data, err = yaml.Marshal(toExport(root, GetSession().State()))
		case "json":
			data, err = domain.EncodeTree(root)
		default:
			return fmt.Errorf("unsupported format %q (expected yaml or json)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode tree: %w", err)
		}

		var w io.Writer = os.Stdout
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		_, err = w.Write(data)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format (yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}
