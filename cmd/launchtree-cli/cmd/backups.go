package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List timestamped backups of the tree file",
	Long: `List the backup generations kept next to the tree file, newest first.
A copy of the previous tree is taken before every save; the oldest
generations beyond backup_keep are deleted.

Example:
  launchtree-cli backups`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gens, err := repo.ListGenerations()
		if err != nil {
			return err
		}

		fmt.Printf("Tree:   %s\n", repo.Path())
		fmt.Printf("Backup: %s\n\n", repo.BackupPath())
		if len(gens) == 0 {
			fmt.Println("No generations yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
		for _, g := range gens {
			fmt.Fprintf(w, "%s\t%d\t%s\n", g.Name, g.Size, g.ModTime.Format(time.DateTime))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}
