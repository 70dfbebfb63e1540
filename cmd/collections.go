package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"senametas/storage"
)

var collectionsDBPath string

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List stored collections and their document counts",
	Example: `
  # List collections in the default database
  senametas collections

  # Custom database path
  senametas collections --db ./senametas.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(collectionsDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		infos, err := store.ListCollections()
		if err != nil {
			return err
		}

		if len(infos) == 0 {
			fmt.Println("No collections stored yet. Load a workbook first with: senametas process")
			return nil
		}

		for _, info := range infos {
			fmt.Printf("%s: %d documents\n", info.Name, info.Documents)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)

	collectionsCmd.Flags().StringVar(&collectionsDBPath, "db", "./senametas.db", "Path to local SQLite database")
}
