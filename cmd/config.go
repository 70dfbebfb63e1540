package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage senametas configuration file values.",
	Long: `Create and display the senametas configuration file.

The configuration stores application-wide values:
- period (stamped on every extracted record)
- database.path
- server.port
- ingest.collection_prefix / ingest.sheets`,
	Example: `
  # Create default config in $HOME/.senametas.yaml
  senametas config create

  # Show active config and source file
  senametas config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
