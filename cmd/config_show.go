package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"senametas/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  senametas config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("period: %s\n", cfg.Period)
			fmt.Printf("database.path: %s\n", cfg.Database.Path)
			fmt.Printf("server.port: %d\n", cfg.Server.Port)
			fmt.Printf("ingest.collection_prefix: %s\n", cfg.Ingest.CollectionPrefix)
			if len(cfg.Ingest.Sheets) == 0 {
				fmt.Println("ingest.sheets: (all non-SQL sheets)")
			} else {
				fmt.Printf("ingest.sheets: %s\n", strings.Join(cfg.Ingest.Sheets, ", "))
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
