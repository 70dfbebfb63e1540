package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"senametas/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "senametas",
	Short: "Ingest training-quota workbooks and serve normalized records.",
	Long: `senametas normalizes institutional training-quota ("metas") workbooks.

It detects the header row and layout of each sheet (regional consolidated or
per-center), maps the quota category columns onto a fixed canonical field
set, replaces the prior snapshot in a local document store, and serves the
records through a paginated HTTP API.
`,
	Example: `
  # Create configuration file
  senametas config create

  # Load a quota workbook into the local store
  senametas process -i "Seguimiento a Metas 2025.xlsx"

  # Start the upload/read API
  senametas serve --port 8080

  # List stored collections
  senametas collections

  # Export one collection
  senametas export --collection metas_4_formacion_x_regional --output ./regional.json
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.senametas.yaml, then ./.senametas.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".senametas" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".senametas")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: senametas config create")
	}
}
