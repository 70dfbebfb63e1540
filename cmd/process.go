package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"senametas/config"
	"senametas/extractor"
	"senametas/storage"
)

var (
	processInputs []string
	processDBPath string
	processPeriod string
	processSheets []string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract quota workbooks into the local document store",
	Long: `Read quota workbooks, normalize each sheet into flat records, and replace
the prior snapshot of each sheet's collection.

Sheet layout (regional consolidated vs. per-center) is detected per sheet by
scanning for the quota header row. Sheets whose names contain "SQL" are
skipped unless sheets are listed explicitly.`,
	Example: `
  # Process one workbook
  senametas process -i "Seguimiento a Metas 2025.xlsx"

  # Restrict to specific sheets and override the period
  senametas process -i metas.xlsx --sheet "4. FORMACION X REGIONAL" --sheet "5. FORMACION X CTROS" --period 2025

  # Custom database path
  senametas process -i metas.xlsx --db ./senametas.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		period := strings.TrimSpace(processPeriod)
		if period == "" {
			period = cfg.Period
		}
		sheets := processSheets
		if len(sheets) == 0 {
			sheets = cfg.Ingest.Sheets
		}
		dbPath := processDBPath
		if !cmd.Flags().Changed("db") {
			dbPath = cfg.Database.Path
		}

		store, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		failures := 0
		for _, path := range processInputs {
			workbook, err := excelize.OpenFile(path)
			if err != nil {
				return fmt.Errorf("open workbook %s: %w", path, err)
			}

			result := extractor.ProcessWorkbook(workbook, extractor.Options{
				Period:           period,
				CollectionPrefix: cfg.Ingest.CollectionPrefix,
				Sheets:           sheets,
			})
			if err := workbook.Close(); err != nil {
				return fmt.Errorf("close workbook %s: %w", path, err)
			}

			for i, snapshot := range result.Snapshots {
				inserted, err := store.ReplaceCollection(snapshot.Collection, snapshot.Records)
				if err != nil {
					return fmt.Errorf("replace collection %s: %w", snapshot.Collection, err)
				}
				sheet := result.Results[i]
				fmt.Printf("Sheet %q (%s layout) -> %s: %d records, %d unmapped columns\n",
					snapshot.SheetName,
					sheet.Layout,
					snapshot.Collection,
					inserted,
					sheet.Stats.SkippedColumns,
				)
			}

			for _, sheetErr := range result.Errors {
				failures++
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, sheetErr)
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d sheet(s) failed; processed sheets were stored", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringArrayVarP(&processInputs, "input", "i", nil, "Input workbook path (repeatable)")
	processCmd.Flags().StringVar(&processDBPath, "db", "./senametas.db", "Path to local SQLite database (overrides config)")
	processCmd.Flags().StringVar(&processPeriod, "period", "", "Reporting period stamped on every record (overrides config)")
	processCmd.Flags().StringArrayVar(&processSheets, "sheet", nil, "Sheet name to process (repeatable, overrides config)")

	_ = processCmd.MarkFlagRequired("input")
}
