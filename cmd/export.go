package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"senametas/export"
	"senametas/storage"
)

var (
	exportCollection string
	exportFormat     string
	exportOutput     string
	exportDBPath     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored collection to JSON, CSV or Excel",
	Long: `Export every record of one stored collection in stored order.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export to JSON
  senametas export --collection metas_4_formacion_x_regional --output ./regional.json

  # Export to Excel
  senametas export --collection metas_5_formacion_x_ctros --output ./centros.xlsx

  # Force format independent of extension
  senametas export --collection metas_4_formacion_x_regional --format csv --output ./regional.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		writer, err := export.WriterForFormat(format)
		if err != nil {
			return err
		}

		store, err := storage.Open(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		page, err := store.ReadPage(exportCollection, 0, -1)
		if err != nil {
			return err
		}

		if err := writer.Write(exportOutput, exportCollection, page.Records); err != nil {
			return err
		}

		fmt.Printf("Export completed. Collection: %s, Records: %d, Format: %s, File: %s\n",
			exportCollection, len(page.Records), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "json"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportCollection, "collection", "c", "", "Collection name to export")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json|csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./senametas.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("collection")
	_ = exportCmd.MarkFlagRequired("output")
}
