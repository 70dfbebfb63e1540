package extractor

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"senametas/metas"
)

// sqlSheetMarker excludes helper sheets carrying raw SQL from processing.
const sqlSheetMarker = "SQL"

// Options control one workbook processing run.
type Options struct {
	// Period stamps every extracted record (PERIODO). The workbooks do not
	// carry it reliably, so it is supplied explicitly.
	Period string
	// CollectionPrefix prepends every target collection name.
	CollectionPrefix string
	// Sheets restricts processing to the named sheets. Empty means every
	// sheet except those whose name contains the SQL marker.
	Sheets []string
}

// SheetResult describes one successfully processed sheet.
type SheetResult struct {
	SheetName  string
	Collection string
	Layout     Layout
	Stats      Stats
}

// SheetError is a per-sheet failure; one malformed sheet never aborts the
// others in the same workbook.
type SheetError struct {
	SheetName string
	Err       error
}

func (e SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.SheetName, e.Err)
}

func (e SheetError) Unwrap() error {
	return e.Err
}

// ProcessResult aggregates one upload: snapshots ready for persistence plus
// per-sheet outcomes and failures.
type ProcessResult struct {
	SheetsProcessed int
	Snapshots       []metas.Snapshot
	Results         []SheetResult
	Errors          []SheetError
}

// ProcessWorkbook runs detection and extraction over every selected sheet of
// an opened workbook and returns one snapshot per sheet. Layout and read
// failures are collected per sheet in the result instead of aborting the
// run.
func ProcessWorkbook(f *excelize.File, opts Options) *ProcessResult {
	result := &ProcessResult{}

	selected, missing := selectSheets(f.GetSheetList(), opts.Sheets)
	for _, name := range missing {
		result.Errors = append(result.Errors, SheetError{
			SheetName: name,
			Err:       fmt.Errorf("sheet not present in workbook"),
		})
	}

	for _, sheetName := range selected {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			result.Errors = append(result.Errors, SheetError{
				SheetName: sheetName,
				Err:       fmt.Errorf("read rows: %w", err),
			})
			continue
		}

		layout, headerRow, err := DetectLayout(rows)
		if err != nil {
			result.Errors = append(result.Errors, SheetError{SheetName: sheetName, Err: err})
			continue
		}

		records, stats := Extract(rows, layout, headerRow, opts.Period)
		collection := opts.CollectionPrefix + NormalizeCollectionName(sheetName)

		result.SheetsProcessed++
		result.Snapshots = append(result.Snapshots, metas.Snapshot{
			SheetName:  sheetName,
			Collection: collection,
			Records:    records,
		})
		result.Results = append(result.Results, SheetResult{
			SheetName:  sheetName,
			Collection: collection,
			Layout:     layout,
			Stats:      stats,
		})
	}

	return result
}

// SkippedColumns sums the unmapped-header warnings across all processed
// sheets.
func (r *ProcessResult) SkippedColumns() int {
	total := 0
	for _, sheet := range r.Results {
		total += sheet.Stats.SkippedColumns
	}
	return total
}

func selectSheets(available, requested []string) (selected, missing []string) {
	if len(requested) > 0 {
		for _, want := range requested {
			found := false
			for _, have := range available {
				if strings.EqualFold(strings.TrimSpace(want), have) {
					selected = append(selected, have)
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, want)
			}
		}
		return selected, missing
	}

	for _, name := range available {
		if strings.Contains(strings.ToUpper(name), sqlSheetMarker) {
			continue
		}
		selected = append(selected, name)
	}
	return selected, nil
}

// NormalizeCollectionName turns a sheet name into a collection identifier:
// ASCII, lowercase, non-alphanumeric runs replaced by single underscores.
// "4. FORMACIÓN X REGIONAL" becomes "4_formacion_x_regional".
func NormalizeCollectionName(sheetName string) string {
	return strings.ReplaceAll(NormalizeLabel(sheetName), " ", "_")
}
