package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// Layout identifies which of the two known worksheet structures a sheet
// uses. It is determined per worksheet, not globally.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutRegional: regional consolidated sheets with two identification
	// columns (regional code, regional name); metrics start at column 2.
	LayoutRegional
	// LayoutPerCenter: per-center sheets with four identification columns
	// (regional code/name, center code/name); metrics start at column 4.
	LayoutPerCenter
)

func (l Layout) String() string {
	switch l {
	case LayoutRegional:
		return "regional"
	case LayoutPerCenter:
		return "per-center"
	default:
		return "unknown"
	}
}

// IdentColumns returns how many leading identification columns the layout
// carries.
func (l Layout) IdentColumns() int {
	if l == LayoutPerCenter {
		return 4
	}
	return 2
}

// MetricStart returns the zero-based column index of the first metric
// column.
func (l Layout) MetricStart() int {
	return l.IdentColumns()
}

// headerScanWindow bounds how many leading rows are scanned for the quota
// header row. Source workbooks place it within the first 15 rows.
const headerScanWindow = 15

// minMarkerColumns is the minimum number of quota-marker cells a row must
// carry to count as the header row; a single stray "Cupos" cell in a title
// row must not match.
const minMarkerColumns = 2

var (
	ErrHeaderNotFound   = errors.New("quota header row not found")
	ErrUnknownIdentSpan = errors.New("unrecognized identification column span")
)

// DetectLayout locates the header row within the leading rows of a sheet's
// cell matrix and classifies the sheet layout from the identification-column
// span to the left of the first quota column. Two phases: find the row whose
// cells carry the quota marker in at least two columns, then match the span
// against the known layout widths.
func DetectLayout(rows [][]string) (Layout, int, error) {
	window := headerScanWindow
	if len(rows) < window {
		window = len(rows)
	}

	for rowIdx := 0; rowIdx < window; rowIdx++ {
		markerCols := quotaMarkerColumns(rows[rowIdx])
		if len(markerCols) < minMarkerColumns {
			continue
		}

		switch span := markerCols[0]; span {
		case LayoutRegional.IdentColumns():
			return LayoutRegional, rowIdx, nil
		case LayoutPerCenter.IdentColumns():
			return LayoutPerCenter, rowIdx, nil
		default:
			return LayoutUnknown, 0, fmt.Errorf(
				"header row %d has %d identification columns: %w", rowIdx+1, span, ErrUnknownIdentSpan)
		}
	}

	return LayoutUnknown, 0, fmt.Errorf(
		"no quota marker row within the first %d rows: %w", window, ErrHeaderNotFound)
}

func quotaMarkerColumns(row []string) []int {
	cols := make([]int, 0, len(row))
	for col, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if hasQuotaMarker(cell) {
			cols = append(cols, col)
		}
	}
	return cols
}
