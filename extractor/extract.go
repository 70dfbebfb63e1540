package extractor

import (
	"strconv"
	"strings"

	"senametas/metas"
)

// Stats summarizes one sheet's extraction for caller-side reporting.
type Stats struct {
	Rows           int // records produced
	MappedColumns  int // header columns matched against the category map
	SkippedColumns int // non-empty header columns without a mapping
}

type columnMapping struct {
	col     int
	mapping Mapping
}

// Extract walks the data region beneath the header row and yields one
// normalized record per data row, in source order. It is a pure
// transformation over the cell matrix and the static category map: layout
// and header position come from DetectLayout, period is supplied by the
// caller. Extraction stops at the first row whose identification columns
// are all blank.
func Extract(rows [][]string, layout Layout, headerRow int, period string) ([]metas.Record, Stats) {
	var stats Stats
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, stats
	}

	columns := mapHeaderColumns(rows[headerRow], layout, &stats)

	records := make([]metas.Record, 0, len(rows)-headerRow)
	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if identBlank(row, layout.IdentColumns()) {
			break
		}
		records = append(records, buildRecord(row, layout, columns, period))
		stats.Rows++
	}

	return records, stats
}

// mapHeaderColumns indexes the metric columns left-to-right. The first
// occurrence of a mapped field wins; later duplicates are ignored. Non-empty
// headers without a mapping are counted as skipped, never fatal.
func mapHeaderColumns(header []string, layout Layout, stats *Stats) []columnMapping {
	categories := Categories()
	claimed := make(map[string]bool, len(header))
	columns := make([]columnMapping, 0, len(header))

	for col := layout.MetricStart(); col < len(header); col++ {
		label := strings.TrimSpace(header[col])
		if label == "" {
			continue
		}

		mapping, ok := categories.LookupHeader(label)
		if !ok {
			stats.SkippedColumns++
			continue
		}
		if claimed[mapping.Field] {
			continue
		}

		claimed[mapping.Field] = true
		columns = append(columns, columnMapping{col: col, mapping: mapping})
		stats.MappedColumns++
	}

	return columns
}

func buildRecord(row []string, layout Layout, columns []columnMapping, period string) metas.Record {
	record := make(metas.Record, len(metas.IdentFields)+len(columns))

	record[metas.FieldPeriod] = coerceIdent(period)
	record[metas.FieldRegionalCode] = coerceIdent(cellAt(row, 0))
	record[metas.FieldRegionalName] = coerceName(cellAt(row, 1))
	if layout == LayoutPerCenter {
		record[metas.FieldCenterCode] = coerceIdent(cellAt(row, 2))
		record[metas.FieldCenterName] = coerceName(cellAt(row, 3))
	} else {
		record[metas.FieldCenterCode] = nil
		record[metas.FieldCenterName] = nil
	}

	for _, cm := range columns {
		record[cm.mapping.Field] = coerceMetric(cellAt(row, cm.col))
	}

	return record
}

func identBlank(row []string, identColumns int) bool {
	for col := 0; col < identColumns; col++ {
		if strings.TrimSpace(cellAt(row, col)) != "" {
			return false
		}
	}
	return true
}

// cellAt treats column indexes beyond the row's populated width as blank
// cells; trailing blanks are routinely dropped by the workbook reader.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// coerceIdent turns identification codes into int64 when they are integral
// ("5", "9105", or a spreadsheet float like "5.0"), otherwise keeps the
// trimmed text. Blank cells become nil.
func coerceIdent(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if parsed, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return parsed
	}
	if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil && parsed == float64(int64(parsed)) {
		return int64(parsed)
	}
	return trimmed
}

func coerceName(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

// coerceMetric parses a quota cell as float64. Blank or unparseable cells
// coerce to 0.0 rather than failing; spreadsheet data is assumed dirty.
// Comma decimals ("1.863,5") are accepted alongside plain floats.
func coerceMetric(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
