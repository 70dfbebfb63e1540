package export

import (
	"fmt"
	"strings"

	"senametas/metas"
)

type Writer interface {
	Write(path string, collection string, records []metas.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "json":
		return &JSONWriter{}, nil
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// columnOrder derives the export column set from the records themselves:
// identification fields first, then the union of metric fields sorted
// alphabetically. Different sheets map different column subsets, so the
// header cannot be hardcoded.
func columnOrder(records []metas.Record) []string {
	merged := make(metas.Record, 64)
	for _, record := range records {
		for field, value := range record {
			merged[field] = value
		}
	}
	return merged.FieldOrder()
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	default:
		return fmt.Sprintf("%v", v)
	}
}
