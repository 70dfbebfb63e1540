package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"senametas/metas"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, collection string, records []metas.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	columns := columnOrder(records)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cellText(record[column])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
