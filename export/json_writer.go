package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"senametas/metas"
)

type JSONWriter struct{}

type jsonDocument struct {
	Collection   string         `json:"collection"`
	TotalRecords int            `json:"total_records"`
	GeneratedAt  string         `json:"generated_at"`
	Data         []metas.Record `json:"data"`
}

func (w *JSONWriter) Write(path string, collection string, records []metas.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json output %s: %w", path, err)
	}
	defer file.Close()

	doc := jsonDocument{
		Collection:   collection,
		TotalRecords: len(records),
		GeneratedAt:  time.Now().Format(time.RFC3339),
		Data:         records,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("write json output %s: %w", path, err)
	}

	return nil
}
