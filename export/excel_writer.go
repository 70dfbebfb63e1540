package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"senametas/metas"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, collection string, records []metas.Record) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	columns := columnOrder(records)

	for col, column := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, column); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range records {
		row := i + 2
		for col, column := range columns {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := setExcelCell(file, sheet, cell, record[column]); err != nil {
				return err
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func setExcelCell(file *excelize.File, sheet, cell string, value any) error {
	if value == nil {
		return nil
	}
	if err := file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set excel value %s: %w", cell, err)
	}
	return nil
}
