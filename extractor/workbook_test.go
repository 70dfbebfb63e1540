package extractor

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbookFixture(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "4. FORMACIÓN X REGIONAL"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	regionalRows := [][]any{
		{"SEGUIMIENTO A METAS 2025"},
		{"COD_REGIONAL", "REGIONAL", "Cupos Tecnólogos Regular - Presencial", "Cupos Total Presencial"},
		{5, "REGIONAL ANTIOQUIA", 1863, 2500},
		{66, "REGIONAL RISARALDA", 421, 600},
	}
	writeSheetRows(t, f, "4. FORMACIÓN X REGIONAL", regionalRows)

	if _, err := f.NewSheet("5. FORMACIÓN X CTROS"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	perCenterRows := [][]any{
		{"COD_REGIONAL", "REGIONAL", "COD_CENTRO", "CENTRO", "Cupos Operarios A Distancia", "Cupos Total Virtual"},
		{5, "REGIONAL ANTIOQUIA", 9503, "CENTRO DE SERVICIOS", 120, 80},
	}
	writeSheetRows(t, f, "5. FORMACIÓN X CTROS", perCenterRows)

	if _, err := f.NewSheet("CONSULTA SQL"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	writeSheetRows(t, f, "CONSULTA SQL", [][]any{{"SELECT * FROM metas"}})

	if _, err := f.NewSheet("RESUMEN"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	writeSheetRows(t, f, "RESUMEN", [][]any{{"Notas generales del archivo"}})

	return f
}

func writeSheetRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("coordinates: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d on %q: %v", i+1, sheet, err)
		}
	}
}

func TestProcessWorkbook_AllSheets(t *testing.T) {
	t.Parallel()

	f := buildWorkbookFixture(t)
	defer f.Close()

	result := ProcessWorkbook(f, Options{Period: "2025", CollectionPrefix: "metas_"})

	// SQL sheet excluded; RESUMEN selected but fails detection.
	if result.SheetsProcessed != 2 {
		t.Fatalf("SheetsProcessed = %d, want 2", result.SheetsProcessed)
	}
	if len(result.Snapshots) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(result.Snapshots))
	}

	byCollection := make(map[string]int)
	for _, snap := range result.Snapshots {
		byCollection[snap.Collection] = len(snap.Records)
	}
	if byCollection["metas_4_formacion_x_regional"] != 2 {
		t.Fatalf("regional snapshot records = %d, want 2 (collections: %v)",
			byCollection["metas_4_formacion_x_regional"], byCollection)
	}
	if byCollection["metas_5_formacion_x_ctros"] != 1 {
		t.Fatalf("per-center snapshot records = %d, want 1", byCollection["metas_5_formacion_x_ctros"])
	}

	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one detection failure for RESUMEN", result.Errors)
	}
	if result.Errors[0].SheetName != "RESUMEN" || !errors.Is(result.Errors[0], ErrHeaderNotFound) {
		t.Fatalf("unexpected sheet error: %v", result.Errors[0])
	}

	for _, sheet := range result.Results {
		switch sheet.SheetName {
		case "4. FORMACIÓN X REGIONAL":
			if sheet.Layout != LayoutRegional {
				t.Fatalf("layout for %q = %v, want regional", sheet.SheetName, sheet.Layout)
			}
		case "5. FORMACIÓN X CTROS":
			if sheet.Layout != LayoutPerCenter {
				t.Fatalf("layout for %q = %v, want per-center", sheet.SheetName, sheet.Layout)
			}
		}
	}
}

func TestProcessWorkbook_RequestedSheets(t *testing.T) {
	t.Parallel()

	f := buildWorkbookFixture(t)
	defer f.Close()

	result := ProcessWorkbook(f, Options{
		Period:           "2025",
		CollectionPrefix: "metas_",
		Sheets:           []string{"4. FORMACIÓN X REGIONAL", "NO EXISTE"},
	})

	if result.SheetsProcessed != 1 {
		t.Fatalf("SheetsProcessed = %d, want 1", result.SheetsProcessed)
	}
	if len(result.Errors) != 1 || result.Errors[0].SheetName != "NO EXISTE" {
		t.Fatalf("errors = %v, want a missing-sheet error for NO EXISTE", result.Errors)
	}
}

func TestNormalizeCollectionName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
	}{
		{"4. FORMACIÓN X REGIONAL", "4_formacion_x_regional"},
		{"5. FORMACIÓN X CTROS", "5_formacion_x_ctros"},
		{"Resumen  General", "resumen_general"},
	}

	for _, tc := range cases {
		if got := NormalizeCollectionName(tc.input); got != tc.want {
			t.Fatalf("NormalizeCollectionName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestProcessResult_SkippedColumns(t *testing.T) {
	t.Parallel()

	result := &ProcessResult{Results: []SheetResult{
		{Stats: Stats{SkippedColumns: 2}},
		{Stats: Stats{SkippedColumns: 1}},
	}}
	if got := result.SkippedColumns(); got != 3 {
		t.Fatalf("SkippedColumns() = %d, want 3", got)
	}
}
