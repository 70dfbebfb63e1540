package extractor

import (
	"errors"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	t.Parallel()

	regionalHeader := []string{
		"COD_REGIONAL", "REGIONAL",
		"Cupos Tecnólogos Regular - Presencial", "Cupos Subtotal Tecnólogos",
	}
	perCenterHeader := []string{
		"COD_REGIONAL", "REGIONAL", "COD_CENTRO", "CENTRO",
		"Cupos Operarios A Distancia", "Cupos Total Virtual",
	}

	cases := []struct {
		name       string
		rows       [][]string
		wantLayout Layout
		wantRow    int
		wantErr    error
	}{
		{
			name:       "regional header on first row",
			rows:       [][]string{regionalHeader},
			wantLayout: LayoutRegional,
			wantRow:    0,
		},
		{
			name: "per-center header below title rows",
			rows: [][]string{
				{"SEGUIMIENTO A METAS 2025"},
				{},
				perCenterHeader,
				{"5", "REGIONAL ANTIOQUIA", "9503", "CENTRO DE SERVICIOS", "120", "80"},
			},
			wantLayout: LayoutPerCenter,
			wantRow:    2,
		},
		{
			name: "single stray marker in title does not match",
			rows: [][]string{
				{"Distribución de Cupos 2025"},
				regionalHeader,
			},
			wantLayout: LayoutRegional,
			wantRow:    1,
		},
		{
			name: "no marker row",
			rows: [][]string{
				{"COD_REGIONAL", "REGIONAL", "Tecnólogos", "Operarios"},
				{"5", "REGIONAL ANTIOQUIA", "100", "200"},
			},
			wantErr: ErrHeaderNotFound,
		},
		{
			name:    "empty sheet",
			rows:    nil,
			wantErr: ErrHeaderNotFound,
		},
		{
			name: "unrecognized ident span",
			rows: [][]string{
				{"COD", "NOMBRE", "ZONA", "Cupos Tecnólogos Regular - Presencial", "Cupos Total Virtual"},
			},
			wantErr: ErrUnknownIdentSpan,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			layout, headerRow, err := DetectLayout(tc.rows)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("DetectLayout err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectLayout: %v", err)
			}
			if layout != tc.wantLayout {
				t.Fatalf("layout = %v, want %v", layout, tc.wantLayout)
			}
			if headerRow != tc.wantRow {
				t.Fatalf("header row = %d, want %d", headerRow, tc.wantRow)
			}
		})
	}
}

func TestDetectLayout_ScanWindow(t *testing.T) {
	t.Parallel()

	header := []string{
		"COD_REGIONAL", "REGIONAL",
		"Cupos Tecnólogos Regular - Presencial", "Cupos Total Presencial",
	}

	// Header on the last row inside the window is still found.
	rows := make([][]string, headerScanWindow)
	rows[headerScanWindow-1] = header
	layout, headerRow, err := DetectLayout(rows)
	if err != nil {
		t.Fatalf("DetectLayout: %v", err)
	}
	if layout != LayoutRegional || headerRow != headerScanWindow-1 {
		t.Fatalf("got %v at row %d, want regional at row %d", layout, headerRow, headerScanWindow-1)
	}

	// One row past the window is out of reach.
	rows = make([][]string, headerScanWindow+1)
	rows[headerScanWindow] = header
	if _, _, err := DetectLayout(rows); !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("err = %v, want ErrHeaderNotFound", err)
	}
}

func TestLayoutAccessors(t *testing.T) {
	t.Parallel()

	if got := LayoutRegional.IdentColumns(); got != 2 {
		t.Fatalf("regional ident columns = %d, want 2", got)
	}
	if got := LayoutPerCenter.IdentColumns(); got != 4 {
		t.Fatalf("per-center ident columns = %d, want 4", got)
	}
	if got := LayoutPerCenter.MetricStart(); got != 4 {
		t.Fatalf("per-center metric start = %d, want 4", got)
	}
	if LayoutRegional.String() != "regional" || LayoutPerCenter.String() != "per-center" {
		t.Fatalf("unexpected layout names: %q, %q", LayoutRegional, LayoutPerCenter)
	}
	if LayoutUnknown.String() != "unknown" {
		t.Fatalf("unknown layout name = %q", LayoutUnknown)
	}
}
