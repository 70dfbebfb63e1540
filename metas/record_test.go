package metas

import (
	"reflect"
	"testing"
)

func TestRecord_FieldOrder(t *testing.T) {
	t.Parallel()

	record := Record{
		"M_TOTAL_VIRTUAL":         10.0,
		FieldRegionalName:         "REGIONAL ANTIOQUIA",
		FieldPeriod:               int64(2025),
		"M_SUBTOTAL_TECNOLOGOS":   5.0,
		FieldRegionalCode:         int64(5),
		FieldCenterCode:           nil,
		FieldCenterName:           nil,
	}

	want := []string{
		FieldPeriod, FieldRegionalCode, FieldRegionalName, FieldCenterCode, FieldCenterName,
		"M_SUBTOTAL_TECNOLOGOS", "M_TOTAL_VIRTUAL",
	}
	if got := record.FieldOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("FieldOrder = %v, want %v", got, want)
	}
}

func TestRecord_FieldOrder_PartialIdent(t *testing.T) {
	t.Parallel()

	record := Record{
		FieldPeriod:        int64(2025),
		"M_TOTAL_TITULADA": 1.0,
	}
	want := []string{FieldPeriod, "M_TOTAL_TITULADA"}
	if got := record.FieldOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("FieldOrder = %v, want %v", got, want)
	}
}

func TestRecord_Metric(t *testing.T) {
	t.Parallel()

	record := Record{
		FieldRegionalCode: int64(5),
		"M_TOTAL_VIRTUAL": 42.0,
	}

	if value, ok := record.Metric("M_TOTAL_VIRTUAL"); !ok || value != 42.0 {
		t.Fatalf("Metric = %v (ok=%v), want 42", value, ok)
	}
	if _, ok := record.Metric("M_TOTAL_PRESENCIAL"); ok {
		t.Fatal("absent metric must report !ok")
	}
	// Ident fields are not float64; Metric reports !ok for them.
	if _, ok := record.Metric(FieldRegionalCode); ok {
		t.Fatal("non-float field must report !ok")
	}
}
