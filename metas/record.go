package metas

import "sort"

// Canonical identification field names. The names follow the reporting
// system the quota workbooks come from, so stored documents keep the
// identifiers downstream consumers already query by.
const (
	FieldPeriod       = "PERIODO"
	FieldRegionalCode = "COD_REGIONAL"
	FieldRegionalName = "REGIONAL"
	FieldCenterCode   = "COD_CENTRO"
	FieldCenterName   = "CENTRO"
)

// MetricFieldPrefix marks quota metric fields (M_*). Everything else in a
// record is an identification field.
const MetricFieldPrefix = "M_"

// IdentFields lists the identification fields in their canonical order.
// Every record carries all of them; fields a layout does not provide are
// present with a nil value.
var IdentFields = []string{
	FieldPeriod,
	FieldRegionalCode,
	FieldRegionalName,
	FieldCenterCode,
	FieldCenterName,
}

// Record is one normalized quota row: a flat mapping from canonical field
// names to typed values. Identification values are string, int64 or nil;
// metric values are float64. Records are built once during extraction and
// never mutated afterwards.
type Record map[string]any

// Metric returns the value of a metric field and whether it is present.
func (r Record) Metric(field string) (float64, bool) {
	value, ok := r[field]
	if !ok {
		return 0, false
	}
	metric, ok := value.(float64)
	return metric, ok
}

// FieldOrder returns the record's field names in a stable order:
// identification fields first (canonical order), then metric fields sorted
// alphabetically. Used by exporters that need deterministic columns.
func (r Record) FieldOrder() []string {
	out := make([]string, 0, len(r))
	for _, field := range IdentFields {
		if _, ok := r[field]; ok {
			out = append(out, field)
		}
	}

	metrics := make([]string, 0, len(r))
	for field := range r {
		if isIdentField(field) {
			continue
		}
		metrics = append(metrics, field)
	}
	sort.Strings(metrics)

	return append(out, metrics...)
}

func isIdentField(field string) bool {
	for _, ident := range IdentFields {
		if field == ident {
			return true
		}
	}
	return false
}

// Snapshot is the full set of records produced from one worksheet during one
// upload. It replaces all prior contents of its target collection; there is
// no record-level merge between uploads.
type Snapshot struct {
	SheetName  string
	Collection string
	Records    []Record
}
