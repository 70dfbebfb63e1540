package extractor

import "fmt"

// Kind tags how a mapped column's cell values are coerced.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
)

// Mapping relates one canonical category label to its output metric field
// and semantic grouping.
type Mapping struct {
	Label    string // canonical spelling, for diagnostics
	Field    string // output field identifier (M_*)
	Level    string // education level grouping
	Modality string
	Kind     Kind
}

// CategoryMap is the closed set of recognized quota categories, keyed by
// normalized label. Built once at startup and read-only afterwards.
type CategoryMap struct {
	byKey map[string]Mapping
}

// Lookup resolves an already-normalized key. Exact match only.
func (m *CategoryMap) Lookup(key string) (Mapping, bool) {
	mapping, ok := m.byKey[key]
	return mapping, ok
}

// LookupHeader resolves a raw header cell: the label is normalized and, when
// the direct key misses, retried with a leading quota-marker token stripped,
// since header cells may be spelled "Cupos <category>".
func (m *CategoryMap) LookupHeader(raw string) (Mapping, bool) {
	key := NormalizeLabel(raw)
	if key == "" {
		return Mapping{}, false
	}
	if mapping, ok := m.byKey[key]; ok {
		return mapping, true
	}
	if trimmed := trimQuotaMarker(key); trimmed != key && trimmed != "" {
		mapping, ok := m.byKey[trimmed]
		return mapping, ok
	}
	return Mapping{}, false
}

// Len returns the number of mapped categories.
func (m *CategoryMap) Len() int {
	return len(m.byKey)
}

// Fields returns every output field identifier in the map.
func (m *CategoryMap) Fields() []string {
	out := make([]string, 0, len(m.byKey))
	for _, mapping := range m.byKey {
		out = append(out, mapping.Field)
	}
	return out
}

type categoryDef struct {
	label string
	key   string
	level string
}

type modalityDef struct {
	label    string
	key      string
	modality string
}

var categoryDefs = []categoryDef{
	{"Tecnólogos", "TECNOLOGOS", "tecnologo"},
	{"Operarios", "OPERARIOS", "operario"},
	{"Auxiliares", "AUXILIARES", "auxiliar"},
	{"Técnico Laboral", "TECNICO_LABORAL", "tecnico_laboral"},
	{"Formación Complementaria", "COMPLEMENTARIA", "complementaria"},
}

var modalityDefs = []modalityDef{
	{"Regular - Presencial", "REGULAR_PRESENCIAL", "regular_presencial"},
	{"Regular - Virtual", "REGULAR_VIRTUAL", "regular_virtual"},
	{"A Distancia", "DISTANCIA", "distancia"},
	{"Programa SER", "SER", "ser"},
	{"Inclusión Total", "INCLUSION_TOTAL", "inclusion_total"},
}

var rollupDefs = []Mapping{
	{Label: "Total Formación Titulada", Field: "M_TOTAL_TITULADA"},
	{Label: "Total Formación Complementaria", Field: "M_TOTAL_COMPLEMENTARIA"},
	{Label: "Total Presencial", Field: "M_TOTAL_PRESENCIAL"},
	{Label: "Total Virtual", Field: "M_TOTAL_VIRTUAL"},
	{Label: "Total A Distancia", Field: "M_TOTAL_DISTANCIA"},
	{Label: "Total Formación Profesional Integral", Field: "M_TOTAL_FORMACION"},
}

var defaultCategories = buildCategoryMap()

// Categories returns the process-wide category table.
func Categories() *CategoryMap {
	return defaultCategories
}

func buildCategoryMap() *CategoryMap {
	mappings := make([]Mapping, 0, len(categoryDefs)*(len(modalityDefs)+1)+len(rollupDefs))

	for _, cat := range categoryDefs {
		for _, mod := range modalityDefs {
			mappings = append(mappings, Mapping{
				Label:    cat.label + " " + mod.label,
				Field:    "M_" + cat.key + "_" + mod.key,
				Level:    cat.level,
				Modality: mod.modality,
				Kind:     KindNumeric,
			})
		}
		mappings = append(mappings, Mapping{
			Label:    "Subtotal " + cat.label,
			Field:    "M_SUBTOTAL_" + cat.key,
			Level:    cat.level,
			Modality: "subtotal",
			Kind:     KindNumeric,
		})
	}

	for _, rollup := range rollupDefs {
		rollup.Level = "total"
		rollup.Modality = "total"
		rollup.Kind = KindNumeric
		mappings = append(mappings, rollup)
	}

	byKey := make(map[string]Mapping, len(mappings))
	for _, mapping := range mappings {
		key := NormalizeLabel(mapping.Label)
		if _, exists := byKey[key]; exists {
			panic(fmt.Sprintf("duplicate category key %q", key))
		}
		byKey[key] = mapping
	}

	return &CategoryMap{byKey: byKey}
}
